package wage

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// BuildHeatmap joins the all-ages prefecture rows of one year to their
// coordinates and min-max normalizes the wage over the joined rows.
func BuildHeatmap(data *domain.Dataset, year domain.Year) (*domain.HeatmapView, error) {
	coords := make(map[string]domain.GeoPoint, len(data.Geo))
	for _, p := range data.Geo {
		if _, ok := coords[p.Region]; ok {
			return nil, fmt.Errorf("%w: %s appears twice in lat/lon table", constants.ErrJoinAmbiguity, p.Region)
		}
		coords[p.Region] = p
	}

	selected := filter(data.Prefecture, func(r domain.WageRecord) bool {
		return r.IsAllAges() && r.Year == year
	})

	rows := make([]domain.GeoWageRow, 0, len(selected))
	joined := make(map[string]struct{}, len(selected))
	for _, r := range selected {
		p, ok := coords[r.Region]
		if !ok {
			continue
		}
		if _, ok := joined[r.Region]; ok {
			return nil, fmt.Errorf("%w: %s has several rows for %d", constants.ErrJoinAmbiguity, r.Region, year)
		}
		joined[r.Region] = struct{}{}

		rows = append(rows, domain.GeoWageRow{WageRecord: r, Lat: p.Lat, Lon: p.Lon})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no prefecture rows with coordinates for %d", constants.ErrEmptySelection, year)
	}

	wages := make([]float64, len(rows))
	for i, r := range rows {
		wages[i] = r.Wage
	}
	for i, v := range normalize(wages) {
		rows[i].NormalizedWage = v
	}

	points := make([]domain.WeightedPoint, len(rows))
	for i, r := range rows {
		points[i] = domain.WeightedPoint{Lon: r.Lon, Lat: r.Lat, Weight: r.NormalizedWage}
	}

	return &domain.HeatmapView{
		Year: year,
		Rows: rows,
		Layer: domain.HeatmapLayer{
			Opacity:   domain.HeatmapOpacity,
			Threshold: domain.HeatmapThreshold,
			Points:    points,
		},
		View:     domain.DefaultViewState,
		Centroid: centroid(rows),
	}, nil
}

// normalize maps values onto [0, 1]. When every value is equal the result is all zeros.
func normalize(values []float64) []float64 {
	res := make([]float64, len(values))
	if len(values) == 0 {
		return res
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		return res
	}
	for i, v := range values {
		res[i] = (v - lo) / span
	}
	return res
}

func centroid(rows []domain.GeoWageRow) domain.GeoPoint {
	var sum r3.Vector
	for _, r := range rows {
		sum = sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(r.Lat, r.Lon)).Vector)
	}
	if sum.Norm() == 0 {
		return domain.GeoPoint{}
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return domain.GeoPoint{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

func filter[T any](rows []T, keep func(T) bool) []T {
	res := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			res = append(res, r)
		}
	}
	return res
}
