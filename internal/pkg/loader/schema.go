package loader

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

var (
	wageColumns     = []string{domain.ColRegion, domain.ColYear, domain.ColAge, domain.ColWage, domain.ColScheduledSalary, domain.ColBonus}
	categoryColumns = append(slices.Clone(wageColumns), domain.ColIndustry)
	geoColumns      = []string{domain.ColGeoRegion, domain.ColLat, domain.ColLon}
)

func requireColumns(df dataframe.DataFrame, cols []string) error {
	names := df.Names()
	for _, col := range cols {
		if !slices.Contains(names, col) {
			return fmt.Errorf("%w: missing column %q", constants.ErrSchema, col)
		}
	}
	return nil
}

// WageRecords converts a wage table into typed records. Rows whose year or
// metrics do not parse are dropped; their count is returned.
func WageRecords(df dataframe.DataFrame, withIndustry bool) ([]domain.WageRecord, int, error) {
	cols := wageColumns
	if withIndustry {
		cols = categoryColumns
	}
	if err := requireColumns(df, cols); err != nil {
		return nil, 0, err
	}

	var (
		region    = df.Col(domain.ColRegion)
		year      = df.Col(domain.ColYear)
		age       = df.Col(domain.ColAge)
		wage      = df.Col(domain.ColWage)
		scheduled = df.Col(domain.ColScheduledSalary)
		bonus     = df.Col(domain.ColBonus)
		industry  series.Series
	)
	if withIndustry {
		industry = df.Col(domain.ColIndustry)
	}

	records := make([]domain.WageRecord, 0, df.Nrow())
	dropped := 0
	for i := 0; i < df.Nrow(); i++ {
		y, err := year.Elem(i).Int()
		if err != nil {
			dropped++
			continue
		}

		rec := domain.WageRecord{
			Region:          region.Elem(i).String(),
			Year:            y,
			Age:             age.Elem(i).String(),
			Wage:            wage.Elem(i).Float(),
			ScheduledSalary: scheduled.Elem(i).Float(),
			Bonus:           bonus.Elem(i).Float(),
		}
		if withIndustry {
			rec.Industry = industry.Elem(i).String()
		}

		if math.IsNaN(rec.Wage) || math.IsNaN(rec.ScheduledSalary) || math.IsNaN(rec.Bonus) {
			dropped++
			continue
		}

		records = append(records, rec)
	}

	return records, dropped, nil
}

// GeoPoints converts the prefecture coordinate table. Coordinates must parse.
func GeoPoints(df dataframe.DataFrame) ([]domain.GeoPoint, error) {
	if slices.Contains(df.Names(), domain.ColRegion) && !slices.Contains(df.Names(), domain.ColGeoRegion) {
		df = df.Rename(domain.ColGeoRegion, domain.ColRegion)
		if df.Err != nil {
			return nil, fmt.Errorf("%w: %w", constants.ErrSchema, df.Err)
		}
	}
	if err := requireColumns(df, geoColumns); err != nil {
		return nil, err
	}

	var (
		region = df.Col(domain.ColGeoRegion)
		lat    = df.Col(domain.ColLat)
		lon    = df.Col(domain.ColLon)
	)

	points := make([]domain.GeoPoint, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		p := domain.GeoPoint{
			Region: region.Elem(i).String(),
			Lat:    lat.Elem(i).Float(),
			Lon:    lon.Elem(i).Float(),
		}
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
			return nil, fmt.Errorf("%w: row %d of lat/lon table has no coordinates", constants.ErrSchema, i+1)
		}
		points = append(points, p)
	}

	return points, nil
}
