package wage

import (
	"fmt"
	"sort"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// BuildTimeSeries pairs the national all-ages wage with the wage of one
// prefecture for every year present in both.
func BuildTimeSeries(data *domain.Dataset, region string, showTable bool) (*domain.TimeSeriesView, error) {
	nationalByYear := make(map[domain.Year]float64)
	for _, r := range data.National {
		if !r.IsAllAges() {
			continue
		}
		if _, ok := nationalByYear[r.Year]; ok {
			return nil, fmt.Errorf("%w: national table has several all-ages rows for %d", constants.ErrJoinAmbiguity, r.Year)
		}
		nationalByYear[r.Year] = r.Wage
	}

	regional := filter(data.Prefecture, func(r domain.WageRecord) bool {
		return r.IsAllAges() && r.Region == region
	})
	if len(regional) == 0 {
		return nil, fmt.Errorf("%w: unknown region %q", constants.ErrInvalidSelection, region)
	}

	rows := make([]domain.TimeSeriesRow, 0, len(regional))
	years := make(map[domain.Year]struct{}, len(regional))
	for _, r := range regional {
		if _, ok := years[r.Year]; ok {
			return nil, fmt.Errorf("%w: %s has several all-ages rows for %d", constants.ErrJoinAmbiguity, region, r.Year)
		}
		years[r.Year] = struct{}{}

		national, ok := nationalByYear[r.Year]
		if !ok {
			continue
		}
		rows = append(rows, domain.TimeSeriesRow{
			Year:         r.Year,
			NationalWage: national,
			RegionalWage: r.Wage,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})

	view := &domain.TimeSeriesView{
		Region: region,
		Rows:   rows,
	}
	if showTable {
		view.RegionalRows = regional
	}

	return view, nil
}
