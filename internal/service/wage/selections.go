package wage

import (
	"fmt"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// BuildSelections enumerates the values the dashboard controls may take.
func BuildSelections(data *domain.Dataset, heatmapYear domain.Year) (*domain.Selections, error) {
	regions := make([]string, 0)
	for _, r := range data.Prefecture {
		if r.IsAllAges() {
			regions = appendUnique(regions, r.Region)
		}
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: no regions in prefecture table", constants.ErrEmptySelection)
	}

	years := make([]domain.Year, 0)
	for _, r := range data.Category {
		years = appendUnique(years, r.Year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: no years in industry table", constants.ErrEmptySelection)
	}

	metrics := make([]domain.MetricOption, len(domain.Metrics))
	for i, m := range domain.Metrics {
		metrics[i] = domain.MetricOption{Key: m, Label: m.Label()}
	}

	return &domain.Selections{
		Regions:     regions,
		Years:       years,
		Metrics:     metrics,
		HeatmapYear: heatmapYear,
	}, nil
}
