package wage

import (
	"fmt"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// BuildBars restricts the industry table to one year and derives the x bound
// of the chart from the selected metric.
func BuildBars(data *domain.Dataset, year domain.Year, metric domain.WageMetric) (*domain.BarView, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %q", constants.ErrInvalidSelection, metric)
	}

	if len(data.Category) == 0 {
		return nil, fmt.Errorf("%w: industry table has no years", constants.ErrEmptySelection)
	}

	rows := filter(data.Category, func(r domain.WageRecord) bool {
		return r.Year == year
	})
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no industry rows for %d", constants.ErrInvalidSelection, year)
	}

	maxValue := rows[0].Metric(metric)
	frames := make([]string, 0)
	for _, r := range rows {
		maxValue = max(maxValue, r.Metric(metric))
		frames = appendUnique(frames, r.Age)
	}

	return &domain.BarView{
		Year:        year,
		Metric:      metric,
		MetricLabel: metric.Label(),
		Rows:        rows,
		XRange:      [2]float64{0, maxValue + domain.BarHeadroom},
		Frames:      frames,
		Orientation: domain.BarOrientation,
		Width:       domain.BarChartWidth,
		Height:      domain.BarChartHeight,
	}, nil
}
