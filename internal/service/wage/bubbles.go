package wage

import (
	"github.com/ougirez/wagedash/internal/domain"
)

// BuildBubbles keeps the rows of actual age brackets for the animated scatter.
func BuildBubbles(data *domain.Dataset) *domain.BubbleView {
	brackets := filter(data.National, func(r domain.WageRecord) bool {
		return !r.IsAllAges()
	})

	rows := make([]domain.BubbleRow, len(brackets))
	frames := make([]domain.Year, 0)
	groups := make([]string, 0)
	for i, r := range brackets {
		rows[i] = domain.BubbleRow{
			Wage:            r.Wage,
			Bonus:           r.Bonus,
			ScheduledSalary: r.ScheduledSalary,
			Age:             r.Age,
			Year:            r.Year,
		}
		frames = appendUnique(frames, r.Year)
		groups = appendUnique(groups, r.Age)
	}

	return &domain.BubbleView{
		Rows:    rows,
		XRange:  [2]float64{domain.BubbleXMin, domain.BubbleXMax},
		YRange:  [2]float64{domain.BubbleYMin, domain.BubbleYMax},
		SizeMax: domain.BubbleSizeMax,
		Frames:  frames,
		Groups:  groups,
	}
}

func appendUnique[T comparable](values []T, v T) []T {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
