package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// View draws any dashboard view. frame picks the bubble year or the bar age
// bracket and is ignored by the other views.
func View(w io.Writer, view domain.Tabular, frame string) error {
	switch v := view.(type) {
	case *domain.HeatmapView:
		return Heatmap(w, v)
	case *domain.TimeSeriesView:
		return TimeSeries(w, v)
	case *domain.BubbleView:
		var year domain.Year
		if frame != "" {
			parsed, err := strconv.Atoi(frame)
			if err != nil {
				return fmt.Errorf("%w: frame %q is not a year", constants.ErrInvalidSelection, frame)
			}
			year = parsed
		}
		return Bubbles(w, v, year)
	case *domain.BarView:
		return Bars(w, v, frame)
	}

	return fmt.Errorf("%w: cannot draw %T", constants.ErrBadRequest, view)
}
