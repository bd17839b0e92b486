package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	heatmapWidth     = 6 * vg.Inch
	heatmapHeight    = 6 * vg.Inch
	heatmapMinRadius = 3
	heatmapMaxRadius = 14
)

// Heatmap draws the weighted prefecture points on a lon/lat plane. Points under
// the layer threshold are drawn at the minimum radius in a muted colour.
func Heatmap(w io.Writer, view *domain.HeatmapView) error {
	points := view.Layer.Points
	if len(points) == 0 {
		return fmt.Errorf("%w: heatmap for %d has no points", constants.ErrEmptySelection, view.Year)
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.Lon
		xys[i].Y = pt.Lat
	}

	colors := moreland.Kindlmann()
	colors.SetMin(0)
	colors.SetMax(1)
	colors.SetAlpha(1 - view.Layer.Opacity/2)

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("plotter.NewScatter: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		weight := points[i].Weight
		if weight < view.Layer.Threshold {
			return draw.GlyphStyle{
				Color:  color.Gray{Y: 200},
				Radius: vg.Points(heatmapMinRadius),
				Shape:  draw.CircleGlyph{},
			}
		}

		c, err := colors.At(weight)
		if err != nil {
			c = color.Black
		}
		return draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(heatmapMinRadius + weight*(heatmapMaxRadius-heatmapMinRadius)),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d", view.Year)
	p.X.Label.Text = "lon"
	p.Y.Label.Text = "lat"
	p.Add(plotter.NewGrid(), sc)

	wt, err := p.WriterTo(heatmapWidth, heatmapHeight, "png")
	if err != nil {
		return fmt.Errorf("plot.WriterTo: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("write heatmap: %w", err)
	}
	return nil
}
