// Package render draws single frames of the dashboard views as PNG images.
package render

import (
	"fmt"
	"io"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 1024
	defaultHeight = 600
)

func formatYear(v interface{}) string {
	if f, ok := v.(float64); ok {
		return decimal.NewFromFloat(f).StringFixed(0)
	}
	return ""
}

func formatWage(v interface{}) string {
	if f, ok := v.(float64); ok {
		return decimal.NewFromFloat(f).Round(1).String()
	}
	return ""
}

// TimeSeries draws the national and regional wage as two lines over the years.
func TimeSeries(w io.Writer, view *domain.TimeSeriesView) error {
	if len(view.Rows) == 0 {
		return fmt.Errorf("%w: %s shares no years with the national table", constants.ErrEmptySelection, view.Region)
	}

	years := make([]float64, len(view.Rows))
	national := make([]float64, len(view.Rows))
	regional := make([]float64, len(view.Rows))
	for i, r := range view.Rows {
		years[i] = float64(r.Year)
		national[i] = r.NationalWage
		regional[i] = r.RegionalWage
	}

	lb, err := newLabeler()
	if err != nil {
		return err
	}

	ch := chart.Chart{
		Font:   lb.font,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: lb.text(domain.ColYear), ValueFormatter: formatYear},
		YAxis: chart.YAxis{Name: lb.text(domain.ColWage), ValueFormatter: formatWage},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    lb.text(domain.ColNationalWage),
				Style:   chart.Style{StrokeColor: chart.GetDefaultColor(0), StrokeWidth: 2},
				XValues: years,
				YValues: national,
			},
			chart.ContinuousSeries{
				Name:    lb.text(view.Region),
				Style:   chart.Style{StrokeColor: chart.GetDefaultColor(1), StrokeWidth: 2},
				XValues: years,
				YValues: regional,
			},
		},
	}
	if len(years) == 1 {
		ch.XAxis.Range = &chart.ContinuousRange{Min: years[0] - 1, Max: years[0] + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err = ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render time series: %w", err)
	}
	return nil
}

// Bars draws the industries of one age bracket frame.
func Bars(w io.Writer, view *domain.BarView, age string) error {
	if age == "" && len(view.Frames) > 0 {
		age = view.Frames[0]
	}
	rows := view.Frame(age)
	if len(rows) == 0 {
		return fmt.Errorf("%w: no %d industry rows for age %q", constants.ErrInvalidSelection, view.Year, age)
	}

	lb, err := newLabeler()
	if err != nil {
		return err
	}

	bars := make([]chart.Value, len(rows))
	for i, r := range rows {
		color := chart.GetDefaultColor(i)
		bars[i] = chart.Value{
			Label: lb.text(r.Industry),
			Value: r.Metric(view.Metric),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	ch := chart.BarChart{
		Title:  fmt.Sprintf("%d %s", view.Year, lb.text(age)),
		Font:   lb.font,
		Width:  view.Width,
		Height: view.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:           lb.text(view.MetricLabel),
			Range:          &chart.ContinuousRange{Min: view.XRange[0], Max: view.XRange[1]},
			ValueFormatter: formatWage,
		},
		Bars: bars,
	}

	if err = ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bars: %w", err)
	}
	return nil
}

// Bubbles draws one year frame of the age bracket scatter. Dot radius follows
// the scheduled salary, the largest bubble of the view gets SizeMax.
func Bubbles(w io.Writer, view *domain.BubbleView, year domain.Year) error {
	if year == 0 && len(view.Frames) > 0 {
		year = view.Frames[0]
	}
	rows := view.Frame(year)
	if len(rows) == 0 {
		return fmt.Errorf("%w: no age bracket rows for %d", constants.ErrInvalidSelection, year)
	}

	lb, err := newLabeler()
	if err != nil {
		return err
	}

	largest := 0.0
	for _, r := range view.Rows {
		largest = max(largest, r.ScheduledSalary)
	}

	series := make([]chart.Series, 0, len(view.Groups))
	for i, group := range view.Groups {
		var xs, ys, sizes []float64
		for _, r := range rows {
			if r.Age != group {
				continue
			}
			xs = append(xs, r.Wage)
			ys = append(ys, r.Bonus)
			sizes = append(sizes, bubbleRadius(r.ScheduledSalary, largest, view.SizeMax))
		}
		if len(xs) == 0 {
			continue
		}

		series = append(series, chart.ContinuousSeries{
			Name: lb.text(group),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    bubbleColor(i),
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return sizes[index]
				},
			},
			XValues: xs,
			YValues: ys,
		})
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("%d", year),
		Font:   lb.font,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           lb.text(domain.ColWage),
			Range:          &chart.ContinuousRange{Min: view.XRange[0], Max: view.XRange[1]},
			ValueFormatter: formatWage,
		},
		YAxis: chart.YAxis{
			Name:           lb.text(domain.ColBonus),
			Range:          &chart.ContinuousRange{Min: view.YRange[0], Max: view.YRange[1]},
			ValueFormatter: formatWage,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	if err = ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bubbles: %w", err)
	}
	return nil
}

func bubbleRadius(value, largest float64, sizeMax int) float64 {
	if largest <= 0 {
		return 1
	}
	return max(1, value/largest*float64(sizeMax)/2)
}

func bubbleColor(i int) drawing.Color {
	return chart.GetDefaultColor(i).WithAlpha(180)
}
