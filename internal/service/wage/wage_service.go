package wage

import (
	"context"
	"fmt"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
)

// DefaultHeatmapYear is the year shown on the prefecture heatmap.
const DefaultHeatmapYear domain.Year = 2019

type Options struct {
	HeatmapYear domain.Year
	Memo        bool
}

type Service struct {
	data        *domain.Dataset
	heatmapYear domain.Year
	memo        *memo
}

func NewService(data *domain.Dataset, opts Options) *Service {
	s := &Service{
		data:        data,
		heatmapYear: opts.HeatmapYear,
	}
	if s.heatmapYear == 0 {
		s.heatmapYear = DefaultHeatmapYear
	}
	if opts.Memo {
		s.memo = newMemo()
	}
	return s
}

func (s *Service) Selections(ctx context.Context) (*domain.Selections, error) {
	selections, err := cached(s.memo, "selections", func() (*domain.Selections, error) {
		return BuildSelections(s.data, s.heatmapYear)
	})
	if err != nil {
		logger.Errorf(ctx, "BuildSelections: %s", err.Error())
		return nil, fmt.Errorf("BuildSelections: %w", err)
	}

	return selections, nil
}

func (s *Service) Heatmap(ctx context.Context) (*domain.HeatmapView, error) {
	view, err := cached(s.memo, fmt.Sprintf("heatmap:%d", s.heatmapYear), func() (*domain.HeatmapView, error) {
		return BuildHeatmap(s.data, s.heatmapYear)
	})
	if err != nil {
		logger.Errorf(ctx, "BuildHeatmap, year-%d: %s", s.heatmapYear, err.Error())
		return nil, fmt.Errorf("BuildHeatmap, year-%d: %w", s.heatmapYear, err)
	}

	return view, nil
}

func (s *Service) TimeSeries(ctx context.Context, region string, showTable bool) (*domain.TimeSeriesView, error) {
	key := fmt.Sprintf("timeseries:%s:%t", region, showTable)
	view, err := cached(s.memo, key, func() (*domain.TimeSeriesView, error) {
		return BuildTimeSeries(s.data, region, showTable)
	})
	if err != nil {
		logger.Warnf(ctx, "BuildTimeSeries, region-%s: %s", region, err.Error())
		return nil, fmt.Errorf("BuildTimeSeries, region-%s: %w", region, err)
	}

	return view, nil
}

func (s *Service) Bubbles(ctx context.Context) (*domain.BubbleView, error) {
	return cached(s.memo, "bubbles", func() (*domain.BubbleView, error) {
		return BuildBubbles(s.data), nil
	})
}

func (s *Service) Bars(ctx context.Context, year domain.Year, metric domain.WageMetric) (*domain.BarView, error) {
	key := fmt.Sprintf("bars:%d:%s", year, metric)
	view, err := cached(s.memo, key, func() (*domain.BarView, error) {
		return BuildBars(s.data, year, metric)
	})
	if err != nil {
		logger.Warnf(ctx, "BuildBars, year-%d, metric-%s: %s", year, metric, err.Error())
		return nil, fmt.Errorf("BuildBars, year-%d, metric-%s: %w", year, metric, err)
	}

	return view, nil
}

// ViewParams carries the parameters of any view, each view reads its own.
type ViewParams struct {
	Region    string
	Year      domain.Year
	Metric    domain.WageMetric
	ShowTable bool
}

// View builds the named view.
func (s *Service) View(ctx context.Context, name string, p ViewParams) (domain.Tabular, error) {
	logger.Debugf(ctx, "View, name-%s, params-%+v", name, p)

	switch name {
	case domain.ViewHeatmap:
		view, err := s.Heatmap(ctx)
		if err != nil {
			return nil, err
		}
		return view, nil
	case domain.ViewTimeSeries:
		view, err := s.TimeSeries(ctx, p.Region, p.ShowTable)
		if err != nil {
			return nil, err
		}
		return view, nil
	case domain.ViewBubbles:
		view, err := s.Bubbles(ctx)
		if err != nil {
			return nil, err
		}
		return view, nil
	case domain.ViewBars:
		view, err := s.Bars(ctx, p.Year, p.Metric)
		if err != nil {
			return nil, err
		}
		return view, nil
	}

	return nil, fmt.Errorf("%w: unknown view %q", constants.ErrBadRequest, name)
}
