package loader

import (
	"context"
	"fmt"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWageEncoding = "shift_jis"
	DefaultGeoEncoding  = "utf-8"
)

// Source produces the raw dataset. Implementations are read-only.
type Source interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

type Config struct {
	NationalPath   string
	CategoryPath   string
	PrefecturePath string
	GeoPath        string
	WageEncoding   string
	GeoEncoding    string
}

type CSVSource struct {
	cfg Config
}

func NewCSVSource(cfg Config) *CSVSource {
	if cfg.WageEncoding == "" {
		cfg.WageEncoding = DefaultWageEncoding
	}
	if cfg.GeoEncoding == "" {
		cfg.GeoEncoding = DefaultGeoEncoding
	}
	return &CSVSource{cfg: cfg}
}

func (s *CSVSource) Load(ctx context.Context) (*domain.Dataset, error) {
	var (
		national, category, prefecture []domain.WageRecord
		geo                            []domain.GeoPoint
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		national, err = s.loadWage(egCtx, s.cfg.NationalPath, false)
		return err
	})
	eg.Go(func() (err error) {
		category, err = s.loadWage(egCtx, s.cfg.CategoryPath, true)
		return err
	})
	eg.Go(func() (err error) {
		prefecture, err = s.loadWage(egCtx, s.cfg.PrefecturePath, false)
		return err
	})
	eg.Go(func() error {
		df, err := ReadTable(s.cfg.GeoPath, s.cfg.GeoEncoding)
		if err != nil {
			return err
		}
		geo, err = GeoPoints(df)
		if err != nil {
			return fmt.Errorf("%s: %w", s.cfg.GeoPath, err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	dataset, err := domain.NewDataset(national, category, prefecture, geo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrSchema, err)
	}

	logger.Infof(ctx, "dataset loaded: national-%d, category-%d, prefecture-%d, geo-%d",
		len(national), len(category), len(prefecture), len(geo))

	return dataset, nil
}

func (s *CSVSource) loadWage(ctx context.Context, path string, withIndustry bool) ([]domain.WageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	df, err := ReadTable(path, s.cfg.WageEncoding)
	if err != nil {
		return nil, err
	}

	records, dropped, err := WageRecords(df, withIndustry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if dropped > 0 {
		logger.Warnf(ctx, "%s: dropped %d malformed rows", path, dropped)
	}

	return records, nil
}
