package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/store/xpgx"
	"golang.org/x/sync/errgroup"
)

var (
	wageColumns     = []string{"region_name", "year", "age", "wage", "scheduled_salary", "bonus"}
	categoryColumns = append(append([]string{}, wageColumns...), "industry")
	geoColumns      = []string{"region_name", "lat", "lon"}
)

func wagesQuery(table string, columns []string) sq.SelectBuilder {
	return builder().Select(columns...).
		From(table).
		OrderBy("id")
}

func geoQuery() sq.SelectBuilder {
	return builder().Select(geoColumns...).
		From(tablePrefLatLon).
		OrderBy("id")
}

// wageRow is a wage table row as stored. NULL columns scan as nil.
type wageRow struct {
	Region          *string  `db:"region_name"`
	Year            *int     `db:"year"`
	Age             *string  `db:"age"`
	Wage            *float64 `db:"wage"`
	ScheduledSalary *float64 `db:"scheduled_salary"`
	Bonus           *float64 `db:"bonus"`
	Industry        *string  `db:"industry"`
}

// record reports false when the year or a metric is NULL.
func (r wageRow) record() (domain.WageRecord, bool) {
	if r.Year == nil || r.Wage == nil || r.ScheduledSalary == nil || r.Bonus == nil {
		return domain.WageRecord{}, false
	}

	return domain.WageRecord{
		Region:          deref(r.Region),
		Year:            *r.Year,
		Age:             deref(r.Age),
		Wage:            *r.Wage,
		ScheduledSalary: *r.ScheduledSalary,
		Bonus:           *r.Bonus,
		Industry:        deref(r.Industry),
	}, true
}

type geoRow struct {
	Region *string  `db:"region_name"`
	Lat    *float64 `db:"lat"`
	Lon    *float64 `db:"lon"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *store) ListNationalWages(ctx context.Context) ([]domain.WageRecord, error) {
	return s.listWages(ctx, wagesQuery(tableWageNational, wageColumns), tableWageNational)
}

func (s *store) ListCategoryWages(ctx context.Context) ([]domain.WageRecord, error) {
	return s.listWages(ctx, wagesQuery(tableWageCategory, categoryColumns), tableWageCategory)
}

func (s *store) ListPrefectureWages(ctx context.Context) ([]domain.WageRecord, error) {
	return s.listWages(ctx, wagesQuery(tableWagePrefecture, wageColumns), tableWagePrefecture)
}

// listWages drops rows with a NULL year or metric, the way the CSV loader
// drops unparsable ones.
func (s *store) listWages(ctx context.Context, query sq.SelectBuilder, table string) ([]domain.WageRecord, error) {
	rows, err := xpgx.Selectx[wageRow](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(table, err)
	}

	records := make([]domain.WageRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := row.record(); ok {
			records = append(records, rec)
		}
	}
	if dropped := len(rows) - len(records); dropped > 0 {
		logger.Warnf(ctx, "%s: dropped %d rows with NULL year or metrics", table, dropped)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table %s is empty", constants.ErrDBNotFound, table)
	}

	return records, nil
}

func (s *store) ListGeoPoints(ctx context.Context) ([]domain.GeoPoint, error) {
	rows, err := xpgx.Selectx[geoRow](ctx, s.pool, geoQuery())
	if err != nil {
		return nil, wrapErr(tablePrefLatLon, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table %s is empty", constants.ErrDBNotFound, tablePrefLatLon)
	}

	points := make([]domain.GeoPoint, 0, len(rows))
	for i, row := range rows {
		if row.Lat == nil || row.Lon == nil {
			return nil, fmt.Errorf("%w: row %d of %s has no coordinates", constants.ErrSchema, i+1, tablePrefLatLon)
		}
		points = append(points, domain.GeoPoint{Region: deref(row.Region), Lat: *row.Lat, Lon: *row.Lon})
	}

	return points, nil
}

// Load reads the four tables concurrently into a dataset.
func (s *store) Load(ctx context.Context) (*domain.Dataset, error) {
	var (
		national, category, prefecture []domain.WageRecord
		geo                            []domain.GeoPoint
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		national, err = s.ListNationalWages(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		category, err = s.ListCategoryWages(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		prefecture, err = s.ListPrefectureWages(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		geo, err = s.ListGeoPoints(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		logger.Errorf(ctx, "store.Load: %s", err.Error())
		return nil, err
	}

	dataset, err := domain.NewDataset(national, category, prefecture, geo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrSchema, err)
	}

	logger.Infof(ctx, "dataset loaded from postgres: national-%d, category-%d, prefecture-%d, geo-%d",
		len(national), len(category), len(prefecture), len(geo))

	return dataset, nil
}
