package store

import (
	"context"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/store/xpgx"
)

type Querier = xpgx.Querier

// Store reads the wage tables from PostgreSQL. It never writes.
type Store interface {
	ListNationalWages(ctx context.Context) ([]domain.WageRecord, error)
	ListCategoryWages(ctx context.Context) ([]domain.WageRecord, error)
	ListPrefectureWages(ctx context.Context) ([]domain.WageRecord, error)
	ListGeoPoints(ctx context.Context) ([]domain.GeoPoint, error)
	Load(ctx context.Context) (*domain.Dataset, error)
}

type store struct {
	pool Querier
}

func NewStore(pool Querier) Store {
	return &store{pool}
}
