// Package xpgx joins squirrel queries with pgx scanning.
package xpgx

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pingInterval = 500 * time.Millisecond
	pingRetries  = 10
)

// Querier is the part of a pgx pool or connection the store reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Pool struct {
	*pgxpool.Pool
}

// Connect opens a pool and pings it until the database answers.
func Connect(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	err = backoff.Retry(
		func() error {
			if pingErr := pool.Ping(ctx); pingErr != nil {
				return fmt.Errorf("pool.Ping: %w", pingErr)
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(pingInterval), pingRetries),
			ctx,
		),
	)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Pool{pool}, nil
}

// Selectx runs query and scans every row into T by column name. Struct fields
// without a matching column keep their zero value.
func Selectx[T any](ctx context.Context, q Querier, query squirrel.Sqlizer) ([]T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}

	res, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return res, nil
}
