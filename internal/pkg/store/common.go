package store

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

const (
	tableWageNational   = "wage_national"
	tableWageCategory   = "wage_category"
	tableWagePrefecture = "wage_prefecture"
	tablePrefLatLon     = "pref_lat_lon"
)

// SQLSTATE codes of a table laid out differently than the store expects.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// wrapErr tags a failed read of table. A missing table or column is a schema
// error, anything else is I/O.
func wrapErr(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn) {
		return fmt.Errorf("%w: %s: %w", constants.ErrSchema, table, err)
	}
	return fmt.Errorf("%w: %s: %w", constants.ErrIO, table, err)
}

// builder returns a statement builder emitting $n placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
