package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// PostgreSQL SQLSTATE classes and codes relevant to this façade.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnection = "08" // connection exceptions
	pgClassAuth       = "28" // invalid authorization

	pgErrUndefinedTable  = "42P01"
	pgErrUndefinedColumn = "42703"
	pgErrSyntaxError     = "42601"
)

// mapError converts a pgx error into the unified *errs.Error.
func mapError(err error) error {
	if mapped := dialect.MapCommon(err); mapped != nil || err == nil {
		return mapped
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && (pgErr.Code[:2] == pgClassConnection || pgErr.Code[:2] == pgClassAuth):
			return errs.Wrap(errs.KindConnection, "postgres connection failed", err)
		case pgErr.Code == pgErrSyntaxError,
			pgErr.Code == pgErrUndefinedTable,
			pgErr.Code == pgErrUndefinedColumn:
			return errs.Wrap(errs.KindQuery, fmt.Sprintf("query error: %s", pgErr.Message), err)
		}
		return errs.Wrap(errs.KindQuery, pgErr.Message, err)
	}

	return errs.Wrap(errs.KindUnknown, "postgres error", err)
}
