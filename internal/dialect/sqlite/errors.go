package sqlite

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// mapError converts a go-sqlite3 error into the unified *errs.Error.
func mapError(err error) error {
	if mapped := dialect.MapCommon(err); mapped != nil || err == nil {
		return mapped
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrPerm, sqlite3.ErrAuth:
			return errs.Wrap(errs.KindConnection,
				fmt.Sprintf("sqlite open failed: %v", sqErr), err)
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return errs.Wrap(errs.KindTimeout, "sqlite database is locked", err)
		}
		return errs.Wrap(errs.KindQuery, fmt.Sprintf("query error: %v", sqErr), err)
	}

	return errs.Wrap(errs.KindUnknown, "sqlite error", err)
}
