package mysql

import (
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// MySQL server error numbers relevant to this façade.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errAccessDenied    = 1045
	errUnknownDatabase = 1049
	errBadFieldError   = 1054
	errParseError      = 1064
	errNoSuchTable     = 1146
	errConnRefused     = 2003
)

// mapError converts a go-sql-driver error into the unified *errs.Error.
func mapError(err error) error {
	if mapped := dialect.MapCommon(err); mapped != nil || err == nil {
		return mapped
	}

	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errAccessDenied, errConnRefused, errUnknownDatabase:
			return errs.Wrap(errs.KindConnection,
				fmt.Sprintf("mysql connection failed: %s", myErr.Message), err)
		case errBadFieldError, errParseError, errNoSuchTable:
			return errs.Wrap(errs.KindQuery,
				fmt.Sprintf("query error: %s", myErr.Message), err)
		}
		return errs.Wrap(errs.KindQuery, myErr.Message, err)
	}
	if errors.Is(err, gomysql.ErrInvalidConn) {
		return errs.Wrap(errs.KindConnection, "mysql connection lost", err)
	}

	return errs.Wrap(errs.KindUnknown, "mysql error", err)
}
