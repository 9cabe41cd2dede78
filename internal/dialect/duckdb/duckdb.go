// Package duckdb wires DuckDB into the dialect registry.
//
// DuckDB is the second file-based engine: its Database field is a path to a
// .duckdb file, and ":memory:" (or the empty string) opens an in-process
// database — useful for framing ad-hoc analytical queries without a server.
package duckdb

import (
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register the "duckdb" database/sql driver

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:        "duckdb",
		DriverName:  "duckdb",
		FileBased:   true,
		DataSource:  dataSource,
		Placeholder: placeholder,
		ColTypes: map[dialect.ColType]string{
			dialect.TypeText:      "VARCHAR",
			dialect.TypeInteger:   "BIGINT",
			dialect.TypeFloat:     "DOUBLE",
			dialect.TypeBool:      "BOOLEAN",
			dialect.TypeTimestamp: "TIMESTAMP",
			dialect.TypeBytes:     "BLOB",
		},
		MapError: mapError,
	})
}

// dataSource passes the file path through. The driver treats the empty
// string as in-memory, so ":memory:" is translated for symmetry with sqlite.
func dataSource(u *dialect.URL) string {
	if u.Database == ":memory:" {
		return ""
	}
	return u.Database
}

// placeholder returns $1, $2, … — DuckDB follows the postgres style.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// mapError converts a duckdb error into the unified *errs.Error.
// The driver exposes no structured error codes, so classification falls
// back to message inspection for the open/attach failure case.
func mapError(err error) error {
	if mapped := dialect.MapCommon(err); mapped != nil || err == nil {
		return mapped
	}
	msg := err.Error()
	if strings.Contains(msg, "Cannot open file") || strings.Contains(msg, "IO Error") {
		return errs.Wrap(errs.KindConnection, "duckdb open failed", err)
	}
	return errs.Wrap(errs.KindQuery, "duckdb error", err)
}
