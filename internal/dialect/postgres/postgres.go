// Package postgres wires PostgreSQL into the dialect registry via the
// pgx stdlib driver.
package postgres

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register the "pgx" database/sql driver

	"github.com/koustreak/sqlframe/internal/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		DefaultPort: 5432,
		DataSource:  dataSource,
		Placeholder: placeholder,
		ColTypes: map[dialect.ColType]string{
			dialect.TypeText:      "TEXT",
			dialect.TypeInteger:   "BIGINT",
			dialect.TypeFloat:     "DOUBLE PRECISION",
			dialect.TypeBool:      "BOOLEAN",
			dialect.TypeTimestamp: "TIMESTAMPTZ",
			dialect.TypeBytes:     "BYTEA",
		},
		MapError: mapError,
	}, "postgresql")
}

// dataSource rebuilds the URL form pgx accepts directly.
func dataSource(u *dialect.URL) string {
	port := u.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		u.User, u.Password, u.Host, port, u.Database)
}

// placeholder returns $1, $2, …
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
