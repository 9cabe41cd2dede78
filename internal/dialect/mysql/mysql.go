// Package mysql wires MySQL into the dialect registry via go-sql-driver.
package mysql

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql" // register the "mysql" database/sql driver

	"github.com/koustreak/sqlframe/internal/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:        "mysql",
		DriverName:  "mysql",
		DefaultPort: 3306,
		DataSource:  dataSource,
		Placeholder: placeholder,
		ColTypes: map[dialect.ColType]string{
			dialect.TypeText:      "TEXT",
			dialect.TypeInteger:   "BIGINT",
			dialect.TypeFloat:     "DOUBLE",
			dialect.TypeBool:      "BOOLEAN",
			dialect.TypeTimestamp: "DATETIME",
			dialect.TypeBytes:     "BLOB",
		},
		MapError: mapError,
	})
}

// dataSource builds the go-sql-driver DSN.
// parseTime makes DATETIME columns scan as time.Time; ANSI_QUOTES makes the
// server accept the double-quoted identifiers the query builder emits.
func dataSource(u *dialect.URL) string {
	port := u.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&sql_mode=%%27ANSI_QUOTES%%27",
		u.User, u.Password, u.Host, port, u.Database)
}

func placeholder(_ int) string {
	return "?"
}
