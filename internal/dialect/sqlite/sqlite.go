// Package sqlite wires SQLite into the dialect registry via mattn/go-sqlite3.
//
// The Database field of a sqlite URL is a filesystem path — local or a
// normalized UNC share path. The special value ":memory:" opens an
// in-process database.
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // register the "sqlite3" database/sql driver

	"github.com/koustreak/sqlframe/internal/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite3",
		FileBased:   true,
		DataSource:  dataSource,
		Placeholder: placeholder,
		ColTypes: map[dialect.ColType]string{
			dialect.TypeText:      "TEXT",
			dialect.TypeInteger:   "INTEGER",
			dialect.TypeFloat:     "REAL",
			dialect.TypeBool:      "BOOLEAN",
			dialect.TypeTimestamp: "TIMESTAMP",
			dialect.TypeBytes:     "BLOB",
		},
		MapError: mapError,
	}, "sqlite3")
}

// dataSource passes the path through; go-sqlite3 takes it as-is, including
// ":memory:" and //server/share paths.
func dataSource(u *dialect.URL) string {
	return u.Database
}

func placeholder(_ int) string {
	return "?"
}
