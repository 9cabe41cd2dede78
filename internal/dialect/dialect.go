// Package dialect describes the per-engine details the manager needs:
// which database/sql driver serves an engine, how a canonical connection
// URL translates into that driver's DSN, which placeholder style the
// engine expects, and how native errors map into the unified taxonomy.
//
// Engine subpackages (postgres, mysql, sqlite, duckdb) register themselves
// at init time; the root package blank-imports them.
package dialect

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/koustreak/sqlframe/errs"
)

// ColType is the engine-independent column type used for DDL generation.
// Each dialect maps every ColType to its native SQL type name.
type ColType int

const (
	TypeText ColType = iota
	TypeInteger
	TypeFloat
	TypeBool
	TypeTimestamp
	TypeBytes
)

// URL is the decomposed form of a canonical connection URL.
// For file-based engines only Driver and Database (a path) are set.
type URL struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     int
	Database string
}

// Dialect holds everything engine-specific the manager needs.
type Dialect struct {
	// Name is the canonical URL scheme, e.g. "postgres".
	Name string

	// DriverName is the name the engine's driver registered with database/sql.
	DriverName string

	// FileBased marks engines whose Database field is a filesystem path.
	FileBased bool

	// DefaultPort is applied when the URL carries no port. Zero for file engines.
	DefaultPort int

	// DataSource translates a parsed URL into the driver's DSN grammar.
	DataSource func(u *URL) string

	// Placeholder returns the n-th statement parameter marker (1-based).
	Placeholder func(n int) string

	// ColTypes maps generic column types to native SQL type names.
	ColTypes map[ColType]string

	// MapError translates a native driver error into an *errs.Error.
	MapError func(err error) error
}

var (
	mu       sync.RWMutex
	registry = map[string]*Dialect{}
)

// Register adds a dialect under its canonical name plus any aliases.
// Called from engine subpackage init functions.
func Register(d *Dialect, aliases ...string) {
	mu.Lock()
	defer mu.Unlock()
	registry[d.Name] = d
	for _, a := range aliases {
		registry[a] = d
	}
}

// Lookup resolves a driver name (canonical or alias) to its dialect.
func Lookup(name string) (*Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[strings.ToLower(name)]
	return d, ok
}

// Names returns the sorted list of registered driver names, for error messages.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// QuoteIdent wraps a SQL identifier in double-quotes (ANSI standard).
// This safely handles reserved words and mixed-case names; all wired
// engines accept this quoting style.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// MapCommon handles the error cases every engine shares: nil, no rows,
// and context expiry. It returns nil when the error needs engine-specific
// mapping instead.
func MapCommon(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.KindNotFound, "no rows in result set", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.KindTimeout, "operation cancelled or timed out", err)
	}
	return nil
}
