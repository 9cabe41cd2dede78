// Package sqlframe is a convenience façade over database/sql: it builds
// connection URLs, manages scoped sessions (commit-or-rollback transactions),
// and gives both the ORM-style query path and the raw-SQL path the same
// terminal operation — materializing a result set into a tabular frame.
//
// Usage:
//
//	url, err := sqlframe.BuildURL(sqlframe.Descriptor{
//	    Driver: "sqlite", Database: "./app.db",
//	})
//	dbm, err := sqlframe.Open(url)
//	defer dbm.Close()
//
//	f, err := dbm.Query(User{}).
//	    Filter("active", "=", true).
//	    OrderBy("name", sqlframe.Asc).
//	    ToFrame(ctx)
//
//	f, err = dbm.SQLRaw("SELECT name, email FROM users WHERE active = ?", true).
//	    ToFrame(ctx)
package sqlframe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
	"github.com/koustreak/sqlframe/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
	defaultPingTimeout     = 5 * time.Second
)

// Manager owns one engine handle (a database/sql pool) bound to a
// connection URL. It is the entry point for sessions, queries, and DDL.
type Manager struct {
	db   *sql.DB
	d    *dialect.Dialect
	desc Descriptor
	log  *logger.Logger
	echo bool
}

type options struct {
	log             *logger.Logger
	echo            bool
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
	pingTimeout     time.Duration
}

// Option customises Open.
type Option func(*options)

// WithLogger attaches a structured logger. Without it the manager is silent.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithEcho logs every executed statement at debug level.
func WithEcho() Option {
	return func(o *options) { o.echo = true }
}

// WithPool overrides the connection pool limits.
func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) {
		o.maxOpenConns = maxOpen
		o.maxIdleConns = maxIdle
	}
}

// WithConnLifetimes overrides how long pooled connections may live and idle.
func WithConnLifetimes(lifetime, idle time.Duration) Option {
	return func(o *options) {
		o.connMaxLifetime = lifetime
		o.connMaxIdleTime = idle
	}
}

// WithPingTimeout bounds the connectivity probe Open performs.
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) { o.pingTimeout = d }
}

// Open connects a Manager to the engine named by rawURL.
//
// Connection is EAGER: Open probes the engine with a ping, so an unreachable
// target or bad credentials surface here as a connection error rather than
// at first query. A URL for an unregistered driver is a configuration error.
func Open(rawURL string, opts ...Option) (*Manager, error) {
	o := &options{
		log:             logger.Nop(),
		maxOpenConns:    defaultMaxOpenConns,
		maxIdleConns:    defaultMaxIdleConns,
		connMaxLifetime: defaultConnMaxLifetime,
		connMaxIdleTime: defaultConnMaxIdleTime,
		pingTimeout:     defaultPingTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	desc, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	d, ok := dialect.Lookup(desc.Driver)
	if !ok {
		return nil, errs.Newf(errs.KindConfiguration,
			"no driver registered for %q (available: %s)",
			desc.Driver, strings.Join(dialect.Names(), ", "))
	}

	db, err := sql.Open(d.DriverName, d.DataSource(&dialect.URL{
		Driver:   desc.Driver,
		User:     desc.User,
		Password: desc.Password,
		Host:     desc.Host,
		Port:     desc.Port,
		Database: desc.Database,
	}))
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "invalid data source", err)
	}

	db.SetMaxOpenConns(o.maxOpenConns)
	db.SetMaxIdleConns(o.maxIdleConns)
	db.SetConnMaxLifetime(o.connMaxLifetime)
	db.SetConnMaxIdleTime(o.connMaxIdleTime)

	// An in-memory database exists per connection; pin the pool to a single
	// connection so sessions and queries all see the same database.
	if d.FileBased && desc.Database == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	m := &Manager{db: db, d: d, desc: desc, log: o.log, echo: o.echo}

	ctx, cancel := context.WithTimeout(context.Background(), o.pingTimeout)
	defer cancel()
	if err := m.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	m.log.With().Str("driver", desc.Driver).Str("database", desc.Database).
		Logger().Info("database connected")
	return m, nil
}

// Ping verifies the engine is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		if mapped := m.d.MapError(err); errs.IsConnection(mapped) || errs.IsTimeout(mapped) {
			return mapped
		}
		return errs.Wrap(errs.KindConnection, "database unreachable", err)
	}
	return nil
}

// Close releases the connection pool. The manager is unusable afterwards.
func (m *Manager) Close() error {
	return m.db.Close()
}

// Driver returns the canonical name of the engine the manager is bound to.
func (m *Manager) Driver() string {
	return m.d.Name
}

// DB exposes the underlying pool for operations outside this façade.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// logSQL emits an executed statement when echo is enabled.
func (m *Manager) logSQL(stmt string, args []any) {
	if !m.echo {
		return
	}
	ev := m.log.With().Str("sql", stmt)
	if len(args) > 0 {
		ev = ev.Str("args", fmt.Sprint(args...))
	}
	ev.Logger().Debug("exec")
}
