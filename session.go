package sqlframe

import (
	"context"
	"database/sql"
	"strings"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/frame"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// Session is one transactional unit of work, owned exclusively by the
// Manager.Session scope that created it. It never escapes that scope.
type Session struct {
	tx *sql.Tx
	m  *Manager
}

// Session runs fn inside a transaction with deterministic release on every
// exit path:
//
//   - fn returns nil  → commit, then release
//   - fn returns err  → rollback, release, return err unchanged
//   - fn panics       → rollback, release, re-panic
//
// This is the only place sqlframe intercepts an error, and it never
// swallows one: the in-flight failure always reaches the caller.
func (m *Manager) Session(ctx context.Context, fn func(s *Session) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.KindConnection, "failed to begin transaction", err)
	}

	done := false
	defer func() {
		if !done {
			// Reached only when fn panicked; release before re-panicking.
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Session{tx: tx, m: m}); err != nil {
		done = true
		_ = tx.Rollback()
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return m.d.MapError(err)
	}
	return nil
}

// Exec runs a statement inside the session and returns the rows affected.
func (s *Session) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	s.m.logSQL(stmt, args)
	res, err := s.tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, s.m.d.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, s.m.d.MapError(err)
	}
	return n, nil
}

// Query runs a statement inside the session and materializes the full result
// set into a frame. No cursor survives the call.
func (s *Session) Query(ctx context.Context, stmt string, args ...any) (*frame.Frame, error) {
	s.m.logSQL(stmt, args)
	rows, err := s.tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, s.m.d.MapError(err)
	}
	return scanFrame(rows, nil, s.m.d)
}

// Insert writes one model row. Column values are taken from the struct's
// mapped fields; the statement is fully parameterized.
func (s *Session) Insert(ctx context.Context, v any) error {
	mo, err := modelFor(v)
	if err != nil {
		return err
	}

	cols := make([]string, len(mo.columns))
	marks := make([]string, len(mo.columns))
	for i, c := range mo.columns {
		cols[i] = dialect.QuoteIdent(c.name)
		marks[i] = s.m.d.Placeholder(i + 1)
	}

	stmt := "INSERT INTO " + dialect.QuoteIdent(mo.table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"

	_, err = s.Exec(ctx, stmt, fieldValues(mo, v)...)
	return err
}
