package sqlframe

import (
	"context"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/frame"
)

// RawResult is the raw-SQL handle: a literal statement with bound
// parameters, executed when the terminal conversion runs.
type RawResult struct {
	m      *Manager
	stmt   string
	args   []any
	framed bool
}

// SQLRaw starts a raw-SQL query. The statement is executed inside a scoped
// session when ToFrame is invoked; args are bound as statement parameters
// in the engine's placeholder style, never interpolated into the text.
func (m *Manager) SQLRaw(stmt string, args ...any) *RawResult {
	return &RawResult{m: m, stmt: stmt, args: args}
}

// ToFrame executes the statement, fetches all rows, and returns them as a
// frame whose column names come from the cursor metadata. Execution runs in
// its own session scope, so side-effecting statements commit on success and
// roll back on failure, and no connection stays open after the call.
// The handle is consumed: a second call fails.
func (r *RawResult) ToFrame(ctx context.Context) (*frame.Frame, error) {
	if r.framed {
		return nil, errs.New(errs.KindQuery, "raw result already materialized into a frame")
	}

	var f *frame.Frame
	err := r.m.Session(ctx, func(s *Session) error {
		var err error
		f, err = s.Query(ctx, r.stmt, r.args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.framed = true
	return f, nil
}
