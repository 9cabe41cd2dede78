package sqlframe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/frame"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// Framer is the terminal contract both query paths share: materialize the
// result set into a frame, releasing every session and connection used.
type Framer interface {
	ToFrame(ctx context.Context) (*frame.Frame, error)
}

var (
	_ Framer = (*Query)(nil)
	_ Framer = (*RawResult)(nil)
)

// SortDirection controls the ORDER BY direction.
type SortDirection bool

const (
	Asc  SortDirection = false
	Desc SortDirection = true
)

// validOps is the allowlist of comparison operators for Filter.
// The operator position cannot be parameterized, so anything outside this
// list is rejected to keep injection impossible through it.
var validOps = map[string]bool{
	"=":     true,
	"!=":    true,
	"<>":    true,
	"<":     true,
	">":     true,
	"<=":    true,
	">=":    true,
	"LIKE":  true,
	"ILIKE": true,
}

type whereClause struct {
	column string
	op     string
	value  any
}

type orderClause struct {
	column string
	dir    SortDirection
}

// Query is the ORM-path handle: a filterable SELECT bound to a model type.
// Chain Filter/OrderBy/Limit/Offset freely, then consume it once with
// ToFrame, All, or First. Values never end up in the SQL text — always in
// the argument list.
type Query struct {
	m       *Manager
	mo      *model
	where   []whereClause
	orderBy []orderClause
	limit   *int
	offset  *int
	framed  bool
	err     error // first construction error, surfaced at execution
}

// Query starts an ORM-path query bound to the given model struct.
func (m *Manager) Query(v any) *Query {
	mo, err := modelFor(v)
	return &Query{m: m, mo: mo, err: err}
}

// Filter adds a WHERE condition. op must be one of the allowed comparison
// operators (=, !=, <>, <, >, <=, >=, LIKE, ILIKE). Multiple calls are
// combined with AND.
func (q *Query) Filter(column, op string, value any) *Query {
	q.where = append(q.where, whereClause{column, op, value})
	return q
}

// OrderBy appends an ORDER BY clause for the given column and direction.
func (q *Query) OrderBy(column string, dir SortDirection) *Query {
	q.orderBy = append(q.orderBy, orderClause{column, dir})
	return q
}

// Limit caps the number of rows returned.
func (q *Query) Limit(n int) *Query {
	q.limit = &n
	return q
}

// Offset skips the first n rows.
func (q *Query) Offset(n int) *Query {
	q.offset = &n
	return q
}

// buildSelect renders the accumulated chain into SQL and arguments.
func (q *Query) buildSelect() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	cols := make([]string, len(q.mo.columns))
	for i, c := range q.mo.columns {
		cols[i] = dialect.QuoteIdent(c.name)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(dialect.QuoteIdent(q.mo.table))

	var args []any
	argIdx := 1

	if len(q.where) > 0 {
		parts := make([]string, 0, len(q.where))
		for _, w := range q.where {
			op := strings.ToUpper(w.op)
			if !validOps[op] {
				return "", nil, errs.Newf(errs.KindQuery, "unsupported filter operator: %q", w.op)
			}
			parts = append(parts, fmt.Sprintf("%s %s %s",
				dialect.QuoteIdent(w.column), op, q.m.d.Placeholder(argIdx)))
			args = append(args, w.value)
			argIdx++
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	if len(q.orderBy) > 0 {
		parts := make([]string, len(q.orderBy))
		for i, o := range q.orderBy {
			dir := "ASC"
			if o.dir == Desc {
				dir = "DESC"
			}
			parts[i] = fmt.Sprintf("%s %s", dialect.QuoteIdent(o.column), dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	if q.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(q.m.d.Placeholder(argIdx))
		args = append(args, *q.limit)
		argIdx++
	}
	if q.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(q.m.d.Placeholder(argIdx))
		args = append(args, *q.offset)
	}

	return sb.String(), args, nil
}

// ToFrame executes the accumulated chain, fetches all matching rows, and
// returns them as a frame whose columns are the model's declared column
// names. The connection used is returned to the pool before ToFrame
// returns. The handle is consumed: a second call fails.
func (q *Query) ToFrame(ctx context.Context) (*frame.Frame, error) {
	if q.framed {
		return nil, errs.New(errs.KindQuery, "query already materialized into a frame")
	}

	stmt, args, err := q.buildSelect()
	if err != nil {
		return nil, err
	}
	q.m.logSQL(stmt, args)

	rows, err := q.m.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, q.m.d.MapError(err)
	}

	f, err := scanFrame(rows, q.mo.columnNames(), q.m.d)
	if err != nil {
		return nil, err
	}
	q.framed = true
	return f, nil
}

// All executes the chain and scans every row into dest, which must be a
// pointer to a slice of the model struct.
func (q *Query) All(ctx context.Context, dest any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.Elem().Kind() != reflect.Slice {
		return errs.New(errs.KindQuery, "dest must be a pointer to a slice")
	}
	slice := dv.Elem()
	elemType := slice.Type().Elem()
	if q.err == nil && elemType != q.mo.typ {
		return errs.Newf(errs.KindQuery, "dest element type %s does not match model %s",
			elemType, q.mo.typ)
	}

	stmt, args, err := q.buildSelect()
	if err != nil {
		return err
	}
	q.m.logSQL(stmt, args)

	rows, err := q.m.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return q.m.d.MapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		elem := reflect.New(elemType).Elem()
		ptrs := make([]any, len(q.mo.columns))
		for i, c := range q.mo.columns {
			ptrs[i] = elem.Field(c.index).Addr().Interface()
		}
		if err := rows.Scan(ptrs...); err != nil {
			return q.m.d.MapError(err)
		}
		slice.Set(reflect.Append(slice, elem))
	}
	if err := rows.Err(); err != nil {
		return q.m.d.MapError(err)
	}
	return nil
}

// First executes the chain limited to one row and scans it into dest,
// a pointer to the model struct. Returns a not-found error on empty result.
func (q *Query) First(ctx context.Context, dest any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.Elem().Kind() != reflect.Struct {
		return errs.New(errs.KindQuery, "dest must be a pointer to a struct")
	}
	if q.err != nil {
		return q.err
	}
	if dv.Elem().Type() != q.mo.typ {
		return errs.Newf(errs.KindQuery, "dest type %s does not match model %s",
			dv.Elem().Type(), q.mo.typ)
	}

	one := 1
	q.limit = &one
	stmt, args, err := q.buildSelect()
	if err != nil {
		return err
	}
	q.m.logSQL(stmt, args)

	elem := dv.Elem()
	ptrs := make([]any, len(q.mo.columns))
	for i, c := range q.mo.columns {
		ptrs[i] = elem.Field(c.index).Addr().Interface()
	}
	if err := q.m.db.QueryRowContext(ctx, stmt, args...).Scan(ptrs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.Wrap(errs.KindNotFound, "no rows matched the query", err)
		}
		return q.m.d.MapError(err)
	}
	return nil
}

// scanFrame drains rows into a frame and always closes them. When columns
// is nil the names come from the cursor metadata.
func scanFrame(rows *sql.Rows, columns []string, d *dialect.Dialect) (*frame.Frame, error) {
	defer rows.Close()

	if columns == nil {
		var err error
		columns, err = rows.Columns()
		if err != nil {
			return nil, errs.Wrap(errs.KindQuery, "failed to read column names", err)
		}
	}

	f := frame.New(columns)
	for rows.Next() {
		// Scan through *any so the driver can deliver any type.
		dest := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, d.MapError(err)
		}
		if err := f.Append(dest); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, d.MapError(err)
	}
	return f, nil
}
