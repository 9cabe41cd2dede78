package sqlframe

import (
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// Tabler lets a model override the table name derived from its struct name.
type Tabler interface {
	TableName() string
}

// column is one mapped struct field.
type column struct {
	name     string // column name in the database
	index    int    // struct field index
	typ      dialect.ColType
	nullable bool
	primary  bool
	def      string // DEFAULT literal, empty when unset
}

// model is the cached table mapping of a struct type.
type model struct {
	table   string
	columns []column
	typ     reflect.Type
}

var modelCache sync.Map // reflect.Type -> *model

// columnNames returns all mapped column names in declaration order.
func (m *model) columnNames() []string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = c.name
	}
	return names
}

// modelFor maps a struct type (or pointer to one) to its table description.
// Results are cached per type.
//
// Field tags follow the db convention: `db:"column_name,pk,notnull,default=0"`.
// A tag of "-" skips the field; untagged exported fields map to the
// snake_case of their name.
func modelFor(v any) (*model, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, errs.New(errs.KindQuery, "model must be a struct, got nil")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errs.Newf(errs.KindQuery, "model must be a struct, got %s", t.Kind())
	}

	if cached, ok := modelCache.Load(t); ok {
		return cached.(*model), nil
	}

	m := &model{typ: t, table: tableNameOf(t, v)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		col := column{name: snakeCase(f.Name), index: i}
		if tag, ok := f.Tag.Lookup("db"); ok {
			if tag == "-" {
				continue
			}
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				col.name = parts[0]
			}
			for _, opt := range parts[1:] {
				switch {
				case opt == "pk":
					col.primary = true
				case opt == "notnull":
					col.nullable = false
				case strings.HasPrefix(opt, "default="):
					col.def = strings.TrimPrefix(opt, "default=")
				}
			}
		}

		typ, nullable, err := colTypeOf(f.Type)
		if err != nil {
			return nil, errs.Newf(errs.KindQuery, "model %s: field %s: %v", t.Name(), f.Name, err)
		}
		col.typ = typ
		if nullable {
			col.nullable = true
		}
		m.columns = append(m.columns, col)
	}

	if len(m.columns) == 0 {
		return nil, errs.Newf(errs.KindQuery, "model %s has no mapped fields", t.Name())
	}

	modelCache.Store(t, m)
	return m, nil
}

// tableNameOf prefers an explicit TableName method, falling back to the
// snake_case of the struct name.
func tableNameOf(t reflect.Type, v any) string {
	if tb, ok := v.(Tabler); ok {
		return tb.TableName()
	}
	// A pointer receiver also satisfies Tabler for value inputs.
	if tb, ok := reflect.New(t).Interface().(Tabler); ok {
		return tb.TableName()
	}
	return snakeCase(t.Name())
}

// colTypeOf maps a Go field type to the generic column type.
// Pointer types mark the column nullable.
func colTypeOf(t reflect.Type) (dialect.ColType, bool, error) {
	nullable := false
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	if t == reflect.TypeOf(time.Time{}) {
		return dialect.TypeTimestamp, nullable, nil
	}

	switch t.Kind() {
	case reflect.String:
		return dialect.TypeText, nullable, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return dialect.TypeInteger, nullable, nil
	case reflect.Float32, reflect.Float64:
		return dialect.TypeFloat, nullable, nil
	case reflect.Bool:
		return dialect.TypeBool, nullable, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return dialect.TypeBytes, nullable, nil
		}
	}
	return 0, false, errs.Newf(errs.KindQuery, "unsupported column type %s", t)
}

// fieldValues extracts the mapped column values of v in column order.
func fieldValues(m *model, v any) []any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	values := make([]any, len(m.columns))
	for i, c := range m.columns {
		values[i] = rv.Field(c.index).Interface()
	}
	return values
}

// snakeCase converts CamelCase identifiers to snake_case table/column names.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
