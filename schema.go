package sqlframe

import (
	"context"
	"strings"

	"github.com/koustreak/sqlframe/internal/dialect"
)

// Metadata is the set of model structs whose tables CreateAll and DropAll
// manage. Registration order is creation order; teardown runs in reverse.
type Metadata struct {
	models []*model
}

// NewMetadata registers the given models and returns the metadata set.
// It panics on an unmappable model, which is a programming error.
func NewMetadata(models ...any) *Metadata {
	md := &Metadata{}
	for _, v := range models {
		m, err := modelFor(v)
		if err != nil {
			panic(err)
		}
		md.models = append(md.models, m)
	}
	return md
}

// Tables returns the managed table names in registration order.
func (md *Metadata) Tables() []string {
	names := make([]string, len(md.models))
	for i, m := range md.models {
		names[i] = m.table
	}
	return names
}

// CreateAll creates every registered table that does not exist yet.
// DDL is idempotent (IF NOT EXISTS) but not transactional — most engines
// auto-commit DDL, so a mid-way failure leaves earlier tables in place.
func (m *Manager) CreateAll(ctx context.Context, md *Metadata) error {
	for _, mo := range md.models {
		stmt := createTableSQL(m.d, mo)
		m.logSQL(stmt, nil)
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return m.d.MapError(err)
		}
	}
	m.log.With().Int("tables", len(md.models)).Logger().Debug("schema created")
	return nil
}

// DropAll drops every registered table, newest registration first.
// Like CreateAll it is idempotent and non-transactional.
func (m *Manager) DropAll(ctx context.Context, md *Metadata) error {
	for i := len(md.models) - 1; i >= 0; i-- {
		stmt := dropTableSQL(md.models[i])
		m.logSQL(stmt, nil)
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return m.d.MapError(err)
		}
	}
	return nil
}

// createTableSQL renders the CREATE TABLE statement for mo in d's types.
func createTableSQL(d *dialect.Dialect, mo *model) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(dialect.QuoteIdent(mo.table))
	sb.WriteString(" (")

	var pks []string
	for i, c := range mo.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(dialect.QuoteIdent(c.name))
		sb.WriteByte(' ')
		sb.WriteString(d.ColTypes[c.typ])
		if !c.nullable && !c.primary {
			sb.WriteString(" NOT NULL")
		}
		if c.def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(c.def)
		}
		if c.primary {
			pks = append(pks, dialect.QuoteIdent(c.name))
		}
	}

	if len(pks) > 0 {
		sb.WriteString(", PRIMARY KEY (")
		sb.WriteString(strings.Join(pks, ", "))
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

func dropTableSQL(mo *model) string {
	return "DROP TABLE IF EXISTS " + dialect.QuoteIdent(mo.table)
}
