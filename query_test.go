package sqlframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlframe/errs"
	"github.com/koustreak/sqlframe/internal/dialect"
)

// builderManager returns a Manager carrying only a dialect, enough for the
// SQL rendering paths that never touch a connection.
func builderManager(t *testing.T, name string) *Manager {
	t.Helper()
	d, ok := dialect.Lookup(name)
	require.True(t, ok)
	return &Manager{d: d}
}

func TestQuery_BuildSelect_Postgres(t *testing.T) {
	m := builderManager(t, "postgres")

	stmt, args, err := m.Query(Vehicle{}).
		Filter("plate", "=", "ABC1234").
		Filter("mileage", ">", 10000.0).
		OrderBy("created_at", Desc).
		Limit(20).
		Offset(40).
		buildSelect()
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "id", "plate", "owner_name", "mileage", "created_at" FROM "vehicle"`+
			` WHERE "plate" = $1 AND "mileage" > $2`+
			` ORDER BY "created_at" DESC`+
			` LIMIT $3 OFFSET $4`,
		stmt)
	assert.Equal(t, []any{"ABC1234", 10000.0, 20, 40}, args)
}

func TestQuery_BuildSelect_MySQLPlaceholders(t *testing.T) {
	m := builderManager(t, "mysql")

	stmt, args, err := m.Query(Vehicle{}).
		Filter("plate", "like", "ABC%").
		buildSelect()
	require.NoError(t, err)

	assert.Contains(t, stmt, `WHERE "plate" LIKE ?`)
	assert.Equal(t, []any{"ABC%"}, args)
}

func TestQuery_BuildSelect_NoChain(t *testing.T) {
	m := builderManager(t, "postgres")

	stmt, args, err := m.Query(LegacyRecord{}).buildSelect()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "code" FROM "tbl_legacy"`, stmt)
	assert.Empty(t, args)
}

func TestQuery_InvalidOperator(t *testing.T) {
	m := builderManager(t, "postgres")

	// "OR 1=1 --" must never reach the SQL text.
	_, _, err := m.Query(Vehicle{}).Filter("plate", "OR 1=1 --", "x").buildSelect()
	require.Error(t, err)
	assert.True(t, errs.IsQuery(err))
	assert.Contains(t, err.Error(), "unsupported filter operator")
}

func TestQuery_BadModelDeferred(t *testing.T) {
	m := builderManager(t, "postgres")

	_, _, err := m.Query(42).buildSelect()
	require.Error(t, err)
	assert.True(t, errs.IsQuery(err))
}
