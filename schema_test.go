package sqlframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlframe/internal/dialect"
)

func TestCreateTableSQL(t *testing.T) {
	mo, err := modelFor(Vehicle{})
	require.NoError(t, err)

	pg, ok := dialect.Lookup("postgres")
	require.True(t, ok)
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "vehicle" (`+
			`"id" BIGINT, `+
			`"plate" TEXT NOT NULL, `+
			`"owner_name" TEXT NOT NULL, `+
			`"mileage" DOUBLE PRECISION, `+
			`"created_at" TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP, `+
			`PRIMARY KEY ("id"))`,
		createTableSQL(pg, mo))

	sq, ok := dialect.Lookup("sqlite")
	require.True(t, ok)
	assert.Contains(t, createTableSQL(sq, mo), `"mileage" REAL`)
	assert.Contains(t, createTableSQL(sq, mo), `"id" INTEGER`)
}

func TestDropTableSQL(t *testing.T) {
	mo, err := modelFor(Vehicle{})
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "vehicle"`, dropTableSQL(mo))
}

func TestNewMetadata(t *testing.T) {
	md := NewMetadata(Vehicle{}, LegacyRecord{})
	assert.Equal(t, []string{"vehicle", "tbl_legacy"}, md.Tables())

	assert.Panics(t, func() { NewMetadata(42) })
}
