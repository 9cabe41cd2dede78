package sqlframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlframe/internal/dialect"
)

type Vehicle struct {
	ID        int64  `db:"id,pk"`
	Plate     string `db:"plate,notnull"`
	OwnerName string
	Mileage   *float64
	CreatedAt time.Time `db:"created_at,default=CURRENT_TIMESTAMP"`
	internal  string    // unexported, never mapped
	Skipped   string    `db:"-"`
}

type LegacyRecord struct {
	Code string `db:"code"`
}

func (LegacyRecord) TableName() string { return "tbl_legacy" }

func TestModelFor(t *testing.T) {
	m, err := modelFor(Vehicle{})
	require.NoError(t, err)

	assert.Equal(t, "vehicle", m.table)
	assert.Equal(t, []string{"id", "plate", "owner_name", "mileage", "created_at"}, m.columnNames())

	byName := map[string]column{}
	for _, c := range m.columns {
		byName[c.name] = c
	}
	assert.True(t, byName["id"].primary)
	assert.False(t, byName["plate"].nullable)
	assert.True(t, byName["mileage"].nullable)
	assert.Equal(t, dialect.TypeFloat, byName["mileage"].typ)
	assert.Equal(t, dialect.TypeTimestamp, byName["created_at"].typ)
	assert.Equal(t, "CURRENT_TIMESTAMP", byName["created_at"].def)
}

func TestModelFor_PointerAndCache(t *testing.T) {
	m1, err := modelFor(&Vehicle{})
	require.NoError(t, err)
	m2, err := modelFor(Vehicle{})
	require.NoError(t, err)
	assert.Same(t, m1, m2)
}

func TestModelFor_TableNameOverride(t *testing.T) {
	m, err := modelFor(LegacyRecord{})
	require.NoError(t, err)
	assert.Equal(t, "tbl_legacy", m.table)
}

func TestModelFor_Invalid(t *testing.T) {
	_, err := modelFor(42)
	assert.Error(t, err)

	_, err = modelFor(nil)
	assert.Error(t, err)

	type Empty struct{ hidden int }
	_, err = modelFor(Empty{})
	assert.ErrorContains(t, err, "no mapped fields")
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "vehicle", snakeCase("Vehicle"))
	assert.Equal(t, "owner_name", snakeCase("OwnerName"))
	assert.Equal(t, "user_account_entry", snakeCase("UserAccountEntry"))
}

func TestFieldValues(t *testing.T) {
	m, err := modelFor(LegacyRecord{})
	require.NoError(t, err)

	assert.Equal(t, []any{"ABC"}, fieldValues(m, LegacyRecord{Code: "ABC"}))
	assert.Equal(t, []any{"XYZ"}, fieldValues(m, &LegacyRecord{Code: "XYZ"}))
}
