package sqlframe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/sqlframe/errs"
)

type User struct {
	ID     int64  `db:"id,pk"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Active bool   `db:"active"`
}

var userMeta = NewMetadata(User{})

// openTestDB opens an in-memory sqlite manager with the users table created.
func openTestDB(t *testing.T) *Manager {
	t.Helper()

	m, err := Open("sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	require.NoError(t, m.CreateAll(context.Background(), userMeta))
	return m
}

func seedUsers(t *testing.T, m *Manager, users ...User) {
	t.Helper()
	err := m.Session(context.Background(), func(s *Session) error {
		for _, u := range users {
			if err := s.Insert(context.Background(), u); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mongo://u:p@localhost/db")
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
	assert.Contains(t, err.Error(), "no driver registered")
}

func TestOpen_MalformedURL(t *testing.T) {
	_, err := Open("not a url at all")
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}

func TestOpen_UnreachableTarget(t *testing.T) {
	// Eager policy: the missing parent directory surfaces at Open, not at
	// first query.
	path := filepath.Join(t.TempDir(), "missing", "sub", "app.db")
	_, err := Open("sqlite:///" + path)
	require.Error(t, err)
	assert.True(t, errs.IsConnection(err))
}

func TestCreateAll_Idempotent(t *testing.T) {
	m := openTestDB(t)
	require.NoError(t, m.CreateAll(context.Background(), userMeta))
}

func TestDropAll(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, m.DropAll(ctx, userMeta))
	require.NoError(t, m.DropAll(ctx, userMeta)) // idempotent

	_, err := m.Query(User{}).ToFrame(ctx)
	assert.True(t, errs.IsQuery(err))
}

func TestSession_Commit(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()

	seedUsers(t, m, User{ID: 1, Name: "ana", Email: "ana@example.com", Active: true})

	// New scope: the committed row is visible.
	f, err := m.Query(User{}).ToFrame(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())

	names, err := f.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"ana"}, names)
}

func TestSession_RollbackOnError(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	sentinel := errors.New("validation failed")

	err := m.Session(ctx, func(s *Session) error {
		if err := s.Insert(ctx, User{ID: 1, Name: "ghost", Email: "g@example.com"}); err != nil {
			return err
		}
		return sentinel
	})
	// The in-flight error reaches the caller unchanged.
	require.ErrorIs(t, err, sentinel)

	f, err := m.Query(User{}).ToFrame(ctx)
	require.NoError(t, err)
	assert.Zero(t, f.Len())
}

func TestSession_RollbackOnPanic(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = m.Session(ctx, func(s *Session) error {
			_ = s.Insert(ctx, User{ID: 1, Name: "ghost", Email: "g@example.com"})
			panic("boom")
		})
	})

	f, err := m.Query(User{}).ToFrame(ctx)
	require.NoError(t, err)
	assert.Zero(t, f.Len())
}

func TestSession_Exec(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m,
		User{ID: 1, Name: "ana", Email: "a@example.com", Active: true},
		User{ID: 2, Name: "bruno", Email: "b@example.com", Active: true},
	)

	err := m.Session(ctx, func(s *Session) error {
		n, err := s.Exec(ctx, `UPDATE "user" SET "active" = ? WHERE "id" = ?`, false, 2)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), n)
		return nil
	})
	require.NoError(t, err)
}

func TestQuery_ToFrame(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m,
		User{ID: 1, Name: "carla", Email: "c@example.com", Active: true},
		User{ID: 2, Name: "ana", Email: "a@example.com", Active: true},
		User{ID: 3, Name: "bruno", Email: "b@example.com", Active: false},
	)

	f, err := m.Query(User{}).
		Filter("active", "=", true).
		OrderBy("name", Asc).
		ToFrame(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "email", "active"}, f.Columns)
	require.Equal(t, 2, f.Len())

	names, err := f.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"ana", "carla"}, names)
}

func TestQuery_ToFrame_Consumed(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()

	q := m.Query(User{})
	_, err := q.ToFrame(ctx)
	require.NoError(t, err)

	_, err = q.ToFrame(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsQuery(err))
	assert.Contains(t, err.Error(), "already materialized")
}

func TestQuery_All(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m,
		User{ID: 1, Name: "ana", Email: "a@example.com", Active: true},
		User{ID: 2, Name: "bruno", Email: "b@example.com", Active: false},
	)

	var users []User
	require.NoError(t, m.Query(User{}).OrderBy("id", Asc).All(ctx, &users))
	require.Len(t, users, 2)
	assert.Equal(t, User{ID: 1, Name: "ana", Email: "a@example.com", Active: true}, users[0])

	assert.Error(t, m.Query(User{}).All(ctx, users)) // not a pointer
}

func TestQuery_First(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m, User{ID: 7, Name: "ana", Email: "a@example.com", Active: true})

	var u User
	require.NoError(t, m.Query(User{}).Filter("id", "=", 7).First(ctx, &u))
	assert.Equal(t, "ana", u.Name)

	err := m.Query(User{}).Filter("id", "=", 999).First(ctx, &u)
	assert.True(t, errs.IsNotFound(err))
}

func TestSQLRaw_ToFrame(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m,
		User{ID: 1, Name: "ana", Email: "a@example.com", Active: true},
		User{ID: 2, Name: "bruno", Email: "b@example.com", Active: false},
	)

	f, err := m.SQLRaw(`SELECT "name", "email" FROM "user" WHERE "active" = ? ORDER BY "name"`, true).
		ToFrame(ctx)
	require.NoError(t, err)

	// Column names come from the cursor metadata.
	assert.Equal(t, []string{"name", "email"}, f.Columns)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, "ana", f.Rows[0][0])
}

func TestSQLRaw_ToFrame_Consumed(t *testing.T) {
	m := openTestDB(t)
	ctx := context.Background()

	r := m.SQLRaw(`SELECT "id" FROM "user"`)
	_, err := r.ToFrame(ctx)
	require.NoError(t, err)

	_, err = r.ToFrame(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already materialized")
}

func TestSQLRaw_InvalidStatement(t *testing.T) {
	m := openTestDB(t)

	_, err := m.SQLRaw("SELECT FROM WHERE").ToFrame(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsQuery(err))
}

func TestInsertThenFrame_AcrossScopes(t *testing.T) {
	// Insert one row in a session scope, then frame it from a fresh query:
	// the frame matches the inserted values exactly.
	m := openTestDB(t)
	ctx := context.Background()
	seedUsers(t, m, User{ID: 42, Name: "diana", Email: "d@example.com", Active: true})

	f, err := m.Query(User{}).Filter("id", "=", 42).ToFrame(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())

	emails, err := f.Column("email")
	require.NoError(t, err)
	assert.Equal(t, []any{"d@example.com"}, emails)
}
