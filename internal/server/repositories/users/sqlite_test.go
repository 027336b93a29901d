package users

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  phone_number TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email_id TEXT NOT NULL UNIQUE,
  address TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func ann() *models.User {
	return &models.User{
		FirstName:   "Ann",
		LastName:    "Lee",
		PhoneNumber: "555-0100",
		EmailID:     "ann@example.com",
		Address:     "1 Main St",
	}
}

func bob() *models.User {
	return &models.User{
		FirstName:   "Bob",
		LastName:    "Ray",
		PhoneNumber: "555-0199",
		EmailID:     "bob@example.com",
		Address:     "2 Side St",
	}
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestCreateThenGetByID_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	created, err := r.Create(ctx, ann())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)

	want := ann()
	want.ID = created.ID
	assert.Empty(t, cmp.Diff(want, got))
}

func TestCreate_DuplicatePhoneOrEmail(t *testing.T) {
	tests := []struct {
		name  string
		dup   func(u *models.User)
		field string
	}{
		{name: "same phone", field: "phone_number", dup: func(u *models.User) { u.PhoneNumber = "555-0100" }},
		{name: "same email", field: "email_id", dup: func(u *models.User) { u.EmailID = "ann@example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			r := NewSQLRepository(db, dbx.DialectSQLite)
			ctx := context.Background()

			_, err := r.Create(ctx, ann())
			require.NoError(t, err)

			u := bob()
			tt.dup(u)
			_, err = r.Create(ctx, u)
			require.ErrorIs(t, err, common.ErrConstraintViolation)

			var ce *common.ConstraintError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)

			assert.Equal(t, 1, countUsers(t, db), "no write on violation")
		})
	}
}

func TestGetAll_ListAndDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	empty, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a, err := r.Create(ctx, ann())
	require.NoError(t, err)

	list, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *a, list[0])

	require.NoError(t, r.DeleteByID(ctx, a.ID))

	list, err = r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetAll_StorageOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	_, err := r.Create(ctx, bob())
	require.NoError(t, err)
	_, err = r.Create(ctx, ann())
	require.NoError(t, err)

	list, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[0].FirstName)
	assert.Equal(t, "Ann", list[1].FirstName)
}

func TestDeleteByID_MissingIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)

	require.NoError(t, r.DeleteByID(context.Background(), 12345))
	require.NoError(t, r.DeleteByID(context.Background(), 12345))
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)

	_, err := r.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_OverwritesAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	a, err := r.Create(ctx, ann())
	require.NoError(t, err)

	x := &models.User{
		FirstName:   "Anne",
		LastName:    "Leigh",
		PhoneNumber: "555-0101",
		EmailID:     "anne@example.org",
		Address:     "9 Elm St",
	}

	for i := 0; i < 2; i++ {
		_, err = r.Update(ctx, a.ID, x)
		require.NoError(t, err)

		got, err := r.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.User{
			ID:          a.ID,
			FirstName:   "Anne",
			LastName:    "Leigh",
			PhoneNumber: "555-0101",
			EmailID:     "anne@example.org",
			Address:     "9 Elm St",
		}, *got)
	}
	assert.Equal(t, 1, countUsers(t, db))
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)

	_, err := r.Update(context.Background(), 99, ann())
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, countUsers(t, db))
}

func TestUpdate_CollidesWithOtherRecord(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	_, err := r.Create(ctx, ann())
	require.NoError(t, err)
	b, err := r.Create(ctx, bob())
	require.NoError(t, err)

	u := bob()
	u.EmailID = "ann@example.com"
	_, err = r.Update(ctx, b.ID, u)
	require.ErrorIs(t, err, common.ErrConstraintViolation)

	got, err := r.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.EmailID, "record unchanged")
}

func TestUpdate_KeepsOwnUniqueValues(t *testing.T) {
	db := setupDB(t)
	r := NewSQLRepository(db, dbx.DialectSQLite)
	ctx := context.Background()

	a, err := r.Create(ctx, ann())
	require.NoError(t, err)

	u := ann()
	u.Address = "3 New Rd"
	_, err = r.Update(ctx, a.ID, u)
	require.NoError(t, err)
}
