package store_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"eventfeedback/pkg/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE feedbacks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		event TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		created_at TIMESTAMP NOT NULL
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestSQLRepo_Create(t *testing.T) {
	repo := store.NewSQLRepo(setupTestDB(t))

	fb := &store.Feedback{UserID: "u1", Event: "GopherCon", Comment: "great", Rating: 5}
	assert.NoError(t, repo.Create(fb))

	assert.NotEmpty(t, fb.ID, "id is assigned on create")
	assert.False(t, fb.CreatedAt.IsZero(), "createdAt is assigned on create")

	found, err := repo.GetByID(fb.ID)
	assert.NoError(t, err)
	assert.Equal(t, "GopherCon", found.Event)
	assert.Equal(t, 5, found.Rating)
}

func TestSQLRepo_GetByUserOrderAndScope(t *testing.T) {
	repo := store.NewSQLRepo(setupTestDB(t))

	first := &store.Feedback{UserID: "u1", Event: "First", Rating: 3}
	second := &store.Feedback{UserID: "u1", Event: "Second", Rating: 4}
	other := &store.Feedback{UserID: "u2", Event: "Not yours", Rating: 1}
	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))
	assert.NoError(t, repo.Create(other))

	feedbacks, err := repo.GetByUser("u1")
	assert.NoError(t, err)
	assert.Len(t, feedbacks, 2)
	assert.Equal(t, "First", feedbacks[0].Event)
	assert.Equal(t, "Second", feedbacks[1].Event)

	empty, err := repo.GetByUser("nobody")
	assert.NoError(t, err)
	assert.NotNil(t, empty, "an empty history is an empty list, not nil")
	assert.Len(t, empty, 0)
}

func TestSQLRepo_Update(t *testing.T) {
	repo := store.NewSQLRepo(setupTestDB(t))

	fb := &store.Feedback{UserID: "u1", Event: "GopherCon", Comment: "ok", Rating: 3}
	assert.NoError(t, repo.Create(fb))

	updated, err := repo.Update(fb.ID, "u1", "better than ok", 5)
	assert.NoError(t, err)
	assert.Equal(t, "better than ok", updated.Comment)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "GopherCon", updated.Event, "event never changes")
	assert.Equal(t, fb.CreatedAt.Unix(), updated.CreatedAt.Unix(), "createdAt never changes")

	_, err = repo.Update("missing", "u1", "x", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Another user's record looks like a missing one.
	_, err = repo.Update(fb.ID, "u2", "hijack", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLRepo_Delete(t *testing.T) {
	repo := store.NewSQLRepo(setupTestDB(t))

	fb := &store.Feedback{UserID: "u1", Event: "GopherCon", Rating: 3}
	assert.NoError(t, repo.Create(fb))

	assert.ErrorIs(t, repo.Delete(fb.ID, "u2"), store.ErrNotFound)
	assert.NoError(t, repo.Delete(fb.ID, "u1"))
	assert.ErrorIs(t, repo.Delete(fb.ID, "u1"), store.ErrNotFound)

	_, err := repo.GetByID(fb.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
