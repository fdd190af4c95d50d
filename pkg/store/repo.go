package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLRepo struct {
	DB *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

// Create assigns the id and createdAt; callers only supply the authored
// fields.
func (r *SQLRepo) Create(fb *Feedback) error {
	fb.ID = uuid.NewString()
	fb.CreatedAt = time.Now().UTC()

	_, err := r.DB.Exec(
		"INSERT INTO feedbacks (id, user_id, event, comment, rating, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		fb.ID, fb.UserID, fb.Event, fb.Comment, fb.Rating, fb.CreatedAt,
	)
	return err
}

// GetByUser returns the user's records in insertion order, the order the
// client displays them in.
func (r *SQLRepo) GetByUser(userID string) ([]*Feedback, error) {
	rows, err := r.DB.Query(
		"SELECT id, user_id, event, comment, rating, created_at FROM feedbacks WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]*Feedback, 0)
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Event, &fb.Comment, &fb.Rating, &fb.CreatedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, &fb)
	}
	return feedbacks, rows.Err()
}

func (r *SQLRepo) GetByID(id string) (*Feedback, error) {
	var fb Feedback
	err := r.DB.QueryRow(
		"SELECT id, user_id, event, comment, rating, created_at FROM feedbacks WHERE id = ?",
		id,
	).Scan(&fb.ID, &fb.UserID, &fb.Event, &fb.Comment, &fb.Rating, &fb.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// Update touches only comment and rating; event and created_at are immutable
// after creation.
func (r *SQLRepo) Update(id, userID, comment string, rating int) (*Feedback, error) {
	result, err := r.DB.Exec(
		"UPDATE feedbacks SET comment = ?, rating = ? WHERE id = ? AND user_id = ?",
		comment, rating, id, userID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *SQLRepo) Delete(id, userID string) error {
	result, err := r.DB.Exec(
		"DELETE FROM feedbacks WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
