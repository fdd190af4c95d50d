package user

import (
	"database/sql"
	"time"
)

const sessionTTL = time.Hour

type SQLSessionRepo struct {
	DB *sql.DB
}

func NewSQLSessionRepo(db *sql.DB) *SQLSessionRepo {
	return &SQLSessionRepo{DB: db}
}

func (r *SQLSessionRepo) Create(userID string, sessionID string) (string, error) {
	_, err := r.DB.Exec(`
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, userID, time.Now(), time.Now().Add(sessionTTL))

	return sessionID, err
}

func (r *SQLSessionRepo) IsValid(userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE user_id = ? AND expires_at > ?
		)
	`, userID, time.Now().UTC()).Scan(&exists)
	return exists, err
}

func (r *SQLSessionRepo) Invalidate(userID string) error {
	_, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ?
	`, userID)
	return err
}
