package user

import (
	"database/sql"
	"errors"
)

type SQLRepo struct {
	DB *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

func (r *SQLRepo) Create(user *User) error {
	_, err := r.DB.Exec(
		"INSERT INTO users (id, email, password) VALUES (?, ?, ?)",
		user.ID, user.Email, user.Password,
	)
	if err != nil {
		return err
	}
	return nil
}

func (r *SQLRepo) FindByEmail(email string) (*User, error) {
	var u User
	err := r.DB.QueryRow(
		"SELECT id, email, password FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Email, &u.Password)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	return &u, nil
}
