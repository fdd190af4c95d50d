package store

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("feedback not found")

// Feedback is the server-side record. UserID scopes every query; it never
// leaves the server. The JSON shape matches the deployed service's wire
// format: Mongo-style "_id", camelCase "createdAt".
type Feedback struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"-"`
	Event     string    `json:"event"`
	Comment   string    `json:"comment,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(fb *Feedback) error
	GetByUser(userID string) ([]*Feedback, error)
	GetByID(id string) (*Feedback, error)
	Update(id, userID, comment string, rating int) (*Feedback, error)
	Delete(id, userID string) error
}
