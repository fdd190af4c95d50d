package feedback

import (
	"errors"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrNotFound    = errors.New("feedback not found")
	ErrNotEditable = errors.New("edit window has closed")
	ErrInProgress  = errors.New("operation already in progress")
)

// Record mirrors one feedback document as the service returns it. ID and
// CreatedAt are assigned server-side; Event never changes after creation;
// Comment and Rating stay mutable while the edit window is open.
type Record struct {
	ID        string    `json:"_id"`
	Event     string    `json:"event"`
	Comment   string    `json:"comment,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidationError is a pre-flight rejection tied to a single form field.
// It never reaches the network.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

func ValidateNew(event string, rating int) error {
	if strings.TrimSpace(event) == "" {
		return &ValidationError{Field: "event", Msg: "event name is required"}
	}
	return validateRating(rating)
}

func validateRating(rating int) error {
	if rating == 0 {
		return &ValidationError{Field: "rating", Msg: "please select a rating"}
	}
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{Field: "rating", Msg: "rating must be between 1 and 5"}
	}
	return nil
}
