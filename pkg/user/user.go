package user

type User struct {
	Email    string `json:"email"`
	ID       string `json:"id"`
	Password string `json:"-"`
}

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
}

type SessionRepository interface {
	Create(userID, sessionID string) (string, error)
	IsValid(userID string) (bool, error)
	Invalidate(userID string) error
}
