package user

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventfeedback/pkg/generator"
)

type ServiceInterface interface {
	Register(email, password string) (*User, error)
	Login(email, password string) (*User, error)
}

type Service struct {
	Repo    Repository
	Session SessionRepository
}

func NewService(repo Repository, session SessionRepository) *Service {
	return &Service{Repo: repo, Session: session}
}

// Register creates the account only; no session is started until the user
// logs in.
func (s *Service) Register(email, password string) (*User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	exist, err := s.Repo.FindByEmail(email)
	if exist != nil && err == nil {
		return nil, errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %s", err)
	}

	userID, err := generator.GenerateRandomID(generator.IDLength)
	if err != nil {
		return nil, fmt.Errorf("UserID gen error: %s", err)
	}

	user := &User{
		ID:       userID,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.Repo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("user not found")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	sessionID, err := generator.GenerateRandomID(generator.IDLength)
	if err != nil {
		return nil, fmt.Errorf("SessionID gen error: %s", err)
	}
	if _, err := s.Session.Create(user.ID, sessionID); err != nil {
		return nil, fmt.Errorf("failed to create session: %s", err)
	}

	return user, nil
}
