package user_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"eventfeedback/pkg/user"
)

type mockRepo struct {
	mock.Mock
}

type mockSession struct {
	mock.Mock
}

func (m *mockRepo) FindByEmail(email string) (*user.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(u *user.User) error {
	return m.Called(u).Error(0)
}

func (m *mockSession) Create(userID, sessionID string) (string, error) {
	args := m.Called(userID, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockSession) IsValid(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSession) Invalidate(userID string) error {
	return m.Called(userID).Error(0)
}

func TestService_Register(t *testing.T) {
	repo := new(mockRepo)
	session := new(mockSession)
	svc := user.NewService(repo, session)

	t.Run("success", func(t *testing.T) {
		repo.On("FindByEmail", "new@example.com").Return(nil, nil)
		repo.On("Create", mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.Register("new@example.com", "securepass")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "new@example.com", u.Email)
		// No session until the first login.
		session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("user already exists", func(t *testing.T) {
		repo.On("FindByEmail", "existing@example.com").Return(&user.User{Email: "existing@example.com"}, nil)

		u, err := svc.Register("existing@example.com", "pass")

		assert.Error(t, err)
		assert.Nil(t, u)
		assert.Equal(t, "user already exists", err.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		u, err := svc.Register("  ", "pass")

		assert.Error(t, err)
		assert.Nil(t, u)
		repo.AssertNotCalled(t, "FindByEmail", "  ")
	})
}

func TestService_Login(t *testing.T) {
	repo := new(mockRepo)
	session := new(mockSession)
	svc := user.NewService(repo, session)

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo.On("FindByEmail", "valid@example.com").Return(&user.User{
			ID:       "uid",
			Email:    "valid@example.com",
			Password: string(hashed),
		}, nil)
		session.On("Create", "uid", mock.Anything).Return("sessid", nil)

		u, err := svc.Login("valid@example.com", "correct")

		assert.NoError(t, err)
		assert.Equal(t, "valid@example.com", u.Email)
	})

	t.Run("not found", func(t *testing.T) {
		repo.On("FindByEmail", "ghost@example.com").Return(nil, errors.New("not found"))

		u, err := svc.Login("ghost@example.com", "any")

		assert.Error(t, err)
		assert.Nil(t, u)
		assert.Equal(t, "user not found", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.On("FindByEmail", "valid@example.com").Return(&user.User{
			ID:       "uid",
			Email:    "valid@example.com",
			Password: string(hashed),
		}, nil)

		u, err := svc.Login("valid@example.com", "wrong")

		assert.Error(t, err)
		assert.Nil(t, u)
		assert.Equal(t, "invalid credentials", err.Error())
	})
}
