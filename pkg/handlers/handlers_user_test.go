package handlers_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventfeedback/pkg/handlers"
	"eventfeedback/pkg/user"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(email, password string) (*user.User, error) {
	args := m.Called(email, password)
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockService) Login(email, password string) (*user.User, error) {
	args := m.Called(email, password)
	return args.Get(0).(*user.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	m := new(mockService)
	m.On("Login", "valid@example.com", "correct").Return(&user.User{ID: "id", Email: "valid@example.com"}, nil)
	m.On("Login", "ghost@example.com", "correct").Return((*user.User)(nil), errors.New("user not found"))
	m.On("Login", "valid@example.com", "wrong").Return((*user.User)(nil), errors.New("invalid credentials"))

	handler := handlers.NewUserHandler(m, testLogger())

	tests := []struct {
		name           string
		body           string
		contentType    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Successful login",
			body:           `{"email":"valid@example.com","password":"correct"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
			expectedBody:   `"token"`,
		},
		{
			name:           "User not found",
			body:           `{"email":"ghost@example.com","password":"correct"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "user not found",
		},
		{
			name:           "Invalid credentials",
			body:           `{"email":"valid@example.com","password":"wrong"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid password",
		},
		{
			name:           "Bad Content-Type",
			body:           `{"email":"valid@example.com","password":"wrong"}`,
			contentType:    "text/plain",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid Content-Type"}`,
		},
		{
			name:           "Bad JSON",
			body:           `{"email" oops "valid@example.com"}`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"bad json"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(test.body))
			req.Header.Set("Content-Type", test.contentType)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, test.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), test.expectedBody)
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	m := new(mockService)
	m.On("Register", "new@example.com", "pass").Return(&user.User{ID: "id", Email: "new@example.com"}, nil)
	m.On("Register", "taken@example.com", "pass").Return((*user.User)(nil), errors.New("user already exists"))

	handler := handlers.NewUserHandler(m, testLogger())

	t.Run("created", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/register",
			strings.NewReader(`{"email":"new@example.com","password":"pass"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/register",
			strings.NewReader(`{"email":"taken@example.com","password":"pass"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.Register(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "user already exists")
	})
}
