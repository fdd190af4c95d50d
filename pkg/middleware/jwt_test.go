package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"eventfeedback/pkg/middleware"
)

type stubSessions struct {
	valid bool
}

func (s *stubSessions) Create(userID, sessionID string) (string, error) { return sessionID, nil }
func (s *stubSessions) IsValid(userID string) (bool, error)             { return s.valid, nil }
func (s *stubSessions) Invalidate(userID string) error                  { return nil }

func newProtectedRouter(sessions *stubSessions) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CheckJWT(sessions))
	api.HandleFunc("/feedbacks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{"email": "gopher@example.com", "id": "u1"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestCheckJWTUnauthorizedIsJSON(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	tests := []struct {
		name         string
		auth         string
		sessionValid bool
	}{
		{"missing header", "", false},
		{"malformed token", "Bearer not-a-jwt", false},
		{"dead session", "Bearer " + signedToken(t, "testsecret"), false},
		{"wrong signature", "Bearer " + signedToken(t, "othersecret"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newProtectedRouter(&stubSessions{valid: test.sessionValid})

			req := httptest.NewRequest(http.MethodGet, "/api/feedbacks", nil)
			if test.auth != "" {
				req.Header.Set("Authorization", test.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"message":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestCheckJWTPassesValidSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	r := newProtectedRouter(&stubSessions{valid: true})

	req := httptest.NewRequest(http.MethodGet, "/api/feedbacks", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "testsecret"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
