package session

import (
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"eventfeedback/pkg/claims"
)

// Store holds the bearer token for the lifetime of the process: set on
// login, gone on logout or process exit, never persisted to disk. The token
// is treated as opaque by everything that sends it; the store additionally
// peeks at its JWT claims (without verification, the server owns
// verification) so the UI can show who is logged in and when the token
// expires.
type Store struct {
	mu      sync.Mutex
	token   string
	email   string
	expires time.Time
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.email = ""
	s.expires = time.Time{}

	parsed := &claims.Claims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, parsed); err == nil {
		s.email = parsed.User.Email
		if parsed.ExpiresAt != 0 {
			s.expires = time.Unix(parsed.ExpiresAt, 0)
		}
	}
}

// Get returns the current token; ok is false when no session is active.
func (s *Store) Get() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *Store) Authenticated() bool {
	_, ok := s.Get()
	return ok
}

// Clear drops the session. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.email = ""
	s.expires = time.Time{}
}

// Email reports the email claim of the current token, or "" when there is no
// session or the token is not a decodable JWT.
func (s *Store) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// ExpiresAt reports the exp claim of the current token; zero when unknown.
func (s *Store) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expires
}
