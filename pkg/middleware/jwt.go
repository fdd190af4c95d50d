package middleware

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"

	"eventfeedback/pkg/claims"
	"eventfeedback/pkg/user"
)

var noSessUrls = map[string]string{
	"/api/users/login":    http.MethodPost,
	"/api/users/register": http.MethodPost,
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"unauthorized"}`))
}

// CheckJWT rejects every authenticated route whose bearer token is missing,
// unparseable, or whose session row has expired. Handlers behind it can rely
// on claims being present in the request context.
func CheckJWT(sessions user.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()

			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w)
				return
			}

			token := strings.TrimPrefix(auth, "Bearer ")

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					return nil, errors.New("bad sign method")
				}
				return []byte(os.Getenv("JWT_SECRET")), nil
			}

			parsed := &claims.Claims{}

			parsedToken, err := jwt.ParseWithClaims(token, parsed, hashSecretGetter)
			if err != nil || !parsedToken.Valid || parsed.User.Email == "" {
				unauthorized(w)
				return
			}

			ok, err := sessions.IsValid(parsed.User.ID)
			if err != nil || !ok {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claims.TokenContextKey, parsed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
