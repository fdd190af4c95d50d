package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

type Claims struct {
	User struct {
		Email string `json:"email"`
		ID    string `json:"id"`
	} `json:"user"`
	jwt.StandardClaims
}
