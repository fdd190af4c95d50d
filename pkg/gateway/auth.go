package gateway

import (
	"context"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The service answers 201 with no token; the
// user logs in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.Do(ctx, http.MethodPost, "/api/users/register", credentials{Email: email, Password: password}, nil)
}

// Login exchanges credentials for a bearer token. Storing the token is the
// caller's decision, not the gateway's.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/users/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
