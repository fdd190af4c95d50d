package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventfeedback/pkg/session"
)

const defaultTimeout = 10 * time.Second

// Client issues requests against the feedback service, attaching the bearer
// token from the session store when one is present. It never retries and
// never touches the session or the record cache itself; callers apply
// effects based on the error class.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *session.Store
	Logger  *slog.Logger
}

func New(baseURL string, sess *session.Store, logger *slog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: defaultTimeout},
		Session: sess,
		Logger:  logger,
	}
}

// Do sends one JSON request. body (when non-nil) is marshalled as the
// request payload, out (when non-nil) receives the decoded 2xx response.
// Failures map onto the three classes: ErrUnauthenticated for 401/403,
// *RemoteError for any other non-2xx with a readable body, *TransportError
// when no response arrived.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.Session.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Error("request", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return c.remoteError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Logger.Error("decode response", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	return nil
}

func (c *Client) remoteError(resp *http.Response) error {
	remote := &RemoteError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			remote.Message = body.Message
		} else if body.Error != "" {
			remote.Message = body.Error
		}
	}
	return remote
}
