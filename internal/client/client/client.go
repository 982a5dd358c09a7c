// Package client talks to the credkeeper HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
)

// User is the record shape returned by the server. The password hash is
// never part of it.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResult struct {
	Token  string `json:"token"`
	User   User   `json:"user"`
	UserID string `json:"userId"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// serverMessage covers both failure bodies the server sends:
// {"msg": "..."} and {"error": "..."}.
type serverMessage struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

// Signup creates a new account.
func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (*User, error) {
	req := signupRequest{Name: name, Email: email, Password: string(password)}

	var user User
	if err := c.do(ctx, http.MethodPost, "/signup", "", req, http.StatusCreated, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an access token. A 400 from the server
// is reported as ErrInvalidCredentials.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	req := loginRequest{Email: email, Password: string(password)}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", "", req, http.StatusOK, &res); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &res, nil
}

// Me returns the identity reference the server decodes from token.
func (c *HTTPClient) Me(ctx context.Context, token string) (string, error) {
	var res struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, http.StatusOK, &res); err != nil {
		return "", err
	}
	return res.UserID, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in any, wantStatus int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AccessTokenHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return ErrUnavailable
	}

	var m serverMessage
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&m)

	msg := m.Error
	if msg == "" {
		msg = m.Msg
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
