package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second)
}

func TestSignup_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/signup", r.URL.Path)

		var req signupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, signupRequest{Name: "n", Email: "e@x.y", Password: "pw"}, req)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"u1","name":"n","email":"e@x.y","createdAt":"2024-01-02T03:04:05Z"}`))
	})

	u, err := c.Signup(context.Background(), "n", "e@x.y", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "e@x.y", u.Email)
	assert.Equal(t, 2024, u.CreatedAt.Year())
}

func TestSignup_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"duplicate key"}`))
	})

	_, err := c.Signup(context.Background(), "n", "e", []byte("pw"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "duplicate key", apiErr.Message)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		token   string
	}{
		{name: "ok", status: http.StatusOK, body: `{"token":"tok","user":{"_id":"u1"},"userId":"u1"}`, token: "tok"},
		{name: "invalid credentials", status: http.StatusBadRequest, body: `{"msg":"Invalid credentials"}`, wantErr: ErrInvalidCredentials},
		{name: "unavailable", status: http.StatusServiceUnavailable, body: `{}`, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/login", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := c.Login(context.Background(), "e", []byte("pw"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, res.Token)
			assert.Equal(t, "u1", res.UserID)
			assert.Equal(t, "u1", res.User.ID)
		})
	}
}

func TestMe(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"userId":"u1"}`))
	})

	id, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	_, err = c.Me(context.Background(), "other")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.Login(context.Background(), "e", []byte("pw"))
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}

func TestAPIError_FallsBackToStatusText(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := c.Signup(context.Background(), "n", "e", []byte("pw"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusTeapot), apiErr.Message)
}
