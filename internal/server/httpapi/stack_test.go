package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/auth"
	usersrepo "github.com/dmitrijs2005/credkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/credkeeper/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const stackSecret = "stack-secret"

func newStackRouter(t *testing.T, repo usersrepo.Repository) http.Handler {
	t.Helper()
	hasher, err := auth.NewHasher("bcrypt", bcrypt.MinCost)
	require.NoError(t, err)

	svc := users.NewService(repo, hasher, stackSecret, logging.Nop{})
	return NewRouter(RouterDeps{Users: svc, Logger: logging.Nop{}})
}

func TestStack_SignupThenLogin(t *testing.T) {
	h := newStackRouter(t, usersrepo.NewMemoryRepository())

	rr := doJSON(t, h, http.MethodPost, "/signup", `{"name":"Test","email":"test@example.com","password":"1234"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	created := decodeBody(t, rr)
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Test", created["name"])
	assert.Equal(t, "test@example.com", created["email"])
	assert.NotContains(t, rr.Body.String(), "$2a$")
	assert.NotContains(t, rr.Body.String(), "1234")

	t.Run("unknown email", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/login", `{"email":"nobody@example.com","password":"1234"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, map[string]any{"msg": "Invalid credentials"}, decodeBody(t, rr))
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/login", `{"email":"test@example.com","password":"12345"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, map[string]any{"msg": "Invalid credentials"}, decodeBody(t, rr))
	})

	t.Run("match", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/login", `{"email":"test@example.com","password":"1234"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Token  string         `json:"token"`
			User   map[string]any `json:"user"`
			UserID string         `json:"userId"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

		assert.Equal(t, body.Token, rr.Header().Get(common.AccessTokenHeaderName))
		assert.Equal(t, id, rr.Header().Get(common.UserIDHeaderName))
		assert.Equal(t, id, body.UserID)
		assert.Equal(t, id, body.User["_id"])

		got, err := auth.GetUserIDFromToken(body.Token, []byte(stackSecret))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})
}

func TestStack_SignupRequiresAllFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no name", body: `{"email":"a@b.c","password":"pw"}`, want: "validation error: name is required"},
		{name: "no email", body: `{"name":"n","password":"pw"}`, want: "validation error: email is required"},
		{name: "no password", body: `{"name":"n","email":"a@b.c"}`, want: "validation error: password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := usersrepo.NewMemoryRepository()
			h := newStackRouter(t, repo)

			rr := doJSON(t, h, http.MethodPost, "/signup", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, map[string]any{"error": tt.want}, decodeBody(t, rr))

			rr = doJSON(t, h, http.MethodPost, "/login", `{"email":"a@b.c","password":"pw"}`)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "nothing was stored")
		})
	}
}

func TestStack_PostgresFailuresKeepDriverMessage(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM users`).
			WithArgs("test@example.com").
			WillReturnError(errors.New("Server error"))

		h := newStackRouter(t, usersrepo.NewPostgresRepository(db))
		rr := doJSON(t, h, http.MethodPost, "/login", `{"email":"test@example.com","password":"1234"}`)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, map[string]any{"error": "Server error"}, decodeBody(t, rr))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("Test", "test@example.com", sqlmock.AnyArg()).
			WillReturnError(errors.New("Server error"))

		h := newStackRouter(t, usersrepo.NewPostgresRepository(db))
		rr := doJSON(t, h, http.MethodPost, "/signup", `{"name":"Test","email":"test@example.com","password":"1234"}`)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, map[string]any{"error": "Server error"}, decodeBody(t, rr))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
