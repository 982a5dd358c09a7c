package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/credkeeper/internal/server/models"
	"github.com/dmitrijs2005/credkeeper/internal/server/users"
)

// UserService is the part of users.Service the handlers need.
type UserService interface {
	Login(ctx context.Context, email, password string) (*users.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	UserIDFromToken(token string) (string, error)
}

// HealthChecker is satisfied by *sql.DB.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string       `json:"token"`
	User   *models.User `json:"user"`
	UserID string       `json:"userId"`
}

type Handler struct {
	users   UserService
	health  HealthChecker
	metrics metrics.Recorder
	logger  logging.Logger
}

func NewHandler(us UserService, hc HealthChecker, mr metrics.Recorder, l logging.Logger) *Handler {
	if mr == nil {
		mr = metrics.Nop{}
	}
	return &Handler{users: us, health: hc, metrics: mr, logger: l}
}

// Login handles POST /login.
//
//	200 {token, user, userId} + authorization and userid headers
//	400 {msg: "Invalid credentials"}
//	500 {error: <message>}
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			h.metrics.RecordLogin(metrics.OutcomeInvalid)
			writeJSON(w, http.StatusBadRequest, msgResponse{Msg: msgInvalidCredentials})
			return
		}
		h.metrics.RecordLogin(metrics.OutcomeError)
		h.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.RecordLogin(metrics.OutcomeSuccess)

	w.Header().Set(common.AccessTokenHeaderName, res.Token)
	w.Header().Set(common.UserIDHeaderName, res.User.ID)
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:  res.Token,
		User:   res.User,
		UserID: res.User.ID,
	})
}

// Signup handles POST /signup.
//
//	201 <created record>
//	400 {error: <message>} for a missing name, email or password
//	500 {error: <message>}
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.metrics.RecordSignup(metrics.OutcomeInvalid)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.metrics.RecordSignup(metrics.OutcomeError)
		h.logger.Error(r.Context(), "signup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.RecordSignup(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusCreated, user)
}

// Me handles GET /me behind RequireToken.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse{Msg: msgUnauthorized})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
