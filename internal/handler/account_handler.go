package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/metrics"
	"github.com/okovalenko/todovault/internal/service"
)

// AccountHandler serves registration, login, logout, session and
// login-history requests.
type AccountHandler struct {
	accounts *service.AccountService
	sessions *service.SessionService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	accounts *service.AccountService,
	sessions *service.SessionService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
		metrics:  m,
		logger:   logger.With().Str("handler", "account").Logger(),
	}
}

// writeError renders err as a JSON error response.
func (h *AccountHandler) writeError(w http.ResponseWriter, err error) {
	status, token := errorToken(err)
	if h.metrics != nil && errors.Is(err, domain.ErrStorage) {
		h.metrics.IncStoreErrors()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, apiError{Error: token, Message: err.Error()})
}

// registerRequest is the body for POST /api/register.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// sessionResponse reports the active username.
type sessionResponse struct {
	Username string `json:"username"`
}

// historyResponse lists the recent login timestamps, most-recent-first.
type historyResponse struct {
	Entries []string `json:"entries"`
}

// Register handles POST /api/register.
// On success the client is expected to move on to login, matching the
// registration screen flow.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.Confirm,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Username: user.Username})
}

// loginRequest is the body for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login: authenticate, then record the session and
// a login-history entry.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.sessions.Login(r.Context(), user.Username); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Username: user.Username})
}

// Logout handles POST /api/logout. History and tasks survive a logout.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session.
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	username, err := h.sessions.Current(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Username: username})
}

// History handles GET /api/history.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.sessions.History(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if history == nil {
		history = domain.LoginHistory{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Entries: history})
}
