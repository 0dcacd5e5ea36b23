package handler

import (
	"net/http"

	"daily-diet/internal/model"
	"daily-diet/internal/service"

	"github.com/rs/zerolog"
)

// SessionCookie describes the cookie that carries an issued session token.
type SessionCookie struct {
	Name   string
	MaxAge int
}

// UserHandler handles user registration requests.
type UserHandler struct {
	service service.UserService
	cookie  SessionCookie
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, cookie SessionCookie, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		cookie:  cookie,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /users requests. The new session token is returned
// as a cookie.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to register user", h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookie.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}
