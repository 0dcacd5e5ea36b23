package handler

import (
	"net/http"

	"daily-diet/internal/auth"
	"daily-diet/internal/model"
	"daily-diet/internal/service"

	"github.com/rs/zerolog"
)

// MealHandler handles meal ledger HTTP requests. Routes are expected behind
// the session middleware, which stores the authorization context.
type MealHandler struct {
	service service.MealService
	logger  zerolog.Logger
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(service service.MealService, logger zerolog.Logger) *MealHandler {
	return &MealHandler{
		service: service,
		logger:  logger.With().Str("handler", "meal").Logger(),
	}
}

func (h *MealHandler) authContext(w http.ResponseWriter, r *http.Request) (auth.Context, bool) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrUnauthorised.Message, h.logger)
	}
	return ac, ok
}

// Create handles POST /meals requests.
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	var req model.MealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	if _, err := h.service.Create(r.Context(), ac, &req); err != nil {
		writeServiceError(w, err, "failed to create meal", h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// List handles GET /meals requests.
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	meals, err := h.service.ListAll(r.Context(), ac)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve meals", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"meals": meals})
}

// Get handles GET /meals/{id} requests.
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	meal, err := h.service.GetOne(r.Context(), ac, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve meal", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"meal": meal})
}

// Update handles PUT /meals/{id} requests.
func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	var req model.MealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	fields, err := h.service.Update(r.Context(), ac, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update meal", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": fields})
}

// Delete handles DELETE /meals/{id} requests.
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), ac, r.PathValue("id")); err != nil {
		writeServiceError(w, err, "failed to delete meal", h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Metrics handles GET /meals/metrics requests.
func (h *MealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	metrics, err := h.service.Metrics(r.Context(), ac)
	if err != nil {
		writeServiceError(w, err, "failed to compute metrics", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"metrics": metrics})
}

// Export handles POST /meals/export requests.
func (h *MealHandler) Export(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.authContext(w, r)
	if !ok {
		return
	}

	result, err := h.service.Export(r.Context(), ac)
	if err != nil {
		writeServiceError(w, err, "failed to export meals", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
