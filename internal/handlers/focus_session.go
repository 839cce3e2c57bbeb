package handlers

import (
	"encoding/json"
	"net/http"

	"getitdone-backend/internal/middleware"
	"getitdone-backend/internal/models"
	"getitdone-backend/internal/services"
)

type FocusSessionHandler struct {
	focusService *services.FocusService
}

func NewFocusSessionHandler(focusService *services.FocusService) *FocusSessionHandler {
	return &FocusSessionHandler{focusService: focusService}
}

func (h *FocusSessionHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.focusService.Record(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Focus session saved!",
		"session": session,
	})
}

func (h *FocusSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.focusService.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch focus sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}
