package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/observability"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

// IntakeHandler serves the admin-facing intake record endpoints
type IntakeHandler struct {
	intakes repositories.IntakeRepository
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakes repositories.IntakeRepository) *IntakeHandler {
	return &IntakeHandler{intakes: intakes}
}

// ListPatients handles GET /api/patients
func (h *IntakeHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	records, err := h.intakes.List(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to list intake records")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": records,
		"count":    len(records),
	})
}

// GetPatient handles GET /api/patients/{sessionId}
func (h *IntakeHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	record, err := h.intakes.GetBySessionID(r.Context(), sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "intake record not found")
			return
		}
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("session_id", sessionID).Msg("Failed to get intake record")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// HealthCheck handles GET /health
func (h *IntakeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Tricog Health Assistant API is running",
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
