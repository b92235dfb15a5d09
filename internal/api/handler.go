// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/service"
)

// maxBodyBytes caps request bodies; every request payload here is tiny.
const maxBodyBytes = 1 << 16

var validate = validator.New()

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz   *service.QuizService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(quiz *service.QuizService, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:   quiz,
		logger: logger,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. It writes a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, practicesession.ErrUnknownMode):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoQuestions):
		respondError(w, http.StatusUnprocessableEntity, "no questions loaded")
	case errors.Is(err, service.ErrInvalidChoice):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionFinished):
		respondError(w, http.StatusConflict, "session finished")
	case errors.Is(err, service.ErrSessionActive):
		respondError(w, http.StatusConflict, "session still in progress")
	case errors.Is(err, service.ErrInvalidSettings):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
