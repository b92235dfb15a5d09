package api

import (
	"net/http"

	"github.com/mlo-prep/backend/internal/service"
)

type SettingsRequest struct {
	FlashcardsFirstSide string `json:"flashcardsFirstSide" validate:"required" example:"term"`
	Sound               bool   `json:"sound"`
}

// GET /settings
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quiz.Settings(r.Context()))
}

// updateSettings replaces the study settings.
// @Summary      Update settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        body  body      SettingsRequest  true  "New settings"
// @Success      200   {object}  service.Settings
// @Failure      400   {object}  ErrorResponse
// @Router       /settings [put]
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	next := service.Settings{
		FlashcardsFirstSide: req.FlashcardsFirstSide,
		Sound:               req.Sound,
	}
	if h.handleServiceError(w, h.quiz.UpdateSettings(r.Context(), next)) {
		return
	}
	respondJSON(w, http.StatusOK, next)
}
