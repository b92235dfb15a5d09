// internal/api/router.go
package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mlo-prep/backend/docs" // swagger spec
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Modes
	mux.HandleFunc("GET /modes", h.listModes)

	// Sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answer", h.answer)
	mux.HandleFunc("POST /sessions/{sessionID}/next", h.next)
	mux.HandleFunc("POST /sessions/{sessionID}/finish", h.finish)
	mux.HandleFunc("GET /sessions/{sessionID}/review", h.review)
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.resetSession)
	mux.HandleFunc("DELETE /modes/{mode}/session", h.resetMode)

	// Study material
	mux.HandleFunc("GET /flashcards", h.listFlashcards)
	mux.HandleFunc("GET /questions/random", h.randomQuestion)

	// Settings
	mux.HandleFunc("GET /settings", h.getSettings)
	mux.HandleFunc("PUT /settings", h.updateSettings)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
}

// NewRouter builds the full handler chain: Logging → CORS → mux.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return Logging(h.logger)(CORS(mux))
}
