package api

import (
	"net/http"
	"strconv"

	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Questions int    `json:"questions"`
}

type ModeResponse struct {
	Name       string         `json:"name" example:"mock"`
	Label      string         `json:"label" example:"Mock Exam (4h)"`
	Count      int            `json:"count" example:"120"`
	Timed      bool           `json:"timed"`
	Minutes    int            `json:"minutes,omitempty" example:"240"`
	Weights    map[string]int `json:"weights,omitempty"`
	Persistent bool           `json:"persistent"`
}

type FlashcardResponse struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// AnsweredQuestionView is a question with its answer key, used where the
// answer may be revealed: the random drill and post-session review.
type AnsweredQuestionView struct {
	QuestionView
	AnswerIndex int    `json:"answer_index"`
	Explanation string `json:"explanation,omitempty"`
}

// GET /health
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Questions: h.quiz.QuestionCount()})
}

// listModes lists the available session modes.
// @Summary      List modes
// @Tags         Modes
// @Produce      json
// @Success      200  {array}  ModeResponse
// @Router       /modes [get]
func (h *Handler) listModes(w http.ResponseWriter, r *http.Request) {
	modes := h.quiz.Modes()
	response := make([]ModeResponse, len(modes))
	for i, m := range modes {
		resp := ModeResponse{
			Name:       m.Name,
			Label:      m.Label,
			Count:      m.Config.N,
			Timed:      m.Config.Timed,
			Minutes:    m.Config.Minutes,
			Persistent: m.Config.PersistKey != "",
		}
		if m.Config.Weighted() {
			resp.Weights = make(map[string]int, len(m.Config.Weights))
			for _, c := range m.Config.Weights {
				resp.Weights[c.Name] = c.Weight
			}
		}
		response[i] = resp
	}
	respondJSON(w, http.StatusOK, response)
}

// listFlashcards returns the deck.
// @Summary      List flashcards
// @Tags         Flashcards
// @Produce      json
// @Param        shuffle  query  bool  false  "Shuffle the deck"
// @Success      200  {array}   FlashcardResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /flashcards [get]
func (h *Handler) listFlashcards(w http.ResponseWriter, r *http.Request) {
	shuffle := false
	if v := r.URL.Query().Get("shuffle"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "shuffle must be a boolean")
			return
		}
		shuffle = b
	}

	cards := h.quiz.Flashcards(shuffle)
	response := make([]FlashcardResponse, len(cards))
	for i, c := range cards {
		response[i] = toFlashcardResponse(c)
	}
	respondJSON(w, http.StatusOK, response)
}

func toFlashcardResponse(c questionbank.Flashcard) FlashcardResponse {
	return FlashcardResponse{Term: c.Term, Definition: c.Definition}
}

// GET /questions/random
func (h *Handler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.quiz.RandomQuestion()
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toAnsweredQuestionView(q))
}

func toAnsweredQuestionView(q questionbank.Question) AnsweredQuestionView {
	return AnsweredQuestionView{
		QuestionView: *toQuestionView(q),
		AnswerIndex:  q.AnswerIndex,
		Explanation:  q.Explanation,
	}
}
