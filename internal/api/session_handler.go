package api

import (
	"net/http"
	"time"

	"github.com/mlo-prep/backend/internal/domain/questionbank"
	"github.com/mlo-prep/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Mode string `json:"mode" validate:"required" example:"quick10"`
}

// QuestionView is a question as shown before it is answered: no answer key.
type QuestionView struct {
	ID       string   `json:"id" example:"fed-017"`
	Category string   `json:"category" example:"federal"`
	Prompt   string   `json:"prompt"`
	Stem     string   `json:"stem,omitempty"`
	Choices  []string `json:"choices"`
}

type SessionResponse struct {
	ID          string        `json:"id"`
	Mode        string        `json:"mode" example:"mock"`
	Label       string        `json:"label" example:"Mock Exam (4h)"`
	Index       int           `json:"index"`
	Total       int           `json:"total"`
	Correct     int           `json:"correct"`
	Finished    bool          `json:"finished"`
	Locked      bool          `json:"locked"`
	Resumed     bool          `json:"resumed"`
	Expired     bool          `json:"expired"`
	Timed       bool          `json:"timed"`
	StartedAt   time.Time     `json:"started_at"`
	RemainingMs *int64        `json:"remaining_ms,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Question    *QuestionView `json:"question,omitempty"`
}

type AnswerRequest struct {
	Choice *int `json:"choice" validate:"required,gte=0" example:"2"`
}

type AnswerResponse struct {
	Accepted     bool            `json:"accepted"`
	Correct      bool            `json:"correct"`
	Chosen       int             `json:"chosen"`
	CorrectIndex int             `json:"correct_index"`
	Explanation  string          `json:"explanation,omitempty"`
	Session      SessionResponse `json:"session"`
}

func toQuestionView(q questionbank.Question) *QuestionView {
	return &QuestionView{
		ID:       q.ID,
		Category: q.Category,
		Prompt:   q.Prompt,
		Stem:     q.Stem,
		Choices:  q.Choices,
	}
}

func toSessionResponse(ls *service.LiveSession) SessionResponse {
	s := ls.Session
	correct, total := s.Score()
	resp := SessionResponse{
		ID:       s.ID,
		Mode:     ls.Mode.Name,
		Label:    ls.Mode.Label,
		Index:    s.Index(),
		Total:    total,
		Correct:  correct,
		Finished: s.Finished(),
		Locked:   s.Locked(),
		Resumed:  s.Resumed(),
		Expired:  ls.Expired(),
		Timed:    ls.Mode.Config.Timed,

		StartedAt: s.StartedAt().UTC(),
	}
	if resp.Timed {
		remaining := max(s.TimeRemaining().Milliseconds(), 0)
		deadline := s.Deadline().UTC()
		resp.RemainingMs = &remaining
		resp.Deadline = &deadline
	}
	if q, ok := s.Current(); ok {
		resp.Question = toQuestionView(q)
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts (or resumes) a session for a mode.
// @Summary      Start a session
// @Description  Draws a question set for the mode. Persisted modes resume an in-progress session.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Mode to start"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "unknown mode"
// @Failure      422   {object}  ErrorResponse  "no questions loaded"
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ls, err := h.quiz.StartSession(r.Context(), req.Mode)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(ls))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ls, err := h.quiz.Session(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(ls))
}

// answer submits a choice for the current question.
// @Summary      Answer the current question
// @Description  Locks the current question and scores it. Repeat answers are ignored (accepted=false).
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string         true  "Session ID"
// @Param        body       body      AnswerRequest  true  "Chosen index"
// @Success      200        {object}  AnswerResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "session finished"
// @Router       /sessions/{sessionID}/answer [post]
func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, accepted, err := h.quiz.Answer(sessionID, *req.Choice)
	if h.handleServiceError(w, err) {
		return
	}
	ls, err := h.quiz.Session(sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	resp := AnswerResponse{
		Accepted: accepted,
		Session:  toSessionResponse(ls),
	}
	if accepted {
		resp.Correct = res.Correct
		resp.Chosen = res.Chosen
		resp.CorrectIndex = res.CorrectIndex
		resp.Explanation = res.Explanation
	} else {
		resp.Chosen = *req.Choice
		resp.CorrectIndex = ls.Session.CorrectIndex()
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /sessions/{sessionID}/next
func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	ls, err := h.quiz.Next(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(ls))
}

// POST /sessions/{sessionID}/finish
func (h *Handler) finish(w http.ResponseWriter, r *http.Request) {
	ls, err := h.quiz.Finish(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(ls))
}

// review returns the questions of a finished session with their answers.
// @Summary      Review a finished session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {array}   AnsweredQuestionView
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "session still in progress"
// @Router       /sessions/{sessionID}/review [get]
func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quiz.Review(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}

	response := make([]AnsweredQuestionView, len(questions))
	for i, q := range questions {
		response[i] = toAnsweredQuestionView(q)
	}
	respondJSON(w, http.StatusOK, response)
}

// resetSession discards a session and any persisted snapshot.
// @Summary      Reset a session
// @Tags         Sessions
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	if h.handleServiceError(w, h.quiz.Reset(r.Context(), r.PathValue("sessionID"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /modes/{mode}/session
func (h *Handler) resetMode(w http.ResponseWriter, r *http.Request) {
	if h.handleServiceError(w, h.quiz.ResetMode(r.Context(), r.PathValue("mode"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
