package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlo-prep/backend/internal/api"
	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
	"github.com/mlo-prep/backend/internal/infrastructure/logging"
	"github.com/mlo-prep/backend/internal/service"
	"github.com/mlo-prep/backend/internal/store"
)

var testNow = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	bank    *questionbank.Bank
}

func newBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	bank := questionbank.New()
	for _, cat := range []string{"federal", "state", "general", "origination", "ethics"} {
		for i := 0; i < 30; i++ {
			require.NoError(t, bank.AddQuestion(questionbank.Question{
				ID:          fmt.Sprintf("%s-%d", cat, i),
				Category:    cat,
				Prompt:      "prompt",
				Choices:     []string{"a", "b", "c", "d"},
				AnswerIndex: i % 4,
				Explanation: "because",
			}))
		}
	}
	require.NoError(t, bank.AddFlashcard(questionbank.Flashcard{Term: "APR", Definition: "Annual percentage rate"}))
	require.NoError(t, bank.AddFlashcard(questionbank.Flashcard{Term: "LTV", Definition: "Loan to value"}))
	return bank
}

func newTestServer(t *testing.T, bank *questionbank.Bank) testServer {
	t.Helper()
	svc, err := service.NewQuizService(bank, store.NewMemory(), logging.Discard(),
		service.WithClock(func() time.Time { return testNow }),
		service.WithSelector(practicesession.NewSelector(practicesession.NewShuffler(7))),
		service.WithTimerInterval(5*time.Millisecond),
	)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return testServer{
		handler: api.NewRouter(api.NewHandler(svc, logging.Discard())),
		bank:    bank,
	}
}

func (ts testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (ts testServer) answerKey(t *testing.T, questionID string) int {
	t.Helper()
	for _, q := range ts.bank.Questions {
		if q.ID == questionID {
			return q.AnswerIndex
		}
	}
	t.Fatalf("question %s not in bank", questionID)
	return -1
}

func (ts testServer) start(t *testing.T, mode string) api.SessionResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/sessions", api.CreateSessionRequest{Mode: mode})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.SessionResponse](t, rec)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[api.HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 150, resp.Questions)
}

func TestListModes(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/modes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	modes := decode[[]api.ModeResponse](t, rec)
	require.Len(t, modes, 3)
	assert.Equal(t, "random", modes[0].Name)
	assert.Equal(t, 10, modes[1].Count)

	mock := modes[2]
	assert.Equal(t, "Mock Exam (4h)", mock.Label)
	assert.True(t, mock.Timed)
	assert.True(t, mock.Persistent)
	assert.Equal(t, 240, mock.Minutes)
	assert.Equal(t, map[string]int{"federal": 24, "state": 11, "general": 20, "origination": 27, "ethics": 18}, mock.Weights)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodPost, "/sessions", api.CreateSessionRequest{Mode: "quick10"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "answer")

	s := decode[api.SessionResponse](t, rec)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "quick10", s.Mode)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 0, s.Index)
	assert.False(t, s.Timed)
	assert.Nil(t, s.RemainingMs)
	require.NotNil(t, s.Question)
	assert.Len(t, s.Question.Choices, 4)
}

func TestCreateSession_Errors(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"unknown mode", api.CreateSessionRequest{Mode: "marathon"}, http.StatusNotFound},
		{"missing mode", api.CreateSessionRequest{}, http.StatusBadRequest},
		{"malformed json", `{"mode":`, http.StatusBadRequest},
		{"unknown field", `{"mode":"quick10","n":5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decode[api.ErrorResponse](t, rec).Error)
		})
	}
}

func TestCreateSession_NoQuestions(t *testing.T) {
	ts := newTestServer(t, questionbank.New())

	rec := ts.do(t, http.MethodPost, "/sessions", api.CreateSessionRequest{Mode: "quick10"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMockSession_TimedAndShared(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	first := ts.start(t, "mock")
	assert.True(t, first.Timed)
	assert.Equal(t, 120, first.Total)
	require.NotNil(t, first.RemainingMs)
	assert.Equal(t, int64(240*time.Minute/time.Millisecond), *first.RemainingMs)
	require.NotNil(t, first.Deadline)
	assert.True(t, first.Deadline.Equal(testNow.Add(240*time.Minute)))

	second := ts.start(t, "mock")
	assert.Equal(t, first.ID, second.ID)
}

func TestAnswerFlow(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "quick10")
	path := "/sessions/" + s.ID

	key := ts.answerKey(t, s.Question.ID)
	rec := ts.do(t, http.MethodPost, path+"/answer", map[string]int{"choice": key})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[api.AnswerResponse](t, rec)
	assert.True(t, first.Accepted)
	assert.True(t, first.Correct)
	assert.Equal(t, key, first.CorrectIndex)
	assert.Equal(t, "because", first.Explanation)
	assert.True(t, first.Session.Locked)
	assert.Equal(t, 1, first.Session.Correct)

	// a second answer to the same question is ignored
	rec = ts.do(t, http.MethodPost, path+"/answer", map[string]int{"choice": (key + 1) % 4})
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[api.AnswerResponse](t, rec)
	assert.False(t, again.Accepted)
	assert.Equal(t, key, again.CorrectIndex)
	assert.Equal(t, 1, again.Session.Correct)

	rec = ts.do(t, http.MethodPost, path+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	next := decode[api.SessionResponse](t, rec)
	assert.Equal(t, 1, next.Index)
	assert.False(t, next.Locked)
	assert.NotEqual(t, s.Question.ID, next.Question.ID)

	rec = ts.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[api.SessionResponse](t, rec).Index)
}

func TestAnswer_Errors(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "quick10")
	path := "/sessions/" + s.ID + "/answer"

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, path, map[string]int{"choice": 4}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, path, map[string]int{"choice": -1}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, path, `{}`).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/sessions/nope/answer", map[string]int{"choice": 0}).Code)

	// choice 0 is a valid answer, not a missing field
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, path, map[string]int{"choice": 0}).Code)
}

func TestFinish(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "quick10")
	path := "/sessions/" + s.ID

	rec := ts.do(t, http.MethodPost, path+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[api.SessionResponse](t, rec)
	assert.True(t, done.Finished)
	assert.Equal(t, 10, done.Index)
	assert.Nil(t, done.Question)

	rec = ts.do(t, http.MethodPost, path+"/answer", map[string]int{"choice": 0})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// finishing twice changes nothing
	rec = ts.do(t, http.MethodPost, path+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[api.SessionResponse](t, rec).Index)
}

func TestReview(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "quick10")
	path := "/sessions/" + s.ID

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodGet, path+"/review", nil).Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, path+"/finish", nil).Code)

	rec := ts.do(t, http.MethodGet, path+"/review", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	review := decode[[]api.AnsweredQuestionView](t, rec)
	require.Len(t, review, 10)
	assert.Equal(t, s.Question.ID, review[0].ID)
	for _, q := range review {
		assert.Equal(t, ts.answerKey(t, q.ID), q.AnswerIndex)
	}

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/sessions/nope/review", nil).Code)
}

func TestResetSession(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "mock")

	rec := ts.do(t, http.MethodDelete, "/sessions/"+s.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/sessions/"+s.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/sessions/"+s.ID, nil).Code)

	fresh := ts.start(t, "mock")
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.False(t, fresh.Resumed)
}

func TestResetMode(t *testing.T) {
	ts := newTestServer(t, newBank(t))
	s := ts.start(t, "mock")

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/modes/mock/session", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/sessions/"+s.ID, nil).Code)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/modes/quick10/session", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/modes/marathon/session", nil).Code)
}

func TestListFlashcards(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/flashcards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cards := decode[[]api.FlashcardResponse](t, rec)
	require.Len(t, cards, 2)
	assert.Equal(t, "APR", cards[0].Term)

	rec = ts.do(t, http.MethodGet, "/flashcards?shuffle=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.FlashcardResponse](t, rec), 2)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/flashcards?shuffle=maybe", nil).Code)
}

func TestRandomQuestion(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/questions/random", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	q := decode[api.AnsweredQuestionView](t, rec)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, ts.answerKey(t, q.ID), q.AnswerIndex)

	empty := newTestServer(t, questionbank.New())
	assert.Equal(t, http.StatusUnprocessableEntity, empty.do(t, http.MethodGet, "/questions/random", nil).Code)
}

func TestSettings(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.DefaultSettings(), decode[service.Settings](t, rec))

	rec = ts.do(t, http.MethodPut, "/settings", api.SettingsRequest{FlashcardsFirstSide: "back"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, "/settings", api.SettingsRequest{FlashcardsFirstSide: "definition", Sound: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.Settings{FlashcardsFirstSide: "definition", Sound: true}, decode[service.Settings](t, rec))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodOptions, "/sessions", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDoc(t *testing.T) {
	ts := newTestServer(t, newBank(t))

	rec := ts.do(t, http.MethodGet, "/swagger/doc.json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "MLO Prep API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/sessions/{sessionID}/answer")
	assert.Contains(t, doc.Paths, "/sessions/{sessionID}/review")
}
