// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
	"github.com/mlo-prep/backend/internal/store"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoQuestions     = errors.New("no questions loaded")
	ErrInvalidChoice   = errors.New("choice out of range")
	ErrSessionFinished = errors.New("session finished")
	ErrSessionActive   = errors.New("session still in progress")
)

// LiveSession is a running session together with its deadline timer.
type LiveSession struct {
	Mode    practicesession.Mode
	Session *practicesession.Session
	timer   *practicesession.Timer
}

// Expired reports whether the session was ended by its timer.
func (ls *LiveSession) Expired() bool {
	return ls.timer != nil && ls.timer.Expired()
}

func (ls *LiveSession) stopTimer() {
	if ls.timer != nil {
		ls.timer.Stop()
	}
}

// QuizService is the explicit application context: loaded data, the mode
// table, persistence and the registry of live sessions. Handlers and the CLI
// receive it instead of reaching for globals.
type QuizService struct {
	bank      *questionbank.Bank
	modes     practicesession.Modes
	selector  *practicesession.Selector
	store     store.Store
	persister practicesession.Persister
	logger    *slog.Logger
	now       func() time.Time
	interval  time.Duration

	// timers run on this context so they outlive the request that started them
	baseCtx context.Context
	cancel  context.CancelFunc

	mu    sync.RWMutex
	live  map[string]*LiveSession // session id → live session
	byKey map[string]string       // persist key → session id
}

type Option func(*QuizService)

func WithModes(m practicesession.Modes) Option {
	return func(qs *QuizService) { qs.modes = m }
}

func WithSelector(sel *practicesession.Selector) Option {
	return func(qs *QuizService) { qs.selector = sel }
}

func WithClock(now func() time.Time) Option {
	return func(qs *QuizService) { qs.now = now }
}

// WithTimerInterval sets the deadline polling cadence for timed sessions.
func WithTimerInterval(d time.Duration) Option {
	return func(qs *QuizService) { qs.interval = d }
}

// NewQuizService creates a QuizService over bank, persisting snapshots and
// settings in s. It fails when the mode table does not validate.
func NewQuizService(bank *questionbank.Bank, s store.Store, logger *slog.Logger, opts ...Option) (*QuizService, error) {
	if bank == nil {
		bank = questionbank.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	qs := &QuizService{
		bank:     bank,
		modes:    practicesession.DefaultModes(),
		store:    s,
		logger:   logger,
		now:      time.Now,
		interval: practicesession.DefaultPollInterval,
		baseCtx:  ctx,
		cancel:   cancel,
		live:     make(map[string]*LiveSession),
		byKey:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(qs)
	}
	if err := qs.modes.Validate(); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid mode table: %w", err)
	}
	if qs.selector == nil {
		qs.selector = practicesession.NewSelector(nil)
	}
	if s != nil {
		qs.persister = practicesession.NewKVPersister(s, logger)
	}
	return qs, nil
}

// Modes lists the configured modes.
func (qs *QuizService) Modes() practicesession.Modes {
	return qs.modes
}

// QuestionCount is the size of the loaded pool.
func (qs *QuizService) QuestionCount() int {
	return len(qs.bank.Questions)
}

// StartSession begins a session for mode, resuming a persisted one when its
// snapshot is valid. A persisted mode that is already live in this process
// is returned as-is so two engines never write the same key.
func (qs *QuizService) StartSession(ctx context.Context, mode string) (*LiveSession, error) {
	m, err := qs.modes.Lookup(mode)
	if err != nil {
		return nil, err
	}
	if len(qs.bank.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	if key := m.Config.PersistKey; key != "" {
		if sid, ok := qs.byKey[key]; ok {
			if ls, ok := qs.live[sid]; ok {
				return ls, nil
			}
		}
	}
	qs.pruneFinishedLocked()

	opts := []practicesession.Option{
		practicesession.WithClock(qs.now),
		practicesession.WithLogger(qs.logger),
	}
	if qs.persister != nil {
		opts = append(opts, practicesession.WithPersister(qs.persister))
	}
	session := practicesession.New(ctx, m.Config, qs.bank.Questions, qs.selector, opts...)

	ls := &LiveSession{Mode: m, Session: session}
	if m.Config.Timed && !session.Finished() {
		ls.timer = practicesession.NewTimer(session, qs.interval,
			practicesession.OnExpire(func() {
				qs.logger.Info("session time expired", "session_id", session.ID, "mode", m.Name)
			}),
		)
		ls.timer.Start(qs.baseCtx)
	}

	qs.live[session.ID] = ls
	if key := m.Config.PersistKey; key != "" {
		qs.byKey[key] = session.ID
	}

	correct, total := session.Score()
	qs.logger.Info("session started",
		"session_id", session.ID,
		"mode", m.Name,
		"resumed", session.Resumed(),
		"questions", total,
		"correct", correct,
	)
	return ls, nil
}

// pruneFinishedLocked drops finished sessions that are not persisted. Callers
// must hold qs.mu.
func (qs *QuizService) pruneFinishedLocked() {
	for sid, ls := range qs.live {
		if ls.Mode.Config.PersistKey == "" && ls.Session.Finished() {
			ls.stopTimer()
			delete(qs.live, sid)
		}
	}
}

// Session looks up a live session.
func (qs *QuizService) Session(sessionID string) (*LiveSession, error) {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	ls, ok := qs.live[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return ls, nil
}

// Answer submits choice for the current question. accepted is false when the
// question was already answered.
func (qs *QuizService) Answer(sessionID string, choice int) (res practicesession.AnswerResult, accepted bool, err error) {
	ls, err := qs.Session(sessionID)
	if err != nil {
		return res, false, err
	}
	q, ok := ls.Session.Current()
	if !ok {
		return res, false, ErrSessionFinished
	}
	if choice < 0 || choice >= len(q.Choices) {
		return res, false, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidChoice, choice, len(q.Choices))
	}

	res, accepted = ls.Session.Answer(choice)
	if accepted {
		qs.logger.Debug("answer recorded",
			"session_id", sessionID,
			"question_id", res.QuestionID,
			"correct", res.Correct,
		)
	}
	return res, accepted, nil
}

// Next advances the session; the timer stops once the last question is passed.
func (qs *QuizService) Next(sessionID string) (*LiveSession, error) {
	ls, err := qs.Session(sessionID)
	if err != nil {
		return nil, err
	}
	ls.Session.Next()
	if ls.Session.Finished() {
		ls.stopTimer()
		qs.logFinished(ls, "completed")
	}
	return ls, nil
}

// Finish force-finishes a session.
func (qs *QuizService) Finish(sessionID string) (*LiveSession, error) {
	ls, err := qs.Session(sessionID)
	if err != nil {
		return nil, err
	}
	ls.Session.ForceFinish()
	ls.stopTimer()
	qs.logFinished(ls, "forced")
	return ls, nil
}

// Reset discards a session and its persisted snapshot, so the next start for
// the same mode draws a fresh question set.
func (qs *QuizService) Reset(ctx context.Context, sessionID string) error {
	qs.mu.Lock()
	ls, ok := qs.live[sessionID]
	if ok {
		delete(qs.live, sessionID)
		if key := ls.Mode.Config.PersistKey; key != "" && qs.byKey[key] == sessionID {
			delete(qs.byKey, key)
		}
	}
	qs.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	ls.stopTimer()
	if err := ls.Session.Reset(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
		qs.logger.Warn("failed to clear persisted session", "session_id", sessionID, "error", err)
	}
	qs.logger.Info("session reset", "session_id", sessionID, "mode", ls.Mode.Name)
	return nil
}

// ResetMode clears the persisted snapshot of a mode even when no session for
// it is live in this process.
func (qs *QuizService) ResetMode(ctx context.Context, mode string) error {
	m, err := qs.modes.Lookup(mode)
	if err != nil {
		return err
	}
	key := m.Config.PersistKey
	if key == "" {
		return nil
	}

	qs.mu.RLock()
	sid, live := qs.byKey[key]
	qs.mu.RUnlock()
	if live {
		return qs.Reset(ctx, sid)
	}

	if qs.persister == nil {
		return nil
	}
	if err := qs.persister.Delete(ctx, key); err != nil && !errors.Is(err, store.ErrNotFound) {
		qs.logger.Warn("failed to clear persisted session", "key", key, "error", err)
	}
	return nil
}

func (qs *QuizService) logFinished(ls *LiveSession, reason string) {
	correct, total := ls.Session.Score()
	qs.logger.Info("session finished",
		"session_id", ls.Session.ID,
		"mode", ls.Mode.Name,
		"reason", reason,
		"correct", correct,
		"total", total,
	)
}

// Review returns the session's questions, answer keys included, once the
// session is finished.
func (qs *QuizService) Review(sessionID string) ([]questionbank.Question, error) {
	ls, err := qs.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if !ls.Session.Finished() {
		return nil, ErrSessionActive
	}
	return ls.Session.Snapshot().QSet, nil
}

// RandomQuestion draws one question from the whole pool.
func (qs *QuizService) RandomQuestion() (questionbank.Question, error) {
	picked := qs.selector.Pick(practicesession.DefaultConfig(), qs.bank.Questions)
	if len(picked) == 0 {
		return questionbank.Question{}, ErrNoQuestions
	}
	return picked[0], nil
}

// Flashcards returns a copy of the deck, optionally shuffled.
func (qs *QuizService) Flashcards(shuffle bool) []questionbank.Flashcard {
	cards := make([]questionbank.Flashcard, len(qs.bank.Flashcards))
	copy(cards, qs.bank.Flashcards)
	if shuffle {
		practicesession.Shuffle(qs.selector.Shuffler(), cards)
	}
	return cards
}

// Close stops every live timer.
func (qs *QuizService) Close() {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	for _, ls := range qs.live {
		ls.stopTimer()
	}
	qs.cancel()
}
