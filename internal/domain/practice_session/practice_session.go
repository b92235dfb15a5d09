package practicesession

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mlo-prep/backend/internal/domain/questionbank"
	"github.com/mlo-prep/backend/internal/id"
)

// Session walks a fixed question set, tracking position, score and the
// per-question answer lock. A session is InProgress while the cursor points
// at a question and Finished once it has moved past the last one.
//
// Methods are safe to call from the timer goroutine and the owning caller
// at the same time.
type Session struct {
	ID     string
	Config SessionConfig

	mu      sync.Mutex
	qset    []questionbank.Question
	cursor  int
	correct int
	locked  bool
	startTs time.Time
	endTs   time.Time
	resumed bool
	// set by Reset; a discarded session never writes its snapshot again
	discarded bool

	persister Persister
	now       func() time.Time
	logger    *slog.Logger
}

// AnswerResult is the feedback for one answer.
type AnswerResult struct {
	QuestionID   string
	Chosen       int
	CorrectIndex int
	Correct      bool
	Explanation  string
}

type Option func(*Session)

// WithPersister enables snapshot persistence for configs with a PersistKey.
func WithPersister(p Persister) Option {
	return func(s *Session) { s.persister = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithID sets the session id instead of generating one.
func WithID(sessionID string) Option {
	return func(s *Session) { s.ID = sessionID }
}

// New creates a session for cfg. When cfg has a PersistKey and a persister
// is configured, a valid stored snapshot is resumed as-is; otherwise a fresh
// question set is drawn from pool with sel.
func New(ctx context.Context, cfg SessionConfig, pool []questionbank.Question, sel *Selector, opts ...Option) *Session {
	s := &Session{
		ID:     id.GenerateID(),
		Config: cfg,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persistent() {
		if snap, ok := s.persister.Load(ctx, cfg.PersistKey); ok {
			s.restore(snap)
			s.logger.Info("session resumed",
				"session_id", s.ID,
				"key", cfg.PersistKey,
				"cursor", s.cursor,
				"total", len(s.qset),
			)
			return s
		}
	}

	if sel == nil {
		sel = NewSelector(nil)
	}
	s.qset = sel.Pick(cfg, pool)
	s.startTs = s.now()
	s.endTs = s.startTs.Add(cfg.Duration())
	s.persist()
	return s
}

func (s *Session) persistent() bool {
	return s.persister != nil && s.Config.PersistKey != ""
}

func (s *Session) restore(snap Snapshot) {
	s.qset = snap.QSet
	s.cursor = *snap.Cursor
	s.correct = snap.Correct
	s.locked = snap.Locked
	s.startTs = time.UnixMilli(*snap.StartTs)
	s.endTs = time.UnixMilli(*snap.EndTs)
	s.resumed = true
}

// persist writes the current state. Failures are logged and swallowed; the
// in-memory state stays authoritative. Callers must hold s.mu or be the
// constructor.
func (s *Session) persist() {
	if !s.persistent() || s.discarded {
		return
	}
	if err := s.persister.Save(context.Background(), s.Config.PersistKey, s.snapshotLocked()); err != nil {
		s.logger.Warn("session persist failed",
			"session_id", s.ID,
			"key", s.Config.PersistKey,
			"error", err,
		)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	cursor := s.cursor
	qset := make([]questionbank.Question, len(s.qset))
	copy(qset, s.qset)
	return Snapshot{
		QSet:    qset,
		Cursor:  &cursor,
		Correct: s.correct,
		Locked:  s.locked,
		StartTs: toMillis(s.startTs),
		EndTs:   toMillis(s.endTs),
	}
}

// Snapshot returns a copy of the current state in persisted form.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Current returns the question under the cursor; false once finished.
func (s *Session) Current() (questionbank.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.qset) {
		return questionbank.Question{}, false
	}
	return s.qset[s.cursor], true
}

// Answer records choice for the current question and locks it. It is a
// no-op (false) when the session is finished or the question is already
// locked, so repeated calls never double count.
func (s *Session) Answer(choice int) (AnswerResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.qset) || s.locked {
		return AnswerResult{}, false
	}

	q := s.qset[s.cursor]
	s.locked = true
	ok := q.IsCorrect(choice)
	if ok {
		s.correct++
	}
	s.persist()

	return AnswerResult{
		QuestionID:   q.ID,
		Chosen:       choice,
		CorrectIndex: q.AnswerIndex,
		Correct:      ok,
		Explanation:  q.Explanation,
	}, true
}

// Next unlocks and advances to the following question. No-op when finished.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.qset) {
		return false
	}
	s.locked = false
	s.cursor++
	s.persist()
	return true
}

// ForceFinish jumps to the finished state, e.g. when time runs out.
func (s *Session) ForceFinish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = len(s.qset)
	s.persist()
}

// Reset drops the persisted snapshot so the next session for this key
// starts fresh, and finishes this one. Later mutations, such as a timer
// force-finish already in flight, no longer persist.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = len(s.qset)
	s.locked = false
	s.discarded = true
	if !s.persistent() {
		return nil
	}
	return s.persister.Delete(ctx, s.Config.PersistKey)
}

// Score returns the number answered correctly and the fixed total.
func (s *Session) Score() (correct, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct, len(s.qset)
}

// TimeRemaining is endTs minus now; negative after expiry. Only meaningful
// for timed sessions.
func (s *Session) TimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTs.Sub(s.now())
}

func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.qset)
}

func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Index is the zero-based cursor.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.qset)
}

// CorrectIndex is the answer index of the current question, or -1 once
// finished.
func (s *Session) CorrectIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.qset) {
		return -1
	}
	return s.qset[s.cursor].AnswerIndex
}

// Resumed reports whether the session was restored from a snapshot.
func (s *Session) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}

func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTs
}

func (s *Session) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTs
}
