package practicesession

import (
	"errors"
	"time"

	"github.com/mlo-prep/backend/internal/domain/category"
)

// SessionConfig describes how a session's question set is drawn and whether
// it runs against a deadline. It is built once per mode and never mutated.
type SessionConfig struct {
	N          int              // number of questions to draw
	Timed      bool             // true = session has a deadline
	Minutes    int              // deadline length, required iff Timed
	Weights    category.Weights // empty = unweighted draw
	PersistKey string           // empty = session is not persisted
}

// DefaultConfig returns an untimed, unweighted single-question config.
func DefaultConfig() SessionConfig {
	return SessionConfig{N: 1}
}

// Weighted reports whether questions are drawn per category quota.
func (c SessionConfig) Weighted() bool {
	return len(c.Weights) > 0
}

// Duration is the session length for timed configs, zero otherwise.
func (c SessionConfig) Duration() time.Duration {
	if !c.Timed {
		return 0
	}
	return time.Duration(c.Minutes) * time.Minute
}

// Validate enforces the config invariants.
func (c SessionConfig) Validate() error {
	if c.N < 0 {
		return errors.New("question count cannot be negative")
	}
	if c.Timed && c.Minutes <= 0 {
		return errors.New("timed sessions need a positive minute count")
	}
	if !c.Timed && c.Minutes != 0 {
		return errors.New("minutes are only allowed on timed sessions")
	}
	return c.Weights.Validate()
}
