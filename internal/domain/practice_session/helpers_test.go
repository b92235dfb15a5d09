package practicesession_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

func makePool(n int, cat string) []questionbank.Question {
	pool := make([]questionbank.Question, n)
	for i := range pool {
		pool[i] = questionbank.Question{
			ID:          fmt.Sprintf("%s-%d", cat, i),
			Category:    cat,
			Type:        questionbank.TypeMCQ,
			Prompt:      fmt.Sprintf("Question %s %d", cat, i),
			Choices:     []string{"A", "B", "C", "D"},
			AnswerIndex: i % 4,
		}
	}
	return pool
}

func ids(qs []questionbank.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func uniqueIDs(qs []questionbank.Question) map[string]struct{} {
	seen := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		seen[q.ID] = struct{}{}
	}
	return seen
}

func seeded() *practicesession.Selector {
	return practicesession.NewSelector(practicesession.NewShuffler(42))
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memKV is an in-memory KeyValue that can be told to fail writes.
type memKV struct {
	mu        sync.Mutex
	data      map[string][]byte
	failWrite bool
	writes    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errors.New("disk full")
	}
	m.writes++
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
