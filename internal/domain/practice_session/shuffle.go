package practicesession

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler produces unbiased in-place permutations. It is safe for
// concurrent use; the underlying source is guarded by a mutex.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler returns a Shuffler drawing from a source seeded with seed.
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// DefaultShuffler returns a time-seeded Shuffler.
func DefaultShuffler() *Shuffler {
	return NewShuffler(time.Now().UnixNano())
}

// intn returns a uniform value in [0, n).
func (s *Shuffler) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Shuffle permutes items in place using Fisher-Yates: walking from the last
// index down to 1, each element is swapped with a uniformly chosen element at
// or before its own position.
func Shuffle[T any](s *Shuffler, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// shuffled returns a shuffled copy of items, leaving items untouched.
func shuffled[T any](s *Shuffler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(s, out)
	return out
}
