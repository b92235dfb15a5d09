package questionbank

import (
	"errors"
	"fmt"
)

var ErrDuplicateID = errors.New("duplicate question id")

// Bank holds the loaded question pool and flashcard deck.
type Bank struct {
	Questions  []Question
	Flashcards []Flashcard

	ids map[string]struct{}
}

func New() *Bank {
	return &Bank{
		Questions:  []Question{},
		Flashcards: []Flashcard{},
		ids:        make(map[string]struct{}),
	}
}

// AddQuestion validates q and appends it. Ids must be unique within a bank.
func (b *Bank) AddQuestion(q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, dup := b.ids[q.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, q.ID)
	}
	if q.Type == "" {
		q.Type = TypeMCQ
	}
	b.ids[q.ID] = struct{}{}
	b.Questions = append(b.Questions, q)
	return nil
}

func (b *Bank) AddFlashcard(f Flashcard) error {
	if err := f.Validate(); err != nil {
		return err
	}
	b.Flashcards = append(b.Flashcards, f)
	return nil
}

// Partition splits pool into buckets for the named categories. Categories
// with no members map to an empty slice; questions in other categories are
// ignored.
func Partition(pool []Question, names []string) map[string][]Question {
	buckets := make(map[string][]Question, len(names))
	for _, n := range names {
		buckets[n] = []Question{}
	}
	for _, q := range pool {
		if _, ok := buckets[q.Category]; ok {
			buckets[q.Category] = append(buckets[q.Category], q)
		}
	}
	return buckets
}
