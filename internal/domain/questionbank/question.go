package questionbank

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const TypeMCQ = "mcq"

var (
	ErrAnswerOutOfRange = errors.New("answer index out of range")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Question is a single multiple-choice item. It is immutable once loaded and
// shared read-only by every session that draws it.
type Question struct {
	ID          string   `json:"id" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Type        string   `json:"type" validate:"omitempty,oneof=mcq"`
	Prompt      string   `json:"prompt" validate:"required"`
	Stem        string   `json:"stem,omitempty"`
	Choices     []string `json:"choices" validate:"min=2"`
	AnswerIndex int      `json:"answerIndex" validate:"gte=0"`
	Explanation string   `json:"explanation,omitempty"`
}

// Validate checks the record shape and that AnswerIndex points into Choices.
func (q Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}
	if q.AnswerIndex >= len(q.Choices) {
		return fmt.Errorf("question %q: %w", q.ID, ErrAnswerOutOfRange)
	}
	return nil
}

// IsCorrect reports whether choice is the right answer.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.AnswerIndex
}

// Flashcard is a term/definition pair from the flashcard deck.
type Flashcard struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

func (f Flashcard) Validate() error {
	return validate.Struct(f)
}
