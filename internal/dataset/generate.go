package dataset

import (
	"fmt"

	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

const (
	generatedCategory = "general"
	distractorCount   = 3
)

// Choices is a shuffled answer list together with the position of the
// correct entry.
type Choices struct {
	Options      []string
	CorrectIndex int
}

type option struct {
	text    string
	correct bool
}

// MakeChoices builds the options for card: the card's own field plus up to
// three distractors drawn from the rest of the deck. Distractors repeating a
// text already on offer are skipped. The correct option is tracked through
// the shuffle by position, not looked up by text.
func MakeChoices(deck []questionbank.Flashcard, card int, field func(questionbank.Flashcard) string, s *practicesession.Shuffler) Choices {
	others := make([]questionbank.Flashcard, 0, len(deck))
	for i, c := range deck {
		if i != card {
			others = append(others, c)
		}
	}
	practicesession.Shuffle(s, others)

	correct := field(deck[card])
	opts := []option{{text: correct, correct: true}}
	offered := map[string]struct{}{correct: {}}
	for _, c := range others {
		if len(opts) > distractorCount {
			break
		}
		text := field(c)
		if _, dup := offered[text]; dup {
			continue
		}
		offered[text] = struct{}{}
		opts = append(opts, option{text: text})
	}
	practicesession.Shuffle(s, opts)

	out := Choices{Options: make([]string, len(opts))}
	for i, o := range opts {
		out.Options[i] = o.text
		if o.correct {
			out.CorrectIndex = i
		}
	}
	return out
}

func term(c questionbank.Flashcard) string       { return c.Term }
func definition(c questionbank.Flashcard) string { return c.Definition }

// GenerateQuestions derives two MCQs per flashcard: term to definition and
// definition to term. The result is shuffled. A deck with a single card has
// no distractors, so its questions fail validation and are dropped by Load.
func GenerateQuestions(deck []questionbank.Flashcard, s *practicesession.Shuffler) []questionbank.Question {
	questions := make([]questionbank.Question, 0, len(deck)*2)
	for i, c := range deck {
		t2d := MakeChoices(deck, i, definition, s)
		questions = append(questions, questionbank.Question{
			ID:          fmt.Sprintf("fc-%d-t2d", i),
			Category:    generatedCategory,
			Type:        questionbank.TypeMCQ,
			Prompt:      fmt.Sprintf("What is the definition of: “%s”?", c.Term),
			Choices:     t2d.Options,
			AnswerIndex: t2d.CorrectIndex,
			Explanation: c.Definition,
		})

		d2t := MakeChoices(deck, i, term, s)
		questions = append(questions, questionbank.Question{
			ID:          fmt.Sprintf("fc-%d-d2t", i),
			Category:    generatedCategory,
			Type:        questionbank.TypeMCQ,
			Prompt:      "Which term matches this definition?",
			Stem:        c.Definition,
			Choices:     d2t.Options,
			AnswerIndex: d2t.CorrectIndex,
			Explanation: c.Term,
		})
	}
	practicesession.Shuffle(s, questions)
	return questions
}
