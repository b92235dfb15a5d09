// Package dataset loads the static question bank and flashcard deck.
//
// Loading never fails: a missing or unreadable file is an empty collection,
// and individual records that do not validate are skipped with a warning.
package dataset

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

const (
	QuestionsFile  = "questions.json"
	FlashcardsFile = "flashcards.json"
)

// Load reads both data files from fsys concurrently. When the question file
// yields nothing but flashcards exist, questions are generated from the deck.
func Load(ctx context.Context, fsys fs.FS, shuffler *practicesession.Shuffler, logger *slog.Logger) *questionbank.Bank {
	if logger == nil {
		logger = slog.Default()
	}
	if shuffler == nil {
		shuffler = practicesession.DefaultShuffler()
	}

	var (
		questions  []questionbank.Question
		flashcards []questionbank.Flashcard
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		questions = readJSON[questionbank.Question](gctx, fsys, QuestionsFile, logger)
		return nil
	})
	g.Go(func() error {
		flashcards = readJSON[questionbank.Flashcard](gctx, fsys, FlashcardsFile, logger)
		return nil
	})
	_ = g.Wait()

	bank := questionbank.New()
	for _, f := range flashcards {
		if err := bank.AddFlashcard(f); err != nil {
			logger.Warn("skipping flashcard", "term", f.Term, "error", err)
		}
	}
	for _, q := range questions {
		if err := bank.AddQuestion(q); err != nil {
			logger.Warn("skipping question", "question_id", q.ID, "error", err)
		}
	}

	if len(bank.Questions) == 0 && len(bank.Flashcards) > 0 {
		generated := GenerateQuestions(bank.Flashcards, shuffler)
		for _, q := range generated {
			if err := bank.AddQuestion(q); err != nil {
				logger.Warn("skipping generated question", "question_id", q.ID, "error", err)
			}
		}
		logger.Info("generated questions from flashcards", "count", len(bank.Questions))
	}

	logger.Info("dataset loaded",
		"questions", len(bank.Questions),
		"flashcards", len(bank.Flashcards),
	)
	return bank
}

// readJSON decodes name as a JSON array. A cancelled ctx, a missing file or
// malformed content all yield nil.
func readJSON[T any](ctx context.Context, fsys fs.FS, name string, logger *slog.Logger) []T {
	if fsys == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("data file skipped", "file", name, "error", err)
		return nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		logger.Warn("data file unavailable", "file", name, "error", err)
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("data file malformed", "file", name, "error", err)
		return nil
	}
	return out
}
