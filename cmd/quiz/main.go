package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlo-prep/backend/internal/cli"
	"github.com/mlo-prep/backend/internal/dataset"
	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/infrastructure/config"
	"github.com/mlo-prep/backend/internal/infrastructure/logging"
	"github.com/mlo-prep/backend/internal/service"
	"github.com/mlo-prep/backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode := flag.String("mode", "quick10", "session mode: random, quick10 or mock")
	dataDir := flag.String("data", cfg.DataDir, "directory with questions.json and flashcards.json")
	dbPath := flag.String("db", cfg.DBPath, "SQLite file for saved sessions")
	memory := flag.Bool("memory", false, "keep sessions in memory only")
	reset := flag.Bool("reset", false, "discard the saved session for the mode before starting")
	logLevel := flag.String("log-level", "warn", "log level written to stderr")
	flag.Parse()

	logger := logging.New(os.Stderr, *logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var kv store.Store
	if *memory {
		kv = store.NewMemory()
	} else {
		db, err := store.NewSQLite(*dbPath)
		if err != nil {
			return err
		}
		kv = db
	}
	defer kv.Close()

	bank := dataset.Load(ctx, os.DirFS(*dataDir), practicesession.DefaultShuffler(), logger)
	quiz, err := service.NewQuizService(bank, kv, logger, service.WithTimerInterval(cfg.TimerInterval))
	if err != nil {
		return err
	}
	defer quiz.Close()

	if *reset {
		if err := quiz.ResetMode(ctx, *mode); err != nil {
			return err
		}
	}

	err = cli.Run(ctx, quiz, *mode, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
