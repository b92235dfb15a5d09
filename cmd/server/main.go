package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlo-prep/backend/internal/api"
	"github.com/mlo-prep/backend/internal/dataset"
	practicesession "github.com/mlo-prep/backend/internal/domain/practice_session"
	"github.com/mlo-prep/backend/internal/infrastructure/config"
	"github.com/mlo-prep/backend/internal/infrastructure/logging"
	"github.com/mlo-prep/backend/internal/service"
	"github.com/mlo-prep/backend/internal/store"
)

// @title           MLO Prep API
// @version         1.0
// @description     Offline study backend: flashcards, quick drills and a timed, resumable mock exam.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "error").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bank := dataset.Load(context.Background(), os.DirFS(cfg.DataDir), practicesession.DefaultShuffler(), logger)
	quiz, err := service.NewQuizService(bank, db, logger, service.WithTimerInterval(cfg.TimerInterval))
	if err != nil {
		logger.Error("failed to build quiz service", "error", err)
		os.Exit(1)
	}
	defer quiz.Close()

	handler := api.NewHandler(quiz, logger)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"data_dir", cfg.DataDir,
		"questions", quiz.QuestionCount(),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
