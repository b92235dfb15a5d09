package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Storage
	DataDir string `validate:"required"` // directory holding questions.json and flashcards.json
	DBPath  string `validate:"required"` // SQLite file for snapshots and settings

	LogLevel      string        `validate:"oneof=debug info warn error"`
	TimerInterval time.Duration `validate:"gt=0,lte=1s"` // mock exam deadline polling cadence
}

// Load reads the environment (after applying a .env file, if present) and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("TIMER_INTERVAL", 250*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: shutdown,
		DataDir:         getenvDefault("DATA_DIR", "./data"),
		DBPath:          getenvDefault("DB_PATH", "mloprep.db"),
		LogLevel:        getenvDefault("LOG_LEVEL", "info"),
		TimerInterval:   interval,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
