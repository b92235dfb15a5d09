package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mlo-prep/backend/internal/store"
)

const settingsKey = "settings"

var (
	ErrInvalidSettings = errors.New("invalid settings")

	validate = validator.New()
)

// Settings are the user's study preferences.
type Settings struct {
	FlashcardsFirstSide string `json:"flashcardsFirstSide" validate:"oneof=term definition"`
	Sound               bool   `json:"sound"`
}

func DefaultSettings() Settings {
	return Settings{FlashcardsFirstSide: "term"}
}

// Settings returns the stored settings, or the defaults when nothing valid
// is stored.
func (qs *QuizService) Settings(ctx context.Context) Settings {
	if qs.store == nil {
		return DefaultSettings()
	}
	data := store.GetOrDefault(ctx, qs.store, settingsKey, nil)
	if data == nil {
		return DefaultSettings()
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil || validate.Struct(s) != nil {
		qs.logger.Warn("ignoring malformed settings")
		return DefaultSettings()
	}
	return s
}

// UpdateSettings validates and stores s.
func (qs *QuizService) UpdateSettings(ctx context.Context, s Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if qs.store == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return qs.store.Set(ctx, settingsKey, data)
}
