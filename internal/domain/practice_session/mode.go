package practicesession

import (
	"errors"
	"fmt"

	"github.com/mlo-prep/backend/internal/domain/category"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode is a named, fixed session recipe.
type Mode struct {
	Name   string
	Label  string
	Config SessionConfig
}

// Modes is the ordered table of available modes.
type Modes []Mode

// MockExamKey is the persistence key of the in-progress mock exam.
const MockExamKey = "mockSession"

// DefaultModes returns the built-in mode table. The mock exam follows the
// NMLS SAFE content outline: 24% federal law, 11% uniform state content,
// 20% general knowledge, 27% origination, 18% ethics.
func DefaultModes() Modes {
	return Modes{
		{
			Name:   "random",
			Label:  "Random Question",
			Config: DefaultConfig(),
		},
		{
			Name:   "quick10",
			Label:  "Quick 10",
			Config: SessionConfig{N: 10},
		},
		{
			Name:  "mock",
			Label: "Mock Exam (4h)",
			Config: SessionConfig{
				N:       120,
				Timed:   true,
				Minutes: 240,
				Weights: category.Weights{
					category.New("federal", 24),
					category.New("state", 11),
					category.New("general", 20),
					category.New("origination", 27),
					category.New("ethics", 18),
				},
				PersistKey: MockExamKey,
			},
		},
	}
}

// Lookup finds a mode by name.
func (ms Modes) Lookup(name string) (Mode, error) {
	for _, m := range ms {
		if m.Name == name {
			return m, nil
		}
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Validate checks every mode config and that names are unique.
func (ms Modes) Validate() error {
	seen := make(map[string]struct{}, len(ms))
	for _, m := range ms {
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("mode %q defined twice", m.Name)
		}
		seen[m.Name] = struct{}{}
		if err := m.Config.Validate(); err != nil {
			return fmt.Errorf("mode %q: %w", m.Name, err)
		}
	}
	return nil
}
