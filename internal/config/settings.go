package config

import (
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Settings holds the runtime configuration of the CLI manager. The parsing
// core takes no configuration; everything here belongs to the collaborators
// around it (store, export, messages).
type Settings struct {
	// CardsDir is the directory scanned by the index command.
	CardsDir string `yaml:"cards_dir"`

	// DatabasePath is the SQLite file holding the card index.
	DatabasePath string `yaml:"database_path"`

	// Language selects the locale for user-facing messages.
	Language string `yaml:"language"`

	// ReminderTrigger is an optional ISO8601 duration (e.g. "-P1D") attached
	// as a display alarm to exported calendar events.
	ReminderTrigger string `yaml:"reminder_trigger"`
}

// Validate checks the settings for internal consistency.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.CardsDir, validation.Required),
		validation.Field(&s.DatabasePath, validation.Required),
		validation.Field(&s.Language, validation.Required, validation.In(toAny(SupportedLanguages)...)),
	)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// DefaultSettings returns a Settings with sensible default values.
func DefaultSettings() *Settings {
	return &Settings{
		CardsDir:     DefaultCardsDir,
		DatabasePath: DefaultDatabasePath,
		Language:     DefaultLanguage,
	}
}

// LoadSettings reads a YAML settings file with environment variable expansion
// applied to its contents. A missing file is not an error: the defaults in
// target are kept as-is.
func LoadSettings(filename string, target *Settings) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return target.Validate()
		}
		return fmt.Errorf("%s %s: %w", ErrSettingsLoad, filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("%s %s: %w", ErrSettingsLoad, filename, err)
	}

	return target.Validate()
}
