package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/slotwise/internal/fsops"
)

// Environment overrides applied after the settings file.
const (
	LogLevelEnv  = "SLOTWISE_LOG_LEVEL"
	TimetableEnv = "SLOTWISE_TIMETABLE"
)

// Settings is the content of config.yaml.
type Settings struct {
	// DefaultTimetable is used when --timetable is not given
	DefaultTimetable string `yaml:"defaultTimetable" validate:"required,max=64"`

	// PreferredSlot is the mode new timetables start in
	PreferredSlot string `yaml:"preferredSlot" validate:"oneof=standard custom"`

	Log LogSettings `yaml:"log"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultTimetable: "default",
		PreferredSlot:    "standard",
		Log: LogSettings{
			Level:  "warn",
			Format: "console",
		},
	}
}

var settingsValidate = validator.New()

// LoadSettings reads the settings file at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadSettings(fs fsops.FS, path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := fs.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read settings: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(LogLevelEnv)); v != "" {
		s.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(TimetableEnv)); v != "" {
		s.DefaultTimetable = v
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every field against its allowed values.
func (s *Settings) Validate() error {
	err := settingsValidate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" && fe.Tag() == "oneof" {
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// SaveSettings writes s to path as YAML.
func SaveSettings(fs fsops.FS, path string, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return fs.AtomicWrite(path, data, 0644)
}
