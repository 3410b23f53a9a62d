package config

import (
	"errors"
	"fmt"
	"strings"

	"go-simpler.org/env"
)

const (
	ENV_INPUT          = "SENTIREPORT_INPUT"
	ENV_OUTPUT_DIR     = "SENTIREPORT_OUTPUT_DIR"
	ENV_TEXT_COLUMN    = "SENTIREPORT_TEXT_COLUMN"
	ENV_OPEN_REPORT    = "SENTIREPORT_OPEN_REPORT"
	ENV_STRIP_MARKDOWN = "SENTIREPORT_STRIP_MARKDOWN"
	ENV_LOG_LEVEL      = "LOG_LEVEL"
)

var (
	ErrNoInput      = errors.New("no input file selected")
	ErrNoOutputDir  = errors.New("no output folder selected")
	ErrNoTextColumn = errors.New("text column name is empty")
)

type Settings struct {
	InputPath     string `env:"SENTIREPORT_INPUT"`
	OutputDir     string `env:"SENTIREPORT_OUTPUT_DIR" default:"."`
	TextColumn    string `env:"SENTIREPORT_TEXT_COLUMN" default:"tweet_text"`
	OpenReport    bool   `env:"SENTIREPORT_OPEN_REPORT" default:"true"`
	StripMarkdown bool   `env:"SENTIREPORT_STRIP_MARKDOWN" default:"true"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
}

// Overrides carries command-line values; empty or nil fields leave the
// environment value in place.
type Overrides struct {
	InputPath  string
	OutputDir  string
	TextColumn string
	OpenReport *bool
}

func Load() (*Settings, error) {
	var s Settings
	if err := env.Load(&s, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &s, nil
}

func (s *Settings) Apply(o Overrides) {
	if o.InputPath != "" {
		s.InputPath = o.InputPath
	}
	if o.OutputDir != "" {
		s.OutputDir = o.OutputDir
	}
	if o.TextColumn != "" {
		s.TextColumn = o.TextColumn
	}
	if o.OpenReport != nil {
		s.OpenReport = *o.OpenReport
	}
}

func (s *Settings) Validate() error {
	if strings.TrimSpace(s.InputPath) == "" {
		return fmt.Errorf("%w: pass -input or set %s", ErrNoInput, ENV_INPUT)
	}
	if strings.TrimSpace(s.OutputDir) == "" {
		return fmt.Errorf("%w: pass -output or set %s", ErrNoOutputDir, ENV_OUTPUT_DIR)
	}
	if strings.TrimSpace(s.TextColumn) == "" {
		return ErrNoTextColumn
	}
	return nil
}
