// Package config loads application settings from DAYLINGO_*
// environment variables. LLM provider settings live in internal/llm,
// which has its own env handling.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds application-level settings.
type Config struct {
	// DBPath overrides the default profile database location.
	DBPath string `env:"DAYLINGO_DB"`

	// Speech toggles the audio features: lesson narration,
	// pronunciation evaluation and the talk tab.
	Speech bool `env:"DAYLINGO_SPEECH" envDefault:"true"`

	// SourceLanguage is the learner's native language for prompts.
	SourceLanguage string `env:"DAYLINGO_SOURCE_LANG" envDefault:"Spanish"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
