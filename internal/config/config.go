// Package config loads the seedwork CLI configuration from a YAML file and
// SEEDWORK_* environment variables.
package config

import (
	"log/slog"
	"time"
)

// Config is the root CLI configuration.
type Config struct {
	Fixtures FixturesConfig `yaml:"fixtures"`
	Search   SearchConfig   `yaml:"search"`
	Events   EventsConfig   `yaml:"events"`
	Log      LogConfig      `yaml:"log"`
}

// FixturesConfig selects the files a repository is seeded from.
type FixturesConfig struct {
	Pattern string `yaml:"pattern" env:"SEEDWORK_FIXTURES"        env-default:""`
	Strict  bool   `yaml:"strict"  env:"SEEDWORK_FIXTURES_STRICT" env-default:"false"`
}

// SearchConfig holds search defaults applied when flags are not given.
type SearchConfig struct {
	PerPage int `yaml:"per_page" env:"SEEDWORK_PER_PAGE" env-default:"10"`
}

// EventsConfig tunes change event delivery.
type EventsConfig struct {
	Buffer   int           `yaml:"buffer"   env:"SEEDWORK_EVENT_BUFFER"   env-default:"100"`
	Debounce time.Duration `yaml:"debounce" env:"SEEDWORK_WATCH_DEBOUNCE" env-default:"50ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SEEDWORK_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"SEEDWORK_LOG_FORMAT" env-default:"text"`
}

// SlogLevel maps Level to a slog level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
