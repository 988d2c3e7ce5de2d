package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Fixtures.Pattern != "" && !doublestar.ValidatePattern(filepath.ToSlash(c.Fixtures.Pattern)) {
		return fmt.Errorf("fixtures.pattern %q is not a valid glob", c.Fixtures.Pattern)
	}
	if c.Search.PerPage <= 0 {
		return fmt.Errorf("search.per_page must be > 0 (got %d)", c.Search.PerPage)
	}
	if c.Events.Buffer <= 0 {
		return fmt.Errorf("events.buffer must be > 0 (got %d)", c.Events.Buffer)
	}
	if c.Events.Debounce < 0 {
		return fmt.Errorf("events.debounce must be >= 0 (got %s)", c.Events.Debounce)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	return nil
}
