// Package fixture loads seed records from JSON, YAML and CSV files matched by
// a glob pattern and watches those files for changes.
package fixture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds the configuration for a Loader.
type Config struct {
	// Strict enables json.Number decoding and keeps CSV cells as text.
	Strict bool
	Logger *slog.Logger
	// Serializers overrides DefaultSerializers(Strict), keyed by extension.
	Serializers map[string]Serializer
}

// Loader reads fixture files through registered serializers.
type Loader struct {
	config      Config
	serializers map[string]Serializer
}

// NewLoader creates a Loader with the default serializers unless overridden.
func NewLoader(config Config) *Loader {
	serializers := config.Serializers
	if serializers == nil {
		serializers = DefaultSerializers(config.Strict)
	}
	return &Loader{config: config, serializers: serializers}
}

// Load reads every record from the files matching pattern with the default serializers.
func Load(pattern string, strict bool) ([]Record, error) {
	return NewLoader(Config{Strict: strict}).Load(pattern)
}

// Files returns the files matching pattern that have a registered serializer,
// in lexical order.
func (l *Loader) Files(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid fixture pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := l.serializer(m); ok {
			files = append(files, m)
		} else if l.config.Logger != nil {
			l.config.Logger.Debug("skipping fixture without serializer", "path", m)
		}
	}
	slices.Sort(files)
	return files, nil
}

// Load decodes the files matching pattern in lexical order, concatenating their records.
func (l *Loader) Load(pattern string) ([]Record, error) {
	files, err := l.Files(pattern)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, path := range files {
		recs, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	if l.config.Logger != nil {
		l.config.Logger.Debug("fixtures loaded", "pattern", pattern, "files", len(files), "records", len(records))
	}
	return records, nil
}

// LoadFile decodes a single fixture file.
func (l *Loader) LoadFile(path string) ([]Record, error) {
	s, ok := l.serializer(path)
	if !ok {
		return nil, fmt.Errorf("no serializer for %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	records, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

func (l *Loader) serializer(path string) (Serializer, bool) {
	s, ok := l.serializers[strings.ToLower(filepath.Ext(path))]
	return s, ok
}
