// Package settings describes which fields of a log entry carry its
// timestamp, level, message, logger and caller, and which fields to leave
// out of output. Settings are loaded once and shared by all parsers.
package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

type Settings struct {
	Fields Fields `yaml:"fields"`
	// Ignore lists glob patterns of top-level field names to drop.
	Ignore []string `yaml:"ignore"`
	// UnixTimestampUnit fixes the unit of numeric timestamps. By default
	// it is guessed from the magnitude.
	UnixTimestampUnit UnixUnit `yaml:"unix-timestamp-unit"`
}

// Fields lists the accepted names of each predefined field. Earlier names
// take precedence over later ones. A name may be dotted to reach into
// nested objects.
type Fields struct {
	Time       Field      `yaml:"time"`
	Level      LevelField `yaml:"level"`
	Message    Field      `yaml:"message"`
	Logger     Field      `yaml:"logger"`
	Caller     Field      `yaml:"caller"`
	CallerFile Field      `yaml:"caller-file"`
	CallerLine Field      `yaml:"caller-line"`
}

type Field struct {
	Names []string `yaml:"names"`
}

type LevelField struct {
	Variants []LevelVariant `yaml:"variants"`
}

// LevelVariant maps the values found under Names to levels. Values is keyed
// by level name (trace, debug, info, warning, error). Default, when set, is
// the level assigned to values not listed.
type LevelVariant struct {
	Names   []string            `yaml:"names"`
	Values  map[string][]string `yaml:"values"`
	Default string              `yaml:"default,omitempty"`
}

func Default() *Settings {
	return &Settings{
		Fields: Fields{
			Time: Field{Names: []string{
				"ts", "TS", "time", "TIME", "Time",
				"_SOURCE_REALTIME_TIMESTAMP", "__REALTIME_TIMESTAMP",
			}},
			Level: LevelField{Variants: []LevelVariant{
				{
					Names: []string{"level", "LEVEL", "Level"},
					Values: map[string][]string{
						"trace":   {"trace"},
						"debug":   {"debug"},
						"info":    {"info", "information"},
						"warning": {"warning", "warn"},
						"error":   {"error", "err", "fatal", "critical", "panic"},
					},
				},
				{
					Names: []string{"PRIORITY"},
					Values: map[string][]string{
						"debug":   {"7"},
						"info":    {"6"},
						"warning": {"5", "4"},
						"error":   {"3", "2", "1"},
					},
				},
			}},
			Message: Field{Names: []string{"msg", "message", "MESSAGE", "Message"}},
			Logger:  Field{Names: []string{"logger", "LOGGER", "Logger"}},
			Caller:  Field{Names: []string{"caller", "CALLER", "Caller"}},
		},
	}
}

// Load reads YAML settings from r. Keys absent from the document keep
// their default values.
func Load(r io.Reader) (*Settings, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := Default()
	if len(bytes.TrimSpace(d)) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(d, s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	return s, nil
}

func LoadFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
