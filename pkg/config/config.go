// Package config holds the tool configuration, loadable from TOML, YAML, or
// JSON files via koanf, with typed validation before any detection work runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all options.
type Config struct {
	Detect  DetectConfig  `koanf:"detect"`
	Exclude ExcludeConfig `koanf:"exclude"`
	Output  OutputConfig  `koanf:"output"`
}

// DetectConfig controls the fingerprinting and comparison engine.
type DetectConfig struct {
	// K is the shingle width in tokens.
	K int `koanf:"k"`
	// W is the winnowing window size in shingles.
	W int `koanf:"w"`
	// FileThreshold is the file-level Jaccard threshold in [0,1].
	FileThreshold float64 `koanf:"file_threshold"`
	// AssignmentThreshold is the fraction of matched files in [0,1] at
	// which an assignment pair is flagged.
	AssignmentThreshold float64 `koanf:"assignment_threshold"`
	// TopMatches is how many file matches to keep per direction in the
	// detail report.
	TopMatches int `koanf:"top_matches"`
}

// ExcludeConfig filters what the corpus walker picks up.
type ExcludeConfig struct {
	Dirs   []string `koanf:"dirs"`
	Hidden bool     `koanf:"hidden"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// ConfigError reports an invalid configuration value. Validation failures
// abort a run before any file is processed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// DefaultConfig returns the documented defaults: k=5, w=4, both thresholds
// 0.40, top 5 matches per direction.
func DefaultConfig() *Config {
	return &Config{
		Detect: DetectConfig{
			K:                   5,
			W:                   4,
			FileThreshold:       0.40,
			AssignmentThreshold: 0.40,
			TopMatches:          5,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				"node_modules", ".git", ".hg", ".svn", ".idea", ".vscode",
				".venv", "venv", "__pycache__", "dist", "build", "target", "out",
			},
			Hidden: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Validate checks the detection parameters.
func (d DetectConfig) Validate() error {
	if d.K < 1 {
		return &ConfigError{Field: "detect.k", Reason: "must be >= 1"}
	}
	if d.W < 1 {
		return &ConfigError{Field: "detect.w", Reason: "must be >= 1"}
	}
	if d.FileThreshold < 0 || d.FileThreshold > 1 {
		return &ConfigError{Field: "detect.file_threshold", Reason: "must be in [0,1]"}
	}
	if d.AssignmentThreshold < 0 || d.AssignmentThreshold > 1 {
		return &ConfigError{Field: "detect.assignment_threshold", Reason: "must be in [0,1]"}
	}
	if d.TopMatches < 0 {
		return &ConfigError{Field: "detect.top_matches", Reason: "must be >= 0"}
	}
	return nil
}

// Load reads a config file, layered over defaults. The parser is chosen by
// extension, defaulting to TOML.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Detect.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries the standard config file names in the working
// directory and returns defaults when none loads.
func LoadOrDefault() *Config {
	names := []string{
		"plagiarism.toml", "plagiarism.yaml", "plagiarism.yml", "plagiarism.json",
		".plagiarism.toml", ".plagiarism.yaml", ".plagiarism.yml", ".plagiarism.json",
	}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// ExcludedDir reports whether a directory name is excluded from corpus
// walks.
func (c *Config) ExcludedDir(name string) bool {
	if c.Exclude.Hidden && strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, d := range c.Exclude.Dirs {
		if name == d {
			return true
		}
	}
	return false
}
