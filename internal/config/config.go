// Package config loads and validates book configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidKind     = errors.New("invalid theorem kind abbreviation")
)

// Output formats the pipeline can produce directly or via transcoding.
const (
	FormatEPUB     = "epub"
	FormatMarkdown = "markdown"
	FormatMobi     = "mobi"
	FormatAZW3     = "azw3"
)

var kindPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Config holds all configuration for a book conversion.
type Config struct {
	Book      BookConfig      `yaml:"book"`
	Output    OutputConfig    `yaml:"output"`
	Numbering NumberingConfig `yaml:"numbering"`
	Pandoc    PandocConfig    `yaml:"pandoc"`
	Calibre   CalibreConfig   `yaml:"calibre"`
}

// BookConfig identifies the manuscript.
type BookConfig struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Chapters []string `yaml:"chapters"` // in reading order; empty = take from CLI args
}

// OutputConfig defines where and in which formats the book is produced.
type OutputConfig struct {
	Path       string   `yaml:"path"`       // output file base path (empty = derive from first chapter)
	Formats    []string `yaml:"formats"`    // e.g. [epub, mobi]; default [epub]
	Stylesheet string   `yaml:"stylesheet"` // CSS path passed through to the converter (empty = embedded default)
}

// NumberingConfig controls cross-reference numbering.
type NumberingConfig struct {
	Global       bool     `yaml:"global"`       // continuous numbering across the whole book
	TheoremKinds []string `yaml:"theoremKinds"` // empty = built-in default set
}

// PandocConfig configures the external conversion step.
type PandocConfig struct {
	Binary    string   `yaml:"binary"`    // default "pandoc"
	From      string   `yaml:"from"`      // source format descriptor override
	ExtraArgs []string `yaml:"extraArgs"` // appended after forced options
}

// CalibreConfig configures e-book transcoding.
type CalibreConfig struct {
	Binary    string   `yaml:"binary"`    // default "ebook-convert"
	ExtraArgs []string `yaml:"extraArgs"` // free-form ebook-convert options
}

// DefaultConfig returns a configuration producing a single EPUB with
// chapter-wise numbering.
func DefaultConfig() *Config {
	return &Config{
		Output:    OutputConfig{Formats: []string{FormatEPUB}},
		Numbering: NumberingConfig{Global: false},
	}
}

// Validate checks formats and theorem kinds.
func (c *Config) Validate() error {
	for _, f := range c.Output.Formats {
		switch f {
		case FormatEPUB, FormatMarkdown, FormatMobi, FormatAZW3:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
		}
	}
	for _, k := range c.Numbering.TheoremKinds {
		if !kindPattern.MatchString(k) {
			return fmt.Errorf("%w: %q", ErrInvalidKind, k)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{FormatEPUB}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions .yaml then .yml, in the current directory and
// then the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2epub", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
