// Package config loads xef-extract settings.
//
// Priority (highest to lowest):
//  1. Environment variables (XEF_*)
//  2. Config file (.xef-extract.yml in the working directory, or --config)
//  3. Built-in defaults
//
// Command-line flags are applied on top by the cli package.
package config

import (
	"github.com/mvp-joe/xef-extract/internal/extraction"
	"github.com/mvp-joe/xef-extract/internal/render"
)

// Config represents the complete xef-extract configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Filter     FilterConfig     `yaml:"filter" mapstructure:"filter"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
}

// OutputConfig controls where and how artifacts are written.
type OutputConfig struct {
	Suffix     string            `yaml:"suffix" mapstructure:"suffix"`   // appended to the input base name for the default output dir
	Workers    int               `yaml:"workers" mapstructure:"workers"` // concurrent file writes, <= 1 means sequential
	Prune      bool              `yaml:"prune" mapstructure:"prune"`     // remove artifacts of units no longer in the project
	Layout     render.Layout     `yaml:"layout" mapstructure:"layout"`
	Extensions render.Extensions `yaml:"extensions" mapstructure:"extensions"`
}

// ExtractionConfig controls document extraction.
type ExtractionConfig struct {
	BodyPolicy string `yaml:"body_policy" mapstructure:"body_policy"` // "last-wins" or "strict"
}

// FilterConfig selects units by name.
type FilterConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns, empty means all
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // glob patterns
}

// WatchConfig controls --watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// DefaultOutputSuffix is appended to the input base name when no output directory is given.
const DefaultOutputSuffix = "_extracted"

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Suffix:     DefaultOutputSuffix,
			Workers:    1,
			Prune:      false,
			Layout:     render.DefaultLayout(),
			Extensions: render.DefaultExtensions(),
		},
		Extraction: ExtractionConfig{
			BodyPolicy: extraction.BodyPolicyLastWins.String(),
		},
		Filter: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}
