package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConfigName is the config file name searched for in the working directory.
const ConfigName = ".xef-extract"

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "XEF"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that looks for .xef-extract.yml in rootDir.
// A missing file is not an error.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader for an explicit config file, which must exist.
func NewFileLoader(path string) Loader {
	return &loader{
		configFile: path,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (XEF_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., XEF_OUTPUT_WORKERS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Output configuration
	v.BindEnv("output.suffix")
	v.BindEnv("output.workers")
	v.BindEnv("output.prune")
	v.BindEnv("output.layout.function_blocks")
	v.BindEnv("output.layout.data_types")
	v.BindEnv("output.layout.functions")
	v.BindEnv("output.layout.programs")
	v.BindEnv("output.layout.project_info")
	v.BindEnv("output.extensions.code")
	v.BindEnv("output.extensions.data")
	v.BindEnv("output.extensions.external")

	// Extraction configuration
	v.BindEnv("extraction.body_policy")

	// Filter configuration
	v.BindEnv("filter.include")
	v.BindEnv("filter.exclude")

	// Watch configuration
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable when searching - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Output defaults
	v.SetDefault("output.suffix", defaults.Output.Suffix)
	v.SetDefault("output.workers", defaults.Output.Workers)
	v.SetDefault("output.prune", defaults.Output.Prune)
	v.SetDefault("output.layout.function_blocks", defaults.Output.Layout.FunctionBlocks)
	v.SetDefault("output.layout.data_types", defaults.Output.Layout.DataTypes)
	v.SetDefault("output.layout.functions", defaults.Output.Layout.Functions)
	v.SetDefault("output.layout.programs", defaults.Output.Layout.Programs)
	v.SetDefault("output.layout.project_info", defaults.Output.Layout.ProjectInfo)
	v.SetDefault("output.extensions.code", defaults.Output.Extensions.Code)
	v.SetDefault("output.extensions.data", defaults.Output.Extensions.Data)
	v.SetDefault("output.extensions.external", defaults.Output.Extensions.External)

	// Extraction defaults
	v.SetDefault("extraction.body_policy", defaults.Extraction.BodyPolicy)

	// Filter defaults
	v.SetDefault("filter.include", defaults.Filter.Include)
	v.SetDefault("filter.exclude", defaults.Filter.Exclude)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
