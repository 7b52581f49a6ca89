package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/xef-extract/internal/extraction"
)

var (
	// ErrInvalidBodyPolicy indicates an unsupported body policy
	ErrInvalidBodyPolicy = errors.New("invalid body policy")

	// ErrInvalidLayout indicates an unusable output directory or file name
	ErrInvalidLayout = errors.New("invalid output layout")

	// ErrInvalidExtension indicates an unusable file extension
	ErrInvalidExtension = errors.New("invalid file extension")

	// ErrInvalidSuffix indicates an unusable output directory suffix
	ErrInvalidSuffix = errors.New("invalid output suffix")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidPattern indicates a filter glob that does not compile
	ErrInvalidPattern = errors.New("invalid filter pattern")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if _, err := extraction.ParseBodyPolicy(cfg.Extraction.BodyPolicy); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidBodyPolicy, err))
	}

	if _, err := extraction.NewNameFilter(cfg.Filter.Include, cfg.Filter.Exclude); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}

	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.ContainsAny(cfg.Suffix, `/\`) {
		errs = append(errs, fmt.Errorf("%w: %q must not contain path separators", ErrInvalidSuffix, cfg.Suffix))
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	layout := []struct {
		key   string
		value string
	}{
		{"function_blocks", cfg.Layout.FunctionBlocks},
		{"data_types", cfg.Layout.DataTypes},
		{"functions", cfg.Layout.Functions},
		{"programs", cfg.Layout.Programs},
		{"project_info", cfg.Layout.ProjectInfo},
	}
	for _, l := range layout {
		if err := validateRelativeName(l.value); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %v", ErrInvalidLayout, l.key, err))
		}
	}

	exts := []struct {
		key   string
		value string
	}{
		{"code", cfg.Extensions.Code},
		{"data", cfg.Extensions.Data},
		{"external", cfg.Extensions.External},
	}
	for _, e := range exts {
		if strings.TrimSpace(e.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalidExtension, e.key))
			continue
		}
		if strings.ContainsAny(e.value, `./\`) {
			errs = append(errs, fmt.Errorf("%w: %s %q must not contain dots or path separators", ErrInvalidExtension, e.key, e.value))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// validateRelativeName accepts non-empty relative paths that stay below the output root.
func validateRelativeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("is required")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("%q must be relative", name)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q must stay inside the output directory", name)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
