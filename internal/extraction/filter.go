package extraction

import (
	"fmt"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// NameFilter selects units by name using include and exclude glob patterns.
// With no include patterns every name is included.
type NameFilter struct {
	include []compiledPattern
	exclude []compiledPattern
}

// NewNameFilter compiles the given glob patterns.
func NewNameFilter(include, exclude []string) (*NameFilter, error) {
	f := &NameFilter{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		f.include = append(f.include, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, compiledPattern{pattern: pattern, glob: g})
	}

	return f, nil
}

// Empty reports whether the filter lets every name through.
func (f *NameFilter) Empty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

// Match reports whether a unit with the given name is selected.
func (f *NameFilter) Match(name string) bool {
	if f.Empty() {
		return true
	}
	if matchesAny(name, f.exclude) {
		return false
	}
	return len(f.include) == 0 || matchesAny(name, f.include)
}

func matchesAny(name string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns a new Record holding only the units selected by f.
// The receiver is not modified.
func (r *Record) Filter(f *NameFilter) *Record {
	if f.Empty() {
		return r
	}
	return &Record{
		Project:               r.Project,
		FunctionBlocks:        keep(r.FunctionBlocks, f, func(u FunctionBlockSource) string { return u.Name }),
		DataTypes:             keep(r.DataTypes, f, func(u DataTypeSource) string { return u.Name }),
		ExternalFunctions:     keep(r.ExternalFunctions, f, func(u ExternalFunctionSource) string { return u.Name }),
		DerivedFunctionBlocks: keep(r.DerivedFunctionBlocks, f, func(u DerivedFunctionBlockSource) string { return u.Name }),
		Programs:              keep(r.Programs, f, func(u ProgramSource) string { return u.Name }),
	}
}

func keep[T any](units []T, f *NameFilter, name func(T) string) []T {
	var out []T
	for _, u := range units {
		if f.Match(name(u)) {
			out = append(out, u)
		}
	}
	return out
}
