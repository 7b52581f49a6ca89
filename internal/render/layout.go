package render

import (
	"path/filepath"

	"github.com/mvp-joe/xef-extract/internal/extraction"
)

// Layout names the output directories and the project info file.
type Layout struct {
	FunctionBlocks string `yaml:"function_blocks" mapstructure:"function_blocks"` // FBs and DFBs
	DataTypes      string `yaml:"data_types" mapstructure:"data_types"`
	Functions      string `yaml:"functions" mapstructure:"functions"`
	Programs       string `yaml:"programs" mapstructure:"programs"`
	ProjectInfo    string `yaml:"project_info" mapstructure:"project_info"`
}

// Extensions are the file extensions (without dot) per artifact family.
type Extensions struct {
	Code     string `yaml:"code" mapstructure:"code"`         // FBs, DFBs, programs
	Data     string `yaml:"data" mapstructure:"data"`         // data types
	External string `yaml:"external" mapstructure:"external"` // external functions
}

// DefaultLayout returns the standard directory layout.
func DefaultLayout() Layout {
	return Layout{
		FunctionBlocks: "FunctionBlocks",
		DataTypes:      "DataTypes",
		Functions:      "Functions",
		Programs:       "Programs",
		ProjectInfo:    "PROJECT_INFO.txt",
	}
}

// DefaultExtensions returns st / ddt / ef.
func DefaultExtensions() Extensions {
	return Extensions{
		Code:     "st",
		Data:     "ddt",
		External: "ef",
	}
}

// Dirs returns the category directories in a stable order.
func (l Layout) Dirs() []string {
	return []string{l.FunctionBlocks, l.DataTypes, l.Functions, l.Programs}
}

// Artifact is one rendered file, relative to the output root.
type Artifact struct {
	Kind    extraction.UnitKind
	Name    string // unit name; project name for the project info file
	Dir     string // "" for the output root
	File    string
	Content string
}

// RelPath returns the artifact path relative to the output root.
func (a Artifact) RelPath() string {
	return filepath.Join(a.Dir, a.File)
}
