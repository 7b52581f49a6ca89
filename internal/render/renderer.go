// Package render turns an extraction Record into text artifacts.
//
// Rendering is pure: the same Record always yields byte-identical artifacts,
// in document order. The only time-dependent output is the project info file,
// whose timestamp is passed in by the caller.
package render

import (
	"strings"
	"time"

	"github.com/mvp-joe/xef-extract/internal/extraction"
)

// TimestampFormat is the layout of the EXTRACTED line in the project info file.
const TimestampFormat = "2006-01-02 15:04:05"

// Renderer renders units into artifacts for a given layout.
type Renderer struct {
	layout Layout
	ext    Extensions
}

// NewRenderer creates a renderer for the given layout and extensions.
func NewRenderer(layout Layout, ext Extensions) *Renderer {
	return &Renderer{layout: layout, ext: ext}
}

// unit is the common shape of every renderable unit kind. Kinds differ only
// in their header fields and in what body writes after the banner.
type unit struct {
	kind    extraction.UnitKind
	label   string
	name    string
	dir     string
	file    string
	fields  []field
	comment string
	body    func(d *document)
}

func (r *Renderer) emit(u unit) Artifact {
	var d document
	d.header(u.label, u.name, u.fields, u.comment)
	if u.body != nil {
		u.body(&d)
	}
	return Artifact{
		Kind:    u.kind,
		Name:    u.name,
		Dir:     u.dir,
		File:    u.file,
		Content: d.String(),
	}
}

// Render renders every named unit of rec: function blocks, data types,
// external functions, derived function blocks, then programs.
// Units without a name are skipped.
func (r *Renderer) Render(rec *extraction.Record) []Artifact {
	var out []Artifact

	for _, fb := range rec.FunctionBlocks {
		if fb.Name != "" {
			out = append(out, r.FunctionBlock(fb))
		}
	}
	for _, ddt := range rec.DataTypes {
		if ddt.Name != "" {
			out = append(out, r.DataType(ddt))
		}
	}
	for _, ef := range rec.ExternalFunctions {
		if ef.Name != "" {
			out = append(out, r.ExternalFunction(ef))
		}
	}
	for _, dfb := range rec.DerivedFunctionBlocks {
		if dfb.Name != "" {
			out = append(out, r.DerivedFunctionBlock(dfb))
		}
	}
	for _, prog := range rec.Programs {
		if prog.Name != "" {
			out = append(out, r.Program(prog))
		}
	}

	return out
}

// FunctionBlock renders a function block with its variable sections and bodies.
func (r *Renderer) FunctionBlock(fb extraction.FunctionBlockSource) Artifact {
	return r.emit(unit{
		kind:    extraction.KindFunctionBlock,
		label:   "FUNCTION BLOCK",
		name:    fb.Name,
		dir:     r.layout.FunctionBlocks,
		file:    fileName(fb.Name, "", r.ext.Code),
		fields:  []field{{"VERSION", fb.Version}},
		comment: fb.Comment,
		body: func(d *document) {
			d.variables("INPUT PARAMETERS", fb.Input)
			d.variables("OUTPUT PARAMETERS", fb.Output)
			d.variables("INOUT PARAMETERS", fb.InOut)
			d.variables("PRIVATE VARIABLES", fb.Private)
			d.variables("PUBLIC VARIABLES", fb.Public)

			for _, p := range fb.Programs {
				d.blank()
				d.line("(* -------- PROGRAM: %s -------- *)", p.Name)
				d.code(p.Code)
				d.blank()
			}
		},
	})
}

// DataType renders a structure declaration.
func (r *Renderer) DataType(ddt extraction.DataTypeSource) Artifact {
	return r.emit(unit{
		kind:    extraction.KindDataType,
		label:   "DATA TYPE",
		name:    ddt.Name,
		dir:     r.layout.DataTypes,
		file:    fileName(ddt.Name, "", r.ext.Data),
		fields:  []field{{"VERSION", ddt.Version}},
		comment: ddt.Comment,
		body: func(d *document) {
			d.line("TYPE %s :", ddt.Name)
			d.raw("STRUCT")
			for _, v := range ddt.Structure {
				d.raw(declaration(v))
			}
			d.raw("END_STRUCT;")
			d.raw("END_TYPE")
		},
	})
}

// ExternalFunction renders input and output parameters only.
func (r *Renderer) ExternalFunction(ef extraction.ExternalFunctionSource) Artifact {
	return r.emit(unit{
		kind:    extraction.KindExternalFunction,
		label:   "EXTERNAL FUNCTION",
		name:    ef.Name,
		dir:     r.layout.Functions,
		file:    fileName(ef.Name, "", r.ext.External),
		fields:  []field{{"VERSION", ef.Version}},
		comment: ef.Comment,
		body: func(d *document) {
			d.variables("INPUT PARAMETERS", ef.Input)
			d.variables("OUTPUT PARAMETERS", ef.Output)
		},
	})
}

// DerivedFunctionBlock renders a DFB next to the function blocks, suffixed _DFB.
func (r *Renderer) DerivedFunctionBlock(dfb extraction.DerivedFunctionBlockSource) Artifact {
	return r.emit(unit{
		kind:    extraction.KindDerivedFunctionBlock,
		label:   "DFB",
		name:    dfb.Name,
		dir:     r.layout.FunctionBlocks,
		file:    fileName(dfb.Name, "_DFB", r.ext.Code),
		fields:  []field{{"VERSION", dfb.Version}},
		comment: dfb.Comment,
		body: func(d *document) {
			d.code(dfb.Code)
		},
	})
}

// Program renders a program section with its task binding.
func (r *Renderer) Program(prog extraction.ProgramSource) Artifact {
	return r.emit(unit{
		kind:  extraction.KindProgram,
		label: "PROGRAM",
		name:  prog.Name,
		dir:   r.layout.Programs,
		file:  fileName(prog.Name, "", r.ext.Code),
		fields: []field{
			{"TYPE", prog.Type},
			{"TASK", prog.Task},
			{"SECTION ORDER", prog.SectionOrder},
		},
		comment: prog.Comment,
		body: func(d *document) {
			d.code(prog.Code)
		},
	})
}

// ProjectInfo renders the project metadata file. It embeds at, so unlike
// every other artifact it differs between runs.
func (r *Renderer) ProjectInfo(info extraction.ProjectInfo, at time.Time) Artifact {
	var d document
	d.raw("(*")
	d.raw("===========================================")
	d.line("PROJECT: %s", info.Name)
	d.line("VERSION: %s", info.Version)
	d.line("EXTRACTED: %s", at.Format(TimestampFormat))
	d.raw("===========================================")
	d.raw("*)")

	return Artifact{
		Kind:    extraction.KindProject,
		Name:    info.Name,
		File:    r.layout.ProjectInfo,
		Content: d.String(),
	}
}

// fileName builds "<name><suffix>.<ext>". Path separators in unit names are
// replaced so every artifact stays inside its category directory.
func fileName(name, suffix, ext string) string {
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return name + suffix + "." + ext
}
