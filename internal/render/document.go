package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/xef-extract/internal/extraction"
)

const bannerRule = "(* ======================================== *)"

// field is an optional "(* LABEL: value *)" header line.
type field struct {
	label string
	value string
}

// document accumulates output lines.
type document struct {
	lines []string
}

func (d *document) line(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *document) raw(s string) {
	d.lines = append(d.lines, s)
}

func (d *document) blank() {
	d.lines = append(d.lines, "")
}

// header writes the comment banner shared by every unit kind.
// Fields with empty values are left out.
func (d *document) header(label, name string, fields []field, comment string) {
	d.raw(bannerRule)
	d.line("(* %s: %s *)", label, name)
	for _, f := range fields {
		if f.value != "" {
			d.line("(* %s: %s *)", f.label, f.value)
		}
	}
	if comment != "" {
		d.line("(* %s *)", comment)
	}
	d.raw(bannerRule)
	d.blank()
}

// variables writes a titled variable section, or nothing for an empty list.
func (d *document) variables(title string, vars []extraction.Variable) {
	if len(vars) == 0 {
		return
	}
	d.line("(* %s *)", title)
	for _, v := range vars {
		d.raw(declaration(v))
	}
	d.blank()
}

func (d *document) code(c string) {
	if c != "" {
		d.raw(c)
	}
}

// String joins the lines and terminates the text with exactly one newline.
func (d *document) String() string {
	end := len(d.lines)
	for end > 0 && d.lines[end-1] == "" {
		end--
	}
	return strings.Join(d.lines[:end], "\n") + "\n"
}

func declaration(v extraction.Variable) string {
	decl := fmt.Sprintf("  %s : %s;", v.Name, v.Type)
	if v.Comment != "" {
		decl += fmt.Sprintf(" (* %s *)", v.Comment)
	}
	return decl
}
