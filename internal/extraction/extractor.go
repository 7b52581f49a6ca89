// Package extraction builds an in-memory Record of program units from a
// parsed XEF document. It performs no I/O.
package extraction

import "fmt"

// Extractor walks a parsed document once and produces a Record.
type Extractor struct {
	reporter Reporter
	policy   BodyPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithReporter sets the progress reporter. Nil is ignored.
func WithReporter(r Reporter) Option {
	return func(x *Extractor) {
		if r != nil {
			x.reporter = r
		}
	}
}

// WithBodyPolicy sets how units with several body elements are handled.
func WithBodyPolicy(p BodyPolicy) Option {
	return func(x *Extractor) {
		x.policy = p
	}
}

// New creates an Extractor. By default it reports nothing and uses BodyPolicyLastWins.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		reporter: NoOpReporter{},
		policy:   BodyPolicyLastWins,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract builds a Record from the document root.
// Missing optional structure never fails; only BodyPolicyStrict can return an error.
func (x *Extractor) Extract(root Element) (*Record, error) {
	rec := &Record{
		Project: extractProjectInfo(root),
	}
	x.reporter.OnPassComplete(KindProject, 1)

	var err error

	if rec.FunctionBlocks, err = x.extractFunctionBlocks(root); err != nil {
		return nil, err
	}
	x.reporter.OnPassComplete(KindFunctionBlock, len(rec.FunctionBlocks))

	rec.DataTypes = extractDataTypes(root)
	x.reporter.OnPassComplete(KindDataType, len(rec.DataTypes))

	rec.ExternalFunctions = extractExternalFunctions(root)
	x.reporter.OnPassComplete(KindExternalFunction, len(rec.ExternalFunctions))

	if rec.DerivedFunctionBlocks, err = x.extractDerivedFunctionBlocks(root); err != nil {
		return nil, err
	}
	x.reporter.OnPassComplete(KindDerivedFunctionBlock, len(rec.DerivedFunctionBlocks))

	if rec.Programs, err = x.extractPrograms(root); err != nil {
		return nil, err
	}
	x.reporter.OnPassComplete(KindProgram, len(rec.Programs))

	return rec, nil
}

func extractProjectInfo(root Element) ProjectInfo {
	header := root.Child("contentHeader")
	if header == nil {
		return ProjectInfo{Name: DefaultProjectName, Version: DefaultProjectVersion}
	}
	return ProjectInfo{
		Name:    attrOr(header, "name", DefaultProjectName),
		Version: attrOr(header, "version", DefaultProjectVersion),
	}
}

func (x *Extractor) extractFunctionBlocks(root Element) ([]FunctionBlockSource, error) {
	var out []FunctionBlockSource
	for _, e := range root.Children("FBSource") {
		fb := FunctionBlockSource{
			Name:    attr(e, "nameOfFBType"),
			Version: attr(e, "version"),
			Comment: childText(e, "comment"),
			Input:   decodeVariables(e, "inputParameters"),
			Output:  decodeVariables(e, "outputParameters"),
			InOut:   decodeVariables(e, "inOutParameters"),
			Private: decodeVariables(e, "privateLocalVariables"),
			Public:  decodeVariables(e, "publicLocalVariables"),
		}

		for _, p := range e.Children("FBProgram") {
			name := attr(p, "name")
			b, err := x.body(fmt.Sprintf("FB %s program %s", fb.Name, name), p, fbProgramBodySources)
			if err != nil {
				return nil, err
			}
			fb.Programs = append(fb.Programs, CodeUnit{Name: name, Body: b})
		}

		out = append(out, fb)
	}
	return out, nil
}

func extractDataTypes(root Element) []DataTypeSource {
	var out []DataTypeSource
	for _, e := range root.Children("DDTSource") {
		out = append(out, DataTypeSource{
			Name:      attr(e, "DDTName"),
			Version:   attr(e, "version"),
			Comment:   childText(e, "comment"),
			Structure: decodeVariables(e, "structure"),
		})
	}
	return out
}

// External function parameters live under ExternalToolsOnly, one level
// deeper than for every other unit kind.
func extractExternalFunctions(root Element) []ExternalFunctionSource {
	var out []ExternalFunctionSource
	for _, e := range root.Children("EFSource") {
		ef := ExternalFunctionSource{
			Name:    attr(e, "nameOfEFType"),
			Version: attr(e, "version"),
			Comment: childText(e, "comment"),
		}
		if tools := e.Child("ExternalToolsOnly"); tools != nil {
			ef.Input = decodeVariables(tools, "inputParameters")
			ef.Output = decodeVariables(tools, "outputParameters")
		}
		out = append(out, ef)
	}
	return out
}

func (x *Extractor) extractDerivedFunctionBlocks(root Element) ([]DerivedFunctionBlockSource, error) {
	var out []DerivedFunctionBlockSource
	for _, e := range root.Children("DFBSource") {
		dfb := DerivedFunctionBlockSource{
			Name:    attr(e, "nameOfDFBType"),
			Version: attr(e, "version"),
			Comment: childText(e, "comment"),
		}
		b, err := x.body("DFB "+dfb.Name, e, fullBodySources)
		if err != nil {
			return nil, err
		}
		dfb.Body = b
		out = append(out, dfb)
	}
	return out, nil
}

// extractPrograms resolves each program's identity from identProgram first and
// from the program element's own attributes second. Programs without a name are dropped.
func (x *Extractor) extractPrograms(root Element) ([]ProgramSource, error) {
	var out []ProgramSource
	for _, e := range root.Children("program") {
		prog := ProgramSource{
			Comment: childText(e, "comment"),
		}
		if ident := e.Child("identProgram"); ident != nil {
			prog.Name = attr(ident, "name")
			prog.Type = attr(ident, "type")
			prog.Task = attr(ident, "task")
			prog.SectionOrder = attr(ident, "SectionOrder")
		}
		if prog.Name == "" {
			prog.Name = attr(e, "name")
			if prog.Task == "" {
				prog.Task = attr(e, "task")
			}
		}
		if prog.Name == "" {
			continue
		}

		b, err := x.body("program "+prog.Name, e, fullBodySources)
		if err != nil {
			return nil, err
		}
		prog.Body = b
		out = append(out, prog)
	}
	return out, nil
}
