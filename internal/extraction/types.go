package extraction

// Language identifies the dialect of a program body.
type Language string

const (
	LanguageNone Language = ""
	LanguageST   Language = "ST"
	LanguageSFC  Language = "SFC"
	LanguageLD   Language = "LD"
)

// Placeholders emitted instead of graphical bodies, which are never decoded.
const (
	SFCPlaceholder = "<!-- SFC Structure -->"
	LDPlaceholder  = "<!-- LD Ladder Diagram -->"
)

// Defaults used when the content header is missing or incomplete.
const (
	DefaultProjectName    = "Unknown"
	DefaultProjectVersion = "0.0.0"
)

// UnitKind is the closed set of things the extractor produces.
type UnitKind int

const (
	KindProject UnitKind = iota
	KindFunctionBlock
	KindDataType
	KindExternalFunction
	KindDerivedFunctionBlock
	KindProgram
)

func (k UnitKind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindFunctionBlock:
		return "function block"
	case KindDataType:
		return "data type"
	case KindExternalFunction:
		return "external function"
	case KindDerivedFunctionBlock:
		return "derived function block"
	case KindProgram:
		return "program"
	default:
		return "unknown"
	}
}

// ProjectInfo identifies the exported project.
type ProjectInfo struct {
	Name    string
	Version string
}

// Variable is one declared variable. Duplicate names are kept as-is.
type Variable struct {
	Name    string
	Type    string
	Comment string
	Address string // topological address, informational only
}

// Body is a program body: verbatim ST text or a placeholder for graphical dialects.
type Body struct {
	Code     string
	Language Language
}

// CodeUnit is a named body nested inside a function block.
type CodeUnit struct {
	Name string
	Body
}

// FunctionBlockSource is a function block type with its interface and bodies.
type FunctionBlockSource struct {
	Name     string
	Version  string
	Comment  string
	Input    []Variable
	Output   []Variable
	InOut    []Variable
	Private  []Variable
	Public   []Variable
	Programs []CodeUnit
}

// DataTypeSource is a structure type. Member order is the structure layout.
type DataTypeSource struct {
	Name      string
	Version   string
	Comment   string
	Structure []Variable
}

// ExternalFunctionSource is a function declaration without a body.
type ExternalFunctionSource struct {
	Name    string
	Version string
	Comment string
	Input   []Variable
	Output  []Variable
}

// DerivedFunctionBlockSource carries exactly one body.
type DerivedFunctionBlockSource struct {
	Name    string
	Version string
	Comment string
	Body
}

// ProgramSource is a standalone program section bound to a task.
type ProgramSource struct {
	Name         string
	Type         string
	Task         string
	SectionOrder string
	Comment      string
	Body
}

// Record is the result of one extraction run.
// It is built once and only read afterwards.
type Record struct {
	Project               ProjectInfo
	FunctionBlocks        []FunctionBlockSource
	DataTypes             []DataTypeSource
	ExternalFunctions     []ExternalFunctionSource
	DerivedFunctionBlocks []DerivedFunctionBlockSource
	Programs              []ProgramSource
}

// Counts returns the number of extracted units per kind.
func (r *Record) Counts() map[UnitKind]int {
	return map[UnitKind]int{
		KindFunctionBlock:        len(r.FunctionBlocks),
		KindDataType:             len(r.DataTypes),
		KindExternalFunction:     len(r.ExternalFunctions),
		KindDerivedFunctionBlock: len(r.DerivedFunctionBlocks),
		KindProgram:              len(r.Programs),
	}
}
