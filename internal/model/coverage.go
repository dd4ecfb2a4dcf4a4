package model

import "encoding/xml"

// Construct is the kind of source construct a coverage line measures.
type Construct string

const (
	// ConstructStatement is a plain statement, counted once.
	ConstructStatement Construct = "stmt"
	// ConstructConditional is a branch, counted once per direction.
	ConstructConditional Construct = "cond"
	// ConstructMethod is a method entry point, counted once.
	ConstructMethod Construct = "method"
)

// Coverage is the document root of a Clover report.
type Coverage struct {
	XMLName xml.Name   `xml:"coverage"`
	Extra   []xml.Attr `xml:",any,attr"`
	Project *Project   `xml:"project"`
	Rest    []RawNode  `xml:",any"`
}

// Project is the root of the coverage tree.
type Project struct {
	Name     string     `xml:"name,attr,omitempty"`
	Extra    []xml.Attr `xml:",any,attr"`
	Metrics  Metrics    `xml:"metrics"`
	Packages []*Package `xml:"package"`
	Rest     []RawNode  `xml:",any"`
}

// Package groups the files of one source package. Names are unique within a project.
type Package struct {
	Name    string     `xml:"name,attr"`
	Extra   []xml.Attr `xml:",any,attr"`
	Metrics Metrics    `xml:"metrics"`
	Files   []*File    `xml:"file"`
	Rest    []RawNode  `xml:",any"`
}

// File is a single measured source file. Class entries are kept verbatim in Rest.
type File struct {
	Name    string     `xml:"name,attr"`
	Path    Path       `xml:"path,attr,omitempty"`
	Extra   []xml.Attr `xml:",any,attr"`
	Metrics Metrics    `xml:"metrics"`
	Rest    []RawNode  `xml:",any"`
	Lines   []Line     `xml:"line"`
}

// Line is one measured physical source line. Lines are never modified after load.
type Line struct {
	Num        int        `xml:"num,attr"`
	Type       Construct  `xml:"type,attr"`
	Count      *int       `xml:"count,attr,omitempty"`
	TrueCount  *int       `xml:"truecount,attr,omitempty"`
	FalseCount *int       `xml:"falsecount,attr,omitempty"`
	Extra      []xml.Attr `xml:",any,attr"`
}

// RawNode preserves an element the reduction does not interpret.
type RawNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

// FileCount returns the number of files across all packages.
func (p *Project) FileCount() int {
	total := 0
	for _, pkg := range p.Packages {
		total += len(pkg.Files)
	}

	return total
}

// QualifiedName returns "package.File" or just the file name in the default package.
func (p *Package) QualifiedName(f *File) string {
	if p == nil || p.Name == "" {
		return f.Name
	}

	return p.Name + "." + f.Name
}

// Counts returns the totals and capped covered contribution of the line.
//
// Statements and methods count once and are covered when hit at least once.
// Conditionals count twice and each branch direction covers at most one element.
func (l Line) Counts() Counts {
	switch l.Type {
	case ConstructStatement:
		covered := capHits(l.Count)
		return Counts{Statements: 1, CoveredStatements: covered, Elements: 1, CoveredElements: covered}
	case ConstructMethod:
		covered := capHits(l.Count)
		return Counts{Methods: 1, CoveredMethods: covered, Elements: 1, CoveredElements: covered}
	case ConstructConditional:
		covered := capHits(l.TrueCount) + capHits(l.FalseCount)
		return Counts{Conditionals: 2, CoveredConditionals: covered, Elements: 2, CoveredElements: covered}
	default:
		return Counts{}
	}
}

// Hit reports whether the line contributes any covered element.
func (l Line) Hit() bool {
	return l.Counts().CoveredElements > 0
}

func capHits(count *int) int {
	if count == nil || *count <= 0 {
		return 0
	}

	return 1
}
