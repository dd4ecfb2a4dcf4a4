package model

import "encoding/xml"

// Counts holds the coverage totals that reduction maintains on every node.
// Elements is Statements + Conditionals + Methods, where a conditional line
// contributes two conditionals (one per branch direction).
type Counts struct {
	Statements          int `xml:"statements,attr"`
	CoveredStatements   int `xml:"coveredstatements,attr"`
	Conditionals        int `xml:"conditionals,attr"`
	CoveredConditionals int `xml:"coveredconditionals,attr"`
	Methods             int `xml:"methods,attr"`
	CoveredMethods      int `xml:"coveredmethods,attr"`
	Elements            int `xml:"elements,attr"`
	CoveredElements     int `xml:"coveredelements,attr"`
}

// Metrics is the <metrics> block attached to project, package and file nodes.
// Attributes other than the reduction counts (complexity, loc, test results...)
// are carried through untouched.
type Metrics struct {
	Counts
	Extra []xml.Attr `xml:",any,attr"`
}

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.Statements += o.Statements
	c.CoveredStatements += o.CoveredStatements
	c.Conditionals += o.Conditionals
	c.CoveredConditionals += o.CoveredConditionals
	c.Methods += o.Methods
	c.CoveredMethods += o.CoveredMethods
	c.Elements += o.Elements
	c.CoveredElements += o.CoveredElements
}

// Sub removes o from c.
func (c *Counts) Sub(o Counts) {
	c.Statements -= o.Statements
	c.CoveredStatements -= o.CoveredStatements
	c.Conditionals -= o.Conditionals
	c.CoveredConditionals -= o.CoveredConditionals
	c.Methods -= o.Methods
	c.CoveredMethods -= o.CoveredMethods
	c.Elements -= o.Elements
	c.CoveredElements -= o.CoveredElements
}

// Minus returns c - o without modifying either operand.
func (c Counts) Minus(o Counts) Counts {
	c.Sub(o)
	return c
}

// Totals returns c with every covered field cleared.
func (c Counts) Totals() Counts {
	return Counts{
		Statements:   c.Statements,
		Conditionals: c.Conditionals,
		Methods:      c.Methods,
		Elements:     c.Elements,
	}
}

// IsZero reports whether every field is zero.
func (c Counts) IsZero() bool {
	return c == Counts{}
}

// CoveredWithinTotals reports whether no covered field exceeds its total and
// no field is negative.
func (c Counts) CoveredWithinTotals() bool {
	pairs := [][2]int{
		{c.CoveredStatements, c.Statements},
		{c.CoveredConditionals, c.Conditionals},
		{c.CoveredMethods, c.Methods},
		{c.CoveredElements, c.Elements},
	}

	for _, p := range pairs {
		if p[0] < 0 || p[1] < 0 || p[0] > p[1] {
			return false
		}
	}

	return true
}

// CoveredPercent returns the covered share of elements in the range [0, 100].
func (c Counts) CoveredPercent() float64 {
	if c.Elements == 0 {
		return 0
	}

	return float64(c.CoveredElements) / float64(c.Elements) * 100
}
