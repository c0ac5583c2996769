package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/patclass"
	"github.com/funvibe/patclass/internal/pipeline"
	"github.com/funvibe/patclass/internal/typesystem"
)

// --- Report Printer (classification results as indented text) ---

// Clause numbers are printed 1-based, the way diagnostics count them.

type ReportPrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewReportPrinter() *ReportPrinter {
	return &ReportPrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewReportPrinterWithWidth(width int) *ReportPrinter {
	return &ReportPrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *ReportPrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

func (p *ReportPrinter) String() string {
	return p.buf.String()
}

func (p *ReportPrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	p.column = p.indent * 2
}

func (p *ReportPrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *ReportPrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

// writeList writes items separated by spaces, wrapping onto indented
// continuation lines past the line width.
func (p *ReportPrinter) writeList(items []string) {
	start := p.column
	for i, it := range items {
		if i > 0 {
			if p.lineWidth > 0 && p.column+1+len(it) > p.lineWidth {
				p.writeln()
				p.write(strings.Repeat(" ", start))
			} else {
				p.write(" ")
			}
		}
		p.write(it)
	}
}

func ordinals(cls []int) []string {
	out := make([]string, len(cls))
	for i, c := range cls {
		out[i] = strconv.Itoa(c + 1)
	}
	return out
}

// Telescope renders `(n : Nat) {A : Type}`.
func Telescope(params []typesystem.Param) string {
	parts := make([]string, len(params))
	for i, prm := range params {
		if prm.Explicit {
			parts[i] = "(" + prm.Name + " : " + prm.Type.String() + ")"
		} else {
			parts[i] = "{" + prm.Name + " : " + prm.Type.String() + "}"
		}
	}
	return strings.Join(parts, " ")
}

// PrintChecks prints each check, separated by blank lines.
func (p *ReportPrinter) PrintChecks(checks []*pipeline.Check, tree bool) {
	for i, c := range checks {
		if i > 0 {
			p.writeln()
		}
		p.PrintCheck(c, tree)
	}
}

// PrintCheck prints a definition's clauses, its classes and, when tree is
// set, its case tree.
func (p *ReportPrinter) PrintCheck(c *pipeline.Check, tree bool) {
	p.writeIndent()
	p.write(c.Function.Name)
	if len(c.Params) > 0 {
		p.write(" " + Telescope(c.Params))
	}
	p.writeln()

	p.indent++
	unreachable := make(map[int]bool, len(c.Unreachable))
	for _, i := range c.Unreachable {
		unreachable[i] = true
	}
	for _, cl := range c.Function.Clauses {
		p.printClause(cl, unreachable[cl.Index])
	}

	p.writeIndent()
	p.write("classes:")
	p.writeln()
	p.indent++
	p.PrintClasses(c.Classes)
	p.indent--

	if tree && c.Tree != nil {
		p.writeIndent()
		p.write(fmt.Sprintf("tree: depth %d, size %d, faults %d",
			patclass.Depth[typesystem.Term](c.Tree), patclass.Size[typesystem.Term](c.Tree),
			len(patclass.Faults[typesystem.Term](c.Tree))))
		p.writeln()
		p.indent++
		p.PrintTree(c.Tree)
		p.indent--
	}
	p.indent--
}

func (p *ReportPrinter) printClause(cl *ast.Clause, unreachable bool) {
	p.writeIndent()
	p.write(strconv.Itoa(cl.Index+1) + ". ")
	if len(cl.Patterns) == 0 {
		p.write("()")
	} else {
		p.write(ast.RowString(cl.Patterns))
	}
	if unreachable {
		p.write("  -- unreachable")
	}
	p.writeln()
}

// PrintClasses prints one class per line: the representative terms and
// the clauses that match them. Error and Refuted classes print their
// problem instead of terms.
func (p *ReportPrinter) PrintClasses(classes []patclass.Class[typesystem.Term]) {
	if len(classes) == 0 {
		p.writeIndent()
		p.write("(none)")
		p.writeln()
		return
	}
	for _, cls := range classes {
		p.writeIndent()
		switch c := cls.(type) {
		case *patclass.One[typesystem.Term]:
			p.write(c.Term.String())
		case *patclass.Two[typesystem.Term]:
			p.write(c.First.String() + ", " + c.Second.String())
		case *patclass.Seq[typesystem.Term]:
			p.write(terms(c.Terms))
		case *patclass.Error[typesystem.Term]:
			p.write("error: " + c.Problem.Error())
		case *patclass.Refuted[typesystem.Term]:
			p.write("refuted: " + c.Problem.Error())
		}
		p.write(" => ")
		p.writeList(ordinals(cls.Cls()))
		p.writeln()
	}
}

func terms(ts []typesystem.Term) string {
	if len(ts) == 0 {
		return "()"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// PrintTree prints a case tree with one line per node.
func (p *ReportPrinter) PrintTree(tree patclass.MCT[typesystem.Term]) {
	p.writeIndent()
	switch n := tree.(type) {
	case *patclass.Node[typesystem.Term]:
		p.write("split " + n.Type.String())
		p.writeln()
		p.indent++
		for _, child := range n.Children {
			p.PrintTree(child)
		}
		p.indent--
		return
	case *patclass.Leaf[typesystem.Term]:
		p.write("leaf ")
		p.writeList(ordinals(n.Clauses))
	case *patclass.Fault[typesystem.Term]:
		p.write("fault ")
		p.writeList(ordinals(n.Clauses))
		p.write(": " + n.Problem.Error())
	}
	p.writeln()
}
