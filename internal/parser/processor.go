package parser

import (
	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/pipeline"
	"github.com/funvibe/patclass/internal/problem"
)

// LoaderProcessor decodes the problem file.
type LoaderProcessor struct{}

func (lp *LoaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	var (
		f     *problem.File
		diags []*diagnostics.DiagnosticError
	)
	if ctx.Source == nil {
		f, diags = problem.Load(ctx.FilePath)
	} else {
		f, diags = problem.Parse(ctx.Source, ctx.FilePath)
	}
	ctx.AddErrors(diags...)
	ctx.File = f
	return ctx
}

// ParserProcessor parses the bindings, types and pattern rows of a
// decoded problem file into a Program.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.File == nil {
		return ctx
	}

	c := &converter{}
	prog := &ast.Program{File: ctx.FilePath}
	for _, d := range ctx.File.Data {
		prog.Data = append(prog.Data, c.data(d))
	}
	for _, fn := range ctx.File.Functions {
		prog.Functions = append(prog.Functions, c.function(fn))
	}
	ctx.Program = prog

	// Ensure all errors have file path set
	ctx.AddErrors(c.errors...)
	return ctx
}

type converter struct {
	errors []*diagnostics.DiagnosticError
}

func (c *converter) binding(l problem.Located) *ast.Binding {
	b, errs := Binding(l.Value, l.Line, l.Column)
	c.errors = append(c.errors, errs...)
	return b
}

func (c *converter) bindings(ls []problem.Located) []*ast.Binding {
	out := make([]*ast.Binding, 0, len(ls))
	for _, l := range ls {
		if b := c.binding(l); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) data(d *problem.Data) *ast.DataDecl {
	decl := &ast.DataDecl{
		Token:   d.Name.Tok(),
		Name:    d.Name.Value,
		Params:  c.bindings(d.Params),
		Indices: c.bindings(d.Indices),
	}
	for _, ctor := range d.Ctors {
		cd := &ast.CtorDecl{
			Token:  ctor.Name.Tok(),
			Name:   ctor.Name.Value,
			Fields: c.bindings(ctor.Fields),
		}
		for _, r := range ctor.Result {
			e, errs := Expr(r.Value, r.Line, r.Column)
			c.errors = append(c.errors, errs...)
			if e != nil {
				cd.Result = append(cd.Result, e)
			}
		}
		decl.Ctors = append(decl.Ctors, cd)
	}
	return decl
}

func (c *converter) function(fn *problem.Function) *ast.Function {
	out := &ast.Function{
		Token:  fn.Name.Tok(),
		Name:   fn.Name.Value,
		Params: c.bindings(fn.Params),
	}
	for i, cl := range fn.Clauses {
		pats, errs := PatternRow(cl.Value, cl.Line, cl.Column)
		c.errors = append(c.errors, errs...)
		tok := cl.Tok()
		if tok.Line == 0 {
			// `- ` with no value: point at the function instead.
			tok = out.Token
		}
		out.Clauses = append(out.Clauses, &ast.Clause{Token: tok, Patterns: pats, Index: i})
	}
	return out
}
