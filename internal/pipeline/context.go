package pipeline

import (
	"log/slog"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/patclass"
	"github.com/funvibe/patclass/internal/problem"
	"github.com/funvibe/patclass/internal/typesystem"
)

// Processor is one stage of a check run.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one problem file through the stages.
type PipelineContext struct {
	FilePath string
	Source   []byte // read from FilePath when nil

	File      *problem.File
	Program   *ast.Program
	Signature *typesystem.Signature
	Checks    []*Check

	Errors []*diagnostics.DiagnosticError

	Fuel   int
	Verify bool
	Logger *slog.Logger
}

// Check is the outcome of checking one definition.
type Check struct {
	Function *ast.Function
	Params   []typesystem.Param
	// Classes is the ClassifyN result over the whole telescope.
	Classes []patclass.Class[typesystem.Term]
	// Tree is the case tree; nil when the definition has no clauses.
	Tree        patclass.MCT[typesystem.Term]
	Unreachable []int
	Diagnostics []*diagnostics.DiagnosticError
}

// AddErrors appends diagnostics, filling in the file path.
func (ctx *PipelineContext) AddErrors(diags ...*diagnostics.DiagnosticError) {
	for _, d := range diags {
		if d.File == "" {
			d.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, d)
	}
}

// Log returns the context logger, or a discarding one.
func (ctx *PipelineContext) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ctx.Logger
}
