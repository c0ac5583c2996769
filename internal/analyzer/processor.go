package analyzer

import (
	"context"

	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/pipeline"
	"github.com/funvibe/patclass/internal/token"
)

// AnalyzerProcessor resolves the program and checks every definition.
// A negative ctx.Fuel selects the default fuel.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || diagnostics.HasErrors(ctx.Errors) {
		return ctx
	}

	sig, defs, errs := Resolve(ctx.Program)
	ctx.Signature = sig
	ctx.AddErrors(errs...)

	opts := Options{Fuel: ctx.Fuel, Verify: ctx.Verify, Logger: ctx.Log().With("file", ctx.FilePath)}
	if opts.Fuel < 0 {
		opts.Fuel = config.DefaultFuel
	}
	checks, err := CheckAll(context.Background(), sig, defs, opts)
	if err != nil {
		ctx.AddErrors(diagnostics.NewError(diagnostics.ErrC003, token.Token{}, err.Error()))
		return ctx
	}
	ctx.Checks = checks
	for _, c := range checks {
		ctx.AddErrors(c.Diagnostics...)
	}
	return ctx
}
