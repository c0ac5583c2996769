package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/patclass"
	"github.com/funvibe/patclass/internal/pipeline"
	"github.com/funvibe/patclass/internal/token"
	"github.com/funvibe/patclass/internal/typesystem"
)

// Options tune a check run.
type Options struct {
	Fuel   int
	Verify bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// DefaultOptions uses the default fuel without verification.
func DefaultOptions() Options {
	return Options{Fuel: config.DefaultFuel}
}

// CheckFunction classifies the clauses of def, reports ill-typed and
// unreachable clauses, and builds its case tree.
func CheckFunction(sig *typesystem.Signature, def *Definition, opts Options) *pipeline.Check {
	fn := def.Function
	log := opts.logger().With("function", fn.Name)
	check := &pipeline.Check{Function: fn, Params: def.Params}
	check.Diagnostics = append(check.Diagnostics, def.Diagnostics...)

	oracle := NewOracle(sig, &typesystem.HoleSupply{}, patclass.WithLogger(log), patclass.WithVerify(opts.Verify))

	classes := oracle.Engine().ClassifyN(typesystem.NewSubst(def.Names()), def.Params, def.Rows, opts.Fuel)
	check.Classes = classes

	// Clauses in an Error class are reported as errors, and so are clauses
	// that every branch they reach refutes. Branches repeat the same
	// problem, so each diagnostic is emitted once.
	poisoned := make(map[int]bool)
	seen := make(map[diagnosticKey]bool)
	report := func(d *diagnostics.DiagnosticError, cls []int) {
		for _, i := range cls {
			poisoned[i] = true
		}
		key := diagnosticKey{code: d.Code, line: d.Token.Line, column: d.Token.Column, message: d.Message}
		if seen[key] {
			return
		}
		seen[key] = true
		check.Diagnostics = append(check.Diagnostics, d)
	}
	for _, e := range patclass.Errors(classes) {
		report(errorDiagnostic(fn, e.Problem, e.Clauses), e.Clauses)
	}
	unmatched := make(map[int]bool)
	for _, i := range patclass.Unmatched(classes) {
		unmatched[i] = true
	}
	for _, r := range patclass.Refutations(classes) {
		for _, i := range r.Clauses {
			if unmatched[i] {
				// One reason per clause is enough.
				delete(unmatched, i)
				report(errorDiagnostic(fn, r.Problem, []int{i}), []int{i})
			}
		}
	}

	var origins []patclass.Origin[token.Token]
	for _, r := range def.Rows {
		if !poisoned[r.Index] {
			origins = append(origins, patclass.Origin[token.Token]{Index: r.Index, Pos: fn.Clauses[r.Index].Token})
		}
	}
	patclass.Dominate(origins, patclass.WithoutErrors(classes), func(pos token.Token, ordinal int) {
		check.Unreachable = append(check.Unreachable, ordinal-1)
		check.Diagnostics = append(check.Diagnostics, diagnostics.NewWarning(diagnostics.ErrC002, pos,
			fmt.Sprintf("clause %d of %s is unreachable", ordinal, fn.Name)))
	})

	if len(def.Rows) > 0 {
		check.Tree = buildTree(oracle, def.Params, def.Rows, opts.Fuel)
	}
	log.Debug("checked definition",
		"clauses", len(fn.Clauses), "classes", len(classes), "unreachable", len(check.Unreachable))
	return check
}

// diagnosticKey identifies a diagnostic by what it says and where.
type diagnosticKey struct {
	code         diagnostics.ErrorCode
	line, column int
	message      string
}

func errorDiagnostic(fn *ast.Function, problem error, cls []int) *diagnostics.DiagnosticError {
	var pe *PatternError
	if errors.As(problem, &pe) {
		return pe.Diagnostic()
	}
	tok := fn.Token
	if m := patclass.MinIndex(cls); m >= 0 && m < len(fn.Clauses) {
		tok = fn.Clauses[m].Token
	}
	return diagnostics.Errorf(diagnostics.ErrC003, tok, "cannot classify clauses of %s: %v", fn.Name, problem)
}

// buildTree splits the telescope column by column. A column is split only
// when some surviving row refutes there; Error classes become Faults that
// poison the subtree below them, and Refuted rows do not enter the branch.
func buildTree(o *ConOracle, params []typesystem.Param, rows []Row, fuel int) patclass.MCT[typesystem.Term] {
	var split patclass.SplitFunc[typesystem.Param, ast.Pattern, typesystem.Term]
	split = func(tele []typesystem.Param, rows []Row) (patclass.MCT[typesystem.Term], bool) {
		refuting := false
		for _, r := range rows {
			if h, ok := r.Head(); ok && o.refutes(h) {
				refuting = true
			}
		}
		if !refuting {
			return nil, false
		}

		col := tele[0]
		node := &patclass.Node[typesystem.Term]{Type: col.Type}
		for _, cls := range o.engine.Classify1(typesystem.NewSubst(nil), col, rows, fuel) {
			sub := patclass.DropAll(patclass.Select(rows, cls.Cls()))
			switch cls := cls.(type) {
			case *patclass.One[typesystem.Term]:
				bound := typesystem.NewSubst([]string{col.Name}).Extend(cls.Term)
				rest := make([]typesystem.Param, len(tele)-1)
				for i, p := range tele[1:] {
					rest[i] = bound.ApplyParam(p)
				}
				node.Children = append(node.Children, patclass.Build(rest, sub, split))
			case *patclass.Error[typesystem.Term]:
				fault := &patclass.Fault[typesystem.Term]{Clauses: cls.Clauses, Problem: cls.Problem}
				node.Children = append(node.Children, fault.Propagate(patclass.Build(tele[1:], sub, split)))
			}
		}
		return node, true
	}
	return patclass.Build(params, rows, split)
}

// CheckAll checks independent definitions concurrently. Results are in
// the order of defs.
func CheckAll(ctx context.Context, sig *typesystem.Signature, defs []*Definition, opts Options) ([]*pipeline.Check, error) {
	out := make([]*pipeline.Check, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = CheckFunction(sig, def, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
