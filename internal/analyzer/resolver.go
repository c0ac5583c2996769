package analyzer

import (
	"errors"
	"fmt"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/typesystem"
)

// Definition is a function ready for classification.
type Definition struct {
	Function *ast.Function
	Params   []typesystem.Param
	// Rows holds the clauses whose patterns line up with Params, aligned
	// so that every implicit parameter has a pattern.
	Rows []Row
	// Diagnostics are the clause-level problems found while aligning.
	Diagnostics []*diagnostics.DiagnosticError
}

// Names lists the telescope parameter names in order.
func (d *Definition) Names() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

type resolver struct {
	sig    *typesystem.Signature
	arity  map[string]int // data types of the program, before they are added
	fields map[string]int // constructors of the program, before they are added
	errors []*diagnostics.DiagnosticError
}

// Resolve builds the signature of prog on top of the builtins and turns
// every function whose telescope is well-formed into a Definition.
func Resolve(prog *ast.Program) (*typesystem.Signature, []*Definition, []*diagnostics.DiagnosticError) {
	r := &resolver{
		sig:    typesystem.Builtins(),
		arity:  make(map[string]int),
		fields: make(map[string]int),
	}
	for _, d := range prog.Data {
		r.arity[d.Name] = len(d.Params) + len(d.Indices)
		for _, c := range d.Ctors {
			r.fields[c.Name] = len(c.Fields)
		}
	}
	for _, d := range prog.Data {
		r.data(d)
	}

	var defs []*Definition
	for _, fn := range prog.Functions {
		if def := r.function(fn); def != nil {
			defs = append(defs, def)
		}
	}
	return r.sig, defs, r.errors
}

func (r *resolver) dataArity(name string) (int, bool) {
	if d, ok := r.sig.Data(name); ok {
		return d.Arity(), true
	}
	n, ok := r.arity[name]
	return n, ok
}

func (r *resolver) ctorFields(name string) (int, bool) {
	if c, ok := r.sig.Ctor(name); ok {
		return len(c.Fields), true
	}
	n, ok := r.fields[name]
	return n, ok
}

// expr resolves a type-level expression; vars are the names in scope.
func (r *resolver) expr(e ast.Expr, vars map[string]bool) (typesystem.Term, *diagnostics.DiagnosticError) {
	switch e := e.(type) {
	case *ast.NatLiteralExpr:
		return typesystem.Nat(e.Value), nil
	case *ast.NameExpr:
		return r.apply(e, e.Name, nil, vars)
	case *ast.AppExpr:
		return r.apply(e, e.Head, e.Args, vars)
	}
	return nil, diagnostics.Errorf(diagnostics.ErrA001, e.GetToken(), "unexpected expression %s", e)
}

func (r *resolver) apply(at ast.Expr, head string, args []ast.Expr, vars map[string]bool) (typesystem.Term, *diagnostics.DiagnosticError) {
	tok := at.GetToken()
	if vars[head] {
		if len(args) > 0 {
			return nil, diagnostics.Errorf(diagnostics.ErrA002, tok, "%s is a variable and cannot be applied", head)
		}
		return typesystem.Var{Name: head}, nil
	}
	if head == config.UniverseName && len(args) == 0 {
		return typesystem.Universe{}, nil
	}

	want, ok := r.dataArity(head)
	if !ok {
		want, ok = r.ctorFields(head)
	}
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, tok, "unknown name %s", head)
	}
	if want != len(args) {
		return nil, diagnostics.Errorf(diagnostics.ErrA002, tok, "%s expects %d argument(s), got %d", head, want, len(args))
	}

	out := typesystem.Con{Name: head}
	for _, a := range args {
		t, err := r.expr(a, vars)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, t)
	}
	return out, nil
}

// telescope resolves bindings left to right, each seeing the ones before.
func (r *resolver) telescope(bs []*ast.Binding, vars map[string]bool) ([]typesystem.Field, bool) {
	out := make([]typesystem.Field, 0, len(bs))
	ok := true
	for _, b := range bs {
		t, err := r.expr(b.Type, vars)
		if err != nil {
			r.errors = append(r.errors, err)
			ok = false
			continue
		}
		vars[b.Name] = true
		out = append(out, typesystem.Field{Name: b.Name, Type: t, Implicit: !b.Explicit})
	}
	return out, ok
}

func copyScope(vars map[string]bool) map[string]bool {
	out := make(map[string]bool, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}

func (r *resolver) data(d *ast.DataDecl) {
	scope := make(map[string]bool)
	params, ok := r.telescope(d.Params, scope)
	indices, ok2 := r.telescope(d.Indices, copyScope(scope))
	decl := &typesystem.DataDecl{Name: d.Name, Params: params, Indices: indices}
	ok = ok && ok2

	for _, c := range d.Ctors {
		fieldScope := copyScope(scope)
		fields, fok := r.telescope(c.Fields, fieldScope)
		ctor := &typesystem.CtorDecl{Name: c.Name, Fields: fields}
		for _, e := range c.Result {
			t, err := r.expr(e, fieldScope)
			if err != nil {
				r.errors = append(r.errors, err)
				fok = false
				continue
			}
			ctor.Result = append(ctor.Result, t)
		}
		ok = ok && fok
		decl.Ctors = append(decl.Ctors, ctor)
	}
	if !ok {
		return
	}

	if err := r.sig.Add(decl); err != nil {
		var dup *typesystem.DuplicateError
		code := diagnostics.ErrA002
		if errors.As(err, &dup) {
			code = diagnostics.ErrF004
		}
		r.errors = append(r.errors, diagnostics.NewError(code, d.Token, fmt.Sprintf("data %s: %v", d.Name, err)))
	}
}

func (r *resolver) function(fn *ast.Function) *Definition {
	fields, ok := r.telescope(fn.Params, make(map[string]bool))
	if !ok {
		return nil
	}
	def := &Definition{Function: fn}
	implicit := make([]bool, len(fields))
	for i, f := range fields {
		def.Params = append(def.Params, typesystem.Param{Name: f.Name, Type: f.Type, Explicit: !f.Implicit})
		implicit[i] = f.Implicit
	}

	for _, cl := range fn.Clauses {
		if cl.Patterns == nil {
			// The parser already reported this clause.
			continue
		}
		row, err := align(cl.Token, implicit, cl.Patterns)
		if err != nil {
			def.Diagnostics = append(def.Diagnostics, diagnostics.Errorf(diagnostics.ErrA003, cl.Token,
				"clause %d of %s: %v", cl.Index+1, fn.Name, err))
			continue
		}
		def.Diagnostics = append(def.Diagnostics, r.linear(fn, cl, row)...)
		def.Rows = append(def.Rows, Row{Index: cl.Index, Pats: row})
	}
	return def
}

// linear reports variables bound more than once in one clause.
func (r *resolver) linear(fn *ast.Function, cl *ast.Clause, row []ast.Pattern) []*diagnostics.DiagnosticError {
	var out []*diagnostics.DiagnosticError
	seen := make(map[string]bool)
	for _, b := range ast.Binders(row) {
		var name string
		switch b := b.(type) {
		case *ast.VarPattern:
			name = b.Name
		case *ast.IdentPattern:
			if _, isCtor := r.sig.Ctor(b.Name); isCtor {
				continue
			}
			name = b.Name
		}
		if seen[name] {
			out = append(out, diagnostics.Errorf(diagnostics.ErrA004, b.GetToken(),
				"variable %s is bound more than once in clause %d of %s", name, cl.Index+1, fn.Name))
			continue
		}
		seen[name] = true
	}
	return out
}
