package analyzer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/patclass"
	"github.com/funvibe/patclass/internal/token"
	"github.com/funvibe/patclass/internal/typesystem"
)

type (
	Row    = patclass.Row[ast.Pattern]
	Class  = patclass.Class[typesystem.Term]
	Engine = patclass.Classifier[typesystem.Subst, typesystem.Param, ast.Pattern, typesystem.Term]
)

// ConOracle classifies columns of data types by their constructors.
//
// A column is split only when some row has a constructor head there.
// Constructors whose result indices cannot unify with the column type are
// refuted; rows that name a refuted constructor become Error classes.
// Catch-all rows join every class of the column.
type ConOracle struct {
	sig    *typesystem.Signature
	holes  *typesystem.HoleSupply
	engine *Engine
}

// NewOracle returns an oracle together with the classifier it drives and
// uses for nested sub-pattern classification.
func NewOracle(sig *typesystem.Signature, holes *typesystem.HoleSupply, opts ...patclass.Option) *ConOracle {
	o := &ConOracle{sig: sig, holes: holes}
	o.engine = patclass.New(o, opts...)
	return o
}

func (o *ConOracle) Engine() *Engine {
	return o.engine
}

func (o *ConOracle) SubstParam(s typesystem.Subst, p typesystem.Param) typesystem.Param {
	return s.ApplyParam(p)
}

func (o *ConOracle) Extend(s typesystem.Subst, t typesystem.Term) typesystem.Subst {
	return s.Extend(t)
}

// Normalize resolves bare identifiers and unfolds natural literals.
func (o *ConOracle) Normalize(pat ast.Pattern) ast.Pattern {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		if _, ok := o.sig.Ctor(p.Name); ok {
			return &ast.ConPattern{Token: p.Token, Name: p.Name}
		}
		return &ast.VarPattern{Token: p.Token, Name: p.Name}
	case *ast.NatLiteralPattern:
		var out ast.Pattern = &ast.ConPattern{Token: p.Token, Name: config.ZeroCtorName}
		for i := 0; i < p.Value; i++ {
			out = &ast.ConPattern{Token: p.Token, Name: config.SucCtorName, Args: []ast.Pattern{out}}
		}
		return out
	case *ast.ImplicitPattern:
		return o.Normalize(p.Pattern)
	}
	return pat
}

// refutes reports whether p can fail to match.
func (o *ConOracle) refutes(p ast.Pattern) bool {
	_, ok := o.Normalize(p).(*ast.ConPattern)
	return ok
}

func (o *ConOracle) representative(param typesystem.Param) typesystem.Term {
	if param.Value != nil {
		return param.Value
	}
	return o.holes.Fresh()
}

func patternError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) *PatternError {
	return &PatternError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (o *ConOracle) Classify1(s typesystem.Subst, param typesystem.Param, rows []Row, fuel int) []Class {
	var data *typesystem.DataDecl
	ty, isCon := param.Type.(typesystem.Con)
	if isCon {
		data, _ = o.sig.Data(ty.Name)
	}

	var out, errs []Class
	open := make(map[int]bool)             // rows with a catch-all head
	byCtor := make(map[string][]int)       // rows per well-formed constructor head
	aligned := make(map[int][]ast.Pattern) // constructor arguments per row
	for _, r := range rows {
		switch h := r.Pats[0].(type) {
		case *ast.WildPattern, *ast.VarPattern:
			open[r.Index] = true
		case *ast.ConPattern:
			ctor, ok := o.sig.Ctor(h.Name)
			if !ok {
				errs = append(errs, errorClass(r.Index, patternError(diagnostics.ErrA001, h.Token,
					"unknown constructor %s", h.Name)))
				continue
			}
			if data == nil || ctor.Data != data.Name {
				errs = append(errs, errorClass(r.Index, patternError(diagnostics.ErrC001, h.Token,
					"constructor %s of %s cannot match a value of type %s", h.Name, ctor.Data, param.Type)))
				continue
			}
			implicit := make([]bool, len(ctor.Fields))
			for i, f := range ctor.Fields {
				implicit[i] = f.Implicit
			}
			args, err := align(h.Token, implicit, h.Args)
			if err != nil {
				errs = append(errs, errorClass(r.Index, patternError(diagnostics.ErrC001, h.Token,
					"constructor %s: %v", h.Name, err)))
				continue
			}
			byCtor[h.Name] = append(byCtor[h.Name], r.Index)
			aligned[r.Index] = args
		default:
			errs = append(errs, errorClass(r.Index, patternError(diagnostics.ErrC003, h.GetToken(),
				"pattern %s was not normalized", h)))
		}
	}

	if len(byCtor) == 0 {
		if len(open) > 0 {
			out = append(out, &patclass.One[typesystem.Term]{Term: o.representative(param), Clauses: sortedKeys(rows, open)})
		}
		return append(out, errs...)
	}

	covered := false
	for _, ctor := range data.Ctors {
		conRows := byCtor[ctor.Name]
		if len(conRows) == 0 && len(open) == 0 {
			continue
		}
		inst, err := o.sig.Instantiate(ctor, ty, o.holes)
		if err == nil && param.Value != nil {
			_, err = typesystem.Unify(inst.Term, param.Value, typesystem.Solution{})
		}
		if err != nil {
			var ue *typesystem.UnifyError
			if len(conRows) == 0 {
				continue
			}
			if !errors.As(err, &ue) {
				errs = append(errs, &patclass.Error[typesystem.Term]{Problem: err, Clauses: conRows})
			} else {
				// The index this branch fixed rules the constructor out. The
				// rows may still match in a sibling branch; CheckFunction
				// reports them only when no branch admits them.
				for _, i := range conRows {
					errs = append(errs, &patclass.Refuted[typesystem.Term]{
						Problem: patternError(diagnostics.ErrC001, rowHead(rows, i),
							"constructor %s cannot produce a value of type %s", ctor.Name, param.Type),
						Clauses: []int{i},
					})
				}
			}
			continue
		}

		covered = true
		members := make([]Row, 0, len(conRows)+len(open))
		refuting := false
		for _, r := range rows {
			switch {
			case open[r.Index]:
				wild := make([]ast.Pattern, len(inst.Fields))
				for i := range wild {
					wild[i] = &ast.WildPattern{Token: r.Pats[0].GetToken()}
				}
				members = append(members, Row{Index: r.Index, Pats: wild})
			case slices.Contains(conRows, r.Index):
				args := aligned[r.Index]
				for _, a := range args {
					refuting = refuting || o.refutes(a)
				}
				members = append(members, Row{Index: r.Index, Pats: args})
			}
		}

		switch {
		case !refuting:
			out = append(out, &patclass.One[typesystem.Term]{Term: inst.Term, Clauses: patclass.Indices(members)})
		case fuel > 0:
			out = append(out, o.nested(ctor, inst, members, fuel-1)...)
		default:
			out = append(out, o.exhausted(inst, members)...)
		}
	}

	if !covered && len(open) > 0 {
		// Every constructor is refuted: the catch-all rows match an empty type.
		out = append(out, &patclass.One[typesystem.Term]{Term: o.representative(param), Clauses: sortedKeys(rows, open)})
	}
	return append(out, errs...)
}

// nested classifies the constructor arguments over the field telescope.
func (o *ConOracle) nested(ctor *typesystem.CtorDecl, inst *typesystem.Instance, members []Row, fuel int) []Class {
	names := make([]string, len(inst.Fields))
	for i, f := range inst.Fields {
		names[i] = f.Name
	}
	var out []Class
	for _, sub := range o.engine.ClassifyN(typesystem.NewSubst(names), inst.Fields, members, fuel) {
		seq, ok := sub.(*patclass.Seq[typesystem.Term])
		if !ok {
			out = append(out, sub)
			continue
		}
		out = append(out, &patclass.One[typesystem.Term]{
			Term:    typesystem.Con{Name: ctor.Name, Args: seq.Terms},
			Clauses: seq.Clauses,
		})
	}
	return out
}

// exhausted splits members without looking into their arguments. Each row
// with refutable arguments gets a class of its own, shared only with the
// rows whose arguments are all catch-all.
func (o *ConOracle) exhausted(inst *typesystem.Instance, members []Row) []Class {
	var general []int
	var specific []Row
	for _, r := range members {
		refuting := false
		for _, p := range r.Pats {
			refuting = refuting || o.refutes(p)
		}
		if refuting {
			specific = append(specific, r)
		} else {
			general = append(general, r.Index)
		}
	}

	var out []Class
	for _, r := range specific {
		cls := append([]int{r.Index}, general...)
		slices.Sort(cls)
		out = append(out, &patclass.One[typesystem.Term]{Term: inst.Term, Clauses: cls})
	}
	if len(general) > 0 {
		out = append(out, &patclass.One[typesystem.Term]{Term: inst.Term, Clauses: general})
	}
	return out
}

func errorClass(index int, problem error) Class {
	return &patclass.Error[typesystem.Term]{Problem: problem, Clauses: []int{index}}
}

func rowHead(rows []Row, index int) token.Token {
	for _, r := range rows {
		if r.Index == index && len(r.Pats) > 0 {
			return r.Pats[0].GetToken()
		}
	}
	return token.Token{}
}

// sortedKeys returns the indices of rows present in set, in row order.
func sortedKeys(rows []Row, set map[int]bool) []int {
	var out []int
	for _, r := range rows {
		if set[r.Index] {
			out = append(out, r.Index)
		}
	}
	return out
}
