package typesystem

import (
	"fmt"

	"github.com/funvibe/patclass/internal/config"
)

// Field is a named, possibly implicit, position of a data or constructor
// telescope. Types may mention earlier fields and the data parameters.
type Field struct {
	Name     string
	Type     Term
	Implicit bool
}

// CtorDecl declares a constructor. Result holds the indices of the
// constructor's result type; it is empty for plain (unindexed) families.
type CtorDecl struct {
	Name   string
	Data   string
	Fields []Field
	Result []Term
}

// Explicit counts the fields written positionally in patterns.
func (c *CtorDecl) Explicit() int {
	n := 0
	for _, f := range c.Fields {
		if !f.Implicit {
			n++
		}
	}
	return n
}

// DataDecl declares an inductive family `Name Params : Indices -> Type`.
type DataDecl struct {
	Name    string
	Params  []Field
	Indices []Field
	Ctors   []*CtorDecl
}

// Arity is the number of arguments the type constructor takes.
func (d *DataDecl) Arity() int {
	return len(d.Params) + len(d.Indices)
}

// Signature holds the data declarations in scope of a check.
// It is read-only once built and safe for concurrent use.
type Signature struct {
	data  map[string]*DataDecl
	ctors map[string]*CtorDecl
	order []string
}

func NewSignature() *Signature {
	return &Signature{
		data:  make(map[string]*DataDecl),
		ctors: make(map[string]*CtorDecl),
	}
}

// Add registers d and its constructors.
func (sig *Signature) Add(d *DataDecl) error {
	if _, ok := sig.data[d.Name]; ok {
		return &DuplicateError{Kind: "data type", Name: d.Name}
	}
	seen := make(map[string]bool, len(d.Ctors))
	for _, c := range d.Ctors {
		if _, ok := sig.ctors[c.Name]; ok || seen[c.Name] {
			return &DuplicateError{Kind: "constructor", Name: c.Name}
		}
		seen[c.Name] = true
		if len(c.Result) != len(d.Indices) {
			return fmt.Errorf("constructor %s: %w", c.Name,
				&ArityError{Name: d.Name + " indices", Want: len(d.Indices), Got: len(c.Result)})
		}
	}
	sig.data[d.Name] = d
	for _, c := range d.Ctors {
		c.Data = d.Name
		sig.ctors[c.Name] = c
	}
	sig.order = append(sig.order, d.Name)
	return nil
}

func (sig *Signature) Data(name string) (*DataDecl, bool) {
	d, ok := sig.data[name]
	return d, ok
}

func (sig *Signature) Ctor(name string) (*CtorDecl, bool) {
	c, ok := sig.ctors[name]
	return c, ok
}

// Names lists data types in declaration order.
func (sig *Signature) Names() []string {
	return append([]string(nil), sig.order...)
}

// Instance is a constructor instantiated at a concrete column type.
type Instance struct {
	Ctor *CtorDecl
	// Fields is the constructor's field telescope with the data parameters
	// substituted. Field types still refer to earlier fields by name.
	Fields []Param
	// Term is the representative `c ?1 ... ?k`, with holes solved by index
	// unification where possible.
	Term Term
}

// Instantiate checks whether ctor can produce a value of type ty. A
// *UnifyError means the constructor is refuted by the indices of ty.
func (sig *Signature) Instantiate(ctor *CtorDecl, ty Con, holes *HoleSupply) (*Instance, error) {
	data, ok := sig.data[ctor.Data]
	if !ok {
		return nil, &UnknownDataError{Name: ctor.Data}
	}
	if ty.Name != data.Name {
		return nil, &ForeignCtorError{Ctor: ctor.Name, Data: data.Name, Want: ty.String()}
	}
	if len(ty.Args) != data.Arity() {
		return nil, &ArityError{Name: data.Name, Want: data.Arity(), Got: len(ty.Args)}
	}

	params := NewSubst(nil)
	for i, p := range data.Params {
		params = params.Bind(p.Name, ty.Args[i])
	}

	fieldHoles := make([]Term, len(ctor.Fields))
	withHoles := params
	for i, f := range ctor.Fields {
		fieldHoles[i] = holes.Fresh()
		withHoles = withHoles.Bind(f.Name, fieldHoles[i])
	}

	result := make([]Term, len(ctor.Result))
	for i, r := range ctor.Result {
		result[i] = withHoles.Apply(r)
	}
	sol, err := UnifyAll(result, ty.Args[len(data.Params):], Solution{})
	if err != nil {
		return nil, err
	}

	inst := &Instance{Ctor: ctor, Fields: make([]Param, len(ctor.Fields))}
	args := make([]Term, len(ctor.Fields))
	for i, f := range ctor.Fields {
		args[i] = Zonk(fieldHoles[i], sol)
		inst.Fields[i] = Param{Name: f.Name, Type: params.Apply(f.Type), Explicit: !f.Implicit}
		if _, open := args[i].(Hole); !open {
			inst.Fields[i].Value = args[i]
		}
	}
	inst.Term = Con{Name: ctor.Name, Args: args}
	return inst, nil
}

// Builtins returns a signature with the standard small families.
func Builtins() *Signature {
	sig := NewSignature()
	nat := Con{Name: config.NatTypeName}
	a := Var{Name: "A"}
	m := Var{Name: "m"}
	zero := Con{Name: config.ZeroCtorName}
	suc := func(t Term) Term { return Con{Name: config.SucCtorName, Args: []Term{t}} }

	decls := []*DataDecl{
		{
			Name: config.NatTypeName,
			Ctors: []*CtorDecl{
				{Name: config.ZeroCtorName},
				{Name: config.SucCtorName, Fields: []Field{{Name: "n", Type: nat}}},
			},
		},
		{
			Name: config.BoolTypeName,
			Ctors: []*CtorDecl{
				{Name: config.TrueCtorName},
				{Name: config.FalseCtorName},
			},
		},
		{
			Name:   config.ListTypeName,
			Params: []Field{{Name: "A", Type: Universe{}}},
			Ctors: []*CtorDecl{
				{Name: config.NilCtorName},
				{Name: config.ConsCtorName, Fields: []Field{
					{Name: "x", Type: a},
					{Name: "xs", Type: Con{Name: config.ListTypeName, Args: []Term{a}}},
				}},
			},
		},
		{
			Name:    config.VecTypeName,
			Params:  []Field{{Name: "A", Type: Universe{}}},
			Indices: []Field{{Name: "n", Type: nat}},
			Ctors: []*CtorDecl{
				{Name: config.VNilCtorName, Result: []Term{zero}},
				{Name: config.VConsCtorName, Fields: []Field{
					{Name: "m", Type: nat, Implicit: true},
					{Name: "x", Type: a},
					{Name: "xs", Type: Con{Name: config.VecTypeName, Args: []Term{a, m}}},
				}, Result: []Term{suc(m)}},
			},
		},
		{
			Name:    config.FinTypeName,
			Indices: []Field{{Name: "n", Type: nat}},
			Ctors: []*CtorDecl{
				{Name: config.FZeroCtorName, Fields: []Field{
					{Name: "m", Type: nat, Implicit: true},
				}, Result: []Term{suc(m)}},
				{Name: config.FSucCtorName, Fields: []Field{
					{Name: "m", Type: nat, Implicit: true},
					{Name: "i", Type: Con{Name: config.FinTypeName, Args: []Term{m}}},
				}, Result: []Term{suc(m)}},
			},
		},
	}
	for _, d := range decls {
		if err := sig.Add(d); err != nil {
			panic(fmt.Sprintf("builtin signature: %v", err))
		}
	}
	return sig
}
