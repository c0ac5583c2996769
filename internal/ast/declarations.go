package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/patclass/internal/token"
)

// Expr is a type-level expression: `Nat`, `Vec A (suc n)`, `2`.
type Expr interface {
	TokenProvider
	exprNode()
	String() string
}

// NameExpr refers to a data type, constructor or bound variable.
type NameExpr struct {
	Token token.Token
	Name  string
}

// AppExpr applies a head name to arguments.
type AppExpr struct {
	Token token.Token
	Head  string
	Args  []Expr
}

// NatLiteralExpr is a natural literal in a type index.
type NatLiteralExpr struct {
	Token token.Token
	Value int
}

func (*NameExpr) exprNode()       {}
func (*AppExpr) exprNode()        {}
func (*NatLiteralExpr) exprNode() {}

func (e *NameExpr) GetToken() token.Token       { return e.Token }
func (e *AppExpr) GetToken() token.Token        { return e.Token }
func (e *NatLiteralExpr) GetToken() token.Token { return e.Token }

func (e *NameExpr) String() string       { return e.Name }
func (e *NatLiteralExpr) String() string { return strconv.Itoa(e.Value) }

func (e *AppExpr) String() string {
	var sb strings.Builder
	sb.WriteString(e.Head)
	for _, a := range e.Args {
		sb.WriteByte(' ')
		if app, ok := a.(*AppExpr); ok && len(app.Args) > 0 {
			sb.WriteString("(" + app.String() + ")")
		} else {
			sb.WriteString(a.String())
		}
	}
	return sb.String()
}

// Binding is `x : T` or, for implicit bindings, `{x : T}`.
type Binding struct {
	Token    token.Token
	Name     string
	Type     Expr
	Explicit bool
}

func (b *Binding) String() string {
	s := b.Name + " : " + b.Type.String()
	if !b.Explicit {
		return "{" + s + "}"
	}
	return s
}

// Clause is one pattern-matching equation. Index is its position in the
// declaration order and never changes afterwards.
type Clause struct {
	Token    token.Token
	Patterns []Pattern
	Index    int
}

// Function is a pattern-matching definition over a telescope.
type Function struct {
	Token   token.Token
	Name    string
	Params  []*Binding
	Clauses []*Clause
}

// CtorDecl declares a constructor. Result gives the indices of the data
// type it builds, in terms of the fields.
type CtorDecl struct {
	Token  token.Token
	Name   string
	Fields []*Binding
	Result []Expr
}

// DataDecl declares an inductive family.
type DataDecl struct {
	Token   token.Token
	Name    string
	Params  []*Binding
	Indices []*Binding
	Ctors   []*CtorDecl
}

// Program is everything declared in one problem file.
type Program struct {
	File      string
	Data      []*DataDecl
	Functions []*Function
}
