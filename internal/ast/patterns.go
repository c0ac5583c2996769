package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/patclass/internal/token"
)

// Pattern is a node of a clause's left-hand side.
type Pattern interface {
	TokenProvider
	patternNode()
	String() string
}

// WildPattern is `_`.
type WildPattern struct {
	Token token.Token
}

// IdentPattern is a bare identifier. Whether it binds a variable or names a
// nullary constructor is only known once the signature is consulted.
type IdentPattern struct {
	Token token.Token
	Name  string
}

// VarPattern binds a variable.
type VarPattern struct {
	Token token.Token
	Name  string
}

// ConPattern applies a constructor to argument patterns.
type ConPattern struct {
	Token token.Token
	Name  string
	Args  []Pattern
}

// NatLiteralPattern is a natural number literal, sugar for suc/zero chains.
type NatLiteralPattern struct {
	Token token.Token
	Value int
}

// ImplicitPattern is `{p}`: p matches the next implicit field.
type ImplicitPattern struct {
	Token   token.Token
	Pattern Pattern
}

func (*WildPattern) patternNode()       {}
func (*IdentPattern) patternNode()      {}
func (*VarPattern) patternNode()        {}
func (*ConPattern) patternNode()        {}
func (*NatLiteralPattern) patternNode() {}
func (*ImplicitPattern) patternNode()   {}

func (p *WildPattern) GetToken() token.Token       { return p.Token }
func (p *IdentPattern) GetToken() token.Token      { return p.Token }
func (p *VarPattern) GetToken() token.Token        { return p.Token }
func (p *ConPattern) GetToken() token.Token        { return p.Token }
func (p *NatLiteralPattern) GetToken() token.Token { return p.Token }
func (p *ImplicitPattern) GetToken() token.Token   { return p.Token }

func (p *WildPattern) String() string       { return "_" }
func (p *IdentPattern) String() string      { return p.Name }
func (p *VarPattern) String() string        { return p.Name }
func (p *NatLiteralPattern) String() string { return strconv.Itoa(p.Value) }
func (p *ImplicitPattern) String() string   { return "{" + p.Pattern.String() + "}" }

func (p *ConPattern) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	var sb strings.Builder
	sb.WriteString(p.Name)
	for _, a := range p.Args {
		sb.WriteByte(' ')
		if c, ok := a.(*ConPattern); ok && len(c.Args) > 0 {
			sb.WriteString("(" + c.String() + ")")
		} else {
			sb.WriteString(a.String())
		}
	}
	return sb.String()
}

// IsCatchAll reports whether p matches every value without inspecting it.
func IsCatchAll(p Pattern) bool {
	switch p := p.(type) {
	case *WildPattern, *VarPattern:
		return true
	case *ImplicitPattern:
		return IsCatchAll(p.Pattern)
	}
	return false
}

// RowString renders a pattern row the way it is written in problem files.
func RowString(pats []Pattern) string {
	parts := make([]string, len(pats))
	for i, p := range pats {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
