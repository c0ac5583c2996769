package parser

import (
	"fmt"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/lexer"
	"github.com/funvibe/patclass/internal/token"
)

// MaxRecursionDepth bounds parenthesis nesting.
const MaxRecursionDepth = 256

// Parser reads pattern rows, type expressions and bindings.
type Parser struct {
	l      *lexer.Lexer
	errors []*diagnostics.DiagnosticError

	curToken  token.Token
	peekToken token.Token

	depth int
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorAt(p.peekToken, fmt.Sprintf("expected %s, got %s", t, describe(p.peekToken)))
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	code := diagnostics.ErrP001
	if tok.Type == token.ILLEGAL {
		code = diagnostics.ErrP002
		msg = fmt.Sprintf("illegal character %q", tok.Lexeme)
	}
	p.errors = append(p.errors, diagnostics.NewError(code, tok, msg))
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

// expectEnd checks that the whole input was consumed.
func (p *Parser) expectEnd() {
	if p.peekTokenIs(token.EOF) || len(p.errors) > 0 {
		return
	}
	if p.peekTokenIs(token.ILLEGAL) {
		p.errorAt(p.peekToken, "")
		return
	}
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP004,
		p.peekToken,
		fmt.Sprintf("unexpected %s after end of input", describe(p.peekToken)),
	))
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > MaxRecursionDepth {
		p.errorAt(p.curToken, "expression too deeply nested")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// startsAtom reports whether t can begin an argument.
func startsAtom(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.INT, token.UNDERSCORE, token.LPAREN, token.LBRACE:
		return true
	}
	return false
}

// PatternRow parses a pattern row located at line:column of a file.
func PatternRow(text string, line, column int) ([]ast.Pattern, []*diagnostics.DiagnosticError) {
	p := New(lexer.NewAt(text, line, column))
	row := p.ParsePatternRow()
	return row, p.Errors()
}

// Expr parses a type expression located at line:column of a file.
func Expr(text string, line, column int) (ast.Expr, []*diagnostics.DiagnosticError) {
	p := New(lexer.NewAt(text, line, column))
	e := p.ParseExpr()
	return e, p.Errors()
}

// Binding parses `x : T` or `{x : T}` located at line:column of a file.
func Binding(text string, line, column int) (*ast.Binding, []*diagnostics.DiagnosticError) {
	p := New(lexer.NewAt(text, line, column))
	b := p.ParseBinding()
	return b, p.Errors()
}
