package parser

import (
	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/token"
)

// ParsePatternRow parses `p1, p2, ...`. An empty input is an empty row.
func (p *Parser) ParsePatternRow() []ast.Pattern {
	if p.curTokenIs(token.EOF) {
		return []ast.Pattern{}
	}
	var row []ast.Pattern
	for {
		pat := p.parsePattern()
		if pat == nil {
			return nil
		}
		row = append(row, pat)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	p.expectEnd()
	return row
}

// parsePattern parses an application `c a1 a2` or a single atom.
func (p *Parser) parsePattern() ast.Pattern {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	if !p.curTokenIs(token.IDENT) || !startsAtom(p.peekToken.Type) {
		return p.parsePatternAtom()
	}

	con := &ast.ConPattern{Token: p.curToken, Name: p.curToken.Lexeme}
	for startsAtom(p.peekToken.Type) {
		p.nextToken()
		arg := p.parsePatternAtom()
		if arg == nil {
			return nil
		}
		con.Args = append(con.Args, arg)
	}
	return con
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.IdentPattern{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.UNDERSCORE:
		return &ast.WildPattern{Token: p.curToken}
	case token.INT:
		return &ast.NatLiteralPattern{Token: p.curToken, Value: p.curToken.Literal.(int)}
	case token.LPAREN:
		p.nextToken()
		inner := p.parsePattern()
		if inner == nil || !p.expectPeek(token.RPAREN) {
			return nil
		}
		return inner
	case token.LBRACE:
		tok := p.curToken
		p.nextToken()
		inner := p.parsePattern()
		if inner == nil || !p.expectPeek(token.RBRACE) {
			return nil
		}
		return &ast.ImplicitPattern{Token: tok, Pattern: inner}
	}
	p.errorAt(p.curToken, "expected a pattern, got "+describe(p.curToken))
	return nil
}
