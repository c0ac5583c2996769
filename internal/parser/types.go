package parser

import (
	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/token"
)

// ParseExpr parses a whole input as one type expression.
func (p *Parser) ParseExpr() ast.Expr {
	e := p.parseExpr()
	if e != nil {
		p.expectEnd()
	}
	return e
}

func (p *Parser) parseExpr() ast.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	if !p.curTokenIs(token.IDENT) || !startsAtom(p.peekToken.Type) {
		return p.parseExprAtom()
	}

	app := &ast.AppExpr{Token: p.curToken, Head: p.curToken.Lexeme}
	for startsAtom(p.peekToken.Type) {
		p.nextToken()
		arg := p.parseExprAtom()
		if arg == nil {
			return nil
		}
		app.Args = append(app.Args, arg)
	}
	return app
}

func (p *Parser) parseExprAtom() ast.Expr {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.NameExpr{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.INT:
		return &ast.NatLiteralExpr{Token: p.curToken, Value: p.curToken.Literal.(int)}
	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpr()
		if inner == nil || !p.expectPeek(token.RPAREN) {
			return nil
		}
		return inner
	}
	p.errorAt(p.curToken, "expected a type, got "+describe(p.curToken))
	return nil
}

// ParseBinding parses `x : T` or `{x : T}`.
func (p *Parser) ParseBinding() *ast.Binding {
	b := &ast.Binding{Token: p.curToken, Explicit: true}
	if p.curTokenIs(token.LBRACE) {
		b.Explicit = false
		p.nextToken()
	}
	if !p.curTokenIs(token.IDENT) {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"binding must start with a name, got "+describe(p.curToken),
		))
		return nil
	}
	b.Name = p.curToken.Lexeme
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	b.Type = p.parseExpr()
	if b.Type == nil {
		return nil
	}
	if !b.Explicit && !p.expectPeek(token.RBRACE) {
		return nil
	}
	p.expectEnd()
	return b
}
