package lexer

import (
	"testing"

	"github.com/funvibe/patclass/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `vcons {m} x (suc 2), _ -- trailing comment
xs'`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
		line, column   int
	}{
		{token.IDENT, "vcons", 1, 1},
		{token.LBRACE, "{", 1, 7},
		{token.IDENT, "m", 1, 8},
		{token.RBRACE, "}", 1, 9},
		{token.IDENT, "x", 1, 11},
		{token.LPAREN, "(", 1, 13},
		{token.IDENT, "suc", 1, 14},
		{token.INT, "2", 1, 18},
		{token.RPAREN, ")", 1, 19},
		{token.COMMA, ",", 1, 20},
		{token.UNDERSCORE, "_", 1, 22},
		{token.IDENT, "xs'", 2, 1},
		{token.EOF, "", 2, 4},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Line != tt.line || tok.Column != tt.column {
			t.Fatalf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d", i, tt.line, tt.column, tok.Line, tok.Column)
		}
	}
}

func TestNewAtOffsetsPositions(t *testing.T) {
	l := NewAt("zero, _x", 7, 12)
	toks := l.Tokens()
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %v", len(toks), toks)
	}
	if toks[0].Line != 7 || toks[0].Column != 12 {
		t.Errorf("first token at %s, want 7:12", toks[0].Pos())
	}
	if toks[2].Type != token.IDENT || toks[2].Lexeme != "_x" || toks[2].Column != 18 {
		t.Errorf("third token = %v, want IDENT _x at 7:18", toks[2])
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := New("suc # n").Tokens()
	if toks[1].Type != token.ILLEGAL || toks[1].Lexeme != "#" {
		t.Errorf("expected ILLEGAL '#', got %v", toks[1])
	}
	if toks[1].Column != 5 {
		t.Errorf("illegal token column = %d, want 5", toks[1].Column)
	}
}

func TestIntegerLiteral(t *testing.T) {
	tok := New("42").NextToken()
	if tok.Type != token.INT {
		t.Fatalf("expected INT, got %v", tok)
	}
	if v, ok := tok.Literal.(int); !ok || v != 42 {
		t.Errorf("literal = %v, want 42", tok.Literal)
	}
}
