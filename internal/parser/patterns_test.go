package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/patclass/internal/ast"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/parser"
)

func TestPatternRow(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single_ident", "zero", "zero"},
		{"two_columns", "zero, suc n", "zero, suc n"},
		{"wildcard", "_, x", "_, x"},
		{"nested", "suc (suc n), vcons x xs", "suc (suc n), vcons x xs"},
		{"redundant_parens", "((zero))", "zero"},
		{"literal", "3, suc 0", "3, suc 0"},
		{"implicit", "vcons {m} x xs", "vcons {m} x xs"},
		{"multiline", "zero,\n  suc n", "zero, suc n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, errs := parser.PatternRow(tc.input, 1, 1)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got := ast.RowString(row); got != tc.want {
				t.Errorf("row = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPatternShapes(t *testing.T) {
	row, errs := parser.PatternRow("vcons {m} _ (suc 2)", 1, 1)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	con, ok := row[0].(*ast.ConPattern)
	if !ok {
		t.Fatalf("expected *ast.ConPattern, got %T", row[0])
	}
	if len(con.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(con.Args))
	}
	if _, ok := con.Args[0].(*ast.ImplicitPattern); !ok {
		t.Errorf("arg 0: expected *ast.ImplicitPattern, got %T", con.Args[0])
	}
	if _, ok := con.Args[1].(*ast.WildPattern); !ok {
		t.Errorf("arg 1: expected *ast.WildPattern, got %T", con.Args[1])
	}
	inner, ok := con.Args[2].(*ast.ConPattern)
	if !ok {
		t.Fatalf("arg 2: expected *ast.ConPattern, got %T", con.Args[2])
	}
	if lit, ok := inner.Args[0].(*ast.NatLiteralPattern); !ok || lit.Value != 2 {
		t.Errorf("expected literal 2 inside suc, got %v", inner.Args[0])
	}
}

func TestPatternPositions(t *testing.T) {
	row, errs := parser.PatternRow("zero, suc n", 4, 10)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tok := row[1].GetToken(); tok.Line != 4 || tok.Column != 16 {
		t.Errorf("second pattern at %s, want 4:16", tok.Pos())
	}
}

func TestPatternRowErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		msg   string
	}{
		{"trailing_comma", "zero,", diagnostics.ErrP001, "end of input"},
		{"unclosed_paren", "suc (suc n", diagnostics.ErrP001, "expected )"},
		{"illegal_char", "suc # n", diagnostics.ErrP002, "#"},
		{"trailing_garbage", "zero )", diagnostics.ErrP004, "\")\""},
		{"colon", ": zero", diagnostics.ErrP001, "expected a pattern"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := parser.PatternRow(tc.input, 1, 1)
			if len(errs) == 0 {
				t.Fatalf("expected error %s, got none", tc.code)
			}
			if errs[0].Code != tc.code {
				t.Errorf("code = %s, want %s (%s)", errs[0].Code, tc.code, errs[0].Message)
			}
			if !strings.Contains(errs[0].Message, tc.msg) {
				t.Errorf("message %q does not mention %q", errs[0].Message, tc.msg)
			}
		})
	}
}

func TestExprAndBinding(t *testing.T) {
	e, errs := parser.Expr("Vec (List A) (suc n)", 1, 1)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if e.String() != "Vec (List A) (suc n)" {
		t.Errorf("expr = %q", e.String())
	}

	b, errs := parser.Binding("{m : Nat}", 2, 3)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if b.Explicit || b.Name != "m" || b.Type.String() != "Nat" {
		t.Errorf("binding = %s", b)
	}
	if b.Token.Line != 2 || b.Token.Column != 3 {
		t.Errorf("binding at %s, want 2:3", b.Token.Pos())
	}

	b, errs = parser.Binding("xs : Vec A m", 1, 1)
	if len(errs) > 0 || !b.Explicit || b.String() != "xs : Vec A m" {
		t.Errorf("binding = %v, errs = %v", b, errs)
	}
}

func TestBindingErrors(t *testing.T) {
	_, errs := parser.Binding("Nat", 1, 1)
	if len(errs) == 0 || errs[0].Code != diagnostics.ErrP001 {
		t.Fatalf("expected P001 for a binding without colon, got %v", errs)
	}
	_, errs = parser.Binding("(x : Nat)", 1, 1)
	if len(errs) == 0 || errs[0].Code != diagnostics.ErrP003 {
		t.Fatalf("expected P003, got %v", errs)
	}
	_, errs = parser.Binding("{x : Nat", 1, 1)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "expected }") {
		t.Fatalf("expected missing brace error, got %v", errs)
	}
}
