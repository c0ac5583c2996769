package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/parser"
	"github.com/funvibe/patclass/internal/pipeline"
)

// runSource pushes a problem file through every stage.
func runSource(input string, fuel int) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{
		FilePath: "test.clauses.yaml",
		Source:   []byte(input),
		Fuel:     fuel,
	}
	p := pipeline.New(&parser.LoaderProcessor{}, &parser.ParserProcessor{}, &AnalyzerProcessor{})
	return p.Run(ctx)
}

// analyzeSource returns all diagnostics, warnings included.
func analyzeSource(input string) []*diagnostics.DiagnosticError {
	return runSource(input, config.DefaultFuel).Errors
}

// function wraps a single definition into a problem file.
func function(params, clauses []string) string {
	var sb strings.Builder
	sb.WriteString("format: \"1.0\"\nfunctions:\n  - name: f\n    params:\n")
	for _, p := range params {
		sb.WriteString("      - \"" + p + "\"\n")
	}
	sb.WriteString("    clauses:\n")
	for _, c := range clauses {
		sb.WriteString("      - \"" + c + "\"\n")
	}
	return sb.String()
}

// expectAnalyzerError asserts that at least one diagnostic with the given code is produced.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := analyzeSource(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectNoAnalyzerErrors asserts that analysis produces no diagnostics at all.
func expectNoAnalyzerErrors(t *testing.T, input string) {
	t.Helper()
	errs := analyzeSource(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
}

// ---------------------------------------------------------------------------
// A001 — Unknown name
// ---------------------------------------------------------------------------

func TestA001_UnknownConstructorInPattern(t *testing.T) {
	input := function([]string{"n : Nat"}, []string{"foo x"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA001, "unknown constructor foo")
}

func TestA001_UnknownTypeInTelescope(t *testing.T) {
	input := function([]string{"x : Foo"}, []string{"x"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA001, "unknown name Foo")
}

// ---------------------------------------------------------------------------
// A002 — Wrong number of type arguments
// ---------------------------------------------------------------------------

func TestA002_PartialTypeApplication(t *testing.T) {
	input := function([]string{"xs : Vec Nat"}, []string{"xs"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA002, "Vec expects 2 argument(s), got 1")
}

func TestA002_AppliedVariable(t *testing.T) {
	input := function([]string{"{A : Type}", "x : A Nat"}, []string{"x"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA002, "A is a variable")
}

func TestA002_MissingResultIndices(t *testing.T) {
	input := `format: "1.0"
data:
  - name: Even
    indices: ["n : Nat"]
    ctors:
      - name: ez
`
	expectAnalyzerError(t, input, diagnostics.ErrA002)
}

// ---------------------------------------------------------------------------
// A003 — Clause does not fit the telescope
// ---------------------------------------------------------------------------

func TestA003_TooFewPatterns(t *testing.T) {
	input := function([]string{"m : Nat", "n : Nat"}, []string{"zero"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA003, "expected 2 explicit pattern(s), got 1")
}

func TestA003_MisplacedImplicitPattern(t *testing.T) {
	input := function([]string{"{n : Nat}", "xs : Vec Nat n"}, []string{"vnil, {zero}"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA003, "unexpected implicit pattern {zero}")
}

// ---------------------------------------------------------------------------
// A004 — Non-linear pattern
// ---------------------------------------------------------------------------

func TestA004_VariableBoundTwice(t *testing.T) {
	input := function([]string{"m : Nat", "n : Nat"}, []string{"x, x"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrA004, "variable x is bound more than once in clause 1")
}

// ---------------------------------------------------------------------------
// C001 — Ill-typed split
// ---------------------------------------------------------------------------

func TestC001_RefutedByIndex(t *testing.T) {
	input := function([]string{"xs : Vec Nat zero"}, []string{"vnil", "vcons x xs"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrC001, "vcons cannot produce a value of type Vec Nat 0")
}

func TestC001_RefutedByEarlierColumn(t *testing.T) {
	input := function([]string{"n : Nat", "xs : Vec Nat n"}, []string{"zero, vcons x xs", "suc k, vcons x xs"})
	e := expectAnalyzerError(t, input, diagnostics.ErrC001)
	if e.Token.Line != 8 {
		t.Errorf("expected the error on the first clause (line 8), got %s", e.Error())
	}
}

func TestC001_ForeignConstructor(t *testing.T) {
	input := function([]string{"b : Bool"}, []string{"zero"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrC001, "constructor zero of Nat cannot match a value of type Bool")
}

func TestC001_ConstructorArity(t *testing.T) {
	input := function([]string{"n : Nat"}, []string{"suc"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrC001, "constructor suc: expected 1 explicit pattern(s), got 0")
}

func TestC001_LiteralAtNonNat(t *testing.T) {
	input := function([]string{"b : Bool"}, []string{"2"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrC001, "constructor suc of Nat")
}

// ---------------------------------------------------------------------------
// C002 — Unreachable clause
// ---------------------------------------------------------------------------

func TestC002_ShadowedByCatchAll(t *testing.T) {
	input := function([]string{"m : Nat", "n : Nat"}, []string{"x, y", "zero, zero"})
	e := expectAnalyzerError(t, input, diagnostics.ErrC002)
	if !e.IsWarning() {
		t.Errorf("unreachable clauses are warnings, got %s", e.Error())
	}
	if !strings.Contains(e.Message, "clause 2 of f is unreachable") {
		t.Errorf("unexpected message %q", e.Message)
	}
}

func TestC002_ShadowedInsideConstructor(t *testing.T) {
	input := function([]string{"n : Nat"}, []string{"suc n", "1"})
	expectAnalyzerErrorContains(t, input, diagnostics.ErrC002, "clause 2 of f")
}

// ---------------------------------------------------------------------------
// F004 — Duplicate declaration
// ---------------------------------------------------------------------------

func TestF004_ShadowsBuiltin(t *testing.T) {
	input := `format: "1.0"
data:
  - name: Nat
    ctors:
      - name: z
`
	expectAnalyzerErrorContains(t, input, diagnostics.ErrF004, "duplicate data type: Nat")
}

// ---------------------------------------------------------------------------
// Valid programs
// ---------------------------------------------------------------------------

func TestValid_OverlappingClauses(t *testing.T) {
	expectNoAnalyzerErrors(t, function([]string{"m : Nat", "n : Nat"},
		[]string{"zero, zero", "zero, y", "x, zero", "x, y"}))
}

func TestValid_DependentVector(t *testing.T) {
	expectNoAnalyzerErrors(t, function([]string{"{A : Type}", "n : Nat", "xs : Vec A n"},
		[]string{"zero, vnil", "suc k, vcons x xs"}))
}

func TestValid_VariableIndexThenVector(t *testing.T) {
	// vnil only fits the zero branch of n; in the suc branch it is set aside.
	expectNoAnalyzerErrors(t, function([]string{"n : Nat", "xs : Vec Nat n"},
		[]string{"n, vnil", "suc k, vcons x xs"}))
}

func TestValid_VariableIndexThenFin(t *testing.T) {
	// fzero is impossible at Fin 0 but matches once n is a successor.
	expectNoAnalyzerErrors(t, function([]string{"n : Nat", "i : Fin n"},
		[]string{"n, fzero", "zero, i"}))
}

func TestC001_ReportedOncePerClause(t *testing.T) {
	errs := analyzeSource(function([]string{"m : Nat", "n : Nat"}, []string{"zero, y", "x, true"}))
	count := 0
	for _, e := range errs {
		if e.Code == diagnostics.ErrC001 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one C001, got %d: %v", count, errs)
	}
}

func TestValid_ImplicitConstructorField(t *testing.T) {
	expectNoAnalyzerErrors(t, function([]string{"n : Nat", "xs : Vec Bool (suc n)"},
		[]string{"k, vcons {m} true xs", "k, vcons false xs"}))
}

func TestValid_UserFamily(t *testing.T) {
	input := `format: "1.0"
data:
  - name: Parity
    indices: ["n : Nat"]
    ctors:
      - name: even
        fields: ["{k : Nat}"]
        result: ["k"]
      - name: odd
        fields: ["{k : Nat}", "p : Parity k"]
        result: ["suc k"]
functions:
  - name: half
    params: ["n : Nat", "p : Parity n"]
    clauses:
      - "zero, even"
      - "suc m, odd p"
      - "n, even"
`
	expectNoAnalyzerErrors(t, input)
}

func TestValid_StopsOnParseErrors(t *testing.T) {
	errs := analyzeSource(function([]string{"n : Nat"}, []string{"suc (zero"}))
	for _, e := range errs {
		if strings.HasPrefix(string(e.Code), "C") {
			t.Errorf("checking should not run after syntax errors, got %s", e.Error())
		}
	}
	if !diagnostics.HasErrors(errs) {
		t.Fatalf("expected a syntax error")
	}
}
