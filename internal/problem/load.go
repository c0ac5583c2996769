package problem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/patclass/internal/config"
	"github.com/funvibe/patclass/internal/diagnostics"
	"github.com/funvibe/patclass/internal/token"
)

var (
	validate   *validator.Validate
	identRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_']*$`)
	yamlLineRe = regexp.MustCompile(`line (\d+)`)
)

func init() {
	validate = validator.New()
	// Validate Located values through their text.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		return v.Interface().(Located).Value
	}, Located{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
		return identRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("problem validator: %v", err))
	}
}

// Load reads and decodes the problem file at path.
func Load(path string) (*File, []*diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		diag := diagnostics.Errorf(diagnostics.ErrF001, token.Token{}, "cannot read problem file: %v", err)
		diag.File = path
		return nil, []*diagnostics.DiagnosticError{diag}
	}
	return Parse(data, path)
}

// Parse decodes, validates and version-checks a problem file. The
// returned file is nil whenever a diagnostic is returned.
func Parse(data []byte, path string) (*File, []*diagnostics.DiagnosticError) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, withFile(path, diagnostics.NewError(diagnostics.ErrF001, token.Token{}, "empty problem file"))
		}
		return nil, withFile(path, yamlDiagnostics(err)...)
	}
	f.Path = path

	if err := validate.Struct(&f); err != nil {
		return nil, withFile(path, validationDiagnostics(err)...)
	}
	if diag := checkFormat(f.Format); diag != nil {
		return nil, withFile(path, diag)
	}
	if diags := checkDuplicates(&f); len(diags) > 0 {
		return nil, withFile(path, diags...)
	}
	return &f, nil
}

// Tok converts a location into a token for diagnostics.
func (l Located) Tok() token.Token {
	return token.Token{Type: token.IDENT, Lexeme: l.Value, Line: l.Line, Column: l.Column}
}

func withFile(path string, diags ...*diagnostics.DiagnosticError) []*diagnostics.DiagnosticError {
	for _, d := range diags {
		d.File = path
	}
	return diags
}

func yamlDiagnostics(err error) []*diagnostics.DiagnosticError {
	var msgs []string
	var te *yaml.TypeError
	if errors.As(err, &te) {
		msgs = te.Errors
	} else {
		msgs = []string{strings.TrimPrefix(err.Error(), "yaml: ")}
	}

	diags := make([]*diagnostics.DiagnosticError, 0, len(msgs))
	for _, msg := range msgs {
		tok := token.Token{}
		if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
			tok.Line, _ = strconv.Atoi(m[1])
			tok.Column = 1
		}
		diags = append(diags, diagnostics.NewError(diagnostics.ErrF001, tok, msg))
	}
	return diags
}

func validationDiagnostics(err error) []*diagnostics.DiagnosticError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*diagnostics.DiagnosticError{diagnostics.NewError(diagnostics.ErrF002, token.Token{}, err.Error())}
	}
	diags := make([]*diagnostics.DiagnosticError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "File.")
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", field)
		case "ident":
			msg = fmt.Sprintf("%s: %q is not a valid name", field, fe.Value())
		default:
			msg = fmt.Sprintf("%s: failed %q check", field, fe.Tag())
		}
		diags = append(diags, diagnostics.NewError(diagnostics.ErrF002, token.Token{}, msg))
	}
	return diags
}

func checkFormat(format Located) *diagnostics.DiagnosticError {
	v, err := semver.NewVersion(format.Value)
	if err != nil {
		return diagnostics.Errorf(diagnostics.ErrF003, format.Tok(), "invalid format version %q", format.Value)
	}
	c, err := semver.NewConstraint(config.SupportedFormat)
	if err != nil {
		return diagnostics.Errorf(diagnostics.ErrF003, format.Tok(), "bad supported format constraint: %v", err)
	}
	if !c.Check(v) {
		return diagnostics.Errorf(diagnostics.ErrF003, format.Tok(),
			"format version %s is not supported (want %s)", format.Value, config.SupportedFormat)
	}
	return nil
}

func checkDuplicates(f *File) []*diagnostics.DiagnosticError {
	var diags []*diagnostics.DiagnosticError
	seen := make(map[string]Located)
	declare := func(kind string, name Located) {
		if prev, ok := seen[name.Value]; ok {
			diags = append(diags, diagnostics.Errorf(diagnostics.ErrF004, name.Tok(),
				"%s %s already declared at line %d", kind, name.Value, prev.Line))
			return
		}
		seen[name.Value] = name
	}
	for _, d := range f.Data {
		declare("data type", d.Name)
		for _, c := range d.Ctors {
			declare("constructor", c.Name)
		}
	}
	for _, fn := range f.Functions {
		declare("function", fn.Name)
	}
	return diags
}
