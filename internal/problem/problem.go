// Package problem reads problem files: data declarations and pattern
// matching definitions written as YAML.
//
// A problem file looks like
//
//	format: "1.0"
//	data:
//	  - name: Color
//	    ctors:
//	      - name: red
//	      - name: green
//	functions:
//	  - name: add
//	    params: ["m : Nat", "n : Nat"]
//	    clauses:
//	      - zero, n
//	      - suc m, n
//
// Types, bindings and pattern rows stay strings here; the parser turns
// them into syntax trees using the positions recorded by Located.
package problem

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Located is a YAML scalar together with the position of its first
// character in the problem file.
type Located struct {
	Value  string
	Line   int
	Column int
}

func (l *Located) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string, got %s", n.Line, kindName(n.Kind))
	}
	l.Value = n.Value
	l.Line = n.Line
	l.Column = n.Column
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		l.Column++
	}
	return nil
}

func (l Located) String() string {
	return l.Value
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "a document"
	}
}

// File is a decoded problem file.
type File struct {
	Path      string      `yaml:"-"`
	Format    Located     `yaml:"format" validate:"required"`
	Data      []*Data     `yaml:"data" validate:"dive,required"`
	Functions []*Function `yaml:"functions" validate:"dive,required"`
}

// Data declares `name params : indices -> Type` and its constructors.
type Data struct {
	Name    Located   `yaml:"name" validate:"required,ident"`
	Params  []Located `yaml:"params" validate:"dive,required"`
	Indices []Located `yaml:"indices" validate:"dive,required"`
	Ctors   []*Ctor   `yaml:"ctors" validate:"dive,required"`
}

// Ctor declares a constructor. Result lists the indices of the type it
// builds and is omitted for unindexed types.
type Ctor struct {
	Name   Located   `yaml:"name" validate:"required,ident"`
	Fields []Located `yaml:"fields" validate:"dive,required"`
	Result []Located `yaml:"result" validate:"dive,required"`
}

// Function is a definition by pattern matching over Params. Every clause
// is one comma separated pattern row; an empty row is allowed for
// definitions without parameters.
type Function struct {
	Name    Located   `yaml:"name" validate:"required,ident"`
	Params  []Located `yaml:"params" validate:"dive,required"`
	Clauses []Located `yaml:"clauses"`
}
