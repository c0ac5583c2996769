package config

// ProblemFileExt is the suffix of problem files picked up from directories.
const ProblemFileExt = ".clauses.yaml"

// ProblemFileExtensions are all recognized problem file suffixes
var ProblemFileExtensions = []string{".clauses.yaml", ".clauses.yml"}

// IsTestMode indicates if the program is running in test mode.
// Hole ids are rendered without numbers so output is deterministic.
var IsTestMode = false

// Version is the tool version reported by `patclass version`.
const Version = "0.4.0"

// SupportedFormat is the semver constraint problem files must satisfy.
const SupportedFormat = ">= 1.0, < 2.0"

// DefaultFuel bounds how deep the checker splits nested sub-patterns.
const DefaultFuel = 64

// Built-in type names
const (
	UniverseName = "Type"
	NatTypeName  = "Nat"
	BoolTypeName = "Bool"
	ListTypeName = "List"
	VecTypeName  = "Vec"
	FinTypeName  = "Fin"
)

// Built-in constructor names
const (
	ZeroCtorName  = "zero"
	SucCtorName   = "suc"
	TrueCtorName  = "true"
	FalseCtorName = "false"
	NilCtorName   = "nil"
	ConsCtorName  = "cons"
	VNilCtorName  = "vnil"
	VConsCtorName = "vcons"
	FZeroCtorName = "fzero"
	FSucCtorName  = "fsuc"
)
