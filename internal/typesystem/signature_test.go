package typesystem

import (
	"errors"
	"testing"
)

func vecOf(n Term) Con {
	return Con{Name: "Vec", Args: []Term{Con{Name: "Nat"}, n}}
}

func TestInstantiateRefutesByIndex(t *testing.T) {
	sig := Builtins()
	vnil, _ := sig.Ctor("vnil")
	vcons, _ := sig.Ctor("vcons")
	var holes HoleSupply

	if _, err := sig.Instantiate(vnil, vecOf(Nat(0)), &holes); err != nil {
		t.Errorf("vnil at Vec Nat 0: %v", err)
	}
	_, err := sig.Instantiate(vcons, vecOf(Nat(0)), &holes)
	var ue *UnifyError
	if !errors.As(err, &ue) {
		t.Errorf("vcons at Vec Nat 0 should be refuted, got %v", err)
	}

	n := Var{Name: "n"}
	if _, err := sig.Instantiate(vnil, vecOf(Con{Name: "suc", Args: []Term{n}}), &holes); err == nil {
		t.Errorf("vnil at Vec Nat (suc n) should be refuted")
	}
	if _, err := sig.Instantiate(vnil, vecOf(n), &holes); err != nil {
		t.Errorf("vnil at Vec Nat n: %v", err)
	}
}

func TestInstantiateFieldTelescope(t *testing.T) {
	sig := Builtins()
	vcons, _ := sig.Ctor("vcons")
	var holes HoleSupply

	inst, err := sig.Instantiate(vcons, vecOf(Con{Name: "suc", Args: []Term{Var{Name: "n"}}}), &holes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"{m : Nat = n}", "x : Nat", "xs : Vec Nat m"}
	if len(inst.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(inst.Fields), len(want))
	}
	for i, f := range inst.Fields {
		if f.String() != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.String(), want[i])
		}
	}
	if got := inst.Term.String(); got != "vcons n ?2 ?3" {
		t.Errorf("Term = %q", got)
	}
}

func TestInstantiateEmptyFamily(t *testing.T) {
	sig := Builtins()
	d, _ := sig.Data("Fin")
	var holes HoleSupply
	for _, c := range d.Ctors {
		if _, err := sig.Instantiate(c, Con{Name: "Fin", Args: []Term{Nat(0)}}, &holes); err == nil {
			t.Errorf("%s at Fin 0 should be refuted", c.Name)
		}
	}
}

func TestInstantiateForeignAndArity(t *testing.T) {
	sig := Builtins()
	zero, _ := sig.Ctor("zero")
	var holes HoleSupply

	var fe *ForeignCtorError
	if _, err := sig.Instantiate(zero, Con{Name: "Bool"}, &holes); !errors.As(err, &fe) {
		t.Errorf("expected *ForeignCtorError, got %v", err)
	}
	vnil, _ := sig.Ctor("vnil")
	var ae *ArityError
	if _, err := sig.Instantiate(vnil, Con{Name: "Vec", Args: []Term{Con{Name: "Nat"}}}, &holes); !errors.As(err, &ae) {
		t.Errorf("expected *ArityError, got %v", err)
	}
}

func TestSignatureAddRejectsDuplicates(t *testing.T) {
	sig := Builtins()
	err := sig.Add(&DataDecl{Name: "Nat"})
	var de *DuplicateError
	if !errors.As(err, &de) || de.Kind != "data type" {
		t.Errorf("expected duplicate data type, got %v", err)
	}
	err = sig.Add(&DataDecl{Name: "Peano", Ctors: []*CtorDecl{{Name: "zero"}}})
	if !errors.As(err, &de) || de.Kind != "constructor" {
		t.Errorf("expected duplicate constructor, got %v", err)
	}
	if _, ok := sig.Data("Peano"); ok {
		t.Errorf("rejected declaration must not be registered")
	}
	err = sig.Add(&DataDecl{Name: "Bad", Indices: []Field{{Name: "n", Type: Con{Name: "Nat"}}}, Ctors: []*CtorDecl{{Name: "bad"}}})
	var ae *ArityError
	if !errors.As(err, &ae) {
		t.Errorf("expected index arity error, got %v", err)
	}
}

func TestBuiltinsOrder(t *testing.T) {
	got := Builtins().Names()
	want := []string{"Nat", "Bool", "List", "Vec", "Fin"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
