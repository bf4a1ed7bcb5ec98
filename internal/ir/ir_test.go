package ir

import (
	"errors"
	"testing"
)

func TestAttributeOrderPreserved(t *testing.T) {
	tree := parseTree(t, `
SCHEMA demo;
  ENTITY wide;
    a1 : INTEGER;
    a2 : REAL;
    a3 : STRING;
    a4 : BOOLEAN;
    a5 : LOGICAL;
  END_ENTITY;
END_SCHEMA;`)

	out, err := FromSyntaxTree(tree)
	if err != nil {
		t.Fatalf("FromSyntaxTree: %v", err)
	}
	attrs := out.Schemas[0].Entities[0].Attributes
	want := []string{"a1", "a2", "a3", "a4", "a5"}
	if len(attrs) != len(want) {
		t.Fatalf("attribute count = %d, want %d", len(attrs), len(want))
	}
	for i, name := range want {
		if attrs[i].Name != name {
			t.Fatalf("attribute %d = %q, want %q", i, attrs[i].Name, name)
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	tree := parseTree(t, `
SCHEMA demo;
  TYPE a = INTEGER; END_TYPE;
  TYPE b = a; END_TYPE;
  TYPE color = ENUMERATION OF (red, green, blue); END_TYPE;
  ENTITY base;
    x : INTEGER;
  END_ENTITY;
  ENTITY derived SUBTYPE OF (base);
    y : b;
  END_ENTITY;
END_SCHEMA;`)

	out, err := FromSyntaxTree(tree)
	if err != nil {
		t.Fatalf("FromSyntaxTree: %v", err)
	}
	if len(out.Schemas) != 1 || out.Schemas[0].Name != "demo" {
		t.Fatalf("schemas = %+v", out.Schemas)
	}

	schema := out.Schemas[0]
	if len(schema.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(schema.Entities))
	}

	derived := schema.Entities[1]
	if derived.Name != "derived" {
		t.Fatalf("entity order broken: %q", derived.Name)
	}
	y := derived.Attributes[0]
	if y.Name != "y" {
		t.Fatalf("attribute = %q", y.Name)
	}
	named, ok := y.Type.(NamedRef)
	if !ok {
		t.Fatalf("y type = %#v", y.Type)
	}
	if named.Name != "b" || !named.Simple || named.DirectSimple || named.Enumerate {
		t.Fatalf("y's NamedRef = %+v", named)
	}

	// base referenced as a type legalizes with the supertype flag set
	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	graph, err := NewSubSuperGraph(ns, tree)
	if err != nil {
		t.Fatalf("NewSubSuperGraph: %v", err)
	}
	scope := RootScope().Pushed(KindSchema, "demo")
	baseRef, err := ns.LookupType(graph, scope, "base")
	if err != nil {
		t.Fatalf("LookupType(base): %v", err)
	}
	if !baseRef.(EntityRef).Supertype {
		t.Fatalf("base must legalize as a supertype")
	}

	// the enumeration is present and classified
	if schema.Types[2].Name != "color" {
		t.Fatalf("type order broken: %+v", schema.Types)
	}
	if _, ok := schema.Types[2].Type.(EnumerationRef); !ok {
		t.Fatalf("color = %#v", schema.Types[2].Type)
	}

	// supertype paths were resolved on the legalized entity
	if len(derived.Supertypes) != 1 || derived.Supertypes[0].Name != "base" {
		t.Fatalf("derived supertypes = %v", derived.Supertypes)
	}
}

func TestFailFastNoPartialIR(t *testing.T) {
	tree := parseTree(t, `
SCHEMA good;
  ENTITY fine; x : INTEGER; END_ENTITY;
END_SCHEMA;
SCHEMA bad;
  ENTITY broken; y : ghost; END_ENTITY;
END_SCHEMA;`)

	out, err := FromSyntaxTree(tree)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if out != nil {
		t.Fatalf("no partial IR may be produced, got %+v", out)
	}
	var notFound *TypeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want TypeNotFoundError", err)
	}
	wantScope := RootScope().Pushed(KindSchema, "bad")
	if !notFound.Scope.Equal(wantScope) {
		t.Fatalf("error scope = %v, want %v", notFound.Scope, wantScope)
	}
}

func TestSchemaOrderPreserved(t *testing.T) {
	tree := parseTree(t, `
SCHEMA zeta; END_SCHEMA;
SCHEMA alpha; END_SCHEMA;
SCHEMA midway; END_SCHEMA;`)

	out, err := FromSyntaxTree(tree)
	if err != nil {
		t.Fatalf("FromSyntaxTree: %v", err)
	}
	want := []string{"zeta", "alpha", "midway"}
	for i, name := range want {
		if out.Schemas[i].Name != name {
			t.Fatalf("schema %d = %q, want %q", i, out.Schemas[i].Name, name)
		}
	}
}

func TestOptionalAttribute(t *testing.T) {
	tree := parseTree(t, `
SCHEMA demo;
  ENTITY tagged;
    label : OPTIONAL STRING;
    value : REAL;
  END_ENTITY;
END_SCHEMA;`)

	out, err := FromSyntaxTree(tree)
	if err != nil {
		t.Fatalf("FromSyntaxTree: %v", err)
	}
	attrs := out.Schemas[0].Entities[0].Attributes
	if !attrs[0].Optional || attrs[1].Optional {
		t.Fatalf("optional flags = %v %v", attrs[0].Optional, attrs[1].Optional)
	}
}
