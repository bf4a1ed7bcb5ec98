package ir

import (
	"errors"
	"testing"
)

func buildGraph(t *testing.T, input string) (*Namespace, *SubSuperGraph, error) {
	t.Helper()
	tree := parseTree(t, input)
	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	graph, err := NewSubSuperGraph(ns, tree)
	return ns, graph, err
}

func TestSubSuperGraphBasic(t *testing.T) {
	_, graph, err := buildGraph(t, `
SCHEMA s;
  ENTITY base; END_ENTITY;
  ENTITY derived SUBTYPE OF (base); END_ENTITY;
END_SCHEMA;`)
	if err != nil {
		t.Fatalf("NewSubSuperGraph: %v", err)
	}

	scope := RootScope().Pushed(KindSchema, "s")
	basePath := NewPath(scope, KindEntity, "base")
	derivedPath := NewPath(scope, KindEntity, "derived")

	if !graph.IsSupertype(basePath) {
		t.Fatalf("base should be a supertype")
	}
	if graph.IsSupertype(derivedPath) {
		t.Fatalf("derived is nobody's supertype")
	}

	subs := graph.Subtypes(basePath)
	if len(subs) != 1 || !subs[0].Equal(derivedPath) {
		t.Fatalf("subtypes = %v", subs)
	}
}

func TestSubSuperGraphMultipleInheritance(t *testing.T) {
	_, graph, err := buildGraph(t, `
SCHEMA s;
  ENTITY a; END_ENTITY;
  ENTITY b; END_ENTITY;
  ENTITY c SUBTYPE OF (a, b); END_ENTITY;
END_SCHEMA;`)
	if err != nil {
		t.Fatalf("NewSubSuperGraph: %v", err)
	}

	scope := RootScope().Pushed(KindSchema, "s")
	for _, super := range []string{"a", "b"} {
		path := NewPath(scope, KindEntity, super)
		if !graph.IsSupertype(path) {
			t.Fatalf("%s should be a supertype", super)
		}
		subs := graph.Subtypes(path)
		if len(subs) != 1 || subs[0].Name != "c" {
			t.Fatalf("subtypes of %s = %v", super, subs)
		}
	}
}

func TestSubSuperGraphUnknownSupertype(t *testing.T) {
	_, _, err := buildGraph(t, `
SCHEMA s;
  ENTITY derived SUBTYPE OF (ghost); END_ENTITY;
END_SCHEMA;`)
	var notFound *TypeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want TypeNotFoundError", err)
	}
	if notFound.Name != "ghost" {
		t.Fatalf("name = %q", notFound.Name)
	}
}

func TestSubSuperGraphSupertypeMustBeEntity(t *testing.T) {
	_, _, err := buildGraph(t, `
SCHEMA s;
  TYPE base = REAL; END_TYPE;
  ENTITY derived SUBTYPE OF (base); END_ENTITY;
END_SCHEMA;`)
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPathError", err)
	}
}

func TestSubSuperGraphDetectsCycle(t *testing.T) {
	_, _, err := buildGraph(t, `
SCHEMA s;
  ENTITY a SUBTYPE OF (b); END_ENTITY;
  ENTITY b SUBTYPE OF (a); END_ENTITY;
END_SCHEMA;`)
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPathError", err)
	}
}

func TestSubSuperGraphSelfCycle(t *testing.T) {
	_, _, err := buildGraph(t, `
SCHEMA s;
  ENTITY a SUBTYPE OF (a); END_ENTITY;
END_SCHEMA;`)
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPathError", err)
	}
}

func TestSubSuperGraphCrossSchema(t *testing.T) {
	_, graph, err := buildGraph(t, `
SCHEMA base_schema;
  ENTITY base; END_ENTITY;
END_SCHEMA;
SCHEMA derived_schema;
  USE FROM base_schema;
  ENTITY derived SUBTYPE OF (base); END_ENTITY;
END_SCHEMA;`)
	if err != nil {
		t.Fatalf("NewSubSuperGraph: %v", err)
	}

	basePath := NewPath(RootScope().Pushed(KindSchema, "base_schema"), KindEntity, "base")
	if !graph.IsSupertype(basePath) {
		t.Fatalf("cross-schema supertype not recorded")
	}
}
