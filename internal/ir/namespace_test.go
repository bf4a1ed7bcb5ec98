package ir

import (
	"errors"
	"testing"

	"exprc/internal/ast"
	"exprc/internal/parser"
	"exprc/internal/source"
)

// parseTree is the test shortcut from schema text to a syntax tree.
func parseTree(t *testing.T, input string) *ast.SyntaxTree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.exp", []byte(input))
	res := parser.Parse(fs.Get(id), parser.Options{})
	if len(res.Tree.Schemas) == 0 {
		t.Fatalf("no schemas parsed from %q", input)
	}
	return res.Tree
}

func TestNamespaceGetAndResolve(t *testing.T) {
	tree := parseTree(t, `
SCHEMA demo;
  TYPE length = REAL; END_TYPE;
  ENTITY point; x : length; END_ENTITY;
END_SCHEMA;`)

	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	scope := RootScope().Pushed(KindSchema, "demo")
	path, err := ns.Resolve(scope, "length")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path.Kind != KindType || path.Name != "length" {
		t.Fatalf("path = %v", path)
	}

	named, err := ns.Get(path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := named.(NamedType); !ok {
		t.Fatalf("named = %#v", named)
	}

	// resolution is case-insensitive
	if _, err := ns.Resolve(scope, "LENGTH"); err != nil {
		t.Fatalf("case-insensitive Resolve: %v", err)
	}

	// and works from a nested scope
	inner := scope.Pushed(KindEntity, "point")
	if _, err := ns.Resolve(inner, "length"); err != nil {
		t.Fatalf("Resolve from entity scope: %v", err)
	}
}

func TestNamespaceUnknownName(t *testing.T) {
	tree := parseTree(t, "SCHEMA demo; END_SCHEMA;")
	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	scope := RootScope().Pushed(KindSchema, "demo")
	_, err = ns.Resolve(scope, "missing")
	var notFound *TypeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want TypeNotFoundError", err)
	}
	if notFound.Name != "missing" {
		t.Fatalf("error name = %q", notFound.Name)
	}
	if !notFound.Scope.Equal(scope) {
		t.Fatalf("error scope = %v, want %v", notFound.Scope, scope)
	}
}

func TestNamespaceKindMismatchIsInvalidPath(t *testing.T) {
	tree := parseTree(t, "SCHEMA demo; ENTITY point; END_ENTITY; END_SCHEMA;")
	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	scope := RootScope().Pushed(KindSchema, "demo")
	wrongKind := NewPath(scope, KindType, "point")
	_, err = ns.Get(wrongKind)
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidPathError", err)
	}
}

func TestNamespaceRejectsDuplicates(t *testing.T) {
	tree := parseTree(t, `
SCHEMA demo;
  TYPE thing = REAL; END_TYPE;
  ENTITY thing; END_ENTITY;
END_SCHEMA;`)

	_, err := NewNamespace(tree)
	var dup *DuplicateDeclError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateDeclError", err)
	}
	if dup.Path.Name != "thing" {
		t.Fatalf("duplicate path = %v", dup.Path)
	}
}

func TestNamespaceRejectsDuplicateSchemas(t *testing.T) {
	tree := parseTree(t, "SCHEMA demo; END_SCHEMA; SCHEMA demo; END_SCHEMA;")
	_, err := NewNamespace(tree)
	var dup *DuplicateDeclError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateDeclError", err)
	}
}

func TestResolveThroughUseClause(t *testing.T) {
	tree := parseTree(t, `
SCHEMA base;
  TYPE length = REAL; END_TYPE;
  TYPE width = REAL; END_TYPE;
END_SCHEMA;
SCHEMA client;
  USE FROM base (length);
END_SCHEMA;`)

	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	clientScope := RootScope().Pushed(KindSchema, "client")
	path, err := ns.Resolve(clientScope, "length")
	if err != nil {
		t.Fatalf("Resolve imported: %v", err)
	}
	wantScope := RootScope().Pushed(KindSchema, "base")
	if !path.Scope.Equal(wantScope) {
		t.Fatalf("imported path scope = %v", path.Scope)
	}

	// width is not in the restriction list
	if _, err := ns.Resolve(clientScope, "width"); err == nil {
		t.Fatalf("width should not be visible")
	}
}

func TestLocalDeclarationShadowsImport(t *testing.T) {
	tree := parseTree(t, `
SCHEMA base;
  TYPE length = REAL; END_TYPE;
END_SCHEMA;
SCHEMA client;
  USE FROM base;
  TYPE length = INTEGER; END_TYPE;
END_SCHEMA;`)

	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	clientScope := RootScope().Pushed(KindSchema, "client")
	path, err := ns.Resolve(clientScope, "length")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !path.Scope.Equal(clientScope) {
		t.Fatalf("local declaration must shadow the import; got %v", path)
	}
}

func TestImportsAreNotTransitive(t *testing.T) {
	tree := parseTree(t, `
SCHEMA a;
  TYPE deep = REAL; END_TYPE;
END_SCHEMA;
SCHEMA b;
  USE FROM a;
END_SCHEMA;
SCHEMA c;
  USE FROM b;
END_SCHEMA;`)

	ns, err := NewNamespace(tree)
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}

	cScope := RootScope().Pushed(KindSchema, "c")
	if _, err := ns.Resolve(cScope, "deep"); err == nil {
		t.Fatalf("deep should not leak through transitive imports")
	}
}
