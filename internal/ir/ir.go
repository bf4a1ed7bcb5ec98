package ir

import (
	"exprc/internal/ast"
)

// IR is the fully legalized representation: one Schema per input schema, in
// input order.
type IR struct {
	Schemas []Schema
}

// FromSyntaxTree sequences the three passes: namespace construction,
// inheritance graph construction, and the recursive legalization of every
// schema. The first error aborts the whole construction; no partial IR is
// returned.
func FromSyntaxTree(tree *ast.SyntaxTree) (*IR, error) {
	ns, err := NewNamespace(tree)
	if err != nil {
		return nil, err
	}
	graph, err := NewSubSuperGraph(ns, tree)
	if err != nil {
		return nil, err
	}
	return Legalize(ns, graph, RootScope(), tree)
}

// Legalize legalizes every schema of the tree against prebuilt tables.
func Legalize(ns *Namespace, graph *SubSuperGraph, scope Scope, tree *ast.SyntaxTree) (*IR, error) {
	out := &IR{
		Schemas: make([]Schema, 0, len(tree.Schemas)),
	}
	for _, schema := range tree.Schemas {
		legalized, err := LegalizeSchema(ns, graph, scope, schema)
		if err != nil {
			return nil, err
		}
		out.Schemas = append(out.Schemas, legalized)
	}
	return out, nil
}
