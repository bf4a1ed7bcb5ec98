package ir

import (
	"strings"

	"exprc/internal/ast"
)

// TypeDecl is a legalized type declaration.
type TypeDecl struct {
	Name string
	Type TypeRef
}

// Schema is a legalized schema: its entities and type declarations keep
// their declaration order.
type Schema struct {
	Name     string
	Types    []TypeDecl
	Entities []Entity
}

// LegalizeSchema legalizes every declaration of the raw schema, preserving
// order, and fails fast on the first error.
func LegalizeSchema(ns *Namespace, graph *SubSuperGraph, parent Scope, schema *ast.Schema) (Schema, error) {
	scope := parent.Pushed(KindSchema, schema.Name)
	out := Schema{
		Name: strings.ToLower(schema.Name),
	}

	out.Types = make([]TypeDecl, 0, len(schema.Types))
	for _, decl := range schema.Types {
		ty, err := LegalizeType(ns, graph, scope, decl.Underlying)
		if err != nil {
			return Schema{}, err
		}
		out.Types = append(out.Types, TypeDecl{
			Name: strings.ToLower(decl.Name),
			Type: ty,
		})
	}

	out.Entities = make([]Entity, 0, len(schema.Entities))
	for _, entity := range schema.Entities {
		legalized, err := LegalizeEntity(ns, graph, scope, entity)
		if err != nil {
			return Schema{}, err
		}
		out.Entities = append(out.Entities, legalized)
	}
	return out, nil
}
