// Package ast holds the syntax tree produced by the parser.
//
// The tree is a read-only input for the semantic passes: nothing downstream
// of the parser mutates it. Identifiers keep their source spelling; the
// semantic layer folds case when it builds lookup keys.
package ast

import (
	"exprc/internal/source"
)

// SyntaxTree is an ordered sequence of parsed schemas.
type SyntaxTree struct {
	Schemas []*Schema
}

// Schema is one SCHEMA ... END_SCHEMA block.
type Schema struct {
	Name     string
	Uses     []*UseClause
	Entities []*Entity
	Types    []*TypeDecl
	Span     source.Span
}

// UseClause is a USE FROM interface specification. An empty Names list
// imports every declaration of the source schema.
type UseClause struct {
	Schema string
	Names  []string
	Span   source.Span
}

// Ref is a name reference with its location.
type Ref struct {
	Name string
	Span source.Span
}

// Entity is an ENTITY declaration: ordered attributes plus the declared
// supertype list.
type Entity struct {
	Name       string
	Abstract   bool
	Supertypes []Ref
	Attributes []*Attribute
	Span       source.Span
}

// Attribute is one explicit attribute of an entity.
type Attribute struct {
	Name     string
	Type     Type
	Optional bool
	Span     source.Span
}

// TypeDecl is a TYPE name = underlying; END_TYPE; declaration.
type TypeDecl struct {
	Name       string
	Underlying Type
	Span       source.Span
}
