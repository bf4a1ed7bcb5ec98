package ast

import (
	"exprc/internal/source"
)

// Type is the tagged union over syntactic type expressions.
type Type interface {
	TypeSpan() source.Span
	isType()
}

// SimpleKind enumerates the EXPRESS simple types.
type SimpleKind uint8

const (
	SimpleNumber SimpleKind = iota
	SimpleReal
	SimpleInteger
	SimpleString
	SimpleBoolean
	SimpleLogical
	SimpleBinary
)

func (k SimpleKind) String() string {
	switch k {
	case SimpleNumber:
		return "NUMBER"
	case SimpleReal:
		return "REAL"
	case SimpleInteger:
		return "INTEGER"
	case SimpleString:
		return "STRING"
	case SimpleBoolean:
		return "BOOLEAN"
	case SimpleLogical:
		return "LOGICAL"
	case SimpleBinary:
		return "BINARY"
	}
	return "?"
}

// SimpleType is a terminal primitive type.
type SimpleType struct {
	Kind SimpleKind
	Span source.Span
}

// NamedType references a declared type or entity by name.
type NamedType struct {
	Name string
	Span source.Span
}

// EnumerationType is ENUMERATION OF (id, ...).
type EnumerationType struct {
	Items []string
	Span  source.Span
}

// SelectType is SELECT (ref, ...).
type SelectType struct {
	Members []Ref
	Span    source.Span
}

// AggregateKind enumerates the EXPRESS aggregation type constructors.
type AggregateKind uint8

const (
	AggSet AggregateKind = iota
	AggList
	AggBag
	AggArray
)

func (k AggregateKind) String() string {
	switch k {
	case AggSet:
		return "SET"
	case AggList:
		return "LIST"
	case AggBag:
		return "BAG"
	case AggArray:
		return "ARRAY"
	}
	return "?"
}

// AggregateType is SET/LIST/BAG/ARRAY [bound] OF [UNIQUE] base.
type AggregateType struct {
	Kind   AggregateKind
	Base   Type
	Bound  *Bound
	Unique bool
	Span   source.Span
}

// BoundValue is one end of a cardinality bound: either a literal integer or
// the indeterminate '?'.
type BoundValue struct {
	Indeterminate bool
	Value         int64
}

// Bound is a [lower : upper] cardinality constraint. Carried through the
// pipeline but never semantically checked.
type Bound struct {
	Lower BoundValue
	Upper BoundValue
	Span  source.Span
}

func (t *SimpleType) TypeSpan() source.Span      { return t.Span }
func (t *NamedType) TypeSpan() source.Span       { return t.Span }
func (t *EnumerationType) TypeSpan() source.Span { return t.Span }
func (t *SelectType) TypeSpan() source.Span      { return t.Span }
func (t *AggregateType) TypeSpan() source.Span   { return t.Span }

func (*SimpleType) isType()      {}
func (*NamedType) isType()       {}
func (*EnumerationType) isType() {}
func (*SelectType) isType()      {}
func (*AggregateType) isType()   {}
