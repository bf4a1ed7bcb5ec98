// Package ir legalizes a parsed syntax tree into a semantically annotated
// intermediate representation.
//
// The pipeline runs three passes: NewNamespace indexes every declaration,
// NewSubSuperGraph derives the entity inheritance relation, and the
// recursive Legalize* functions rebuild the tree bottom-up with every name
// reference resolved. Namespace and SubSuperGraph are immutable once built
// and are shared by reference across all legalization calls.
//
// Identifiers are case-folded to lower case throughout this package:
// EXPRESS names are case-insensitive, so the fold gives every declaration a
// single canonical identity.
package ir

import (
	"strings"
)

// ScopeKind classifies a scope segment or a path terminal.
type ScopeKind uint8

const (
	KindSchema ScopeKind = iota
	KindEntity
	KindType
	KindFunction
	KindProcedure
	KindRule
)

func (k ScopeKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindEntity:
		return "entity"
	case KindType:
		return "type"
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindRule:
		return "rule"
	}
	return "?"
}

type segment struct {
	kind ScopeKind
	name string
}

// Scope is an ordered sequence of (kind, name) segments rooted at the empty
// root scope. Scopes are value objects: Pushed returns a copy and never
// aliases the receiver's storage for mutation.
type Scope struct {
	segments []segment
}

// RootScope returns the distinguished empty naming context.
func RootScope() Scope {
	return Scope{}
}

// Pushed returns a new scope with one more segment appended. The receiver
// is unchanged.
func (s Scope) Pushed(kind ScopeKind, name string) Scope {
	segs := make([]segment, len(s.segments)+1)
	copy(segs, s.segments)
	segs[len(s.segments)] = segment{kind: kind, name: strings.ToLower(name)}
	return Scope{segments: segs}
}

// IsRoot reports whether the scope is the empty root context.
func (s Scope) IsRoot() bool {
	return len(s.segments) == 0
}

// Parent returns the scope with the last segment removed. The root scope is
// its own parent; ok is false in that case.
func (s Scope) Parent() (Scope, bool) {
	if s.IsRoot() {
		return s, false
	}
	return Scope{segments: s.segments[:len(s.segments)-1]}, true
}

// Depth returns the number of segments.
func (s Scope) Depth() int {
	return len(s.segments)
}

// LeafName returns the lowercased name of the innermost segment, or "" for
// the root scope.
func (s Scope) LeafName() string {
	if s.IsRoot() {
		return ""
	}
	return s.segments[len(s.segments)-1].name
}

// Equal reports structural equality of the segment sequences.
func (s Scope) Equal(other Scope) bool {
	if len(s.segments) != len(other.segments) {
		return false
	}
	for i := range s.segments {
		if s.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Key returns the canonical form used as a map key. Two scopes share a key
// iff they are Equal.
func (s Scope) Key() string {
	if s.IsRoot() {
		return ""
	}
	var b strings.Builder
	for i, seg := range s.segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.kind.String())
		b.WriteByte(':')
		b.WriteString(seg.name)
	}
	return b.String()
}

func (s Scope) String() string {
	if s.IsRoot() {
		return "<root>"
	}
	return s.Key()
}

// Path identifies one declaration: the scope containing it, its name, and
// the kind of the declaration itself.
type Path struct {
	Scope Scope
	Name  string
	Kind  ScopeKind
}

// NewPath builds a path with the name folded to the canonical case.
func NewPath(scope Scope, kind ScopeKind, name string) Path {
	return Path{Scope: scope, Name: strings.ToLower(name), Kind: kind}
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	return p.Name == other.Name && p.Kind == other.Kind && p.Scope.Equal(other.Scope)
}

// Key returns the canonical map key for the path.
func (p Path) Key() string {
	return p.Scope.Key() + "/" + p.Kind.String() + ":" + p.Name
}

func (p Path) String() string {
	if p.Scope.IsRoot() {
		return p.Kind.String() + ":" + p.Name
	}
	return p.Scope.String() + "/" + p.Kind.String() + ":" + p.Name
}
