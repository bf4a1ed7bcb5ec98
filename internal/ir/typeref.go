package ir

import (
	"exprc/internal/ast"
)

// TypeRef is the legalized, resolved form of a type reference. The
// classification flags on NamedRef and the supertype flag on EntityRef are
// computed exactly once, here; downstream consumers treat them as
// authoritative and never re-walk the namespace.
type TypeRef interface {
	// IsSimple reports whether the reference is a simple type, an alias
	// chain ending in a simple type or enumeration, or an aggregate of a
	// simple element type.
	IsSimple() bool
	// IsDirectSimple reports the one-hop variant: the immediately
	// referenced declaration is itself a simple type or enumeration.
	IsDirectSimple() bool
	isTypeRef()
}

// SimpleRef is a terminal primitive type.
type SimpleRef struct {
	Kind ast.SimpleKind
}

// NamedRef is a resolved reference to a declared type.
//
// Given
//
//	TYPE a = INTEGER; END_TYPE;
//	TYPE b = a; END_TYPE;
//
// both a and b are simple, but only a is direct simple. Enumerations count
// as simple on both axes: they are carried as a single integer downstream.
type NamedRef struct {
	Name  string
	Scope Scope // scope the referenced type is declared in

	Simple       bool
	DirectSimple bool
	Enumerate    bool
}

// EntityRef is a resolved reference to a declared entity.
type EntityRef struct {
	Name      string
	Scope     Scope
	Supertype bool
}

// EnumerationRef is an enumeration in type-declaration position.
type EnumerationRef struct {
	Items []string
}

// SelectRef is a select in type-declaration position, with every member
// resolved to its path.
type SelectRef struct {
	Members []Path
}

// AggregateRef is a SET/LIST/BAG/ARRAY of a legalized base type. The bound
// is carried but not semantically checked.
type AggregateRef struct {
	Kind   ast.AggregateKind
	Base   TypeRef
	Bound  *Bound
	Unique bool
}

// Bound is the legalized cardinality constraint, copied structurally from
// the syntax.
type Bound struct {
	Lower ast.BoundValue
	Upper ast.BoundValue
}

func (SimpleRef) IsSimple() bool       { return true }
func (SimpleRef) IsDirectSimple() bool { return true }

func (r NamedRef) IsSimple() bool       { return r.Simple }
func (r NamedRef) IsDirectSimple() bool { return r.DirectSimple }

// IsEnumerate reports whether the immediately referenced declaration is an
// enumeration (one hop, not transitive).
func (r NamedRef) IsEnumerate() bool { return r.Enumerate }

func (EntityRef) IsSimple() bool       { return false }
func (EntityRef) IsDirectSimple() bool { return false }

func (EnumerationRef) IsSimple() bool       { return true }
func (EnumerationRef) IsDirectSimple() bool { return true }

func (SelectRef) IsSimple() bool       { return false }
func (SelectRef) IsDirectSimple() bool { return false }

func (r AggregateRef) IsSimple() bool       { return r.Base.IsSimple() }
func (r AggregateRef) IsDirectSimple() bool { return r.Base.IsDirectSimple() }

func (SimpleRef) isTypeRef()      {}
func (NamedRef) isTypeRef()       {}
func (EntityRef) isTypeRef()      {}
func (EnumerationRef) isTypeRef() {}
func (SelectRef) isTypeRef()      {}
func (AggregateRef) isTypeRef()   {}

// TypeRefFromPath classifies the declaration at path into a TypeRef,
// precomputing the semantic flags.
func TypeRefFromPath(ns *Namespace, graph *SubSuperGraph, path Path) (TypeRef, error) {
	switch path.Kind {
	case KindEntity:
		return EntityRef{
			Name:      path.Name,
			Scope:     path.Scope,
			Supertype: graph.IsSupertype(path),
		}, nil

	case KindType:
		simple, err := chaseSimple(ns, path)
		if err != nil {
			return nil, err
		}
		directSimple, enumerate, err := classifyDirect(ns, path)
		if err != nil {
			return nil, err
		}
		return NamedRef{
			Name:         path.Name,
			Scope:        path.Scope,
			Simple:       simple,
			DirectSimple: directSimple,
			Enumerate:    enumerate,
		}, nil

	default:
		return nil, &InvalidPathError{Path: path, Reason: "not a type or entity"}
	}
}

// chaseSimple walks the chain of named-type aliases starting at path and
// reports whether it terminates in a simple type or enumeration. Any other
// underlying shape stops the walk with false. Well-formed EXPRESS cannot
// cycle aliases, but a visited set guards the loop anyway: a revisited path
// is reported as invalid instead of spinning.
func chaseSimple(ns *Namespace, path Path) (bool, error) {
	visited := map[string]bool{path.Key(): true}
	p := path
	for {
		named, err := ns.Get(p)
		if err != nil {
			return false, err
		}
		typeDecl, ok := named.(NamedType)
		if !ok {
			return false, nil
		}
		switch underlying := typeDecl.Decl.Underlying.(type) {
		case *ast.SimpleType, *ast.EnumerationType:
			return true, nil
		case *ast.NamedType:
			// re-resolve in the alias's own declaring scope
			next, err := ns.Resolve(p.Scope, underlying.Name)
			if err != nil {
				return false, err
			}
			if visited[next.Key()] {
				return false, &InvalidPathError{Path: next, Reason: "cyclic type alias"}
			}
			visited[next.Key()] = true
			p = next
		default:
			return false, nil
		}
	}
}

// classifyDirect inspects only the immediately referenced declaration.
func classifyDirect(ns *Namespace, path Path) (directSimple, enumerate bool, err error) {
	named, err := ns.Get(path)
	if err != nil {
		return false, false, err
	}
	typeDecl, ok := named.(NamedType)
	if !ok {
		return false, false, nil
	}
	switch typeDecl.Decl.Underlying.(type) {
	case *ast.SimpleType:
		return true, false, nil
	case *ast.EnumerationType:
		return true, true, nil
	default:
		return false, false, nil
	}
}

// LegalizeType classifies a syntactic type expression referenced from
// within scope.
func LegalizeType(ns *Namespace, graph *SubSuperGraph, scope Scope, ty ast.Type) (TypeRef, error) {
	switch t := ty.(type) {
	case *ast.SimpleType:
		return SimpleRef{Kind: t.Kind}, nil

	case *ast.NamedType:
		path, err := ns.Resolve(scope, t.Name)
		if err != nil {
			return nil, err
		}
		return TypeRefFromPath(ns, graph, path)

	case *ast.EnumerationType:
		items := make([]string, len(t.Items))
		copy(items, t.Items)
		return EnumerationRef{Items: items}, nil

	case *ast.SelectType:
		members := make([]Path, 0, len(t.Members))
		for _, ref := range t.Members {
			path, err := ns.Resolve(scope, ref.Name)
			if err != nil {
				return nil, err
			}
			members = append(members, path)
		}
		return SelectRef{Members: members}, nil

	case *ast.AggregateType:
		base, err := LegalizeType(ns, graph, scope, t.Base)
		if err != nil {
			return nil, err
		}
		ref := AggregateRef{
			Kind:   t.Kind,
			Base:   base,
			Unique: t.Unique,
		}
		if t.Bound != nil {
			ref.Bound = &Bound{Lower: t.Bound.Lower, Upper: t.Bound.Upper}
		}
		return ref, nil

	default:
		return nil, &InvalidPathError{
			Path:   NewPath(scope, KindType, "?"),
			Reason: "unsupported type expression",
		}
	}
}

// LookupType is the composition of Resolve and TypeRefFromPath.
func (ns *Namespace) LookupType(graph *SubSuperGraph, scope Scope, name string) (TypeRef, error) {
	path, err := ns.Resolve(scope, name)
	if err != nil {
		return nil, err
	}
	return TypeRefFromPath(ns, graph, path)
}
