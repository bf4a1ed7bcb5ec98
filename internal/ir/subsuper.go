package ir

import (
	"sort"

	"exprc/internal/ast"
)

// SubSuperGraph records the declared entity inheritance relation: for every
// entity path that appears as a supertype, the set of paths of entities that
// directly declare it in their SUBTYPE OF clause. The graph is built eagerly
// and in full; it is immutable afterwards.
type SubSuperGraph struct {
	superToSub map[string][]Path // super path key -> direct subtypes, sorted by key
}

// NewSubSuperGraph resolves every declared supertype name against the
// namespace and records a super -> sub edge. A supertype name that does not
// resolve fails with TypeNotFoundError; a name resolving to a non-entity, or
// a cyclic subtype declaration, fails with InvalidPathError.
func NewSubSuperGraph(ns *Namespace, tree *ast.SyntaxTree) (*SubSuperGraph, error) {
	g := &SubSuperGraph{
		superToSub: make(map[string][]Path),
	}

	// sub path key -> direct super paths, for cycle detection
	subToSuper := make(map[string][]Path)

	for _, schema := range tree.Schemas {
		scope := RootScope().Pushed(KindSchema, schema.Name)
		for _, entity := range schema.Entities {
			if len(entity.Supertypes) == 0 {
				continue
			}
			subPath := NewPath(scope, KindEntity, entity.Name)
			for _, ref := range entity.Supertypes {
				superPath, err := ns.Resolve(scope, ref.Name)
				if err != nil {
					return nil, err
				}
				if superPath.Kind != KindEntity {
					return nil, &InvalidPathError{
						Path:   superPath,
						Reason: "declared supertype is not an entity",
					}
				}
				key := superPath.Key()
				g.superToSub[key] = append(g.superToSub[key], subPath)
				subToSuper[subPath.Key()] = append(subToSuper[subPath.Key()], superPath)
			}
		}
	}

	if cyclic, ok := findCycle(subToSuper); ok {
		return nil, &InvalidPathError{Path: cyclic, Reason: "cyclic supertype declaration"}
	}

	for key := range g.superToSub {
		subs := g.superToSub[key]
		sort.Slice(subs, func(i, j int) bool { return subs[i].Key() < subs[j].Key() })
	}
	return g, nil
}

// Subtypes returns the direct subtypes recorded for the path, or nil when
// the entity is not declared as anyone's supertype.
func (g *SubSuperGraph) Subtypes(path Path) []Path {
	return g.superToSub[path.Key()]
}

// IsSupertype reports whether at least one entity declares path as its
// supertype.
func (g *SubSuperGraph) IsSupertype(path Path) bool {
	return len(g.superToSub[path.Key()]) > 0
}

// findCycle walks the sub -> super edges depth-first and returns a path on
// the first cycle found. Iteration over a sorted key list keeps the answer
// deterministic.
func findCycle(subToSuper map[string][]Path) (Path, bool) {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(subToSuper))

	keys := make([]string, 0, len(subToSuper))
	byKey := make(map[string]Path, len(subToSuper))
	for key, supers := range subToSuper {
		keys = append(keys, key)
		for _, p := range supers {
			byKey[p.Key()] = p
		}
	}
	sort.Strings(keys)

	var visit func(key string) (Path, bool)
	visit = func(key string) (Path, bool) {
		state[key] = inStack
		for _, super := range subToSuper[key] {
			superKey := super.Key()
			switch state[superKey] {
			case inStack:
				return super, true
			case unvisited:
				if p, found := visit(superKey); found {
					return p, true
				}
			}
		}
		state[key] = done
		return Path{}, false
	}

	for _, key := range keys {
		if state[key] == unvisited {
			if p, found := visit(key); found {
				return p, true
			}
		}
	}
	return Path{}, false
}
