package ir

import (
	"strings"

	"exprc/internal/ast"
)

// Attribute is a legalized entity attribute.
type Attribute struct {
	Name     string
	Type     TypeRef
	Optional bool
}

// Entity is a legalized entity: its attributes appear in declaration order,
// which fixes the positional layout of generated constructors and the data
// binding order.
type Entity struct {
	Name       string
	Abstract   bool
	Supertypes []Path
	Attributes []Attribute
}

// LegalizeEntity resolves every attribute type of the raw entity. Entities
// legalize independently of their siblings: the only shared inputs are the
// read-only namespace and graph.
func LegalizeEntity(ns *Namespace, graph *SubSuperGraph, scope Scope, entity *ast.Entity) (Entity, error) {
	out := Entity{
		Name:     strings.ToLower(entity.Name),
		Abstract: entity.Abstract,
	}

	for _, ref := range entity.Supertypes {
		path, err := ns.Resolve(scope, ref.Name)
		if err != nil {
			return Entity{}, err
		}
		out.Supertypes = append(out.Supertypes, path)
	}

	out.Attributes = make([]Attribute, 0, len(entity.Attributes))
	for _, attr := range entity.Attributes {
		ty, err := LegalizeType(ns, graph, scope, attr.Type)
		if err != nil {
			return Entity{}, err
		}
		out.Attributes = append(out.Attributes, Attribute{
			Name:     strings.ToLower(attr.Name),
			Type:     ty,
			Optional: attr.Optional,
		})
	}
	return out, nil
}
