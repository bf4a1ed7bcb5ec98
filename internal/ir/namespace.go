package ir

import (
	"slices"
	"strings"

	"exprc/internal/ast"
)

// Named is the tagged union over the raw declarations a path can denote.
type Named interface {
	isNamed()
}

// NamedType wraps a raw type declaration.
type NamedType struct {
	Decl *ast.TypeDecl
}

// NamedEntity wraps a raw entity declaration.
type NamedEntity struct {
	Decl *ast.Entity
}

func (NamedType) isNamed()   {}
func (NamedEntity) isNamed() {}

type useImport struct {
	schema string   // lowercased source schema name
	names  []string // lowercased restriction list; nil imports everything
}

// Namespace is the global symbol table: an immutable mapping from Path to
// the declaration found there, covering every schema of the input. It is
// built once per compilation and never mutated afterwards, so it can be
// shared across concurrent readers without synchronization.
type Namespace struct {
	decls   map[string]Named     // path key -> declaration
	index   map[string]Path      // scope key + "|" + name -> path
	imports map[string][]useImport // schema name -> USE/REFERENCE clauses in order
}

// NewNamespace walks every schema and records a (Path -> Named) entry for
// each declaration. Cross-references are not validated here; the only
// failure mode is a duplicate declaration at the same path.
func NewNamespace(tree *ast.SyntaxTree) (*Namespace, error) {
	ns := &Namespace{
		decls:   make(map[string]Named),
		index:   make(map[string]Path),
		imports: make(map[string][]useImport),
	}

	seenSchemas := make(map[string]bool)
	for _, schema := range tree.Schemas {
		schemaName := strings.ToLower(schema.Name)
		if seenSchemas[schemaName] {
			return nil, &DuplicateDeclError{Path: NewPath(RootScope(), KindSchema, schemaName)}
		}
		seenSchemas[schemaName] = true

		scope := RootScope().Pushed(KindSchema, schema.Name)
		for _, use := range schema.Uses {
			imp := useImport{schema: strings.ToLower(use.Schema)}
			for _, n := range use.Names {
				imp.names = append(imp.names, strings.ToLower(n))
			}
			ns.imports[schemaName] = append(ns.imports[schemaName], imp)
		}
		for _, decl := range schema.Types {
			path := NewPath(scope, KindType, decl.Name)
			if err := ns.insert(path, NamedType{Decl: decl}); err != nil {
				return nil, err
			}
		}
		for _, entity := range schema.Entities {
			path := NewPath(scope, KindEntity, entity.Name)
			if err := ns.insert(path, NamedEntity{Decl: entity}); err != nil {
				return nil, err
			}
		}
	}
	return ns, nil
}

func (ns *Namespace) insert(path Path, named Named) error {
	indexKey := path.Scope.Key() + "|" + path.Name
	if _, exists := ns.index[indexKey]; exists {
		return &DuplicateDeclError{Path: path}
	}
	ns.index[indexKey] = path
	ns.decls[path.Key()] = named
	return nil
}

// Get returns the declaration stored at path. A path whose terminal kind
// disagrees with the stored declaration fails with InvalidPathError; an
// absent name fails with TypeNotFoundError.
func (ns *Namespace) Get(path Path) (Named, error) {
	if named, ok := ns.decls[path.Key()]; ok {
		return named, nil
	}
	if stored, ok := ns.index[path.Scope.Key()+"|"+path.Name]; ok && stored.Kind != path.Kind {
		return nil, &InvalidPathError{
			Path:   path,
			Reason: "declared as " + stored.Kind.String(),
		}
	}
	return nil, &TypeNotFoundError{Name: path.Name, Scope: path.Scope}
}

// Resolve determines the path a bare name denotes when referenced from
// within scope. The scope chain is searched innermost-first, so a local
// declaration shadows anything imported; USE/REFERENCE imports are
// consulted at the schema scope only, in clause order, first match wins.
func (ns *Namespace) Resolve(scope Scope, name string) (Path, error) {
	lname := strings.ToLower(name)
	for s := scope; ; {
		if path, ok := ns.index[s.Key()+"|"+lname]; ok {
			return path, nil
		}
		if leaf, ok := s.leaf(); ok && leaf.kind == KindSchema && s.Depth() == 1 {
			if path, ok := ns.resolveImported(leaf.name, lname); ok {
				return path, nil
			}
		}
		parent, ok := s.Parent()
		if !ok {
			break
		}
		s = parent
	}
	return Path{}, &TypeNotFoundError{Name: lname, Scope: scope}
}

// resolveImported searches the schema's USE/REFERENCE clauses for a
// declaration named lname. Imports are not transitive: only names declared
// in the source schema itself are visible.
func (ns *Namespace) resolveImported(schemaName, lname string) (Path, bool) {
	for _, imp := range ns.imports[schemaName] {
		if imp.names != nil && !slices.Contains(imp.names, lname) {
			continue
		}
		sourceScope := RootScope().Pushed(KindSchema, imp.schema)
		if path, ok := ns.index[sourceScope.Key()+"|"+lname]; ok {
			return path, true
		}
	}
	return Path{}, false
}

func (s Scope) leaf() (segment, bool) {
	if s.IsRoot() {
		return segment{}, false
	}
	return s.segments[len(s.segments)-1], true
}
