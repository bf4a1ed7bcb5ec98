package ir

import (
	"fmt"
)

// TypeNotFoundError reports a name reference with no visible declaration.
// It carries the queried name and scope so the driver can render a full
// diagnostic without re-deriving context.
type TypeNotFoundError struct {
	Name  string
	Scope Scope
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("type %s not found in scope %s", e.Name, e.Scope)
}

// InvalidPathError reports a path that is structurally inconsistent with
// what the namespace stores, or a graph inconsistency such as a supertype
// cycle.
type InvalidPathError struct {
	Path   Path
	Reason string
}

func (e *InvalidPathError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid path: %s", e.Path)
	}
	return fmt.Sprintf("invalid path %s: %s", e.Path, e.Reason)
}

// DuplicateDeclError reports a second declaration at an already occupied
// path. Last-write-wins would silently drop a declaration, so namespace
// construction rejects the collision instead.
type DuplicateDeclError struct {
	Path Path
}

func (e *DuplicateDeclError) Error() string {
	return fmt.Sprintf("duplicate declaration of %s", e.Path)
}
