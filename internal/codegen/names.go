package codegen

import (
	gotoken "go/token"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ExportName converts a snake_case EXPRESS identifier into an exported Go
// identifier: "point_set" becomes "PointSet".
func ExportName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(titleCaser.String(part))
	}
	return b.String()
}

// paramName keeps the EXPRESS attribute name for constructor parameters,
// escaping Go keywords.
func paramName(name string) string {
	if gotoken.IsKeyword(name) {
		return name + "_"
	}
	return name
}
