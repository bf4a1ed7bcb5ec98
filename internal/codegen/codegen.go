// Package codegen renders a legalized IR into Go source declarations.
//
// Every fact codegen needs (simple/direct-simple/enumerate/supertype) is
// already embedded in the TypeRef values, so rendering never consults the
// namespace or the inheritance graph.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"exprc/internal/ast"
	"exprc/internal/ir"
)

// Options controls generation for one schema.
type Options struct {
	// PackageName overrides the default package name (the schema name with
	// underscores removed).
	PackageName string
}

// GenerateSchema renders one legalized schema into a gofmt-formatted Go
// source file.
func GenerateSchema(schema ir.Schema, opts Options) ([]byte, error) {
	g := &generator{schema: schema}

	pkg := opts.PackageName
	if pkg == "" {
		pkg = strings.ReplaceAll(schema.Name, "_", "")
	}

	var body bytes.Buffer
	for _, decl := range schema.Types {
		g.typeDecl(&body, decl)
	}
	for _, entity := range schema.Entities {
		g.entity(&body, entity)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by exprc from schema %s. DO NOT EDIT.\n\n", schema.Name)
	fmt.Fprintf(&out, "package %s\n\n", pkg)
	if g.needsLogical {
		out.WriteString("// Logical is the EXPRESS three-valued LOGICAL type.\n")
		out.WriteString("type Logical int8\n\n")
		out.WriteString("const (\n\tLogicalFalse Logical = iota\n\tLogicalTrue\n\tLogicalUnknown\n)\n\n")
	}
	out.Write(body.Bytes())

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated schema %s: %w", schema.Name, err)
	}
	return formatted, nil
}

type generator struct {
	schema       ir.Schema
	needsLogical bool
}

func (g *generator) typeDecl(w *bytes.Buffer, decl ir.TypeDecl) {
	name := ExportName(decl.Name)
	switch ty := decl.Type.(type) {
	case ir.EnumerationRef:
		fmt.Fprintf(w, "type %s int\n\nconst (\n", name)
		for i, item := range ty.Items {
			if i == 0 {
				fmt.Fprintf(w, "\t%s%s %s = iota\n", name, ExportName(item), name)
			} else {
				fmt.Fprintf(w, "\t%s%s\n", name, ExportName(item))
			}
		}
		w.WriteString(")\n\n")

	case ir.SelectRef:
		fmt.Fprintf(w, "// %s is a select over %d member types.\n", name, len(ty.Members))
		fmt.Fprintf(w, "type %s interface {\n\tis%s()\n}\n\n", name, name)
		for _, member := range ty.Members {
			fmt.Fprintf(w, "func (%s) is%s() {}\n", ExportName(member.Name), name)
		}
		w.WriteString("\n")

	default:
		fmt.Fprintf(w, "type %s %s\n\n", name, g.typeExpr(decl.Type))
	}
}

func (g *generator) entity(w *bytes.Buffer, entity ir.Entity) {
	name := ExportName(entity.Name)
	fmt.Fprintf(w, "type %s struct {\n", name)
	for _, attr := range entity.Attributes {
		ty := g.typeExpr(attr.Type)
		if attr.Optional {
			ty = "*" + ty
		}
		fmt.Fprintf(w, "\t%s %s\n", ExportName(attr.Name), ty)
	}
	w.WriteString("}\n\n")

	// positional constructor: parameter order is attribute declaration order
	params := make([]string, 0, len(entity.Attributes))
	fields := make([]string, 0, len(entity.Attributes))
	for _, attr := range entity.Attributes {
		ty := g.typeExpr(attr.Type)
		if attr.Optional {
			ty = "*" + ty
		}
		param := paramName(attr.Name)
		params = append(params, fmt.Sprintf("%s %s", param, ty))
		fields = append(fields, fmt.Sprintf("%s: %s", ExportName(attr.Name), param))
	}
	fmt.Fprintf(w, "func New%s(%s) %s {\n\treturn %s{%s}\n}\n\n",
		name, strings.Join(params, ", "), name, name, strings.Join(fields, ", "))
}

func (g *generator) typeExpr(ty ir.TypeRef) string {
	switch t := ty.(type) {
	case ir.SimpleRef:
		return g.simpleExpr(t.Kind)
	case ir.NamedRef:
		return ExportName(t.Name)
	case ir.EntityRef:
		// entity attributes reference instances, and an entity may refer to
		// itself transitively; a pointer keeps the struct finite
		return "*" + ExportName(t.Name)
	case ir.AggregateRef:
		return "[]" + g.typeExpr(t.Base)
	case ir.EnumerationRef:
		return "int"
	case ir.SelectRef:
		return "any"
	default:
		return "any"
	}
}

func (g *generator) simpleExpr(kind ast.SimpleKind) string {
	switch kind {
	case ast.SimpleNumber, ast.SimpleReal:
		return "float64"
	case ast.SimpleInteger:
		return "int64"
	case ast.SimpleString:
		return "string"
	case ast.SimpleBoolean:
		return "bool"
	case ast.SimpleLogical:
		g.needsLogical = true
		return "Logical"
	case ast.SimpleBinary:
		return "[]byte"
	}
	return "any"
}
