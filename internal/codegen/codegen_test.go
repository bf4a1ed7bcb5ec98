package codegen

import (
	"strings"
	"testing"

	"exprc/internal/ir"
	"exprc/internal/parser"
	"exprc/internal/source"
)

func legalize(t *testing.T, input string) *ir.IR {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.exp", []byte(input))
	res := parser.Parse(fs.Get(id), parser.Options{})
	out, err := ir.FromSyntaxTree(res.Tree)
	if err != nil {
		t.Fatalf("legalize: %v", err)
	}
	return out
}

// flatten collapses all whitespace runs so assertions are independent of
// gofmt's column alignment.
func flatten(src []byte) string {
	return strings.Join(strings.Fields(string(src)), " ")
}

func generate(t *testing.T, input string) string {
	t.Helper()
	out := legalize(t, input)
	src, err := GenerateSchema(out.Schemas[0], Options{})
	if err != nil {
		t.Fatalf("GenerateSchema: %v", err)
	}
	return flatten(src)
}

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"point":              "Point",
		"point_set":          "PointSet",
		"a":                  "A",
		"cartesian_point_3d": "CartesianPoint3d",
	}
	for in, want := range cases {
		if got := ExportName(in); got != want {
			t.Fatalf("ExportName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateEntityStruct(t *testing.T) {
	code := generate(t, `
SCHEMA geometry;
  ENTITY point;
    x : REAL;
    y : REAL;
    label : OPTIONAL STRING;
  END_ENTITY;
END_SCHEMA;`)

	if !strings.Contains(code, "package geometry") {
		t.Fatalf("missing package clause:\n%s", code)
	}
	if !strings.Contains(code, "type Point struct { X float64 Y float64 Label *string }") {
		t.Fatalf("missing struct:\n%s", code)
	}
	// constructor parameters follow declaration order
	if !strings.Contains(code, "func NewPoint(x float64, y float64, label *string) Point { return Point{X: x, Y: y, Label: label} }") {
		t.Fatalf("missing constructor:\n%s", code)
	}
}

func TestGenerateEnumAndAlias(t *testing.T) {
	code := generate(t, `
SCHEMA demo;
  TYPE length = REAL; END_TYPE;
  TYPE color = ENUMERATION OF (red, green, blue); END_TYPE;
END_SCHEMA;`)

	if !strings.Contains(code, "type Length float64") {
		t.Fatalf("missing alias:\n%s", code)
	}
	if !strings.Contains(code, "type Color int") {
		t.Fatalf("missing enum type:\n%s", code)
	}
	if !strings.Contains(code, "ColorRed Color = iota ColorGreen ColorBlue") {
		t.Fatalf("missing enum constants:\n%s", code)
	}
}

func TestGenerateSelectInterface(t *testing.T) {
	code := generate(t, `
SCHEMA demo;
  ENTITY point; END_ENTITY;
  TYPE length = REAL; END_TYPE;
  TYPE pick = SELECT (point, length); END_TYPE;
END_SCHEMA;`)

	if !strings.Contains(code, "type Pick interface { isPick() }") {
		t.Fatalf("missing select interface:\n%s", code)
	}
	if !strings.Contains(code, "func (Point) isPick() {}") || !strings.Contains(code, "func (Length) isPick() {}") {
		t.Fatalf("missing marker methods:\n%s", code)
	}
}

func TestGenerateAggregatesAndEntityRefs(t *testing.T) {
	code := generate(t, `
SCHEMA demo;
  ENTITY node;
    children : SET OF node;
    weights : LIST [1:?] OF REAL;
  END_ENTITY;
END_SCHEMA;`)

	if !strings.Contains(code, "Children []*Node") {
		t.Fatalf("entity references must be pointers:\n%s", code)
	}
	if !strings.Contains(code, "Weights []float64") {
		t.Fatalf("missing aggregate field:\n%s", code)
	}
}

func TestGenerateLogical(t *testing.T) {
	code := generate(t, `
SCHEMA demo;
  ENTITY flaggy;
    state : LOGICAL;
  END_ENTITY;
END_SCHEMA;`)

	if !strings.Contains(code, "type Logical int8") {
		t.Fatalf("missing Logical declaration:\n%s", code)
	}
	if !strings.Contains(code, "LogicalUnknown") {
		t.Fatalf("missing Logical constants:\n%s", code)
	}
}

func TestGoKeywordAttribute(t *testing.T) {
	code := generate(t, `
SCHEMA demo;
  ENTITY decl;
    range : STRING;
  END_ENTITY;
END_SCHEMA;`)

	if !strings.Contains(code, "func NewDecl(range_ string) Decl { return Decl{Range: range_} }") {
		t.Fatalf("keyword parameter not escaped:\n%s", code)
	}
}

func TestPackageNameOverride(t *testing.T) {
	out := legalize(t, "SCHEMA geometric_model; END_SCHEMA;")
	src, err := GenerateSchema(out.Schemas[0], Options{PackageName: "geom"})
	if err != nil {
		t.Fatalf("GenerateSchema: %v", err)
	}
	if !strings.Contains(flatten(src), "package geom") {
		t.Fatalf("override ignored:\n%s", src)
	}

	src, err = GenerateSchema(out.Schemas[0], Options{})
	if err != nil {
		t.Fatalf("GenerateSchema: %v", err)
	}
	if !strings.Contains(flatten(src), "package geometricmodel") {
		t.Fatalf("default package name wrong:\n%s", src)
	}
}
