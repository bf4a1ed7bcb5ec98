package source

import "testing"

func TestSpanEmptyAndLen(t *testing.T) {
	s := Span{File: 0, Start: 4, End: 4}
	if !s.Empty() {
		t.Fatalf("expected empty span")
	}
	s.End = 10
	if s.Empty() {
		t.Fatalf("expected non-empty span")
	}
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 10 {
		t.Fatalf("Cover = %v, want 1:2-10", got)
	}

	// different files: untouched
	c := Span{File: 2, Start: 0, End: 100}
	got = a.Cover(c)
	if got != a {
		t.Fatalf("Cover across files = %v, want %v", got, a)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("schema demo;\nentity point;\nend_entity;\n")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{7, LineCol{1, 8}},
		{13, LineCol{2, 1}},
		{20, LineCol{2, 8}},
		{27, LineCol{3, 1}},
	}
	for _, tc := range cases {
		got := toLineCol(idx, tc.off)
		if got != tc.want {
			t.Fatalf("toLineCol(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestFileSetAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("demo.exp", []byte("schema demo;\nend_schema;\n"))
	f := fs.Get(id)
	if f.Path != "demo.exp" {
		t.Fatalf("path = %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}

	start, end := fs.Resolve(Span{File: id, Start: 13, End: 23})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %v", start)
	}
	if end.Line != 2 || end.Col != 11 {
		t.Fatalf("end = %v", end)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("out = %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("unexpected change: %q", out)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("demo.exp", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q", got)
	}
}
