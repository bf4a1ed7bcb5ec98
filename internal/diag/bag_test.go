package diag

import (
	"testing"

	"exprc/internal/source"
)

func mk(code Code, sev Severity, file source.FileID, start uint32) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  "msg",
		Primary:  source.Span{File: file, Start: start, End: start + 1},
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(mk(SynUnexpectedToken, SevError, 0, 0)) {
		t.Fatalf("first add rejected")
	}
	if !b.Add(mk(SynUnexpectedToken, SevError, 0, 1)) {
		t.Fatalf("second add rejected")
	}
	if b.Add(mk(SynUnexpectedToken, SevError, 0, 2)) {
		t.Fatalf("third add accepted past limit")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(mk(LexInfo, SevInfo, 0, 0))
	if b.HasErrors() {
		t.Fatalf("info-only bag reports errors")
	}
	b.Add(mk(SemTypeNotFound, SevError, 0, 1))
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(mk(SynExpectSemicolon, SevError, 1, 5))
	b.Add(mk(SynUnexpectedToken, SevError, 0, 9))
	b.Add(mk(LexUnknownChar, SevError, 0, 2))
	b.Sort()

	items := b.Items()
	if items[0].Code != LexUnknownChar || items[1].Code != SynUnexpectedToken || items[2].Code != SynExpectSemicolon {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	b.Add(mk(SynUnexpectedToken, SevError, 0, 3))
	b.Add(mk(SynUnexpectedToken, SevError, 0, 3))
	b.Add(mk(SynUnexpectedToken, SevError, 0, 4))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(4)
	r := &BagReporter{Bag: b}
	rb := ReportError(r, SynExpectIdentifier, source.Span{}, "expected identifier")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}
