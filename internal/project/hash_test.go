package project

import "testing"

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("SCHEMA demo; END_SCHEMA;"))
	b := HashBytes([]byte("SCHEMA demo; END_SCHEMA;"))
	if a != b {
		t.Fatalf("same content produced different digests")
	}
	c := HashBytes([]byte("SCHEMA other; END_SCHEMA;"))
	if a == c {
		t.Fatalf("different content produced the same digest")
	}
}

func TestCombineOrderSensitive(t *testing.T) {
	base := HashBytes([]byte("base"))
	p1 := HashBytes([]byte("one"))
	p2 := HashBytes([]byte("two"))

	if Combine(base, p1, p2) == Combine(base, p2, p1) {
		t.Fatalf("combine must be order sensitive")
	}
	if Combine(base) == base {
		t.Fatalf("combine must rehash even without parts")
	}
}
