package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"exprc/internal/project"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := project.HashBytes([]byte("inputs"))
	payload := &DiskPayload{
		SourceHash:  key,
		SchemaNames: []string{"geom"},
		FileNames:   []string{"geom.go"},
		Sources:     [][]byte{[]byte("package geom\n")},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.Schema != diskCacheSchemaVersion {
		t.Fatalf("Put must stamp the schema version, got %d", got.Schema)
	}
	if got.SourceHash != key || len(got.SchemaNames) != 1 || got.SchemaNames[0] != "geom" {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if len(got.Sources) != 1 || !bytes.Equal(got.Sources[0], payload.Sources[0]) {
		t.Fatalf("generated source not preserved")
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	var got DiskPayload
	ok, err := cache.Get(project.HashBytes([]byte("absent")), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss")
	}
}

func TestDiskCacheRejectsStaleSchema(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	// plant an entry written by an older format, bypassing Put's stamping
	key := project.HashBytes([]byte("stale"))
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	stale, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(p, stale, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var got DiskPayload
	ok, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("stale schema version must read as a miss")
	}
}

func TestSourceDigestStableAcrossOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.exp": "SCHEMA a; END_SCHEMA;",
		"b.exp": "SCHEMA b; END_SCHEMA;",
	})
	res, err := CheckDir(context.Background(), dir, &CheckOptions{MaxDiagnostics: 100})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	forward := SourceDigest(res.FileSet, res.Files)
	reversed := make([]string, len(res.Files))
	for i, p := range res.Files {
		reversed[len(res.Files)-1-i] = p
	}
	backward := SourceDigest(res.FileSet, reversed)
	if forward != backward {
		t.Fatalf("digest must not depend on input order")
	}

	var zero project.Digest
	if forward == zero {
		t.Fatalf("digest must not be zero")
	}
}
