package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordSink struct {
	events []Event
}

func (s *recordSink) OnEvent(evt Event) {
	s.events = append(s.events, evt)
}

func writeSchemaDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestBuildGeneratesGoSources(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"geom.exp": `
SCHEMA geom;
  ENTITY point;
    x : REAL;
    y : REAL;
  END_ENTITY;
END_SCHEMA;`,
	})
	outDir := t.TempDir()
	sink := &recordSink{}

	result, err := Build(context.Background(), &BuildRequest{
		Dir:            dir,
		OutDir:         outDir,
		MaxDiagnostics: 100,
		Progress:       sink,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Generated) != 1 {
		t.Fatalf("expected 1 generated file, got %v", result.Generated)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "geom", "geom.go"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.Contains(string(content), "package geom") || !strings.Contains(string(content), "type Point struct") {
		t.Fatalf("unexpected generated content:\n%s", content)
	}

	var sawQueued, sawEmitDone bool
	for _, evt := range sink.events {
		if evt.Status == StatusQueued && evt.File == "geom.exp" {
			sawQueued = true
		}
		if evt.Stage == StageEmit && evt.Status == StatusDone {
			sawEmitDone = true
		}
	}
	if !sawQueued || !sawEmitDone {
		t.Fatalf("missing progress events: %+v", sink.events)
	}
	if !result.Timings.Has(StageParse) || !result.Timings.Has(StageEmit) {
		t.Fatalf("missing stage timings")
	}
}

func TestBuildCacheRoundTrip(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"demo.exp": "SCHEMA demo; TYPE length = REAL; END_TYPE; END_SCHEMA;",
	})
	outDir := t.TempDir()
	cacheDir := t.TempDir()

	req := &BuildRequest{
		Dir:            dir,
		OutDir:         outDir,
		MaxDiagnostics: 100,
		UseCache:       true,
		CacheDir:       cacheDir,
	}

	first, err := Build(context.Background(), req)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if first.CacheHit {
		t.Fatalf("first build must not hit the cache")
	}

	// wipe the output so only a cache restore can recreate it
	if err := os.RemoveAll(outDir); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	second, err := Build(context.Background(), req)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !second.CacheHit {
		t.Fatalf("second build should restore from cache")
	}
	if _, err := os.Stat(filepath.Join(outDir, "demo", "demo.go")); err != nil {
		t.Fatalf("cached artifact not restored: %v", err)
	}

	// changing the input invalidates the key
	if err := os.WriteFile(filepath.Join(dir, "demo.exp"),
		[]byte("SCHEMA demo; TYPE width = REAL; END_TYPE; END_SCHEMA;"), 0o644); err != nil {
		t.Fatalf("rewrite input: %v", err)
	}
	third, err := Build(context.Background(), req)
	if err != nil {
		t.Fatalf("third Build: %v", err)
	}
	if third.CacheHit {
		t.Fatalf("changed input must miss the cache")
	}
}

func TestBuildDiagnosticsError(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"bad.exp": `
SCHEMA bad;
  ENTITY item;
    v : missing;
  END_ENTITY;
END_SCHEMA;`,
	})

	result, err := Build(context.Background(), &BuildRequest{
		Dir:            dir,
		OutDir:         t.TempDir(),
		MaxDiagnostics: 100,
		UseCache:       true,
		CacheDir:       t.TempDir(),
	})
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("expected ErrDiagnostics, got %v", err)
	}
	if result.Check == nil || !result.Check.Bag.HasErrors() {
		t.Fatalf("diagnostics must be available on the result")
	}
	if len(result.Generated) != 0 {
		t.Fatalf("no files must be generated on a broken build")
	}
}

func TestBuildBrokenStateNeverRestores(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{
		"bad.exp": "SCHEMA bad; ENTITY item; v : missing; END_ENTITY; END_SCHEMA;",
	})
	cacheDir := t.TempDir()
	req := &BuildRequest{
		Dir:            dir,
		OutDir:         t.TempDir(),
		MaxDiagnostics: 100,
		UseCache:       true,
		CacheDir:       cacheDir,
	}

	if _, err := Build(context.Background(), req); !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("expected ErrDiagnostics on first build, got %v", err)
	}
	// the broken marker is cached, but the second run must re-check and
	// report the same diagnostics instead of restoring artifacts
	result, err := Build(context.Background(), req)
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("expected ErrDiagnostics on second build, got %v", err)
	}
	if result.CacheHit {
		t.Fatalf("a broken build must never count as a cache hit")
	}
}

func TestChannelSinkForwardsAndTolerates(t *testing.T) {
	ch := make(chan Event, 1)
	sink := ChannelSink{Ch: ch}
	sink.OnEvent(Event{File: "a.exp", Stage: StageParse, Status: StatusQueued})
	evt := <-ch
	if evt.File != "a.exp" || evt.Stage != StageParse || evt.Status != StatusQueued {
		t.Fatalf("event = %+v", evt)
	}

	// nil channel drops events instead of blocking
	ChannelSink{}.OnEvent(Event{Stage: StageEmit, Status: StatusDone})
}
