package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exprc/internal/codegen"
	"exprc/internal/driver"
	"exprc/internal/observ"
	"exprc/internal/project"
	"exprc/internal/source"
)

// ErrDiagnostics signals that the build stopped because the sources carried
// error diagnostics. The caller renders the bag from BuildResult.Check.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// BuildRequest configures the build pipeline.
type BuildRequest struct {
	Dir            string
	OutDir         string
	MaxDiagnostics int
	Jobs           int
	UseCache       bool
	CacheDir       string // overrides the XDG cache location when set
	EnableTimings  bool
	Progress       ProgressSink
	Files          []string // display names for progress; derived from Dir when empty
}

// BuildResult captures build artifacts and stage timings.
type BuildResult struct {
	Check     *driver.CheckResult
	Generated []string
	CacheHit  bool
	Timings   Timings
}

// Build runs parsing, legalization, and Go code emission for every schema
// under req.Dir. With caching enabled, a build whose inputs digest to a known
// key restores the generated files without reparsing.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.Dir == "" {
		return result, fmt.Errorf("missing source directory")
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = filepath.Join(req.Dir, "gen")
	}

	files, err := driver.ListExpressFiles(req.Dir)
	if err != nil {
		return result, err
	}
	displayFiles := req.Files
	if len(displayFiles) == 0 {
		displayFiles = displayNames(files, req.Dir)
	}
	emitQueued(req.Progress, displayFiles)

	var cache *driver.DiskCache
	var cacheKey project.Digest
	if req.UseCache && len(files) > 0 {
		cache, cacheKey = openCache(req, files)
	}

	if cache != nil {
		var payload driver.DiskPayload
		hit, err := cache.Get(cacheKey, &payload)
		if err == nil && hit && !payload.Broken && payload.SourceHash == cacheKey {
			generated, restoreErr := restorePayload(outDir, &payload)
			if restoreErr == nil {
				result.Generated = generated
				result.CacheHit = true
				for _, stage := range []Stage{StageParse, StageLegalize, StageEmit} {
					emitStage(req.Progress, displayFiles, stage, StatusDone, nil, 0)
				}
				return result, nil
			}
			// fall through to a full build when restoring fails
		}
	}

	check, err := driver.CheckDir(ctx, req.Dir, &driver.CheckOptions{
		MaxDiagnostics: req.MaxDiagnostics,
		Jobs:           req.Jobs,
		EnableTimings:  req.EnableTimings,
		PhaseObserver:  stageObserver(req.Progress, displayFiles),
	})
	result.Check = check
	recordCheckTimings(&result, check)
	if err != nil {
		emitStage(req.Progress, displayFiles, StageParse, StatusError, err, 0)
		return result, err
	}

	if check.Bag.HasErrors() {
		if cache != nil {
			// remember the broken state so stale artifacts never restore
			_ = cache.Put(cacheKey, &driver.DiskPayload{SourceHash: cacheKey, Broken: true})
		}
		emitStage(req.Progress, displayFiles, StageLegalize, StatusError, ErrDiagnostics, 0)
		return result, ErrDiagnostics
	}

	emitStage(req.Progress, displayFiles, StageEmit, StatusWorking, nil, 0)
	emitStart := time.Now()

	payload := driver.DiskPayload{SourceHash: cacheKey}
	for _, schema := range check.IR.Schemas {
		src, genErr := codegen.GenerateSchema(schema, codegen.Options{})
		if genErr != nil {
			emitStage(req.Progress, displayFiles, StageEmit, StatusError, genErr, 0)
			return result, genErr
		}
		pkg := strings.ReplaceAll(schema.Name, "_", "")
		rel := filepath.Join(pkg, pkg+".go")
		path := filepath.Join(outDir, rel)
		if writeErr := writeGenerated(path, src); writeErr != nil {
			emitStage(req.Progress, displayFiles, StageEmit, StatusError, writeErr, 0)
			return result, writeErr
		}
		result.Generated = append(result.Generated, path)
		payload.SchemaNames = append(payload.SchemaNames, schema.Name)
		payload.FileNames = append(payload.FileNames, filepath.ToSlash(rel))
		payload.Sources = append(payload.Sources, src)
	}

	if cache != nil {
		_ = cache.Put(cacheKey, &payload)
	}

	elapsed := time.Since(emitStart)
	result.Timings.Set(StageEmit, elapsed)
	emitStage(req.Progress, displayFiles, StageEmit, StatusDone, nil, elapsed)
	return result, nil
}

// openCache opens the disk cache and digests the inputs. Any failure
// disables caching for this build rather than failing it.
func openCache(req *BuildRequest, files []string) (*driver.DiskCache, project.Digest) {
	var cache *driver.DiskCache
	var err error
	if req.CacheDir != "" {
		cache, err = driver.OpenDiskCacheAt(req.CacheDir)
	} else {
		cache, err = driver.OpenDiskCache("exprc")
	}
	if err != nil {
		return nil, project.Digest{}
	}

	fs := source.NewFileSetWithBase(req.Dir)
	for _, path := range files {
		if _, loadErr := fs.Load(path); loadErr != nil {
			return nil, project.Digest{}
		}
	}
	return cache, driver.SourceDigest(fs, files)
}

func restorePayload(outDir string, payload *driver.DiskPayload) ([]string, error) {
	if len(payload.FileNames) != len(payload.Sources) {
		return nil, fmt.Errorf("malformed cache payload")
	}
	generated := make([]string, 0, len(payload.FileNames))
	for i, rel := range payload.FileNames {
		path := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := writeGenerated(path, payload.Sources[i]); err != nil {
			return nil, err
		}
		generated = append(generated, path)
	}
	return generated, nil
}

func writeGenerated(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

// stageObserver maps driver phase events onto progress stages.
func stageObserver(sink ProgressSink, files []string) driver.PhaseObserver {
	if sink == nil {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		var stage Stage
		switch ev.Name {
		case "parse":
			stage = StageParse
		case "legalize":
			stage = StageLegalize
		default:
			return
		}
		status := StatusWorking
		if ev.Status == driver.PhaseEnd {
			status = StatusDone
		}
		emitStage(sink, files, stage, status, nil, ev.Elapsed)
	}
}

func recordCheckTimings(result *BuildResult, check *driver.CheckResult) {
	if result == nil || check == nil {
		return
	}
	result.Timings.Set(StageParse, phaseDuration(check.Timing, "parse"))
	result.Timings.Set(StageLegalize, phaseDuration(check.Timing, "legalize"))
}

func phaseDuration(report observ.Report, name string) time.Duration {
	for _, phase := range report.Phases {
		if phase.Name == name {
			return time.Duration(phase.DurationMS * float64(time.Millisecond))
		}
	}
	return 0
}

func displayNames(files []string, baseDir string) []string {
	names := make([]string, 0, len(files))
	for _, file := range files {
		name := file
		if rel, err := filepath.Rel(baseDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			name = rel
		}
		names = append(names, filepath.ToSlash(name))
	}
	return names
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
