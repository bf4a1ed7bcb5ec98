package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/ir"
	"exprc/internal/observ"
	"exprc/internal/source"
)

// CheckOptions configures CheckDir.
type CheckOptions struct {
	MaxDiagnostics int
	Jobs           int
	EnableTimings  bool
	PhaseObserver  PhaseObserver
}

// CheckResult carries everything the later stages need: the loaded sources,
// the merged diagnostics, and (when legalization succeeded) the IR.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []string
	Bag     *diag.Bag
	IR      *ir.IR
	Timing  observ.Report
}

// CheckDir parses every *.exp file under dir and legalizes the combined
// schema set. Syntax diagnostics from all files are merged; legalization is
// not attempted when any file failed to parse. Schemas are legalized in
// parallel, and when several of them fail, the error of the schema with the
// lowest declaration index is the one reported, so output does not depend on
// goroutine scheduling.
func CheckDir(ctx context.Context, dir string, opts *CheckOptions) (*CheckResult, error) {
	if opts == nil {
		opts = &CheckOptions{}
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	timer := observ.NewTimer()
	observe := func(name string, status PhaseStatus, elapsed time.Duration) {
		if opts.PhaseObserver != nil {
			opts.PhaseObserver(PhaseEvent{Name: name, Status: status, Elapsed: elapsed})
		}
	}

	result := &CheckResult{Bag: diag.NewBag(maxDiagnostics)}

	observe("parse", PhaseStart, 0)
	parseIdx := timer.Begin("parse")
	parseStart := time.Now()
	fileSet, parsed, err := ParseDir(ctx, dir, maxDiagnostics, opts.Jobs)
	timer.End(parseIdx, fmt.Sprintf("%d files", len(parsed)))
	observe("parse", PhaseEnd, time.Since(parseStart))
	if err != nil {
		return result, err
	}
	result.FileSet = fileSet

	// combined tree across files, in sorted file order
	combined := &ast.SyntaxTree{}
	for _, res := range parsed {
		result.Files = append(result.Files, res.Path)
		result.Bag.Merge(res.Bag)
		if res.Tree != nil {
			combined.Schemas = append(combined.Schemas, res.Tree.Schemas...)
		}
	}
	if result.Bag.HasErrors() {
		result.Timing = timer.Report()
		return result, nil
	}

	observe("legalize", PhaseStart, 0)
	legalizeStart := time.Now()
	legalizeIdx := timer.Begin("legalize")
	out, semErr := legalizeParallel(ctx, combined, opts.Jobs)
	timer.End(legalizeIdx, fmt.Sprintf("%d schemas", len(combined.Schemas)))
	observe("legalize", PhaseEnd, time.Since(legalizeStart))
	if semErr != nil {
		result.Bag.Add(semanticDiagnostic(semErr, semanticSpan(combined, semErr)))
		result.Timing = timer.Report()
		return result, nil
	}
	result.IR = out

	if opts.EnableTimings {
		result.Timing = timer.Report()
		appendTimingDiagnostic(result.Bag, timingPayload{
			Kind:    "check",
			Path:    dir,
			TotalMS: result.Timing.TotalMS,
			Phases:  result.Timing.Phases,
		})
	} else {
		result.Timing = timer.Report()
	}
	return result, nil
}

// legalizeParallel builds the namespace and the inheritance graph, then
// legalizes each schema on its own goroutine. On failure the returned error
// is the one from the schema with the lowest index.
func legalizeParallel(ctx context.Context, tree *ast.SyntaxTree, jobs int) (*ir.IR, error) {
	ns, err := ir.NewNamespace(tree)
	if err != nil {
		return nil, err
	}
	graph, err := ir.NewSubSuperGraph(ns, tree)
	if err != nil {
		return nil, err
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(tree.Schemas) == 0 {
		return &ir.IR{}, nil
	}

	schemas := make([]ir.Schema, len(tree.Schemas))
	errs := make([]error, len(tree.Schemas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(tree.Schemas)))

	for i, schema := range tree.Schemas {
		g.Go(func(i int, schema *ast.Schema) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				schemas[i], errs[i] = ir.LegalizeSchema(ns, graph, ir.RootScope(), schema)
				return nil
			}
		}(i, schema))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &ir.IR{Schemas: schemas}, nil
}

// semanticCode maps legalization errors onto diagnostic codes.
func semanticCode(err error) diag.Code {
	var (
		notFound *ir.TypeNotFoundError
		invalid  *ir.InvalidPathError
		dup      *ir.DuplicateDeclError
	)
	switch {
	case errors.As(err, &notFound):
		return diag.SemTypeNotFound
	case errors.As(err, &invalid):
		return diag.SemInvalidPath
	case errors.As(err, &dup):
		return diag.SemDuplicateDecl
	}
	return diag.SemInfo
}

func semanticDiagnostic(err error, primary source.Span) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     semanticCode(err),
		Message:  err.Error(),
		Primary:  primary,
	}
}

// semanticSpan points the diagnostic at the schema that owns the failing
// declaration, when the error carries enough scope to find it.
func semanticSpan(tree *ast.SyntaxTree, err error) source.Span {
	schemaName := ""

	var notFound *ir.TypeNotFoundError
	var invalid *ir.InvalidPathError
	var dup *ir.DuplicateDeclError
	switch {
	case errors.As(err, &notFound):
		schemaName = schemaOf(notFound.Scope)
	case errors.As(err, &invalid):
		schemaName = schemaOf(invalid.Path.Scope)
	case errors.As(err, &dup):
		schemaName = schemaOf(dup.Path.Scope)
		if schemaName == "" {
			// duplicate schemas collide at the root scope
			schemaName = dup.Path.Name
		}
	}
	if schemaName == "" {
		return source.Span{}
	}
	for _, schema := range tree.Schemas {
		if fold(schema.Name) == schemaName {
			return schema.Span
		}
	}
	return source.Span{}
}

func schemaOf(scope ir.Scope) string {
	for !scope.IsRoot() {
		parent, ok := scope.Parent()
		if !ok {
			break
		}
		if parent.IsRoot() {
			return scope.LeafName()
		}
		scope = parent
	}
	return ""
}

func fold(name string) string {
	return strings.ToLower(name)
}
