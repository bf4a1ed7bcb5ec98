// Package driver orchestrates the pipeline: file discovery, parallel
// lexing/parsing, semantic legalization, caching, and timings.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/lexer"
	"exprc/internal/parser"
	"exprc/internal/source"
	"exprc/internal/token"
)

// TokenizeDirResult holds the tokenization outcome for one file.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult holds the parse outcome for one file.
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Tree   *ast.SyntaxTree
	Bag    *diag.Bag
}

// ListExpressFiles returns the sorted list of *.exp files under dir. The
// sorted order is what makes schema indices (and so error tie-breaks and
// cache keys) deterministic.
func ListExpressFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".exp") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sorted for a deterministic order
	sort.Strings(files)
	return files, nil
}

// loadFiles preloads every path into a fresh FileSet. Load failures are kept
// per path so each worker can turn its own failure into a diagnostic.
func loadFiles(dir string, files []string) (*source.FileSet, map[string]source.FileID, map[string]error) {
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	return fileSet, fileIDs, loadErrors
}

func loadFailureBag(maxDiagnostics int, loadErr error) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + loadErr.Error(),
		Primary:  source.Span{},
	})
	return bag
}

// TokenizeDir tokenizes every *.exp file under dir in parallel.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListExpressFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet, fileIDs, loadErrors := loadFiles(dir, files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index, no mutex needed
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					results[i] = TokenizeDirResult{
						Path: path,
						Bag:  loadFailureBag(maxDiagnostics, loadErr),
					}
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				bag := diag.NewBag(maxDiagnostics)
				tokens := lexer.Tokenize(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

				results[i] = TokenizeDirResult{
					Path:   path,
					FileID: fileID,
					Tokens: tokens,
					Bag:    bag,
				}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir parses every *.exp file under dir in parallel.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListExpressFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet, fileIDs, loadErrors := loadFiles(dir, files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	// each goroutine writes only its own index, no mutex needed
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					results[i] = ParseDirResult{
						Path: path,
						Bag:  loadFailureBag(maxDiagnostics, loadErr),
					}
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				bag := diag.NewBag(maxDiagnostics)
				opts := parser.Options{
					Reporter:  &diag.BagReporter{Bag: bag},
					MaxErrors: maxErrors,
				}
				result := parser.Parse(file, opts)

				results[i] = ParseDirResult{
					Path:   path,
					FileID: fileID,
					Tree:   result.Tree,
					Bag:    bag,
				}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
