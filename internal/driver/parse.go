package driver

import (
	"fortio.org/safecast"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/parser"
	"exprc/internal/source"
)

// ParseResult holds the parse outcome for a single file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.SyntaxTree
	Bag     *diag.Bag
}

// Parse loads one file and parses it into a syntax tree.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}
	result := parser.Parse(file, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    result.Tree,
		Bag:     bag,
	}, nil
}
