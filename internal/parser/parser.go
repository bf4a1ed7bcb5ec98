// Package parser builds the EXPRESS syntax tree from a token stream.
//
// The grammar subset covers schema, entity, and type declarations plus the
// USE/REFERENCE interface clauses. FUNCTION, PROCEDURE, RULE, and CONSTANT
// blocks are recognized and skipped with a diagnostic; WHERE/DERIVE/INVERSE
// and uniqueness clauses inside entities are skipped silently (they carry no
// information the semantic core consumes).
package parser

import (
	"fmt"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/lexer"
	"exprc/internal/source"
	"exprc/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result is the outcome of parsing one file.
type Result struct {
	Tree *ast.SyntaxTree
	Bag  *diag.Bag
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	errors   uint
	lastSpan source.Span
}

// ParseFile is the entry point for parsing one file. It requires an already
// constructed lexer over the file.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	tree := &ast.SyntaxTree{}
	for !p.at(token.EOF) && !p.enough() {
		if p.at(token.KwSchema) {
			if schema, ok := p.parseSchema(); ok {
				tree.Schemas = append(tree.Schemas, schema)
			} else {
				p.resyncTo(token.KwSchema)
			}
			continue
		}
		p.errExpected(diag.SynUnexpectedTopLevel, "SCHEMA")
		p.resyncTo(token.KwSchema)
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Tree: tree, Bag: bag}
}

// Parse lexes and parses a file in one call.
func Parse(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(lx, opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) bump() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// eat consumes the next token when it matches, reporting success.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or reports a diagnostic at the current
// position.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if tok, ok := p.eat(k); ok {
		return tok, true
	}
	p.errExpected(code, k.String())
	return token.Token{}, false
}

func (p *Parser) errExpected(code diag.Code, what string) {
	p.errors++
	got := p.lx.Peek()
	msg := fmt.Sprintf("expected %s, found %s", what, describe(got))
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, got.Span, msg).Emit()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.RealLit, token.StringLit:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

// resyncTo drops tokens until one of the kinds (or EOF) is at the front.
func (p *Parser) resyncTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.bump()
	}
}

// skipPast drops tokens until just past the terminator kind and its trailing
// semicolon, used for constructs outside the supported subset.
func (p *Parser) skipPast(end token.Kind) {
	p.resyncTo(end)
	p.eat(end)
	p.eat(token.Semicolon)
}
