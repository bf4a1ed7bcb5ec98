// Package lexer scans EXPRESS schema text into tokens.
//
// The scanner is byte-oriented: EXPRESS source is ASCII by the standard, so
// any byte >= 0x80 is reported as an unknown character.
package lexer

import (
	"exprc/internal/diag"
	"exprc/internal/source"
	"exprc/internal/token"
)

type Options struct {
	// Reporter receives lexical diagnostics; nil means errors are dropped
	// (scanning continues either way).
	Reporter diag.Reporter
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Tokenize drains the lexer into a slice, EOF token included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// skipTrivia consumes whitespace, "--" line comments and "(* *)" block
// comments (block comments nest per ISO 10303-11 §6.1.1).
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '-':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '-' || b1 != '-' {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case ch == '(':
			_, b1, ok := lx.cursor.Peek2()
			if !ok || b1 != '*' {
				return
			}
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // (
	lx.cursor.Bump() // *
	depth := 1
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok {
			break
		}
		if b0 == '(' && b1 == '*' {
			depth++
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b0 == '*' && b1 == ')' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		lx.cursor.Bump()
	}
	// ran off the end of the file
	for !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedComment, lx.cursor.SpanFrom(mark), "unterminated block comment")
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(mark)
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	kind := token.IntLit
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDigit(b1) {
		kind = token.RealLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		kind = token.RealLit
		lx.cursor.Bump()
		if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
			lx.cursor.Bump()
		}
		if !isDigit(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(mark)
			lx.report(diag.LexBadNumber, sp, "exponent has no digits")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
		}
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
}

// scanString scans a 'quoted' literal; '' inside is an escaped quote.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\n' {
			break
		}
		if ch == '\'' {
			if lx.cursor.Peek() == '\'' {
				lx.cursor.Bump()
				continue
			}
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
		}
	}
	sp := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
}

func (lx *Lexer) scanPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case ';':
		kind = token.Semicolon
	case ':':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.Assign
		} else {
			kind = token.Colon
		}
	case ',':
		kind = token.Comma
	case '=':
		kind = token.Equals
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '?':
		kind = token.Question
	case '.':
		kind = token.Dot
	case '\\':
		kind = token.Backslash
	case '*':
		if lx.cursor.Peek() == '*' {
			lx.cursor.Bump()
		}
		kind = token.Operator
	case '<':
		// <=, <> and <* fold into one operator token
		if next := lx.cursor.Peek(); next == '=' || next == '>' || next == '*' {
			lx.cursor.Bump()
		}
		kind = token.Operator
	case '>':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
		}
		kind = token.Operator
	case '|':
		if lx.cursor.Peek() == '|' {
			lx.cursor.Bump()
		}
		kind = token.Operator
	case '+', '-', '/', '{', '}':
		kind = token.Operator
	default:
		sp := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexUnknownChar, sp, "unknown character "+lx.cursor.TextFrom(mark))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(mark)}
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || b == '_' || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
