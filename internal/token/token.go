// Package token defines lexical token kinds for the EXPRESS language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Keywords are case-insensitive; Text keeps the source spelling.
//   - Simple type names (INTEGER, REAL, ...) are keywords, not identifiers.
package token

import (
	"exprc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit:
		return true
	default:
		return false
	}
}

// IsSimpleType reports whether the token names an EXPRESS simple type.
func (t Token) IsSimpleType() bool {
	switch t.Kind {
	case KwNumber, KwReal, KwInteger, KwString, KwBoolean, KwLogical, KwBinary:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwSchema && t.Kind <= KwBinary
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
