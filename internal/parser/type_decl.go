package parser

import (
	"strconv"

	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/token"
)

// parseTypeDecl parses TYPE id = underlying ';' [WHERE ...] END_TYPE ';'.
func (p *Parser) parseTypeDecl() (*ast.TypeDecl, bool) {
	start, _ := p.eat(token.KwType)
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Equals, diag.SynExpectEquals); !ok {
		return nil, false
	}
	underlying, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}

	if p.at(token.KwWhere) {
		p.resyncTo(token.KwEndType)
	}

	decl := &ast.TypeDecl{
		Name:       name.Text,
		Underlying: underlying,
		Span:       start.Span,
	}
	if tok, ok := p.expect(token.KwEndType, diag.SynExpectEndKeyword); ok {
		decl.Span = decl.Span.Cover(tok.Span)
	} else {
		return nil, false
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return decl, true
}

// parseType parses a parameter type or an underlying type expression.
func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwNumber, token.KwReal, token.KwInteger, token.KwString,
		token.KwBoolean, token.KwLogical, token.KwBinary:
		p.bump()
		return &ast.SimpleType{Kind: simpleKindOf(tok.Kind), Span: tok.Span}, true

	case token.Ident:
		p.bump()
		return &ast.NamedType{Name: tok.Text, Span: tok.Span}, true

	case token.KwEnumeration:
		return p.parseEnumeration()

	case token.KwSelect:
		return p.parseSelect()

	case token.KwSet, token.KwList, token.KwBag, token.KwArray:
		return p.parseAggregate()

	default:
		p.errExpected(diag.SynExpectType, "a type")
		return nil, false
	}
}

func simpleKindOf(k token.Kind) ast.SimpleKind {
	switch k {
	case token.KwNumber:
		return ast.SimpleNumber
	case token.KwReal:
		return ast.SimpleReal
	case token.KwInteger:
		return ast.SimpleInteger
	case token.KwString:
		return ast.SimpleString
	case token.KwBoolean:
		return ast.SimpleBoolean
	case token.KwLogical:
		return ast.SimpleLogical
	default:
		return ast.SimpleBinary
	}
}

func (p *Parser) parseEnumeration() (ast.Type, bool) {
	start, _ := p.eat(token.KwEnumeration)
	if _, ok := p.expect(token.KwOf, diag.SynExpectOf); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectParen); !ok {
		return nil, false
	}
	enum := &ast.EnumerationType{Span: start.Span}
	for {
		item, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return nil, false
		}
		enum.Items = append(enum.Items, item.Text)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if len(enum.Items) == 0 {
		p.errExpected(diag.SynEmptyEnumeration, "at least one enumeration item")
		return nil, false
	}
	end, ok := p.expect(token.RParen, diag.SynExpectParen)
	if !ok {
		return nil, false
	}
	enum.Span = enum.Span.Cover(end.Span)
	return enum, true
}

func (p *Parser) parseSelect() (ast.Type, bool) {
	start, _ := p.eat(token.KwSelect)
	if _, ok := p.expect(token.LParen, diag.SynExpectParen); !ok {
		return nil, false
	}
	sel := &ast.SelectType{Span: start.Span}
	for {
		ref, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return nil, false
		}
		sel.Members = append(sel.Members, ast.Ref{Name: ref.Text, Span: ref.Span})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if len(sel.Members) == 0 {
		p.errExpected(diag.SynEmptySelect, "at least one select member")
		return nil, false
	}
	end, ok := p.expect(token.RParen, diag.SynExpectParen)
	if !ok {
		return nil, false
	}
	sel.Span = sel.Span.Cover(end.Span)
	return sel, true
}

// parseAggregate parses SET|LIST|BAG|ARRAY ['[' bound ':' bound ']'] OF
// [UNIQUE] base.
func (p *Parser) parseAggregate() (ast.Type, bool) {
	start := p.bump()
	agg := &ast.AggregateType{Span: start.Span}
	switch start.Kind {
	case token.KwSet:
		agg.Kind = ast.AggSet
	case token.KwList:
		agg.Kind = ast.AggList
	case token.KwBag:
		agg.Kind = ast.AggBag
	case token.KwArray:
		agg.Kind = ast.AggArray
	}

	if _, ok := p.eat(token.LBracket); ok {
		bound, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		agg.Bound = bound
	}

	if _, ok := p.expect(token.KwOf, diag.SynExpectOf); !ok {
		return nil, false
	}
	if _, ok := p.eat(token.KwUnique); ok {
		agg.Unique = true
	}

	base, ok := p.parseType()
	if !ok {
		return nil, false
	}
	agg.Base = base
	agg.Span = agg.Span.Cover(p.lastSpan)
	return agg, true
}

// parseBound parses the remainder of '[' bound ':' bound ']'; the opening
// bracket is already consumed.
func (p *Parser) parseBound() (*ast.Bound, bool) {
	bound := &ast.Bound{Span: p.lastSpan}
	lower, ok := p.parseBoundValue()
	if !ok {
		return nil, false
	}
	bound.Lower = lower
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		return nil, false
	}
	upper, ok := p.parseBoundValue()
	if !ok {
		return nil, false
	}
	bound.Upper = upper
	end, ok := p.expect(token.RBracket, diag.SynExpectBracket)
	if !ok {
		return nil, false
	}
	bound.Span = bound.Span.Cover(end.Span)
	return bound, true
}

func (p *Parser) parseBoundValue() (ast.BoundValue, bool) {
	if _, ok := p.eat(token.Question); ok {
		return ast.BoundValue{Indeterminate: true}, true
	}
	tok, ok := p.expect(token.IntLit, diag.SynExpectType)
	if !ok {
		return ast.BoundValue{}, false
	}
	value, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		p.errors++
		if p.opts.Reporter != nil {
			diag.ReportError(p.opts.Reporter, diag.SynUnexpectedToken, tok.Span,
				"bound does not fit in 64 bits").Emit()
		}
		return ast.BoundValue{}, false
	}
	return ast.BoundValue{Value: value}, true
}
