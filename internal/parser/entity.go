package parser

import (
	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/token"
)

// parseEntity parses
//
//	ENTITY id [ABSTRACT SUPERTYPE [...]] [SUBTYPE OF '(' ref {',' ref} ')'] ';'
//	  { attribute ':' [OPTIONAL] type ';' }
//	  [DERIVE ...] [INVERSE ...] [UNIQUE ...] [WHERE ...]
//	END_ENTITY ';'
//
// The DERIVE/INVERSE/UNIQUE/WHERE tails are skipped: the semantic core only
// consumes explicit attributes and the supertype list.
func (p *Parser) parseEntity() (*ast.Entity, bool) {
	start, _ := p.eat(token.KwEntity)
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return nil, false
	}

	entity := &ast.Entity{
		Name: name.Text,
		Span: start.Span.Cover(name.Span),
	}

	if _, ok := p.eat(token.KwAbstract); ok {
		entity.Abstract = true
	}
	if _, ok := p.eat(token.KwSupertype); ok {
		// A SUPERTYPE OF (...) constraint restricts instantiation, not the
		// relation graph; the graph is derived from SUBTYPE clauses alone.
		p.resyncTo(token.KwSubtype, token.Semicolon)
	}
	if _, ok := p.eat(token.KwSubtype); ok {
		if !p.parseSupertypeList(entity) {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}

	for p.at(token.Ident) && !p.enough() {
		attr, ok := p.parseAttribute()
		if !ok {
			return nil, false
		}
		entity.Attributes = append(entity.Attributes, attr)
	}

	switch p.lx.Peek().Kind {
	case token.KwDerive, token.KwInverse, token.KwUnique, token.KwWhere:
		p.resyncTo(token.KwEndEntity)
	}

	if tok, ok := p.expect(token.KwEndEntity, diag.SynExpectEndKeyword); ok {
		entity.Span = entity.Span.Cover(tok.Span)
	} else {
		return nil, false
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return entity, true
}

func (p *Parser) parseSupertypeList(entity *ast.Entity) bool {
	if _, ok := p.expect(token.KwOf, diag.SynExpectOf); !ok {
		return false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectParen); !ok {
		return false
	}
	for {
		ref, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return false
		}
		entity.Supertypes = append(entity.Supertypes, ast.Ref{Name: ref.Text, Span: ref.Span})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if len(entity.Supertypes) == 0 {
		p.errExpected(diag.SynEmptySupertypeList, "at least one supertype reference")
		return false
	}
	_, ok := p.expect(token.RParen, diag.SynExpectParen)
	return ok
}

func (p *Parser) parseAttribute() (*ast.Attribute, bool) {
	name, _ := p.eat(token.Ident)
	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		return nil, false
	}
	attr := &ast.Attribute{
		Name: name.Text,
		Span: name.Span,
	}
	if _, ok := p.eat(token.KwOptional); ok {
		attr.Optional = true
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	attr.Type = ty
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	attr.Span = attr.Span.Cover(p.lastSpan)
	return attr, true
}
