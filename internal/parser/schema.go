package parser

import (
	"exprc/internal/ast"
	"exprc/internal/diag"
	"exprc/internal/token"
)

// parseSchema parses SCHEMA id; {interface} {declaration} END_SCHEMA;
func (p *Parser) parseSchema() (*ast.Schema, bool) {
	start, _ := p.eat(token.KwSchema)
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}

	schema := &ast.Schema{
		Name: name.Text,
		Span: start.Span,
	}

	for !p.at(token.EOF) && !p.at(token.KwEndSchema) && !p.enough() {
		switch p.lx.Peek().Kind {
		case token.KwUse, token.KwReference:
			if use, ok := p.parseUseClause(); ok {
				schema.Uses = append(schema.Uses, use)
			} else {
				p.resyncTo(token.Semicolon)
				p.eat(token.Semicolon)
			}
		case token.KwEntity:
			if entity, ok := p.parseEntity(); ok {
				schema.Entities = append(schema.Entities, entity)
			} else {
				p.skipPast(token.KwEndEntity)
			}
		case token.KwType:
			if decl, ok := p.parseTypeDecl(); ok {
				schema.Types = append(schema.Types, decl)
			} else {
				p.skipPast(token.KwEndType)
			}
		case token.KwFunction:
			p.skipUnsupported("FUNCTION", token.KwEndFunction)
		case token.KwProcedure:
			p.skipUnsupported("PROCEDURE", token.KwEndProcedure)
		case token.KwRule:
			p.skipUnsupported("RULE", token.KwEndRule)
		case token.KwConstant:
			p.skipUnsupported("CONSTANT", token.KwEndConstant)
		default:
			p.errExpected(diag.SynUnexpectedToken, "a declaration")
			p.resyncTo(token.KwEntity, token.KwType, token.KwEndSchema,
				token.KwFunction, token.KwProcedure, token.KwRule, token.KwConstant)
		}
	}

	if tok, ok := p.expect(token.KwEndSchema, diag.SynExpectEndKeyword); ok {
		schema.Span = schema.Span.Cover(tok.Span)
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return schema, true
}

// parseUseClause parses USE FROM id [ '(' id {',' id} ')' ] ';'.
// REFERENCE FROM is accepted with the same shape; for name visibility the
// two clauses behave identically in this subset.
func (p *Parser) parseUseClause() (*ast.UseClause, bool) {
	start := p.bump() // USE or REFERENCE
	if _, ok := p.expect(token.KwFrom, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	from, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return nil, false
	}

	use := &ast.UseClause{
		Schema: from.Text,
		Span:   start.Span.Cover(from.Span),
	}

	if _, ok := p.eat(token.LParen); ok {
		for {
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return nil, false
			}
			// "AS rename" is accepted syntactically; the original name
			// stays visible under its source spelling.
			if _, ok := p.eat(token.KwAs); ok {
				if _, ok := p.expect(token.Ident, diag.SynExpectIdentifier); !ok {
					return nil, false
				}
			}
			use.Names = append(use.Names, name.Text)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynExpectParen); !ok {
			return nil, false
		}
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	return use, true
}

func (p *Parser) skipUnsupported(what string, end token.Kind) {
	start := p.bump()
	if p.opts.Reporter != nil {
		diag.ReportWarning(p.opts.Reporter, diag.SynUnsupportedConstruct, start.Span,
			what+" declarations are not supported and were skipped").Emit()
	}
	p.skipPast(end)
}
