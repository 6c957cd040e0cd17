package parser

// Primary expression parsing: literals, identifiers, object and array
// literals, functions and arrow functions.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// parsePrimary parses an atomic expression.
func (p *Parser) parsePrimary() Expression {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		if p.checkPeek(token.ARROW) {
			return p.parseArrowFunction()
		}
		p.nextToken()
		return &Identifier{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Literal}
	case token.NUMBER:
		p.nextToken()
		return &NumberLiteral{
			NodeInfo: NodeInfo{Span: tok.Span},
			Value:    parseNumberValue(tok.Literal),
			Raw:      tok.Literal,
		}
	case token.STRING:
		p.nextToken()
		return &StringLiteral{NodeInfo: NodeInfo{Span: tok.Span}, Value: tok.Literal}
	case token.TEMPLATE:
		p.nextToken()
		return &TemplateLiteral{NodeInfo: NodeInfo{Span: tok.Span}, Raw: tok.Literal}
	case token.REGEX:
		p.nextToken()
		return &RegexLiteral{NodeInfo: NodeInfo{Span: tok.Span}, Raw: tok.Literal}
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &BooleanLiteral{NodeInfo: NodeInfo{Span: tok.Span}, Value: tok.Type == token.TRUE}
	case token.NULL:
		p.nextToken()
		return &NullLiteral{NodeInfo: NodeInfo{Span: tok.Span}}
	case token.THIS:
		p.nextToken()
		return &ThisExpression{NodeInfo: NodeInfo{Span: tok.Span}}
	case token.FUNCTION:
		return p.parseFunctionLiteral()
	case token.LPAREN:
		if p.isArrowAhead() {
			return p.parseArrowFunction()
		}
		p.nextToken()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	}
	p.addError(fmt.Sprintf(ErrUnexpectedInExpr, tok.Type))
	p.nextToken()
	return &Identifier{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Literal}
}

// isArrowAhead reports whether the parenthesized group starting at the
// current ( is an arrow function parameter list.
func (p *Parser) isArrowAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// parseFunctionLiteral parses `function [name](params) { body }`.
// The current token must be the function keyword.
func (p *Parser) parseFunctionLiteral() *FunctionLiteral {
	start := p.cur().Span.Start
	p.expect(token.FUNCTION)
	fn := &FunctionLiteral{}
	if p.check(token.IDENT) {
		fn.Name = p.parseIdentifierName()
	}
	fn.Params, fn.RestParam = p.parseParams()
	fn.Body = p.parseBlockStatement()
	fn.Span = p.spanFrom(start)
	return fn
}

// parseParams parses a parenthesized parameter list. Default values are
// consumed and discarded; a rest parameter must come last.
func (p *Parser) parseParams() ([]*Identifier, *Identifier) {
	p.expect(token.LPAREN)
	var params []*Identifier
	var rest *Identifier
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		if p.match(token.ELLIPSIS) {
			rest = p.parseIdentifierName()
			break
		}
		name := p.parseIdentifierName()
		if name == nil {
			break
		}
		if p.match(token.ASSIGN) {
			p.parseAssignment() // default value, not retained
		}
		params = append(params, name)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params, rest
}

// parseArrowFunction parses both forms of arrow function: a bare identifier
// parameter or a parenthesized list, followed by => and a block or
// expression body.
func (p *Parser) parseArrowFunction() Expression {
	start := p.cur().Span.Start
	fn := &FunctionLiteral{Arrow: true}
	if p.check(token.IDENT) {
		fn.Params = []*Identifier{p.parseIdentifierName()}
	} else {
		fn.Params, fn.RestParam = p.parseParams()
	}
	p.expect(token.ARROW)
	if p.check(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		fn.ExprBody = p.parseAssignment()
	}
	fn.Span = p.spanFrom(start)
	return fn
}

// parseArrayLiteral parses `[ elements ]` with spreads and trailing commas.
// Elisions are skipped.
func (p *Parser) parseArrayLiteral() Expression {
	start := p.cur().Span.Start
	p.expect(token.LBRACKET)
	arr := &ArrayLiteral{}
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		if p.match(token.COMMA) {
			continue
		}
		if p.check(token.ELLIPSIS) {
			spreadStart := p.cur().Span.Start
			p.nextToken()
			arg := p.parseAssignment()
			arr.Elements = append(arr.Elements, &SpreadElement{
				NodeInfo: NodeInfo{Span: p.spanFrom(spreadStart)},
				Argument: arg,
			})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignment())
		}
		if !p.check(token.RBRACKET) && !p.match(token.COMMA) {
			p.expect(token.COMMA)
			break
		}
	}
	p.expect(token.RBRACKET)
	arr.Span = p.spanFrom(start)
	return arr
}

// parseObjectLiteral parses `{ properties }`: plain entries, string and
// numeric keys, computed keys, shorthand, methods, accessors and spreads.
func (p *Parser) parseObjectLiteral() Expression {
	start := p.cur().Span.Start
	p.expect(token.LBRACE)
	obj := &ObjectLiteral{}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		prop := p.parseProperty()
		if prop != nil {
			obj.Properties = append(obj.Properties, prop)
		}
		if !p.check(token.RBRACE) && !p.match(token.COMMA) {
			p.expect(token.COMMA)
			break
		}
	}
	p.expect(token.RBRACE)
	obj.Span = p.spanFrom(start)
	return obj
}

// parseProperty parses one object literal entry.
func (p *Parser) parseProperty() *Property {
	start := p.cur().Span.Start

	if p.check(token.ELLIPSIS) {
		p.nextToken()
		arg := p.parseAssignment()
		return &Property{
			NodeInfo: NodeInfo{Span: p.spanFrom(start)},
			Value: &SpreadElement{
				NodeInfo: NodeInfo{Span: p.spanFrom(start)},
				Argument: arg,
			},
		}
	}

	if p.match(token.LBRACKET) {
		key := p.parseAssignment()
		p.expect(token.RBRACKET)
		prop := &Property{Key: key, Computed: true}
		p.expect(token.COLON)
		prop.Value = p.parseAssignment()
		prop.Span = p.spanFrom(start)
		return prop
	}

	key := p.parsePropertyKey()
	if key == nil {
		return nil
	}

	// get/set accessor sugar: a get or set key directly followed by
	// another key is an accessor definition.
	if ident, ok := key.(*Identifier); ok && (ident.Name == "get" || ident.Name == "set") {
		if p.isPropertyKeyStart() {
			key = p.parsePropertyKey()
			prop := &Property{Key: key, Method: true}
			prop.Value = p.parseMethodBody(start)
			prop.Span = p.spanFrom(start)
			return prop
		}
	}

	prop := &Property{Key: key}
	switch {
	case p.check(token.LPAREN):
		prop.Method = true
		prop.Value = p.parseMethodBody(start)
	case p.match(token.COLON):
		prop.Value = p.parseAssignment()
	default:
		ident, ok := key.(*Identifier)
		if !ok {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.cur().Type, token.COLON))
			return nil
		}
		prop.Shorthand = true
		prop.Value = &Identifier{NodeInfo: NodeInfo{Span: ident.Span}, Name: ident.Name}
	}
	prop.Span = p.spanFrom(start)
	return prop
}

// parsePropertyKey parses an identifier, string, number or keyword key.
func (p *Parser) parsePropertyKey() Expression {
	tok := p.cur()
	switch {
	case tok.Type == token.IDENT || tok.Type.IsKeyword():
		p.nextToken()
		return &Identifier{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Literal}
	case tok.Type == token.STRING:
		p.nextToken()
		return &StringLiteral{NodeInfo: NodeInfo{Span: tok.Span}, Value: tok.Literal}
	case tok.Type == token.NUMBER:
		p.nextToken()
		return &NumberLiteral{
			NodeInfo: NodeInfo{Span: tok.Span},
			Value:    parseNumberValue(tok.Literal),
			Raw:      tok.Literal,
		}
	}
	p.addError(fmt.Sprintf(ErrExpectedPropertyName, tok.Type))
	p.nextToken()
	return nil
}

// isPropertyKeyStart reports whether the current token can begin a property
// key.
func (p *Parser) isPropertyKeyStart() bool {
	t := p.cur().Type
	return t == token.IDENT || t == token.STRING || t == token.NUMBER || t.IsKeyword()
}

// parseMethodBody parses the params and body of an object literal method.
func (p *Parser) parseMethodBody(start token.Position) *FunctionLiteral {
	fn := &FunctionLiteral{}
	fn.Params, fn.RestParam = p.parseParams()
	fn.Body = p.parseBlockStatement()
	fn.Span = p.spanFrom(start)
	return fn
}

// parseNumberValue converts a numeric lexeme to its value. Prefixed
// integers use their radix; anything unparseable yields 0.
func parseNumberValue(raw string) float64 {
	lower := strings.ToLower(raw)
	if len(lower) > 2 && lower[0] == '0' {
		var base int
		switch lower[1] {
		case 'x':
			base = 16
		case 'b':
			base = 2
		case 'o':
			base = 8
		}
		if base != 0 {
			n, err := strconv.ParseUint(lower[2:], base, 64)
			if err != nil {
				return 0
			}
			return float64(n)
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
