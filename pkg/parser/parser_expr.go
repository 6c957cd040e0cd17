package parser

// Expression parsing, precedence-climbing over the binary operator ladder.
//
// Grammar:
//
//	assignment     → conditional [assign_op assignment]
//	conditional    → binary(or) [? assignment : assignment]
//	binary         → unary (infix_op binary)*
//	unary          → prefix_op unary | new_expr | postfix
//	postfix        → primary (. NAME | [ expression ] | ( args ) | ++ | --)*

import (
	"fmt"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// Operator precedence levels, lowest first.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

// infixPrec returns the binding power of an infix operator token, or
// precLowest for non-operators. The in operator is suspended while parsing
// a for-loop initializer.
func (p *Parser) infixPrec(t token.Type) int {
	switch t {
	case token.LOR:
		return precOr
	case token.LAND:
		return precAnd
	case token.EQ, token.NE, token.SEQ, token.SNE:
		return precEquality
	case token.LT, token.GT, token.LE, token.GE, token.INSTANCEOF:
		return precRelational
	case token.IN:
		if p.noIn {
			return precLowest
		}
		return precRelational
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiplicative
	}
	return precLowest
}

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expression {
	return p.parseAssignment()
}

// parseNoInExpression parses an expression with the in operator suspended,
// for use in for-loop heads.
func (p *Parser) parseNoInExpression() Expression {
	p.noIn = true
	expr := p.parseAssignment()
	p.noIn = false
	return expr
}

// parseAssignment parses an assignment expression. Assignment is
// right-associative.
func (p *Parser) parseAssignment() Expression {
	left := p.parseConditional()
	if p.cur().Type.IsAssignOp() {
		op := p.cur().Literal
		p.nextToken()
		right := p.parseAssignment()
		return &AssignExpression{
			NodeInfo: NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
			Operator: op,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

// parseConditional parses a ternary conditional.
func (p *Parser) parseConditional() Expression {
	cond := p.parseBinary(precOr)
	if !p.match(token.QUESTION) {
		return cond
	}
	then := p.parseAssignment()
	p.expect(token.COLON)
	alt := p.parseAssignment()
	return &ConditionalExpression{
		NodeInfo: NodeInfo{Span: token.Span{Start: cond.GetSpan().Start, End: p.prevEnd()}},
		Cond:     cond,
		Then:     then,
		Else:     alt,
	}
}

// parseBinary parses binary operator chains at or above minPrec.
func (p *Parser) parseBinary(minPrec int) Expression {
	left := p.parseUnary()
	for {
		prec := p.infixPrec(p.cur().Type)
		if prec < minPrec || prec == precLowest {
			return left
		}
		op := p.cur().Literal
		p.nextToken()
		right := p.parseBinary(prec + 1)
		left = &InfixExpression{
			NodeInfo: NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
			Operator: op,
			Left:     left,
			Right:    right,
		}
	}
}

// parseUnary parses prefix operators and new expressions.
func (p *Parser) parseUnary() Expression {
	switch p.cur().Type {
	case token.BANG, token.MINUS, token.PLUS, token.TYPEOF, token.VOID,
		token.DELETE, token.INC, token.DEC:
		start := p.cur().Span.Start
		op := p.cur().Literal
		p.nextToken()
		right := p.parseUnary()
		return &PrefixExpression{
			NodeInfo: NodeInfo{Span: p.spanFrom(start)},
			Operator: op,
			Right:    right,
		}
	case token.NEW:
		return p.parseNewExpression()
	}
	return p.parsePostfix(p.parsePrimary())
}

// parseNewExpression parses `new callee(args)`. The callee may be a member
// chain; calls bind to the new expression, not the callee.
func (p *Parser) parseNewExpression() Expression {
	start := p.cur().Span.Start
	p.nextToken()
	callee := p.parseMemberChain(p.parsePrimary())
	ne := &NewExpression{Callee: callee}
	if p.check(token.LPAREN) {
		ne.Arguments = p.parseArguments()
	}
	ne.Span = p.spanFrom(start)
	return p.parsePostfix(ne)
}

// parseMemberChain parses dot and bracket access without consuming calls.
func (p *Parser) parseMemberChain(left Expression) Expression {
	for {
		switch {
		case p.check(token.DOT):
			p.nextToken()
			left = p.parseDotMember(left)
		case p.check(token.LBRACKET):
			p.nextToken()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			left = &MemberExpression{
				NodeInfo: NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
				Object:   left,
				Index:    index,
				Computed: true,
			}
		default:
			return left
		}
	}
}

// parsePostfix parses the postfix chain: member access, calls and the
// increment operators. A line break before ++/-- terminates the chain.
func (p *Parser) parsePostfix(left Expression) Expression {
	for {
		switch {
		case p.check(token.DOT):
			p.nextToken()
			left = p.parseDotMember(left)
		case p.check(token.LBRACKET):
			p.nextToken()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			left = &MemberExpression{
				NodeInfo: NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
				Object:   left,
				Index:    index,
				Computed: true,
			}
		case p.check(token.LPAREN):
			args := p.parseArguments()
			left = &CallExpression{
				NodeInfo:  NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
				Callee:    left,
				Arguments: args,
			}
		case (p.check(token.INC) || p.check(token.DEC)) &&
			p.cur().Span.Start.Line == p.prevEnd().Line:
			op := p.cur().Literal
			p.nextToken()
			return &PostfixExpression{
				NodeInfo: NodeInfo{Span: token.Span{Start: left.GetSpan().Start, End: p.prevEnd()}},
				Operator: op,
				Operand:  left,
			}
		default:
			return left
		}
	}
}

// parseDotMember parses the name after a consumed dot. Keywords are valid
// property names in this position.
func (p *Parser) parseDotMember(object Expression) Expression {
	tok := p.cur()
	if tok.Type != token.IDENT && !tok.Type.IsKeyword() {
		p.addError(fmt.Sprintf(ErrExpectedPropertyName, tok.Type))
		return object
	}
	p.nextToken()
	return &MemberExpression{
		NodeInfo: NodeInfo{Span: token.Span{Start: object.GetSpan().Start, End: p.prevEnd()}},
		Object:   object,
		Property: &Identifier{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Literal},
	}
}

// parseArguments parses a parenthesized argument list, spreads and trailing
// comma included.
func (p *Parser) parseArguments() []Expression {
	p.expect(token.LPAREN)
	var args []Expression
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		if p.check(token.ELLIPSIS) {
			start := p.cur().Span.Start
			p.nextToken()
			arg := p.parseAssignment()
			args = append(args, &SpreadElement{
				NodeInfo: NodeInfo{Span: p.spanFrom(start)},
				Argument: arg,
			})
		} else {
			args = append(args, p.parseAssignment())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}
