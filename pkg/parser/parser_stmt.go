package parser

// Statement parsing.
//
// Grammar:
//
//	var_stmt      → (var|let|const) declarator (, declarator)* ;
//	declarator    → IDENT [= assignment]
//	if_stmt       → if ( expression ) statement [else statement]
//	for_stmt      → for ( init ; [expression] ; [expression] ) statement
//	              | for ( target (in|of) expression ) statement
//	while_stmt    → while ( expression ) statement
//	do_stmt       → do statement while ( expression ) ;
//	switch_stmt   → switch ( expression ) { case_clause* }
//	try_stmt      → try block [catch [( IDENT )] block] [finally block]
//	return_stmt   → return [expression] ;
//	throw_stmt    → throw expression ;
//	function_decl → function IDENT ( params ) block

import (
	"fmt"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// parseStatement parses a single statement.
func (p *Parser) parseStatement() Statement {
	switch p.cur().Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.BREAK:
		start := p.cur().Span.Start
		p.nextToken()
		p.expectSemicolon()
		return &BreakStatement{NodeInfo: NodeInfo{Span: p.spanFrom(start)}}
	case token.CONTINUE:
		start := p.cur().Span.Start
		p.nextToken()
		p.expectSemicolon()
		return &ContinueStatement{NodeInfo: NodeInfo{Span: p.spanFrom(start)}}
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.SEMICOLON:
		start := p.cur().Span.Start
		p.nextToken()
		return &EmptyStatement{NodeInfo: NodeInfo{Span: p.spanFrom(start)}}
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarStatement parses a var/let/const declaration statement.
func (p *Parser) parseVarStatement() Statement {
	start := p.cur().Span.Start
	keyword := p.cur().Literal
	p.nextToken()
	decls := p.parseVarDecls()
	p.expectSemicolon()
	return &VarStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Keyword:  keyword,
		Decls:    decls,
	}
}

// parseVarDecls parses the declarator list of a var/let/const statement,
// without consuming the terminator. Shared with for-loop initializers.
func (p *Parser) parseVarDecls() []*Declarator {
	var decls []*Declarator
	for {
		name := p.parseIdentifierName()
		if name == nil {
			return decls
		}
		d := &Declarator{Name: name}
		if p.match(token.ASSIGN) {
			d.Value = p.parseAssignment()
		}
		decls = append(decls, d)
		if !p.match(token.COMMA) {
			return decls
		}
	}
}

// parseIdentifierName parses a plain identifier, reporting an error and
// returning nil on anything else.
func (p *Parser) parseIdentifierName() *Identifier {
	if !p.check(token.IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.cur().Type, token.IDENT))
		return nil
	}
	tok := p.cur()
	p.nextToken()
	return &Identifier{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Literal}
}

// parseBlockStatement parses `{ statement* }`.
func (p *Parser) parseBlockStatement() *BlockStatement {
	start := p.cur().Span.Start
	block := &BlockStatement{}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		before := p.pos
		errs := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil && len(p.errors) == errs {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
		if p.pos == before {
			p.nextToken()
		}
	}
	p.expect(token.RBRACE)
	block.Span = p.spanFrom(start)
	return block
}

// parseIfStatement parses if/else.
func (p *Parser) parseIfStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var alt Statement
	if p.match(token.ELSE) {
		alt = p.parseStatement()
	}
	return &IfStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Cond:     cond,
		Then:     then,
		Else:     alt,
	}
}

// parseForStatement parses classic three-clause, for-in and for-of loops.
func (p *Parser) parseForStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	p.expect(token.LPAREN)

	var init Node
	switch p.cur().Type {
	case token.SEMICOLON:
		// no initializer
	case token.VAR, token.LET, token.CONST:
		declStart := p.cur().Span.Start
		keyword := p.cur().Literal
		p.nextToken()
		decls := p.parseVarDecls()
		vs := &VarStatement{
			NodeInfo: NodeInfo{Span: p.spanFrom(declStart)},
			Keyword:  keyword,
			Decls:    decls,
		}
		if p.check(token.IN) || p.check(token.OF) {
			return p.parseForInTail(start, vs)
		}
		init = vs
	default:
		exprStart := p.cur().Span.Start
		expr := p.parseNoInExpression()
		if p.check(token.IN) || p.check(token.OF) {
			return p.parseForInTail(start, expr)
		}
		init = &ExpressionStatement{
			NodeInfo: NodeInfo{Span: p.spanFrom(exprStart)},
			Expr:     expr,
		}
	}

	p.expect(token.SEMICOLON)
	var cond Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	var post Expression
	if !p.check(token.RPAREN) {
		post = p.parseExpression()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ForStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Init:     init,
		Cond:     cond,
		Post:     post,
		Body:     body,
	}
}

// parseForInTail finishes a for-in/for-of once the in/of keyword is current.
func (p *Parser) parseForInTail(start token.Position, left Node) Statement {
	of := p.check(token.OF)
	p.nextToken()
	right := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ForInStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Left:     left,
		Of:       of,
		Right:    right,
		Body:     body,
	}
}

// parseWhileStatement parses a while loop.
func (p *Parser) parseWhileStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &WhileStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Cond:     cond,
		Body:     body,
	}
}

// parseDoWhileStatement parses a do/while loop.
func (p *Parser) parseDoWhileStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expectSemicolon()
	return &DoWhileStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Body:     body,
		Cond:     cond,
	}
}

// parseSwitchStatement parses a switch with case and default clauses.
func (p *Parser) parseSwitchStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	p.expect(token.LPAREN)
	disc := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	sw := &SwitchStatement{Disc: disc}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		caseStart := p.cur().Span.Start
		clause := &SwitchCase{}
		switch {
		case p.match(token.CASE):
			clause.Test = p.parseExpression()
			p.expect(token.COLON)
		case p.match(token.DEFAULT):
			p.expect(token.COLON)
		default:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.cur().Type, token.CASE))
			p.nextToken()
			continue
		}
		for !p.check(token.CASE) && !p.check(token.DEFAULT) &&
			!p.check(token.RBRACE) && !p.check(token.EOF) {
			before := p.pos
			if stmt := p.parseStatement(); stmt != nil {
				clause.Body = append(clause.Body, stmt)
			}
			if p.pos == before {
				p.nextToken()
			}
		}
		clause.Span = p.spanFrom(caseStart)
		sw.Cases = append(sw.Cases, clause)
	}
	p.expect(token.RBRACE)
	sw.Span = p.spanFrom(start)
	return sw
}

// parseTryStatement parses try/catch/finally.
func (p *Parser) parseTryStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	try := &TryStatement{Block: p.parseBlockStatement()}
	if p.match(token.CATCH) {
		if p.match(token.LPAREN) {
			try.CatchParam = p.parseIdentifierName()
			p.expect(token.RPAREN)
		}
		try.Catch = p.parseBlockStatement()
	}
	if p.match(token.FINALLY) {
		try.Finally = p.parseBlockStatement()
	}
	if try.Catch == nil && try.Finally == nil {
		p.addErrorAt(start, ErrTrailingCatch)
	}
	try.Span = p.spanFrom(start)
	return try
}

// parseReturnStatement parses a return. The value must start on the same
// line as the keyword; a line break yields a bare return.
func (p *Parser) parseReturnStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	ret := &ReturnStatement{}
	if !p.check(token.SEMICOLON) && !p.check(token.RBRACE) && !p.check(token.EOF) &&
		p.cur().Span.Start.Line == start.Line {
		ret.Value = p.parseExpression()
	}
	p.expectSemicolon()
	ret.Span = p.spanFrom(start)
	return ret
}

// parseThrowStatement parses a throw.
func (p *Parser) parseThrowStatement() Statement {
	start := p.cur().Span.Start
	p.nextToken()
	value := p.parseExpression()
	p.expectSemicolon()
	return &ThrowStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Value:    value,
	}
}

// parseFunctionDeclaration parses a named function in statement position.
func (p *Parser) parseFunctionDeclaration() Statement {
	start := p.cur().Span.Start
	fn := p.parseFunctionLiteral()
	if fn.Name == nil {
		p.addErrorAt(start, fmt.Sprintf(ErrUnexpectedToken, token.LPAREN, token.IDENT))
	}
	return &FunctionDeclaration{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Fn:       fn,
	}
}

// parseExpressionStatement parses an expression in statement position.
func (p *Parser) parseExpressionStatement() Statement {
	start := p.cur().Span.Start
	expr := p.parseExpression()
	p.expectSemicolon()
	return &ExpressionStatement{
		NodeInfo: NodeInfo{Span: p.spanFrom(start)},
		Expr:     expr,
	}
}
