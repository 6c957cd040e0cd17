// Package parser turns ESLint-style rule source into an AST.
//
// # Usage
//
//	unit, err := parser.ParseSource("my-rule.js", src)
//	if err != nil {
//	    // handle error
//	}
//
// The parser accepts the JavaScript subset that rule files are written in:
// CommonJS module bodies built from declarations, object literals, member
// access and calls, plus the ordinary statement forms.
//
// # Grammar Overview
//
//	program    → statement*
//	statement  → var_stmt | if_stmt | for_stmt | while_stmt | do_stmt
//	           | switch_stmt | try_stmt | return_stmt | throw_stmt
//	           | break_stmt | continue_stmt | function_decl | block
//	           | empty_stmt | expr_stmt
//	expression → assignment
//	assignment → conditional [assign_op assignment]
//	conditional→ logical_or [? assignment : assignment]
//
// Binary operators follow the usual precedence ladder down to unary and
// postfix forms. See each file for the grammar rules of that section.
package parser

import (
	"fmt"

	"github.com/rulelint-dev/rulelint/pkg/source"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

// Unit is the result of parsing one source file: the AST plus the full
// token and comment streams, which line- and placement-sensitive checks
// consume directly.
type Unit struct {
	File     *source.File
	Program  *Program
	Tokens   []token.Token
	Comments []*token.Comment
}

// Parser parses rule source into an AST.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []error

	// noIn suspends the in operator while parsing a for-loop initializer,
	// so `for (x in y)` is recognized as a for-in head.
	noIn bool
}

// NewParser creates a parser over a pre-tokenized input. The token slice
// must end with an EOF token, as produced by Tokenize.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the given source file.
func Parse(f *source.File) (*Unit, error) {
	tokens, comments := Tokenize(f.Content)
	p := NewParser(tokens)
	program := p.parseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return &Unit{
		File:     f,
		Program:  program,
		Tokens:   tokens,
		Comments: comments,
	}, nil
}

// ParseSource parses source text under the given name.
func ParseSource(name, content string) (*Unit, error) {
	return Parse(source.NewFile(name, content))
}

// ---------- Token Helpers ----------

// cur returns the current token.
func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

// peek returns the lookahead token.
func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

// prevEnd returns the end position of the last consumed token.
func (p *Parser) prevEnd() token.Position {
	if p.pos == 0 {
		return p.cur().Span.Start
	}
	return p.tokens[p.pos-1].Span.End
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.Type) bool {
	return p.cur().Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.Type) bool {
	return p.peek().Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.cur().Type, t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.addErrorAt(p.cur().Span.Start, msg)
}

// addErrorAt adds a parse error at the given position.
func (p *Parser) addErrorAt(pos token.Position, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: msg})
}

// spanFrom builds a span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd()}
}

// expectSemicolon consumes a statement terminator. A missing semicolon is
// accepted before }, at end of input, or at a line break, matching automatic
// semicolon insertion.
func (p *Parser) expectSemicolon() {
	if p.match(token.SEMICOLON) {
		return
	}
	if p.check(token.RBRACE) || p.check(token.EOF) {
		return
	}
	if p.cur().Span.Start.Line > p.prevEnd().Line {
		return
	}
	p.addError(fmt.Sprintf(ErrExpectedSemicolon, p.cur().Type))
}

// synchronize skips tokens until a likely statement boundary after an error.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			return
		}
		switch p.cur().Type {
		case token.RBRACE, token.VAR, token.LET, token.CONST, token.FUNCTION,
			token.IF, token.FOR, token.WHILE, token.RETURN, token.THROW:
			return
		}
		p.nextToken()
	}
}

// parseProgram parses the whole token stream into a Program.
func (p *Parser) parseProgram() *Program {
	start := p.cur().Span.Start
	prog := &Program{}
	for !p.check(token.EOF) {
		before := p.pos
		errs := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil && len(p.errors) == errs {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.synchronize()
		}
		if p.pos == before {
			// No progress; skip the offending token to guarantee termination.
			p.nextToken()
		}
	}
	prog.Span = p.spanFrom(start)
	return prog
}
