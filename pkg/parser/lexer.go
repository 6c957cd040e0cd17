package parser

import (
	"strings"
	"unicode"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// Lexer tokenizes rule source text. Comments are collected on the side with
// their spans so the analysis layer can reason about comment placement
// without them appearing in the token stream.
type Lexer struct {
	input   string
	pos     int  // current position in input (points to ch)
	readPos int  // next reading position (after ch)
	ch      byte // current character (0 = EOF)
	line    int  // 1-based line of ch
	col     int  // 1-based column of ch

	// prev is the type of the last emitted token, used to decide whether a
	// slash starts a regex literal or a division operator.
	prev token.Type

	// Comments collects all comments seen during tokenization, in order.
	Comments []*token.Comment
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0, prev: token.EOF}
	l.readChar()
	return l
}

// readChar advances to the next character. Line advances when moving past a
// newline, so a token ending at end-of-line keeps that line in its span.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the position of the current character.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.currentPos()

	var tok token.Token
	switch l.ch {
	case 0:
		tok = l.makeToken(token.EOF, "", start)
	case '=':
		l.readChar()
		switch {
		case l.ch == '=' && l.peekChar() == '=':
			l.readChar()
			l.readChar()
			tok = l.makeToken(token.SEQ, "===", start)
		case l.ch == '=':
			l.readChar()
			tok = l.makeToken(token.EQ, "==", start)
		case l.ch == '>':
			l.readChar()
			tok = l.makeToken(token.ARROW, "=>", start)
		default:
			tok = l.makeToken(token.ASSIGN, "=", start)
		}
	case '!':
		l.readChar()
		switch {
		case l.ch == '=' && l.peekChar() == '=':
			l.readChar()
			l.readChar()
			tok = l.makeToken(token.SNE, "!==", start)
		case l.ch == '=':
			l.readChar()
			tok = l.makeToken(token.NE, "!=", start)
		default:
			tok = l.makeToken(token.BANG, "!", start)
		}
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok = l.makeToken(token.LE, "<=", start)
		} else {
			tok = l.makeToken(token.LT, "<", start)
		}
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok = l.makeToken(token.GE, ">=", start)
		} else {
			tok = l.makeToken(token.GT, ">", start)
		}
	case '&':
		l.readChar()
		if l.ch == '&' {
			l.readChar()
			tok = l.makeToken(token.LAND, "&&", start)
		} else {
			tok = l.makeToken(token.ILLEGAL, "&", start)
		}
	case '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			tok = l.makeToken(token.LOR, "||", start)
		} else {
			tok = l.makeToken(token.ILLEGAL, "|", start)
		}
	case '+':
		l.readChar()
		switch l.ch {
		case '+':
			l.readChar()
			tok = l.makeToken(token.INC, "++", start)
		case '=':
			l.readChar()
			tok = l.makeToken(token.PLUS_ASSIGN, "+=", start)
		default:
			tok = l.makeToken(token.PLUS, "+", start)
		}
	case '-':
		l.readChar()
		switch l.ch {
		case '-':
			l.readChar()
			tok = l.makeToken(token.DEC, "--", start)
		case '=':
			l.readChar()
			tok = l.makeToken(token.MINUS_ASSIGN, "-=", start)
		default:
			tok = l.makeToken(token.MINUS, "-", start)
		}
	case '*':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok = l.makeToken(token.STAR_ASSIGN, "*=", start)
		} else {
			tok = l.makeToken(token.STAR, "*", start)
		}
	case '/':
		if l.regexAllowed() {
			tok = l.readRegex(start)
		} else {
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				tok = l.makeToken(token.SLASH_ASSIGN, "/=", start)
			} else {
				tok = l.makeToken(token.SLASH, "/", start)
			}
		}
	case '%':
		l.readChar()
		tok = l.makeToken(token.PERCENT, "%", start)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			if l.ch == '.' {
				l.readChar()
				tok = l.makeToken(token.ELLIPSIS, "...", start)
			} else {
				tok = l.makeToken(token.ILLEGAL, "..", start)
			}
		} else {
			l.readChar()
			tok = l.makeToken(token.DOT, ".", start)
		}
	case ',':
		l.readChar()
		tok = l.makeToken(token.COMMA, ",", start)
	case ';':
		l.readChar()
		tok = l.makeToken(token.SEMICOLON, ";", start)
	case ':':
		l.readChar()
		tok = l.makeToken(token.COLON, ":", start)
	case '?':
		l.readChar()
		tok = l.makeToken(token.QUESTION, "?", start)
	case '(':
		l.readChar()
		tok = l.makeToken(token.LPAREN, "(", start)
	case ')':
		l.readChar()
		tok = l.makeToken(token.RPAREN, ")", start)
	case '[':
		l.readChar()
		tok = l.makeToken(token.LBRACKET, "[", start)
	case ']':
		l.readChar()
		tok = l.makeToken(token.RBRACKET, "]", start)
	case '{':
		l.readChar()
		tok = l.makeToken(token.LBRACE, "{", start)
	case '}':
		l.readChar()
		tok = l.makeToken(token.RBRACE, "}", start)
	case '\'', '"':
		tok = l.readString(l.ch, start)
	case '`':
		tok = l.readTemplate(start)
	default:
		switch {
		case isIdentStart(l.ch):
			lexeme := l.readIdentifier()
			tok = l.makeToken(token.LookupIdent(lexeme), lexeme, start)
		case isDigit(l.ch):
			lexeme := l.readNumber()
			tok = l.makeToken(token.NUMBER, lexeme, start)
		default:
			ch := l.ch
			l.readChar()
			tok = l.makeToken(token.ILLEGAL, string(ch), start)
		}
	}

	l.prev = tok.Type
	return tok
}

// makeToken builds a token spanning from start to the current position.
func (l *Lexer) makeToken(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:    typ,
		Literal: literal,
		Span:    token.Span{Start: start, End: l.currentPos()},
	}
}

// regexAllowed reports whether a slash at the current position begins a regex
// literal. A slash after a value-producing token is division; anywhere else
// it starts a regex.
func (l *Lexer) regexAllowed() bool {
	switch l.prev {
	case token.IDENT, token.NUMBER, token.STRING, token.TEMPLATE, token.REGEX,
		token.RPAREN, token.RBRACKET, token.THIS, token.TRUE, token.FALSE,
		token.NULL, token.INC, token.DEC:
		return false
	}
	return true
}

// skipWhitespaceAndComments advances past whitespace, collecting any comments
// encountered along the way.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.collectLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.collectBlockComment()
		default:
			return
		}
	}
}

// collectLineComment consumes a // comment up to (not including) the newline.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment consumes a /* ... */ comment, including newlines.
// An unterminated comment runs to end of input.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos
	l.readChar() // consume /
	l.readChar() // consume *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString consumes a quoted string and returns a STRING token whose
// literal is the cooked value. A string terminated by a newline or end of
// input is returned as ILLEGAL with whatever was consumed.
func (l *Lexer) readString(quote byte, start token.Position) token.Token {
	var sb strings.Builder
	l.readChar() // consume opening quote
	for {
		switch l.ch {
		case quote:
			l.readChar() // consume closing quote
			return l.makeToken(token.STRING, sb.String(), start)
		case 0, '\n':
			return l.makeToken(token.ILLEGAL, sb.String(), start)
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '\'', '"', '`':
				sb.WriteByte(l.ch)
			case '\n':
				// line continuation, contributes nothing
			case 0:
				return l.makeToken(token.ILLEGAL, sb.String(), start)
			default:
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
			}
			l.readChar()
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readTemplate consumes a backtick template literal, tracking ${...} nesting
// so braces inside interpolations do not end the literal early. The literal
// holds the raw inner text.
func (l *Lexer) readTemplate(start token.Position) token.Token {
	l.readChar() // consume opening backtick
	startOffset := l.pos
	depth := 0
	for {
		switch {
		case l.ch == 0:
			return l.makeToken(token.ILLEGAL, l.input[startOffset:l.pos], start)
		case l.ch == '\\':
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
		case l.ch == '$' && l.peekChar() == '{':
			depth++
			l.readChar()
			l.readChar()
		case l.ch == '}' && depth > 0:
			depth--
			l.readChar()
		case l.ch == '`' && depth == 0:
			raw := l.input[startOffset:l.pos]
			l.readChar() // consume closing backtick
			return l.makeToken(token.TEMPLATE, raw, start)
		default:
			l.readChar()
		}
	}
}

// readRegex consumes a regex literal including flags. Bracket character
// classes may contain unescaped slashes.
func (l *Lexer) readRegex(start token.Position) token.Token {
	startOffset := l.pos
	l.readChar() // consume opening slash
	inClass := false
	for {
		switch l.ch {
		case 0, '\n':
			return l.makeToken(token.ILLEGAL, l.input[startOffset:l.pos], start)
		case '\\':
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.readChar() // consume closing slash
				for isLetter(l.ch) {
					l.readChar()
				}
				return l.makeToken(token.REGEX, l.input[startOffset:l.pos], start)
			}
		}
		l.readChar()
	}
}

// readIdentifier consumes an identifier and returns its lexeme.
func (l *Lexer) readIdentifier() string {
	startOffset := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[startOffset:l.pos]
}

// readNumber consumes a numeric literal: decimal with optional fraction and
// exponent, or a 0x/0b/0o prefixed integer.
func (l *Lexer) readNumber() string {
	startOffset := l.pos
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X' ||
		l.peekChar() == 'b' || l.peekChar() == 'B' ||
		l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.input[startOffset:l.pos]
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[startOffset:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || isLetter(ch)
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// Tokenize runs the lexer over the input and returns all tokens up to and
// including EOF, plus the collected comments.
func Tokenize(input string) ([]token.Token, []*token.Comment) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, l.Comments
}
