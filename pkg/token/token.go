// Package token defines the lexical tokens for the JavaScript subset that
// rule source files are written in.
//
// Token types are constants for switch performance. Keyword lookup is
// case-sensitive, matching JavaScript semantics.
package token

import "fmt"

// Type represents the type of a lexical token.
type Type int32

const (
	// Special tokens
	EOF Type = iota
	ILLEGAL

	// Literals
	IDENT    // context, module, fooBar
	NUMBER   // 123, 45.67, 0xff, 1e10
	STRING   // 'hello', "hello"
	TEMPLATE // `hello`
	REGEX    // /ab+c/g

	// Operators
	ASSIGN       // =
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	PERCENT      // %
	BANG         // !
	EQ           // ==
	NE           // !=
	SEQ          // ===
	SNE          // !==
	LT           // <
	GT           // >
	LE           // <=
	GE           // >=
	LAND         // &&
	LOR          // ||
	ARROW        // =>
	QUESTION     // ?
	COLON        // :
	INC          // ++
	DEC          // --
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	STAR_ASSIGN  // *=
	SLASH_ASSIGN // /=
	ELLIPSIS     // ...

	// Delimiters
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }

	// Keywords
	BREAK
	CASE
	CATCH
	CONST
	CONTINUE
	DEFAULT
	DELETE
	DO
	ELSE
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IN
	INSTANCEOF
	LET
	NEW
	NULL
	OF
	RETURN
	SWITCH
	THIS
	THROW
	TRUE
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
)

// String returns a human-readable representation of the token type.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[Type]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	TEMPLATE: "TEMPLATE",
	REGEX:    "REGEX",

	ASSIGN:       "=",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	BANG:         "!",
	EQ:           "==",
	NE:           "!=",
	SEQ:          "===",
	SNE:          "!==",
	LT:           "<",
	GT:           ">",
	LE:           "<=",
	GE:           ">=",
	LAND:         "&&",
	LOR:          "||",
	ARROW:        "=>",
	QUESTION:     "?",
	COLON:        ":",
	INC:          "++",
	DEC:          "--",
	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",
	STAR_ASSIGN:  "*=",
	SLASH_ASSIGN: "/=",
	ELLIPSIS:     "...",

	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",

	BREAK:      "break",
	CASE:       "case",
	CATCH:      "catch",
	CONST:      "const",
	CONTINUE:   "continue",
	DEFAULT:    "default",
	DELETE:     "delete",
	DO:         "do",
	ELSE:       "else",
	FALSE:      "false",
	FINALLY:    "finally",
	FOR:        "for",
	FUNCTION:   "function",
	IF:         "if",
	IN:         "in",
	INSTANCEOF: "instanceof",
	LET:        "let",
	NEW:        "new",
	NULL:       "null",
	OF:         "of",
	RETURN:     "return",
	SWITCH:     "switch",
	THIS:       "this",
	THROW:      "throw",
	TRUE:       "true",
	TRY:        "try",
	TYPEOF:     "typeof",
	VAR:        "var",
	VOID:       "void",
	WHILE:      "while",
}

// keywords maps keyword strings to their token types.
// Lookup is case-sensitive: "Function" is an identifier, "function" is not.
var keywords = map[string]Type{
	"break":      BREAK,
	"case":       CASE,
	"catch":      CATCH,
	"const":      CONST,
	"continue":   CONTINUE,
	"default":    DEFAULT,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"false":      FALSE,
	"finally":    FINALLY,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"let":        LET,
	"new":        NEW,
	"null":       NULL,
	"of":         OF,
	"return":     RETURN,
	"switch":     SWITCH,
	"this":       THIS,
	"throw":      THROW,
	"true":       TRUE,
	"try":        TRY,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func (t Type) IsKeyword() bool {
	return t >= BREAK && t <= WHILE
}

// IsAssignOp returns true for the assignment operator family.
func (t Type) IsAssignOp() bool {
	switch t {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN:
		return true
	}
	return false
}

// Token is a lexical unit with its source span.
// The Literal holds the cooked value for STRING tokens (quotes removed,
// simple escapes processed) and the raw lexeme for everything else.
type Token struct {
	Type    Type
	Literal string
	Span    Span
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}

// End returns the end position of the token.
func (t Token) End() Position {
	return t.Span.End
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Literal, t.Span.Start)
}
