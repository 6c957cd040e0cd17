package parser

import (
	"fmt"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken      = "unexpected token %s, expected %s"
	ErrUnexpectedInExpr     = "unexpected token %s in expression"
	ErrUnterminatedLiteral  = "unterminated %s literal"
	ErrExpectedSemicolon    = "expected ; after statement, got %s"
	ErrExpectedPropertyName = "expected property name, got %s"
	ErrExpectedParam        = "expected parameter name, got %s"
	ErrTrailingCatch        = "try statement requires a catch or finally clause"
)
