package parser

import (
	"fmt"

	"github.com/rulelint-dev/rulelint/pkg/token"
)

// Kind identifies the structural kind of an AST node. Rule handlers are
// dispatched by kind during the pre-order walk.
type Kind int

// Node kinds.
const (
	KindProgram Kind = iota
	KindVarStatement
	KindExpressionStatement
	KindBlockStatement
	KindReturnStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindTryStatement
	KindThrowStatement
	KindBreakStatement
	KindContinueStatement
	KindFunctionDeclaration
	KindEmptyStatement
	KindIdentifier
	KindStringLiteral
	KindNumberLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegexLiteral
	KindTemplateLiteral
	KindThisExpression
	KindArrayLiteral
	KindObjectLiteral
	KindProperty
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindAssignExpression
	KindPrefixExpression
	KindPostfixExpression
	KindInfixExpression
	KindConditionalExpression
	KindFunctionLiteral
	KindSpreadElement
)

var kindNames = map[Kind]string{
	KindProgram:               "Program",
	KindVarStatement:          "VarStatement",
	KindExpressionStatement:   "ExpressionStatement",
	KindBlockStatement:        "BlockStatement",
	KindReturnStatement:       "ReturnStatement",
	KindIfStatement:           "IfStatement",
	KindForStatement:          "ForStatement",
	KindForInStatement:        "ForInStatement",
	KindWhileStatement:        "WhileStatement",
	KindDoWhileStatement:      "DoWhileStatement",
	KindSwitchStatement:       "SwitchStatement",
	KindSwitchCase:            "SwitchCase",
	KindTryStatement:          "TryStatement",
	KindThrowStatement:        "ThrowStatement",
	KindBreakStatement:        "BreakStatement",
	KindContinueStatement:     "ContinueStatement",
	KindFunctionDeclaration:   "FunctionDeclaration",
	KindEmptyStatement:        "EmptyStatement",
	KindIdentifier:            "Identifier",
	KindStringLiteral:         "StringLiteral",
	KindNumberLiteral:         "NumberLiteral",
	KindBooleanLiteral:        "BooleanLiteral",
	KindNullLiteral:           "NullLiteral",
	KindRegexLiteral:          "RegexLiteral",
	KindTemplateLiteral:       "TemplateLiteral",
	KindThisExpression:        "ThisExpression",
	KindArrayLiteral:          "ArrayLiteral",
	KindObjectLiteral:         "ObjectLiteral",
	KindProperty:              "Property",
	KindMemberExpression:      "MemberExpression",
	KindCallExpression:        "CallExpression",
	KindNewExpression:         "NewExpression",
	KindAssignExpression:      "AssignExpression",
	KindPrefixExpression:      "PrefixExpression",
	KindPostfixExpression:     "PostfixExpression",
	KindInfixExpression:       "InfixExpression",
	KindConditionalExpression: "ConditionalExpression",
	KindFunctionLiteral:       "FunctionLiteral",
	KindSpreadElement:         "SpreadElement",
}

// String returns the node kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// NodeInfo carries the source span shared by all AST nodes.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() Kind
	GetSpan() token.Span
}

// Statement is implemented by statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// Expression is implemented by expression nodes.
type Expression interface {
	Node
	exprNode()
}

// ---------- Statements ----------

// Program is the root node of a parsed unit.
type Program struct {
	NodeInfo
	Statements []Statement
}

// VarStatement is a var/let/const declaration with one or more declarators.
type VarStatement struct {
	NodeInfo
	Keyword string // "var", "let" or "const"
	Decls   []*Declarator
}

// Declarator is one name/initializer pair of a VarStatement.
// Value is nil for bare declarations.
type Declarator struct {
	Name  *Identifier
	Value Expression
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	NodeInfo
	Expr Expression
}

// BlockStatement is a `{ ... }` statement list.
type BlockStatement struct {
	NodeInfo
	Statements []Statement
}

// ReturnStatement returns an optional value from a function.
type ReturnStatement struct {
	NodeInfo
	Value Expression // nil for bare return
}

// IfStatement is an if/else conditional.
type IfStatement struct {
	NodeInfo
	Cond Expression
	Then Statement
	Else Statement // nil when absent
}

// ForStatement is a classic three-clause for loop. Init is a VarStatement,
// an ExpressionStatement, or nil; Cond and Post may be nil.
type ForStatement struct {
	NodeInfo
	Init Node
	Cond Expression
	Post Expression
	Body Statement
}

// ForInStatement covers both for-in and for-of loops.
type ForInStatement struct {
	NodeInfo
	Left  Node // VarStatement with one bare declarator, or an Expression
	Of    bool // true for for-of
	Right Expression
	Body  Statement
}

// WhileStatement is a while loop.
type WhileStatement struct {
	NodeInfo
	Cond Expression
	Body Statement
}

// DoWhileStatement is a do/while loop.
type DoWhileStatement struct {
	NodeInfo
	Body Statement
	Cond Expression
}

// SwitchStatement is a switch over a discriminant.
type SwitchStatement struct {
	NodeInfo
	Disc  Expression
	Cases []*SwitchCase
}

// SwitchCase is one case clause, or default when Test is nil.
type SwitchCase struct {
	NodeInfo
	Test Expression
	Body []Statement
}

// TryStatement is a try/catch/finally. Catch and Finally may each be nil,
// but not both.
type TryStatement struct {
	NodeInfo
	Block      *BlockStatement
	CatchParam *Identifier // nil for a parameterless catch
	Catch      *BlockStatement
	Finally    *BlockStatement
}

// ThrowStatement throws a value.
type ThrowStatement struct {
	NodeInfo
	Value Expression
}

// BreakStatement breaks out of a loop or switch.
type BreakStatement struct {
	NodeInfo
}

// ContinueStatement continues a loop.
type ContinueStatement struct {
	NodeInfo
}

// FunctionDeclaration is a named function in statement position.
type FunctionDeclaration struct {
	NodeInfo
	Fn *FunctionLiteral
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	NodeInfo
}

func (*Program) Kind() Kind             { return KindProgram }
func (*VarStatement) Kind() Kind        { return KindVarStatement }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*BlockStatement) Kind() Kind      { return KindBlockStatement }
func (*ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (*IfStatement) Kind() Kind         { return KindIfStatement }
func (*ForStatement) Kind() Kind        { return KindForStatement }
func (*ForInStatement) Kind() Kind      { return KindForInStatement }
func (*WhileStatement) Kind() Kind      { return KindWhileStatement }
func (*DoWhileStatement) Kind() Kind    { return KindDoWhileStatement }
func (*SwitchStatement) Kind() Kind     { return KindSwitchStatement }
func (*SwitchCase) Kind() Kind          { return KindSwitchCase }
func (*TryStatement) Kind() Kind        { return KindTryStatement }
func (*ThrowStatement) Kind() Kind      { return KindThrowStatement }
func (*BreakStatement) Kind() Kind      { return KindBreakStatement }
func (*ContinueStatement) Kind() Kind   { return KindContinueStatement }
func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*EmptyStatement) Kind() Kind      { return KindEmptyStatement }

func (*Program) stmtNode()             {}
func (*VarStatement) stmtNode()        {}
func (*ExpressionStatement) stmtNode() {}
func (*BlockStatement) stmtNode()      {}
func (*ReturnStatement) stmtNode()     {}
func (*IfStatement) stmtNode()         {}
func (*ForStatement) stmtNode()        {}
func (*ForInStatement) stmtNode()      {}
func (*WhileStatement) stmtNode()      {}
func (*DoWhileStatement) stmtNode()    {}
func (*SwitchStatement) stmtNode()     {}
func (*TryStatement) stmtNode()        {}
func (*ThrowStatement) stmtNode()      {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*FunctionDeclaration) stmtNode() {}
func (*EmptyStatement) stmtNode()      {}

// ---------- Expressions ----------

// Identifier is a name reference.
type Identifier struct {
	NodeInfo
	Name string
}

// StringLiteral holds the cooked string value, quotes removed and escapes
// resolved.
type StringLiteral struct {
	NodeInfo
	Value string
}

// NumberLiteral holds a numeric literal. Raw preserves the source text.
type NumberLiteral struct {
	NodeInfo
	Value float64
	Raw   string
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	NodeInfo
	Value bool
}

// NullLiteral is null.
type NullLiteral struct {
	NodeInfo
}

// RegexLiteral holds a regular expression literal, delimiters and flags
// included.
type RegexLiteral struct {
	NodeInfo
	Raw string
}

// TemplateLiteral holds a template string. Raw excludes the backticks;
// interpolations are kept as raw text.
type TemplateLiteral struct {
	NodeInfo
	Raw string
}

// ThisExpression is the this keyword.
type ThisExpression struct {
	NodeInfo
}

// ArrayLiteral is `[ ... ]`.
type ArrayLiteral struct {
	NodeInfo
	Elements []Expression
}

// ObjectLiteral is `{ ... }` holding an ordered property list. The parser
// does not enforce key uniqueness; lookups return the first match.
type ObjectLiteral struct {
	NodeInfo
	Properties []*Property
}

// Property is one key/value entry of an object literal.
type Property struct {
	NodeInfo
	Key       Expression
	Value     Expression
	Computed  bool // [expr]: value
	Shorthand bool // { name }
	Method    bool // { name() {} }
}

// Name returns the literal property name: the identifier text or the cooked
// string value of the key. Computed and non-literal keys yield "".
func (p *Property) Name() string {
	if p.Computed {
		return ""
	}
	switch key := p.Key.(type) {
	case *Identifier:
		return key.Name
	case *StringLiteral:
		return key.Value
	case *NumberLiteral:
		return key.Raw
	}
	return ""
}

// MemberExpression is property access: `obj.name` or `obj[expr]`.
// Property holds the name for dot access; Index holds the expression for
// computed access.
type MemberExpression struct {
	NodeInfo
	Object   Expression
	Property *Identifier
	Index    Expression
	Computed bool
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	NodeInfo
	Callee    Expression
	Arguments []Expression
}

// NewExpression is `new callee(args...)`.
type NewExpression struct {
	NodeInfo
	Callee    Expression
	Arguments []Expression
}

// AssignExpression is `left = right` and the compound assignment family.
type AssignExpression struct {
	NodeInfo
	Operator string
	Left     Expression
	Right    Expression
}

// PrefixExpression is a prefix operator application: !x, -x, typeof x, ++x.
type PrefixExpression struct {
	NodeInfo
	Operator string
	Right    Expression
}

// PostfixExpression is x++ or x--.
type PostfixExpression struct {
	NodeInfo
	Operator string
	Operand  Expression
}

// InfixExpression is a binary operator application.
type InfixExpression struct {
	NodeInfo
	Operator string
	Left     Expression
	Right    Expression
}

// ConditionalExpression is `cond ? then : else`.
type ConditionalExpression struct {
	NodeInfo
	Cond Expression
	Then Expression
	Else Expression
}

// FunctionLiteral covers function expressions, declaration bodies and arrow
// functions. Arrow functions with an expression body have ExprBody set and
// Body nil.
type FunctionLiteral struct {
	NodeInfo
	Name      *Identifier // nil for anonymous functions
	Params    []*Identifier
	RestParam *Identifier // nil unless `...name` is present
	Body      *BlockStatement
	Arrow     bool
	ExprBody  Expression
}

// SpreadElement is `...expr` in call arguments or array literals.
type SpreadElement struct {
	NodeInfo
	Argument Expression
}

func (*Identifier) Kind() Kind            { return KindIdentifier }
func (*StringLiteral) Kind() Kind         { return KindStringLiteral }
func (*NumberLiteral) Kind() Kind         { return KindNumberLiteral }
func (*BooleanLiteral) Kind() Kind        { return KindBooleanLiteral }
func (*NullLiteral) Kind() Kind           { return KindNullLiteral }
func (*RegexLiteral) Kind() Kind          { return KindRegexLiteral }
func (*TemplateLiteral) Kind() Kind       { return KindTemplateLiteral }
func (*ThisExpression) Kind() Kind        { return KindThisExpression }
func (*ArrayLiteral) Kind() Kind          { return KindArrayLiteral }
func (*ObjectLiteral) Kind() Kind         { return KindObjectLiteral }
func (*Property) Kind() Kind              { return KindProperty }
func (*MemberExpression) Kind() Kind      { return KindMemberExpression }
func (*CallExpression) Kind() Kind        { return KindCallExpression }
func (*NewExpression) Kind() Kind         { return KindNewExpression }
func (*AssignExpression) Kind() Kind      { return KindAssignExpression }
func (*PrefixExpression) Kind() Kind      { return KindPrefixExpression }
func (*PostfixExpression) Kind() Kind     { return KindPostfixExpression }
func (*InfixExpression) Kind() Kind       { return KindInfixExpression }
func (*ConditionalExpression) Kind() Kind { return KindConditionalExpression }
func (*FunctionLiteral) Kind() Kind       { return KindFunctionLiteral }
func (*SpreadElement) Kind() Kind         { return KindSpreadElement }

func (*Identifier) exprNode()            {}
func (*StringLiteral) exprNode()         {}
func (*NumberLiteral) exprNode()         {}
func (*BooleanLiteral) exprNode()        {}
func (*NullLiteral) exprNode()           {}
func (*RegexLiteral) exprNode()          {}
func (*TemplateLiteral) exprNode()       {}
func (*ThisExpression) exprNode()        {}
func (*ArrayLiteral) exprNode()          {}
func (*ObjectLiteral) exprNode()         {}
func (*Property) exprNode()              {}
func (*MemberExpression) exprNode()      {}
func (*CallExpression) exprNode()        {}
func (*NewExpression) exprNode()         {}
func (*AssignExpression) exprNode()      {}
func (*PrefixExpression) exprNode()      {}
func (*PostfixExpression) exprNode()     {}
func (*InfixExpression) exprNode()       {}
func (*ConditionalExpression) exprNode() {}
func (*FunctionLiteral) exprNode()       {}
func (*SpreadElement) exprNode()         {}

// Prop returns the property with the given literal name from an object
// literal, or nil. Non-object nodes (including nil) yield nil, which keeps
// chained lookups over loosely shaped config objects safe.
func Prop(node Node, name string) *Property {
	obj, ok := node.(*ObjectLiteral)
	if !ok {
		return nil
	}
	for _, p := range obj.Properties {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
