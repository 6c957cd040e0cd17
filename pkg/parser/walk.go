package parser

// Walk traverses the AST rooted at node in pre-order, calling visit for each
// node. If visit returns false, the node's children are skipped; traversal
// continues with its siblings.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, visit)
		}
	case *VarStatement:
		for _, d := range n.Decls {
			Walk(d.Name, visit)
			walkExpr(d.Value, visit)
		}
	case *ExpressionStatement:
		walkExpr(n.Expr, visit)
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(stmt, visit)
		}
	case *ReturnStatement:
		walkExpr(n.Value, visit)
	case *IfStatement:
		walkExpr(n.Cond, visit)
		walkStmt(n.Then, visit)
		walkStmt(n.Else, visit)
	case *ForStatement:
		if n.Init != nil {
			Walk(n.Init, visit)
		}
		walkExpr(n.Cond, visit)
		walkExpr(n.Post, visit)
		walkStmt(n.Body, visit)
	case *ForInStatement:
		if n.Left != nil {
			Walk(n.Left, visit)
		}
		walkExpr(n.Right, visit)
		walkStmt(n.Body, visit)
	case *WhileStatement:
		walkExpr(n.Cond, visit)
		walkStmt(n.Body, visit)
	case *DoWhileStatement:
		walkStmt(n.Body, visit)
		walkExpr(n.Cond, visit)
	case *SwitchStatement:
		walkExpr(n.Disc, visit)
		for _, c := range n.Cases {
			Walk(c, visit)
		}
	case *SwitchCase:
		walkExpr(n.Test, visit)
		for _, stmt := range n.Body {
			Walk(stmt, visit)
		}
	case *TryStatement:
		if n.Block != nil {
			Walk(n.Block, visit)
		}
		if n.CatchParam != nil {
			Walk(n.CatchParam, visit)
		}
		if n.Catch != nil {
			Walk(n.Catch, visit)
		}
		if n.Finally != nil {
			Walk(n.Finally, visit)
		}
	case *ThrowStatement:
		walkExpr(n.Value, visit)
	case *FunctionDeclaration:
		if n.Fn != nil {
			Walk(n.Fn, visit)
		}
	case *ArrayLiteral:
		for _, el := range n.Elements {
			walkExpr(el, visit)
		}
	case *ObjectLiteral:
		for _, prop := range n.Properties {
			Walk(prop, visit)
		}
	case *Property:
		walkExpr(n.Key, visit)
		walkExpr(n.Value, visit)
	case *MemberExpression:
		walkExpr(n.Object, visit)
		if n.Computed {
			walkExpr(n.Index, visit)
		} else if n.Property != nil {
			Walk(n.Property, visit)
		}
	case *CallExpression:
		walkExpr(n.Callee, visit)
		for _, arg := range n.Arguments {
			walkExpr(arg, visit)
		}
	case *NewExpression:
		walkExpr(n.Callee, visit)
		for _, arg := range n.Arguments {
			walkExpr(arg, visit)
		}
	case *AssignExpression:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *PrefixExpression:
		walkExpr(n.Right, visit)
	case *PostfixExpression:
		walkExpr(n.Operand, visit)
	case *InfixExpression:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *ConditionalExpression:
		walkExpr(n.Cond, visit)
		walkExpr(n.Then, visit)
		walkExpr(n.Else, visit)
	case *FunctionLiteral:
		if n.Name != nil {
			Walk(n.Name, visit)
		}
		for _, param := range n.Params {
			Walk(param, visit)
		}
		if n.RestParam != nil {
			Walk(n.RestParam, visit)
		}
		if n.Body != nil {
			Walk(n.Body, visit)
		}
		walkExpr(n.ExprBody, visit)
	case *SpreadElement:
		walkExpr(n.Argument, visit)
	}
}

func walkExpr(e Expression, visit func(Node) bool) {
	if e != nil {
		Walk(e, visit)
	}
}

func walkStmt(s Statement, visit func(Node) bool) {
	if s != nil {
		Walk(s, visit)
	}
}
