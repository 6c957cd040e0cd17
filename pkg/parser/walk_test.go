package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/pkg/parser"
)

func TestWalkPreOrder(t *testing.T) {
	unit, err := parser.ParseSource("t.js", "var a = f(1);")
	require.NoError(t, err)

	var kinds []parser.Kind
	parser.Walk(unit.Program, func(n parser.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []parser.Kind{
		parser.KindProgram,
		parser.KindVarStatement,
		parser.KindIdentifier,     // a
		parser.KindCallExpression, // f(1)
		parser.KindIdentifier,     // f
		parser.KindNumberLiteral,  // 1
	}, kinds)
}

func TestWalkPrunesSubtree(t *testing.T) {
	src := "function outer() { inner(); } var after = 1;"
	unit, err := parser.ParseSource("t.js", src)
	require.NoError(t, err)

	var names []string
	parser.Walk(unit.Program, func(n parser.Node) bool {
		if n.Kind() == parser.KindFunctionLiteral {
			return false // skip the function body
		}
		if ident, ok := n.(*parser.Identifier); ok {
			names = append(names, ident.Name)
		}
		return true
	})

	assert.Equal(t, []string{"after"}, names,
		"identifiers inside the pruned function must not be visited")
}

func TestWalkVisitsObjectProperties(t *testing.T) {
	unit, err := parser.ParseSource("t.js", "const m = { docs: { description: 'd' } };")
	require.NoError(t, err)

	props := 0
	parser.Walk(unit.Program, func(n parser.Node) bool {
		if n.Kind() == parser.KindProperty {
			props++
		}
		return true
	})
	assert.Equal(t, 2, props)
}

func TestWalkNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		parser.Walk(nil, func(parser.Node) bool { return true })
	})
}
