package symtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symtree "github.com/njchilds90/symtree"
)

func TestDifferentiatorContext_DefaultVariable(t *testing.T) {
	ctx := symtree.NewDifferentiatorContext(nil, nil)
	require.NotNil(t, ctx.Variable())
	assert.Equal(t, symtree.DefaultVariable, ctx.Variable().Name())
	assert.Nil(t, ctx.Functions())
}

func TestDifferentiatorContext_WithVariableCopies(t *testing.T) {
	table := symtree.NewFunctionTable()
	ctx := symtree.NewDifferentiatorContext(x, table)
	other := ctx.WithVariable(y)

	assert.Equal(t, "x", ctx.Variable().Name())
	assert.Equal(t, "y", other.Variable().Name())
	assert.Same(t, table, other.Functions())

	ctx.SetVariable(y)
	assert.Equal(t, "y", ctx.Variable().Name())
	requirePanicIs(t, symtree.ErrArgumentNull, func() { ctx.SetVariable(nil) })
}

func TestFunctionTable(t *testing.T) {
	table := symtree.NewFunctionTable()
	require.NoError(t, table.Define("f", []string{"a"}, symtree.S("a")))
	require.NoError(t, table.Define("f", []string{"a", "b"}, symtree.AddOf(symtree.S("a"), symtree.S("b"))))
	require.NoError(t, table.Define("g", nil, n(1)))
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []symtree.Signature{{Name: "f", Arity: 1}, {Name: "f", Arity: 2}, {Name: "g", Arity: 0}}, table.Signatures())

	fn, ok := table.Lookup(symtree.Signature{Name: "f", Arity: 2})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, fn.Params)

	require.NoError(t, table.Define("g", nil, n(2)))
	fn, _ = table.Lookup(symtree.Signature{Name: "g"})
	requireEqualTree(t, n(2), fn.Body)

	table.Remove(symtree.Signature{Name: "f", Arity: 1})
	_, ok = table.Lookup(symtree.Signature{Name: "f", Arity: 1})
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())

	assert.ErrorIs(t, table.Define("", nil, n(1)), symtree.ErrArgumentNull)
	assert.ErrorIs(t, table.Define("h", nil, nil), symtree.ErrArgumentNull)
}

func TestFunctionTable_DefineCopiesParams(t *testing.T) {
	table := symtree.NewFunctionTable()
	params := []string{"a"}
	require.NoError(t, table.Define("f", params, symtree.S("a")))
	params[0] = "z"
	fn, _ := table.Lookup(symtree.Signature{Name: "f", Arity: 1})
	assert.Equal(t, []string{"a"}, fn.Params)
}

func TestFunctionTable_DefineExpression(t *testing.T) {
	table := symtree.NewFunctionTable()
	def := symtree.DefineOf(symtree.UserFunctionOf("f", x, y), symtree.MulOf(x, y))
	require.NoError(t, table.DefineExpression(def))
	fn, ok := table.Lookup(symtree.Signature{Name: "f", Arity: 2})
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, fn.Params)

	assert.ErrorIs(t, table.DefineExpression(nil), symtree.ErrArgumentNull)
	assert.ErrorIs(t, table.DefineExpression(symtree.DefineOf(x, n(1))), symtree.ErrParameterTypeMismatch)
	bad := symtree.DefineOf(symtree.UserFunctionOf("f", n(1)), x)
	assert.ErrorIs(t, table.DefineExpression(bad), symtree.ErrParameterTypeMismatch)
}

func TestFunction_Bind(t *testing.T) {
	fn := symtree.Function{Params: []string{"a", "b"}, Body: symtree.SubOf(symtree.S("a"), symtree.S("b"))}
	got, err := fn.Bind([]symtree.Expression{symtree.S("b"), n(1)})
	require.NoError(t, err)
	requireEqualTree(t, symtree.SubOf(symtree.S("b"), n(1)), got)

	_, err = fn.Bind([]symtree.Expression{n(1)})
	assert.ErrorIs(t, err, symtree.ErrArity)
}
