package symtree_test

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symtree "github.com/njchilds90/symtree"
)

var (
	x = symtree.S("x")
	y = symtree.S("y")
)

func n(v float64) *symtree.Number { return symtree.N(v) }

// variants builds one node of every variant and operator over the variable
// name.
func variants(name string) map[string]symtree.Expression {
	c := symtree.S(name)
	t := symtree.S("t")
	out := map[string]symtree.Expression{
		"number":          symtree.N(1),
		"variable":        c,
		"bool":            symtree.B(true),
		"complex":         symtree.C(1 + 2i),
		"angle":           symtree.Deg(30),
		"nan angle":       symtree.Deg(math.NaN()),
		"define":          symtree.DefineOf(c, symtree.N(1)),
		"define function": symtree.DefineOf(symtree.UserFunctionOf("f", t), symtree.AddOf(t, c)),
		"undefine":        symtree.UndefineOf(c),
		"compound assign": symtree.CompoundAssignOf(symtree.AddAssign, c, symtree.N(1)),
		"user function":   symtree.UserFunctionOf("f", c),
		"lambda":          symtree.LambdaOf([]string{"t"}, symtree.AddOf(t, c)),
		"call":            symtree.CallOf(symtree.LambdaOf([]string{"t"}, t), c),
		"curry":           symtree.CurryOf(symtree.LambdaOf([]string{"t", "u"}, t), c),
		"derivative":      symtree.DerivativeOf(symtree.PowOf(c, symtree.N(2)), c, nil),
		"derivative at":   symtree.DerivativeOf(symtree.PowOf(c, symtree.N(2)), c, symtree.N(3)),
	}
	for _, op := range symtree.UnaryOps() {
		out["unary "+op.String()] = symtree.NewUnary(op, c)
	}
	for _, op := range symtree.BinaryOps() {
		out["binary "+op.String()] = symtree.NewBinary(op, c, symtree.N(2))
	}
	for _, op := range symtree.VariadicOps() {
		min, _ := op.Arity()
		args := make([]symtree.Expression, min)
		for i := range args {
			args[i] = c
			if op == symtree.OpMatrix {
				args[i] = symtree.VectorOf(c, symtree.N(1))
			}
		}
		out["variadic "+op.String()] = symtree.NewVariadic(op, args...)
	}
	return out
}

// typedNil returns a nil pointer of the concrete type of e.
func typedNil(e symtree.Expression) symtree.Expression {
	return reflect.Zero(reflect.TypeOf(e)).Interface().(symtree.Expression)
}

// randomTree builds a tree over x, y and a few constants from the operators
// the simplifier has rules for.
func randomTree(r *rand.Rand, depth int) symtree.Expression {
	if depth == 0 || r.Intn(4) == 0 {
		switch r.Intn(10) {
		case 0:
			return x
		case 1:
			return y
		case 2:
			return symtree.S("e")
		case 3:
			return symtree.Deg([]float64{0, 30, 90}[r.Intn(3)])
		case 4:
			return symtree.Rad(1)
		}
		return symtree.N([]float64{0, 1, -1, 2, 3, 0.5}[r.Intn(6)])
	}
	if r.Intn(3) == 0 {
		ops := []symtree.UnaryOp{
			symtree.OpUnaryMinus, symtree.OpSin, symtree.OpArcsin, symtree.OpLn,
			symtree.OpExp, symtree.OpSqrt, symtree.OpAbs, symtree.OpLg, symtree.OpSimplify,
			symtree.OpToDegree, symtree.OpToRadian, symtree.OpToNumber,
		}
		return symtree.NewUnary(ops[r.Intn(len(ops))], randomTree(r, depth-1))
	}
	ops := []symtree.BinaryOp{
		symtree.OpAdd, symtree.OpSub, symtree.OpMul, symtree.OpDiv,
		symtree.OpPow, symtree.OpLog, symtree.OpRoot,
	}
	return symtree.NewBinary(ops[r.Intn(len(ops))], randomTree(r, depth-1), randomTree(r, depth-1))
}

// requirePanicIs fails unless fn panics with an error wrapping target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

// requireEqualTree fails with both renderings when got and want differ.
func requireEqualTree(t *testing.T, want, got symtree.Expression) {
	t.Helper()
	require.NotNil(t, got)
	require.True(t, want.Equal(got), "want %s, got %s", want, got)
}
