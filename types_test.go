package symtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symtree "github.com/njchilds90/symtree"
)

func TestInferType(t *testing.T) {
	vec := symtree.VectorOf(n(1), n(2))
	mat := symtree.MatrixOf(symtree.VectorOf(n(1), n(2)), symtree.VectorOf(n(3), n(4)))
	tests := []struct {
		name string
		e    symtree.Expression
		want symtree.ResultType
	}{
		{"number", n(1), symtree.TypeNumber},
		{"complex", symtree.C(2i), symtree.TypeComplexNumber},
		{"bool", symtree.B(true), symtree.TypeBoolean},
		{"angle", symtree.Deg(30), symtree.TypeAngle},
		{"variable", x, symtree.TypeUndefined},
		{"sum", symtree.AddOf(n(1), n(2)), symtree.TypeNumber},
		{"unbound operand", symtree.AddOf(x, n(2)), symtree.TypeUndefined},
		{"complex promotion", symtree.MulOf(n(2), symtree.C(1i)), symtree.TypeComplexNumber},
		{"angle plus number", symtree.AddOf(symtree.Deg(1), n(2)), symtree.TypeAngle},
		{"angle ratio", symtree.DivOf(symtree.Deg(1), symtree.Deg(2)), symtree.TypeNumber},
		{"sin of angle", symtree.SinOf(symtree.Deg(30)), symtree.TypeNumber},
		{"sqrt of complex", symtree.SqrtOf(symtree.C(-1)), symtree.TypeComplexNumber},
		{"abs", symtree.AbsOf(vec), symtree.TypeNumber},
		{"dot product", symtree.MulOf(vec, vec), symtree.TypeNumber},
		{"scaled vector", symtree.MulOf(n(2), vec), symtree.TypeVector},
		{"matrix product", symtree.MulOf(mat, mat), symtree.TypeMatrix},
		{"matrix vector", symtree.MulOf(mat, vec), symtree.TypeVector},
		{"matrix power", symtree.PowOf(mat, n(2)), symtree.TypeMatrix},
		{"determinant", symtree.NewUnary(symtree.OpDeterminant, mat), symtree.TypeNumber},
		{"transpose", symtree.NewUnary(symtree.OpTranspose, vec), symtree.TypeMatrix},
		{"cross", symtree.NewBinary(symtree.OpCross, vec, vec), symtree.TypeVector},
		{"comparison", symtree.NewBinary(symtree.OpLessThan, n(1), symtree.Deg(2)), symtree.TypeBoolean},
		{"and", symtree.AndOf(symtree.B(true), symtree.B(false)), symtree.TypeBoolean},
		{"not", symtree.NotOf(symtree.B(true)), symtree.TypeBoolean},
		{"to degree", symtree.ToDegreeOf(n(1)), symtree.TypeAngle},
		{"to number", symtree.ToNumberOf(symtree.Deg(1)), symtree.TypeNumber},
		{"vector", vec, symtree.TypeVector},
		{"matrix", mat, symtree.TypeMatrix},
		{"if", symtree.IfOf(symtree.B(true), n(1), vec), symtree.TypeNumber | symtree.TypeVector},
		{"aggregate", symtree.SumOf(n(1), vec), symtree.TypeNumber},
		{"lambda", symtree.LambdaOf([]string{"t"}, symtree.S("t")), symtree.TypeFunction},
		{"call", symtree.CallOf(symtree.LambdaOf([]string{"t"}, symtree.S("t")), n(1)), symtree.TypeUndefined},
		{"derivative", symtree.DerivativeOf(x, x, nil), symtree.TypeFunction},
		{"derivative at point", symtree.DerivativeOf(x, x, n(1)), symtree.TypeNumber},
		{"define", symtree.DefineOf(x, symtree.B(true)), symtree.TypeBoolean},
		{"undefine", symtree.UndefineOf(x), symtree.TypeNone},
		{"simplify", symtree.SimplifyOf(n(1)), symtree.TypeNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := symtree.InferType(tt.e)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestInferType_Mismatch(t *testing.T) {
	vec := symtree.VectorOf(n(1))
	tests := []struct {
		name string
		e    symtree.Expression
	}{
		{"bool plus number", symtree.AddOf(symtree.B(true), n(1))},
		{"sin of vector", symtree.SinOf(vec)},
		{"determinant of number", symtree.NewUnary(symtree.OpDeterminant, n(2))},
		{"and of mixed", symtree.AndOf(symtree.B(true), n(1))},
		{"cross of numbers", symtree.NewBinary(symtree.OpCross, n(1), n(2))},
		{"vector plus matrix", symtree.AddOf(vec, symtree.MatrixOf(vec))},
		{"call a number", symtree.CallOf(n(1), x)},
		{"nested", symtree.MulOf(x, symtree.LnOf(symtree.B(false)))},
		{"undefine operand", symtree.AddOf(symtree.UndefineOf(x), n(1))},
		{"transpose of bool", symtree.NewUnary(symtree.OpTranspose, symtree.B(true))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := symtree.InferType(tt.e)
			assert.ErrorIs(t, err, symtree.ErrParameterTypeMismatch)
		})
	}
}

func TestResultType_String(t *testing.T) {
	assert.Equal(t, "none", symtree.TypeNone.String())
	assert.Equal(t, "number", symtree.TypeNumber.String())
	assert.Equal(t, "number|vector", (symtree.TypeNumber | symtree.TypeVector).String())

	set := symtree.TypeNumber | symtree.TypeAngle
	assert.True(t, set.Has(symtree.TypeAngle))
	assert.False(t, set.Has(symtree.TypeAngle|symtree.TypeMatrix))
}
