package symtree

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Variadic — operators with a min/max parameter count
// ============================================================

type VariadicOp int

const (
	OpGCD VariadicOp = iota
	OpLCM
	OpRound
	OpSum
	OpAvg
	OpMin
	OpMax
	OpProduct
	OpStdev
	OpStdevp
	OpVar
	OpVarp
	OpCount
	OpVector
	OpMatrix
	OpIf
	OpFor
	OpWhile

	variadicOpCount
)

type arity struct {
	name     string
	min, max int // max < 0 means unbounded
}

var variadicArity = [variadicOpCount]arity{
	OpGCD:     {"gcd", 2, -1},
	OpLCM:     {"lcm", 2, -1},
	OpRound:   {"round", 1, 2},
	OpSum:     {"sum", 1, -1},
	OpAvg:     {"avg", 1, -1},
	OpMin:     {"min", 1, -1},
	OpMax:     {"max", 1, -1},
	OpProduct: {"product", 1, -1},
	OpStdev:   {"stdev", 1, -1},
	OpStdevp:  {"stdevp", 1, -1},
	OpVar:     {"var", 1, -1},
	OpVarp:    {"varp", 1, -1},
	OpCount:   {"count", 1, -1},
	OpVector:  {"vector", 1, -1},
	OpMatrix:  {"matrix", 1, -1},
	OpIf:      {"if", 2, 3},
	OpFor:     {"for", 4, 4},
	OpWhile:   {"while", 2, 2},
}

func (op VariadicOp) String() string {
	if op >= 0 && op < variadicOpCount {
		return variadicArity[op].name
	}
	return "VariadicOp(" + strconv.Itoa(int(op)) + ")"
}

// Arity returns the minimum and maximum parameter count; max < 0 is unbounded.
func (op VariadicOp) Arity() (min, max int) {
	a := variadicArity[op]
	return a.min, a.max
}

// VariadicOps lists every variadic operator.
func VariadicOps() []VariadicOp {
	ops := make([]VariadicOp, variadicOpCount)
	for i := range ops {
		ops[i] = VariadicOp(i)
	}
	return ops
}

type Variadic struct {
	op   VariadicOp
	args []Expression
}

// NewVariadic panics with ErrArity when the argument count is outside the
// operator's range, or when a matrix is not built from equal-length vectors.
func NewVariadic(op VariadicOp, args ...Expression) *Variadic {
	min, max := op.Arity()
	checkArity(op.String(), args, min, max)
	if op == OpMatrix {
		checkMatrixRows(args)
	}
	return &Variadic{op: op, args: copyAll(args)}
}

func checkMatrixRows(rows []Expression) {
	width := -1
	for i, r := range rows {
		v, ok := variadicOf(r, OpVector)
		if !ok {
			panic(fmt.Errorf("%w: matrix row %d is not a vector", ErrArity, i))
		}
		if width >= 0 && len(v.args) != width {
			panic(fmt.Errorf("%w: matrix row %d has %d columns, want %d", ErrArity, i, len(v.args), width))
		}
		width = len(v.args)
	}
}

func (v *Variadic) Op() VariadicOp         { return v.op }
func (v *Variadic) Args() []Expression     { return copyAll(v.args) }
func (v *Variadic) Len() int               { return len(v.args) }
func (v *Variadic) Arg(i int) Expression   { return v.args[i] }
func (v *Variadic) Children() []Expression { return copyAll(v.args) }
func (v *Variadic) Clone() Expression      { return &Variadic{op: v.op, args: cloneAll(v.args)} }
func (v *Variadic) Equal(other Expression) bool {
	o, ok := other.(*Variadic)
	return ok && v.op == o.op && equalAll(v.args, o.args)
}

func (v *Variadic) String() string {
	parts := make([]string, len(v.args))
	for i, a := range v.args {
		parts[i] = a.String()
	}
	switch v.op {
	case OpVector, OpMatrix:
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return v.op.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (v *Variadic) WithChildren(children ...Expression) Expression {
	return NewVariadic(v.op, children...)
}

func variadicOf(e Expression, op VariadicOp) (*Variadic, bool) {
	v, ok := e.(*Variadic)
	if !ok || v.op != op {
		return nil, false
	}
	return v, true
}

func GCDOf(args ...Expression) Expression     { return NewVariadic(OpGCD, args...) }
func LCMOf(args ...Expression) Expression     { return NewVariadic(OpLCM, args...) }
func RoundOf(args ...Expression) Expression   { return NewVariadic(OpRound, args...) }
func SumOf(args ...Expression) Expression     { return NewVariadic(OpSum, args...) }
func AvgOf(args ...Expression) Expression     { return NewVariadic(OpAvg, args...) }
func MinOf(args ...Expression) Expression     { return NewVariadic(OpMin, args...) }
func MaxOf(args ...Expression) Expression     { return NewVariadic(OpMax, args...) }
func ProductOf(args ...Expression) Expression { return NewVariadic(OpProduct, args...) }
func CountOf(args ...Expression) Expression   { return NewVariadic(OpCount, args...) }
func VectorOf(args ...Expression) Expression  { return NewVariadic(OpVector, args...) }
func MatrixOf(rows ...Expression) Expression  { return NewVariadic(OpMatrix, rows...) }
func IfOf(args ...Expression) Expression      { return NewVariadic(OpIf, args...) }
