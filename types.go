package symtree

import (
	"fmt"
	"strings"
)

// ============================================================
// ResultType lattice
// ============================================================

// ResultType is a set of value kinds a node may evaluate to.
// TypeUndefined marks a kind unknown before evaluation, such as an unbound
// variable; every operator accepts it.
type ResultType uint16

const (
	TypeNone      ResultType = 0
	TypeUndefined ResultType = 1 << (iota - 1)
	TypeNumber
	TypeComplexNumber
	TypeBoolean
	TypeVector
	TypeMatrix
	TypeAngle
	TypeFunction
)

var resultTypeNames = []struct {
	t    ResultType
	name string
}{
	{TypeUndefined, "undefined"},
	{TypeNumber, "number"},
	{TypeComplexNumber, "complex"},
	{TypeBoolean, "boolean"},
	{TypeVector, "vector"},
	{TypeMatrix, "matrix"},
	{TypeAngle, "angle"},
	{TypeFunction, "function"},
}

func (t ResultType) String() string {
	if t == TypeNone {
		return "none"
	}
	var parts []string
	for _, n := range resultTypeNames {
		if t&n.t != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every kind in u is in t.
func (t ResultType) Has(u ResultType) bool { return t&u == u }

// single reports whether t is exactly one known kind.
func (t ResultType) single() bool { return t != TypeNone && t != TypeUndefined && t&(t-1) == 0 }

const (
	numeric     = TypeNumber | TypeComplexNumber
	scalar      = numeric | TypeAngle
	linear      = scalar | TypeVector | TypeMatrix
	logical     = TypeNumber | TypeBoolean
	anyKnown    = linear | TypeBoolean | TypeFunction
	angleOrReal = TypeNumber | TypeAngle
)

// ============================================================
// TypeAnalyzer
// ============================================================

// TypeAnalyzer infers the ResultType of a tree bottom-up and rejects
// operands outside an operator's accepted set with ErrParameterTypeMismatch.
type TypeAnalyzer struct{}

var _ Analyzer[ResultType] = TypeAnalyzer{}

// InferType runs a TypeAnalyzer on e.
func InferType(e Expression) (ResultType, error) {
	return Accept[ResultType](e, TypeAnalyzer{})
}

func (t TypeAnalyzer) Analyze(e Expression) (ResultType, error) {
	if isNil(e) {
		return TypeNone, nilArgument("expression")
	}
	switch x := e.(type) {
	case *Number:
		return TypeNumber, nil
	case *Complex:
		return TypeComplexNumber, nil
	case *Bool:
		return TypeBoolean, nil
	case *Angle:
		return TypeAngle, nil
	case *Variable, *UserFunction:
		return TypeUndefined, nil
	case *Unary:
		return t.unary(x)
	case *Binary:
		return t.binary(x)
	case *Variadic:
		return t.variadic(x)
	case *Define:
		return t.Analyze(x.value)
	case *CompoundAssign:
		return t.expect(x, x.value, linear)
	case *Undefine:
		return TypeNone, nil
	case *Lambda, *Curry:
		return TypeFunction, nil
	case *Call:
		if _, err := t.expect(x, x.function, TypeFunction); err != nil {
			return TypeNone, err
		}
		return TypeUndefined, nil
	case *Derivative:
		if _, err := t.expect(x, x.body, scalar); err != nil {
			return TypeNone, err
		}
		if x.point != nil {
			return TypeNumber, nil
		}
		return TypeFunction, nil
	}
	return TypeNone, NotSupported(e)
}

// expect infers operand and checks it against accepted.
func (t TypeAnalyzer) expect(parent, operand Expression, accepted ResultType) (ResultType, error) {
	rt, err := t.Analyze(operand)
	if err != nil {
		return TypeNone, err
	}
	if rt == TypeNone || !(accepted | TypeUndefined).Has(rt) {
		return TypeNone, fmt.Errorf("%w: %s expects %s, got %s in %s",
			ErrParameterTypeMismatch, operatorName(parent), accepted, rt, parent)
	}
	return rt, nil
}

func operatorName(e Expression) string {
	switch x := e.(type) {
	case *Unary:
		return x.op.String()
	case *Binary:
		return x.op.String()
	case *Variadic:
		return x.op.String()
	case *CompoundAssign:
		return x.op.String()
	}
	return fmt.Sprintf("%T", e)
}

func mismatch(e Expression, l, r ResultType) error {
	return fmt.Errorf("%w: %s cannot combine %s and %s in %s", ErrParameterTypeMismatch, operatorName(e), l, r, e)
}

// same returns rt for a single known kind, else TypeUndefined.
func same(rt ResultType) ResultType {
	if rt.single() {
		return rt
	}
	return TypeUndefined
}

func (t TypeAnalyzer) unary(u *Unary) (ResultType, error) {
	switch u.op {
	case OpSimplify:
		return t.Analyze(u.arg)
	case OpUnaryMinus:
		rt, err := t.expect(u, u.arg, linear)
		return same(rt), err
	case OpAbs:
		rt, err := t.expect(u, u.arg, linear)
		if err != nil {
			return TypeNone, err
		}
		if rt.single() {
			return TypeNumber, nil
		}
		return TypeUndefined, nil
	case OpNot:
		rt, err := t.expect(u, u.arg, logical)
		return same(rt), err
	case OpCeil, OpFloor, OpTrunc, OpFrac, OpFact, OpSign, OpToBin, OpToOct, OpToHex:
		_, err := t.expect(u, u.arg, TypeNumber)
		return TypeNumber, err
	case OpToNumber:
		_, err := t.expect(u, u.arg, angleOrReal)
		return TypeNumber, err
	case OpToDegree, OpToRadian, OpToGradian:
		_, err := t.expect(u, u.arg, angleOrReal)
		return TypeAngle, err
	case OpDel:
		_, err := t.expect(u, u.arg, scalar|TypeFunction)
		return TypeVector, err
	case OpTranspose, OpInverse:
		_, err := t.expect(u, u.arg, TypeVector|TypeMatrix)
		return TypeMatrix, err
	case OpDeterminant:
		_, err := t.expect(u, u.arg, TypeMatrix)
		return TypeNumber, err
	case OpConjugate:
		_, err := t.expect(u, u.arg, numeric)
		return TypeComplexNumber, err
	case OpRe, OpIm, OpPhase:
		_, err := t.expect(u, u.arg, numeric)
		return TypeNumber, err
	}
	// sqrt, exp, logarithms, trigonometric and hyperbolic functions
	accepted := numeric
	if u.op >= OpSin && u.op <= OpCsc {
		accepted |= TypeAngle
	}
	rt, err := t.expect(u, u.arg, accepted)
	if err != nil {
		return TypeNone, err
	}
	switch rt {
	case TypeComplexNumber:
		return TypeComplexNumber, nil
	case TypeNumber, TypeAngle:
		return TypeNumber, nil
	}
	return TypeUndefined, nil
}

func (t TypeAnalyzer) binary(b *Binary) (ResultType, error) {
	var accepted ResultType
	switch b.op {
	case OpAdd, OpSub, OpMul, OpDiv:
		accepted = linear
	case OpPow:
		accepted = numeric | TypeMatrix
	case OpRoot, OpLog:
		accepted = numeric
	case OpMod, OpLeftShift, OpRightShift:
		accepted = TypeNumber
	case OpAnd, OpOr, OpXOr, OpNAnd, OpNOr, OpImplication, OpEquality:
		accepted = logical
	case OpEqual, OpNotEqual:
		accepted = anyKnown
	case OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual:
		accepted = angleOrReal
	case OpCross, OpDot:
		accepted = TypeVector
	default:
		return TypeNone, NotSupported(b)
	}
	l, err := t.expect(b, b.left, accepted)
	if err != nil {
		return TypeNone, err
	}
	r, err := t.expect(b, b.right, accepted)
	if err != nil {
		return TypeNone, err
	}
	switch b.op {
	case OpEqual, OpNotEqual, OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual:
		return TypeBoolean, nil
	case OpMod, OpLeftShift, OpRightShift:
		return TypeNumber, nil
	case OpCross:
		return TypeVector, nil
	case OpDot:
		return TypeNumber, nil
	}
	if !l.single() || !r.single() {
		return TypeUndefined, nil
	}
	switch b.op {
	case OpAnd, OpOr, OpXOr, OpNAnd, OpNOr, OpImplication, OpEquality:
		if l != r {
			return TypeNone, mismatch(b, l, r)
		}
		return l, nil
	case OpAdd, OpSub:
		return t.additive(b, l, r)
	case OpMul:
		return t.multiplicative(b, l, r)
	case OpDiv:
		if r == TypeNumber && (l == TypeVector || l == TypeMatrix || l == TypeAngle) {
			return l, nil
		}
		if l == TypeAngle && r == TypeAngle {
			return TypeNumber, nil
		}
		return t.scalar(b, l, r)
	case OpPow:
		if l == TypeMatrix && r == TypeNumber {
			return TypeMatrix, nil
		}
		return t.scalar(b, l, r)
	}
	return t.scalar(b, l, r)
}

// scalar promotes number and complex operands.
func (t TypeAnalyzer) scalar(b *Binary, l, r ResultType) (ResultType, error) {
	if !numeric.Has(l) || !numeric.Has(r) {
		return TypeNone, mismatch(b, l, r)
	}
	if l == TypeComplexNumber || r == TypeComplexNumber {
		return TypeComplexNumber, nil
	}
	return TypeNumber, nil
}

func (t TypeAnalyzer) additive(b *Binary, l, r ResultType) (ResultType, error) {
	switch {
	case l == r:
		return l, nil
	case l == TypeAngle && r == TypeNumber, l == TypeNumber && r == TypeAngle:
		return TypeAngle, nil
	}
	return t.scalar(b, l, r)
}

func (t TypeAnalyzer) multiplicative(b *Binary, l, r ResultType) (ResultType, error) {
	switch {
	case l == TypeVector && r == TypeVector:
		return TypeNumber, nil
	case l == TypeMatrix && (r == TypeMatrix || r == TypeNumber), l == TypeNumber && r == TypeMatrix:
		return TypeMatrix, nil
	case l == TypeMatrix && r == TypeVector,
		l == TypeNumber && r == TypeVector, l == TypeVector && r == TypeNumber:
		return TypeVector, nil
	case l == TypeAngle && r == TypeNumber, l == TypeNumber && r == TypeAngle:
		return TypeAngle, nil
	}
	return t.scalar(b, l, r)
}

func (t TypeAnalyzer) variadic(v *Variadic) (ResultType, error) {
	switch v.op {
	case OpGCD, OpLCM, OpRound:
		return t.all(v, TypeNumber, TypeNumber)
	case OpSum, OpAvg, OpMin, OpMax, OpProduct, OpStdev, OpStdevp, OpVar, OpVarp, OpCount:
		return t.all(v, TypeNumber|TypeVector, TypeNumber)
	case OpVector:
		return t.all(v, numeric|TypeBoolean, TypeVector)
	case OpMatrix:
		return t.all(v, TypeVector, TypeMatrix)
	case OpIf:
		if _, err := t.expect(v, v.args[0], logical); err != nil {
			return TypeNone, err
		}
		var result ResultType
		for _, branch := range v.args[1:] {
			rt, err := t.Analyze(branch)
			if err != nil {
				return TypeNone, err
			}
			result |= rt
		}
		return result, nil
	case OpFor, OpWhile:
		for _, a := range v.args {
			if _, err := t.Analyze(a); err != nil {
				return TypeNone, err
			}
		}
		return TypeUndefined, nil
	}
	return TypeNone, NotSupported(v)
}

// all checks every argument of v against accepted.
func (t TypeAnalyzer) all(v *Variadic, accepted, result ResultType) (ResultType, error) {
	for _, a := range v.args {
		if _, err := t.expect(v, a, accepted); err != nil {
			return TypeNone, err
		}
	}
	return result, nil
}
