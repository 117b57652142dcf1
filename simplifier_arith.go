package symtree

import (
	"fmt"
	"math"
)

// Rules below receive the original node b and its already simplified
// operands l and r. The first matching rule wins.

func number(e Expression) (float64, bool) {
	n, ok := e.(*Number)
	if !ok {
		return 0, false
	}
	return n.value, true
}

// constantRight matches op(x, n).
func constantRight(e Expression, op BinaryOp) (Expression, float64, bool) {
	b, ok := binaryOf(e, op)
	if !ok {
		return nil, 0, false
	}
	n, ok := number(b.right)
	return b.left, n, ok
}

// constantLeft matches op(n, x).
func constantLeft(e Expression, op BinaryOp) (float64, Expression, bool) {
	b, ok := binaryOf(e, op)
	if !ok {
		return 0, nil, false
	}
	n, ok := number(b.left)
	return n, b.right, ok
}

func negated(e Expression) (Expression, bool) {
	u, ok := unaryOf(e, OpUnaryMinus)
	if !ok {
		return nil, false
	}
	return u.arg, true
}

// term splits a*X into (a, X); any other term is 1*e.
func term(e Expression) (float64, Expression) {
	if a, x, ok := constantLeft(e, OpMul); ok {
		return a, x
	}
	return 1, e
}

// factor splits x^p into (x, p); any other factor is e^1.
func factor(e Expression) (Expression, Expression) {
	if b, ok := binaryOf(e, OpPow); ok {
		return b.left, b.right
	}
	return e, N(1)
}

// ============================================================
// Add
// ============================================================

func (r *simplification) add(b *Binary, l, rt Expression) (Expression, error) {
	if isNumber(l, 0) {
		return r.rewrite("add zero", b, rt)
	}
	if isNumber(rt, 0) {
		return r.rewrite("add zero", b, l)
	}
	x, lok := number(l)
	y, rok := number(rt)
	if lok && rok {
		return r.rewrite("fold constants", b, N(x+y))
	}
	if a, ok := angleSum(l, rt, 1); ok {
		return r.rewrite("fold angles", b, a)
	}
	if y, ok := negated(l); ok {
		return r.rewrite("negated addend", b, SubOf(rt, y))
	}
	if y, ok := negated(rt); ok {
		return r.rewrite("negated addend", b, SubOf(l, y))
	}
	if lok {
		return r.rewrite("constants last", b, AddOf(rt, l))
	}
	if rok {
		if z, a, ok := constantRight(l, OpAdd); ok {
			return r.rewrite("nested constants", b, AddOf(z, N(a+y)))
		}
		if z, a, ok := constantRight(l, OpSub); ok {
			return r.rewrite("nested constants", b, AddOf(z, N(y-a)))
		}
		if a, z, ok := constantLeft(l, OpSub); ok {
			return r.rewrite("nested constants", b, SubOf(N(a+y), z))
		}
		return sameBinary(b, l, rt), nil
	}
	if z, n, ok := constantRight(rt, OpAdd); ok {
		return r.rewrite("constants last", b, AddOf(AddOf(l, z), N(n)))
	}
	if z, n, ok := constantRight(l, OpAdd); ok {
		return r.rewrite("constants last", b, AddOf(AddOf(z, rt), N(n)))
	}
	ca, xa := term(l)
	cb, xb := term(rt)
	if xa.Equal(xb) {
		return r.rewrite("like terms", b, MulOf(N(ca+cb), xa))
	}
	return sameBinary(b, l, rt), nil
}

// angleSum folds angle±angle and angle±number into the unit of the angle
// operand (the left one when both are angles). sign is 1 or -1.
func angleSum(l, r Expression, sign float64) (*Angle, bool) {
	la, lok := l.(*Angle)
	ra, rok := r.(*Angle)
	switch {
	case lok && rok:
		return &Angle{value: la.value + sign*ra.To(la.unit).value, unit: la.unit}, true
	case lok:
		if n, ok := number(r); ok {
			return &Angle{value: la.value + sign*n, unit: la.unit}, true
		}
	case rok:
		if n, ok := number(l); ok {
			return &Angle{value: n + sign*ra.value, unit: ra.unit}, true
		}
	}
	return nil, false
}

// ============================================================
// Sub
// ============================================================

func (r *simplification) sub(b *Binary, l, rt Expression) (Expression, error) {
	if isNumber(rt, 0) {
		return r.rewrite("subtract zero", b, l)
	}
	if isNumber(l, 0) {
		return r.rewrite("subtract from zero", b, NegOf(rt))
	}
	x, lok := number(l)
	y, rok := number(rt)
	if lok && rok {
		return r.rewrite("fold constants", b, N(x-y))
	}
	if a, ok := angleSum(l, rt, -1); ok {
		return r.rewrite("fold angles", b, a)
	}
	if l.Equal(rt) {
		return r.rewrite("self subtraction", b, N(0))
	}
	if z, ok := negated(rt); ok {
		return r.rewrite("negated subtrahend", b, AddOf(l, z))
	}
	if z, ok := negated(l); ok {
		return r.rewrite("negated minuend", b, NegOf(AddOf(z, rt)))
	}
	if rok {
		if z, a, ok := constantRight(l, OpAdd); ok {
			return r.rewrite("nested constants", b, AddOf(z, N(a-y)))
		}
		if z, a, ok := constantRight(l, OpSub); ok {
			return r.rewrite("nested constants", b, SubOf(z, N(a+y)))
		}
		if a, z, ok := constantLeft(l, OpSub); ok {
			return r.rewrite("nested constants", b, SubOf(N(a-y), z))
		}
		return sameBinary(b, l, rt), nil
	}
	if lok {
		if z, a, ok := constantRight(rt, OpAdd); ok {
			return r.rewrite("nested constants", b, SubOf(N(x-a), z))
		}
		if z, a, ok := constantRight(rt, OpSub); ok {
			return r.rewrite("nested constants", b, SubOf(N(x+a), z))
		}
		if a, z, ok := constantLeft(rt, OpSub); ok {
			return r.rewrite("nested constants", b, AddOf(z, N(x-a)))
		}
		return sameBinary(b, l, rt), nil
	}
	ca, xa := term(l)
	cb, xb := term(rt)
	if xa.Equal(xb) {
		return r.rewrite("like terms", b, MulOf(N(ca-cb), xa))
	}
	return sameBinary(b, l, rt), nil
}

// ============================================================
// Mul
// ============================================================

func (r *simplification) mul(b *Binary, l, rt Expression) (Expression, error) {
	if isNumber(l, 0) || isNumber(rt, 0) {
		return r.rewrite("multiply by zero", b, N(0))
	}
	if isNumber(l, 1) {
		return r.rewrite("multiply by one", b, rt)
	}
	if isNumber(rt, 1) {
		return r.rewrite("multiply by one", b, l)
	}
	if isNumber(l, -1) {
		return r.rewrite("multiply by minus one", b, NegOf(rt))
	}
	if isNumber(rt, -1) {
		return r.rewrite("multiply by minus one", b, NegOf(l))
	}
	x, lok := number(l)
	y, rok := number(rt)
	if lok && rok {
		return r.rewrite("fold constants", b, N(x*y))
	}
	if a, ok := angleScale(l, rt); ok {
		return r.rewrite("fold angles", b, a)
	}
	if rok {
		return r.rewrite("constants first", b, MulOf(rt, l))
	}
	if lok {
		if c, z, ok := constantLeft(rt, OpMul); ok {
			return r.rewrite("nested constants", b, MulOf(N(x*c), z))
		}
		if c, z, ok := constantLeft(rt, OpDiv); ok {
			return r.rewrite("nested constants", b, DivOf(N(x*c), z))
		}
		if z, c, ok := constantRight(rt, OpDiv); ok {
			return r.rewrite("nested constants", b, MulOf(N(x/c), z))
		}
		if z, ok := negated(rt); ok {
			return r.rewrite("negated factor", b, MulOf(N(-x), z))
		}
	}
	nl, lneg := negated(l)
	nr, rneg := negated(rt)
	switch {
	case lneg && rneg:
		return r.rewrite("negated factors", b, MulOf(nl, nr))
	case lneg:
		return r.rewrite("negated factor", b, NegOf(MulOf(nl, rt)))
	case rneg:
		return r.rewrite("negated factor", b, NegOf(MulOf(l, nr)))
	}
	if d, ok := binaryOf(rt, OpDiv); ok && d.right.Equal(l) {
		return r.rewrite("cancel", b, d.left)
	}
	if d, ok := binaryOf(l, OpDiv); ok && d.right.Equal(rt) {
		return r.rewrite("cancel", b, d.left)
	}
	if !lok {
		if c, z, ok := constantLeft(rt, OpMul); ok {
			return r.rewrite("hoist constant", b, MulOf(N(c), MulOf(l, z)))
		}
		if c, z, ok := constantLeft(l, OpMul); ok {
			return r.rewrite("hoist constant", b, MulOf(N(c), MulOf(z, rt)))
		}
	}
	lb, lp := factor(l)
	rb, rp := factor(rt)
	if lb.Equal(rb) {
		return r.rewrite("like powers", b, PowOf(lb, AddOf(lp, rp)))
	}
	return sameBinary(b, l, rt), nil
}

// angleScale folds angle*number and number*angle.
func angleScale(l, r Expression) (*Angle, bool) {
	if a, ok := l.(*Angle); ok {
		if n, ok := number(r); ok {
			return &Angle{value: a.value * n, unit: a.unit}, true
		}
	}
	if a, ok := r.(*Angle); ok {
		if n, ok := number(l); ok {
			return &Angle{value: n * a.value, unit: a.unit}, true
		}
	}
	return nil, false
}

// ============================================================
// Div
// ============================================================

func (r *simplification) div(b *Binary, l, rt Expression) (Expression, error) {
	if isNumber(rt, 0) {
		if isNumber(l, 0) {
			return r.rewrite("zero over zero", b, N(math.NaN()))
		}
		return nil, fmt.Errorf("%w: %s", ErrDivideByZero, b)
	}
	if isNumber(l, 0) {
		return r.rewrite("zero dividend", b, N(0))
	}
	if isNumber(rt, 1) {
		return r.rewrite("divide by one", b, l)
	}
	if isNumber(rt, -1) {
		return r.rewrite("divide by minus one", b, NegOf(l))
	}
	x, lok := number(l)
	y, rok := number(rt)
	if lok && rok {
		return r.rewrite("fold constants", b, N(x/y))
	}
	if a, ok := l.(*Angle); ok && rok {
		return r.rewrite("fold angles", b, &Angle{value: a.value / y, unit: a.unit})
	}
	if l.Equal(rt) {
		return r.rewrite("self division", b, N(1))
	}
	if rok {
		if c, z, ok := constantLeft(l, OpMul); ok {
			return r.rewrite("nested constants", b, MulOf(N(c/y), z))
		}
		if c, z, ok := constantLeft(l, OpDiv); ok {
			return r.rewrite("nested constants", b, DivOf(N(c/y), z))
		}
		if z, c, ok := constantRight(l, OpDiv); ok {
			return r.rewrite("nested constants", b, DivOf(z, N(c*y)))
		}
	}
	if lok {
		if c, z, ok := constantLeft(rt, OpMul); ok {
			return r.rewrite("nested constants", b, DivOf(N(x/c), z))
		}
		if c, z, ok := constantLeft(rt, OpDiv); ok {
			return r.rewrite("nested constants", b, MulOf(N(x/c), z))
		}
		if z, c, ok := constantRight(rt, OpDiv); ok {
			return r.rewrite("nested constants", b, DivOf(N(x*c), z))
		}
	}
	return sameBinary(b, l, rt), nil
}

// ============================================================
// Pow
// ============================================================

func (r *simplification) pow(b *Binary, l, rt Expression) (Expression, error) {
	if isNumber(rt, 0) {
		return r.rewrite("zero exponent", b, N(1))
	}
	if isNumber(l, 0) {
		return r.rewrite("zero base", b, N(0))
	}
	if isNumber(rt, 1) {
		return r.rewrite("unit exponent", b, l)
	}
	if isNumber(l, 1) {
		return r.rewrite("unit base", b, N(1))
	}
	x, lok := number(l)
	y, rok := number(rt)
	if lok && rok {
		return r.rewrite("fold constants", b, N(math.Pow(x, y)))
	}
	if u, ok := rt.(*Unary); ok {
		switch {
		case u.op == OpLg && isNumber(l, 10),
			u.op == OpLb && isNumber(l, 2),
			u.op == OpLn && isE(l):
			return r.rewrite("power of log", b, u.arg)
		}
	}
	if lg, ok := binaryOf(rt, OpLog); ok && lg.left.Equal(l) {
		return r.rewrite("power of log", b, lg.right)
	}
	return sameBinary(b, l, rt), nil
}
