package symtree

import "strconv"

// ============================================================
// Binary — ordered Left/Right operators
// ============================================================

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpRoot
	OpLog
	OpMod

	OpAnd
	OpOr
	OpXOr
	OpNAnd
	OpNOr
	OpImplication
	OpEquality

	OpEqual
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual

	OpLeftShift
	OpRightShift

	OpCross
	OpDot

	binaryOpCount
)

var binaryNames = [binaryOpCount]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^",
	OpRoot: "root", OpLog: "log", OpMod: "%",
	OpAnd: "and", OpOr: "or", OpXOr: "xor", OpNAnd: "nand", OpNOr: "nor",
	OpImplication: "=>", OpEquality: "<=>",
	OpEqual: "==", OpNotEqual: "!=", OpLessThan: "<", OpLessOrEqual: "<=",
	OpGreaterThan: ">", OpGreaterOrEqual: ">=",
	OpLeftShift: "<<", OpRightShift: ">>",
	OpCross: "cross", OpDot: "dot",
}

func (op BinaryOp) String() string {
	if op >= 0 && op < binaryOpCount {
		return binaryNames[op]
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// BinaryOps lists every binary operator.
func BinaryOps() []BinaryOp {
	ops := make([]BinaryOp, binaryOpCount)
	for i := range ops {
		ops[i] = BinaryOp(i)
	}
	return ops
}

// prefix reports whether op renders in function notation.
func (op BinaryOp) prefix() bool {
	switch op {
	case OpRoot, OpLog, OpCross, OpDot:
		return true
	}
	return false
}

type Binary struct {
	op          BinaryOp
	left, right Expression
}

func NewBinary(op BinaryOp, left, right Expression) *Binary {
	mustNotNil(op.String()+" left", left)
	mustNotNil(op.String()+" right", right)
	return &Binary{op: op, left: left, right: right}
}

func (b *Binary) Op() BinaryOp           { return b.op }
func (b *Binary) Left() Expression       { return b.left }
func (b *Binary) Right() Expression      { return b.right }
func (b *Binary) Children() []Expression { return []Expression{b.left, b.right} }
func (b *Binary) Clone() Expression {
	return &Binary{op: b.op, left: b.left.Clone(), right: b.right.Clone()}
}

func (b *Binary) Equal(other Expression) bool {
	o, ok := other.(*Binary)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

func (b *Binary) String() string {
	if b.op.prefix() {
		return b.op.String() + "(" + b.left.String() + ", " + b.right.String() + ")"
	}
	return "(" + b.left.String() + " " + b.op.String() + " " + b.right.String() + ")"
}

func (b *Binary) WithChildren(children ...Expression) Expression {
	checkArity(b.op.String(), children, 2, 2)
	return &Binary{op: b.op, left: children[0], right: children[1]}
}

// binaryOf returns e as a Binary with operator op.
func binaryOf(e Expression, op BinaryOp) (*Binary, bool) {
	b, ok := e.(*Binary)
	if !ok || b.op != op {
		return nil, false
	}
	return b, true
}

func AddOf(l, r Expression) Expression { return NewBinary(OpAdd, l, r) }
func SubOf(l, r Expression) Expression { return NewBinary(OpSub, l, r) }
func MulOf(l, r Expression) Expression { return NewBinary(OpMul, l, r) }
func DivOf(l, r Expression) Expression { return NewBinary(OpDiv, l, r) }
func PowOf(l, r Expression) Expression { return NewBinary(OpPow, l, r) }
func ModOf(l, r Expression) Expression { return NewBinary(OpMod, l, r) }
func AndOf(l, r Expression) Expression { return NewBinary(OpAnd, l, r) }
func OrOf(l, r Expression) Expression  { return NewBinary(OpOr, l, r) }

// RootOf is the degree-th root of x.
func RootOf(x, degree Expression) Expression { return NewBinary(OpRoot, x, degree) }

// LogOf is the logarithm of x in the given base.
func LogOf(base, x Expression) Expression { return NewBinary(OpLog, base, x) }
