package symtree

import "strconv"

// ============================================================
// Unary — single-argument operators and functions
// ============================================================

type UnaryOp int

const (
	OpAbs UnaryOp = iota
	OpUnaryMinus
	OpSqrt
	OpExp
	OpLn
	OpLb
	OpLg
	OpCeil
	OpFloor
	OpTrunc
	OpFrac
	OpFact
	OpSign
	OpNot
	OpToBin
	OpToOct
	OpToHex
	OpToNumber
	OpToDegree
	OpToRadian
	OpToGradian
	OpSimplify
	OpDel
	OpTranspose
	OpDeterminant
	OpInverse
	OpConjugate
	OpRe
	OpIm
	OpPhase

	OpSin
	OpCos
	OpTan
	OpCot
	OpSec
	OpCsc
	OpArcsin
	OpArccos
	OpArctan
	OpArccot
	OpArcsec
	OpArccsc

	OpSinh
	OpCosh
	OpTanh
	OpCoth
	OpSech
	OpCsch
	OpArsinh
	OpArcosh
	OpArtanh
	OpArcoth
	OpArsech
	OpArcsch

	unaryOpCount
)

var unaryNames = [unaryOpCount]string{
	OpAbs: "abs", OpUnaryMinus: "-", OpSqrt: "sqrt", OpExp: "exp",
	OpLn: "ln", OpLb: "lb", OpLg: "lg", OpCeil: "ceil", OpFloor: "floor",
	OpTrunc: "trunc", OpFrac: "frac", OpFact: "fact", OpSign: "sign",
	OpNot: "not", OpToBin: "tobin", OpToOct: "tooct", OpToHex: "tohex",
	OpToNumber: "tonumber", OpToDegree: "todegree", OpToRadian: "toradian",
	OpToGradian: "togradian", OpSimplify: "simplify", OpDel: "del",
	OpTranspose: "transpose", OpDeterminant: "det", OpInverse: "inverse",
	OpConjugate: "conjugate", OpRe: "re", OpIm: "im", OpPhase: "phase",

	OpSin: "sin", OpCos: "cos", OpTan: "tan", OpCot: "cot", OpSec: "sec", OpCsc: "csc",
	OpArcsin: "arcsin", OpArccos: "arccos", OpArctan: "arctan",
	OpArccot: "arccot", OpArcsec: "arcsec", OpArccsc: "arccsc",

	OpSinh: "sinh", OpCosh: "cosh", OpTanh: "tanh", OpCoth: "coth", OpSech: "sech", OpCsch: "csch",
	OpArsinh: "arsinh", OpArcosh: "arcosh", OpArtanh: "artanh",
	OpArcoth: "arcoth", OpArsech: "arsech", OpArcsch: "arcsch",
}

// inverses pairs every trigonometric and hyperbolic function with its
// inverse, in both directions.
var inverses = func() map[UnaryOp]UnaryOp {
	pairs := [][2]UnaryOp{
		{OpSin, OpArcsin}, {OpCos, OpArccos}, {OpTan, OpArctan},
		{OpCot, OpArccot}, {OpSec, OpArcsec}, {OpCsc, OpArccsc},
		{OpSinh, OpArsinh}, {OpCosh, OpArcosh}, {OpTanh, OpArtanh},
		{OpCoth, OpArcoth}, {OpSech, OpArsech}, {OpCsch, OpArcsch},
	}
	m := make(map[UnaryOp]UnaryOp, 2*len(pairs))
	for _, p := range pairs {
		m[p[0]], m[p[1]] = p[1], p[0]
	}
	return m
}()

func (op UnaryOp) String() string {
	if op >= 0 && op < unaryOpCount {
		return unaryNames[op]
	}
	return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
}

// UnaryOps lists every unary operator.
func UnaryOps() []UnaryOp {
	ops := make([]UnaryOp, unaryOpCount)
	for i := range ops {
		ops[i] = UnaryOp(i)
	}
	return ops
}

type Unary struct {
	op  UnaryOp
	arg Expression
}

func NewUnary(op UnaryOp, arg Expression) *Unary {
	mustNotNil(op.String()+" argument", arg)
	return &Unary{op: op, arg: arg}
}

func (u *Unary) Op() UnaryOp            { return u.op }
func (u *Unary) Argument() Expression   { return u.arg }
func (u *Unary) Children() []Expression { return []Expression{u.arg} }
func (u *Unary) Clone() Expression      { return &Unary{op: u.op, arg: u.arg.Clone()} }
func (u *Unary) Equal(other Expression) bool {
	o, ok := other.(*Unary)
	return ok && u.op == o.op && u.arg.Equal(o.arg)
}

func (u *Unary) String() string {
	switch u.op {
	case OpUnaryMinus:
		return "-" + u.arg.String()
	case OpFact:
		return u.arg.String() + "!"
	}
	return u.op.String() + "(" + u.arg.String() + ")"
}

func (u *Unary) WithChildren(children ...Expression) Expression {
	checkArity(u.op.String(), children, 1, 1)
	return &Unary{op: u.op, arg: children[0]}
}

// unaryOf returns e as a Unary with operator op.
func unaryOf(e Expression, op UnaryOp) (*Unary, bool) {
	u, ok := e.(*Unary)
	if !ok || u.op != op {
		return nil, false
	}
	return u, true
}

func AbsOf(arg Expression) Expression       { return NewUnary(OpAbs, arg) }
func NegOf(arg Expression) Expression       { return NewUnary(OpUnaryMinus, arg) }
func SqrtOf(arg Expression) Expression      { return NewUnary(OpSqrt, arg) }
func ExpOf(arg Expression) Expression       { return NewUnary(OpExp, arg) }
func LnOf(arg Expression) Expression        { return NewUnary(OpLn, arg) }
func LbOf(arg Expression) Expression        { return NewUnary(OpLb, arg) }
func LgOf(arg Expression) Expression        { return NewUnary(OpLg, arg) }
func CeilOf(arg Expression) Expression      { return NewUnary(OpCeil, arg) }
func FloorOf(arg Expression) Expression     { return NewUnary(OpFloor, arg) }
func TruncOf(arg Expression) Expression     { return NewUnary(OpTrunc, arg) }
func FracOf(arg Expression) Expression      { return NewUnary(OpFrac, arg) }
func FactOf(arg Expression) Expression      { return NewUnary(OpFact, arg) }
func SignOf(arg Expression) Expression      { return NewUnary(OpSign, arg) }
func NotOf(arg Expression) Expression       { return NewUnary(OpNot, arg) }
func ToNumberOf(arg Expression) Expression  { return NewUnary(OpToNumber, arg) }
func ToDegreeOf(arg Expression) Expression  { return NewUnary(OpToDegree, arg) }
func ToRadianOf(arg Expression) Expression  { return NewUnary(OpToRadian, arg) }
func ToGradianOf(arg Expression) Expression { return NewUnary(OpToGradian, arg) }
func SimplifyOf(arg Expression) Expression  { return NewUnary(OpSimplify, arg) }
func SinOf(arg Expression) Expression       { return NewUnary(OpSin, arg) }
func CosOf(arg Expression) Expression       { return NewUnary(OpCos, arg) }
func TanOf(arg Expression) Expression       { return NewUnary(OpTan, arg) }
func CotOf(arg Expression) Expression       { return NewUnary(OpCot, arg) }
func SecOf(arg Expression) Expression       { return NewUnary(OpSec, arg) }
func CscOf(arg Expression) Expression       { return NewUnary(OpCsc, arg) }
func ArcsinOf(arg Expression) Expression    { return NewUnary(OpArcsin, arg) }
func ArccosOf(arg Expression) Expression    { return NewUnary(OpArccos, arg) }
func ArctanOf(arg Expression) Expression    { return NewUnary(OpArctan, arg) }
func ArccotOf(arg Expression) Expression    { return NewUnary(OpArccot, arg) }
func ArcsecOf(arg Expression) Expression    { return NewUnary(OpArcsec, arg) }
func ArccscOf(arg Expression) Expression    { return NewUnary(OpArccsc, arg) }
func SinhOf(arg Expression) Expression      { return NewUnary(OpSinh, arg) }
func CoshOf(arg Expression) Expression      { return NewUnary(OpCosh, arg) }
func TanhOf(arg Expression) Expression      { return NewUnary(OpTanh, arg) }
func CothOf(arg Expression) Expression      { return NewUnary(OpCoth, arg) }
func SechOf(arg Expression) Expression      { return NewUnary(OpSech, arg) }
func CschOf(arg Expression) Expression      { return NewUnary(OpCsch, arg) }
func ArsinhOf(arg Expression) Expression    { return NewUnary(OpArsinh, arg) }
func ArcoshOf(arg Expression) Expression    { return NewUnary(OpArcosh, arg) }
func ArtanhOf(arg Expression) Expression    { return NewUnary(OpArtanh, arg) }
func ArcothOf(arg Expression) Expression    { return NewUnary(OpArcoth, arg) }
func ArsechOf(arg Expression) Expression    { return NewUnary(OpArsech, arg) }
func ArcschOf(arg Expression) Expression    { return NewUnary(OpArcsch, arg) }
