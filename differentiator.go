package symtree

import (
	"context"
	"fmt"
	"log/slog"
)

// ============================================================
// Differentiator
// ============================================================

// Differentiator computes the symbolic derivative of a tree with respect to
// the context variable. Results are not simplified. A Differentiator holds
// no per-call state and may be shared between goroutines.
//
// Known limitation: when both base and exponent of a power depend on the
// variable, only the power rule is applied (the exponent is treated as
// constant).
type Differentiator struct {
	log *slog.Logger
}

var _ ContextAnalyzer[Expression, *DifferentiatorContext] = (*Differentiator)(nil)

func NewDifferentiator(opts ...Option) *Differentiator {
	o := gatherOptions(opts)
	return &Differentiator{log: o.logger}
}

// Differentiate returns 0 when e does not contain the context variable and
// the unsimplified derivative otherwise.
func (d *Differentiator) Differentiate(e Expression, ctx *DifferentiatorContext) (Expression, error) {
	if err := checkDiffArgs(e, ctx); err != nil {
		return nil, err
	}
	if !ctx.dependsOn(e) {
		return N(0), nil
	}
	d.log.Debug("differentiate", "expression", e.String(), "variable", ctx.variable.name)
	return d.Analyze(e, ctx)
}

func checkDiffArgs(e Expression, ctx *DifferentiatorContext) error {
	if isNil(e) {
		return nilArgument("expression")
	}
	if ctx == nil {
		return nilArgument("differentiator context")
	}
	if ctx.variable == nil {
		return nilArgument("context variable")
	}
	return nil
}

// Analyze dispatches on the variant of e.
func (d *Differentiator) Analyze(e Expression, ctx *DifferentiatorContext) (Expression, error) {
	if err := checkDiffArgs(e, ctx); err != nil {
		return nil, err
	}
	switch x := e.(type) {
	case *Number, *Angle, *Complex:
		return N(0), nil
	case *Variable:
		if x.Equal(ctx.variable) {
			return N(1), nil
		}
		return x.Clone(), nil
	case *Unary:
		return d.unary(x, ctx)
	case *Binary:
		return d.binary(x, ctx)
	case *Derivative:
		return d.derivative(x, ctx)
	case *UserFunction:
		return d.userFunction(x, ctx)
	case *Lambda:
		return d.lambda(x, ctx)
	case *Call:
		return d.call(x, ctx)
	}
	return nil, d.fallback(e)
}

func (d *Differentiator) fallback(e Expression) error {
	if d.log.Enabled(context.Background(), slog.LevelDebug) {
		d.log.Debug("no derivative rule", "expression", e.String())
	}
	return NotSupported(e)
}

// chain multiplies an outer derivative by the inner one, eliding a unit
// inner derivative.
func chain(df, outer Expression) Expression {
	if isNumber(df, 1) {
		return outer
	}
	return MulOf(df, outer)
}

func square(f Expression) Expression { return PowOf(f, N(2)) }

// unconditional reports the functions whose rule skips the containment check.
func unconditional(op UnaryOp) bool {
	switch op {
	case OpCsc, OpSec, OpCsch, OpSech:
		return true
	}
	return false
}

func (d *Differentiator) unary(u *Unary, ctx *DifferentiatorContext) (Expression, error) {
	if u.op == OpSimplify {
		return d.Analyze(u.arg, ctx)
	}
	if !unaryRule(u.op) {
		return nil, d.fallback(u)
	}
	if !unconditional(u.op) && !ctx.dependsOn(u) {
		return N(0), nil
	}
	f := u.arg
	df, err := d.Analyze(f, ctx)
	if err != nil {
		return nil, err
	}
	switch u.op {
	case OpAbs:
		return MulOf(df, DivOf(f, AbsOf(f))), nil
	case OpUnaryMinus:
		return NegOf(df), nil
	case OpSqrt:
		return DivOf(df, MulOf(N(2), SqrtOf(f))), nil
	case OpExp:
		return chain(df, ExpOf(f)), nil
	case OpLn:
		return DivOf(df, f), nil
	case OpLb:
		return DivOf(df, MulOf(f, LnOf(N(2)))), nil
	case OpLg:
		return DivOf(df, MulOf(f, LnOf(N(10)))), nil

	case OpSin:
		return chain(df, CosOf(f)), nil
	case OpCos:
		return NegOf(chain(df, SinOf(f))), nil
	case OpTan:
		return DivOf(df, square(CosOf(f))), nil
	case OpCot:
		return NegOf(DivOf(df, square(SinOf(f)))), nil
	case OpSec:
		return chain(df, MulOf(TanOf(f), SecOf(f))), nil
	case OpCsc:
		return NegOf(chain(df, MulOf(CotOf(f), CscOf(f)))), nil
	case OpArcsin:
		return DivOf(df, SqrtOf(SubOf(N(1), square(f)))), nil
	case OpArccos:
		return NegOf(DivOf(df, SqrtOf(SubOf(N(1), square(f))))), nil
	case OpArctan:
		return DivOf(df, AddOf(N(1), square(f))), nil
	case OpArccot:
		return NegOf(DivOf(df, AddOf(N(1), square(f)))), nil
	case OpArcsec:
		return DivOf(df, MulOf(AbsOf(f), SqrtOf(SubOf(square(f), N(1))))), nil
	case OpArccsc:
		return NegOf(DivOf(df, MulOf(AbsOf(f), SqrtOf(SubOf(square(f), N(1)))))), nil

	case OpSinh:
		return chain(df, CoshOf(f)), nil
	case OpCosh:
		return chain(df, SinhOf(f)), nil
	case OpTanh:
		return DivOf(df, square(CoshOf(f))), nil
	case OpCoth:
		return NegOf(DivOf(df, square(SinhOf(f)))), nil
	case OpSech:
		return NegOf(chain(df, MulOf(TanhOf(f), SechOf(f)))), nil
	case OpCsch:
		return NegOf(chain(df, MulOf(CothOf(f), CschOf(f)))), nil
	case OpArsinh:
		return DivOf(df, SqrtOf(AddOf(square(f), N(1)))), nil
	case OpArcosh:
		return DivOf(df, SqrtOf(SubOf(square(f), N(1)))), nil
	case OpArtanh, OpArcoth:
		return DivOf(df, SubOf(N(1), square(f))), nil
	case OpArsech:
		return NegOf(DivOf(df, MulOf(f, SqrtOf(SubOf(N(1), square(f)))))), nil
	case OpArcsch:
		return NegOf(DivOf(df, MulOf(AbsOf(f), SqrtOf(AddOf(N(1), square(f)))))), nil
	}
	return nil, d.fallback(u)
}

// unaryRule reports whether op has a derivative rule.
func unaryRule(op UnaryOp) bool {
	switch op {
	case OpAbs, OpUnaryMinus, OpSqrt, OpExp, OpLn, OpLb, OpLg:
		return true
	}
	return op >= OpSin && op <= OpArcsch
}

func (d *Differentiator) binary(b *Binary, ctx *DifferentiatorContext) (Expression, error) {
	switch b.op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return d.arithmetic(b, ctx)
	case OpPow:
		return d.pow(b.left, b.right, b, ctx)
	case OpRoot:
		return d.Analyze(PowOf(b.left, DivOf(N(1), b.right)), ctx)
	case OpLog:
		return d.logarithm(b, ctx)
	}
	return nil, d.fallback(b)
}

func (d *Differentiator) arithmetic(b *Binary, ctx *DifferentiatorContext) (Expression, error) {
	inLeft := ctx.dependsOn(b.left)
	inRight := ctx.dependsOn(b.right)
	if !inLeft && !inRight {
		return N(0), nil
	}
	var dl, dr Expression
	var err error
	if inLeft {
		if dl, err = d.Analyze(b.left, ctx); err != nil {
			return nil, err
		}
	}
	if inRight {
		if dr, err = d.Analyze(b.right, ctx); err != nil {
			return nil, err
		}
	}
	switch b.op {
	case OpAdd:
		switch {
		case inLeft && inRight:
			return AddOf(dl, dr), nil
		case inLeft:
			return dl, nil
		}
		return dr, nil
	case OpSub:
		switch {
		case inLeft && inRight:
			return SubOf(dl, dr), nil
		case inLeft:
			return dl, nil
		}
		return NegOf(dr), nil
	case OpMul:
		switch {
		case inLeft && inRight:
			return AddOf(MulOf(dl, b.right), MulOf(b.left, dr)), nil
		case inLeft:
			return MulOf(dl, b.right), nil
		}
		return MulOf(b.left, dr), nil
	}
	// quotient rule
	switch {
	case inLeft && inRight:
		return DivOf(SubOf(MulOf(dl, b.right), MulOf(b.left, dr)), square(b.right)), nil
	case inLeft:
		return DivOf(dl, b.right), nil
	}
	return DivOf(NegOf(MulOf(b.left, dr)), square(b.right)), nil
}

// pow differentiates base^exponent; x is the node itself.
func (d *Differentiator) pow(base, exponent, x Expression, ctx *DifferentiatorContext) (Expression, error) {
	if ctx.dependsOn(base) {
		df, err := d.Analyze(base, ctx)
		if err != nil {
			return nil, err
		}
		return MulOf(MulOf(df, exponent), PowOf(base, SubOf(exponent, N(1)))), nil
	}
	if ctx.dependsOn(exponent) {
		df, err := d.Analyze(exponent, ctx)
		if err != nil {
			return nil, err
		}
		return MulOf(MulOf(df, LnOf(base)), x), nil
	}
	return N(0), nil
}

// logarithm handles log(base, x) of any base.
func (d *Differentiator) logarithm(b *Binary, ctx *DifferentiatorContext) (Expression, error) {
	base, x := b.left, b.right
	if ctx.dependsOn(base) {
		return d.Analyze(DivOf(LnOf(x), LnOf(base)), ctx)
	}
	if !ctx.dependsOn(x) {
		return N(0), nil
	}
	dx, err := d.Analyze(x, ctx)
	if err != nil {
		return nil, err
	}
	return DivOf(dx, MulOf(x, LnOf(base))), nil
}

// derivative differentiates deriv(f, v) by v first, then by the context
// variable.
func (d *Differentiator) derivative(x *Derivative, ctx *DifferentiatorContext) (Expression, error) {
	if !ctx.dependsOn(x) {
		return N(0), nil
	}
	inner, err := d.Differentiate(x.body, ctx.WithVariable(x.variable))
	if err != nil {
		return nil, err
	}
	return d.Differentiate(inner, ctx)
}

func (d *Differentiator) userFunction(f *UserFunction, ctx *DifferentiatorContext) (Expression, error) {
	if ctx.functions == nil {
		return nil, fmt.Errorf("%w: cannot differentiate %s without a function table", ErrInvalidOperation, f)
	}
	fn, ok := ctx.functions.Lookup(f.Signature())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, f.Signature())
	}
	body, err := fn.Bind(f.args)
	if err != nil {
		return nil, err
	}
	return d.Analyze(body, ctx)
}

func (d *Differentiator) lambda(l *Lambda, ctx *DifferentiatorContext) (Expression, error) {
	if !ctx.dependsOn(l) {
		return N(0), nil
	}
	body, err := d.Analyze(l.body, ctx)
	if err != nil {
		return nil, err
	}
	return &Lambda{params: l.params, body: body}, nil
}

// call binds the arguments of a lambda application and differentiates the
// result.
func (d *Differentiator) call(c *Call, ctx *DifferentiatorContext) (Expression, error) {
	l, ok := c.function.(*Lambda)
	if !ok {
		return nil, d.fallback(c)
	}
	bound, err := Function{Params: l.params, Body: l.body}.Bind(c.args)
	if err != nil {
		return nil, err
	}
	return d.Analyze(bound, ctx)
}

// Differentiate returns the simplified derivative of e with respect to
// variable.
func Differentiate(e Expression, variable string) (Expression, error) {
	ctx := NewDifferentiatorContext(S(variable), nil)
	df, err := NewDifferentiator().Differentiate(e, ctx)
	if err != nil {
		return nil, err
	}
	return Simplify(df)
}
