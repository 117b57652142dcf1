package symtree

import (
	"context"
	"fmt"
	"log/slog"
)

// ============================================================
// Simplifier
// ============================================================

// Simplifier rewrites a tree into an equivalent, smaller one. Every rule
// re-simplifies the node it builds, so Simplify(Simplify(e)) equals
// Simplify(e). Nodes without a rule are returned unchanged, and untouched
// subtrees are shared with the input.
//
// A Simplifier is safe for concurrent use.
type Simplifier struct {
	log         *slog.Logger
	maxRewrites int
}

var _ Analyzer[Expression] = (*Simplifier)(nil)

func NewSimplifier(opts ...Option) *Simplifier {
	o := gatherOptions(opts)
	return &Simplifier{log: o.logger, maxRewrites: o.maxRewrites}
}

var defaultSimplifier = NewSimplifier()

// Simplify simplifies e with the default Simplifier.
func Simplify(e Expression) (Expression, error) {
	return defaultSimplifier.Analyze(e)
}

func (s *Simplifier) Analyze(e Expression) (Expression, error) {
	if isNil(e) {
		return nil, nilArgument("expression")
	}
	run := &simplification{
		log:   s.log,
		max:   s.maxRewrites,
		debug: s.log.Enabled(context.Background(), slog.LevelDebug),
	}
	return run.analyze(e)
}

// simplification is the state of one top-level Analyze call.
type simplification struct {
	log   *slog.Logger
	max   int
	debug bool
	fired int
}

// rewrite records that rule turned from into to and re-simplifies to.
func (r *simplification) rewrite(rule string, from, to Expression) (Expression, error) {
	r.fired++
	if r.max > 0 && r.fired > r.max {
		return nil, fmt.Errorf("%w: %d rules fired, last %q on %s", ErrRewriteLimit, r.fired, rule, from)
	}
	if r.debug {
		r.log.Debug("rewrite", "rule", rule, "from", from.String(), "to", to.String())
	}
	return r.analyze(to)
}

func (r *simplification) analyze(e Expression) (Expression, error) {
	switch x := e.(type) {
	case *Number, *Variable, *Bool, *Complex, *Angle, *Undefine:
		return e, nil
	case *Unary:
		return r.unary(x)
	case *Binary:
		return r.binary(x)
	case *Variadic, *UserFunction, *Call, *Curry, *Lambda, *Derivative:
		return r.analyzeDiffParams(e)
	case *CompoundAssign, *Define:
		return r.analyzeVariableBinary(e)
	}
	return e, nil
}

// ============================================================
// Generic helpers
// ============================================================

// analyzeUnary simplifies the argument of u, returning u itself when
// nothing changed.
func (r *simplification) analyzeUnary(u *Unary) (*Unary, error) {
	arg, err := r.analyze(u.arg)
	if err != nil {
		return nil, err
	}
	if arg == u.arg {
		return u, nil
	}
	return &Unary{op: u.op, arg: arg}, nil
}

// analyzeBinary simplifies both operands of b.
func (r *simplification) analyzeBinary(b *Binary) (left, right Expression, err error) {
	if left, err = r.analyze(b.left); err != nil {
		return nil, nil, err
	}
	if right, err = r.analyze(b.right); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func sameBinary(b *Binary, left, right Expression) Expression {
	if left == b.left && right == b.right {
		return b
	}
	return &Binary{op: b.op, left: left, right: right}
}

// analyzeInverse cancels f(g(x)) when g is the exact inverse of f.
func (r *simplification) analyzeInverse(u *Unary) (Expression, error) {
	s, err := r.analyzeUnary(u)
	if err != nil {
		return nil, err
	}
	if inner, ok := unaryOf(s.arg, inverses[u.op]); ok {
		return r.rewrite("inverse", s, inner.arg)
	}
	return s, nil
}

// analyzeDiffParams simplifies every child, rebuilding only on change.
func (r *simplification) analyzeDiffParams(e Expression) (Expression, error) {
	children := e.Children()
	changed := false
	for i, c := range children {
		s, err := r.analyze(c)
		if err != nil {
			return nil, err
		}
		if s != c {
			children[i] = s
			changed = true
		}
	}
	if !changed {
		return e, nil
	}
	return e.WithChildren(children...), nil
}

// analyzeVariableBinary simplifies the value side of an assignment.
func (r *simplification) analyzeVariableBinary(e Expression) (Expression, error) {
	switch x := e.(type) {
	case *CompoundAssign:
		v, err := r.analyze(x.value)
		if err != nil || v == x.value {
			return e, err
		}
		return &CompoundAssign{op: x.op, variable: x.variable, value: v}, nil
	case *Define:
		v, err := r.analyze(x.value)
		if err != nil || v == x.value {
			return e, err
		}
		return &Define{key: x.key, value: v}, nil
	}
	return e, nil
}

// ============================================================
// Unary rules
// ============================================================

func isE(e Expression) bool {
	v, ok := e.(*Variable)
	return ok && v.name == "e"
}

func (r *simplification) unary(u *Unary) (Expression, error) {
	if u.op == OpSimplify {
		return r.rewrite("simplify", u, u.arg)
	}
	if _, ok := inverses[u.op]; ok {
		return r.analyzeInverse(u)
	}
	s, err := r.analyzeUnary(u)
	if err != nil {
		return nil, err
	}
	arg := s.arg
	switch u.op {
	case OpUnaryMinus:
		if inner, ok := unaryOf(arg, OpUnaryMinus); ok {
			return r.rewrite("double negation", s, inner.arg)
		}
		switch a := arg.(type) {
		case *Number:
			return r.rewrite("negate constant", s, N(-a.value))
		case *Angle:
			return r.rewrite("negate constant", s, &Angle{value: -a.value, unit: a.unit})
		}
	case OpExp:
		if ln, ok := unaryOf(arg, OpLn); ok {
			return r.rewrite("exp of ln", s, ln.arg)
		}
	case OpLn:
		if exp, ok := unaryOf(arg, OpExp); ok {
			return r.rewrite("ln of exp", s, exp.arg)
		}
		if isE(arg) {
			return r.rewrite("ln(e)", s, N(1))
		}
		if isNumber(arg, 1) {
			return r.rewrite("log of one", s, N(0))
		}
	case OpLb, OpLg:
		base := 2.0
		if u.op == OpLg {
			base = 10
		}
		if isNumber(arg, base) {
			return r.rewrite("log of base", s, N(1))
		}
		if isNumber(arg, 1) {
			return r.rewrite("log of one", s, N(0))
		}
	case OpToDegree, OpToRadian, OpToGradian:
		if a, ok := toAngle(arg); ok {
			return r.rewrite("convert angle", s, a.To(targetUnit(u.op)))
		}
	case OpToNumber:
		switch a := arg.(type) {
		case *Number:
			return r.rewrite("to number", s, a)
		case *Angle:
			return r.rewrite("to number", s, N(a.value))
		}
	}
	return s, nil
}

// toAngle returns e as an Angle; a plain number is taken in radians.
func toAngle(e Expression) (*Angle, bool) {
	switch x := e.(type) {
	case *Angle:
		return x, true
	case *Number:
		return Rad(x.value), true
	}
	return nil, false
}

func targetUnit(op UnaryOp) AngleUnit {
	switch op {
	case OpToDegree:
		return Degree
	case OpToGradian:
		return Gradian
	}
	return Radian
}

// ============================================================
// Binary dispatch
// ============================================================

func (r *simplification) binary(b *Binary) (Expression, error) {
	left, right, err := r.analyzeBinary(b)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case OpAdd:
		return r.add(b, left, right)
	case OpSub:
		return r.sub(b, left, right)
	case OpMul:
		return r.mul(b, left, right)
	case OpDiv:
		return r.div(b, left, right)
	case OpPow:
		return r.pow(b, left, right)
	case OpRoot:
		if isNumber(right, 1) {
			return r.rewrite("root of degree one", b, left)
		}
	case OpLog:
		if left.Equal(right) {
			return r.rewrite("log of base", b, N(1))
		}
		if isNumber(right, 1) {
			return r.rewrite("log of one", b, N(0))
		}
	}
	return sameBinary(b, left, right), nil
}
