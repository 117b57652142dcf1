// Package symtree is a rewriting kernel for symbolic expression trees.
//
// Design goals:
//   - Immutable trees: rewrites build new nodes and share untouched subtrees
//   - Closed node set, open analyzer set (see Analyzer and ContextAnalyzer)
//   - Symbolic differentiation with the chain rule
//   - Rule-based simplification that is idempotent
package symtree

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// ============================================================
// Core Interface
// ============================================================

// Expression is one node of an immutable expression tree.
type Expression interface {
	String() string
	// Equal reports structural equality: same variant and deep-equal children.
	Equal(other Expression) bool
	// Children returns the ordered children in a fresh slice.
	Children() []Expression
	// Clone returns a deep copy.
	Clone() Expression
	// WithChildren returns a copy with the given children and all other
	// node-specific state preserved. It panics on a nil child or wrong arity.
	WithChildren(children ...Expression) Expression
}

func checkArity(kind string, children []Expression, min, max int) {
	if len(children) < min || (max >= 0 && len(children) > max) {
		panic(fmt.Errorf("%w: %s takes %s, got %d", ErrArity, kind, arityString(min, max), len(children)))
	}
	for i, c := range children {
		mustNotNil(fmt.Sprintf("%s child %d", kind, i), c)
	}
}

func arityString(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d", min)
	case min == max:
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d..%d", min, max)
}

func cloneAll(es []Expression) []Expression {
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	return out
}

func equalAll(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func copyAll(es []Expression) []Expression {
	out := make([]Expression, len(es))
	copy(out, es)
	return out
}

// ============================================================
// Number
// ============================================================

type Number struct{ value float64 }

func N(v float64) *Number { return &Number{value: v} }

func (n *Number) Value() float64         { return n.value }
func (n *Number) IsZero() bool           { return n.value == 0 }
func (n *Number) IsOne() bool            { return n.value == 1 }
func (n *Number) IsNegOne() bool         { return n.value == -1 }
func (n *Number) IsNaN() bool            { return math.IsNaN(n.value) }
func (n *Number) String() string         { return strconv.FormatFloat(n.value, 'g', -1, 64) }
func (n *Number) Clone() Expression      { return &Number{value: n.value} }
func (n *Number) Children() []Expression { return nil }

// Equal treats two NaN numbers as equal.
func (n *Number) Equal(other Expression) bool {
	o, ok := other.(*Number)
	if !ok {
		return false
	}
	return n.value == o.value || (math.IsNaN(n.value) && math.IsNaN(o.value))
}

func (n *Number) WithChildren(children ...Expression) Expression {
	checkArity("number", children, 0, 0)
	return n.Clone()
}

func isNumber(e Expression, v float64) bool {
	n, ok := e.(*Number)
	return ok && n.value == v
}

// ============================================================
// Variable
// ============================================================

type Variable struct{ name string }

func S(name string) *Variable {
	if name == "" {
		panic(nilArgument("variable name"))
	}
	return &Variable{name: name}
}

func (v *Variable) Name() string           { return v.name }
func (v *Variable) String() string         { return v.name }
func (v *Variable) Clone() Expression      { return &Variable{name: v.name} }
func (v *Variable) Children() []Expression { return nil }
func (v *Variable) Equal(other Expression) bool {
	o, ok := other.(*Variable)
	return ok && v.name == o.name
}

func (v *Variable) WithChildren(children ...Expression) Expression {
	checkArity("variable", children, 0, 0)
	return v.Clone()
}

// ============================================================
// Bool
// ============================================================

type Bool struct{ value bool }

func B(v bool) *Bool { return &Bool{value: v} }

func (b *Bool) Value() bool            { return b.value }
func (b *Bool) String() string         { return strconv.FormatBool(b.value) }
func (b *Bool) Clone() Expression      { return &Bool{value: b.value} }
func (b *Bool) Children() []Expression { return nil }
func (b *Bool) Equal(other Expression) bool {
	o, ok := other.(*Bool)
	return ok && b.value == o.value
}

func (b *Bool) WithChildren(children ...Expression) Expression {
	checkArity("bool", children, 0, 0)
	return b.Clone()
}

// ============================================================
// Complex — opaque complex payload
// ============================================================

type Complex struct{ value complex128 }

func C(v complex128) *Complex { return &Complex{value: v} }

func (c *Complex) Value() complex128      { return c.value }
func (c *Complex) Clone() Expression      { return &Complex{value: c.value} }
func (c *Complex) Children() []Expression { return nil }
func (c *Complex) Equal(other Expression) bool {
	o, ok := other.(*Complex)
	if !ok {
		return false
	}
	return c.value == o.value || (cmplx.IsNaN(c.value) && cmplx.IsNaN(o.value))
}

func (c *Complex) String() string {
	return strconv.FormatComplex(c.value, 'g', -1, 128)
}

func (c *Complex) WithChildren(children ...Expression) Expression {
	checkArity("complex", children, 0, 0)
	return c.Clone()
}

// ============================================================
// Angle — number tagged with a unit
// ============================================================

type AngleUnit int

const (
	Radian AngleUnit = iota
	Degree
	Gradian
)

func (u AngleUnit) String() string {
	switch u {
	case Radian:
		return "rad"
	case Degree:
		return "deg"
	case Gradian:
		return "grad"
	}
	return "AngleUnit(" + strconv.Itoa(int(u)) + ")"
}

// perRadian is the number of units in one radian.
func (u AngleUnit) perRadian() float64 {
	switch u {
	case Degree:
		return 180 / math.Pi
	case Gradian:
		return 200 / math.Pi
	}
	return 1
}

type Angle struct {
	value float64
	unit  AngleUnit
}

func Deg(v float64) *Angle  { return &Angle{value: v, unit: Degree} }
func Rad(v float64) *Angle  { return &Angle{value: v, unit: Radian} }
func Grad(v float64) *Angle { return &Angle{value: v, unit: Gradian} }

func (a *Angle) Value() float64  { return a.value }
func (a *Angle) Unit() AngleUnit { return a.unit }
func (a *Angle) String() string {
	return strconv.FormatFloat(a.value, 'g', -1, 64) + " " + a.unit.String()
}
func (a *Angle) Clone() Expression      { return &Angle{value: a.value, unit: a.unit} }
func (a *Angle) Children() []Expression { return nil }

// Equal treats two NaN angles of the same unit as equal.
func (a *Angle) Equal(other Expression) bool {
	o, ok := other.(*Angle)
	if !ok || a.unit != o.unit {
		return false
	}
	return a.value == o.value || (math.IsNaN(a.value) && math.IsNaN(o.value))
}

// To converts the angle into unit u.
func (a *Angle) To(u AngleUnit) *Angle {
	if a.unit == u {
		return a
	}
	return &Angle{value: a.value / a.unit.perRadian() * u.perRadian(), unit: u}
}

func (a *Angle) WithChildren(children ...Expression) Expression {
	checkArity("angle", children, 0, 0)
	return a.Clone()
}
