package symtree

import (
	"fmt"
	"strings"
)

// ============================================================
// Define / Undefine
// ============================================================

// Define binds a Variable or a UserFunction signature to a value.
type Define struct{ key, value Expression }

func DefineOf(key, value Expression) *Define {
	mustBindable(key)
	mustNotNil("define value", value)
	return &Define{key: key, value: value}
}

func mustBindable(key Expression) {
	mustNotNil("binding key", key)
	switch key.(type) {
	case *Variable, *UserFunction:
		return
	}
	panic(fmt.Errorf("%w: cannot bind to %s", ErrParameterTypeMismatch, key))
}

func (d *Define) Key() Expression        { return d.key }
func (d *Define) Value() Expression      { return d.value }
func (d *Define) Children() []Expression { return []Expression{d.key, d.value} }
func (d *Define) Clone() Expression      { return &Define{key: d.key.Clone(), value: d.value.Clone()} }
func (d *Define) String() string         { return d.key.String() + " := " + d.value.String() }
func (d *Define) Equal(other Expression) bool {
	o, ok := other.(*Define)
	return ok && d.key.Equal(o.key) && d.value.Equal(o.value)
}

func (d *Define) WithChildren(children ...Expression) Expression {
	checkArity("define", children, 2, 2)
	return DefineOf(children[0], children[1])
}

type Undefine struct{ key Expression }

func UndefineOf(key Expression) *Undefine {
	mustBindable(key)
	return &Undefine{key: key}
}

func (u *Undefine) Key() Expression        { return u.key }
func (u *Undefine) Children() []Expression { return []Expression{u.key} }
func (u *Undefine) Clone() Expression      { return &Undefine{key: u.key.Clone()} }
func (u *Undefine) String() string         { return "undef(" + u.key.String() + ")" }
func (u *Undefine) Equal(other Expression) bool {
	o, ok := other.(*Undefine)
	return ok && u.key.Equal(o.key)
}

func (u *Undefine) WithChildren(children ...Expression) Expression {
	checkArity("undefine", children, 1, 1)
	return UndefineOf(children[0])
}

// ============================================================
// CompoundAssign — x += v and friends
// ============================================================

type AssignOp int

const (
	AddAssign AssignOp = iota
	SubAssign
	MulAssign
	DivAssign
	LeftShiftAssign
	RightShiftAssign
)

var assignNames = [...]string{
	AddAssign: "+=", SubAssign: "-=", MulAssign: "*=", DivAssign: "/=",
	LeftShiftAssign: "<<=", RightShiftAssign: ">>=",
}

func (op AssignOp) String() string {
	if op >= 0 && int(op) < len(assignNames) {
		return assignNames[op]
	}
	return fmt.Sprintf("AssignOp(%d)", int(op))
}

type CompoundAssign struct {
	op       AssignOp
	variable *Variable
	value    Expression
}

func CompoundAssignOf(op AssignOp, variable *Variable, value Expression) *CompoundAssign {
	if variable == nil {
		panic(nilArgument(op.String() + " variable"))
	}
	mustNotNil(op.String()+" value", value)
	return &CompoundAssign{op: op, variable: variable, value: value}
}

func (c *CompoundAssign) Op() AssignOp           { return c.op }
func (c *CompoundAssign) Variable() *Variable    { return c.variable }
func (c *CompoundAssign) Value() Expression      { return c.value }
func (c *CompoundAssign) Children() []Expression { return []Expression{c.variable, c.value} }
func (c *CompoundAssign) String() string {
	return c.variable.String() + " " + c.op.String() + " " + c.value.String()
}

func (c *CompoundAssign) Clone() Expression {
	return &CompoundAssign{op: c.op, variable: &Variable{name: c.variable.name}, value: c.value.Clone()}
}

func (c *CompoundAssign) Equal(other Expression) bool {
	o, ok := other.(*CompoundAssign)
	return ok && c.op == o.op && c.variable.Equal(o.variable) && c.value.Equal(o.value)
}

func (c *CompoundAssign) WithChildren(children ...Expression) Expression {
	checkArity(c.op.String(), children, 2, 2)
	v, ok := children[0].(*Variable)
	if !ok {
		panic(fmt.Errorf("%w: %s target must be a variable", ErrParameterTypeMismatch, c.op))
	}
	return &CompoundAssign{op: c.op, variable: v, value: children[1]}
}

// ============================================================
// UserFunction — reference to a user-defined function
// ============================================================

// Signature identifies a user function by name and parameter count.
type Signature struct {
	Name  string
	Arity int
}

func (s Signature) String() string { return fmt.Sprintf("%s/%d", s.Name, s.Arity) }

type UserFunction struct {
	name       string
	args       []Expression
	paramCount int
}

func UserFunctionOf(name string, args ...Expression) *UserFunction {
	if name == "" {
		panic(nilArgument("function name"))
	}
	for i, a := range args {
		mustNotNil(fmt.Sprintf("%s argument %d", name, i), a)
	}
	return &UserFunction{name: name, args: copyAll(args), paramCount: len(args)}
}

func (f *UserFunction) Name() string           { return f.name }
func (f *UserFunction) Args() []Expression     { return copyAll(f.args) }
func (f *UserFunction) ParamCount() int        { return f.paramCount }
func (f *UserFunction) Signature() Signature   { return Signature{Name: f.name, Arity: f.paramCount} }
func (f *UserFunction) Children() []Expression { return copyAll(f.args) }
func (f *UserFunction) String() string         { return f.name + "(" + joinExpressions(f.args) + ")" }
func (f *UserFunction) Clone() Expression {
	return &UserFunction{name: f.name, args: cloneAll(f.args), paramCount: f.paramCount}
}

func (f *UserFunction) Equal(other Expression) bool {
	o, ok := other.(*UserFunction)
	return ok && f.name == o.name && f.paramCount == o.paramCount && equalAll(f.args, o.args)
}

func (f *UserFunction) WithChildren(children ...Expression) Expression {
	checkArity(f.name, children, f.paramCount, f.paramCount)
	return &UserFunction{name: f.name, args: copyAll(children), paramCount: f.paramCount}
}

// ============================================================
// Lambda / Call / Curry
// ============================================================

type Lambda struct {
	params []string
	body   Expression
}

func LambdaOf(params []string, body Expression) *Lambda {
	mustNotNil("lambda body", body)
	for _, p := range params {
		if p == "" {
			panic(nilArgument("lambda parameter name"))
		}
	}
	return &Lambda{params: append([]string(nil), params...), body: body}
}

func (l *Lambda) Params() []string       { return append([]string(nil), l.params...) }
func (l *Lambda) Body() Expression       { return l.body }
func (l *Lambda) Children() []Expression { return []Expression{l.body} }
func (l *Lambda) Clone() Expression      { return &Lambda{params: l.Params(), body: l.body.Clone()} }
func (l *Lambda) String() string {
	return "(" + strings.Join(l.params, ", ") + ") => " + l.body.String()
}

func (l *Lambda) binds(name string) bool {
	for _, p := range l.params {
		if p == name {
			return true
		}
	}
	return false
}

func (l *Lambda) Equal(other Expression) bool {
	o, ok := other.(*Lambda)
	if !ok || len(l.params) != len(o.params) {
		return false
	}
	for i := range l.params {
		if l.params[i] != o.params[i] {
			return false
		}
	}
	return l.body.Equal(o.body)
}

func (l *Lambda) WithChildren(children ...Expression) Expression {
	checkArity("lambda", children, 1, 1)
	return &Lambda{params: l.Params(), body: children[0]}
}

// Call applies a function expression (usually a Lambda) to arguments.
type Call struct {
	function Expression
	args     []Expression
}

func CallOf(function Expression, args ...Expression) *Call {
	mustNotNil("call function", function)
	for i, a := range args {
		mustNotNil(fmt.Sprintf("call argument %d", i), a)
	}
	return &Call{function: function, args: copyAll(args)}
}

func (c *Call) Function() Expression   { return c.function }
func (c *Call) Args() []Expression     { return copyAll(c.args) }
func (c *Call) Children() []Expression { return append([]Expression{c.function}, c.args...) }
func (c *Call) Clone() Expression {
	return &Call{function: c.function.Clone(), args: cloneAll(c.args)}
}
func (c *Call) String() string {
	return "(" + c.function.String() + ")(" + joinExpressions(c.args) + ")"
}
func (c *Call) Equal(other Expression) bool {
	o, ok := other.(*Call)
	return ok && c.function.Equal(o.function) && equalAll(c.args, o.args)
}

func (c *Call) WithChildren(children ...Expression) Expression {
	checkArity("call", children, 1+len(c.args), 1+len(c.args))
	return &Call{function: children[0], args: copyAll(children[1:])}
}

// Curry partially applies a function to leading arguments.
type Curry struct {
	function Expression
	args     []Expression
}

func CurryOf(function Expression, args ...Expression) *Curry {
	mustNotNil("curry function", function)
	for i, a := range args {
		mustNotNil(fmt.Sprintf("curry argument %d", i), a)
	}
	return &Curry{function: function, args: copyAll(args)}
}

func (c *Curry) Function() Expression   { return c.function }
func (c *Curry) Args() []Expression     { return copyAll(c.args) }
func (c *Curry) Children() []Expression { return append([]Expression{c.function}, c.args...) }
func (c *Curry) Clone() Expression {
	return &Curry{function: c.function.Clone(), args: cloneAll(c.args)}
}
func (c *Curry) String() string {
	return "curry(" + c.function.String() + ", " + joinExpressions(c.args) + ")"
}
func (c *Curry) Equal(other Expression) bool {
	o, ok := other.(*Curry)
	return ok && c.function.Equal(o.function) && equalAll(c.args, o.args)
}

func (c *Curry) WithChildren(children ...Expression) Expression {
	checkArity("curry", children, 1+len(c.args), 1+len(c.args))
	return &Curry{function: children[0], args: copyAll(children[1:])}
}

// ============================================================
// Derivative — deriv(body, variable[, point])
// ============================================================

type Derivative struct {
	body     Expression
	variable *Variable
	point    *Number
}

// DerivativeOf builds an unevaluated derivative; point may be nil.
func DerivativeOf(body Expression, variable *Variable, point *Number) *Derivative {
	mustNotNil("derivative body", body)
	if variable == nil {
		panic(nilArgument("derivative variable"))
	}
	return &Derivative{body: body, variable: variable, point: point}
}

func (d *Derivative) Body() Expression       { return d.body }
func (d *Derivative) Variable() *Variable    { return d.variable }
func (d *Derivative) Point() *Number         { return d.point }
func (d *Derivative) Children() []Expression { return []Expression{d.body} }

func (d *Derivative) String() string {
	if d.point != nil {
		return "deriv(" + d.body.String() + ", " + d.variable.String() + ", " + d.point.String() + ")"
	}
	return "deriv(" + d.body.String() + ", " + d.variable.String() + ")"
}

func (d *Derivative) Clone() Expression {
	c := &Derivative{body: d.body.Clone(), variable: &Variable{name: d.variable.name}}
	if d.point != nil {
		c.point = &Number{value: d.point.value}
	}
	return c
}

func (d *Derivative) Equal(other Expression) bool {
	o, ok := other.(*Derivative)
	if !ok || !d.variable.Equal(o.variable) || !d.body.Equal(o.body) {
		return false
	}
	if d.point == nil || o.point == nil {
		return d.point == nil && o.point == nil
	}
	return d.point.Equal(o.point)
}

func (d *Derivative) WithChildren(children ...Expression) Expression {
	checkArity("deriv", children, 1, 1)
	return &Derivative{body: children[0], variable: d.variable, point: d.point}
}

func joinExpressions(es []Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
