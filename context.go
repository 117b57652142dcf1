package symtree

import (
	"fmt"
	"sort"
)

// ============================================================
// DifferentiatorContext
// ============================================================

// DefaultVariable is the variable differentiated by when none is given.
const DefaultVariable = "x"

// DifferentiatorContext carries the differentiation variable and an optional
// function table. A context must not be mutated while a call that reads it
// is in flight.
type DifferentiatorContext struct {
	variable  *Variable
	functions *FunctionTable
}

// NewDifferentiatorContext returns a context for variable; a nil variable
// means DefaultVariable. functions may be nil.
func NewDifferentiatorContext(variable *Variable, functions *FunctionTable) *DifferentiatorContext {
	if variable == nil {
		variable = S(DefaultVariable)
	}
	return &DifferentiatorContext{variable: variable, functions: functions}
}

func (c *DifferentiatorContext) Variable() *Variable       { return c.variable }
func (c *DifferentiatorContext) Functions() *FunctionTable { return c.functions }

// SetVariable changes the differentiation variable in place.
func (c *DifferentiatorContext) SetVariable(v *Variable) {
	if v == nil {
		panic(nilArgument("variable"))
	}
	c.variable = v
}

// WithVariable returns a copy of c differentiating by v.
func (c *DifferentiatorContext) WithVariable(v *Variable) *DifferentiatorContext {
	return &DifferentiatorContext{variable: v, functions: c.functions}
}

// dependsOn reports whether e contains the context variable, either freely
// or through the body of a user function defined in the table.
func (c *DifferentiatorContext) dependsOn(e Expression) bool {
	return c.dependsVia(e, map[Signature]bool{})
}

// dependsVia follows each signature once; call-site arguments are already
// covered by HasVariable on e.
func (c *DifferentiatorContext) dependsVia(e Expression, seen map[Signature]bool) bool {
	if HasVariable(e, c.variable) {
		return true
	}
	if c.functions == nil {
		return false
	}
	found := false
	Inspect(e, func(n Expression) bool {
		f, ok := n.(*UserFunction)
		if found || !ok {
			return !found
		}
		sig := f.Signature()
		if seen[sig] {
			return true
		}
		seen[sig] = true
		fn, ok := c.functions.Lookup(sig)
		if !ok {
			return true
		}
		body, err := fn.Bind(f.args)
		if err != nil {
			return true
		}
		found = c.dependsVia(body, seen)
		return !found
	})
	return found
}

// ============================================================
// FunctionTable — user function bodies keyed by signature
// ============================================================

// Function is the body of a user function over its parameter names.
type Function struct {
	Params []string
	Body   Expression
}

// Bind substitutes args for the parameters of f.
func (f Function) Bind(args []Expression) (Expression, error) {
	if len(args) != len(f.Params) {
		return nil, fmt.Errorf("%w: function takes %d arguments, got %d", ErrArity, len(f.Params), len(args))
	}
	values := make(map[string]Expression, len(args))
	for i, p := range f.Params {
		values[p] = args[i]
	}
	return SubstituteAll(f.Body, values), nil
}

type FunctionTable struct {
	functions map[Signature]Function
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{functions: map[Signature]Function{}}
}

// Define binds name(params...) to body, replacing an earlier definition.
func (t *FunctionTable) Define(name string, params []string, body Expression) error {
	if name == "" {
		return nilArgument("function name")
	}
	if isNil(body) {
		return nilArgument("function body")
	}
	sig := Signature{Name: name, Arity: len(params)}
	t.functions[sig] = Function{Params: append([]string(nil), params...), Body: body}
	return nil
}

// DefineExpression binds a Define node whose key is a UserFunction with
// Variable arguments, e.g. f(x, y) := x*y.
func (t *FunctionTable) DefineExpression(d *Define) error {
	if d == nil {
		return nilArgument("define")
	}
	f, ok := d.key.(*UserFunction)
	if !ok {
		return fmt.Errorf("%w: %s is not a function definition", ErrParameterTypeMismatch, d)
	}
	params := make([]string, len(f.args))
	for i, a := range f.args {
		v, ok := a.(*Variable)
		if !ok {
			return fmt.Errorf("%w: parameter %d of %s is not a variable", ErrParameterTypeMismatch, i, f.name)
		}
		params[i] = v.name
	}
	return t.Define(f.name, params, d.value)
}

func (t *FunctionTable) Lookup(sig Signature) (Function, bool) {
	f, ok := t.functions[sig]
	return f, ok
}

func (t *FunctionTable) Remove(sig Signature) { delete(t.functions, sig) }
func (t *FunctionTable) Len() int             { return len(t.functions) }

// Signatures returns the defined signatures sorted by name, then arity.
func (t *FunctionTable) Signatures() []Signature {
	sigs := make([]Signature, 0, len(t.functions))
	for s := range t.functions {
		sigs = append(sigs, s)
	}
	sort.Slice(sigs, func(i, j int) bool {
		if sigs[i].Name != sigs[j].Name {
			return sigs[i].Name < sigs[j].Name
		}
		return sigs[i].Arity < sigs[j].Arity
	})
	return sigs
}
