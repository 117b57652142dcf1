package symtree

import (
	"errors"
	"fmt"
)

var (
	// ErrArgumentNull is returned (or panicked, from constructors) when a
	// required node, context or collaborator is nil.
	ErrArgumentNull = errors.New("symtree: argument is nil")

	// ErrNotSupported is the default fallback of an analyzer that has no
	// rule for a node variant.
	ErrNotSupported = errors.New("symtree: operation not supported")

	// ErrDivideByZero is returned by the simplifier for a literal zero divisor.
	ErrDivideByZero = errors.New("symtree: division by zero")

	// ErrInvalidOperation is returned when a user function is differentiated
	// without a function table.
	ErrInvalidOperation = errors.New("symtree: invalid operation")

	// ErrUnknownFunction is returned when a user function is not in the table.
	ErrUnknownFunction = errors.New("symtree: unknown function")

	// ErrParameterTypeMismatch is returned by the type analyzer.
	ErrParameterTypeMismatch = errors.New("symtree: parameter type mismatch")

	// ErrArity indicates a wrong number of children for a node.
	ErrArity = errors.New("symtree: wrong number of arguments")

	// ErrRewriteLimit is returned when the simplifier fires more rules than
	// its configured bound allows.
	ErrRewriteLimit = errors.New("symtree: rewrite limit exceeded")

	// ErrInvalidConfig indicates a configuration value out of range.
	ErrInvalidConfig = errors.New("symtree: invalid config")
)

func nilArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrArgumentNull, name)
}

// mustNotNil panics when a required child is nil.
func mustNotNil(name string, e Expression) {
	if isNil(e) {
		panic(nilArgument(name))
	}
}

// isNil reports whether e is nil, including typed nil node pointers.
func isNil(e Expression) bool {
	if e == nil {
		return true
	}
	switch v := e.(type) {
	case *Number:
		return v == nil
	case *Variable:
		return v == nil
	case *Bool:
		return v == nil
	case *Complex:
		return v == nil
	case *Angle:
		return v == nil
	case *Unary:
		return v == nil
	case *Binary:
		return v == nil
	case *Variadic:
		return v == nil
	case *Define:
		return v == nil
	case *Undefine:
		return v == nil
	case *CompoundAssign:
		return v == nil
	case *UserFunction:
		return v == nil
	case *Lambda:
		return v == nil
	case *Call:
		return v == nil
	case *Curry:
		return v == nil
	case *Derivative:
		return v == nil
	}
	return false
}
