package symtree

import "fmt"

// ============================================================
// Analyzer dispatch
// ============================================================

// Analyzer is a context-free operation over the node set.
//
// The node set is closed: an implementation dispatches with a type switch
// over the concrete node types (and the Op of Unary, Binary and Variadic
// nodes) and sends every case it has no rule for to its fallback. The
// default fallback is NotSupported.
type Analyzer[R any] interface {
	Analyze(e Expression) (R, error)
}

// ContextAnalyzer is an operation that carries a context through the walk.
type ContextAnalyzer[R, C any] interface {
	Analyze(e Expression, ctx C) (R, error)
}

// Accept runs a on e after checking both for nil.
func Accept[R any](e Expression, a Analyzer[R]) (R, error) {
	var zero R
	if isNil(e) {
		return zero, nilArgument("expression")
	}
	if a == nil {
		return zero, nilArgument("analyzer")
	}
	return a.Analyze(e)
}

// AcceptContext runs a on e with ctx after checking e and a for nil. The
// analyzer checks its own context.
func AcceptContext[R, C any](e Expression, a ContextAnalyzer[R, C], ctx C) (R, error) {
	var zero R
	if isNil(e) {
		return zero, nilArgument("expression")
	}
	if a == nil {
		return zero, nilArgument("analyzer")
	}
	return a.Analyze(e, ctx)
}

// NotSupported is the default fallback for a node without a rule.
func NotSupported(e Expression) error {
	return fmt.Errorf("%w: %s", ErrNotSupported, describe(e))
}

// describe names the variant of e for error messages.
func describe(e Expression) string {
	switch x := e.(type) {
	case *Unary:
		return fmt.Sprintf("unary %s in %s", x.op, x)
	case *Binary:
		return fmt.Sprintf("binary %s in %s", x.op, x)
	case *Variadic:
		return fmt.Sprintf("%s in %s", x.op, x)
	}
	return fmt.Sprintf("%T %s", e, e)
}

// Inspect traverses e in pre-order; fn returning false skips the children.
func Inspect(e Expression, fn func(Expression) bool) {
	if isNil(e) || !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Inspect(c, fn)
	}
}
