package symtree

import "sort"

// ============================================================
// Free variables
// ============================================================

// HasVariable reports whether v occurs free in e. Lambda parameters shadow.
func HasVariable(e Expression, v *Variable) bool {
	if v == nil || isNil(e) {
		return false
	}
	switch x := e.(type) {
	case *Variable:
		return x.name == v.name
	case *Number, *Bool, *Complex, *Angle:
		return false
	case *Unary:
		return HasVariable(x.arg, v)
	case *Binary:
		return HasVariable(x.left, v) || HasVariable(x.right, v)
	case *Lambda:
		return !x.binds(v.name) && HasVariable(x.body, v)
	}
	for _, c := range e.Children() {
		if HasVariable(c, v) {
			return true
		}
	}
	return false
}

// FreeVariables returns the sorted names of the free variables of e.
func FreeVariables(e Expression) []string {
	seen := map[string]struct{}{}
	collectVariables(e, nil, seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectVariables(e Expression, bound map[string]bool, out map[string]struct{}) {
	switch x := e.(type) {
	case *Variable:
		if !bound[x.name] {
			out[x.name] = struct{}{}
		}
		return
	case *Lambda:
		inner := make(map[string]bool, len(bound)+len(x.params))
		for k := range bound {
			inner[k] = true
		}
		for _, p := range x.params {
			inner[p] = true
		}
		collectVariables(x.body, inner, out)
		return
	}
	for _, c := range e.Children() {
		collectVariables(c, bound, out)
	}
}

// ============================================================
// Substitution
// ============================================================

// Substitute replaces the free occurrences of name in e with value.
func Substitute(e Expression, name string, value Expression) Expression {
	return SubstituteAll(e, map[string]Expression{name: value})
}

// SubstituteAll replaces every free variable named in values at once, so
// swapping f(y, x) into f(x, y) does not capture. Unchanged subtrees are
// shared with e.
func SubstituteAll(e Expression, values map[string]Expression) Expression {
	if len(values) == 0 {
		return e
	}
	switch x := e.(type) {
	case *Variable:
		if v, ok := values[x.name]; ok {
			return v
		}
		return e
	case *Number, *Bool, *Complex, *Angle:
		return e
	case *Lambda:
		var inner map[string]Expression
		for k, v := range values {
			if !x.binds(k) {
				if inner == nil {
					inner = make(map[string]Expression, len(values))
				}
				inner[k] = v
			}
		}
		body := SubstituteAll(x.body, inner)
		if body == x.body {
			return e
		}
		return &Lambda{params: x.params, body: body}
	}
	children := e.Children()
	changed := false
	for i, c := range children {
		nc := SubstituteAll(c, values)
		if nc != c {
			children[i] = nc
			changed = true
		}
	}
	if !changed {
		return e
	}
	return rebuild(e, children)
}

// rebuild is WithChildren for trees built inside the package, where the
// new children keep the kinds the node requires.
func rebuild(e Expression, children []Expression) Expression {
	switch x := e.(type) {
	case *CompoundAssign:
		// A substituted target is no longer assignable; keep the variable.
		return &CompoundAssign{op: x.op, variable: x.variable, value: children[1]}
	case *Define:
		return &Define{key: x.key, value: children[1]}
	case *Undefine:
		return e
	}
	return e.WithChildren(children...)
}
