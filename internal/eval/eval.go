package eval

import (
	"fmt"
	"strings"

	"github.com/vk/expandgo/internal/expr"
	"github.com/vk/expandgo/internal/value"
)

// UndefinedVariableError reports a reference to a name with no binding in
// any enclosing scope.
type UndefinedVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// UnsupportedAttributeError reports an attribute or index access that the
// target value does not expose.
type UnsupportedAttributeError struct {
	Name    string
	Subject string
}

// Error implements the error interface.
func (e *UnsupportedAttributeError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("unsupported attribute %q on %s", e.Name, e.Subject)
	}
	return fmt.Sprintf("unsupported attribute %q", e.Name)
}

// Evaluate walks the given expression and produces its value in the given
// environment. Evaluation is pure: the environment is never mutated, and the
// innermost failure aborts the whole expression with no partial result.
func Evaluate(e expr.Expr, env *Environment) (value.Value, error) {
	switch n := e.(type) {
	case *expr.Literal:
		return n.Val, nil

	case *expr.VarRef:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return value.Value{}, &UndefinedVariableError{Name: n.Name}
		}
		return v, nil

	case *expr.GetAttr:
		return evalGetAttr(n, env)

	case *expr.Index:
		return evalIndex(n, env)

	case *expr.Equal:
		return evalEqual(n, env)

	case *expr.Template:
		return evalTemplate(n, env)

	case *expr.Ternary:
		return evalTernary(n, env)

	case *expr.Splat:
		return evalSplat(n, env)

	case *expr.ListCons:
		elems := make([]value.Value, len(n.Items))
		for i, item := range n.Items {
			v, err := Evaluate(item, env)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.ListVal(elems), nil

	case *expr.ObjectCons:
		entries := make(map[string]value.Value, len(n.Items))
		for _, item := range n.Items {
			v, err := Evaluate(item.Value, env)
			if err != nil {
				return value.Value{}, err
			}
			entries[item.Key] = v
		}
		return value.MapVal(entries), nil

	default:
		return value.Value{}, fmt.Errorf("unhandled expression node %T", e)
	}
}

func evalGetAttr(n *expr.GetAttr, env *Environment) (value.Value, error) {
	src, err := Evaluate(n.Source, env)
	if err != nil {
		return value.Value{}, err
	}
	if src.Kind() != value.KindMap {
		return value.Value{}, &value.TypeMismatchError{
			Subject: n.Source.String(),
			Wanted:  "map",
			Got:     src.Kind(),
		}
	}
	attr, ok, err := src.Attr(n.Name)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, &UnsupportedAttributeError{Name: n.Name, Subject: n.Source.String()}
	}
	return attr, nil
}

func evalIndex(n *expr.Index, env *Environment) (value.Value, error) {
	coll, err := Evaluate(n.Collection, env)
	if err != nil {
		return value.Value{}, err
	}
	key, err := Evaluate(n.Key, env)
	if err != nil {
		return value.Value{}, err
	}

	switch coll.Kind() {
	case value.KindList:
		idxF, err := key.AsNumber()
		if err != nil {
			return value.Value{}, &value.TypeMismatchError{
				Subject: "index of " + n.Collection.String(),
				Wanted:  "number",
				Got:     key.Kind(),
			}
		}
		elems, err := coll.AsList()
		if err != nil {
			return value.Value{}, err
		}
		idx := int(idxF)
		if float64(idx) != idxF || idx < 0 || idx >= len(elems) {
			// Out-of-range and fractional indices surface as an
			// unsupported element, same terminal class as a missing
			// map attribute.
			return value.Value{}, &UnsupportedAttributeError{
				Name:    key.GoString(),
				Subject: n.Collection.String(),
			}
		}
		return elems[idx], nil

	case value.KindMap:
		name, err := key.AsString()
		if err != nil {
			return value.Value{}, &value.TypeMismatchError{
				Subject: "index of " + n.Collection.String(),
				Wanted:  "string",
				Got:     key.Kind(),
			}
		}
		attr, ok, err := coll.Attr(name)
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, &UnsupportedAttributeError{Name: name, Subject: n.Collection.String()}
		}
		return attr, nil

	default:
		return value.Value{}, &value.TypeMismatchError{
			Subject: n.Collection.String(),
			Wanted:  "list or map",
			Got:     coll.Kind(),
		}
	}
}

func evalEqual(n *expr.Equal, env *Environment) (value.Value, error) {
	lhs, err := Evaluate(n.LHS, env)
	if err != nil {
		return value.Value{}, err
	}
	rhs, err := Evaluate(n.RHS, env)
	if err != nil {
		return value.Value{}, err
	}
	eq := lhs.Equal(rhs)
	if n.Negated {
		eq = !eq
	}
	return value.BoolVal(eq), nil
}

func evalTemplate(n *expr.Template, env *Environment) (value.Value, error) {
	var b strings.Builder
	for _, part := range n.Parts {
		v, err := Evaluate(part, env)
		if err != nil {
			return value.Value{}, err
		}
		s, err := v.InterpolationString()
		if err != nil {
			return value.Value{}, err
		}
		b.WriteString(s)
	}
	return value.StringVal(b.String()), nil
}

func evalTernary(n *expr.Ternary, env *Environment) (value.Value, error) {
	// Branch kinds must be reconcilable. The check is static, before either
	// branch runs, so it can never force evaluation of the branch the
	// condition rejects.
	if thenKind, ok := staticKind(n.Then); ok {
		if elseKind, ok := staticKind(n.Else); ok && thenKind != elseKind {
			return value.Value{}, &value.TypeMismatchError{
				Subject: "ternary branches of " + n.Cond.String(),
				Wanted:  thenKind.String(),
				Got:     elseKind,
			}
		}
	}

	cond, err := Evaluate(n.Cond, env)
	if err != nil {
		return value.Value{}, err
	}
	if cond.Kind() != value.KindBool {
		// No truthy coercion: a number or a non-empty string is not a
		// usable condition.
		return value.Value{}, &value.TypeMismatchError{
			Subject: "ternary condition " + n.Cond.String(),
			Wanted:  "bool",
			Got:     cond.Kind(),
		}
	}

	selected, _ := cond.AsBool()
	if selected {
		return Evaluate(n.Then, env)
	}
	return Evaluate(n.Else, env)
}

func evalSplat(n *expr.Splat, env *Environment) (value.Value, error) {
	src, err := Evaluate(n.Source, env)
	if err != nil {
		return value.Value{}, err
	}
	if src.Kind() != value.KindList {
		return value.Value{}, &value.TypeMismatchError{
			Subject: n.Source.String(),
			Wanted:  "list",
			Got:     src.Kind(),
		}
	}
	elems, err := src.AsList()
	if err != nil {
		return value.Value{}, err
	}

	// All-or-nothing projection: the first failing element aborts the whole
	// expression, so no partial list ever escapes.
	projected := make([]value.Value, len(elems))
	for i, elem := range elems {
		v := elem
		for _, step := range n.Path {
			if v.Kind() != value.KindMap {
				return value.Value{}, &value.TypeMismatchError{
					Subject: fmt.Sprintf("element %d of %s", i, n.Source.String()),
					Wanted:  "map",
					Got:     v.Kind(),
				}
			}
			attr, ok, err := v.Attr(step)
			if err != nil {
				return value.Value{}, err
			}
			if !ok {
				return value.Value{}, &UnsupportedAttributeError{
					Name:    step,
					Subject: fmt.Sprintf("element %d of %s", i, n.Source.String()),
				}
			}
			v = attr
		}
		projected[i] = v
	}
	return value.ListVal(projected), nil
}

// staticKind infers the result kind of an expression without evaluating it.
// The second result reports whether inference was possible; references and
// accesses depend on the environment and are never inferable.
func staticKind(e expr.Expr) (value.Kind, bool) {
	switch n := e.(type) {
	case *expr.Literal:
		return n.Val.Kind(), true
	case *expr.Template:
		return value.KindString, true
	case *expr.Equal:
		return value.KindBool, true
	case *expr.Splat, *expr.ListCons:
		return value.KindList, true
	case *expr.ObjectCons:
		return value.KindMap, true
	case *expr.Ternary:
		thenKind, ok := staticKind(n.Then)
		if !ok {
			return value.KindInvalid, false
		}
		elseKind, ok := staticKind(n.Else)
		if !ok || thenKind != elseKind {
			return value.KindInvalid, false
		}
		return thenKind, true
	default:
		return value.KindInvalid, false
	}
}
