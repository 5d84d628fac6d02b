// Package hclexpr translates HCL syntax expressions into the expr syntax
// tree. Only the subset of the language this module evaluates is accepted:
// literals, templates, traversals, == and !=, conditionals, splats, and
// tuple/object constructors. Anything else is rejected with an error naming
// the construct and its source range.
package hclexpr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/expandgo/internal/expr"
	"github.com/vk/expandgo/internal/value"
)

// Translate converts an HCL expression into the evaluator's syntax tree.
func Translate(e hcl.Expression) (expr.Expr, error) {
	syntaxExpr, ok := e.(hclsyntax.Expression)
	if !ok {
		return nil, fmt.Errorf("expression at %s is not native HCL syntax", e.Range())
	}
	return translate(syntaxExpr)
}

func translate(e hclsyntax.Expression) (expr.Expr, error) {
	switch v := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		lit, err := value.FromCty(v.Val)
		if err != nil {
			return nil, fmt.Errorf("invalid literal at %s: %w", v.Range(), err)
		}
		return &expr.Literal{Val: lit}, nil

	case *hclsyntax.TemplateExpr:
		if v.IsStringLiteral() {
			return translate(v.Parts[0])
		}
		parts := make([]expr.Expr, len(v.Parts))
		for i, part := range v.Parts {
			p, err := translate(part)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return &expr.Template{Parts: parts}, nil

	case *hclsyntax.TemplateWrapExpr:
		return translate(v.Wrapped)

	case *hclsyntax.ScopeTraversalExpr:
		return fromTraversal(v.Traversal)

	case *hclsyntax.RelativeTraversalExpr:
		source, err := translate(v.Source)
		if err != nil {
			return nil, err
		}
		return applySteps(source, v.Traversal)

	case *hclsyntax.ConditionalExpr:
		cond, err := translate(v.Condition)
		if err != nil {
			return nil, err
		}
		thenExpr, err := translate(v.TrueResult)
		if err != nil {
			return nil, err
		}
		elseExpr, err := translate(v.FalseResult)
		if err != nil {
			return nil, err
		}
		return &expr.Ternary{Cond: cond, Then: thenExpr, Else: elseExpr}, nil

	case *hclsyntax.BinaryOpExpr:
		var negated bool
		switch v.Op {
		case hclsyntax.OpEqual:
		case hclsyntax.OpNotEqual:
			negated = true
		default:
			return nil, fmt.Errorf("unsupported operator at %s: only == and != are available", v.Range())
		}
		lhs, err := translate(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := translate(v.RHS)
		if err != nil {
			return nil, err
		}
		return &expr.Equal{LHS: lhs, RHS: rhs, Negated: negated}, nil

	case *hclsyntax.SplatExpr:
		source, err := translate(v.Source)
		if err != nil {
			return nil, err
		}
		path, err := splatPath(v.Each, v.Item)
		if err != nil {
			return nil, fmt.Errorf("unsupported splat at %s: %w", v.Range(), err)
		}
		return &expr.Splat{Source: source, Path: path}, nil

	case *hclsyntax.IndexExpr:
		coll, err := translate(v.Collection)
		if err != nil {
			return nil, err
		}
		key, err := translate(v.Key)
		if err != nil {
			return nil, err
		}
		return &expr.Index{Collection: coll, Key: key}, nil

	case *hclsyntax.TupleConsExpr:
		items := make([]expr.Expr, len(v.Exprs))
		for i, item := range v.Exprs {
			e, err := translate(item)
			if err != nil {
				return nil, err
			}
			items[i] = e
		}
		return &expr.ListCons{Items: items}, nil

	case *hclsyntax.ObjectConsExpr:
		items := make([]expr.ObjectItem, 0, len(v.Items))
		for _, item := range v.Items {
			key, err := objectKey(item.KeyExpr)
			if err != nil {
				return nil, err
			}
			val, err := translate(item.ValueExpr)
			if err != nil {
				return nil, err
			}
			items = append(items, expr.ObjectItem{Key: key, Value: val})
		}
		return &expr.ObjectCons{Items: items}, nil

	case *hclsyntax.ParenthesesExpr:
		return translate(v.Expression)

	case *hclsyntax.FunctionCallExpr:
		return nil, fmt.Errorf("unsupported expression at %s: function call %q", v.Range(), v.Name)

	case *hclsyntax.ForExpr:
		return nil, fmt.Errorf("unsupported expression at %s: for expression (use a for_each block instead)", v.Range())

	default:
		return nil, fmt.Errorf("unsupported expression at %s: %T", e.Range(), e)
	}
}

// fromTraversal maps an absolute traversal onto reference nodes. The `var`
// prefix addresses declared variables, so `var.environment` resolves the
// name "environment"; other roots (such as the expander's `key` and `value`)
// resolve as-is.
func fromTraversal(t hcl.Traversal) (expr.Expr, error) {
	root, ok := t[0].(hcl.TraverseRoot)
	if !ok {
		return nil, fmt.Errorf("traversal at %s does not start with an identifier", t.SourceRange())
	}
	rest := t[1:]

	var base expr.Expr
	if root.Name == "var" {
		if len(rest) == 0 {
			return nil, fmt.Errorf("incomplete variable reference at %s: expected var.<name>", t.SourceRange())
		}
		attr, ok := rest[0].(hcl.TraverseAttr)
		if !ok {
			return nil, fmt.Errorf("invalid variable reference at %s: expected var.<name>", t.SourceRange())
		}
		base = &expr.VarRef{Name: attr.Name}
		rest = rest[1:]
	} else {
		base = &expr.VarRef{Name: root.Name}
	}

	return applySteps(base, rest)
}

func applySteps(base expr.Expr, steps hcl.Traversal) (expr.Expr, error) {
	result := base
	for _, step := range steps {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			result = &expr.GetAttr{Source: result, Name: s.Name}
		case hcl.TraverseIndex:
			key, err := value.FromCty(s.Key)
			if err != nil {
				return nil, fmt.Errorf("invalid index at %s: %w", s.SourceRange(), err)
			}
			result = &expr.Index{Collection: result, Key: &expr.Literal{Val: key}}
		default:
			return nil, fmt.Errorf("unsupported traversal step at %s", step.SourceRange())
		}
	}
	return result, nil
}

// splatPath extracts the attribute path from a splat's per-element
// expression. The path hangs off the anonymous symbol that stands in for
// each element, so anything other than attribute steps on that symbol is
// outside the supported subset.
func splatPath(each hclsyntax.Expression, item *hclsyntax.AnonSymbolExpr) ([]string, error) {
	switch e := each.(type) {
	case *hclsyntax.AnonSymbolExpr:
		if e != item {
			return nil, fmt.Errorf("unexpected element placeholder")
		}
		return nil, nil

	case *hclsyntax.RelativeTraversalExpr:
		prefix, err := splatPath(e.Source, item)
		if err != nil {
			return nil, err
		}
		for _, step := range e.Traversal {
			attr, ok := step.(hcl.TraverseAttr)
			if !ok {
				return nil, fmt.Errorf("only attribute access is supported after [*]")
			}
			prefix = append(prefix, attr.Name)
		}
		return prefix, nil

	default:
		return nil, fmt.Errorf("only attribute access is supported after [*], got %T", each)
	}
}

// objectKey resolves an object constructor key to a plain string. Keyword
// keys and quoted string keys are supported; computed keys are not.
func objectKey(keyExpr hclsyntax.Expression) (string, error) {
	if kw := hcl.ExprAsKeyword(keyExpr); kw != "" {
		return kw, nil
	}
	v, diags := keyExpr.Value(nil)
	if !diags.HasErrors() && v.Type() == cty.String && !v.IsNull() {
		return v.AsString(), nil
	}
	return "", fmt.Errorf("unsupported object key at %s: keys must be identifiers or string literals", keyExpr.Range())
}
