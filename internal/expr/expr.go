// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the abstract syntax consumed by the evaluator. The node
// set is deliberately small: literals, variable references, attribute and
// index access, equality, string templates, conditionals, splat projections,
// and the two collection constructors the HCL frontend needs.
package expr

import (
	"fmt"
	"strings"

	"github.com/vk/expandgo/internal/value"
)

// Expr is implemented by every syntax node.
type Expr interface {
	// String renders a compact source-like form of the node, used to name
	// the failing sub-expression in error messages.
	String() string

	exprSigil()
}

// Literal is a value that needs no evaluation.
type Literal struct {
	Val value.Value
}

// VarRef resolves a name in the evaluation environment.
type VarRef struct {
	Name string
}

// GetAttr reads one attribute from a map-like value.
type GetAttr struct {
	Source Expr
	Name   string
}

// Index reads one element of a list by numeric key, or of a map by string key.
type Index struct {
	Collection Expr
	Key        Expr
}

// Equal compares two values for deep equality. With Negated set it is the
// != operator.
type Equal struct {
	LHS     Expr
	RHS     Expr
	Negated bool
}

// Template concatenates its parts into a string. Parts that are numbers or
// booleans are coerced per the interpolation policy; collections fail.
type Template struct {
	Parts []Expr
}

// Ternary selects Then or Else based on a boolean condition. Only the
// selected branch is evaluated.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Splat projects an attribute path across every element of a list,
// producing a new list of the same length and order. An empty path is the
// identity projection.
type Splat struct {
	Source Expr
	Path   []string
}

// ListCons constructs a list from element expressions, preserving order.
type ListCons struct {
	Items []Expr
}

// ObjectItem is a single key/value entry of an ObjectCons.
type ObjectItem struct {
	Key   string
	Value Expr
}

// ObjectCons constructs a map from key/value entry expressions.
type ObjectCons struct {
	Items []ObjectItem
}

func (*Literal) exprSigil()    {}
func (*VarRef) exprSigil()     {}
func (*GetAttr) exprSigil()    {}
func (*Index) exprSigil()      {}
func (*Equal) exprSigil()      {}
func (*Template) exprSigil()   {}
func (*Ternary) exprSigil()    {}
func (*Splat) exprSigil()      {}
func (*ListCons) exprSigil()   {}
func (*ObjectCons) exprSigil() {}

func (e *Literal) String() string {
	switch e.Val.Kind() {
	case value.KindString:
		s, _ := e.Val.AsString()
		return fmt.Sprintf("%q", s)
	case value.KindNumber, value.KindBool:
		s, _ := e.Val.InterpolationString()
		return s
	default:
		return e.Val.Kind().String()
	}
}

func (e *VarRef) String() string {
	return e.Name
}

func (e *GetAttr) String() string {
	return e.Source.String() + "." + e.Name
}

func (e *Index) String() string {
	return e.Collection.String() + "[" + e.Key.String() + "]"
}

func (e *Equal) String() string {
	op := "=="
	if e.Negated {
		op = "!="
	}
	return e.LHS.String() + " " + op + " " + e.RHS.String()
}

func (e *Template) String() string {
	var b strings.Builder
	b.WriteString(`"`)
	for _, p := range e.Parts {
		if lit, ok := p.(*Literal); ok {
			if s, err := lit.Val.AsString(); err == nil {
				b.WriteString(s)
				continue
			}
		}
		b.WriteString("${" + p.String() + "}")
	}
	b.WriteString(`"`)
	return b.String()
}

func (e *Ternary) String() string {
	return e.Cond.String() + " ? " + e.Then.String() + " : " + e.Else.String()
}

func (e *Splat) String() string {
	s := e.Source.String() + "[*]"
	for _, step := range e.Path {
		s += "." + step
	}
	return s
}

func (e *ListCons) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e *ObjectCons) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.Key + " = " + item.Value.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
