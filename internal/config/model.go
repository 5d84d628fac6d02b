package config

import (
	"github.com/vk/expandgo/internal/expand"
	"github.com/vk/expandgo/internal/expr"
)

// Document is the unified representation of all loaded configuration files.
// Slices preserve document order, which is also rendering order.
type Document struct {
	Variables []*Variable
	Blocks    []*BlockTemplate
	Outputs   []*Output
}

// Variable is a declared variable. Default is nil when the declaration
// carries no default; such a variable must be bound by the caller or any
// reference to it fails as undefined.
type Variable struct {
	Name    string
	Default expr.Expr
}

// BlockTemplate is one dynamic block declaration: the block shape to emit,
// the collection to iterate, and the body template to instantiate per item.
type BlockTemplate struct {
	Type    string
	Name    string
	ForEach expr.Expr
	Body    []expand.Attribute
}

// Output is a single named expression to evaluate.
type Output struct {
	Name  string
	Value expr.Expr
}
