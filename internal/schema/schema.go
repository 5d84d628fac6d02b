package schema

import "github.com/hashicorp/hcl/v2"

// Variable represents a `variable` block from a configuration file. Default
// is kept as a raw expression so the loader translates it alongside
// everything else.
type Variable struct {
	Name    string         `hcl:"name,label"`
	Default hcl.Expression `hcl:"default,optional"`
}

// Content represents the `content` block inside a dynamic block: the body
// template instantiated once per collection item.
type Content struct {
	Body hcl.Body `hcl:",remain"`
}

// DynamicBlock represents a `block` declaration: a nested-block shape (such
// as a security group's `ingress`) generated once per element of the
// for_each collection.
type DynamicBlock struct {
	Type    string         `hcl:"block_type,label"`
	Name    string         `hcl:"instance_name,label"`
	ForEach hcl.Expression `hcl:"for_each"`
	Content *Content       `hcl:"content,block"`
}

// Output represents an `output` block: a single named expression to evaluate
// and render.
type Output struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// Document represents the top-level structure of one configuration file.
type Document struct {
	Variables []*Variable     `hcl:"variable,block"`
	Blocks    []*DynamicBlock `hcl:"block,block"`
	Outputs   []*Output       `hcl:"output,block"`
}
