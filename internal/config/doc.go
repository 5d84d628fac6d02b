// Package config defines the format-agnostic document model the evaluation
// pipeline consumes: declared variables, dynamic block templates, and named
// outputs, all with their expressions already translated into the expr
// syntax tree. Concrete loaders, such as the HCL one, live in separate
// packages and produce this model.
package config
