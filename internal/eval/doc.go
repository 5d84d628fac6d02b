// Package eval is the tree-walking evaluator at the core of the module. It
// turns expr syntax trees into values against an immutable Environment.
//
// Every call is a pure function of (expression, environment): no state
// persists between calls and nothing is mutated, so callers may evaluate
// independent expressions concurrently without coordination.
//
// Failures fall into a closed taxonomy: UndefinedVariableError,
// UnsupportedAttributeError, and value.TypeMismatchError. All three are
// terminal for the expression being evaluated; there are no partial results.
package eval
