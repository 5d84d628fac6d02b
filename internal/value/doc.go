// Package value defines the tagged value domain shared by the evaluator and
// the block expander: strings, numbers, booleans, lists, and maps, backed by
// cty values so the HCL frontend and renderers can bridge without copying.
//
// Values are immutable after construction. Accessors are strict: asking a
// non-map for a field, or a number for its boolean, fails with a
// TypeMismatchError rather than coercing. The single sanctioned coercion is
// Number/Bool to String for interpolation contexts, see InterpolationString.
package value
