// Package expr defines the expression syntax tree evaluated by the eval
// package. Nodes are plain data; they carry no evaluation logic and no
// source positions, which keeps them cheap to build both by hand (in tests)
// and by the HCL frontend.
package expr
