// Package hcl is the HCL frontend: it discovers and parses .hcl
// configuration files, decodes them against the schema package, and
// translates every contained expression into the evaluator's syntax tree,
// producing the config document the rest of the pipeline consumes.
package hcl
