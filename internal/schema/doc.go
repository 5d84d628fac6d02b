// Package schema holds the HCL-tagged structs describing the on-disk
// configuration format. These types exist only for gohcl decoding; the rest
// of the application works with the format-agnostic config model instead.
package schema
