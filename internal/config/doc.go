// Package config provides the schema, parsing and validation of builder
// configuration files.
//
// A configuration file pins which types of which packages get builders, so
// that regeneration is deterministic without relying on marker comments.
// YAML and HCL are both accepted; the format is chosen by file extension.
//
// # Schema Overview
//
//	version: "1"
//	generate_comments: true
//	targets:
//	  - package: ./examples/basic
//	    output: builder_gen.go   # default
//	    types: [Point, Name]     # omit to use //builder:derive markers
//
// The same file in HCL:
//
//	version           = "1"
//	generate_comments = true
//
//	target "./examples/basic" {
//	  output = "builder_gen.go"
//	  types  = ["Point", "Name"]
//	}
//
// A single type may be written as a plain string: "types: Point".
package config
