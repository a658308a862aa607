// Package engine runs the builder derivation pipeline: load packages,
// select and extract records, plan companion names, generate code, and
// write or check the generated files.
//
// A selected type that cannot carry a builder aborts the pipeline with a
// *analyze.MisuseError panic. Everything else is reported as an error.
package engine
