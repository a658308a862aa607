// Package gen provides deterministic Go code generation for record builders.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Every package gets one file holding, per record:
//   - the builder type with optional-wrapped field storage
//   - a constructor returning an empty builder
//   - one chaining setter per field
//   - Build, which assembles the record or reports the first unset field
//   - the record's error type
package gen
