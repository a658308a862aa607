// Package diagnostic provides structured errors, warnings and infos raised
// while validating configuration and selecting the types to derive builders for.
//
// Key capabilities:
//   - Unknown type reports with "did you mean" suggestions
//   - Duplicate type and package errors
//   - Configuration validation errors
package diagnostic
