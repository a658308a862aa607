// Package plan turns loaded records into builder plans consumed by code
// generation.
//
// Planning pipeline:
//  1. Analyze packages → type graph
//  2. For each request, select record types by name or by the
//     //builder:derive marker
//  3. Extract each record schema (misuse aborts with a panic)
//  4. Derive companion names: builder, error, factory, storage field
//  5. Emit diagnostics (unknown types with suggestions, duplicates)
package plan
