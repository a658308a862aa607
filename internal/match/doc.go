// Package match suggests type names for misspelled requests.
//
// Names are folded (lower case, no separators) and compared by edit distance
// using github.com/agext/levenshtein. Asking for a generated companion such as
// PointBuilder matches the record it belongs to.
//
// Key functions:
//   - Fold, TrimCompanion: bring identifiers into comparable form
//   - Score: rates one known name against a requested one
//   - RankCandidates: ranks known names against a requested one
//   - Suggest: returns the few names worth offering as "did you mean"
package match
