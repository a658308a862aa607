package match

import (
	"github.com/agext/levenshtein"
)

// Score rates how likely known is the name meant by requested, from 0 (no
// resemblance) to 1 (same name once folded, or requested names a companion
// of known).
//
// Both names are folded and compared by edit distance relative to the longer
// one. The comparison is repeated with companion suffixes trimmed and the
// better result wins.
func Score(requested, known string) float64 {
	a, b := Fold(requested), Fold(known)

	return max(
		levenshtein.Similarity(a, b, nil),
		levenshtein.Similarity(TrimCompanion(a), TrimCompanion(b), nil),
	)
}
