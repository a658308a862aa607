package match

import (
	"cmp"
	"slices"
)

// MinSuggestScore is the lowest Score a name needs to be suggested.
const MinSuggestScore = 0.5

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a ranked list of candidates, best first.
type CandidateList []Candidate

// RankCandidates scores every known name against the requested one. Ties are
// broken by name so the order does not depend on the input order.
func RankCandidates(requested string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{Name: name, Score: Score(requested, name)})
	}

	slices.SortFunc(candidates, func(x, y Candidate) int {
		return cmp.Or(
			cmp.Compare(y.Score, x.Score),
			cmp.Compare(x.Name, y.Name),
		)
	})

	return candidates
}

// Suggest returns at most limit known names similar enough to requested to
// be offered as alternatives, best first.
func Suggest(requested string, known []string, limit int) []string {
	var names []string

	for _, c := range RankCandidates(requested, known).AboveThreshold(MinSuggestScore).Top(limit) {
		names = append(names, c.Name)
	}

	return names
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	return c[:max(0, min(n, len(c)))]
}

// AboveThreshold returns the candidates scoring at least threshold. The list
// is ranked, so this is a prefix of c.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	n := 0
	for n < len(c) && c[n].Score >= threshold {
		n++
	}

	return c[:n]
}
