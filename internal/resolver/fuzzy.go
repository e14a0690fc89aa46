package resolver

import (
	"math"
	"strings"
)

// FuzzyThreshold is the minimum Ratio at which two names are considered the same.
const FuzzyThreshold = 80

// Ratio scores the similarity of two names from 0 to 100, ignoring case.
// It is 100 * (L - d) / L rounded half to even, where L is the combined
// rune length and d the edit distance with insertions and deletions costing
// 1 and substitutions costing 2.
func Ratio(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	d := indelDistance(ra, rb)
	return int(math.RoundToEven(100 * float64(total-d) / float64(total)))
}

// indelDistance is a Levenshtein distance where a substitution costs as much
// as a deletion followed by an insertion.
func indelDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 2
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}

// candidate is a roster entry scored against a query.
type candidate struct {
	index int
	name  string
	id    string
	score int
}

// best picks the highest scoring candidate. Ties go to the lexicographically
// smallest lower-cased name, then to the smallest id.
func best(cs []candidate) (candidate, bool) {
	if len(cs) == 0 {
		return candidate{}, false
	}
	top := cs[0]
	for _, c := range cs[1:] {
		if c.score > top.score {
			top = c
			continue
		}
		if c.score < top.score {
			continue
		}
		cn, tn := strings.ToLower(c.name), strings.ToLower(top.name)
		if cn < tn || (cn == tn && c.id < top.id) {
			top = c
		}
	}
	return top, true
}
