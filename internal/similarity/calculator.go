package similarity

import (
	"math"
	"strings"
)

// DistanceExceeded is the sentinel returned by DamerauLevenshteinDistance
// when the running distance exceeds the caller's threshold.
const DistanceExceeded = math.MaxInt

// Calculator provides the primitive text-similarity metrics: bounded
// Damerau-Levenshtein distance, token-set Jaccard, and character n-gram
// generation. All methods are pure and safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// TokenJaccard computes the Jaccard coefficient over whitespace-tokenized,
// case-insensitive token sets. An empty union yields 0.
func (c *Calculator) TokenJaccard(left, right string) float64 {
	leftTokens := tokenSet(left)
	rightTokens := tokenSet(right)

	return jaccard(leftTokens, rightTokens)
}

// NgramJaccard computes the Jaccard coefficient over the overlapping
// character n-grams of each string. Strings shorter than n contribute an
// empty set; an empty union yields 0.
func (c *Calculator) NgramJaccard(left, right string, n int) float64 {
	return jaccard(c.GenerateNgrams(left, n), c.GenerateNgrams(right, n))
}

// GenerateNgrams returns the set of overlapping substrings of length n,
// uppercased for case-insensitive comparison
func (c *Calculator) GenerateNgrams(input string, n int) map[string]struct{} {
	result := make(map[string]struct{})
	runes := []rune(strings.ToUpper(input))
	for i := 0; i+n <= len(runes); i++ {
		result[string(runes[i:i+n])] = struct{}{}
	}
	return result
}

// DamerauLevenshteinDistance computes the optimal-string-alignment edit
// distance between source and target, counting insertion, deletion,
// substitution, and adjacent transposition at unit cost. Memory is
// O(min(|source|,|target|)) via three rolling rows. Returns
// DistanceExceeded as soon as the minimum distance in a completed row
// exceeds threshold, or immediately if the length difference alone does.
func (c *Calculator) DamerauLevenshteinDistance(source, target string, threshold int) int {
	src := []rune(source)
	tgt := []rune(target)
	length1 := len(src)
	length2 := len(tgt)

	diff := length1 - length2
	if diff < 0 {
		diff = -diff
	}
	if diff > threshold {
		return DistanceExceeded
	}

	// Keep the shorter string on the row axis
	if length1 > length2 {
		src, tgt = tgt, src
		length1, length2 = length2, length1
	}

	dCurrent := make([]int, length1+1)
	dMinus1 := make([]int, length1+1)
	dMinus2 := make([]int, length1+1)

	for i := 0; i <= length1; i++ {
		dCurrent[i] = i
	}

	for j := 1; j <= length2; j++ {
		dMinus2, dMinus1, dCurrent = dMinus1, dCurrent, dMinus2

		dCurrent[0] = j
		// Seed the row minimum from the boundary cell so an empty source
		// (no inner iterations) still yields its true distance.
		minDistance := j

		for i := 1; i <= length1; i++ {
			cost := 1
			if src[i-1] == tgt[j-1] {
				cost = 0
			}

			del := dCurrent[i-1] + 1
			ins := dMinus1[i] + 1
			sub := dMinus1[i-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}

			if i > 1 && j > 1 && src[i-2] == tgt[j-1] && src[i-1] == tgt[j-2] {
				if trans := dMinus2[i-2] + cost; trans < min {
					min = trans
				}
			}

			dCurrent[i] = min
			if min < minDistance {
				minDistance = min
			}
		}

		if minDistance > threshold {
			return DistanceExceeded
		}
	}

	if result := dCurrent[length1]; result <= threshold {
		return result
	}
	return DistanceExceeded
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToUpper(s)) {
		set[token] = struct{}{}
	}
	return set
}

func jaccard(left, right map[string]struct{}) float64 {
	intersection := 0
	for token := range left {
		if _, ok := right[token]; ok {
			intersection++
		}
	}

	union := len(left) + len(right) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
