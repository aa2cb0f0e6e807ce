// Package fuzzy scores how closely a free-text item mention matches a menu
// item name. All ratios are in [0,1] and are built on difflib's
// SequenceMatcher (2*matches / total length).
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum Score for a name to count as a match.
const DefaultThreshold = 0.7

// Normalize lowercases s, turns every non-alphanumeric rune into a space and
// collapses runs of whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Ratio is the plain character-level similarity of a and b.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// PartialRatio slides the shorter of a and b over the longer one word by
// word and returns the best window ratio. Windows are within one word of the
// shorter side's length, so "piza" vs "margherita pizza" scores against
// "pizza" and "mango lassi large glass" vs "mango lassi" scores 1.
func PartialRatio(a, b string) float64 {
	return max(windowRatio(a, b), windowRatio(b, a))
}

// windowRatio compares short against every contiguous window of words in
// long whose size is within one of short's word count.
func windowRatio(short, long string) float64 {
	sWords := strings.Fields(short)
	lWords := strings.Fields(long)
	if len(sWords) == 0 || len(lWords) == 0 {
		return 0
	}
	s := strings.Join(sWords, " ")
	best := 0.0
	for size := len(sWords) - 1; size <= len(sWords)+1; size++ {
		if size < 1 || size > len(lWords) {
			continue
		}
		for start := 0; start+size <= len(lWords); start++ {
			if r := Ratio(s, strings.Join(lWords[start:start+size], " ")); r > best {
				best = r
			}
		}
	}
	return best
}

// TokenSortRatio compares a and b after sorting their words, so word order
// does not matter ("tikka chicken" vs "chicken tikka" is 1.0).
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedWords(a), sortedWords(b))
}

// Score is the similarity used for name resolution: the best of Ratio,
// PartialRatio and TokenSortRatio over normalized inputs.
func Score(query, name string) float64 {
	q, n := Normalize(query), Normalize(name)
	if q == "" || n == "" {
		return 0
	}
	best := Ratio(q, n)
	if r := PartialRatio(q, n); r > best {
		best = r
	}
	if r := TokenSortRatio(q, n); r > best {
		best = r
	}
	return best
}

// Best returns the index and score of the name in names that scores highest
// against query. Ties keep the earliest name. idx is -1 when no name reaches
// threshold; score is the best score seen regardless.
func Best(query string, names []string, threshold float64) (idx int, score float64) {
	idx = -1
	bestIdx := -1
	for i, name := range names {
		s := Score(query, name)
		if bestIdx == -1 || s > score {
			bestIdx, score = i, s
		}
	}
	if bestIdx >= 0 && score >= threshold {
		idx = bestIdx
	}
	return idx, score
}

func sortedWords(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
