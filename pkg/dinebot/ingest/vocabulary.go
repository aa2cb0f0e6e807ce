package ingest

import (
	"sort"
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/fuzzy"
)

// DefaultVocabularyThreshold is the similarity a token needs to count as a
// misspelling of a vocabulary word.
const DefaultVocabularyThreshold = 0.8

// minFuzzyLen keeps two-letter tokens from fuzzily matching everything.
const minFuzzyLen = 3

// Vocabulary is the controlled set of food words a query token must hit to
// be treated as a dish mention.
type Vocabulary struct {
	words     map[string]struct{}
	threshold float64
}

// NewVocabulary creates a vocabulary from words. A threshold of zero uses
// DefaultVocabularyThreshold.
func NewVocabulary(words []string, threshold float64) *Vocabulary {
	if threshold <= 0 {
		threshold = DefaultVocabularyThreshold
	}
	v := &Vocabulary{words: make(map[string]struct{}, len(words)), threshold: threshold}
	v.Add(words...)
	return v
}

// Add inserts words, lowercased.
func (v *Vocabulary) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			v.words[w] = struct{}{}
		}
	}
}

// AddNames tokenizes each name with tok and adds the resulting tokens, so
// "Margherita Pizza" contributes "margherita" and "pizza".
func (v *Vocabulary) AddNames(tok *Tokenizer, names []string) {
	for _, name := range names {
		v.Add(tok.Tokenize(name)...)
	}
}

// Contains reports whether token is a vocabulary word or close enough to one.
func (v *Vocabulary) Contains(token string) bool {
	token = strings.ToLower(token)
	if _, ok := v.words[token]; ok {
		return true
	}
	if len(token) < minFuzzyLen {
		return false
	}
	for w := range v.words {
		if fuzzy.Ratio(token, w) >= v.threshold {
			return true
		}
	}
	return false
}

// Words returns the vocabulary sorted.
func (v *Vocabulary) Words() []string {
	out := make([]string, 0, len(v.words))
	for w := range v.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.words)
}
