package ingest

import "strings"

// MultiTokenParser handles recognition of multi-word phrases
type MultiTokenParser struct {
	dict   map[string]DictEntry // phrase → entry
	maxLen int
}

// DictEntry represents a dictionary entry for a multi-token phrase.
// Canonical is emitted as a single token when any variant is seen, so
// canonicals are written hyphenated ("main-course", "not-spicy").
type DictEntry struct {
	Canonical string
	Category  string
	Variants  []string
}

// NewMultiTokenParser creates a new parser with the given dictionary
func NewMultiTokenParser(entries []DictEntry) *MultiTokenParser {
	dict := make(map[string]DictEntry)
	maxLen := 1
	add := func(phrase string, e DictEntry) {
		key := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
		if key == "" {
			return
		}
		dict[key] = e
		if l := phraseLen(key); l > maxLen {
			maxLen = l
		}
	}
	for _, e := range entries {
		add(e.Canonical, e)
		for _, v := range e.Variants {
			add(v, e)
		}
	}
	return &MultiTokenParser{dict: dict, maxLen: maxLen}
}

// Parse applies greedy longest-match to recognize multi-token phrases
func (p *MultiTokenParser) Parse(tokens []string) []string {
	var result []string
	i := 0

	for i < len(tokens) {
		matched := ""
		matchLen := 1

		maxPhrase := p.maxLen
		if remaining := len(tokens) - i; maxPhrase > remaining {
			maxPhrase = remaining
		}
		for n := maxPhrase; n >= 2; n-- {
			phraseKey := strings.ToLower(strings.Join(tokens[i:i+n], " "))
			if entry, ok := p.dict[phraseKey]; ok {
				matched = entry.Canonical
				matchLen = n
				break
			}
		}

		if matched != "" {
			result = append(result, matched)
			i += matchLen
		} else {
			// Single tokens may still map (synonym normalization)
			if entry, ok := p.dict[strings.ToLower(tokens[i])]; ok {
				result = append(result, entry.Canonical)
			} else {
				result = append(result, tokens[i])
			}
			i++
		}
	}

	return result
}

// Len returns the number of distinct phrases the parser recognizes.
func (p *MultiTokenParser) Len() int {
	return len(p.dict)
}

func phraseLen(phrase string) int {
	if phrase == "" {
		return 1
	}
	return len(strings.Fields(phrase))
}
