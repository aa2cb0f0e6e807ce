// Package stoplist holds the words that never form part of a dish name:
// price and intent vocabulary, filler, and the words consumed by other
// extractors (dietary, spice, category).
package stoplist

import (
	"sort"
	"strings"
)

// Reason explains why a token is a stopword
type Reason string

const (
	ReasonGeneral  Reason = "general"
	ReasonPrice    Reason = "price"
	ReasonIntent   Reason = "intent"
	ReasonFiller   Reason = "filler"
	ReasonGreeting Reason = "greeting"
	ReasonInfo     Reason = "info"
	ReasonDietary  Reason = "dietary"
	ReasonSpice    Reason = "spice"
	ReasonCategory Reason = "category"
)

// Manager handles stopword lookup. Build it fully before sharing it across
// goroutines; lookups are read-only.
type Manager struct {
	stops map[string]Reason
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = ReasonGeneral
	}
	return &Manager{stops: stops}
}

// Default returns a manager seeded with DefaultTerms.
func Default() *Manager {
	m := NewManager(nil)
	for reason, terms := range DefaultTerms() {
		for _, term := range terms {
			m.Add(term, reason)
		}
	}
	return m
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Reason reports why token is a stopword.
func (m *Manager) Reason(token string) (Reason, bool) {
	r, ok := m.stops[strings.ToLower(token)]
	return r, ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	m.stops[strings.ToLower(token)] = reason
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Strip returns tokens with every stopword removed, order preserved.
func (m *Manager) Strip(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !m.IsStop(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}
