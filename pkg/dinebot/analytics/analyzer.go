// Package analytics summarizes a set of answered queries: what guests ask
// for, how confidently it was classified, and which words keep going
// unanswered.
package analytics

import (
	"sort"
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
)

// LowConfidence is the confidence below which an answer counts as shaky.
const LowConfidence = 0.7

// Record is the outcome of one answered query.
type Record struct {
	Text       string
	Intent     string
	Status     string
	Confidence float64
}

// Analyzer aggregates query records. Not safe for concurrent use.
type Analyzer struct {
	tokenizer *ingest.Tokenizer

	total         int64
	intents       map[string]int64
	statuses      map[string]int64
	confSum       float64
	lowConfidence int64
	unresolved    map[string]int64 // normalized query text
	unresolvedDF  map[string]int64 // token -> unresolved queries containing it
}

// NewAnalyzer creates an empty analyzer. tok splits unresolved queries into
// words; nil means a tokenizer with no stopwords.
func NewAnalyzer(tok *ingest.Tokenizer) *Analyzer {
	if tok == nil {
		tok = ingest.NewTokenizer(nil)
	}
	return &Analyzer{
		tokenizer:    tok,
		intents:      make(map[string]int64),
		statuses:     make(map[string]int64),
		unresolved:   make(map[string]int64),
		unresolvedDF: make(map[string]int64),
	}
}

// Process consumes one query record.
func (a *Analyzer) Process(rec Record) {
	a.total++
	a.intents[rec.Intent]++
	a.statuses[rec.Status]++
	a.confSum += rec.Confidence
	if rec.Confidence < LowConfidence {
		a.lowConfidence++
	}

	if !unresolved(rec) {
		return
	}
	text := strings.Join(strings.Fields(strings.ToLower(rec.Text)), " ")
	if text == "" {
		return
	}
	a.unresolved[text]++

	seen := make(map[string]struct{})
	for _, tok := range a.tokenizer.Tokenize(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		a.unresolvedDF[tok]++
	}
}

// unresolved reports whether the guest got no useful answer.
func unresolved(rec Record) bool {
	return rec.Intent == string(intent.Unknown) ||
		rec.Status == string(filter.StatusNotFound) ||
		rec.Status == string(filter.StatusEmpty)
}

// Stats is a snapshot of the aggregated counts.
type Stats struct {
	TotalQueries      int64            `json:"total_queries"`
	IntentCounts      map[string]int64 `json:"intent_counts"`
	StatusCounts      map[string]int64 `json:"status_counts"`
	AverageConfidence float64          `json:"average_confidence"`
	LowConfidence     int64            `json:"low_confidence"`

	unresolved   map[string]int64
	unresolvedDF map[string]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	s := Stats{
		TotalQueries:  a.total,
		IntentCounts:  copyCounts(a.intents),
		StatusCounts:  copyCounts(a.statuses),
		LowConfidence: a.lowConfidence,
		unresolved:    copyCounts(a.unresolved),
		unresolvedDF:  copyCounts(a.unresolvedDF),
	}
	if a.total > 0 {
		s.AverageConfidence = a.confSum / float64(a.total)
	}
	return s
}

// Rate returns the share of queries that ended with status.
func (s Stats) Rate(status filter.Status) float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.StatusCounts[string(status)]) / float64(s.TotalQueries)
}

// UnknownRate returns the share of queries no rule recognized.
func (s Stats) UnknownRate() float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.IntentCounts[string(intent.Unknown)]) / float64(s.TotalQueries)
}

// Count is a string with its frequency.
type Count struct {
	Text  string `json:"text"`
	Count int64  `json:"count"`
}

// TopUnresolved returns the most repeated unanswered queries.
func (s Stats) TopUnresolved(limit int) []Count {
	return top(s.unresolved, limit)
}

// TopUnresolvedTokens returns the words most often seen in unanswered
// queries. Candidates for new menu items, dictionary variants or stopwords.
func (s Stats) TopUnresolvedTokens(limit int) []Count {
	return top(s.unresolvedDF, limit)
}

func top(counts map[string]int64, limit int) []Count {
	out := make([]Count, 0, len(counts))
	for text, n := range counts {
		out = append(out, Count{Text: text, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
