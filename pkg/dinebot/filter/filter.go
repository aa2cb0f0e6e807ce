// Package filter applies extracted constraints to a catalog: dietary,
// category and price narrowing followed by the intent-specific stage (fuzzy
// item resolution, keyword listing or price statistics).
package filter

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/dinebot/pkg/dinebot/entities"
	"github.com/cognicore/dinebot/pkg/dinebot/fuzzy"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
)

// Status tells a caller which kind of answer Result holds.
type Status string

const (
	// StatusItems: Items holds one or more matches.
	StatusItems Status = "items"
	// StatusStats: Stats holds aggregate prices.
	StatusStats Status = "stats"
	// StatusEmpty: the filters removed every item.
	StatusEmpty Status = "empty"
	// StatusNotFound: no item name scored above the threshold.
	StatusNotFound Status = "not_found"
	// StatusNotApplicable: the intent does not read the catalog.
	StatusNotApplicable Status = "not_applicable"
)

// PriceStats summarizes prices over a filtered set.
type PriceStats struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Stage records how many items survived one pipeline stage.
type Stage struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// Result is the pipeline output. Items are in catalog order.
type Result struct {
	Intent      intent.Intent `json:"intent"`
	Status      Status        `json:"status"`
	Items       []menu.Item   `json:"items,omitempty"`
	Count       int           `json:"count"`
	MatchedItem *menu.Item    `json:"matched_item,omitempty"`
	MatchScore  float64       `json:"match_score,omitempty"`
	Candidates  []menu.Item   `json:"candidates,omitempty"`
	Stats       *PriceStats   `json:"stats,omitempty"`
	Trace       []Stage       `json:"trace,omitempty"`
}

// Stage names, in execution order.
const (
	StageCatalog    = "catalog"
	StageDietary    = "dietary"
	StageCategory   = "category"
	StagePrice      = "price"
	StageSpice      = "spice"
	StagePreference = "preference"
	StageKeyword    = "keyword"
	StageResolve    = "resolve"
)

// Pipeline runs the filter stages. It holds only configuration and is safe
// for concurrent use.
type Pipeline struct {
	threshold float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithThreshold sets the minimum fuzzy score for item resolution.
func WithThreshold(t float64) Option {
	return func(p *Pipeline) {
		if t > 0 {
			p.threshold = t
		}
	}
}

// NewPipeline returns a pipeline using fuzzy.DefaultThreshold unless
// overridden.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{threshold: fuzzy.DefaultThreshold}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Threshold returns the item resolution threshold.
func (p *Pipeline) Threshold() float64 {
	return p.threshold
}

// Execute applies ents to cat according to cls. It never fails; absence is
// reported through Status.
func (p *Pipeline) Execute(cat *menu.Catalog, cls intent.Result, ents entities.Entities) Result {
	res := Result{Intent: cls.Intent}

	switch cls.Intent {
	case intent.Greeting, intent.RestaurantInfo, intent.Unknown, "":
		res.Status = StatusNotApplicable
		return res
	}

	items := cat.Items()
	res.trace(StageCatalog, items)

	if ents.IsVegan != nil || ents.IsVegetarian != nil {
		items = keep(items, func(it menu.Item) bool {
			if ents.IsVegan != nil && it.IsVegan != *ents.IsVegan {
				return false
			}
			return ents.IsVegetarian == nil || it.IsVegetarian == *ents.IsVegetarian
		})
		res.trace(StageDietary, items)
	}

	if ents.CategoryHint != nil {
		items = keep(items, func(it menu.Item) bool { return it.Category == *ents.CategoryHint })
		res.trace(StageCategory, items)
	}

	if ents.MinPrice != nil || ents.MaxPrice != nil {
		items = keep(items, func(it menu.Item) bool {
			if ents.MinPrice != nil && it.Price < *ents.MinPrice {
				return false
			}
			return ents.MaxPrice == nil || it.Price <= *ents.MaxPrice
		})
		res.trace(StagePrice, items)
	}

	// Spice and relative price describe the list being asked for; for a
	// single-item question they are part of the question, not a filter.
	if !cls.Intent.ResolvesItem() {
		if ents.Spice != nil {
			items = keep(items, func(it menu.Item) bool { return it.SpiceLevel == *ents.Spice })
			res.trace(StageSpice, items)
		}
		if ents.Preference != entities.PreferAny && len(items) > 0 {
			median := medianPrice(items)
			items = keep(items, func(it menu.Item) bool {
				if ents.Preference == entities.PreferLow {
					return float64(it.Price) <= median
				}
				return float64(it.Price) >= median
			})
			res.trace(StagePreference, items)
		}
	}

	switch cls.Intent {
	case intent.ItemPriceQuery, intent.ItemDetails:
		p.resolve(&res, items, ents)
	case intent.ItemListByKeyword:
		if ents.Keyword != "" {
			items = keep(items, keywordMatcher(ents.Keyword))
			res.trace(StageKeyword, items)
		}
		res.setItems(items)
	case intent.PriceRangeQuery:
		if ents.KeywordOnly() {
			items = keep(items, keywordMatcher(ents.Keyword))
			res.trace(StageKeyword, items)
		}
		res.Stats = Stats(items)
		res.Count = len(items)
		if len(items) == 0 {
			res.Status = StatusEmpty
		} else {
			res.Status = StatusStats
		}
	default:
		res.setItems(items)
	}
	return res
}

func (p *Pipeline) resolve(res *Result, items []menu.Item, ents entities.Entities) {
	if len(items) == 0 {
		res.Status = StatusEmpty
		return
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	idx, score := fuzzy.Best(ents.ItemCandidate, names, p.threshold)
	res.MatchScore = score
	if idx < 0 {
		res.Status = StatusNotFound
		res.Candidates = nameCandidates(items, ents.ItemCandidate)
		res.trace(StageResolve, nil)
		return
	}
	matched := items[idx]
	res.MatchedItem = &matched
	res.Items = []menu.Item{matched}
	res.Count = 1
	res.Status = StatusItems
	res.trace(StageResolve, res.Items)
}

// MaxCandidates caps the names offered when resolution fails.
const MaxCandidates = 3

// nameCandidates returns up to MaxCandidates items whose name contains one of
// the candidate's words. Words shorter than three letters are ignored.
func nameCandidates(items []menu.Item, candidate string) []menu.Item {
	var words []string
	for _, w := range strings.Fields(fuzzy.Normalize(candidate)) {
		if utf8.RuneCountInString(w) >= 3 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}
	var out []menu.Item
	for _, it := range items {
		name := fuzzy.Normalize(it.Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				out = append(out, it)
				break
			}
		}
		if len(out) == MaxCandidates {
			break
		}
	}
	return out
}

// Stats computes min, max and average price. Average is rounded to two
// decimals. It returns nil for an empty set.
func Stats(items []menu.Item) *PriceStats {
	if len(items) == 0 {
		return nil
	}
	st := &PriceStats{Min: items[0].Price, Max: items[0].Price, Count: len(items)}
	sum := 0
	for _, it := range items {
		sum += it.Price
		if it.Price < st.Min {
			st.Min = it.Price
		}
		if it.Price > st.Max {
			st.Max = it.Price
		}
	}
	st.Average = math.Round(float64(sum)/float64(len(items))*100) / 100
	return st
}

func (r *Result) setItems(items []menu.Item) {
	r.Items = items
	r.Count = len(items)
	if len(items) == 0 {
		r.Status = StatusEmpty
	} else {
		r.Status = StatusItems
	}
}

func (r *Result) trace(stage string, items []menu.Item) {
	r.Trace = append(r.Trace, Stage{Name: stage, Remaining: len(items)})
}

func keep(items []menu.Item, pred func(menu.Item) bool) []menu.Item {
	out := make([]menu.Item, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func keywordMatcher(keyword string) func(menu.Item) bool {
	kw := strings.ToLower(keyword)
	return func(it menu.Item) bool {
		if strings.Contains(strings.ToLower(it.Name), kw) {
			return true
		}
		for _, ing := range it.Ingredients {
			if strings.Contains(strings.ToLower(ing), kw) {
				return true
			}
		}
		return false
	}
}

func medianPrice(items []menu.Item) float64 {
	prices := make([]int, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	sort.Ints(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return float64(prices[mid])
	}
	return float64(prices[mid-1]+prices[mid]) / 2
}
