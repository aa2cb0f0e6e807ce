// Package entities extracts structured constraints (price bounds, dietary
// flags, the dish being asked about) from a free-text menu question.
package entities

import (
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/menu"
)

// PricePreference is a relative price wish ("something cheap").
type PricePreference string

const (
	PreferAny  PricePreference = ""
	PreferLow  PricePreference = "low"
	PreferHigh PricePreference = "high"
)

// Entities is the constraint bag for one query. Pointer fields are
// tri-state: nil means unconstrained. Price bounds are always stored as
// inclusive whole rupees; strict phrasing ("under 300") and decimal amounts
// ("under 299.50") are rounded inward at extraction time and the user's
// wording is kept in MinPhrase / MaxPhrase.
type Entities struct {
	MinPrice     *int `json:"min_price,omitempty"`
	MaxPrice     *int `json:"max_price,omitempty"`
	MinInclusive bool `json:"min_inclusive,omitempty"`
	MaxInclusive bool `json:"max_inclusive,omitempty"`

	MinPhrase string `json:"min_phrase,omitempty"`
	MaxPhrase string `json:"max_phrase,omitempty"`

	IsVegetarian *bool `json:"is_vegetarian,omitempty"`
	IsVegan      *bool `json:"is_vegan,omitempty"`

	Spice        *menu.SpiceLevel `json:"spice_level,omitempty"`
	CategoryHint *menu.Category   `json:"category,omitempty"`
	Preference   PricePreference  `json:"price_preference,omitempty"`

	ItemCandidate   string `json:"item_candidate,omitempty"`
	HasSpecificItem bool   `json:"has_specific_item"`
	Recognized      bool   `json:"recognized,omitempty"`
	Keyword         string `json:"keyword,omitempty"`
}

// FilterCount is the number of narrowing constraints set, not counting the
// item candidate.
func (e Entities) FilterCount() int {
	n := 0
	if e.MinPrice != nil {
		n++
	}
	if e.MaxPrice != nil {
		n++
	}
	if e.IsVegetarian != nil || e.IsVegan != nil {
		n++
	}
	if e.Spice != nil {
		n++
	}
	if e.CategoryHint != nil {
		n++
	}
	if e.Preference != PreferAny {
		n++
	}
	return n
}

// HasFilters reports whether any narrowing constraint is set.
func (e Entities) HasFilters() bool {
	return e.FilterCount() > 0
}

// Dietary names the dietary constraint for display: "vegan",
// "vegetarian", "non-vegetarian" or "".
func (e Entities) Dietary() string {
	switch {
	case e.IsVegan != nil && *e.IsVegan:
		return "vegan"
	case e.IsVegetarian != nil && *e.IsVegetarian:
		return "vegetarian"
	case e.IsVegetarian != nil && !*e.IsVegetarian:
		return "non-vegetarian"
	}
	return ""
}

// KeywordOnly reports whether the item candidate is nothing but the food
// keyword, as in "show me chicken items".
func (e Entities) KeywordOnly() bool {
	return e.Keyword != "" && e.ItemCandidate == e.Keyword
}

// NormalizeText lowercases text, removes currency markers and thousands
// separators, and collapses whitespace. Every pattern in this package and in
// intent classification runs on this form.
func NormalizeText(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "₹", " ")
	s = thousandsSep.ReplaceAllString(s, "$1$2")
	s = currencyAfter.ReplaceAllString(s, "$1 ")
	s = currencyBefore.ReplaceAllString(s, " $1")
	return strings.Join(strings.Fields(s), " ")
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }
