package intent

import (
	"math"
	"regexp"
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/entities"
)

// Input is what a rule sees: the normalized text, its word count and the
// extracted entities.
type Input struct {
	Text     string
	Words    int
	Entities entities.Entities
}

// Rule is one row of the classification table. Match returns the
// confidence to report and whether the rule fires.
type Rule struct {
	Name   string
	Intent Intent
	Match  func(in Input) (float64, bool)
}

var (
	priceWord   = regexp.MustCompile(`\b(?:prices?|pricing|priced|costs?|costing|rates?|how much)\b`)
	generalWord = regexp.MustCompile(`\b(?:menu|all|everything|range|overall|general|average|list)\b`)
	listVerb    = regexp.MustCompile(`\b(?:show|list|display)\b`)
	listNoun    = regexp.MustCompile(`\b(?:items?|dishes|options)\b`)

	itemPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\w+\s+(?:prices?|costs?|rates?)\b`),
		regexp.MustCompile(`\bhow much\b.*\b(?:is|are|for|does|do)\s+(?:the\s+|a\s+|an\s+)?\w+`),
		regexp.MustCompile(`\b(?:prices?|costs?|rates?)\b.*\b(?:of|for)\s+\w+`),
	}
	detailsPattern = regexp.MustCompile(`\b(?:tell me (?:more )?about|what'?s in|what is in|describe|details?|info(?:rmation)? (?:on|about)|ingredients?|made (?:of|with)|contains?|recipe)\b`)
	menuPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:show|display|list|what|see)\b.*\b(?:menu|items?|dishes|food|options)\b`),
		regexp.MustCompile(`\bwhat\b.*\b(?:have|available|serve|offer)\b`),
		regexp.MustCompile(`\bmenu\b`),
	}
	infoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:address|location|located|where|situated|directions)\b`),
		regexp.MustCompile(`\b(?:timings?|hours?|open|opening|close|closing|closed|when)\b`),
		regexp.MustCompile(`\b(?:contact|phone|email|call|reach)\b`),
		regexp.MustCompile(`\b(?:about|info)\b.*\brestaurant\b`),
		regexp.MustCompile(`\brestaurant\b.*\b(?:info|detail|about)\b`),
	}
	greetingPattern = regexp.MustCompile(`\b(?:hi|hello|hey|greetings|namaste|good (?:morning|afternoon|evening))\b`)
)

// shortQueryWords is the longest query still treated as a bare item name.
const shortQueryWords = 3

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func fixed(conf float64, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	return conf, true
}

// DefaultRules returns the classification table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "general-price", Intent: PriceRangeQuery, Match: func(in Input) (float64, bool) {
			if !priceWord.MatchString(in.Text) {
				return 0, false
			}
			general := generalWord.MatchString(in.Text)
			keywordList := in.Entities.KeywordOnly() && listNoun.MatchString(in.Text)
			return fixed(0.9, general || keywordList)
		}},
		{Name: "item-price", Intent: ItemPriceQuery, Match: func(in Input) (float64, bool) {
			return fixed(0.9, in.Entities.HasSpecificItem && anyMatch(itemPricePatterns, in.Text))
		}},
		{Name: "item-price-mention", Intent: ItemPriceQuery, Match: func(in Input) (float64, bool) {
			return fixed(0.75, in.Entities.HasSpecificItem && priceWord.MatchString(in.Text))
		}},
		{Name: "price-mention", Intent: PriceRangeQuery, Match: func(in Input) (float64, bool) {
			return fixed(0.7, priceWord.MatchString(in.Text))
		}},
		{Name: "keyword-list", Intent: ItemListByKeyword, Match: func(in Input) (float64, bool) {
			listing := listVerb.MatchString(in.Text) || listNoun.MatchString(in.Text)
			return fixed(0.85, listing && in.Entities.KeywordOnly())
		}},
		{Name: "item-details", Intent: ItemDetails, Match: func(in Input) (float64, bool) {
			if !in.Entities.HasSpecificItem {
				return 0, false
			}
			return fixed(0.8, in.Entities.Recognized || detailsPattern.MatchString(in.Text))
		}},
		{Name: "menu-list", Intent: MenuList, Match: func(in Input) (float64, bool) {
			filters := in.Entities.FilterCount()
			if filters == 0 && !anyMatch(menuPatterns, in.Text) {
				return 0, false
			}
			return math.Min(0.85, 0.7+0.05*float64(filters)), true
		}},
		{Name: "restaurant-info", Intent: RestaurantInfo, Match: func(in Input) (float64, bool) {
			return fixed(0.85, anyMatch(infoPatterns, in.Text))
		}},
		{Name: "greeting", Intent: Greeting, Match: func(in Input) (float64, bool) {
			return fixed(0.9, greetingPattern.MatchString(in.Text))
		}},
		{Name: "short-query", Intent: ItemDetails, Match: func(in Input) (float64, bool) {
			return fixed(0.6, in.Entities.HasSpecificItem && in.Words <= shortQueryWords)
		}},
	}
}

// Classifier evaluates rules top to bottom and reports the first match.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over DefaultRules.
func NewClassifier() *Classifier {
	return NewClassifierWithRules(DefaultRules())
}

// NewClassifierWithRules returns a classifier over a custom table.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Rules returns the table in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// RuleNames returns the rule names in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Classify returns exactly one result. When no rule fires the result is
// Unknown with confidence 0.
func (c *Classifier) Classify(text string, ents entities.Entities) Result {
	norm := entities.NormalizeText(text)
	in := Input{
		Text:     norm,
		Words:    len(strings.Fields(norm)),
		Entities: ents,
	}
	if norm == "" {
		return Result{Intent: Unknown}
	}
	for _, r := range c.rules {
		if conf, ok := r.Match(in); ok {
			return Result{Intent: r.Intent, Confidence: conf, Rule: r.Name}
		}
	}
	return Result{Intent: Unknown}
}
