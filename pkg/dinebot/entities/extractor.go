package entities

import (
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/lexicon"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/stoplist"
)

// Taxonomy dimensions the extractor reads.
const (
	DimDietary    = "dietary"
	DimSpice      = "spice"
	DimCategory   = "category"
	DimPreference = "preference"
)

// DefaultFoodWords are dish nouns recognized even when the catalog does not
// contain them.
var DefaultFoodWords = []string{
	"pizza", "biryani", "chicken", "paneer", "tikka", "masala", "salad",
	"wings", "rolls", "cake", "lassi", "chai", "soda", "jamun", "lava",
	"spring", "caesar", "mango", "chocolate", "butter", "rice",
}

// DefaultKeywords are the foods a "show me X items" request lists by.
var DefaultKeywords = []string{
	"chicken", "fish", "paneer", "mutton", "lamb", "prawn", "egg",
	"mushroom", "tofu", "cheese", "mango", "chocolate",
}

// Options configures an Extractor. Nil fields fall back to the built-in
// defaults.
type Options struct {
	Lexicon  *lexicon.Lexicon
	Stoplist *stoplist.Manager
	// Phrases are extra multi-word entries on top of the lexicon's phrases.
	Phrases []ingest.DictEntry
	// Catalog seeds the food vocabulary with the words of every item name.
	Catalog             *menu.Catalog
	FoodWords           []string
	Keywords            []string
	VocabularyThreshold float64
}

// Extractor turns query text into Entities. It holds only read-only state
// once built and is safe for concurrent use.
type Extractor struct {
	pipeline *ingest.Pipeline
	stops    *stoplist.Manager
	vocab    *ingest.Vocabulary
	keywords map[string]struct{}
}

// New builds an extractor from opts.
func New(opts Options) *Extractor {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.Default()
	}
	foodWords := opts.FoodWords
	if foodWords == nil {
		foodWords = DefaultFoodWords
	}
	keywords := opts.Keywords
	if keywords == nil {
		keywords = DefaultKeywords
	}

	tokenizer := ingest.NewTokenizer(nil)
	tokenizer.SetLexicon(lex)

	parser := ingest.NewMultiTokenParser(append(lexiconPhrases(lex), opts.Phrases...))
	pipeline := ingest.NewPipeline(tokenizer, parser, DefaultTaxonomy())

	vocab := ingest.NewVocabulary(nil, opts.VocabularyThreshold)
	for _, w := range foodWords {
		vocab.Add(lex.Normalize(w))
	}
	if opts.Catalog != nil {
		nameTok := ingest.NewTokenizer(stops.All())
		nameTok.SetLexicon(lex)
		vocab.AddNames(nameTok, opts.Catalog.Names())
	}

	kw := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		kw[lex.Normalize(k)] = struct{}{}
	}

	return &Extractor{
		pipeline: pipeline,
		stops:    stops,
		vocab:    vocab,
		keywords: kw,
	}
}

// NewDefault builds an extractor with built-in vocabulary whose food words
// are extended by cat's item names.
func NewDefault(cat *menu.Catalog) *Extractor {
	return New(Options{Catalog: cat})
}

// Extract parses text into Entities. It never fails: anything it cannot
// read is left unset.
func (x *Extractor) Extract(text string) Entities {
	var e Entities
	norm := NormalizeText(text)
	if norm == "" {
		return e
	}

	extractPrice(norm, &e)

	doc := x.pipeline.Process(norm)

	// vegan, then non-veg, then veg: the first label present is the only
	// dietary constraint set.
	if label, ok := doc.Label(DimDietary); ok {
		switch label {
		case "vegan":
			e.IsVegan = boolPtr(true)
		case "non-veg":
			e.IsVegetarian = boolPtr(false)
		case "veg":
			e.IsVegetarian = boolPtr(true)
		}
	}
	if label, ok := doc.Label(DimSpice); ok {
		lvl := menu.SpiceLevel(label)
		e.Spice = &lvl
	}
	if label, ok := doc.Label(DimCategory); ok {
		cat := menu.Category(label)
		e.CategoryHint = &cat
	}
	if label, ok := doc.Label(DimPreference); ok {
		e.Preference = PricePreference(label)
	}

	remaining := x.stops.Strip(doc.Tokens)
	e.ItemCandidate = strings.Join(remaining, " ")
	e.HasSpecificItem = len(remaining) > 0
	for _, tok := range remaining {
		if e.Keyword == "" {
			if _, ok := x.keywords[tok]; ok {
				e.Keyword = tok
			}
		}
		if !e.Recognized && x.vocab.Contains(tok) {
			e.Recognized = true
		}
	}

	return e
}

// Vocabulary exposes the food vocabulary, sorted.
func (x *Extractor) Vocabulary() []string {
	return x.vocab.Words()
}

// DefaultTaxonomy returns the label sets for dietary, spice, category and
// price-preference detection. Label order is precedence.
func DefaultTaxonomy() *ingest.Taxonomy {
	tax := ingest.NewTaxonomy()
	tax.AddLabel(DimDietary, "vegan", []string{"vegan"})
	tax.AddLabel(DimDietary, "non-veg", []string{"non-veg"})
	tax.AddLabel(DimDietary, "veg", []string{"veg"})

	tax.AddLabel(DimSpice, string(menu.SpiceMild), []string{"mild", "not-spicy"})
	tax.AddLabel(DimSpice, string(menu.SpiceMedium), []string{"medium"})
	tax.AddLabel(DimSpice, string(menu.SpiceHot), []string{"spicy", "hot"})

	tax.AddLabel(DimCategory, string(menu.Appetizer), []string{"appetizer"})
	tax.AddLabel(DimCategory, string(menu.MainCourse), []string{"main-course"})
	tax.AddLabel(DimCategory, string(menu.Dessert), []string{"dessert"})
	tax.AddLabel(DimCategory, string(menu.Beverage), []string{"beverage"})

	tax.AddLabel(DimPreference, string(PreferLow), []string{"cheap", "affordable", "budget", "inexpensive"})
	tax.AddLabel(DimPreference, string(PreferHigh), []string{"expensive", "premium", "costly", "pricey"})
	return tax
}

// lexiconPhrases turns the lexicon's multi-word variants into parser entries.
// Each variant is registered both as written and with every word normalized,
// since the tokenizer normalizes words before phrases are matched.
func lexiconPhrases(lex *lexicon.Lexicon) []ingest.DictEntry {
	var entries []ingest.DictEntry
	for canonical, variants := range lex.Phrases() {
		var all []string
		for _, v := range variants {
			all = append(all, v)
			words := strings.Fields(v)
			for i, w := range words {
				words[i] = lex.Normalize(w)
			}
			if n := strings.Join(words, " "); n != v {
				all = append(all, n)
			}
		}
		entries = append(entries, ingest.DictEntry{Canonical: canonical, Variants: all})
	}
	return entries
}
