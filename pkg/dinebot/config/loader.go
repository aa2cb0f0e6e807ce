package config

import (
	"fmt"

	"github.com/cognicore/dinebot/pkg/dinebot/entities"
	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/lexicon"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/respond"
	"github.com/cognicore/dinebot/pkg/dinebot/stoplist"
)

// Loader loads all configuration files and constructs components. Empty
// paths fall back to the built-in defaults.
type Loader struct {
	MenuPath       string
	RestaurantPath string
	LexiconPath    string
	DictPath       string
	StoplistPath   string

	// Items, when non-nil, replaces the menu file (a catalog read from a
	// store, for example).
	Items []menu.Item

	// Stops and Phrases extend the stoplist and dictionary files, usually
	// with tuning data kept in a store.
	Stops   []string
	Phrases []ingest.DictEntry

	SimilarityThreshold float64
	VocabularyThreshold float64
}

// Components holds all loaded configuration components
type Components struct {
	Catalog    *menu.Catalog
	Restaurant respond.Restaurant
	Lexicon    *lexicon.Lexicon
	Stoplist   *stoplist.Manager
	Extractor  *entities.Extractor
	Classifier *intent.Classifier
	Pipeline   *filter.Pipeline
	Assembler  *respond.Assembler
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	items := l.Items
	if items == nil {
		if l.MenuPath != "" {
			var err error
			if items, err = LoadMenu(l.MenuPath); err != nil {
				return nil, fmt.Errorf("load menu: %w", err)
			}
		} else {
			items = DefaultMenu()
		}
	}
	cat, err := menu.NewCatalog(items)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	comp.Catalog = cat

	if l.RestaurantPath != "" {
		comp.Restaurant, err = LoadRestaurant(l.RestaurantPath)
		if err != nil {
			return nil, fmt.Errorf("load restaurant: %w", err)
		}
	} else {
		comp.Restaurant = DefaultRestaurant()
	}

	// File lexicons extend the built-in synonyms.
	comp.Lexicon = lexicon.Default()
	if l.LexiconPath != "" {
		extra, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon.Merge(extra)
	}

	comp.Stoplist = stoplist.Default()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		addStops(comp.Stoplist, sl.Terms)
	}
	addStops(comp.Stoplist, l.Stops)

	var phrases []ingest.DictEntry
	if l.DictPath != "" {
		phrases, err = LoadDict(l.DictPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
	}
	phrases = append(phrases, l.Phrases...)

	comp.Extractor = entities.New(entities.Options{
		Lexicon:             comp.Lexicon,
		Stoplist:            comp.Stoplist,
		Phrases:             phrases,
		Catalog:             comp.Catalog,
		VocabularyThreshold: l.VocabularyThreshold,
	})
	comp.Classifier = intent.NewClassifier()
	comp.Pipeline = filter.NewPipeline(filter.WithThreshold(l.SimilarityThreshold))
	comp.Assembler = respond.New(comp.Restaurant)

	return comp, nil
}

// addStops adds terms without overriding the reason of a default stopword.
func addStops(m *stoplist.Manager, terms []string) {
	for _, term := range terms {
		if _, ok := m.Reason(term); !ok {
			m.Add(term, stoplist.ReasonGeneral)
		}
	}
}
