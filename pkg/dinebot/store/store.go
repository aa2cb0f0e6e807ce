package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
)

// Store is the main interface for persisting the menu and the tuning data
// the engine is built from.
type Store interface {
	Close() error

	// Menu items, kept in insertion order.
	UpsertItem(ctx context.Context, it menu.Item) error
	GetItemByName(ctx context.Context, name string) (menu.Item, bool, error)
	ListItems(ctx context.Context) ([]menu.Item, error)
	DeleteItem(ctx context.Context, name string) error
	CountItems(ctx context.Context) (int, error)

	// Stoplist/Dict (optional as read-through cache)
	Stoplist() StoplistView
	Dict() DictView

	UpsertStoplist(ctx context.Context, tokens []string) error
	UpsertDictEntry(ctx context.Context, phrase, canonical, category string) error
}

// StoplistView provides read access to the stopword list
type StoplistView interface {
	IsStop(token string) bool
	AllStops() []string
}

// DictEntryData holds a single dictionary entry for iteration.
type DictEntryData struct {
	Phrase    string
	Canonical string
	Category  string
}

// DictView provides read access to the multi-token dictionary
type DictView interface {
	Lookup(phrase string) (canonical string, category string, ok bool)
	AllEntries() []DictEntryData
}

// LoadCatalog reads every item from s into an immutable catalog.
func LoadCatalog(ctx context.Context, s Store) (*menu.Catalog, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return menu.NewCatalog(items)
}

// Seed upserts items into s, validating each first.
func Seed(ctx context.Context, s Store, items []menu.Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if err := s.UpsertItem(ctx, it); err != nil {
			return fmt.Errorf("upsert %q: %w", it.Name, err)
		}
	}
	return nil
}

// Phrases groups stored dictionary entries into parser entries, one per
// canonical and category. A nil view yields nil.
func Phrases(v DictView) []ingest.DictEntry {
	if v == nil {
		return nil
	}
	type key struct{ canonical, category string }
	byKey := make(map[key]*ingest.DictEntry)
	var order []key
	for _, e := range v.AllEntries() {
		k := key{e.Canonical, e.Category}
		entry, ok := byKey[k]
		if !ok {
			entry = &ingest.DictEntry{Canonical: e.Canonical, Category: e.Category}
			byKey[k] = entry
			order = append(order, k)
		}
		entry.Variants = append(entry.Variants, e.Phrase)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].canonical != order[j].canonical {
			return order[i].canonical < order[j].canonical
		}
		return order[i].category < order[j].category
	})
	out := make([]ingest.DictEntry, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

// SeedDict stores every variant of entries as a phrase of its canonical.
func SeedDict(ctx context.Context, s Store, entries []ingest.DictEntry) error {
	for _, e := range entries {
		for _, v := range e.Variants {
			if err := s.UpsertDictEntry(ctx, v, e.Canonical, e.Category); err != nil {
				return fmt.Errorf("upsert phrase %q: %w", v, err)
			}
		}
	}
	return nil
}
