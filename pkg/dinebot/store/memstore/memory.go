package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/store"
)

// Store is an in-memory implementation of store.Store for tests and for
// running without a database file.
type Store struct {
	mu    sync.RWMutex
	items map[string]menu.Item // lowercased name → item
	order []string
	stops map[string]struct{}
	dict  map[string]store.DictEntryData
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		items: make(map[string]menu.Item),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertItem inserts or replaces an item, keyed by case-insensitive name.
// A replaced item keeps its original position.
func (s *Store) UpsertItem(ctx context.Context, it menu.Item) error {
	key := nameKey(it.Name)
	if key == "" {
		return internalerr.ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		s.order = append(s.order, key)
	}
	s.items[key] = copyItem(it)
	return nil
}

// GetItemByName returns an item by case-insensitive name.
func (s *Store) GetItemByName(ctx context.Context, name string) (menu.Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[nameKey(name)]
	if !ok {
		return menu.Item{}, false, nil
	}
	return copyItem(it), true, nil
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]menu.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]menu.Item, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, copyItem(s.items[key]))
	}
	return out, nil
}

// DeleteItem removes an item. Deleting a missing item returns ErrNotFound.
func (s *Store) DeleteItem(ctx context.Context, name string) error {
	key := nameKey(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return internalerr.ErrNotFound
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountItems returns the number of stored items.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// SetStoplist replaces the stopword list.
func (s *Store) SetStoplist(tokens []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		s.stops[strings.ToLower(tok)] = struct{}{}
	}
}

// UpsertStoplist implements store.Store.
func (s *Store) UpsertStoplist(ctx context.Context, tokens []string) error {
	s.SetStoplist(tokens)
	return nil
}

// AddDictEntry adds or overwrites a dictionary phrase.
func (s *Store) AddDictEntry(phrase, canonical, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dict == nil {
		s.dict = make(map[string]store.DictEntryData)
	}
	key := strings.ToLower(phrase)
	s.dict[key] = store.DictEntryData{Phrase: key, Canonical: canonical, Category: category}
}

// UpsertDictEntry implements store.Store.
func (s *Store) UpsertDictEntry(ctx context.Context, phrase, canonical, category string) error {
	s.AddDictEntry(phrase, canonical, category)
	return nil
}

// Stoplist returns nil until a stoplist has been set.
func (s *Store) Stoplist() store.StoplistView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stops == nil {
		return nil
	}
	return stoplistView{s}
}

// Dict returns nil until an entry has been added.
func (s *Store) Dict() store.DictView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dict == nil {
		return nil
	}
	return dictView{s}
}

type stoplistView struct{ s *Store }

func (v stoplistView) IsStop(token string) bool {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.stops[strings.ToLower(token)]
	return ok
}

func (v stoplistView) AllStops() []string {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]string, 0, len(v.s.stops))
	for tok := range v.s.stops {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

type dictView struct{ s *Store }

func (v dictView) Lookup(phrase string) (string, string, bool) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	e, ok := v.s.dict[strings.ToLower(phrase)]
	return e.Canonical, e.Category, ok
}

func (v dictView) AllEntries() []store.DictEntryData {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]store.DictEntryData, 0, len(v.s.dict))
	for _, e := range v.s.dict {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phrase < out[j].Phrase })
	return out
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func copyItem(it menu.Item) menu.Item {
	if it.Ingredients != nil {
		ing := make([]string, len(it.Ingredients))
		copy(ing, it.Ingredients)
		it.Ingredients = ing
	}
	return it
}
