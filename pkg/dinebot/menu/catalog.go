package menu

import (
	"fmt"
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
)

// Catalog is the read-only set of menu items. It is built once and never
// mutated, so a single Catalog can be shared by any number of goroutines.
type Catalog struct {
	items  []Item
	byName map[string]int
}

// NewCatalog validates and copies items. Names must be unique
// (case-insensitively); order is preserved and becomes catalog order.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		key := nameKey(it.Name)
		if _, exists := c.byName[key]; exists {
			return nil, fmt.Errorf("%w: menu item %q", internalerr.ErrDuplicate, it.Name)
		}
		it = cloneItem(it)
		it.Name = strings.TrimSpace(it.Name)
		if it.SpiceLevel == "" {
			it.SpiceLevel = SpiceNone
		}
		c.byName[key] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static fixtures; it panics on invalid input.
func MustCatalog(items []Item) *Catalog {
	c, err := NewCatalog(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = cloneItem(it)
	}
	return out
}

// Lookup finds an item by exact name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	idx, ok := c.byName[nameKey(name)]
	if !ok {
		return Item{}, false
	}
	return cloneItem(c.items[idx]), true
}

// Names returns item names in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.Name
	}
	return out
}

// ByCategory returns the items of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Item {
	if c == nil {
		return nil
	}
	var out []Item
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
