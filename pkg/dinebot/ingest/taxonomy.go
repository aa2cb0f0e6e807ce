package ingest

import "strings"

// Taxonomy tags token streams with labels grouped into dimensions, for
// example the "category" dimension has labels "dessert" and "beverage".
// Labels keep their registration order, which doubles as precedence when
// more than one label of a dimension is present.
type Taxonomy struct {
	dims  map[string][]label
	order []string
}

type label struct {
	name     string
	keywords map[string]struct{}
}

// NewTaxonomy creates an empty taxonomy
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{dims: make(map[string][]label)}
}

// AddLabel registers keywords for label within dim. Adding keywords to an
// existing label extends it without changing its precedence.
func (t *Taxonomy) AddLabel(dim, name string, keywords []string) {
	if _, ok := t.dims[dim]; !ok {
		t.order = append(t.order, dim)
	}
	labels := t.dims[dim]
	idx := -1
	for i, l := range labels {
		if l.name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		labels = append(labels, label{name: name, keywords: make(map[string]struct{})})
		idx = len(labels) - 1
	}
	for _, kw := range keywords {
		labels[idx].keywords[strings.ToLower(kw)] = struct{}{}
	}
	t.dims[dim] = labels
}

// Assign returns every label of dim whose keywords occur in tokens, in
// precedence order.
func (t *Taxonomy) Assign(dim string, tokens []string) []string {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[strings.ToLower(tok)] = struct{}{}
	}

	var out []string
	for _, l := range t.dims[dim] {
		for kw := range l.keywords {
			if _, ok := tokenSet[kw]; ok {
				out = append(out, l.name)
				break
			}
		}
	}
	return out
}

// AssignAll runs Assign for every dimension. Dimensions without a match are
// omitted.
func (t *Taxonomy) AssignAll(tokens []string) map[string][]string {
	out := make(map[string][]string)
	for _, dim := range t.order {
		if labels := t.Assign(dim, tokens); len(labels) > 0 {
			out[dim] = labels
		}
	}
	return out
}
