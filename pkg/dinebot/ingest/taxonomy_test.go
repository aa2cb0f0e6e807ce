package ingest

import (
	"reflect"
	"testing"
)

func newSpiceTaxonomy() *Taxonomy {
	tax := NewTaxonomy()
	tax.AddLabel("spice", "mild", []string{"mild", "not-spicy"})
	tax.AddLabel("spice", "hot", []string{"spicy", "Hot"})
	tax.AddLabel("category", "dessert", []string{"dessert"})
	return tax
}

func TestTaxonomyAssignPrecedence(t *testing.T) {
	tax := newSpiceTaxonomy()

	got := tax.Assign("spice", []string{"hot", "or", "mild"})
	want := []string{"mild", "hot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Assign() = %v, want %v", got, want)
	}

}

func TestTaxonomyNoMatch(t *testing.T) {
	tax := newSpiceTaxonomy()

	if got := tax.Assign("spice", []string{"paneer"}); len(got) != 0 {
		t.Errorf("expected no spice label, got %v", got)
	}
	if got := tax.Assign("unknown-dim", []string{"hot"}); len(got) != 0 {
		t.Errorf("unknown dimension should assign nothing, got %v", got)
	}
}

func TestTaxonomyAssignAll(t *testing.T) {
	tax := newSpiceTaxonomy()

	got := tax.AssignAll([]string{"spicy", "dessert"})
	if !reflect.DeepEqual(got["spice"], []string{"hot"}) {
		t.Errorf("spice = %v", got["spice"])
	}
	if !reflect.DeepEqual(got["category"], []string{"dessert"}) {
		t.Errorf("category = %v", got["category"])
	}
	if _, ok := got["unknown"]; ok || len(got) != 2 {
		t.Errorf("AssignAll() = %v, want only matched dimensions", got)
	}
}

func TestTaxonomyExtendLabel(t *testing.T) {
	tax := newSpiceTaxonomy()
	tax.AddLabel("spice", "hot", []string{"fiery"})

	if got := tax.Assign("spice", []string{"fiery"}); !reflect.DeepEqual(got, []string{"hot"}) {
		t.Errorf("Assign(fiery) = %v, want [hot]", got)
	}

	// extending must not reorder precedence
	if got := tax.Assign("spice", []string{"fiery", "mild"}); !reflect.DeepEqual(got, []string{"mild", "hot"}) {
		t.Errorf("precedence changed, got %v", got)
	}
}
