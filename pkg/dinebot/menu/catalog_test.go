package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
)

func sampleItems() []Item {
	return []Item{
		{Name: "Paneer Butter Masala", Category: MainCourse, Price: 279, IsVegetarian: true, SpiceLevel: SpiceMedium, Ingredients: []string{"paneer", "butter"}},
		{Name: "Margherita Pizza", Category: MainCourse, Price: 299, IsVegetarian: true},
		{Name: "Chicken Tikka", Category: Appetizer, Price: 349, SpiceLevel: SpiceHot},
	}
}

func TestNewCatalogPreservesOrder(t *testing.T) {
	cat, err := NewCatalog(sampleItems())
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"Paneer Butter Masala", "Margherita Pizza", "Chicken Tikka"}, cat.Names())
}

func TestNewCatalogDefaultsSpiceLevel(t *testing.T) {
	cat := MustCatalog(sampleItems())

	it, ok := cat.Lookup("margherita pizza")
	require.True(t, ok)
	assert.Equal(t, SpiceNone, it.SpiceLevel)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	items := append(sampleItems(), Item{Name: "  chicken tikka ", Category: Appetizer, Price: 10})

	_, err := NewCatalog(items)
	assert.ErrorIs(t, err, internalerr.ErrDuplicate)
}

func TestNewCatalogRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item Item
	}{
		{"empty name", Item{Category: Dessert}},
		{"unknown category", Item{Name: "Soup", Category: "soup"}},
		{"negative price", Item{Name: "Soup", Category: Appetizer, Price: -1}},
		{"unknown spice", Item{Name: "Soup", Category: Appetizer, SpiceLevel: "volcanic"}},
		{"vegan but not vegetarian", Item{Name: "Soup", Category: Appetizer, IsVegan: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]Item{tt.item})
			assert.ErrorIs(t, err, internalerr.ErrInvalidItem)
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	src := sampleItems()
	cat := MustCatalog(src)

	src[0].Price = 1
	items := cat.Items()
	items[0].Ingredients[0] = "tofu"

	it, _ := cat.Lookup("Paneer Butter Masala")
	assert.Equal(t, 279, it.Price)
	assert.Equal(t, "paneer", it.Ingredients[0])
}

func TestByCategory(t *testing.T) {
	cat := MustCatalog(sampleItems())

	mains := cat.ByCategory(MainCourse)
	require.Len(t, mains, 2)
	assert.Equal(t, "Paneer Butter Masala", mains[0].Name)
	assert.Empty(t, cat.ByCategory(Beverage))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Main Course", MainCourse.Label())
	assert.Equal(t, "Dessert", Dessert.Label())
}

func TestNilCatalog(t *testing.T) {
	var cat *Catalog
	assert.Zero(t, cat.Len())
	assert.Nil(t, cat.Items())
	_, ok := cat.Lookup("anything")
	assert.False(t, ok)
}
