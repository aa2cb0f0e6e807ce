// Package menu defines the restaurant menu model and the immutable catalog
// every query is answered against.
package menu

import (
	"fmt"
	"strings"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
)

// Category groups menu items into the sections of the printed menu.
type Category string

const (
	Appetizer  Category = "appetizer"
	MainCourse Category = "main_course"
	Dessert    Category = "dessert"
	Beverage   Category = "beverage"
)

// Categories returns the known categories in menu order.
func Categories() []Category {
	return []Category{Appetizer, MainCourse, Dessert, Beverage}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Appetizer, MainCourse, Dessert, Beverage:
		return true
	}
	return false
}

// Label renders the category for display ("main_course" -> "Main Course").
func (c Category) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// SpiceLevel is the heat of a dish.
type SpiceLevel string

const (
	SpiceNone   SpiceLevel = "none"
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceHot    SpiceLevel = "hot"
)

// Valid reports whether s is one of the known spice levels.
func (s SpiceLevel) Valid() bool {
	switch s {
	case SpiceNone, SpiceMild, SpiceMedium, SpiceHot:
		return true
	}
	return false
}

// Item is a single dish on the menu. Prices are whole rupees.
type Item struct {
	Name         string     `yaml:"name" json:"name"`
	Category     Category   `yaml:"category" json:"category"`
	Price        int        `yaml:"price" json:"price"`
	IsVegetarian bool       `yaml:"is_vegetarian" json:"is_vegetarian"`
	IsVegan      bool       `yaml:"is_vegan" json:"is_vegan"`
	SpiceLevel   SpiceLevel `yaml:"spice_level" json:"spice_level"`
	Description  string     `yaml:"description" json:"description"`
	Ingredients  []string   `yaml:"ingredients" json:"ingredients,omitempty"`
	PrepMinutes  int        `yaml:"preparation_time" json:"preparation_time,omitempty"`
}

// Validate checks the item's own invariants. An empty spice level is
// accepted and treated as SpiceNone.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: empty name", internalerr.ErrInvalidItem)
	}
	if !it.Category.Valid() {
		return fmt.Errorf("%w: %q has unknown category %q", internalerr.ErrInvalidItem, it.Name, it.Category)
	}
	if it.Price < 0 {
		return fmt.Errorf("%w: %q has negative price %d", internalerr.ErrInvalidItem, it.Name, it.Price)
	}
	if it.SpiceLevel != "" && !it.SpiceLevel.Valid() {
		return fmt.Errorf("%w: %q has unknown spice level %q", internalerr.ErrInvalidItem, it.Name, it.SpiceLevel)
	}
	if it.IsVegan && !it.IsVegetarian {
		return fmt.Errorf("%w: %q is vegan but not vegetarian", internalerr.ErrInvalidItem, it.Name)
	}
	if it.PrepMinutes < 0 {
		return fmt.Errorf("%w: %q has negative preparation time", internalerr.ErrInvalidItem, it.Name)
	}
	return nil
}

func cloneItem(it Item) Item {
	out := it
	if it.Ingredients != nil {
		out.Ingredients = append([]string(nil), it.Ingredients...)
	}
	return out
}
