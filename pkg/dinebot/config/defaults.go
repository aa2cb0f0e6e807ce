package config

import (
	_ "embed"
	"fmt"

	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/respond"
)

var (
	//go:embed data/menu.yaml
	defaultMenuYAML []byte

	//go:embed data/restaurant.yaml
	defaultRestaurantYAML []byte
)

// DefaultMenu returns The Golden Spoon's built-in menu.
func DefaultMenu() []menu.Item {
	items, err := ParseMenu(defaultMenuYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded menu is invalid: %v", err))
	}
	return items
}

// DefaultRestaurant returns the built-in restaurant profile.
func DefaultRestaurant() respond.Restaurant {
	r, err := ParseRestaurant(defaultRestaurantYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded restaurant profile is invalid: %v", err))
	}
	return r
}
