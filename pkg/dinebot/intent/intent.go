// Package intent classifies a menu question into one of a closed set of
// intents using an ordered, first-match-wins rule table.
package intent

// Intent is the closed set of query intents.
type Intent string

const (
	ItemPriceQuery    Intent = "item_price_query"
	PriceRangeQuery   Intent = "price_range_query"
	MenuList          Intent = "menu_list"
	ItemDetails       Intent = "item_details"
	ItemListByKeyword Intent = "item_list_by_keyword"
	RestaurantInfo    Intent = "restaurant_info"
	Greeting          Intent = "greeting"
	Unknown           Intent = "unknown"
)

// All returns every intent.
func All() []Intent {
	return []Intent{
		ItemPriceQuery, PriceRangeQuery, MenuList, ItemDetails,
		ItemListByKeyword, RestaurantInfo, Greeting, Unknown,
	}
}

// Valid reports whether i is a known intent.
func (i Intent) Valid() bool {
	for _, known := range All() {
		if i == known {
			return true
		}
	}
	return false
}

// ResolvesItem reports whether the intent targets a single menu item.
func (i Intent) ResolvesItem() bool {
	return i == ItemPriceQuery || i == ItemDetails
}

// Result is the outcome of classification. Rule names the table row that
// fired; it is empty for Unknown.
type Result struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Rule       string  `json:"rule,omitempty"`
}
