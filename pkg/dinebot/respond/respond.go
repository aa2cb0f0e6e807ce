// Package respond turns a classified query and its filter result into the
// text reply shown to a diner.
package respond

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/dinebot/pkg/dinebot/entities"
	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
)

// Assembler builds explainable replies. It is safe for concurrent use.
type Assembler struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	info    Restaurant
}

// New creates an assembler answering restaurant questions from info.
func New(info Restaurant) *Assembler {
	return &Assembler{
		entropy: ulid.Monotonic(rand.Reader, 0),
		info:    info,
	}
}

// Restaurant returns the profile the assembler renders.
func (a *Assembler) Restaurant() Restaurant {
	return a.info
}

// Reply is the user-facing answer to one query.
type Reply struct {
	ID          string             `json:"id"`
	Intent      intent.Intent      `json:"intent"`
	Confidence  float64            `json:"confidence"`
	Text        string             `json:"text"`
	Items       []menu.Item        `json:"items,omitempty"`
	Stats       *filter.PriceStats `json:"stats,omitempty"`
	Topic       Topic              `json:"topic,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
	Explain     Explain            `json:"explain"`
}

// Explain records how the reply was reached.
type Explain struct {
	Rule        string         `json:"rule,omitempty"`
	Status      filter.Status  `json:"status,omitempty"`
	Filters     []string       `json:"filters,omitempty"`
	MatchedItem string         `json:"matched_item,omitempty"`
	MatchScore  float64        `json:"match_score,omitempty"`
	Trace       []filter.Stage `json:"trace,omitempty"`
}

var (
	greetingSuggestions = []string{"Show me the menu", "What are your timings?", "Tell me about desserts"}
	unknownSuggestions  = []string{"Show me the menu", "What are your timings?", "Where are you located?"}
	emptySuggestions    = []string{"Show me the full menu", "What vegetarian options do you have?", "Show me appetizers"}
	notFoundSuggestions = []string{"Show me the menu", "How much is the pizza?", "What are your prices?"}
)

var boundNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Assemble renders the reply for query. query is the user's text; it is only
// consulted to pick a restaurant info topic.
func (a *Assembler) Assemble(query string, cls intent.Result, ents entities.Entities, res filter.Result) Reply {
	r := Reply{
		ID:         a.newID(),
		Intent:     cls.Intent,
		Confidence: cls.Confidence,
		Explain: Explain{
			Rule:       cls.Rule,
			Status:     res.Status,
			Filters:    describeFilters(ents),
			MatchScore: res.MatchScore,
			Trace:      res.Trace,
		},
	}
	if res.MatchedItem != nil {
		r.Explain.MatchedItem = res.MatchedItem.Name
	}

	switch cls.Intent {
	case intent.Greeting:
		r.Text = fmt.Sprintf("Hello! Welcome to %s. How can I help you today?", a.name())
		r.Suggestions = greetingSuggestions
	case intent.RestaurantInfo:
		r.Topic = DetectTopic(entities.NormalizeText(query))
		r.Text = a.restaurantText(r.Topic)
	case intent.ItemPriceQuery, intent.ItemDetails:
		a.itemReply(&r, cls.Intent, ents, res)
	case intent.PriceRangeQuery:
		a.statsReply(&r, ents, res)
	case intent.MenuList, intent.ItemListByKeyword:
		a.listReply(&r, cls.Intent, ents, res)
	default:
		r.Text = "Sorry, I didn't catch that. Try asking about our menu or our opening hours."
		r.Suggestions = unknownSuggestions
	}
	return r
}

func (a *Assembler) newID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Now(), a.entropy).String()
}

func (a *Assembler) name() string {
	if a.info.Name == "" {
		return "our restaurant"
	}
	return a.info.Name
}

func (a *Assembler) itemReply(r *Reply, in intent.Intent, ents entities.Entities, res filter.Result) {
	switch res.Status {
	case filter.StatusItems:
	case filter.StatusEmpty:
		r.Text = noMatches(r.Explain.Filters)
		r.Suggestions = emptySuggestions
		return
	default:
		if len(res.Candidates) > 0 {
			r.Text = candidatesText(res.Candidates)
			for _, it := range res.Candidates {
				r.Suggestions = append(r.Suggestions, itemQuestion(in, it.Name))
			}
			return
		}
		if ents.ItemCandidate != "" {
			r.Text = fmt.Sprintf("I couldn't find %q on our menu. Could you try rephrasing, or ask to see the menu?", ents.ItemCandidate)
		} else {
			r.Text = "I couldn't find that item. Could you try rephrasing, or ask to see the menu?"
		}
		r.Suggestions = notFoundSuggestions
		return
	}

	it := *res.MatchedItem
	r.Items = []menu.Item{it}
	if in == intent.ItemPriceQuery {
		r.Text = fmt.Sprintf("%s costs %s.\n%s | %s", it.Name, rupees(it.Price), tags(it), it.Category.Label())
		if it.Description != "" {
			r.Text += "\n" + it.Description
		}
		return
	}
	r.Text = details(it)
}

func (a *Assembler) statsReply(r *Reply, ents entities.Entities, res filter.Result) {
	if res.Stats == nil {
		r.Text = noMatches(r.Explain.Filters)
		r.Suggestions = []string{"Show me the full menu"}
		return
	}
	r.Stats = res.Stats

	var scope string
	if ents.KeywordOnly() {
		scope += " for " + ents.Keyword + " dishes"
	}
	if ents.CategoryHint != nil {
		scope += " for " + strings.ToLower(ents.CategoryHint.Label())
	}
	if d := ents.Dietary(); d != "" {
		scope += " (" + d + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Our prices%s:\n", scope)
	fmt.Fprintf(&b, "Lowest: %s\n", rupees(res.Stats.Min))
	fmt.Fprintf(&b, "Highest: %s\n", rupees(res.Stats.Max))
	fmt.Fprintf(&b, "Average: ₹%.0f\n", res.Stats.Average)
	fmt.Fprintf(&b, "Total items: %d", res.Stats.Count)
	r.Text = b.String()
}

func (a *Assembler) listReply(r *Reply, in intent.Intent, ents entities.Entities, res filter.Result) {
	if res.Status != filter.StatusItems {
		r.Text = noMatches(r.Explain.Filters)
		r.Suggestions = emptySuggestions
		return
	}
	r.Items = res.Items

	var b strings.Builder
	switch {
	case in == intent.ItemListByKeyword && ents.Keyword != "":
		fmt.Fprintf(&b, "Here are items with %s", ents.Keyword)
	case ents.CategoryHint != nil:
		fmt.Fprintf(&b, "Here are our %s items", ents.CategoryHint.Label())
	default:
		b.WriteString("Here's our menu")
	}
	if d := ents.Dietary(); d != "" {
		fmt.Fprintf(&b, " (%s options)", d)
	}
	if p := priceDescription(ents); p != "" {
		b.WriteString(" " + p)
	}
	b.WriteString(":")
	for _, it := range res.Items {
		fmt.Fprintf(&b, "\n- %s (%s) %s", it.Name, rupees(it.Price), tags(it))
	}
	r.Text = b.String()
}

func (a *Assembler) restaurantText(topic Topic) string {
	info := a.info
	switch topic {
	case TopicHours:
		return fmt.Sprintf("Opening Hours:\nWeekdays: %s\nWeekends: %s\nClosed on: %s",
			info.Hours.Weekday, info.Hours.Weekend, info.Hours.Closed)
	case TopicAddress:
		return fmt.Sprintf("Location:\n%s\n%s", a.name(), info.Address)
	case TopicContact:
		return fmt.Sprintf("Contact Us:\nPhone: %s\nEmail: %s", info.Phone, info.Email)
	}

	lines := []string{a.name()}
	if info.Address != "" {
		lines = append(lines, "Address: "+info.Address)
	}
	if info.Phone != "" {
		lines = append(lines, "Phone: "+info.Phone)
	}
	if info.Hours.Weekday != "" {
		open := "Open " + info.Hours.Weekday
		if info.Hours.Closed != "" {
			open += " (closed " + info.Hours.Closed + ")"
		}
		lines = append(lines, open)
	}
	if len(info.Cuisines) > 0 {
		lines = append(lines, "Cuisines: "+strings.Join(info.Cuisines, ", "))
	}
	if info.Seating > 0 {
		lines = append(lines, fmt.Sprintf("Seating: %d people", info.Seating))
	}
	if len(info.Facilities) > 0 {
		lines = append(lines, "Facilities: "+strings.Join(info.Facilities, ", "))
	}
	return strings.Join(lines, "\n")
}

// details renders the full description of one item.
func details(it menu.Item) string {
	lines := []string{
		fmt.Sprintf("%s - %s", it.Name, rupees(it.Price)),
		fmt.Sprintf("%s | %s", it.Category.Label(), tags(it)),
	}
	if it.Description != "" {
		lines = append(lines, it.Description)
	}
	if len(it.Ingredients) > 0 {
		lines = append(lines, "Ingredients: "+strings.Join(it.Ingredients, ", "))
	}
	if it.PrepMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Preparation time: %d minutes", it.PrepMinutes))
	}
	return strings.Join(lines, "\n")
}

func tags(it menu.Item) string {
	diet := "Non-Vegetarian"
	switch {
	case it.IsVegan:
		diet = "Vegan"
	case it.IsVegetarian:
		diet = "Vegetarian"
	}
	if it.SpiceLevel != "" && it.SpiceLevel != menu.SpiceNone {
		return fmt.Sprintf("%s, %s spice", diet, it.SpiceLevel)
	}
	return diet
}

func candidatesText(items []menu.Item) string {
	if len(items) == 1 {
		return fmt.Sprintf("Did you mean %s (%s)?", items[0].Name, rupees(items[0].Price))
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%s)", it.Name, rupees(it.Price))
	}
	return "I found multiple items. Which one did you mean?\n" + strings.Join(parts, ", ")
}

func itemQuestion(in intent.Intent, name string) string {
	if in == intent.ItemPriceQuery {
		return "How much is the " + name + "?"
	}
	return "Tell me about the " + name
}

func rupees(n int) string {
	return fmt.Sprintf("₹%d", n)
}

// withRupee puts the currency sign back on the numbers of a bound phrase.
func withRupee(phrase string) string {
	return boundNumber.ReplaceAllString(phrase, "₹$0")
}

// priceDescription joins the user's price wording; a range phrase that owns
// both bounds is printed once.
func priceDescription(ents entities.Entities) string {
	var parts []string
	if ents.MinPhrase != "" {
		parts = append(parts, withRupee(ents.MinPhrase))
	}
	if ents.MaxPhrase != "" && ents.MaxPhrase != ents.MinPhrase {
		parts = append(parts, withRupee(ents.MaxPhrase))
	}
	return strings.Join(parts, " and ")
}

func describeFilters(ents entities.Entities) []string {
	var out []string
	if d := ents.Dietary(); d != "" {
		out = append(out, d)
	}
	if ents.CategoryHint != nil {
		out = append(out, strings.ToLower(ents.CategoryHint.Label()))
	}
	if ents.Spice != nil {
		out = append(out, string(*ents.Spice)+" spice")
	}
	switch ents.Preference {
	case entities.PreferLow:
		out = append(out, "budget-friendly")
	case entities.PreferHigh:
		out = append(out, "premium")
	}
	if p := priceDescription(ents); p != "" {
		out = append(out, p)
	}
	if ents.KeywordOnly() {
		out = append(out, "with "+ents.Keyword)
	}
	return out
}

func noMatches(filters []string) string {
	if len(filters) == 0 {
		return "Sorry, I couldn't find any items matching your request."
	}
	return fmt.Sprintf("Sorry, I couldn't find any items matching your criteria (%s).", strings.Join(filters, ", "))
}
