package dinebot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/cognicore/dinebot/pkg/dinebot/config"
	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/store"
	"github.com/cognicore/dinebot/pkg/dinebot/store/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	comp, err := (&config.Loader{}).Load()
	require.NoError(t, err)
	return FromComponents(comp, zaptest.NewLogger(t), nil)
}

func names(items []menu.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestCombinedFilterScenario(t *testing.T) {
	cat := menu.MustCatalog([]menu.Item{
		{Name: "Paneer Butter Masala", Category: menu.MainCourse, Price: 279, IsVegetarian: true},
		{Name: "Margherita Pizza", Category: menu.MainCourse, Price: 299, IsVegetarian: true},
		{Name: "Chicken Tikka", Category: menu.MainCourse, Price: 349},
	})
	e := New(Options{Catalog: cat, Logger: zaptest.NewLogger(t)})

	cls, ents := e.ClassifyAndExtract("vegetarian main course under 300")
	assert.Equal(t, intent.MenuList, cls.Intent)

	res := e.Execute(cat, cls, ents)
	assert.Equal(t, []string{"Paneer Butter Masala", "Margherita Pizza"}, names(res.Items))
	assert.Equal(t, 2, res.Count)
}

func TestStrictAndInclusivePriceBounds(t *testing.T) {
	for _, n := range []int{100, 250, 300, 999} {
		cat := menu.MustCatalog([]menu.Item{
			{Name: "Below", Category: menu.Dessert, Price: n - 1},
			{Name: "Exact", Category: menu.Dessert, Price: n},
			{Name: "Above", Category: menu.Dessert, Price: n + 1},
		})
		e := New(Options{Catalog: cat})

		ans, err := e.Ask(context.Background(), fmt.Sprintf("under %d", n))
		require.NoError(t, err)
		assert.Equal(t, []string{"Below"}, names(ans.Result.Items), "under %d", n)

		ans, err = e.Ask(context.Background(), fmt.Sprintf("%d or less", n))
		require.NoError(t, err)
		assert.Equal(t, []string{"Below", "Exact"}, names(ans.Result.Items), "%d or less", n)
	}
}

func TestDecimalPriceBounds(t *testing.T) {
	cat := menu.MustCatalog([]menu.Item{
		{Name: "Cheaper", Category: menu.Dessert, Price: 298},
		{Name: "Exact", Category: menu.Dessert, Price: 299},
		{Name: "Dearer", Category: menu.Dessert, Price: 300},
	})
	e := New(Options{Catalog: cat})

	ans, err := e.Ask(context.Background(), "desserts under 299.50")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheaper", "Exact"}, names(ans.Result.Items))

	ans, err = e.Ask(context.Background(), "desserts above 298.5")
	require.NoError(t, err)
	assert.Equal(t, []string{"Exact", "Dearer"}, names(ans.Result.Items))
}

func TestDefaultMenuQueries(t *testing.T) {
	e := newDefaultEngine(t)

	tests := []struct {
		query  string
		intent intent.Intent
		status filter.Status
		items  []string
	}{
		{"show me chicken items", intent.ItemListByKeyword, filter.StatusItems,
			[]string{"Chicken Wings", "Chicken Tikka", "Chicken Biryani", "Butter Chicken"}},
		{"list paneer dishes", intent.ItemListByKeyword, filter.StatusItems,
			[]string{"Paneer Tikka", "Paneer Butter Masala"}},
		{"vegan dishes", intent.MenuList, filter.StatusItems,
			[]string{"Veg Spring Rolls", "Dal Tadka", "Mango Sorbet", "Fresh Lime Soda"}},
		{"spicy starters", intent.MenuList, filter.StatusItems,
			[]string{"Chicken Wings", "Chicken Tikka"}},
		{"cheap desserts", intent.MenuList, filter.StatusItems,
			[]string{"Gulab Jamun", "Mango Sorbet"}},
		{"piza cost", intent.ItemPriceQuery, filter.StatusItems, []string{"Margherita Pizza"}},
		{"how much is the butter chicken", intent.ItemPriceQuery, filter.StatusItems, []string{"Butter Chicken"}},
		{"tell me about gulab jamun", intent.ItemDetails, filter.StatusItems, []string{"Gulab Jamun"}},
		{"how much is the butter chicken that comes with garlic naan", intent.ItemPriceQuery, filter.StatusItems, []string{"Butter Chicken"}},
		{"how much is the mango lassi large glass", intent.ItemPriceQuery, filter.StatusItems, []string{"Mango Lassi"}},
		{"tell me about the gulab jamun dessert you serve hot with ice cream", intent.ItemDetails, filter.StatusItems, []string{"Gulab Jamun"}},
		{"what's in the fish curry", intent.ItemDetails, filter.StatusItems, []string{"Fish Curry"}},
		{"biriyani", intent.ItemDetails, filter.StatusItems, []string{"Chicken Biryani"}},
		{"sushi", intent.ItemDetails, filter.StatusNotFound, []string{}},
		{"hello", intent.Greeting, filter.StatusNotApplicable, []string{}},
		{"where are you located", intent.RestaurantInfo, filter.StatusNotApplicable, []string{}},
		{"can i get some sushi", intent.Unknown, filter.StatusNotApplicable, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ans, err := e.Ask(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, ans.Classification.Intent)
			assert.Equal(t, tt.status, ans.Result.Status)
			assert.Equal(t, tt.items, names(ans.Result.Items))
			assert.Equal(t, len(tt.items), ans.Result.Count)
			assert.NotEmpty(t, ans.Reply.Text)
			assert.NotEmpty(t, ans.Reply.ID)
		})
	}
}

func TestVeganResultsArePure(t *testing.T) {
	e := newDefaultEngine(t)

	for _, q := range []string{"vegan dishes", "vegan desserts", "vegan main course under 400", "show me vegan or vegetarian food"} {
		ans, err := e.Ask(context.Background(), q)
		require.NoError(t, err)
		for _, it := range ans.Result.Items {
			assert.True(t, it.IsVegan, "%q returned non-vegan %s", q, it.Name)
		}
	}
}

func TestPriceRangeStats(t *testing.T) {
	e := newDefaultEngine(t)

	ans, err := e.Ask(context.Background(), "menu prices")
	require.NoError(t, err)
	assert.Equal(t, intent.PriceRangeQuery, ans.Classification.Intent)
	require.NotNil(t, ans.Result.Stats)
	assert.Equal(t, filter.PriceStats{Min: 79, Max: 429, Average: 244, Count: 18}, *ans.Result.Stats)
	assert.Empty(t, ans.Result.Items)

	ans, err = e.Ask(context.Background(), "dessert prices")
	require.NoError(t, err)
	require.NotNil(t, ans.Result.Stats)
	assert.Equal(t, filter.PriceStats{Min: 129, Max: 199, Average: 159, Count: 3}, *ans.Result.Stats)
	assert.Contains(t, ans.Reply.Text, "Lowest: ₹129")
}

func TestRepliesRenderUserWording(t *testing.T) {
	e := newDefaultEngine(t)

	ans, err := e.Ask(context.Background(), "vegan desserts above 1000")
	require.NoError(t, err)
	assert.Equal(t, filter.StatusEmpty, ans.Result.Status)
	assert.Contains(t, ans.Reply.Text, "above ₹1000")

	ans, err = e.Ask(context.Background(), "hi there")
	require.NoError(t, err)
	assert.Equal(t, "Hello! Welcome to The Golden Spoon. How can I help you today?", ans.Reply.Text)
}

func TestAskHonorsCancelledContext(t *testing.T) {
	e := newDefaultEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Ask(ctx, "menu prices")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAskNeverFailsOnOddInput(t *testing.T) {
	e := newDefaultEngine(t)
	for _, q := range []string{"", "   ", "?!?!", "₹₹₹", "🍕", "under 99999999999999999999999"} {
		ans, err := e.Ask(context.Background(), q)
		require.NoError(t, err, q)
		assert.NotEmpty(t, ans.Reply.Text, q)
	}
}

type countingObserver struct {
	mu    sync.Mutex
	calls map[intent.Intent]int
}

func (o *countingObserver) ObserveQuery(in intent.Intent, _ filter.Status, _ float64, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls[in]++
}

func TestObserver(t *testing.T) {
	comp, err := (&config.Loader{}).Load()
	require.NoError(t, err)

	obs := &countingObserver{calls: map[intent.Intent]int{}}
	e := FromComponents(comp, zaptest.NewLogger(t), obs)

	for _, q := range []string{"hello", "menu prices", "piza cost", "pizza price"} {
		_, err := e.Ask(context.Background(), q)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, obs.calls[intent.Greeting])
	assert.Equal(t, 1, obs.calls[intent.PriceRangeQuery])
	assert.Equal(t, 2, obs.calls[intent.ItemPriceQuery])
}

func TestCatalogFromStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, store.Seed(ctx, st, config.DefaultMenu()[:6]))

	cat, err := store.LoadCatalog(ctx, st)
	require.NoError(t, err)

	comp, err := (&config.Loader{Items: cat.Items()}).Load()
	require.NoError(t, err)
	e := FromComponents(comp, zaptest.NewLogger(t), nil)

	ans, err := e.Ask(ctx, "show me the menu")
	require.NoError(t, err)
	assert.Equal(t, 6, ans.Result.Count)
}

func TestConcurrentAsk(t *testing.T) {
	e := newDefaultEngine(t)
	queries := []string{"show me chicken items", "piza cost", "menu prices", "vegetarian main course under 300", "sushi"}

	want := make(map[string]int)
	for _, q := range queries {
		ans, err := e.Ask(context.Background(), q)
		require.NoError(t, err)
		want[q] = ans.Result.Count
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				q := queries[j%len(queries)]
				ans, err := e.Ask(context.Background(), q)
				if assert.NoError(t, err) {
					assert.Equal(t, want[q], ans.Result.Count, q)
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewDefaults(t *testing.T) {
	e := New(Options{})
	assert.Equal(t, 0, e.Catalog().Len())

	ans, err := e.Ask(context.Background(), "show me the menu")
	require.NoError(t, err)
	assert.Equal(t, filter.StatusEmpty, ans.Result.Status)
}
