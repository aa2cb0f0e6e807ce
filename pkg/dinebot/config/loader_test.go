package config

import (
	"errors"
	"testing"

	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/stoplist"
)

func TestLoaderDefaults(t *testing.T) {
	comp, err := (&Loader{}).Load()
	if err != nil {
		t.Fatalf("Defaults should load: %v", err)
	}

	if comp.Catalog.Len() != 18 {
		t.Errorf("Expected 18 items, got %d", comp.Catalog.Len())
	}
	if comp.Restaurant.Name != "The Golden Spoon" {
		t.Errorf("Unexpected restaurant %q", comp.Restaurant.Name)
	}
	if comp.Extractor == nil || comp.Classifier == nil || comp.Pipeline == nil || comp.Assembler == nil {
		t.Fatal("All components should be initialized")
	}

	text := "vegetarian main course under 300"
	ents := comp.Extractor.Extract(text)
	cls := comp.Classifier.Classify(text, ents)
	if cls.Intent != intent.MenuList {
		t.Fatalf("Expected menu_list, got %s", cls.Intent)
	}
	res := comp.Pipeline.Execute(comp.Catalog, cls, ents)
	if res.Count != 4 {
		t.Errorf("Expected 4 vegetarian mains under 300, got %d", res.Count)
	}
}

func TestLoaderItemsOverrideMenu(t *testing.T) {
	loader := Loader{
		MenuPath: "/does/not/exist.yaml",
		Items: []menu.Item{
			{Name: "Dosa", Category: menu.MainCourse, Price: 120, IsVegetarian: true},
		},
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Items should win over MenuPath: %v", err)
	}
	if comp.Catalog.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", comp.Catalog.Len())
	}
}

func TestLoaderDuplicateItems(t *testing.T) {
	loader := Loader{Items: []menu.Item{
		{Name: "Dosa", Category: menu.MainCourse, Price: 120},
		{Name: "dosa", Category: menu.MainCourse, Price: 130},
	}}

	_, err := loader.Load()
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestLoaderNonExistentFiles(t *testing.T) {
	tests := map[string]Loader{
		"menu":       {MenuPath: "/nonexistent/menu.yaml"},
		"restaurant": {RestaurantPath: "/nonexistent/restaurant.yaml"},
		"lexicon":    {LexiconPath: "/nonexistent/lexicon.yaml"},
		"stoplist":   {StoplistPath: "/nonexistent/stoplist.yaml"},
		"dict":       {DictPath: "/nonexistent/dict.txt"},
	}
	for name, loader := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loader.Load(); err == nil {
				t.Errorf("Should error on nonexistent %s", name)
			}
		})
	}
}

func TestLoaderMalformedStoplist(t *testing.T) {
	path := writeFile(t, "bad.yaml", "terms: [unclosed\n")

	_, err := (&Loader{StoplistPath: path}).Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderExtraFiles(t *testing.T) {
	lexPath := writeFile(t, "lexicon.yaml", `synonyms:
  - canonical: dal
    variants: [daal, dhal]
`)
	stopPath := writeFile(t, "stoplist.yaml", "terms:\n  - yummy\n")
	dictPath := writeFile(t, "dict.txt", "lava-cake|lava cake|molten cake|dish\n")

	comp, err := (&Loader{
		LexiconPath:  lexPath,
		StoplistPath: stopPath,
		DictPath:     dictPath,
	}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Lexicon.Normalize("daal") != "dal" {
		t.Error("File lexicon should extend the default")
	}
	if comp.Lexicon.Normalize("biriyani") != "biryani" {
		t.Error("Default lexicon groups should survive a merge")
	}
	if !comp.Stoplist.IsStop("yummy") || !comp.Stoplist.IsStop("the") {
		t.Error("File stopwords should extend the defaults")
	}
}

func TestLoaderThresholds(t *testing.T) {
	comp, err := (&Loader{SimilarityThreshold: 0.9}).Load()
	if err != nil {
		t.Fatal(err)
	}
	if comp.Pipeline.Threshold() != 0.9 {
		t.Errorf("Expected threshold 0.9, got %v", comp.Pipeline.Threshold())
	}
}

func TestLoaderStoreTuningData(t *testing.T) {
	comp, err := (&Loader{
		Stops:   []string{"Delish", "the"},
		Phrases: []ingest.DictEntry{{Canonical: "lava-cake", Variants: []string{"molten cake"}, Category: "dish"}},
	}).Load()
	if err != nil {
		t.Fatal(err)
	}
	if !comp.Stoplist.IsStop("delish") {
		t.Error("Loader stops should extend the stoplist")
	}
	if reason, _ := comp.Stoplist.Reason("the"); reason == stoplist.ReasonGeneral {
		t.Error("Default stopword reason should be kept")
	}
}
