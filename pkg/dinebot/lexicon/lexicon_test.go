package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLexiconNew(t *testing.T) {
	lex := New()
	if lex == nil {
		t.Fatal("New() returned nil")
	}
	if stats := lex.Stats(); stats.SynonymGroups != 0 {
		t.Errorf("New lexicon should have 0 synonym groups, got %d", stats.SynonymGroups)
	}
}

func TestLexiconAddSynonymGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("biryani", []string{"biriyani", "briyani"})

	for _, in := range []string{"biriyani", "BRIYANI", "biryani"} {
		if got := lex.Normalize(in); got != "biryani" {
			t.Errorf("Normalize(%q) = %q, want 'biryani'", in, got)
		}
	}

	if stats := lex.Stats(); stats.SynonymGroups != 1 || stats.TotalVariants != 3 {
		t.Errorf("Stats() = %+v, want 1 group of 3", stats)
	}
}

func TestLexiconUnknownToken(t *testing.T) {
	lex := New()
	if got := lex.Normalize("Sushi"); got != "sushi" {
		t.Errorf("Normalize('Sushi') = %q, want 'sushi'", got)
	}
	if stats := lex.Stats(); stats.TotalVariants != 0 {
		t.Errorf("Stats() = %+v, want empty", stats)
	}
}

func TestLexiconReverseIndexCleanup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("chai", []string{"tea", "cha"})
	lex.AddSynonymGroup("chai", []string{"tea"})

	if got := lex.Normalize("cha"); got != "cha" {
		t.Errorf("stale variant 'cha' should be removed when the group is replaced, got %q", got)
	}
	if got := lex.Normalize("tea"); got != "chai" {
		t.Errorf("Normalize('tea') = %q", got)
	}
}

func TestLexiconDuplicateVariants(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("egg", []string{"eggs", "EGGS", "egg", ""})

	if stats := lex.Stats(); stats.TotalVariants != 2 {
		t.Errorf("expected deduplicated variants [egg eggs], got %+v", stats)
	}
	if got := lex.Normalize("Eggs"); got != "egg" {
		t.Errorf("Normalize('Eggs') = %q", got)
	}
}

func TestLexiconPhrases(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("main-course", []string{"mains", "main course"})
	lex.AddSynonymGroup("pizza", []string{"pizzas"})

	phrases := lex.Phrases()
	if len(phrases) != 1 {
		t.Fatalf("expected one canonical with phrases, got %v", phrases)
	}
	if got := phrases["main-course"]; len(got) != 1 || got[0] != "main course" {
		t.Errorf("phrases[main-course] = %v", got)
	}
}

func TestLexiconMerge(t *testing.T) {
	base := New()
	base.AddSynonymGroup("chai", []string{"tea"})

	extra := New()
	extra.AddSynonymGroup("lassi", []string{"lassis"})
	extra.AddSynonymGroup("chai", []string{"tea", "masala tea"})

	base.Merge(extra)
	base.Merge(nil)

	if got := base.Normalize("lassis"); got != "lassi" {
		t.Errorf("Normalize('lassis') = %q", got)
	}
	if got := base.Normalize("masala tea"); got != "chai" {
		t.Errorf("merged chai group lost 'masala tea', got %q", got)
	}
	if stats := base.Stats(); stats.SynonymGroups != 2 || stats.TotalVariants != 5 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestLexiconLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `synonyms:
  - canonical: Paneer
    variants: [panner, panir]
  - canonical: ""
    variants: [ignored]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if got := lex.Normalize("panir"); got != "paneer" {
		t.Errorf("Normalize('panir') = %q, want 'paneer'", got)
	}
	if stats := lex.Stats(); stats.SynonymGroups != 1 {
		t.Errorf("entry without canonical should be skipped, got %+v", stats)
	}
}

func TestLexiconLoadFromYAMLErrors(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse([]byte("synonyms: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefaultLexicon(t *testing.T) {
	lex := Default()

	tests := map[string]string{
		"starters":       "appetizer",
		"drinks":         "beverage",
		"vegetarian":     "veg",
		"non-vegetarian": "non-veg",
		"prices":         "price",
		"biriyani":       "biryani",
		"tea":            "chai",
		"chicken":        "chicken",
	}
	for in, want := range tests {
		if got := lex.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}

	if len(lex.Phrases()["main-course"]) == 0 {
		t.Error("default lexicon should carry 'main course' as a phrase")
	}
}
