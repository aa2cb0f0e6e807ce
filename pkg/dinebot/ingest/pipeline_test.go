package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/dinebot/pkg/dinebot/lexicon"
)

func TestPipelineProcess(t *testing.T) {
	lex := lexicon.New()
	lex.AddSynonymGroup("dessert", []string{"desserts"})

	tokenizer := NewTokenizer(nil)
	tokenizer.SetLexicon(lex)

	parser := NewMultiTokenParser([]DictEntry{
		{Canonical: "not-spicy", Variants: []string{"not spicy"}},
	})

	tax := NewTaxonomy()
	tax.AddLabel("category", "dessert", []string{"dessert"})
	tax.AddLabel("spice", "mild", []string{"not-spicy"})

	p := NewPipeline(tokenizer, parser, tax)
	out := p.Process("Desserts that are not spicy")

	wantTokens := []string{"dessert", "that", "are", "not-spicy"}
	if !reflect.DeepEqual(out.Tokens, wantTokens) {
		t.Errorf("Tokens = %v, want %v", out.Tokens, wantTokens)
	}
	if label, ok := out.Label("category"); !ok || label != "dessert" {
		t.Errorf("category label = %q, %v", label, ok)
	}
	if label, ok := out.Label("spice"); !ok || label != "mild" {
		t.Errorf("spice label = %q, %v", label, ok)
	}
	if _, ok := out.Label("preference"); ok {
		t.Error("unexpected preference label")
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), nil, nil)

	out := p.Process("Chicken Tikka")
	if !reflect.DeepEqual(out.Tokens, []string{"chicken", "tikka"}) {
		t.Errorf("Tokens = %v", out.Tokens)
	}
	if len(out.Labels) != 0 {
		t.Errorf("Labels = %v, want none", out.Labels)
	}
}
