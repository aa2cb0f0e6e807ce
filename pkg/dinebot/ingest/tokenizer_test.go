package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/dinebot/pkg/dinebot/lexicon"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the", "of", "is"})

	tokens := tokenizer.Tokenize("What is the price of Margherita Pizza?")

	expected := []string{"what", "price", "margherita", "pizza"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokenize() = %v, want %v", tokens, expected)
	}
}

func TestTokenizerHyphens(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("any non-veg --starters-- here")

	expected := []string{"any", "non-veg", "starters", "here"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokenize() = %v, want %v", tokens, expected)
	}
}

func TestTokenizerDropsNumbersAndSingleRunes(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("a pizza under 300 or 7up")

	expected := []string{"pizza", "under", "or", "7up"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokenize() = %v, want %v", tokens, expected)
	}
}

func TestTokenizerWithLexicon(t *testing.T) {
	lex := lexicon.New()
	lex.AddSynonymGroup("biryani", []string{"biriyani", "briyani"})
	lex.AddSynonymGroup("price", []string{"prices"})

	tokenizer := NewTokenizer([]string{"price"})
	tokenizer.SetLexicon(lex)

	tokens := tokenizer.Tokenize("Biriyani prices")

	// "prices" normalizes to "price", which is a stopword
	expected := []string{"biryani"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokenize() = %v, want %v", tokens, expected)
	}
}

func TestTokenizerStopwordsIgnoreCase(t *testing.T) {
	tokenizer := NewTokenizer([]string{"Menu"})

	if got := tokenizer.Tokenize("MENU please"); !reflect.DeepEqual(got, []string{"please"}) {
		t.Errorf("Tokenize() = %v, want [please]", got)
	}
}

func TestTokenizerEmpty(t *testing.T) {
	tokenizer := NewTokenizer(nil)
	if tokens := tokenizer.Tokenize("  ?! ₹ "); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}
