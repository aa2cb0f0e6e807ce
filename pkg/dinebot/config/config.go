// Package config loads the data files the engine is built from: the menu,
// the restaurant profile, stopwords, the synonym lexicon and the phrase
// dictionary.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/dinebot/pkg/dinebot/ingest"
	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
	"github.com/cognicore/dinebot/pkg/dinebot/menu"
	"github.com/cognicore/dinebot/pkg/dinebot/respond"
)

// Menu is the on-disk menu document.
type Menu struct {
	Items []menu.Item `yaml:"items"`
}

// LoadMenu reads a menu YAML file.
func LoadMenu(path string) ([]menu.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMenu(data)
}

// ParseMenu decodes a menu document and validates every item.
func ParseMenu(data []byte) ([]menu.Item, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: menu: %v", internalerr.ErrInvalidConfig, err)
	}
	for i, it := range m.Items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", i, err)
		}
	}
	return m.Items, nil
}

// LoadRestaurant reads a restaurant profile YAML file.
func LoadRestaurant(path string) (respond.Restaurant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return respond.Restaurant{}, err
	}
	return ParseRestaurant(data)
}

// ParseRestaurant decodes a restaurant profile. Name is required.
func ParseRestaurant(data []byte) (respond.Restaurant, error) {
	var r respond.Restaurant
	if err := yaml.Unmarshal(data, &r); err != nil {
		return respond.Restaurant{}, fmt.Errorf("%w: restaurant: %v", internalerr.ErrInvalidConfig, err)
	}
	if strings.TrimSpace(r.Name) == "" {
		return respond.Restaurant{}, fmt.Errorf("%w: restaurant name is empty", internalerr.ErrInvalidConfig)
	}
	return r, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: stoplist: %v", internalerr.ErrInvalidConfig, err)
	}

	return &sl, nil
}

// LoadDict loads the multi-token dictionary from a file
// Format: canonical|variant1|variant2|category
func LoadDict(path string) ([]ingest.DictEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDict(string(data)), nil
}

// ParseDict parses dictionary lines. Blank lines, comments and lines with
// fewer than two fields are skipped.
func ParseDict(data string) []ingest.DictEntry {
	entries := []ingest.DictEntry{}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		entries = append(entries, ingest.DictEntry{
			Canonical: parts[0],
			Variants:  parts[1 : len(parts)-1],
			Category:  parts[len(parts)-1],
		})
	}
	return entries
}
