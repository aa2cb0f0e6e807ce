package entities

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	thousandsSep   = regexp.MustCompile(`(\d),(\d)`)
	currencyAfter  = regexp.MustCompile(`(\d)\s*(?:(?:rupees?|rs|inr)\b\.?|/-)`)
	currencyBefore = regexp.MustCompile(`\b(?:rupees?|rs|inr)\.?\s*(\d)`)
)

type boundKind int

const (
	boundMax boundKind = iota
	boundMin
	boundBoth
)

// priceRule is one row of the bound table. A strict rule excludes the
// number itself and is turned into the nearest inclusive whole-rupee bound.
type priceRule struct {
	name    string
	kind    boundKind
	pattern *regexp.Regexp
	strict  bool
}

// Evaluated in order; the first rule to set a bound owns it.
var priceRules = []priceRule{
	{name: "under", kind: boundMax, strict: true,
		pattern: regexp.MustCompile(`\b(?:under|below|less than|cheaper than|lower than)\s+(\d+(?:\.\d+)?)`)},
	{name: "above", kind: boundMin, strict: true,
		pattern: regexp.MustCompile(`\b(?:above|over|more than|greater than|costlier than|higher than)\s+(\d+(?:\.\d+)?)`)},
	{name: "or-less", kind: boundMax,
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s+or\s+(?:less|below|under|cheaper)\b`)},
	{name: "up-to", kind: boundMax,
		pattern: regexp.MustCompile(`\b(?:up\s*to|at most|maximum|max|within)\s+(\d+(?:\.\d+)?)`)},
	{name: "or-more", kind: boundMin,
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s+or\s+(?:more|above|over|higher)\b`)},
	{name: "at-least", kind: boundMin,
		pattern: regexp.MustCompile(`\b(?:at least|minimum|min|starting (?:at|from))\s+(\d+(?:\.\d+)?)`)},
	{name: "between", kind: boundBoth,
		pattern: regexp.MustCompile(`\bbetween\s+(\d+(?:\.\d+)?)\s*(?:and|to|-)\s*(\d+(?:\.\d+)?)`)},
	{name: "from-to", kind: boundBoth,
		pattern: regexp.MustCompile(`\bfrom\s+(\d+(?:\.\d+)?)\s*(?:to|-)\s*(\d+(?:\.\d+)?)`)},
}

// extractPrice fills the price bounds of e from normalized text.
func extractPrice(text string, e *Entities) {
	for _, rule := range priceRules {
		if e.MinPrice != nil && e.MaxPrice != nil {
			return
		}
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		switch rule.kind {
		case boundMax:
			if e.MaxPrice != nil {
				continue
			}
			if n, ok := maxBound(m[1], rule.strict); ok {
				e.MaxPrice, e.MaxInclusive, e.MaxPhrase = intPtr(n), true, m[0]
			}
		case boundMin:
			if e.MinPrice != nil {
				continue
			}
			if n, ok := minBound(m[1], rule.strict); ok {
				e.MinPrice, e.MinInclusive, e.MinPhrase = intPtr(n), true, m[0]
			}
		case boundBoth:
			a, b := m[1], m[2]
			if amountLess(b, a) {
				a, b = b, a
			}
			lo, okLo := minBound(a, false)
			hi, okHi := maxBound(b, false)
			if !okLo || !okHi {
				continue
			}
			if e.MinPrice == nil {
				e.MinPrice, e.MinInclusive, e.MinPhrase = intPtr(lo), true, m[0]
			}
			if e.MaxPrice == nil {
				e.MaxPrice, e.MaxInclusive, e.MaxPhrase = intPtr(hi), true, m[0]
			}
		}
	}
}

// splitAmount parses the whole-rupee part of an amount such as "299.50" and
// reports whether it has a non-zero fraction. Amounts that do not fit in an
// int are rejected.
func splitAmount(raw string) (n int, frac bool, ok bool) {
	whole, fraction, _ := strings.Cut(raw, ".")
	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, false, false
	}
	return n, strings.Trim(fraction, "0") != "", true
}

// maxBound is the largest whole price allowed by an upper bound of raw:
// floor(raw), or raw-1 when a strict bound names a whole amount.
func maxBound(raw string, strict bool) (int, bool) {
	n, frac, ok := splitAmount(raw)
	if !ok {
		return 0, false
	}
	if strict && !frac {
		return n - 1, true
	}
	return n, true
}

// minBound is the smallest whole price allowed by a lower bound of raw:
// ceil(raw), or raw+1 when a strict bound names a whole amount.
func minBound(raw string, strict bool) (int, bool) {
	n, frac, ok := splitAmount(raw)
	if !ok {
		return 0, false
	}
	if !strict && !frac {
		return n, true
	}
	if n == math.MaxInt {
		return 0, false
	}
	return n + 1, true
}

func amountLess(a, b string) bool {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return false
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return false
	}
	return x < y
}
