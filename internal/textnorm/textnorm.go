// Package textnorm canonicalizes free-text requirement strings and resolves
// domain synonyms used by the matching engine.
package textnorm

import (
	"strings"
	"unicode"
)

// MaterialSynonyms maps canonical conductor materials to accepted variants.
var MaterialSynonyms = map[string][]string{
	"copper":    {"cu", "copper"},
	"aluminium": {"al", "aluminium", "aluminum"},
}

// InsulationSynonyms maps canonical insulation types to accepted variants.
var InsulationSynonyms = map[string][]string{
	"xlpe": {"xlpe", "cross-linked polyethylene", "cross linked polyethylene"},
	"pvc":  {"pvc", "polyvinyl chloride"},
}

// Normalize lower-cases the text, strips any character that is not a letter,
// digit or whitespace, collapses whitespace runs and trims. Idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// FuzzyContains reports whether the normalized value appears in the
// normalized haystack, directly or through any variant of its canonical
// synonym group. Matching is substring-based, not tokenized, so short
// variants like "al" can match inside unrelated words. That looseness is
// part of the contract relied on by the matcher.
func FuzzyContains(value, haystack string, synonyms map[string][]string) bool {
	v := Normalize(value)
	h := Normalize(haystack)

	if v == "" || h == "" {
		return false
	}

	if strings.Contains(h, v) {
		return true
	}

	for canonical, variants := range synonyms {
		if !inGroup(v, canonical, variants) {
			continue
		}
		if strings.Contains(h, Normalize(canonical)) {
			return true
		}
		for _, variant := range variants {
			if strings.Contains(h, Normalize(variant)) {
				return true
			}
		}
	}

	return false
}

// inGroup reports whether the normalized value belongs to the synonym group.
func inGroup(v, canonical string, variants []string) bool {
	if v == Normalize(canonical) {
		return true
	}
	for _, variant := range variants {
		if v == Normalize(variant) {
			return true
		}
	}
	return false
}
