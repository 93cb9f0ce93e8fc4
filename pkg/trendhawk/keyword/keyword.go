// Package keyword turns raw titles and queries into canonical keyword sets.
// Every analyzer aggregates over these sets, so extraction must be
// deterministic and side-effect free.
package keyword

import (
	"sort"
	"strings"
	"unicode"
)

// minLength is the exclusive lower bound on keyword length; tokens of one
// or two runes carry almost no signal in short titles.
const minLength = 2

// Extractor derives keyword sets from free text using a fixed stopword list.
type Extractor struct {
	stopwords map[string]struct{}
}

// NewExtractor creates an extractor with the built-in stopword list plus
// any extra terms (e.g. from configuration).
func NewExtractor(extra ...string) *Extractor {
	stops := make(map[string]struct{}, len(defaultStopwords)+len(extra))
	for _, w := range defaultStopwords {
		stops[w] = struct{}{}
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			stops[w] = struct{}{}
		}
	}
	return &Extractor{stopwords: stops}
}

// Normalize lowercases text, replaces every non-word, non-space rune with a
// space and collapses runs of whitespace into single spaces.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	space := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			space = false
			b.WriteRune(unicode.ToLower(r))
		default:
			if b.Len() > 0 && !space {
				b.WriteByte(' ')
			}
			space = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Keywords extracts the set of content-bearing tokens from text.
// Duplicates within one text collapse to a single entry; empty or
// whitespace-only input yields an empty set.
func (e *Extractor) Keywords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(Normalize(text)) {
		if len(word) <= minLength {
			continue
		}
		if _, stop := e.stopwords[word]; stop {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// IsStopword reports whether word is filtered by this extractor.
func (e *Extractor) IsStopword(word string) bool {
	_, ok := e.stopwords[strings.ToLower(word)]
	return ok
}

// AddStopword adds a word to the extractor's stopword list.
func (e *Extractor) AddStopword(word string) {
	e.stopwords[strings.ToLower(word)] = struct{}{}
}

// Sorted returns the members of a keyword set in lexicographic order.
func Sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members of a present in b, sorted.
func Intersect(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
