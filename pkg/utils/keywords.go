package utils

import (
	"errors"
	"regexp"
	"sort"
	"unicode/utf8"
)

// ErrEmptyVocabulary is returned when a document has no term of two or more characters.
var ErrEmptyVocabulary = errors.New("empty vocabulary: document contains no usable terms")

var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ExtractKeywords returns up to limit distinct terms of a single document, picked by
// frequency (ties broken alphabetically) and returned in alphabetical order.
// With one document every term shares the same inverse document frequency, so this
// is the top-k selection of a tf-idf vectorizer capped at limit features.
func ExtractKeywords(text string, limit int) ([]string, error) {
	counts := make(map[string]int)
	for _, term := range termPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(term) < 2 {
			continue
		}
		counts[term]++
	}
	if len(counts) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms, nil
}
