package index

import (
	"regexp"
	"strings"
)

// tokenRegex matches index terms: a lowercase ASCII letter followed by one or
// more letters, digits, or underscores, on word boundaries. Input is
// lowercased before matching, so this covers all casings.
var tokenRegex = regexp.MustCompile(`\b[a-z][a-z0-9_]+\b`)

// stopWords is the fixed set of common English function words removed from
// the token stream.
var stopWords = buildStopWordMap([]string{
	"the", "a", "an", "and", "or", "but", "is", "are", "was", "were",
	"be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "must", "shall",
	"to", "of", "in", "for", "on", "with", "at", "by", "from", "as",
	"into", "through", "during", "before", "after", "above", "below",
	"this", "that", "these", "those", "it", "its", "they", "them",
	"we", "you", "i", "he", "she", "what", "which", "who", "when",
	"where", "why", "how", "all", "each", "every", "both", "few",
	"more", "most", "other", "some", "such", "no", "not", "only",
	"own", "same", "so", "than", "too", "very", "just", "can", "if",
})

// Tokenize extracts normalized index terms from text.
// Terms appear in order of occurrence and duplicates are preserved;
// downstream components compute frequencies from the multiset.
// Stopwords and terms shorter than three characters are dropped.
func Tokenize(text string) []string {
	matches := tokenRegex.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(matches))
	for _, t := range matches {
		if len(t) <= 2 {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// buildStopWordMap converts a slice of stop words to a map for lookup.
func buildStopWordMap(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = struct{}{}
	}
	return m
}
