package journal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"liferpg/internal/engine"
)

var (
	keywordSets = func() map[engine.DomainID]wordSet {
		m := make(map[engine.DomainID]wordSet, len(domainKeywords))
		for id, words := range domainKeywords {
			m[id] = newWordSet(words)
		}
		return m
	}()
	positiveSet = newWordSet(positiveWords)
	negativeSet = newWordSet(negativeWords)
)

// tokenize folds case and splits on anything that is not a letter, digit or apostrophe.
func tokenize(s string) []string {
	folded := cases.Fold().String(s)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// AnalyzeOffline scores a note with the keyword tables.
func AnalyzeOffline(n Note) OfflineAnalysis {
	tokens := tokenize(n.Text)
	hits := make(map[engine.DomainID]int)
	pos, neg := 0, 0
	for _, tok := range tokens {
		for id, set := range keywordSets {
			if set.has(tok) {
				hits[id]++
			}
		}
		if positiveSet.has(tok) {
			pos++
		}
		if negativeSet.has(tok) {
			neg++
		}
	}

	rel := make(map[engine.DomainID]int, len(engine.DomainOrder))
	for _, id := range engine.DomainOrder {
		rel[id] = min(MaxRelevance, 2*hits[id])
	}
	return OfflineAnalysis{Source: n, Relevance: rel, Sentiment: pos - neg}
}
