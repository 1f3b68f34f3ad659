package services

import (
	"regexp"
	"strings"
)

// QueryClass routes a question to the engine that can answer it.
type QueryClass string

const (
	ClassAnalytical QueryClass = "analytical"
	ClassStructured QueryClass = "structured"
	ClassSemantic   QueryClass = "semantic"
)

var quoteIDPattern = regexp.MustCompile(`(?i)MYJADEQT\d+`)

var aggregationSignals = []string{
	"how many", "count", "total", "average", "sum",
	"which proposals", "list all", "compare", "most common",
	"percentage", "majority", "all proposals", "number of",
	"how much", "across all", "summarize", "aggregate",
}

var comparisonSignals = []string{
	"highest", "lowest", "maximum", "minimum", "most", "least",
	"top", "bottom", "best", "worst",
	"greater than", "less than", "more than", "fewer than",
}

var structuredFieldSignals = []string{
	"what is the", "what are the", "does", "do they",
	"is there", "are there", "show me the", "tell me the",
	"give me the", "what kind of", "what type of",
}

// ExtractQuoteID pulls the first quote reference out of a question,
// uppercased to the canonical form.
func ExtractQuoteID(query string) string {
	match := quoteIDPattern.FindString(query)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match)
}

// ClassifyQuery decides the answering strategy. Aggregation and comparison
// wording routes to the analytical path, a quote reference with a field
// question routes to structured lookup, and everything else falls through to
// semantic retrieval.
func ClassifyQuery(query string) QueryClass {
	queryLower := strings.ToLower(query)

	for _, signal := range aggregationSignals {
		if strings.Contains(queryLower, signal) {
			return ClassAnalytical
		}
	}
	for _, signal := range comparisonSignals {
		if strings.Contains(queryLower, signal) {
			return ClassAnalytical
		}
	}

	if ExtractQuoteID(query) != "" {
		for _, signal := range structuredFieldSignals {
			if strings.Contains(queryLower, signal) {
				return ClassStructured
			}
		}
	}
	return ClassSemantic
}
