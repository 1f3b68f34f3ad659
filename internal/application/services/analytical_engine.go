package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// Field name pattern categories for fuzzy matching.
var (
	cctvPatterns    = []string{"cctv", "camera", "recording", "surveillance"}
	alarmPatterns   = []string{"alarm", "security system", "monitoring"}
	guardPatterns   = []string{"guard", "armed", "security personnel"}
	transitPatterns = []string{"transit", "armoured", "vehicle", "transport"}
	claimPatterns   = []string{"claim", "loss", "incident"}
	safePatterns    = []string{"safe", "vault", "storage", "strong room"}
	doorPatterns    = []string{"door", "access", "entry"}
	premisePatterns = []string{"premise", "building", "location", "shop"}
)

var analyticalYesValues = []string{"yes", "001", "true", "1"}
var analyticalNoValues = []string{"no", "002", "false", "0"}

var patternCategories = []struct {
	category string
	patterns []string
}{
	{"cctv", cctvPatterns},
	{"alarm", alarmPatterns},
	{"guard", guardPatterns},
	{"transit", transitPatterns},
	{"claim", claimPatterns},
	{"safe", safePatterns},
	{"door", doorPatterns},
	{"premise", premisePatterns},
}

// AnalyticalEngine answers aggregation queries by scanning the chunk set
// directly. It never calls a model; when a question cannot be mapped to
// data columns it returns empty and the caller falls through to retrieval.
type AnalyticalEngine struct {
	chunks []entities.ProposalChunk
}

func NewAnalyticalEngine(chunks []entities.ProposalChunk) *AnalyticalEngine {
	return &AnalyticalEngine{chunks: chunks}
}

// Run executes an analytical query. The empty string means the engine
// could not map the question to data.
func (a *AnalyticalEngine) Run(query string) string {
	queryLower := strings.ToLower(query)

	if containsAny(queryLower, []string{"how many", "count", "total", "number of"}) {
		return a.handleCount(queryLower)
	}
	if containsAny(queryLower, []string{"list all", "which proposals", "which records", "show all", "what are all"}) {
		return a.handleList(queryLower)
	}
	if containsAny(queryLower, []string{"highest", "lowest", "maximum", "minimum", "most", "least", "top", "bottom"}) {
		return a.handleComparison(queryLower)
	}
	return a.handleGeneral(queryLower)
}

func (a *AnalyticalEngine) handleCount(query string) string {
	fieldPattern, expected := extractCondition(query)
	if fieldPattern == "" {
		return ""
	}

	var matchingIDs []string
	seen := make(map[string]struct{})
	for _, chunk := range a.chunks {
		if len(chunk.Fields) == 0 {
			continue
		}
		for _, fieldName := range sortedKeysAny(chunk.Fields) {
			if !fieldMatchesPattern(strings.ToLower(fieldName), fieldPattern) {
				continue
			}
			if !valueMatches(stringify(chunk.Fields[fieldName]), expected) {
				continue
			}
			if chunk.QuoteID != "" {
				if _, dup := seen[chunk.QuoteID]; !dup {
					seen[chunk.QuoteID] = struct{}{}
					matchingIDs = append(matchingIDs, chunk.QuoteID)
				}
			}
			break
		}
	}

	if len(matchingIDs) == 0 {
		return "0 proposals match the criteria."
	}
	sort.Strings(matchingIDs)
	return fmt.Sprintf("%d proposal(s) match the criteria. Quote IDs: %s",
		len(matchingIDs), strings.Join(matchingIDs, ", "))
}

func (a *AnalyticalEngine) handleList(query string) string {
	fieldPattern, expected := extractCondition(query)
	if fieldPattern == "" {
		return ""
	}

	type record struct {
		quoteID, field, value string
	}
	var records []record
	seen := make(map[string]struct{})

	for _, chunk := range a.chunks {
		if len(chunk.Fields) == 0 {
			continue
		}
		if _, dup := seen[chunk.QuoteID]; dup {
			continue
		}
		for _, fieldName := range sortedKeysAny(chunk.Fields) {
			if !fieldMatchesPattern(strings.ToLower(fieldName), fieldPattern) {
				continue
			}
			value := stringify(chunk.Fields[fieldName])
			if !valueMatches(value, expected) {
				continue
			}
			seen[chunk.QuoteID] = struct{}{}
			records = append(records, record{chunk.QuoteID, fieldName, value})
			break
		}
	}

	if len(records) == 0 {
		return "No proposals match the criteria."
	}

	lines := []string{fmt.Sprintf("Found %d matching proposal(s):", len(records))}
	limit := len(records)
	if limit > 20 {
		limit = 20
	}
	for _, r := range records[:limit] {
		lines = append(lines, fmt.Sprintf("- %s: %s = %s", r.quoteID, r.field, r.value))
	}
	if len(records) > 20 {
		lines = append(lines, fmt.Sprintf("... and %d more.", len(records)-20))
	}
	return strings.Join(lines, "\n")
}

func (a *AnalyticalEngine) handleComparison(query string) string {
	isMax := containsAny(query, []string{"highest", "maximum", "most", "top"})

	numericPatterns := []struct{ keyword, pattern string }{
		{"sum assured", "sum_assured"},
		{"claim amount", "amount_of_claim"},
		{"stock", "maximum_stock"},
		{"value", "value"},
	}
	targetPattern := ""
	for _, np := range numericPatterns {
		if strings.Contains(query, np.keyword) {
			targetPattern = np.pattern
			break
		}
	}
	if targetPattern == "" {
		return ""
	}

	type candidate struct {
		numeric float64
		quoteID string
		raw     string
	}
	var candidates []candidate
	for _, chunk := range a.chunks {
		if len(chunk.Fields) == 0 {
			continue
		}
		for _, fieldName := range sortedKeysAny(chunk.Fields) {
			if !strings.Contains(strings.ToLower(fieldName), targetPattern) {
				continue
			}
			raw := stringify(chunk.Fields[fieldName])
			if num, ok := extractNumeric(raw); ok {
				candidates = append(candidates, candidate{num, chunk.QuoteID, raw})
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if isMax {
			return candidates[i].numeric > candidates[j].numeric
		}
		return candidates[i].numeric < candidates[j].numeric
	})

	word := "lowest"
	if isMax {
		word = "highest"
	}
	best := candidates[0]
	return fmt.Sprintf("The %s value is %s for proposal %s.", word, best.raw, best.quoteID)
}

func (a *AnalyticalEngine) handleGeneral(query string) string {
	fieldPattern, _ := extractCondition(query)
	if fieldPattern == "" {
		return ""
	}

	valueCounts := make(map[string]int)
	for _, chunk := range a.chunks {
		for fieldName, value := range chunk.Fields {
			if fieldMatchesPattern(strings.ToLower(fieldName), fieldPattern) {
				valueCounts[stringify(value)]++
			}
		}
	}
	if len(valueCounts) == 0 {
		return ""
	}

	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(valueCounts))
	for value, count := range valueCounts {
		entries = append(entries, entry{value, count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})

	lines := []string{"Distribution for matching fields:"}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s: %d proposal(s)", e.value, e.count))
	}
	return strings.Join(lines, "\n")
}

// extractCondition maps a question to a field pattern category and the
// value condition it implies.
func extractCondition(query string) (string, string) {
	fieldPattern := ""
	for _, pc := range patternCategories {
		for _, p := range pc.patterns {
			if strings.Contains(query, p) {
				fieldPattern = pc.category
				break
			}
		}
		if fieldPattern != "" {
			break
		}
	}

	expected := ""
	switch {
	case strings.Contains(query, "no ") || strings.Contains(query, "without") ||
		strings.Contains(query, "don't") || strings.Contains(query, "do not"):
		expected = "no"
	case strings.Contains(query, "have") || strings.Contains(query, "use") ||
		strings.Contains(query, "with"):
		expected = "yes"
	case strings.Contains(query, "maintenance"):
		expected = "yes"
	}
	if strings.Contains(query, "no claim") {
		expected = "no claim"
	}
	if strings.Contains(query, "claims within") || strings.Contains(query, "has claim") {
		expected = "claims"
	}
	return fieldPattern, expected
}

func fieldMatchesPattern(fieldName, category string) bool {
	patterns := []string{category}
	for _, pc := range patternCategories {
		if pc.category == category {
			patterns = pc.patterns
			break
		}
	}
	for _, p := range patterns {
		if strings.Contains(fieldName, p) {
			return true
		}
	}
	return false
}

func valueMatches(value, expected string) bool {
	if expected == "" {
		return true
	}
	valueLower := strings.ToLower(value)

	switch expected {
	case "yes":
		return containsString(analyticalYesValues, valueLower)
	case "no":
		return containsString(analyticalNoValues, valueLower)
	case "no claim":
		return strings.Contains(valueLower, "no claim") || valueLower == "001"
	case "claims":
		return strings.Contains(valueLower, "claim") && !strings.Contains(valueLower, "no claim")
	}
	return strings.Contains(valueLower, expected)
}

var numericFragment = regexp.MustCompile(`[\d.]+`)

// extractNumeric pulls the first number out of a possibly formatted value
// like "RM 500,000".
func extractNumeric(value string) (float64, bool) {
	cleaned := strings.ReplaceAll(value, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, "RM", "")
	cleaned = strings.TrimSpace(cleaned)

	match := numericFragment.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// QuoteIDs returns the sorted unique quote IDs in the dataset.
func (a *AnalyticalEngine) QuoteIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, chunk := range a.chunks {
		if chunk.QuoteID == "" {
			continue
		}
		if _, dup := seen[chunk.QuoteID]; !dup {
			seen[chunk.QuoteID] = struct{}{}
			ids = append(ids, chunk.QuoteID)
		}
	}
	sort.Strings(ids)
	return ids
}

// RecordCount reports the number of unique proposals.
func (a *AnalyticalEngine) RecordCount() int {
	return len(a.QuoteIDs())
}
