package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// Coded yes/no values and their decoded forms. A filter value from the
// parser may be a code while the indexed value is already decoded, so both
// sides normalize through these sets.
var (
	yesCodes = map[string]struct{}{"yes": {}, "001": {}, "true": {}, "1": {}}
	noCodes  = map[string]struct{}{"no": {}, "002": {}, "false": {}, "2": {}, "0": {}}
)

// QueryExecutor runs parsed queries directly against the indexed chunks.
// Every value it returns comes from the decoded fields written at index
// time, never from a model, so answers on this path cannot hallucinate.
//
// Values in DecodedFields are already human-readable. Decoding again here
// would double-decode and produce garbage.
type QueryExecutor struct {
	chunks []entities.ProposalChunk
}

func NewQueryExecutor(chunks []entities.ProposalChunk) *QueryExecutor {
	return &QueryExecutor{chunks: chunks}
}

// Execute routes a parsed query to the matching strategy.
func (e *QueryExecutor) Execute(parsed *entities.ParsedQuery) *entities.QueryResult {
	switch {
	case parsed.Intent == entities.IntentLookup && parsed.QuoteID != "":
		return e.executeLookup(parsed)
	case parsed.Intent == entities.IntentLookup:
		return e.executeEntityLookup(parsed)
	case parsed.QuoteID == "" && e.shouldEntityLookup(parsed):
		// The parser said count/list but the question is really asking for
		// a named entity's field value.
		return e.executeEntityLookup(parsed)
	case parsed.Intent == entities.IntentCount:
		return e.executeCount(parsed)
	case parsed.Intent == entities.IntentList:
		return e.executeList(parsed)
	case parsed.Intent == entities.IntentCompare:
		return e.executeCompare(parsed)
	default:
		return e.executeGeneral(parsed)
	}
}

// fieldMatchScore scores how well a requested field name matches an actual
// one. The field name is the decode routing key, so matching must stay on
// names and never on values.
func fieldMatchScore(requested, actual string) int {
	req := normalizeFieldName(requested)
	act := normalizeFieldName(actual)

	if req == act {
		return 100
	}
	if strings.Contains(act, req) || strings.Contains(req, act) {
		shorter := req
		if len(act) < len(req) {
			shorter = act
		}
		return 50 + len(shorter)
	}

	noise := map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "of": {}, "in": {},
		"for": {}, "is": {}, "do": {}, "you": {}, "label": {},
	}
	reqWords := wordSet(req, noise)
	actWords := wordSet(act, noise)
	if len(reqWords) == 0 {
		return 0
	}

	overlap := 0
	for w := range reqWords {
		if _, ok := actWords[w]; ok {
			overlap++
		}
	}
	return overlap * 10
}

func normalizeFieldName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_label", "")
	return strings.ReplaceAll(name, "_", " ")
}

func wordSet(s string, noise map[string]struct{}) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if _, skip := noise[w]; !skip {
			set[w] = struct{}{}
		}
	}
	return set
}

// searchFields merges raw and decoded fields, decoded values winning.
func searchFields(chunk entities.ProposalChunk) map[string]string {
	fields := make(map[string]string, len(chunk.Fields)+len(chunk.DecodedFields))
	for name, value := range chunk.Fields {
		fields[name] = stringify(value)
	}
	for name, value := range chunk.DecodedFields {
		fields[name] = value
	}
	return fields
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func (e *QueryExecutor) executeLookup(parsed *entities.ParsedQuery) *entities.QueryResult {
	quoteID := parsed.QuoteID
	var results []entities.MatchedField

	for _, chunk := range e.chunks {
		if chunk.QuoteID != quoteID {
			continue
		}
		fields := searchFields(chunk)
		if len(fields) == 0 {
			continue
		}

		for _, outputField := range parsed.OutputFields {
			if name, value, ok := bestFieldMatch(outputField, fields); ok {
				results = append(results, entities.MatchedField{
					QuoteID: quoteID, Field: name, Value: value,
				})
			}
		}
		if len(results) == 0 {
			for _, target := range parsed.TargetFields {
				if name, value, ok := bestFieldMatch(target, fields); ok {
					results = append(results, entities.MatchedField{
						QuoteID: quoteID, Field: name, Value: value,
					})
				}
			}
		}
	}

	results = dedupeMatches(results)
	if len(results) == 0 {
		return &entities.QueryResult{
			Summary: fmt.Sprintf("No matching fields found for %s", quoteID),
		}
	}

	details := make([]string, 0, len(results))
	for _, r := range results {
		details = append(details, fmt.Sprintf("%s: %s", fieldTitle(r.Field), r.Value))
	}
	return &entities.QueryResult{
		Success: true,
		Data:    results,
		Count:   len(results),
		Summary: fmt.Sprintf("Found %d field(s) for %s", len(results), quoteID),
		Details: details,
	}
}

func bestFieldMatch(requested string, fields map[string]string) (string, string, bool) {
	bestScore := 0
	var bestName, bestValue string
	for _, name := range sortedFieldNames(fields) {
		if score := fieldMatchScore(requested, name); score > bestScore {
			bestScore = score
			bestName = name
			bestValue = fields[name]
		}
	}
	return bestName, bestValue, bestScore >= 10
}

// sortedFieldNames keeps tie-breaking deterministic across runs.
func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dedupeMatches(results []entities.MatchedField) []entities.MatchedField {
	type key struct{ quoteID, field string }
	seen := make(map[key]struct{}, len(results))
	unique := results[:0]
	for _, r := range results {
		k := key{r.QuoteID, r.Field}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

func fieldTitle(fieldName string) string {
	return titleWords(normalizeFieldName(fieldName))
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// shouldEntityLookup catches questions like "how much cash does Heritage
// Gold keep?" that the parser classified as count but that really ask for
// one entity's field value.
func (e *QueryExecutor) shouldEntityLookup(parsed *entities.ParsedQuery) bool {
	hasDataField := false
	for _, f := range append(append([]string{}, parsed.OutputFields...), parsed.TargetFields...) {
		lower := strings.ToLower(f)
		if !strings.Contains(lower, "business_name") && !strings.Contains(lower, "person_in_charge") {
			hasDataField = true
			break
		}
	}
	if !hasDataField {
		return false
	}

	if parsed.FilterContains != "" && e.knownEntityIn(parsed.FilterContains) != "" {
		return true
	}
	return parsed.RawQuery != "" && e.knownEntityIn(parsed.RawQuery) != ""
}

// knownEntityIn finds a known person or business name inside the text,
// longest names first so partial names cannot shadow full ones.
func (e *QueryExecutor) knownEntityIn(text string) string {
	textLower := strings.ToLower(text)

	names := make(map[string]struct{})
	for _, chunk := range e.chunks {
		if name := strings.TrimSpace(chunk.UserName); name != "" {
			names[name] = struct{}{}
		}
		for fieldName, value := range searchFields(chunk) {
			lower := strings.ToLower(fieldName)
			if !strings.Contains(lower, "business_name") && !strings.Contains(lower, "person_in_charge") {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.ToLower(value) {
			case "", "unknown", "none":
			default:
				names[value] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	for _, name := range sorted {
		if strings.Contains(textLower, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

func (e *QueryExecutor) executeEntityLookup(parsed *entities.ParsedQuery) *entities.QueryResult {
	searchName := strings.ToLower(strings.TrimSpace(parsed.FilterContains))
	if searchName == "" {
		if extracted := e.knownEntityIn(parsed.RawQuery); extracted != "" {
			searchName = strings.ToLower(strings.TrimSpace(extracted))
		}
	}
	if searchName == "" {
		return e.executeGeneral(parsed)
	}

	outputFields := append([]string{}, parsed.OutputFields...)
	if parsed.FilterField != "" && parsed.FilterValue == "" && !containsString(outputFields, parsed.FilterField) {
		outputFields = append(outputFields, parsed.FilterField)
	}
	for _, tf := range parsed.TargetFields {
		if !containsString(outputFields, tf) {
			outputFields = append(outputFields, tf)
		}
	}
	if len(outputFields) == 0 {
		return e.executeGeneral(parsed)
	}

	// Step 1: find the proposals whose names match.
	matchedQuotes := make(map[string]string)
	var matchedOrder []string
	for _, chunk := range e.chunks {
		if chunk.QuoteID == "" {
			continue
		}
		if _, seen := matchedQuotes[chunk.QuoteID]; seen {
			continue
		}

		found := false
		userName := strings.ToLower(strings.TrimSpace(chunk.UserName))
		if userName != "" && (strings.Contains(userName, searchName) || strings.Contains(searchName, userName)) {
			found = true
		}
		if !found {
			for fieldName, value := range searchFields(chunk) {
				lower := strings.ToLower(fieldName)
				if !strings.Contains(lower, "person_in_charge") && !strings.Contains(lower, "business_name") {
					continue
				}
				valLower := strings.ToLower(strings.TrimSpace(value))
				if valLower != "" && (strings.Contains(valLower, searchName) || strings.Contains(searchName, valLower)) {
					found = true
					break
				}
			}
		}
		if found {
			matchedQuotes[chunk.QuoteID] = e.fieldValue(chunk, "business_name")
			matchedOrder = append(matchedOrder, chunk.QuoteID)
		}
	}

	if len(matchedQuotes) == 0 {
		display := strings.TrimSpace(parsed.FilterContains)
		if display == "" {
			display = searchName
		}
		// A resolved name with no matching record is a definitive answer,
		// not a failed parse.
		return &entities.QueryResult{
			Success: true,
			Summary: fmt.Sprintf("No proposal found for '%s'", display),
		}
	}

	// Step 2: pull the requested fields from every chunk of each match.
	var results []entities.MatchedField
	for _, quoteID := range matchedOrder {
		businessName := matchedQuotes[quoteID]
		retrieved := make(map[string]string)
		var retrievedOrder []string

		for _, chunk := range e.chunks {
			if chunk.QuoteID != quoteID {
				continue
			}
			fields := searchFields(chunk)
			for _, outField := range outputFields {
				if _, done := retrieved[outField]; done {
					continue
				}
				if name, value, ok := bestFieldMatch(outField, fields); ok {
					if _, dup := retrieved[name]; !dup {
						retrieved[name] = value
						retrievedOrder = append(retrievedOrder, name)
					}
				}
			}
		}

		if len(retrievedOrder) > 0 {
			for _, name := range retrievedOrder {
				results = append(results, entities.MatchedField{
					QuoteID:      quoteID,
					BusinessName: businessName,
					Field:        name,
					Value:        retrieved[name],
				})
			}
		} else {
			results = append(results, entities.MatchedField{
				QuoteID:      quoteID,
				BusinessName: businessName,
				Field:        strings.Join(outputFields, ", "),
				Value:        "Not found",
			})
		}
	}

	details := make([]string, 0, len(results))
	for _, r := range results {
		details = append(details, fmt.Sprintf("%s (%s): %s = %s",
			r.BusinessName, r.QuoteID, fieldTitle(r.Field), r.Value))
	}
	return &entities.QueryResult{
		Success: true,
		Data:    results,
		Count:   len(results),
		Summary: fmt.Sprintf("Found data for %d matching proposal(s)", len(matchedQuotes)),
		Details: details,
	}
}

func (e *QueryExecutor) executeCount(parsed *entities.ParsedQuery) *entities.QueryResult {
	matchingQuotes := make(map[string]struct{})
	var matchingData []entities.MatchedField

	for _, chunk := range e.chunks {
		if chunk.QuoteID == "" {
			continue
		}
		if _, seen := matchingQuotes[chunk.QuoteID]; seen {
			continue
		}

		fields := searchFields(chunk)
		chunkText := strings.ToLower(chunk.Text)

		if parsed.FilterContains != "" {
			term := strings.ToLower(parsed.FilterContains)
			found := strings.Contains(chunkText, term)
			if !found {
				for _, value := range fields {
					if strings.Contains(strings.ToLower(value), term) {
						found = true
						break
					}
				}
			}
			if !found {
				for _, topVal := range []string{chunk.RiskLocation, chunk.UserName} {
					if topVal != "" && strings.Contains(strings.ToLower(topVal), term) {
						found = true
						break
					}
				}
			}
			if found {
				matchingQuotes[chunk.QuoteID] = struct{}{}
				matchingData = append(matchingData, entities.MatchedField{
					QuoteID:      chunk.QuoteID,
					BusinessName: e.fieldValue(chunk, "business_name"),
					Field:        chunk.Section,
				})
			}
			continue
		}

		if parsed.FilterField != "" && parsed.FilterValue != "" {
			expected := strings.ToLower(strings.TrimSpace(parsed.FilterValue))
			filterKey := strings.ReplaceAll(strings.ToLower(parsed.FilterField), "_label", "")

			var matchedField, matchedValue string
			matched := false
			for _, fieldName := range sortedFieldNames(fields) {
				if !strings.Contains(strings.ReplaceAll(strings.ToLower(fieldName), "_label", ""), filterKey) {
					continue
				}
				valueLower := strings.ToLower(strings.TrimSpace(fields[fieldName]))

				switch {
				case inSet(expected, yesCodes) && inSet(valueLower, yesCodes):
					matched = true
				case inSet(expected, noCodes) && inSet(valueLower, noCodes):
					matched = true
				case valueLower == expected:
					matched = true
				case len(expected) > 2 && strings.Contains(valueLower, expected):
					matched = true
				}
				if matched {
					matchedField = fieldName
					matchedValue = fields[fieldName]
					break
				}
			}

			if !matched {
				topLevel := map[string]string{
					"risk_location": chunk.RiskLocation,
					"user_name":     chunk.UserName,
				}
				for topKey, topVal := range topLevel {
					if strings.Contains(topKey, filterKey) &&
						strings.Contains(strings.ToLower(strings.TrimSpace(topVal)), expected) {
						matched = true
						matchedField = topKey
						matchedValue = topVal
						break
					}
				}
			}

			if matched {
				matchingQuotes[chunk.QuoteID] = struct{}{}
				matchingData = append(matchingData, entities.MatchedField{
					QuoteID:      chunk.QuoteID,
					BusinessName: e.fieldValue(chunk, "business_name"),
					Field:        matchedField,
					Value:        matchedValue,
				})
			}
		}
	}

	count := len(matchingQuotes)
	if count == 0 {
		return &entities.QueryResult{
			Success: true,
			Summary: "0 proposals match the criteria",
		}
	}

	details := make([]string, 0, len(matchingData))
	for _, d := range matchingData {
		details = append(details, nameWithQuote(d))
	}
	return &entities.QueryResult{
		Success: true,
		Data:    matchingData,
		Count:   count,
		Summary: fmt.Sprintf("%d proposal(s) match the criteria", count),
		Details: details,
	}
}

func (e *QueryExecutor) executeList(parsed *entities.ParsedQuery) *entities.QueryResult {
	result := e.executeCount(parsed)
	if result.Success && len(result.Data) > 0 {
		details := make([]string, 0, len(result.Data))
		for _, d := range result.Data {
			name := d.BusinessName
			if name == "" {
				name = "Unknown"
			}
			details = append(details, fmt.Sprintf("%s (%s)", name, d.QuoteID))
		}
		result.Details = details
	}
	return result
}

func (e *QueryExecutor) executeCompare(parsed *entities.ParsedQuery) *entities.QueryResult {
	type candidate struct {
		match   entities.MatchedField
		numeric float64
	}
	var candidates []candidate

	for _, chunk := range e.chunks {
		if chunk.QuoteID == "" || len(chunk.Fields) == 0 {
			continue
		}
		// Raw fields only. Decoded values may carry currency prefixes or
		// labels that break numeric parsing.
		for _, target := range parsed.TargetFields {
			for _, fieldName := range sortedKeysAny(chunk.Fields) {
				if fieldMatchScore(target, fieldName) < 10 {
					continue
				}
				raw := stringify(chunk.Fields[fieldName])
				num, ok := parseNumeric(raw)
				if !ok {
					continue
				}
				candidates = append(candidates, candidate{
					match: entities.MatchedField{
						QuoteID:      chunk.QuoteID,
						BusinessName: e.fieldValue(chunk, "business_name"),
						Field:        fieldName,
						Value:        raw,
					},
					numeric: num,
				})
			}
		}
	}

	if len(candidates) == 0 {
		return &entities.QueryResult{Summary: "Could not find comparable values"}
	}

	rawLower := strings.ToLower(parsed.RawQuery)
	isMax := strings.Contains(rawLower, "highest") ||
		strings.Contains(rawLower, "maximum") ||
		strings.Contains(rawLower, "most")

	sort.SliceStable(candidates, func(i, j int) bool {
		if isMax {
			return candidates[i].numeric > candidates[j].numeric
		}
		return candidates[i].numeric < candidates[j].numeric
	})

	best := candidates[0].match
	word := "lowest"
	if isMax {
		word = "highest"
	}
	return &entities.QueryResult{
		Success: true,
		Data:    []entities.MatchedField{best},
		Count:   1,
		Summary: fmt.Sprintf("The %s value is %s for %s (%s)", word, best.Value, best.BusinessName, best.QuoteID),
		Details: []string{fmt.Sprintf("%s (%s): %s", best.BusinessName, best.QuoteID, best.Value)},
	}
}

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

var generalIgnoreWords = map[string]struct{}{
	"what": {}, "how": {}, "many": {}, "which": {}, "the": {}, "are": {},
	"have": {}, "has": {}, "with": {}, "and": {}, "for": {}, "their": {},
	"names": {}, "all": {},
}

func (e *QueryExecutor) executeGeneral(parsed *entities.ParsedQuery) *entities.QueryResult {
	var searchTerms []string
	if parsed.FilterContains != "" {
		searchTerms = append(searchTerms, strings.ToLower(parsed.FilterContains))
	}
	for _, w := range wordPattern.FindAllString(strings.ToLower(parsed.RawQuery), -1) {
		if _, skip := generalIgnoreWords[w]; !skip {
			searchTerms = append(searchTerms, w)
		}
	}

	seenQuotes := make(map[string]struct{})
	var matchingData []entities.MatchedField

	for _, chunk := range e.chunks {
		if chunk.QuoteID == "" {
			continue
		}
		if _, seen := seenQuotes[chunk.QuoteID]; seen {
			continue
		}
		fields := searchFields(chunk)
		if len(fields) == 0 {
			continue
		}

		for _, fieldName := range sortedFieldNames(fields) {
			valueLower := strings.ToLower(fields[fieldName])
			fieldLower := strings.ToLower(fieldName)

			matched := false
			for _, term := range searchTerms {
				if strings.Contains(valueLower, term) || strings.Contains(fieldLower, term) {
					matched = true
					break
				}
			}
			if matched {
				seenQuotes[chunk.QuoteID] = struct{}{}
				matchingData = append(matchingData, entities.MatchedField{
					QuoteID:      chunk.QuoteID,
					BusinessName: e.fieldValue(chunk, "business_name"),
					Field:        fieldName,
					Value:        fields[fieldName],
				})
				break
			}
		}
	}

	if len(matchingData) == 0 {
		return &entities.QueryResult{Summary: "No matching data found"}
	}

	details := make([]string, 0, len(matchingData))
	for _, d := range matchingData {
		details = append(details, nameWithQuote(d))
	}
	return &entities.QueryResult{
		Success: true,
		Data:    matchingData,
		Count:   len(matchingData),
		Summary: fmt.Sprintf("Found %d matching proposal(s)", len(matchingData)),
		Details: details,
	}
}

// fieldValue finds a decoded value by field name pattern, looking at the
// given chunk first and then at the sibling chunks of the same proposal.
func (e *QueryExecutor) fieldValue(chunk entities.ProposalChunk, pattern string) string {
	patternLower := strings.ToLower(pattern)

	lookup := func(fields map[string]string) (string, bool) {
		for _, name := range sortedFieldNames(fields) {
			if strings.Contains(strings.ToLower(name), patternLower) {
				return fields[name], true
			}
		}
		return "", false
	}

	if value, ok := lookup(searchFields(chunk)); ok {
		return value
	}
	for _, other := range e.chunks {
		if other.QuoteID != chunk.QuoteID || other.ID == chunk.ID {
			continue
		}
		if value, ok := lookup(searchFields(other)); ok {
			return value
		}
	}
	return "Unknown"
}

func parseNumeric(value string) (float64, bool) {
	cleaned := strings.ReplaceAll(value, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "RM", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func inSet(value string, set map[string]struct{}) bool {
	_, ok := set[value]
	return ok
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func nameWithQuote(d entities.MatchedField) string {
	name := d.BusinessName
	if name == "" {
		name = d.QuoteID
	}
	return fmt.Sprintf("%s (%s)", name, d.QuoteID)
}

// sortedKeysAny is sortedFieldNames for raw field maps.
func sortedKeysAny(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
