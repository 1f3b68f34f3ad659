package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
)

// featureFilter maps a feature phrase to its field and the coded values
// meaning "has it" and "does not have it".
type featureFilter struct {
	phrase string
	field  string
	yes    string
	no     string
}

// featureFilters intercept "how many ... have X" questions before any model
// call. First matching phrase wins, so the order is load-bearing where
// phrases overlap.
var featureFilters = []featureFilter{
	{"display window", "do_you_have_display_window_label", "001", "002"},
	{"have display window", "do_you_have_display_window_label", "001", "002"},
	{"has display window", "do_you_have_display_window_label", "001", "002"},
	{"window display", "do_you_have_display_window_label", "001", "002"},
	{"wall showcase", "do_you_have_wall_showcase_label", "001", "002"},
	{"counter showcase", "do_you_have_counter_showcase_label", "001", "002"},
	{"alarm", "do_you_have_alarm_label", "001", "002"},
	{"cctv maintenance", "cctv_maintenance_contract_label", "001", "002"},
	{"cctv recording", "recording_label", "001", "002"},
	{"strong room", "do_you_have_a_strong_room_label", "001", "002"},
	{"armoured vehicle", "do_you_use_armoured_vehicle_label", "001", "002"},
	{"armed guards", "do_you_use_armed_guards_during_transit_label", "001", "002"},
	{"guards at premise", "do_you_use_guards_at_premise_label", "001", "002"},
	{"gps tracker", "installed_gps_tracker_in_transit_vehicles_label", "001", "002"},
	{"jaguar transit", "usage_of_jaguar_transit_label", "001", "002"},
	{"standard operating procedure", "standard_operating_procedure_label", "001", "002"},
	{"sop", "standard_operating_procedure_label", "001", "002"},
	{"stock records", "do_you_keep_detailed_records_of_stock_movements_label", "001", "002"},
	{"detailed records", "do_you_keep_detailed_records_of_stock_movements_label", "001", "002"},
	{"shoplifting", "shop_lifting_label", "1", "2"},
	{"shop lifting", "shop_lifting_label", "1", "2"},
	{"time locking", "time_locking_label", "001", "002"},
	{"central monitoring", "central_monitoring_stations_label", "001", "002"},
	{"alarm maintenance", "under_maintenance_contract_label", "001", "002"},
	{"fidelity guarantee", "fidelity_guarantee_insurance_add_coverage_label", "001", "002"},
	{"director house", "director_house_question_label", "001", "002"},
	{"background check", "background_checks_for_all_employees_label", "001", "002"},
}

var negationWords = []string{
	"don't have", "dont have", "do not have", "without",
	"no ", "not have", "haven't", "lack",
}

// outOfScopeIndicators mark questions the records can never answer. They are
// refused without spending a model call.
var outOfScopeIndicators = []string{
	"singapore", "indonesia", "thailand", "philippines", "vietnam",
	"average", "per year", "annually", "total across all",
	"predict", "forecast", "recommend", "should i", "which is better",
	"compare to industry", "benchmark", "market rate",
	"credit score", "credit rating", "financial rating",
	"who approved", "underwriter", "actuary",
	"monthly premium", "annual premium", "calculate premium",
}

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// parsedPayload mirrors the JSON shape the parse prompt asks for.
type parsedPayload struct {
	Intent             string   `json:"intent"`
	TargetFields       []string `json:"target_fields"`
	FilterField        string   `json:"filter_field"`
	FilterValue        any      `json:"filter_value"`
	FilterContains     string   `json:"filter_contains"`
	QuoteID            string   `json:"quote_id"`
	OutputFields       []string `json:"output_fields"`
	UnderstoodQuestion string   `json:"understood_question"`
}

// QueryParser turns natural language questions into structured queries.
// Deterministic interceptors run first; the model only sees what they
// cannot handle, and its output is validated against the known entity
// catalog afterwards.
type QueryParser struct {
	llm             providers.Generator
	knownPersons    []string
	knownBusinesses []string
}

// NewQueryParser builds a parser whose entity catalog comes from the
// indexed chunks. When the chunk set yields no names, hardcoded catalogs
// keep entity validation working.
func NewQueryParser(llm providers.Generator, chunks []entities.ProposalChunk) *QueryParser {
	p := &QueryParser{llm: llm}
	p.loadEntities(chunks)
	p.applyFallbackEntities()
	return p
}

func (p *QueryParser) loadEntities(chunks []entities.ProposalChunk) {
	persons := make(map[string]struct{})
	businesses := make(map[string]struct{})

	for _, chunk := range chunks {
		if name := strings.TrimSpace(chunk.UserName); name != "" {
			persons[name] = struct{}{}
		}
		fields := chunk.DecodedFields
		for fieldName, value := range fields {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			lower := strings.ToLower(fieldName)
			if strings.Contains(lower, "person_in_charge") {
				persons[value] = struct{}{}
			}
			if strings.Contains(lower, "business_name") {
				businesses[value] = struct{}{}
			}
		}
	}

	p.knownPersons = sortedNames(persons)
	p.knownBusinesses = sortedNames(businesses)
}

func (p *QueryParser) applyFallbackEntities() {
	if len(p.knownPersons) == 0 {
		p.knownPersons = []string{
			"Somesh Das", "Rohan Mehta", "Rahul Mehta", "Ankit Verma",
			"Aamir Khan", "Suresh Kumar", "Naveen Iyer", "Kunal Shah",
			"Rakesh Pillai", "Farhan Ali", "Pranav Joshi", "Saad Rahman",
			"Vikram Nair", "Ashwin Patel", "Irfan Malik",
		}
	}
	if len(p.knownBusinesses) == 0 {
		p.knownBusinesses = []string{
			"Ja Assure IN", "FinSecure Money Services", "Mehta Pawn Services",
			"LuxGold Jewellers", "Global Money Exchange", "Secure Pawn Brokers",
			"Rapid FX Money Exchange", "Heritage Gold & Jewels",
			"Heritage Gold and Jewels", "Trust Pawn Brokers", "City FX Exchange",
			"Royal Gems & Jewels", "Royal Gems and Jewels", "Metro FX Exchange",
			"Prime Pawn Services", "Sunrise Jewel House", "Harbor FX Services",
		}
	}
}

// KnownEntity returns the catalog name mentioned in the query, if any.
// Persons are checked before businesses, then partial business names
// (first two words) as a last resort.
func (p *QueryParser) KnownEntity(query string) string {
	queryLower := strings.ToLower(query)

	for _, name := range p.knownPersons {
		if strings.Contains(queryLower, strings.ToLower(name)) {
			return name
		}
	}
	for _, name := range p.knownBusinesses {
		if strings.Contains(queryLower, strings.ToLower(name)) {
			return name
		}
	}
	for _, name := range p.knownBusinesses {
		parts := strings.Fields(strings.ToLower(name))
		if len(parts) >= 2 && strings.Contains(queryLower, parts[0]+" "+parts[1]) {
			return name
		}
	}
	return ""
}

// Parse resolves a question into a structured query. Order matters:
// deterministic count first, then out-of-scope refusal, then follow-up
// resolution, and only then the model.
func (p *QueryParser) Parse(ctx context.Context, query string, history *ContextManager) *entities.ParsedQuery {
	if parsed := p.tryDeterministicCount(query); parsed != nil {
		return parsed
	}

	if p.isOutOfScope(query) {
		return &entities.ParsedQuery{
			Intent:             entities.IntentOutOfScope,
			UnderstoodQuestion: query,
			RawQuery:           query,
		}
	}

	if history != nil && history.IsFollowupReference(query) {
		return history.ResolveFollowup(query)
	}

	historySection := ""
	if history != nil {
		historySection = history.HistorySection(query)
	}
	prompt := fmt.Sprintf(queryParsePrompt, availableFields, historySection, query)

	response, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("query parse model call failed, using fallback parse")
		return p.fallbackParse(query)
	}

	match := jsonObjectPattern.FindString(response)
	if match == "" {
		return p.fallbackParse(query)
	}

	var payload parsedPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		log.Warn().Err(err).Msg("query parse response was not valid JSON, using fallback parse")
		return p.fallbackParse(query)
	}

	parsed := &entities.ParsedQuery{
		Intent:             normalizeIntent(payload.Intent, query),
		TargetFields:       payload.TargetFields,
		FilterField:        payload.FilterField,
		FilterValue:        stringifyFilterValue(payload.FilterValue),
		FilterContains:     payload.FilterContains,
		QuoteID:            strings.ToUpper(payload.QuoteID),
		OutputFields:       payload.OutputFields,
		UnderstoodQuestion: payload.UnderstoodQuestion,
		RawQuery:           query,
		ParseSuccess:       true,
	}
	if parsed.UnderstoodQuestion == "" {
		parsed.UnderstoodQuestion = query
	}

	// Context-bleed guard. An entity named in the question always wins; a
	// filter the question never mentions is discarded.
	if entity := p.KnownEntity(query); entity != "" {
		parsed.FilterContains = entity
	} else if parsed.FilterContains != "" &&
		!strings.Contains(strings.ToLower(query), strings.ToLower(parsed.FilterContains)) {
		parsed.FilterContains = ""
	}

	return parsed
}

func (p *QueryParser) tryDeterministicCount(query string) *entities.ParsedQuery {
	queryLower := strings.ToLower(strings.TrimSpace(query))

	if !containsAny(queryLower, []string{"how many", "count", "number of"}) {
		return nil
	}

	var matched *featureFilter
	for i := range featureFilters {
		if strings.Contains(queryLower, featureFilters[i].phrase) {
			matched = &featureFilters[i]
			break
		}
	}
	if matched == nil {
		return nil
	}

	negated := containsAny(queryLower, negationWords)
	filterValue := matched.yes
	wanted := "Yes"
	if negated {
		filterValue = matched.no
		wanted = "No"
	}

	return &entities.ParsedQuery{
		Intent:             entities.IntentCount,
		TargetFields:       []string{matched.field},
		FilterField:        matched.field,
		FilterValue:        filterValue,
		OutputFields:       []string{"business_name_label"},
		UnderstoodQuestion: fmt.Sprintf("Count proposals where %s=%s", matched.field, wanted),
		RawQuery:           query,
		ParseSuccess:       true,
	}
}

func (p *QueryParser) isOutOfScope(query string) bool {
	return containsAny(strings.ToLower(query), outOfScopeIndicators)
}

func (p *QueryParser) fallbackParse(query string) *entities.ParsedQuery {
	queryLower := strings.ToLower(query)

	var intent entities.QueryIntent
	switch {
	case containsAny(queryLower, []string{"how many", "count", "number of"}):
		intent = entities.IntentCount
	case containsAny(queryLower, []string{"list", "show", "what are", "which"}):
		intent = entities.IntentList
	case containsAny(queryLower, []string{"highest", "lowest", "maximum", "minimum"}):
		intent = entities.IntentCompare
	default:
		intent = entities.IntentLookup
	}

	return &entities.ParsedQuery{
		Intent:             intent,
		QuoteID:            ExtractQuoteID(query),
		UnderstoodQuestion: query,
		RawQuery:           query,
	}
}

var intentDelimiters = regexp.MustCompile(`[|/,\s]+`)

// normalizeIntent coerces model output like "count|list" to a single
// intent, preferring whatever the question wording supports.
func normalizeIntent(raw string, query string) entities.QueryIntent {
	raw = strings.ToLower(strings.TrimSpace(raw))
	queryLower := strings.ToLower(query)

	valid := map[string]entities.QueryIntent{
		"count":   entities.IntentCount,
		"list":    entities.IntentList,
		"lookup":  entities.IntentLookup,
		"compare": entities.IntentCompare,
	}
	if intent, ok := valid[raw]; ok {
		return intent
	}

	var found []entities.QueryIntent
	for _, part := range intentDelimiters.Split(raw, -1) {
		if intent, ok := valid[strings.TrimSpace(part)]; ok {
			found = append(found, intent)
		}
	}

	if len(found) == 0 {
		switch {
		case containsAny(queryLower, []string{"how many", "count", "number of", "total"}):
			return entities.IntentCount
		case containsAny(queryLower, []string{"list", "show", "which", "what are", "give", "name"}):
			return entities.IntentList
		case containsAny(queryLower, []string{"highest", "lowest", "maximum", "minimum"}):
			return entities.IntentCompare
		}
		return entities.IntentLookup
	}

	if containsIntent(found, entities.IntentCount) &&
		containsAny(queryLower, []string{"how many", "count", "number of", "total"}) {
		return entities.IntentCount
	}
	if containsIntent(found, entities.IntentList) &&
		containsAny(queryLower, []string{"list", "show", "which", "what are", "names"}) {
		return entities.IntentList
	}
	return found[0]
}

func stringifyFilterValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func containsIntent(intents []entities.QueryIntent, want entities.QueryIntent) bool {
	for _, intent := range intents {
		if intent == want {
			return true
		}
	}
	return false
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
