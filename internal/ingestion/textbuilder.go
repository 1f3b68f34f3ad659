package ingestion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/decode"
)

// sectionTitles overrides the default title-cased section name where the
// rendered heading should read differently.
var sectionTitles = map[string]string{
	"business_profile":   "Business Profile",
	"cctv":               "CCTV Security",
	"transit_and_gaurds": "Transit and Guards",
	"claim_history":      "Claim History",
}

// arraySections render as numbered items instead of a flat field list.
var arraySections = map[string]struct{}{
	"claim_history": {},
}

// BuildSectionText renders one decoded section as the text that gets
// embedded and retrieved. Empty and sentinel values are dropped so the
// text only carries fields the proposer actually filled in.
func BuildSectionText(section Section) string {
	data := decode.DecodeRecord(section.Data)

	var lines []string
	lines = append(lines, fmt.Sprintf("Proposal %s – %s:", section.QuoteID, sectionTitle(section.Name)))

	// Claim history mixes a status field with a nested list of claims.
	if section.Name == "claim_history" {
		if obj, ok := data.(map[string]any); ok {
			return strings.Join(append(lines, claimHistoryLines(obj)...), "\n")
		}
	}

	if _, isArray := arraySections[section.Name]; isArray {
		if list, ok := data.([]any); ok {
			return strings.Join(append(lines, arrayLines(section.Name, list)...), "\n")
		}
	}

	switch v := data.(type) {
	case []any:
		lines = append(lines, arrayLines(section.Name, v)...)
	case map[string]any:
		lines = append(lines, objectLines(section.Name, v)...)
	default:
		if hasValue(v) {
			lines = append(lines, fmt.Sprintf("Value: %v", v))
		}
	}

	return strings.Join(lines, "\n")
}

func claimHistoryLines(obj map[string]any) []string {
	var lines []string
	if status, ok := obj["claim_history_label"]; ok && hasValue(status) {
		lines = append(lines, fmt.Sprintf("Claim Status: %v", status))
	}

	details, _ := obj["additional_details"].([]any)
	n := 0
	for _, item := range details {
		claim, ok := item.(map[string]any)
		if !ok || !hasValue(claim["year_of_claim_label"]) {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("Claim %d:", n))
		if year := claim["year_of_claim_label"]; hasValue(year) {
			lines = append(lines, fmt.Sprintf("- Year: %v", year))
		}
		if amount := claim["amount_of_claim_label"]; hasValue(amount) {
			lines = append(lines, fmt.Sprintf("- Amount: %v", amount))
		}
		if desc := claim["description_label"]; hasValue(desc) {
			lines = append(lines, fmt.Sprintf("- Description: %v", desc))
		}
	}
	return lines
}

func arrayLines(section string, list []any) []string {
	if len(list) == 0 {
		return []string{"No records available."}
	}
	var lines []string
	for i, item := range list {
		lines = append(lines, fmt.Sprintf("Item %d:", i+1))
		if obj, ok := item.(map[string]any); ok {
			for _, key := range sortedKeys(obj) {
				value := obj[key]
				if hasValue(value) {
					lines = append(lines, fmt.Sprintf("- %s: %v", labelFor(section, key), value))
				}
			}
		} else if hasValue(item) {
			lines = append(lines, fmt.Sprintf("- Value: %v", item))
		}
	}
	return lines
}

func objectLines(section string, obj map[string]any) []string {
	var lines []string
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		if !hasValue(value) {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			// Nested structures outside claim_history stay out of the text.
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %v", labelFor(section, key), value))
	}
	return lines
}

func labelFor(section, key string) string {
	if label, ok := decode.FieldLabel(section, key); ok {
		return label
	}
	return titleCase(key)
}

func sectionTitle(name string) string {
	if title, ok := sectionTitles[name]; ok {
		return title
	}
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// hasValue filters out the sentinel values the source system writes for
// untouched fields.
func hasValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != "" && v != "-1" && v != "0"
	case float64:
		return v != -1 && v != 0
	case int:
		return v != -1 && v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
