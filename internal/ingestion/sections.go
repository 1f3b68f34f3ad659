// Package ingestion turns raw proposal rows into decoded, rendered chunks
// ready for embedding and indexing.
package ingestion

import (
	"encoding/json"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// SectionColumns are the JSON columns extracted from each proposal row.
// Column names match the source schema, typos included.
var SectionColumns = []string{
	"business_profile",
	"sum_assured",
	"physical_setup",
	"cctv",
	"door_access",
	"alarm",
	"safe",
	"strong_room",
	"display_showcases",
	"display_counters",
	"counter_show_case",
	"transit_and_gaurds",
	"records_keeping",
	"additional_details",
	"add_on_coverage",
	"claim_history",
	"premise_sub_limit",
	"display_window",
	"summary_coverage_values",
}

// simpleValueColumns hold a bare value instead of JSON and become their own
// single-field section.
var simpleValueColumns = []struct {
	column string
	field  string
}{
	{"shop_lifting", "shop_lifting_label"},
}

// Section is one extracted section of a proposal row before rendering.
type Section struct {
	QuoteID      string
	Name         string
	Data         any
	RiskLocation string
	UserName     string
}

// ExtractSections splits a proposal row into its sections. Columns that are
// empty or fail to parse as JSON are skipped rather than aborting the row.
func ExtractSections(row entities.ProposalRow) []Section {
	sections := make([]Section, 0, len(SectionColumns)+len(simpleValueColumns))

	for _, name := range SectionColumns {
		raw, ok := row.Sections[name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		parsed := parseJSON(raw)
		if parsed == nil {
			continue
		}
		sections = append(sections, Section{
			QuoteID:      row.QuoteID,
			Name:         name,
			Data:         parsed,
			RiskLocation: row.RiskLocation,
			UserName:     row.UserName,
		})
	}

	for _, col := range simpleValueColumns {
		value := row.ShopLifting
		if col.column != "shop_lifting" {
			value = row.Sections[col.column]
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		sections = append(sections, Section{
			QuoteID:      row.QuoteID,
			Name:         col.column,
			Data:         map[string]any{col.field: value},
			RiskLocation: row.RiskLocation,
			UserName:     row.UserName,
		})
	}

	return sections
}

// parseJSON tolerates single-quoted payloads and double-encoded strings that
// appear in older proposal exports.
func parseJSON(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		// A double-encoded section comes back as a string on the first pass.
		if inner, ok := parsed.(string); ok {
			var reparsed any
			if err := json.Unmarshal([]byte(inner), &reparsed); err == nil {
				return emptyToNil(reparsed)
			}
			return nil
		}
		return emptyToNil(parsed)
	}

	// Some exports carry Python-style single quotes.
	if strings.Contains(trimmed, "'") && !strings.Contains(trimmed, "\"") {
		repaired := strings.ReplaceAll(trimmed, "'", "\"")
		if err := json.Unmarshal([]byte(repaired), &parsed); err == nil {
			return emptyToNil(parsed)
		}
	}
	return nil
}

func emptyToNil(parsed any) any {
	switch v := parsed.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
	case []any:
		if len(v) == 0 {
			return nil
		}
	}
	return parsed
}
