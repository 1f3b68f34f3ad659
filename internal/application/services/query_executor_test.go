package services

import (
	"strings"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func executorChunks() []entities.ProposalChunk {
	return []entities.ProposalChunk{
		{
			ID: "MYJADEQT001:business_profile", QuoteID: "MYJADEQT001",
			Section: "business_profile",
			Embedding: []float32{1, 0, 0},
			Text:    "Proposal MYJADEQT001 – Business Profile:\nBusiness Name: Mehta Pawn Services",
			DecodedFields: map[string]string{
				"business_name_label":      "Mehta Pawn Services",
				"person_in_charge_label":   "Rohan Mehta",
				"nature_of_business_label": "Pawnbrokers",
			},
			RiskLocation: "Penang, Malaysia",
			UserName:     "Rohan Mehta",
		},
		{
			ID: "MYJADEQT001:alarm", QuoteID: "MYJADEQT001",
			Section: "alarm",
			Embedding: []float32{0.9, 0.1, 0},
			Text:    "Proposal MYJADEQT001 – Alarm:\nAlarm Installed: Yes",
			Fields:  map[string]any{"do_you_have_alarm_label": "001"},
			DecodedFields: map[string]string{
				"do_you_have_alarm_label": "Yes",
			},
			RiskLocation: "Penang, Malaysia",
			UserName:     "Rohan Mehta",
		},
		{
			ID: "MYJADEQT002:business_profile", QuoteID: "MYJADEQT002",
			Section: "business_profile",
			Embedding: []float32{0.95, 0.05, 0},
			Text:    "Proposal MYJADEQT002 – Business Profile:\nBusiness Name: City FX Exchange",
			DecodedFields: map[string]string{
				"business_name_label":    "City FX Exchange",
				"person_in_charge_label": "Suresh Kumar",
			},
			RiskLocation: "Kuala Lumpur, Malaysia",
			UserName:     "Suresh Kumar",
		},
		{
			ID: "MYJADEQT002:alarm", QuoteID: "MYJADEQT002",
			Section: "alarm",
			Embedding: []float32{0.85, 0.15, 0},
			Text:    "Proposal MYJADEQT002 – Alarm:\nAlarm Installed: No",
			DecodedFields: map[string]string{
				"do_you_have_alarm_label": "No",
			},
			RiskLocation: "Kuala Lumpur, Malaysia",
			UserName:     "Suresh Kumar",
		},
		{
			ID: "MYJADEQT001:sum_assured", QuoteID: "MYJADEQT001",
			Section: "summary_coverage_values",
			Embedding: []float32{0.8, 0.2, 0},
			Fields:  map[string]any{"sum_assured_limit_label": "RM 500,000"},
			DecodedFields: map[string]string{
				"sum_assured_limit_label": "RM 500,000",
			},
		},
		{
			ID: "MYJADEQT002:sum_assured", QuoteID: "MYJADEQT002",
			Section: "summary_coverage_values",
			Embedding: []float32{0.75, 0.25, 0},
			Fields:  map[string]any{"sum_assured_limit_label": "750,000"},
			DecodedFields: map[string]string{
				"sum_assured_limit_label": "750,000",
			},
		},
	}
}

func TestFieldMatchScore(t *testing.T) {
	cases := []struct {
		requested, actual string
		min, max          int
	}{
		{"do_you_have_alarm_label", "do_you_have_alarm_label", 100, 100},
		{"alarm", "do_you_have_alarm_label", 50, 99},
		{"alarm brand", "alarm_brand_name_label", 50, 99},
		{"cctv recording retained", "retained_period_of_cctv_recording_label", 10, 49},
		{"business name", "grade_label", 0, 0},
	}
	for _, tc := range cases {
		score := fieldMatchScore(tc.requested, tc.actual)
		if score < tc.min || score > tc.max {
			t.Errorf("fieldMatchScore(%q, %q) = %d, want in [%d, %d]",
				tc.requested, tc.actual, score, tc.min, tc.max)
		}
	}
}

func TestExecuteLookup_ByQuoteID(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:       entities.IntentLookup,
		QuoteID:      "MYJADEQT001",
		OutputFields: []string{"business_name_label"},
	})
	if !result.Success {
		t.Fatalf("lookup failed: %s", result.Summary)
	}
	if len(result.Details) != 1 || !strings.Contains(result.Details[0], "Mehta Pawn Services") {
		t.Fatalf("details = %v", result.Details)
	}
}

func TestExecuteLookup_UnknownQuoteID(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:       entities.IntentLookup,
		QuoteID:      "MYJADEQT999",
		OutputFields: []string{"business_name_label"},
	})
	if result.Success {
		t.Fatal("expected failure for unknown quote")
	}
	if result.Summary != "No matching fields found for MYJADEQT999" {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestExecuteCount_YesNoNormalization(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())

	// The filter value is the raw code but indexed values are decoded.
	result := exec.Execute(&entities.ParsedQuery{
		Intent:      entities.IntentCount,
		FilterField: "do_you_have_alarm_label",
		FilterValue: "001",
		RawQuery:    "how many have alarms?",
	})
	if result.Count != 1 {
		t.Fatalf("count = %d, want 1", result.Count)
	}
	if result.Summary != "1 proposal(s) match the criteria" {
		t.Fatalf("summary = %q", result.Summary)
	}

	result = exec.Execute(&entities.ParsedQuery{
		Intent:      entities.IntentCount,
		FilterField: "do_you_have_alarm_label",
		FilterValue: "002",
		RawQuery:    "how many don't have alarms?",
	})
	if result.Count != 1 {
		t.Fatalf("negated count = %d, want 1", result.Count)
	}
	if len(result.Details) != 1 || !strings.Contains(result.Details[0], "City FX Exchange") {
		t.Fatalf("details = %v", result.Details)
	}
}

func TestExecuteCount_ZeroMatchesIsStillSuccess(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:      entities.IntentCount,
		FilterField: "do_you_have_a_strong_room_label",
		FilterValue: "001",
		RawQuery:    "how many have strong rooms?",
	})
	if !result.Success {
		t.Fatal("zero matches must still be a definitive answer")
	}
	if result.Summary != "0 proposals match the criteria" {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestExecuteCount_FilterContainsLocation(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:         entities.IntentCount,
		FilterContains: "Penang",
		RawQuery:       "how many proposals are located in Penang?",
	})
	if result.Count != 1 {
		t.Fatalf("count = %d, want 1", result.Count)
	}
}

func TestExecuteEntityLookup_ByPersonName(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:         entities.IntentLookup,
		FilterContains: "Rohan Mehta",
		OutputFields:   []string{"do_you_have_alarm_label"},
		RawQuery:       "does Rohan Mehta have an alarm?",
	})
	if !result.Success {
		t.Fatalf("entity lookup failed: %s", result.Summary)
	}
	if len(result.Details) == 0 || !strings.Contains(result.Details[0], "Mehta Pawn Services (MYJADEQT001)") {
		t.Fatalf("details = %v", result.Details)
	}
	if !strings.Contains(result.Details[0], "= Yes") {
		t.Fatalf("expected decoded Yes value, got %v", result.Details)
	}
}

func TestExecuteEntityLookup_UnknownNameIsDefinitive(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:         entities.IntentLookup,
		FilterContains: "Acme Jewels",
		OutputFields:   []string{"do_you_have_alarm_label"},
		RawQuery:       "does Acme Jewels have an alarm?",
	})
	if !result.Success {
		t.Fatal("a resolved name with no record is still a definitive result")
	}
	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Summary != "No proposal found for 'Acme Jewels'" {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestShouldEntityLookup_ReroutesMisclassifiedCount(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())

	// Parser said count, but the question names an entity and asks for a
	// data field. Must reroute to entity lookup.
	result := exec.Execute(&entities.ParsedQuery{
		Intent:       entities.IntentCount,
		TargetFields: []string{"nature_of_business_label"},
		RawQuery:     "what kind of business does Rohan Mehta run?",
	})
	if !result.Success {
		t.Fatalf("expected entity lookup result: %s", result.Summary)
	}
	if len(result.Details) == 0 || !strings.Contains(result.Details[0], "Pawnbrokers") {
		t.Fatalf("details = %v", result.Details)
	}
}

func TestExecuteCompare_ParsesCurrencyValues(t *testing.T) {
	exec := NewQueryExecutor(executorChunks())
	result := exec.Execute(&entities.ParsedQuery{
		Intent:       entities.IntentCompare,
		TargetFields: []string{"sum_assured_limit_label"},
		RawQuery:     "which proposal has the highest sum assured?",
	})
	if !result.Success {
		t.Fatalf("compare failed: %s", result.Summary)
	}
	if !strings.Contains(result.Summary, "750,000") || !strings.Contains(result.Summary, "MYJADEQT002") {
		t.Fatalf("summary = %q", result.Summary)
	}
	if !strings.HasPrefix(result.Summary, "The highest value is") {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"RM 500,000", 500000, true},
		{"$1,250.50", 1250.5, true},
		{"750000", 750000, true},
		{"Yes", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumeric(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
