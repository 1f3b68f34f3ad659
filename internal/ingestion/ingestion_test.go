package ingestion

import (
	"strings"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func sampleRow() entities.ProposalRow {
	return entities.ProposalRow{
		QuoteID:      "MYJADEQT001",
		RiskLocation: "Penang, Malaysia",
		UserName:     "Rohan Mehta",
		ShopLifting:  "1",
		Sections: map[string]string{
			"business_profile": `{"business_name_label": "Mehta Pawn Services", "nature_of_business_label": "001"}`,
			"alarm":            `{"do_you_have_alarm_label": "001"}`,
			"cctv":             "",
			"safe":             "not json",
			"strong_room":      "{}",
		},
	}
}

func TestExtractSections(t *testing.T) {
	sections := ExtractSections(sampleRow())

	// Two JSON sections survive plus the shop_lifting value column. The
	// empty, malformed, and {} columns are skipped.
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}

	byName := map[string]Section{}
	for _, s := range sections {
		byName[s.Name] = s
	}
	if _, ok := byName["business_profile"]; !ok {
		t.Fatal("business_profile section missing")
	}
	if _, ok := byName["shop_lifting"]; !ok {
		t.Fatal("shop_lifting section missing")
	}
	if byName["alarm"].RiskLocation != "Penang, Malaysia" {
		t.Fatalf("risk location = %q", byName["alarm"].RiskLocation)
	}
}

func TestExtractSections_SingleQuotedPayload(t *testing.T) {
	row := sampleRow()
	row.Sections = map[string]string{
		"alarm": `{'do_you_have_alarm_label': '001'}`,
	}

	sections := ExtractSections(row)
	found := false
	for _, s := range sections {
		if s.Name == "alarm" {
			found = true
		}
	}
	if !found {
		t.Fatal("single-quoted payload should be repaired and parsed")
	}
}

func TestBuildSectionText_DecodesCodes(t *testing.T) {
	sections := ExtractSections(sampleRow())
	for _, section := range sections {
		if section.Name != "alarm" {
			continue
		}
		text := BuildSectionText(section)
		if !strings.Contains(text, "Proposal MYJADEQT001") {
			t.Fatalf("text = %q", text)
		}
		if !strings.Contains(text, "Yes") {
			t.Fatalf("alarm code 001 should render decoded, got %q", text)
		}
		if strings.Contains(text, ": 001") {
			t.Fatalf("raw code leaked into text: %q", text)
		}
		return
	}
	t.Fatal("alarm section missing")
}

func TestBuildChunk(t *testing.T) {
	sections := ExtractSections(sampleRow())
	chunks := BuildChunks(sections)

	var alarm *entities.ProposalChunk
	for i := range chunks {
		if chunks[i].Section == "alarm" {
			alarm = &chunks[i]
		}
	}
	if alarm == nil {
		t.Fatal("alarm chunk missing")
	}

	if alarm.ID != "MYJADEQT001:alarm" {
		t.Fatalf("id = %q", alarm.ID)
	}
	if alarm.Fields["do_you_have_alarm_label"] != "001" {
		t.Fatalf("raw fields = %v", alarm.Fields)
	}
	if alarm.DecodedFields["do_you_have_alarm_label"] != "Yes" {
		t.Fatalf("decoded fields = %v", alarm.DecodedFields)
	}
	if alarm.UserName != "Rohan Mehta" {
		t.Fatalf("user name = %q", alarm.UserName)
	}
}

func TestFlattenFields_NestedClaims(t *testing.T) {
	fields := flattenFields(map[string]any{
		"claim_history_label": "001",
		"additional_details": []any{
			map[string]any{"year_of_claim_label": "2022", "amount_of_claim_label": "RM 12,000"},
		},
	})

	if fields["claim_history_label"] != "001" {
		t.Fatalf("fields = %v", fields)
	}
	if fields["amount_of_claim_label"] != "RM 12,000" {
		t.Fatalf("nested leaf not lifted: %v", fields)
	}
}
