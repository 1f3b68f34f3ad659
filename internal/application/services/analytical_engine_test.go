package services

import (
	"strings"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func analyticalChunks() []entities.ProposalChunk {
	return []entities.ProposalChunk{
		{
			QuoteID: "MYJADEQT001", Section: "cctv",
			Fields: map[string]any{"recording_label": "Yes"},
		},
		{
			QuoteID: "MYJADEQT002", Section: "cctv",
			Fields: map[string]any{"recording_label": "No"},
		},
		{
			QuoteID: "MYJADEQT003", Section: "cctv",
			Fields: map[string]any{"recording_label": "001"},
		},
		{
			QuoteID: "MYJADEQT001", Section: "claim_history",
			Fields: map[string]any{"claim_history_label": "No claim within 3 years"},
		},
		{
			QuoteID: "MYJADEQT002", Section: "claim_history",
			Fields: map[string]any{"claim_history_label": "Claims within past 3 years"},
		},
		{
			QuoteID: "MYJADEQT001", Section: "summary_coverage_values",
			Fields: map[string]any{"sum_assured_limit_label": "RM 500,000"},
		},
		{
			QuoteID: "MYJADEQT002", Section: "summary_coverage_values",
			Fields: map[string]any{"sum_assured_limit_label": "750,000"},
		},
	}
}

func TestRun_CountWithYesNormalization(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())

	// "Yes" and the raw code "001" both count as having the feature.
	result := engine.Run("How many proposals have CCTV recording?")
	if !strings.HasPrefix(result, "2 proposal(s) match the criteria.") {
		t.Fatalf("result = %q", result)
	}
	if !strings.Contains(result, "MYJADEQT001") || !strings.Contains(result, "MYJADEQT003") {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_CountZero(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	result := engine.Run("How many proposals have armed guards during transit?")
	if result != "0 proposals match the criteria." {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_CountNoClaim(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	result := engine.Run("How many proposals have no claim history?")
	if !strings.HasPrefix(result, "1 proposal(s) match the criteria.") {
		t.Fatalf("result = %q", result)
	}
	if !strings.Contains(result, "MYJADEQT001") {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_ListWithCondition(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	result := engine.Run("Which proposals have CCTV recording?")
	if !strings.HasPrefix(result, "Found 2 matching proposal(s):") {
		t.Fatalf("result = %q", result)
	}
	if !strings.Contains(result, "- MYJADEQT001: recording_label = Yes") {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_ComparisonHighest(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	result := engine.Run("Which proposal has the highest sum assured?")
	if result != "The highest value is 750,000 for proposal MYJADEQT002." {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_ComparisonLowest(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	result := engine.Run("Which proposal has the lowest sum assured?")
	if result != "The lowest value is RM 500,000 for proposal MYJADEQT001." {
		t.Fatalf("result = %q", result)
	}
}

func TestRun_UnmappableQueryReturnsEmpty(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	if result := engine.Run("how many employees work weekends?"); result != "" {
		// No pattern category covers employees/weekends.
		t.Fatalf("result = %q, want empty", result)
	}
}

func TestQuoteIDs(t *testing.T) {
	engine := NewAnalyticalEngine(analyticalChunks())
	ids := engine.QuoteIDs()
	want := []string{"MYJADEQT001", "MYJADEQT002", "MYJADEQT003"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if engine.RecordCount() != 3 {
		t.Fatalf("record count = %d", engine.RecordCount())
	}
}
