package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestFormat_ZeroCountIsDefinitive(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})

	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentCount, RawQuery: "how many have safes?"},
		&entities.QueryResult{Success: true, Summary: "0 proposals match the criteria"})
	if answer != "0 proposals match the criteria. No records found with the specified condition." {
		t.Fatalf("answer = %q", answer)
	}

	answer = f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentList, FilterContains: "Langkawi"},
		&entities.QueryResult{Success: true})
	if answer != "0 proposals found with 'Langkawi' in the records." {
		t.Fatalf("answer = %q", answer)
	}
}

func TestFormat_FailedLookupRefuses(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})
	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentLookup, QuoteID: "MYJADEQT999"},
		&entities.QueryResult{Summary: "No matching fields found for MYJADEQT999"})
	if answer != "Data not available in the proposal records." {
		t.Fatalf("answer = %q", answer)
	}
}

func TestFormat_SingleLookup(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})
	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentLookup, QuoteID: "MYJADEQT001"},
		&entities.QueryResult{
			Success: true, Count: 1,
			Details: []string{"Business Name: Mehta Pawn Services"},
		})
	if answer != "For MYJADEQT001: Business Name: Mehta Pawn Services" {
		t.Fatalf("answer = %q", answer)
	}
}

func TestFormat_CountWithNames(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})
	result := &entities.QueryResult{
		Success: true, Count: 2,
		Details: []string{"Mehta Pawn Services (MYJADEQT001)", "City FX Exchange (MYJADEQT002)"},
	}

	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentCount, RawQuery: "how many have alarms and what are their names?"},
		result)
	if !strings.HasPrefix(answer, "There are 2 proposal(s) that match. Here are their names:") {
		t.Fatalf("answer = %q", answer)
	}
	if !strings.Contains(answer, "- City FX Exchange (MYJADEQT002)") {
		t.Fatalf("answer = %q", answer)
	}

	// Without a names request only the count comes back.
	answer = f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentCount, RawQuery: "how many proposals have alarms?"},
		result)
	if answer != "2 proposal(s) match the criteria." {
		t.Fatalf("answer = %q", answer)
	}
}

func TestFormat_ListCapsAtFifteen(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})

	details := make([]string, 18)
	for i := range details {
		details[i] = "Business"
	}
	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentList, RawQuery: "list all proposals"},
		&entities.QueryResult{Success: true, Count: 18, Details: details})

	if !strings.HasPrefix(answer, "Found 18 matching proposal(s):") {
		t.Fatalf("answer = %q", answer)
	}
	if !strings.HasSuffix(answer, "... and 3 more.") {
		t.Fatalf("answer = %q", answer)
	}
	if strings.Count(answer, "- Business") != 15 {
		t.Fatalf("expected 15 listed items, got %d", strings.Count(answer, "- Business"))
	}
}

func TestFormat_CompareUsesSummary(t *testing.T) {
	f := NewAnswerFormatter(&stubGenerator{})
	answer := f.Format(context.Background(),
		&entities.ParsedQuery{Intent: entities.IntentCompare, RawQuery: "highest sum assured?"},
		&entities.QueryResult{
			Success: true, Count: 1,
			Summary: "The highest value is 750,000 for City FX Exchange (MYJADEQT002)",
		})
	if answer != "The highest value is 750,000 for City FX Exchange (MYJADEQT002)" {
		t.Fatalf("answer = %q", answer)
	}
}
