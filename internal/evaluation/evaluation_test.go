package evaluation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaassure/proposal-intelligence/internal/application/services"
)

const refusal = "Data not available in proposal records."

type scriptedEngine struct {
	answers  map[string]string
	branches map[string]string
}

func (e *scriptedEngine) Answer(_ context.Context, _ string, _ *services.ContextManager, question string) (string, string) {
	return e.answers[question], e.branches[question]
}

func TestLoadGoldenQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	payload := `[
		{"id": "g1", "question": "How many proposals have CCTV?", "expected_branch": "understood", "expected_contains": ["proposal"], "difficulty": "easy"},
		{"id": "g2", "question": "Predict next year's claims", "expected_branch": "refused", "expect_refusal": true, "difficulty": "medium"}
	]`
	assert.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	queries, err := LoadGoldenQueries(path)
	assert.NoError(t, err)
	assert.Len(t, queries, 2)
	assert.Equal(t, BranchUnderstood, queries[0].ExpectedBranch)
	assert.True(t, queries[1].ExpectRefusal)

	assert.NoError(t, ValidateGoldenQueries(queries))
}

func TestValidateGoldenQueries_Errors(t *testing.T) {
	cases := []struct {
		name    string
		queries []GoldenQuery
	}{
		{"missing id", []GoldenQuery{{Question: "q", ExpectedBranch: BranchSemantic, Difficulty: "easy"}}},
		{"duplicate id", []GoldenQuery{
			{ID: "g1", Question: "q", ExpectedBranch: BranchSemantic, Difficulty: "easy"},
			{ID: "g1", Question: "q2", ExpectedBranch: BranchSemantic, Difficulty: "easy"},
		}},
		{"invalid branch", []GoldenQuery{{ID: "g1", Question: "q", ExpectedBranch: "magic", Difficulty: "easy"}}},
		{"refusal mismatch", []GoldenQuery{{ID: "g1", Question: "q", ExpectedBranch: BranchRefused, Difficulty: "easy"}}},
		{"invalid difficulty", []GoldenQuery{{ID: "g1", Question: "q", ExpectedBranch: BranchSemantic, Difficulty: "extreme"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateGoldenQueries(tc.queries))
		})
	}
}

func TestContainsAll(t *testing.T) {
	assert.True(t, ContainsAll("2 proposal(s) match the criteria.", []string{"proposal", "MATCH"}))
	assert.False(t, ContainsAll("no records", []string{"proposal"}))
	assert.True(t, ContainsAll("anything", nil))
}

func TestGuardrails(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{RefusalMessage: refusal})

	assert.True(t, g.Check(refusal, true))
	assert.False(t, g.Check("Yes, it has CCTV.", true))
	assert.True(t, g.Check("Yes, it has CCTV.", false))
	assert.False(t, g.Check(refusal, false))
	assert.False(t, g.Check("   ", false))
}

func TestRunner_Run(t *testing.T) {
	queries := []GoldenQuery{
		{ID: "g1", Question: "How many proposals have an alarm?", ExpectedBranch: BranchUnderstood, ExpectedContains: []string{"match the criteria"}, Difficulty: "easy"},
		{ID: "g2", Question: "Predict next year's claims", ExpectedBranch: BranchRefused, ExpectRefusal: true, Difficulty: "medium"},
		{ID: "g3", Question: "Does MYJADEQT001 have CCTV?", ExpectedBranch: BranchSemantic, ExpectedContains: []string{"cctv"}, Difficulty: "medium"},
	}

	engine := &scriptedEngine{
		answers: map[string]string{
			"How many proposals have an alarm?": "2 proposal(s) match the criteria.",
			"Predict next year's claims":        refusal,
			"Does MYJADEQT001 have CCTV?":       refusal, // unexpected refusal
		},
		branches: map[string]string{
			"How many proposals have an alarm?": "understood",
			"Predict next year's claims":        "refused",
			"Does MYJADEQT001 have CCTV?":       "refused",
		},
	}

	runner := NewRunner(engine, NewGuardrails(GuardrailConfig{RefusalMessage: refusal}))
	summary, err := runner.Run(context.Background(), queries)
	assert.NoError(t, err)

	assert.Equal(t, 3, summary.TotalQueries)
	assert.InDelta(t, 2.0/3.0, summary.BranchAccuracy, 1e-9)
	assert.Equal(t, 0, summary.RefusalViolations)
	assert.Equal(t, 1, summary.UnexpectedRefusals)
	assert.Len(t, summary.Failures, 1)
	assert.Equal(t, "g3", summary.Failures[0].QueryID)

	assert.Equal(t, 1, summary.ByBranch[BranchUnderstood].Count)
	assert.Equal(t, 1.0, summary.ByBranch[BranchUnderstood].BranchAccuracy)
}
