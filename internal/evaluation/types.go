package evaluation

import "time"

// Branch names the engine path expected to answer a question.
type Branch string

const (
	BranchPredefined Branch = "predefined"
	BranchUnderstood Branch = "understood"
	BranchAnalytical Branch = "analytical"
	BranchStructured Branch = "structured"
	BranchSemantic   Branch = "semantic"
	BranchRefused    Branch = "refused"
)

// ValidBranches returns all valid branch values.
func ValidBranches() []Branch {
	return []Branch{BranchPredefined, BranchUnderstood, BranchAnalytical, BranchStructured, BranchSemantic, BranchRefused}
}

// IsValid checks if the branch value is one of the defined constants.
func (b Branch) IsValid() bool {
	switch b {
	case BranchPredefined, BranchUnderstood, BranchAnalytical, BranchStructured, BranchSemantic, BranchRefused:
		return true
	}
	return false
}

// GoldenQuery represents a labeled test question with expected outcomes.
type GoldenQuery struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	ExpectedBranch   Branch   `json:"expected_branch"`
	ExpectedContains []string `json:"expected_contains"`
	ExpectRefusal    bool     `json:"expect_refusal"`
	Difficulty       string   `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single question.
type EvalResult struct {
	QueryID       string
	Question      string
	Answer        string
	Branch        Branch
	BranchCorrect bool
	ContainsAll   bool
	RefusalOK     bool
	Latency       time.Duration
}

// EvalSummary holds aggregate metrics across all golden questions.
type EvalSummary struct {
	TotalQueries       int
	BranchAccuracy     float64
	ContainsAccuracy   float64
	RefusalViolations  int // should have refused but answered
	UnexpectedRefusals int // should have answered but refused
	AvgLatency         time.Duration
	ByBranch           map[Branch]*BranchSummary
	Failures           []EvalResult
}

// BranchSummary holds metrics grouped by expected branch.
type BranchSummary struct {
	Count          int
	BranchAccuracy float64
}
