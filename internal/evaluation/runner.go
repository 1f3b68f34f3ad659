package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/jaassure/proposal-intelligence/internal/application/services"
)

// AnswerEngine is the engine surface the runner exercises.
type AnswerEngine interface {
	Answer(ctx context.Context, sessionID string, session *services.ContextManager, question string) (string, string)
}

// Runner runs evaluation across a set of golden questions.
type Runner struct {
	engine     AnswerEngine
	guardrails *Guardrails
}

func NewRunner(engine AnswerEngine, guardrails *Guardrails) *Runner {
	return &Runner{engine: engine, guardrails: guardrails}
}

// Run evaluates every golden question in its own fresh session so history
// from one question cannot bleed into the next.
func (r *Runner) Run(ctx context.Context, queries []GoldenQuery) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalQueries: len(queries),
		ByBranch:     make(map[Branch]*BranchSummary),
	}

	branchCorrect := 0
	containsCorrect := 0

	for i, gq := range queries {
		session := services.NewContextManager(5)

		start := time.Now()
		answer, branch := r.engine.Answer(ctx, evalSessionID(i), session, gq.Question)
		duration := time.Since(start)

		result := EvalResult{
			QueryID:       gq.ID,
			Question:      gq.Question,
			Answer:        answer,
			Branch:        Branch(branch),
			BranchCorrect: Branch(branch) == gq.ExpectedBranch,
			ContainsAll:   ContainsAll(answer, gq.ExpectedContains),
			RefusalOK:     r.guardrails.Check(answer, gq.ExpectRefusal),
			Latency:       duration,
		}

		if result.BranchCorrect {
			branchCorrect++
		}
		if result.ContainsAll {
			containsCorrect++
		}
		if !result.RefusalOK {
			if gq.ExpectRefusal {
				summary.RefusalViolations++
			} else {
				summary.UnexpectedRefusals++
			}
		}
		if !result.BranchCorrect || !result.ContainsAll || !result.RefusalOK {
			summary.Failures = append(summary.Failures, result)
		}

		summary.AvgLatency += duration
		r.updateBranchSummary(summary, gq.ExpectedBranch, result.BranchCorrect)
	}

	if summary.TotalQueries > 0 {
		summary.BranchAccuracy = Accuracy(branchCorrect, summary.TotalQueries)
		summary.ContainsAccuracy = Accuracy(containsCorrect, summary.TotalQueries)
		summary.AvgLatency /= time.Duration(summary.TotalQueries)
	}
	for _, bs := range summary.ByBranch {
		if bs.Count > 0 {
			bs.BranchAccuracy /= float64(bs.Count)
		}
	}

	return summary, nil
}

func (r *Runner) updateBranchSummary(s *EvalSummary, expected Branch, correct bool) {
	if _, ok := s.ByBranch[expected]; !ok {
		s.ByBranch[expected] = &BranchSummary{}
	}
	bs := s.ByBranch[expected]
	bs.Count++
	if correct {
		bs.BranchAccuracy++
	}
}

func evalSessionID(i int) string {
	return fmt.Sprintf("eval-%d", i)
}
