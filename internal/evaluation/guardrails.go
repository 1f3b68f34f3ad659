package evaluation

import "strings"

// GuardrailConfig tunes the refusal and output checks applied to every
// evaluated answer.
type GuardrailConfig struct {
	RefusalMessage  string
	MaxAnswerLength int
}

// Guardrails validates answers against the grounding contract: out-of-scope
// questions must refuse with the exact sentinel, and grounded questions must
// never carry it.
type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxAnswerLength <= 0 {
		config.MaxAnswerLength = 4000
	}
	return &Guardrails{config: config}
}

// IsRefusal reports whether the answer is the refusal sentinel.
func (g *Guardrails) IsRefusal(answer string) bool {
	return strings.TrimSpace(answer) == g.config.RefusalMessage
}

// Check returns true when the answer honors the refusal expectation.
func (g *Guardrails) Check(answer string, expectRefusal bool) bool {
	if expectRefusal {
		return g.IsRefusal(answer)
	}
	return !g.IsRefusal(answer) && strings.TrimSpace(answer) != ""
}

// WithinLength reports whether the answer fits the configured cap.
func (g *Guardrails) WithinLength(answer string) bool {
	return len(answer) <= g.config.MaxAnswerLength
}
