package services

import (
	"fmt"
	"strings"
)

// RefusalMessage is the only thing the assistant may say when the records
// cannot support an answer.
const RefusalMessage = "Data not available in proposal records."

const systemInstruction = `You are an insurance data assistant for JA Assure. Answer ONLY from the proposal records provided below.

Rules:
- Answer using ONLY information found in the records below.
- If the answer is not in the records, respond with exactly: Data not available in proposal records.
- Be concise. Answer the question directly.
- Output plain text only. No markdown, no asterisks, no bullet formatting symbols.
- When listing multiple items, put each on its own line prefixed with "- ".
- Do not invent, estimate, or extrapolate any values.`

const defaultMaxContextChars = 12000

// PromptBuilder assembles model prompts from retrieved record text.
type PromptBuilder struct {
	maxContextChars int
}

func NewPromptBuilder(maxContextChars int) *PromptBuilder {
	if maxContextChars <= 0 {
		maxContextChars = defaultMaxContextChars
	}
	return &PromptBuilder{maxContextChars: maxContextChars}
}

// Build produces the grounded answer prompt for a question and its
// retrieved context chunks.
func (b *PromptBuilder) Build(question string, chunks []string) string {
	context := b.truncateContext(strings.Join(chunks, "\n\n"))
	return fmt.Sprintf(
		"%s\n\n=== PROPOSAL RECORDS ===\n%s\n=== END OF RECORDS ===\n\nQuestion: %s\n\nAnswer:",
		systemInstruction, context, question)
}

// BuildAnalytical wraps a precomputed analytical result so the model can
// phrase it, without license to add data of its own.
func (b *PromptBuilder) BuildAnalytical(question, computedResult string) string {
	return fmt.Sprintf(`You are an insurance data assistant. A computation over the proposal records produced this result:

%s

Question: %s

Present this result as a direct, plain-text answer to the question. Do not add any information beyond the result above.

Answer:`, computedResult, question)
}

// truncateContext trims context to the budget, preferring to drop whole
// chunks at "\n\n" boundaries over cutting mid-chunk.
func (b *PromptBuilder) truncateContext(context string) string {
	if len(context) <= b.maxContextChars {
		return context
	}

	var kept []string
	used := 0
	for _, chunk := range strings.Split(context, "\n\n") {
		cost := len(chunk)
		if len(kept) > 0 {
			cost += 2
		}
		if used+cost > b.maxContextChars {
			break
		}
		kept = append(kept, chunk)
		used += cost
	}
	if len(kept) == 0 {
		first := strings.SplitN(context, "\n\n", 2)[0]
		if len(first) > b.maxContextChars {
			first = first[:b.maxContextChars]
		}
		return first + "..."
	}
	return strings.Join(kept, "\n\n")
}
