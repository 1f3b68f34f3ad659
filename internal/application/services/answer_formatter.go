package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
)

const formatPrompt = `You are formatting a database query result into a natural language answer.

USER'S ORIGINAL QUESTION: %s

WHAT WE UNDERSTOOD: %s

QUERY RESULT:
- Success: %t
- Count: %d
- Summary: %s
- Details: %s

FORMAT RULES:
1. Use ONLY the data provided above - do not add any information
2. If count is 0 or success is False, say the data is not available
3. Be concise and direct
4. Include specific names/values from the details
5. If listing multiple items, use bullet points or numbered list
6. Do not apologize or add unnecessary filler

Write a natural, helpful response to the user's question using ONLY the data above:`

// AnswerFormatter renders query results as user-facing answers. Nearly
// every result formats from a fixed template; the model is only asked to
// phrase results no template covers, and only with the retrieved data.
type AnswerFormatter struct {
	llm providers.Generator
}

func NewAnswerFormatter(llm providers.Generator) *AnswerFormatter {
	return &AnswerFormatter{llm: llm}
}

// Format renders the answer for a parsed query and its execution result.
func (f *AnswerFormatter) Format(ctx context.Context, parsed *entities.ParsedQuery, result *entities.QueryResult) string {
	// Zero matches on count/list is a definitive answer, not a failure.
	if parsed.Intent == entities.IntentCount && result.Count == 0 {
		return "0 proposals match the criteria. No records found with the specified condition."
	}
	if parsed.Intent == entities.IntentList && result.Count == 0 {
		if parsed.FilterContains != "" {
			return fmt.Sprintf("0 proposals found with '%s' in the records.", parsed.FilterContains)
		}
		return "0 proposals match the criteria."
	}

	// An entity lookup that resolved a name but matched no record answers
	// "not found" rather than falling back to the generic unavailable line.
	if parsed.Intent == entities.IntentLookup && result.Success && result.Count == 0 {
		if result.Summary != "" {
			return result.Summary + "."
		}
		return "No matching proposal found."
	}

	if !result.Success || result.Count == 0 {
		return "Data not available in the proposal records."
	}

	switch parsed.Intent {
	case entities.IntentLookup:
		if result.Count == 1 {
			detail := result.Summary
			if len(result.Details) > 0 {
				detail = result.Details[0]
			}
			if parsed.QuoteID != "" {
				return fmt.Sprintf("For %s: %s", parsed.QuoteID, detail)
			}
			return detail
		}
		if len(result.Details) > 0 {
			return bulleted(result.Details)
		}
		return result.Summary

	case entities.IntentCount:
		queryLower := strings.ToLower(parsed.RawQuery)
		wantsNames := containsAny(queryLower, []string{
			"name", "names", "which", "list", "who", "what are",
		})
		if wantsNames && len(result.Details) > 0 {
			names := result.Details
			if len(names) > 20 {
				names = names[:20]
			}
			if result.Count <= 20 {
				return fmt.Sprintf("There are %d proposal(s) that match. Here are their names:\n%s",
					result.Count, bulleted(names))
			}
			return fmt.Sprintf("There are %d proposal(s) that match. Here are the first 20:\n%s\n... and %d more.",
				result.Count, bulleted(names), result.Count-20)
		}
		return fmt.Sprintf("%d proposal(s) match the criteria.", result.Count)

	case entities.IntentList:
		if len(result.Details) == 0 {
			return result.Summary
		}
		items := result.Details
		if len(items) > 15 {
			items = items[:15]
		}
		listing := bulleted(items)
		if result.Count > 15 {
			listing += fmt.Sprintf("\n... and %d more.", result.Count-15)
		}
		return fmt.Sprintf("Found %d matching proposal(s):\n%s", result.Count, listing)

	case entities.IntentCompare:
		return result.Summary
	}

	return f.formatWithModel(ctx, parsed, result)
}

func (f *AnswerFormatter) formatWithModel(ctx context.Context, parsed *entities.ParsedQuery, result *entities.QueryResult) string {
	details := result.Details
	if len(details) > 20 {
		details = details[:20]
	}
	prompt := fmt.Sprintf(formatPrompt,
		parsed.RawQuery, parsed.UnderstoodQuestion,
		result.Success, result.Count, result.Summary,
		strings.Join(details, "; "))

	response, err := f.llm.Generate(ctx, prompt)
	if err == nil {
		return strings.TrimSpace(response)
	}

	if len(result.Details) > 0 {
		fallback := result.Details
		if len(fallback) > 10 {
			fallback = fallback[:10]
		}
		return result.Summary + "\n" + bulleted(fallback)
	}
	return result.Summary
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
