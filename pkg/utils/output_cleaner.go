package utils

import (
	"regexp"
	"strings"
)

// Language models wrap answers in markdown, HTML, or reasoning tags even when
// told not to. Every generated answer passes through CleanOutput before it is
// returned to a caller.

var (
	htmlTagRe       = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe    = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)
	boldRe          = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderRe     = regexp.MustCompile(`__([^_]+)__`)
	italicRe        = regexp.MustCompile(`(^|[^\w*])\*([^*]+)\*($|[^\w*])`)
	codeBlockRe     = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe    = regexp.MustCompile("`([^`]*)`")
	headerRe        = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe        = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedRe      = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	linkRe          = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]+\)`)
	multiNewlineRe  = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe    = regexp.MustCompile(` {2,}`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	thinkingRe      = regexp.MustCompile(`(?is)<thinking>.*?</thinking>`)
	reasoningRe     = regexp.MustCompile(`(?is)<reasoning>.*?</reasoning>`)
	answerPrefixRe  = regexp.MustCompile(`(?is)(?:Answer|Response|Result):\s*(.+)`)
)

// CleanOutput strips markdown, HTML, and list markers from model output.
func CleanOutput(text string) string {
	if text == "" {
		return ""
	}

	result := text
	result = htmlTagRe.ReplaceAllString(result, "")
	result = htmlEntityRe.ReplaceAllString(result, " ")
	result = boldRe.ReplaceAllString(result, "$1")
	result = boldUnderRe.ReplaceAllString(result, "$1")
	result = italicRe.ReplaceAllString(result, "$1$2$3")
	result = codeBlockRe.ReplaceAllString(result, "")
	result = inlineCodeRe.ReplaceAllString(result, "$1")
	result = headerRe.ReplaceAllString(result, "")
	result = bulletRe.ReplaceAllString(result, "")
	result = numberedRe.ReplaceAllString(result, "")
	result = linkRe.ReplaceAllString(result, "$1")
	result = multiNewlineRe.ReplaceAllString(result, "\n\n")
	result = multiSpaceRe.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}

// RemoveThinkingTags drops <thinking> and <reasoning> blocks some models emit.
func RemoveThinkingTags(text string) string {
	if text == "" {
		return ""
	}
	result := thinkingRe.ReplaceAllString(text, "")
	result = reasoningRe.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// ExtractAnswerOnly strips a leading "Answer:" style prefix when present.
func ExtractAnswerOnly(text string) string {
	if text == "" {
		return ""
	}
	if m := answerPrefixRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// NormalizeWhitespace collapses all whitespace runs to single spaces.
func NormalizeWhitespace(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// FullClean applies every cleaning step in sequence.
func FullClean(text string) string {
	if text == "" {
		return ""
	}
	result := RemoveThinkingTags(text)
	result = CleanOutput(result)
	result = ExtractAnswerOnly(result)
	return NormalizeWhitespace(result)
}
