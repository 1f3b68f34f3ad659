package evaluation

import "strings"

// ContainsAll reports whether the answer carries every expected fragment,
// case-insensitively. An empty expectation list always passes.
func ContainsAll(answer string, expected []string) bool {
	lower := strings.ToLower(answer)
	for _, fragment := range expected {
		if !strings.Contains(lower, strings.ToLower(fragment)) {
			return false
		}
	}
	return true
}

// Accuracy is the fraction of correct outcomes. Returns 0.0 for zero totals.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}
