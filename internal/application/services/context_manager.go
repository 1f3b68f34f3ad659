package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

const defaultHistoryTurns = 5

// historyTurn is one remembered exchange with the parse context that
// produced it. Follow-up questions inherit filters from the latest turn.
type historyTurn struct {
	Query              string
	Intent             entities.QueryIntent
	FilterField        string
	FilterValue        string
	FilterContains     string
	TargetFields       []string
	OutputFields       []string
	UnderstoodQuestion string
	AnswerPreview      string
}

// ContextManager keeps the conversation history of a single session. Each
// session owns its own manager; nothing here is shared across sessions.
type ContextManager struct {
	mu       sync.Mutex
	turns    []historyTurn
	maxTurns int
}

// NewContextManager creates a manager holding up to maxTurns exchanges.
func NewContextManager(maxTurns int) *ContextManager {
	if maxTurns <= 0 {
		maxTurns = defaultHistoryTurns
	}
	return &ContextManager{maxTurns: maxTurns}
}

// Add records a parsed exchange.
func (m *ContextManager) Add(query string, parsed *entities.ParsedQuery, answer string) {
	turn := historyTurn{
		Query:              query,
		Intent:             parsed.Intent,
		FilterField:        parsed.FilterField,
		FilterValue:        parsed.FilterValue,
		FilterContains:     parsed.FilterContains,
		TargetFields:       parsed.TargetFields,
		OutputFields:       parsed.OutputFields,
		UnderstoodQuestion: parsed.UnderstoodQuestion,
		AnswerPreview:      preview(answer),
	}
	m.append(turn)
}

// AddRaw records an exchange that bypassed the parser (predefined QA,
// analytical, semantic retrieval). These turns carry no filter context.
func (m *ContextManager) AddRaw(query, answer string) {
	m.append(historyTurn{
		Query:              query,
		Intent:             "unknown",
		UnderstoodQuestion: query,
		AnswerPreview:      preview(answer),
	})
}

func (m *ContextManager) append(turn historyTurn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
	if len(m.turns) > m.maxTurns {
		m.turns = m.turns[len(m.turns)-m.maxTurns:]
	}
}

// Len reports how many turns are remembered.
func (m *ContextManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// followupPatterns mark short questions that refer back to the previous
// result set instead of introducing a new question.
var followupPatterns = []string{
	"their names", "the names", "give names", "give me names",
	"list them", "show them", "what are they", "who are they",
	"give me their", "show their", "tell me their",
	"what are those", "which are those", "name them",
	"give the names", "show the names", "list the names",
	"what about their names", "and their names",
	"names please", "names?",
}

var referentialWords = []string{"them", "their", "those", "these", "above", "names"}

// IsFollowupReference detects questions like "give me their names" that
// must reuse the previous turn's filters verbatim.
func (m *ContextManager) IsFollowupReference(query string) bool {
	m.mu.Lock()
	empty := len(m.turns) == 0
	m.mu.Unlock()
	if empty {
		return false
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	for _, pattern := range followupPatterns {
		if strings.Contains(queryLower, pattern) {
			return true
		}
	}

	if len(strings.Fields(queryLower)) <= 5 {
		for _, w := range referentialWords {
			if strings.Contains(queryLower, w) {
				return true
			}
		}
	}
	return false
}

// ResolveFollowup builds a list query from the latest turn without any
// model involvement, so the inherited context is always exact.
func (m *ContextManager) ResolveFollowup(query string) *entities.ParsedQuery {
	m.mu.Lock()
	last := m.turns[len(m.turns)-1]
	m.mu.Unlock()

	return &entities.ParsedQuery{
		Intent:             entities.IntentList,
		TargetFields:       last.TargetFields,
		FilterField:        last.FilterField,
		FilterValue:        last.FilterValue,
		FilterContains:     last.FilterContains,
		OutputFields:       []string{"business_name_label"},
		UnderstoodQuestion: fmt.Sprintf("Follow-up: list names from previous query '%s'", last.Query),
		RawQuery:           query,
		ParseSuccess:       true,
	}
}

// locationIndicators flag questions about places. A location question must
// never inherit an entity filter from an earlier turn.
var locationIndicators = []string{
	"located in", "in penang", "in johor", "in kuala lumpur", "in selangor",
	"in sabah", "in kedah", "in perak", "in melaka", "in negeri", "in pahang",
	"in muar", "in taiping", "in ipoh", "in klang", "in seremban",
	"in kota kinabalu", "in george town", "in sungai petani", "in kuantan",
	"location", "located", "based in", "situated in",
}

func isLocationQuery(query string) bool {
	queryLower := strings.ToLower(query)
	for _, ind := range locationIndicators {
		if strings.Contains(queryLower, ind) {
			return true
		}
	}
	return false
}

// entityNoiseWords are dropped when reducing a question to its likely
// entity words for bleed detection.
var entityNoiseWords = map[string]struct{}{
	"does": {}, "do": {}, "is": {}, "what": {}, "which": {}, "how": {}, "far": {},
	"often": {}, "type": {}, "of": {}, "the": {}, "a": {}, "an": {}, "for": {},
	"have": {}, "use": {}, "run": {}, "business": {}, "carry": {}, "out": {},
	"keep": {}, "detailed": {}, "records": {}, "standard": {}, "operating": {},
	"procedure": {}, "in": {}, "place": {}, "armed": {}, "guards": {},
	"during": {}, "transit": {}, "background": {}, "checks": {}, "long": {},
	"retain": {}, "cctv": {}, "recordings": {}, "safe": {}, "grade": {},
	"nearest": {}, "police": {}, "station": {}, "strong": {}, "room": {},
	"door": {}, "access": {}, "backup": {}, "and": {}, "with": {}, "their": {},
	"them": {}, "that": {}, "this": {}, "from": {}, "are": {}, "has": {},
	"had": {}, "its": {}, "stock": {}, "check": {}, "movements": {},
	"contract": {}, "maintenance": {}, "used": {}, "using": {}, "get": {},
	"give": {}, "tell": {}, "show": {}, "sop": {}, "much": {}, "many": {},
	"where": {}, "when": {}, "who": {}, "proposals": {}, "located": {},
	"based": {}, "situated": {}, "count": {}, "number": {},
}

func entityWords(query string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, "?.,!")
		if len(w) <= 2 {
			continue
		}
		if _, noise := entityNoiseWords[w]; noise {
			continue
		}
		words = append(words, w)
		if len(words) == 4 {
			break
		}
	}
	return words
}

// HistorySection renders the conversation history block for the parse
// prompt. When the current question switches to a different entity, or asks
// about a location, inherited filters are suppressed so stale names cannot
// bleed into the new parse.
func (m *ContextManager) HistorySection(currentQuery string) string {
	m.mu.Lock()
	turns := make([]historyTurn, len(m.turns))
	copy(turns, m.turns)
	m.mu.Unlock()

	if len(turns) == 0 {
		return ""
	}

	suppress := false
	if currentQuery != "" {
		if isLocationQuery(currentQuery) {
			suppress = true
		} else if lastContains := turns[len(turns)-1].FilterContains; lastContains != "" {
			current := entityWords(currentQuery)
			last := entityWords(lastContains)
			if len(current) > 0 && len(last) > 0 && !wordsOverlap(current, last) {
				suppress = true
			}
		}
	}

	if suppress {
		for i := range turns {
			turns[i].FilterContains = ""
			turns[i].FilterField = ""
			turns[i].FilterValue = ""
		}
	}

	var b strings.Builder
	b.WriteString("CONVERSATION HISTORY (most recent turn is the most relevant for follow-up references):\n")
	for i, turn := range turns {
		fmt.Fprintf(&b, "Turn %d:\n", i+1)
		fmt.Fprintf(&b, "  User asked: %s\n", turn.Query)
		fmt.Fprintf(&b, "  Understood as: %s\n", turn.UnderstoodQuestion)
		if turn.FilterField != "" || turn.FilterContains != "" {
			fmt.Fprintf(&b, "  Intent: %s, Filter: %s=%s, Contains: %s\n",
				turn.Intent, turn.FilterField, turn.FilterValue, turn.FilterContains)
		}
		fmt.Fprintf(&b, "  Answer given: %s\n", turn.AnswerPreview)
	}

	last := turns[len(turns)-1]
	b.WriteString("\n=== MOST RECENT TURN (use this for follow-up references like 'their', 'these', 'those', 'them', 'the names') ===\n")
	fmt.Fprintf(&b, "  Last question: %s\n", last.Query)
	fmt.Fprintf(&b, "  Last answer: %s\n", last.AnswerPreview)
	if last.FilterField != "" {
		fmt.Fprintf(&b, "  Last filter: %s=%s\n", last.FilterField, last.FilterValue)
	}
	if last.FilterContains != "" {
		fmt.Fprintf(&b, "  Last contains search: %s\n", last.FilterContains)
	}
	b.WriteString("\nCRITICAL RULE FOR FOLLOW-UPS: When the user says 'their names', 'give names', 'list them', 'what are they', etc.,\n")
	b.WriteString("you MUST use the EXACT SAME filter_field, filter_value, and filter_contains from the MOST RECENT turn above.\n")
	b.WriteString("Change intent to 'list' and set output_fields=['business_name_label'].\n\n")
	return b.String()
}

// RecentExchanges returns up to n of the latest turns as question/answer
// lines, oldest first, for inclusion in retrieval prompts.
func (m *ContextManager) RecentExchanges(n int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}
	var lines []string
	for _, turn := range m.turns[start:] {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", turn.Query, turn.AnswerPreview))
	}
	return lines
}

func wordsOverlap(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	for _, w := range b {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func preview(answer string) string {
	if len(answer) > 200 {
		return answer[:200]
	}
	return answer
}
