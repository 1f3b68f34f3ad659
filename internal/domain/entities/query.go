package entities

// QueryIntent classifies what execution branch a question needs.
type QueryIntent string

const (
	IntentLookup     QueryIntent = "lookup"
	IntentCount      QueryIntent = "count"
	IntentList       QueryIntent = "list"
	IntentCompare    QueryIntent = "compare"
	IntentOutOfScope QueryIntent = "out_of_scope"
)

// ParsedQuery is the structured form of a user question after parsing.
type ParsedQuery struct {
	Intent             QueryIntent `json:"intent"`
	TargetFields       []string    `json:"target_fields"`
	FilterField        string      `json:"filter_field,omitempty"`
	FilterValue        string      `json:"filter_value,omitempty"`
	FilterContains     string      `json:"filter_contains,omitempty"`
	QuoteID            string      `json:"quote_id,omitempty"`
	OutputFields       []string    `json:"output_fields"`
	UnderstoodQuestion string      `json:"understood_question"`
	RawQuery           string      `json:"raw_query"`
	ParseSuccess       bool        `json:"parse_success"`
}

// HasStructuredFilter reports whether execution can run a deterministic
// field filter instead of falling through to retrieval.
func (q *ParsedQuery) HasStructuredFilter() bool {
	return q.FilterField != "" || q.FilterContains != ""
}

// MatchedField is one resolved field for one proposal record.
type MatchedField struct {
	QuoteID      string `json:"quote_id"`
	BusinessName string `json:"business_name,omitempty"`
	Field        string `json:"field"`
	Value        string `json:"value"`
}

// QueryResult is the outcome of executing a parsed query against the
// chunk store. Success is false when execution could not resolve the
// question deterministically and the caller should fall back to retrieval.
type QueryResult struct {
	Success bool           `json:"success"`
	Data    []MatchedField `json:"data"`
	Count   int            `json:"count"`
	Summary string         `json:"summary"`
	Details []string       `json:"details"`
}
