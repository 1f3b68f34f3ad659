package entities

// PredefinedQA is one curated question/answer pair used for the embedding
// fast path before retrieval runs.
type PredefinedQA struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// QAMatch is a predefined pair together with its similarity to a question.
type QAMatch struct {
	Pair  PredefinedQA `json:"pair"`
	Score float64      `json:"score"`
}
