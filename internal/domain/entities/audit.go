package entities

import "time"

// QueryAudit is one answered question recorded for traceability.
type QueryAudit struct {
	ID                 string    `json:"id" db:"id"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
	SessionID          string    `json:"session_id" db:"session_id"`
	Query              string    `json:"query" db:"query"`
	QueryType          string    `json:"query_type" db:"query_type"`
	QuoteIDExtracted   string    `json:"quote_id_extracted" db:"quote_id_extracted"`
	NumChunksRetrieved int       `json:"num_chunks_retrieved" db:"num_chunks_retrieved"`
	TopSimilarityScore float64   `json:"top_similarity_score" db:"top_similarity_score"`
	AnswerLength       int       `json:"answer_length" db:"answer_length"`
}
