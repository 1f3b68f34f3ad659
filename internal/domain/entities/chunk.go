package entities

// ProposalChunk is one section of one proposal record, rendered as
// retrievable text with both the raw coded fields and their decoded values.
type ProposalChunk struct {
	ID            string            `json:"id" db:"id"`
	QuoteID       string            `json:"quote_id" db:"quote_id"`
	Section       string            `json:"section" db:"section"`
	Text          string            `json:"text" db:"text"`
	Fields        map[string]any    `json:"fields" db:"-"`
	DecodedFields map[string]string `json:"decoded_fields" db:"-"`
	RiskLocation  string            `json:"risk_location" db:"risk_location"`
	UserName      string            `json:"user_name" db:"user_name"`
	Embedding     []float32         `json:"embedding,omitempty" db:"-"`
}

// ScoredChunk pairs a chunk with its similarity score for one query.
type ScoredChunk struct {
	Chunk ProposalChunk `json:"chunk"`
	Score float64       `json:"score"`
}

// ProposalRow is one raw row from the proposal source table before section
// extraction. Section columns hold JSON payloads as stored.
type ProposalRow struct {
	QuoteID      string            `json:"quote_id" db:"quote_id"`
	RiskLocation string            `json:"risk_location" db:"risk_location"`
	UserName     string            `json:"user_name" db:"user_name"`
	Sections     map[string]string `json:"sections" db:"-"`
	ShopLifting  string            `json:"shop_lifting" db:"shop_lifting"`
}
