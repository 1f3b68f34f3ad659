package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func TestChunkDocument(t *testing.T) {
	chunk := &entities.ProposalChunk{
		ID:           "MYJADEQT010:alarm",
		QuoteID:      "MYJADEQT010",
		Section:      "alarm",
		Text:         "Proposal MYJADEQT010 – Alarm:\nAlarm Installed: Yes",
		RiskLocation: "Johor Bahru, Malaysia",
		UserName:     "Amirah Hassan",
	}

	doc := chunkDocument(chunk)

	assert.Equal(t, "MYJADEQT010:alarm", doc["id"])
	assert.Equal(t, "MYJADEQT010", doc["quote_id"])
	assert.Equal(t, "alarm", doc["section"])
	assert.Equal(t, "Johor Bahru, Malaysia", doc["risk_location"])
	assert.NotZero(t, doc["indexed_at"])
}

func TestChunkFromDocument(t *testing.T) {
	doc := map[string]interface{}{
		"id":            "MYJADEQT010:alarm",
		"quote_id":      "MYJADEQT010",
		"section":       "alarm",
		"text":          "Alarm Installed: Yes",
		"risk_location": "Johor Bahru, Malaysia",
		"user_name":     "Amirah Hassan",
		"indexed_at":    float64(1700000000),
	}

	chunk := chunkFromDocument(doc)

	assert.Equal(t, "MYJADEQT010", chunk.QuoteID)
	assert.Equal(t, "alarm", chunk.Section)
	assert.Equal(t, "Amirah Hassan", chunk.UserName)
	assert.Empty(t, chunk.Embedding)
}

func TestChunkFromDocument_MissingFields(t *testing.T) {
	chunk := chunkFromDocument(map[string]interface{}{"id": "x"})
	assert.Equal(t, "x", chunk.ID)
	assert.Empty(t, chunk.QuoteID)
	assert.Empty(t, chunk.Text)
}
