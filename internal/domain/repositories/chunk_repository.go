package repositories

import (
	"context"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// ChunkRepository gives deterministic access to the full chunk set. The
// query executor walks all chunks; retrieval goes through the vector index.
type ChunkRepository interface {
	// All returns every indexed chunk.
	All(ctx context.Context) ([]entities.ProposalChunk, error)

	// ByQuoteID returns the chunks of one proposal record.
	ByQuoteID(ctx context.Context, quoteID string) ([]entities.ProposalChunk, error)

	// QuoteIDs returns the distinct record identifiers.
	QuoteIDs(ctx context.Context) ([]string, error)
}
