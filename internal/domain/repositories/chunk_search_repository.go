package repositories

import (
	"context"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// ChunkSearchRepository is the keyword-search side of the chunk index,
// used for exact-term lookups that embedding similarity handles poorly.
type ChunkSearchRepository interface {
	// Index upserts one chunk document.
	Index(ctx context.Context, chunk *entities.ProposalChunk) error

	// IndexAll upserts every chunk.
	IndexAll(ctx context.Context, chunks []entities.ProposalChunk) error

	// Delete removes a chunk document by ID.
	Delete(ctx context.Context, id string) error

	// Search runs a keyword query and returns matching chunks.
	Search(ctx context.Context, query string, limit int) ([]entities.ProposalChunk, error)
}
