package providers

import (
	"context"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// VectorIndex answers nearest-neighbor queries over proposal chunks.
type VectorIndex interface {
	// Search returns up to topK chunks ranked by similarity to the vector.
	Search(ctx context.Context, vector []float32, topK int) ([]entities.ScoredChunk, error)

	// Size reports how many chunks are indexed.
	Size() int
}
