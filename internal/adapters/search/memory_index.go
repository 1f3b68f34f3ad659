package search

import (
	"context"
	"math"
	"sort"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// MemoryIndex is a flat vector index over the chunk set. Vectors are
// normalized at build time, so inner product equals cosine similarity.
type MemoryIndex struct {
	chunks  []entities.ProposalChunk
	vectors [][]float32
}

// NewMemoryIndex builds the index from chunks that carry embeddings. Chunks
// without an embedding are skipped.
func NewMemoryIndex(chunks []entities.ProposalChunk) *MemoryIndex {
	idx := &MemoryIndex{}
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		idx.chunks = append(idx.chunks, chunk)
		idx.vectors = append(idx.vectors, Normalize(chunk.Embedding))
	}
	return idx
}

// Search returns up to topK chunks ranked by cosine similarity.
func (idx *MemoryIndex) Search(ctx context.Context, vector []float32, topK int) ([]entities.ScoredChunk, error) {
	if topK <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := Normalize(vector)

	scored := make([]entities.ScoredChunk, 0, len(idx.vectors))
	for i, v := range idx.vectors {
		scored = append(scored, entities.ScoredChunk{
			Chunk: idx.chunks[i],
			Score: dot(query, v),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// Size reports how many chunks are indexed.
func (idx *MemoryIndex) Size() int {
	return len(idx.chunks)
}

// Normalize returns a unit-length copy of the vector. A zero vector comes
// back unchanged.
func Normalize(vector []float32) []float32 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vector
	}
	norm := float32(math.Sqrt(sum))

	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = v / norm
	}
	return out
}

// CosineSimilarity computes cosine similarity between two raw vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
