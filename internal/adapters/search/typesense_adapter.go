package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	tsclient "github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.ChunksCollection

// TypesenseAdapter implements keyword search over proposal chunks.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.ChunkSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts one chunk document.
func (a *TypesenseAdapter) Index(ctx context.Context, chunk *entities.ProposalChunk) error {
	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, chunkDocument(chunk))
	if err != nil {
		return fmt.Errorf("failed to index chunk: %w", err)
	}
	return nil
}

// IndexAll upserts every chunk. Indexing is idempotent, so re-running the
// indexer replaces stale documents in place.
func (a *TypesenseAdapter) IndexAll(ctx context.Context, chunks []entities.ProposalChunk) error {
	for i := range chunks {
		if err := a.Index(ctx, &chunks[i]); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a chunk from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete chunk from index: %w", err)
	}
	return nil
}

// Search runs a keyword query over chunk text and identity fields.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]entities.ProposalChunk, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("text,quote_id,user_name,risk_location"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	chunks := []entities.ProposalChunk{}
	if result.Hits == nil {
		return chunks, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		chunks = append(chunks, chunkFromDocument(*hit.Document))
	}

	return chunks, nil
}

func chunkDocument(chunk *entities.ProposalChunk) map[string]interface{} {
	return map[string]interface{}{
		"id":            chunk.ID,
		"quote_id":      chunk.QuoteID,
		"section":       chunk.Section,
		"text":          chunk.Text,
		"risk_location": chunk.RiskLocation,
		"user_name":     chunk.UserName,
		"indexed_at":    time.Now().Unix(),
	}
}

// chunkFromDocument rebuilds the entity from a Typesense hit. Field maps and
// embeddings are not stored in Typesense; callers needing them go through the
// snapshot-backed chunk repository.
func chunkFromDocument(doc map[string]interface{}) entities.ProposalChunk {
	chunk := entities.ProposalChunk{}
	if v, ok := doc["id"].(string); ok {
		chunk.ID = v
	}
	if v, ok := doc["quote_id"].(string); ok {
		chunk.QuoteID = v
	}
	if v, ok := doc["section"].(string); ok {
		chunk.Section = v
	}
	if v, ok := doc["text"].(string); ok {
		chunk.Text = v
	}
	if v, ok := doc["risk_location"].(string); ok {
		chunk.RiskLocation = v
	}
	if v, ok := doc["user_name"].(string); ok {
		chunk.UserName = v
	}
	return chunk
}
