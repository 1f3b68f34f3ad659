// Package store holds the immutable in-memory chunk collection backing both
// the deterministic executor and the vector index. The collection is built by
// the indexer and persisted as a versioned JSON snapshot.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

const snapshotVersion = 1

// Snapshot is the on-disk artifact written by the indexer.
type Snapshot struct {
	Version   int                      `json:"version"`
	BuiltAt   time.Time                `json:"built_at"`
	Dimension int                      `json:"dimension"`
	Chunks    []entities.ProposalChunk `json:"chunks"`
}

// SnapshotStore serves chunks loaded from a snapshot. The chunk slice is
// never mutated after construction, so reads need no locking.
type SnapshotStore struct {
	chunks    []entities.ProposalChunk
	byQuoteID map[string][]entities.ProposalChunk
	quoteIDs  []string
	dimension int
}

// NewSnapshotStore wraps an already built chunk set.
func NewSnapshotStore(chunks []entities.ProposalChunk, dimension int) *SnapshotStore {
	byQuoteID := make(map[string][]entities.ProposalChunk)
	for _, chunk := range chunks {
		byQuoteID[chunk.QuoteID] = append(byQuoteID[chunk.QuoteID], chunk)
	}

	quoteIDs := make([]string, 0, len(byQuoteID))
	for id := range byQuoteID {
		quoteIDs = append(quoteIDs, id)
	}
	sort.Strings(quoteIDs)

	return &SnapshotStore{
		chunks:    chunks,
		byQuoteID: byQuoteID,
		quoteIDs:  quoteIDs,
		dimension: dimension,
	}
}

// LoadSnapshot reads a snapshot file and builds the store.
func LoadSnapshot(path string) (*SnapshotStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("snapshot not found at %s", path))
		}
		return nil, apperrors.NewInternalError("failed to read snapshot", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, apperrors.NewInternalError("failed to parse snapshot", err)
	}
	if snapshot.Version != snapshotVersion {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported snapshot version %d", snapshot.Version))
	}

	return NewSnapshotStore(snapshot.Chunks, snapshot.Dimension), nil
}

// WriteSnapshot persists a chunk set as a snapshot file.
func WriteSnapshot(path string, chunks []entities.ProposalChunk, dimension int) error {
	snapshot := Snapshot{
		Version:   snapshotVersion,
		BuiltAt:   time.Now().UTC(),
		Dimension: dimension,
		Chunks:    chunks,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode snapshot", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewInternalError("failed to write snapshot", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return apperrors.NewInternalError("failed to move snapshot into place", err)
	}
	return nil
}

// All returns every chunk.
func (s *SnapshotStore) All(_ context.Context) ([]entities.ProposalChunk, error) {
	return s.chunks, nil
}

// ByQuoteID returns the chunks of one proposal record.
func (s *SnapshotStore) ByQuoteID(_ context.Context, quoteID string) ([]entities.ProposalChunk, error) {
	chunks, ok := s.byQuoteID[quoteID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no chunks for quote %s", quoteID))
	}
	return chunks, nil
}

// QuoteIDs returns the distinct record identifiers in sorted order.
func (s *SnapshotStore) QuoteIDs(_ context.Context) ([]string, error) {
	return s.quoteIDs, nil
}

// Dimension reports the embedding dimension of the snapshot.
func (s *SnapshotStore) Dimension() int {
	return s.dimension
}

// Len reports the number of chunks.
func (s *SnapshotStore) Len() int {
	return len(s.chunks)
}
