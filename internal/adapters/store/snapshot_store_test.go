package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"
)

func sampleChunks() []entities.ProposalChunk {
	return []entities.ProposalChunk{
		{
			ID:      "MYJADEQT001:cctv",
			QuoteID: "MYJADEQT001",
			Section: "cctv",
			Text:    "Proposal MYJADEQT001 – CCTV Security:\nCCTV Recording: Yes",
			DecodedFields: map[string]string{
				"recording_label": "Yes",
			},
			Embedding: []float32{0.5, 0.5},
		},
		{
			ID:        "MYJADEQT002:alarm",
			QuoteID:   "MYJADEQT002",
			Section:   "alarm",
			Text:      "Proposal MYJADEQT002 – Alarm:\nAlarm Installed: No",
			Embedding: []float32{0.1, 0.9},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, WriteSnapshot(path, sampleChunks(), 2))

	store, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 2, store.Dimension())

	ids, err := store.QuoteIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MYJADEQT001", "MYJADEQT002"}, ids)

	chunks, err := store.ByQuoteID(context.Background(), "MYJADEQT001")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Yes", chunks[0].DecodedFields["recording_label"])
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestByQuoteID_Unknown(t *testing.T) {
	store := NewSnapshotStore(sampleChunks(), 2)
	_, err := store.ByQuoteID(context.Background(), "MYJADEQT999")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
