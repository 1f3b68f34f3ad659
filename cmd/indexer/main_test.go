package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/pkg/retry"
)

// flakyEmbedder fails every batch whose first text carries the marker.
type flakyEmbedder struct {
	failMarker string
	calls      int
}

func (f *flakyEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vectors, err := f.EmbedBatch(context.Background(), []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *flakyEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.failMarker != "" && len(texts) > 0 && strings.Contains(texts[0], f.failMarker) {
		return nil, errors.New("model unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func fastRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
		BackoffFactor: 1,
	}
}

func TestEmbedChunks_SkipsFailedBatch(t *testing.T) {
	chunks := []entities.ProposalChunk{
		{ID: "Q1:a", Text: "bad batch text"},
		{ID: "Q1:b", Text: "bad batch sibling"},
		{ID: "Q2:a", Text: "good batch text"},
		{ID: "Q2:b", Text: "good batch sibling"},
	}
	embedder := &flakyEmbedder{failMarker: "bad batch"}

	dimension, err := embedChunks(context.Background(), embedder, chunks, 2, fastRetryConfig())
	if err != nil {
		t.Fatalf("a single bad batch must not abort the run: %v", err)
	}
	if dimension != 3 {
		t.Fatalf("dimension = %d, want 3", dimension)
	}
	if chunks[0].Embedding != nil || chunks[1].Embedding != nil {
		t.Fatal("failed batch must leave its chunks without embeddings")
	}
	if chunks[2].Embedding == nil || chunks[3].Embedding == nil {
		t.Fatal("batches after a failure must still be embedded")
	}
	// 3 attempts on the bad batch, 1 on the good one.
	if embedder.calls != 4 {
		t.Fatalf("calls = %d, want 4", embedder.calls)
	}
}

func TestEmbedChunks_AbortsWhenEveryBatchFails(t *testing.T) {
	chunks := []entities.ProposalChunk{
		{ID: "Q1:a", Text: "bad batch text"},
		{ID: "Q2:a", Text: "bad batch text"},
	}
	embedder := &flakyEmbedder{failMarker: "bad batch"}

	if _, err := embedChunks(context.Background(), embedder, chunks, 1, fastRetryConfig()); err == nil {
		t.Fatal("a run with zero embedded batches must not write a snapshot")
	}
}

func TestEmbedChunks_StopsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := []entities.ProposalChunk{
		{ID: "Q1:a", Text: "bad batch text"},
		{ID: "Q2:a", Text: "good batch text"},
	}
	embedder := &flakyEmbedder{failMarker: "bad batch"}

	if _, err := embedChunks(ctx, embedder, chunks, 1, fastRetryConfig()); err == nil {
		t.Fatal("a cancelled context must abort instead of skipping ahead")
	}
}
