package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func TestQAStore_LoadFromFile_WrappedAndBare(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrapped.json")
	if err := os.WriteFile(wrapped, []byte(`{"qa_pairs": [{"question": "q1", "answer": "a1"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	bare := filepath.Join(dir, "bare.json")
	if err := os.WriteFile(bare, []byte(`[{"question": "q1", "answer": "a1"}, {"question": "q2", "answer": "a2"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewPredefinedQAStore(0.85)
	if err := store.LoadFromFile(wrapped); err != nil {
		t.Fatalf("wrapped load failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}

	store = NewPredefinedQAStore(0.85)
	if err := store.LoadFromFile(bare); err != nil {
		t.Fatalf("bare load failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("len = %d, want 2", store.Len())
	}
}

func TestQAStore_LoadFromFile_MissingFileIsNotAnError(t *testing.T) {
	store := NewPredefinedQAStore(0.85)
	if err := store.LoadFromFile(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("missing file should be tolerated, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("len = %d, want 0", store.Len())
	}
}

func TestQAStore_FindMatch_Threshold(t *testing.T) {
	store := NewPredefinedQAStore(0.85)
	store.Load([]entities.PredefinedQA{
		{Question: "what can you do?", Answer: "answer questions", Embedding: []float32{1, 0, 0}},
		{Question: "who built this?", Answer: "ja assure", Embedding: []float32{0, 1, 0}},
	})

	match, ok := store.FindMatch([]float32{0.99, 0.01, 0})
	if !ok {
		t.Fatal("expected a match above threshold")
	}
	if match.Pair.Answer != "answer questions" {
		t.Fatalf("matched wrong pair: %+v", match.Pair)
	}
	if match.Score < 0.85 {
		t.Fatalf("score = %f", match.Score)
	}

	if _, ok := store.FindMatch([]float32{0.5, 0.5, 0.7}); ok {
		t.Fatal("similarity below threshold must not match")
	}
}

func TestQAStore_EmbedAll(t *testing.T) {
	store := NewPredefinedQAStore(0.85)
	store.Load([]entities.PredefinedQA{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	embedder := &stubEmbedder{vector: []float32{0, 0, 1}}
	if err := store.EmbedAll(context.Background(), embedder); err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	if _, ok := store.FindMatch([]float32{0, 0, 1}); !ok {
		t.Fatal("embedded pairs should match their own vector")
	}
}
