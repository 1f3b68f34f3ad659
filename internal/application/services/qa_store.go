package services

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jaassure/proposal-intelligence/internal/adapters/search"
	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"
)

const defaultQAMatchThreshold = 0.85

// PredefinedQAStore holds curated question-answer pairs. Questions are
// embedded once at startup; an incoming query close enough to a curated
// question returns the trusted answer without any model call.
type PredefinedQAStore struct {
	pairs     []entities.PredefinedQA
	threshold float64
}

func NewPredefinedQAStore(threshold float64) *PredefinedQAStore {
	if threshold <= 0 {
		threshold = defaultQAMatchThreshold
	}
	return &PredefinedQAStore{threshold: threshold}
}

// qaFile tolerates both a bare array and a wrapped object on disk.
type qaFile struct {
	QAPairs []entities.PredefinedQA `json:"qa_pairs"`
}

// LoadFromFile reads curated pairs from JSON. A missing file is not an
// error, the fast path is simply disabled.
func (s *PredefinedQAStore) LoadFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.pairs = nil
			return nil
		}
		return apperrors.NewInternalError("failed to read predefined QA file", err)
	}

	var pairs []entities.PredefinedQA
	if err := json.Unmarshal(raw, &pairs); err != nil {
		var wrapped qaFile
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return apperrors.NewValidationError("predefined QA file is not valid JSON")
		}
		pairs = wrapped.QAPairs
	}
	s.pairs = pairs
	return nil
}

// Load replaces the pair set directly.
func (s *PredefinedQAStore) Load(pairs []entities.PredefinedQA) {
	s.pairs = pairs
}

// EmbedAll computes embeddings for every curated question.
func (s *PredefinedQAStore) EmbedAll(ctx context.Context, embedder providers.Embedder) error {
	if len(s.pairs) == 0 {
		return nil
	}
	questions := make([]string, len(s.pairs))
	for i, qa := range s.pairs {
		questions[i] = qa.Question
	}
	embeddings, err := embedder.EmbedBatch(ctx, questions)
	if err != nil {
		return err
	}
	if len(embeddings) != len(s.pairs) {
		return apperrors.NewInternalError("embedding count does not match question count", nil)
	}
	for i := range s.pairs {
		s.pairs[i].Embedding = embeddings[i]
	}
	return nil
}

// FindMatch returns the curated answer whose question is most similar to
// the query embedding, provided it clears the threshold.
func (s *PredefinedQAStore) FindMatch(queryEmbedding []float32) (entities.QAMatch, bool) {
	var best entities.QAMatch
	found := false

	for _, qa := range s.pairs {
		if len(qa.Embedding) == 0 {
			continue
		}
		score := search.CosineSimilarity(queryEmbedding, qa.Embedding)
		if !found || score > best.Score {
			best = entities.QAMatch{Pair: qa, Score: score}
			found = true
		}
	}

	if !found || best.Score < s.threshold {
		return entities.QAMatch{}, false
	}
	return best, true
}

// Questions lists every curated question.
func (s *PredefinedQAStore) Questions() []string {
	questions := make([]string, len(s.pairs))
	for i, qa := range s.pairs {
		questions[i] = qa.Question
	}
	return questions
}

// Len reports the number of curated pairs.
func (s *PredefinedQAStore) Len() int {
	return len(s.pairs)
}
