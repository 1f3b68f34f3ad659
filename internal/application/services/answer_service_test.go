package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jaassure/proposal-intelligence/internal/adapters/search"
	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, s.err
}

type capturingAuditRepo struct {
	entries []*entities.QueryAudit
}

func (r *capturingAuditRepo) Create(_ context.Context, entry *entities.QueryAudit) error {
	r.entries = append(r.entries, entry)
	return nil
}

func newTestAnswerService(t *testing.T, gen *stubGenerator, embedder *stubEmbedder) (*AnswerService, *capturingAuditRepo) {
	t.Helper()
	chunks := executorChunks()
	audits := &capturingAuditRepo{}

	qaStore := NewPredefinedQAStore(0.85)
	qaStore.Load([]entities.PredefinedQA{
		{
			Question:  "What does this system do?",
			Answer:    "It answers questions about insurance proposal records.",
			Embedding: []float32{0, 0, 1},
		},
	})

	svc := NewAnswerService(
		embedder,
		gen,
		qaStore,
		NewQueryParser(gen, chunks),
		NewQueryExecutor(chunks),
		NewAnswerFormatter(gen),
		NewAnalyticalEngine(chunks),
		NewPromptBuilder(0),
		search.NewMemoryIndex(chunks),
		chunks,
		audits,
		AnswerServiceConfig{ChunkThreshold: 0.5, TopKChunks: 5},
	)
	return svc, audits
}

func TestAnswer_PredefinedFastPath(t *testing.T) {
	gen := &stubGenerator{}
	svc, audits := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 0, 1}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "What does this system do?")
	if branch != BranchPredefined {
		t.Fatalf("branch = %q", branch)
	}
	if answer != "It answers questions about insurance proposal records." {
		t.Fatalf("answer = %q", answer)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("fast path must not call the model")
	}
	if len(audits.entries) != 1 || audits.entries[0].QueryType != BranchPredefined {
		t.Fatalf("audit entries = %+v", audits.entries)
	}
}

func TestAnswer_DeterministicCountBranch(t *testing.T) {
	// Embedding far from the predefined question so the fast path misses.
	gen := &stubGenerator{}
	svc, audits := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 1, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "How many proposals have an alarm?")
	if branch != BranchUnderstood {
		t.Fatalf("branch = %q", branch)
	}
	if answer != "1 proposal(s) match the criteria." {
		t.Fatalf("answer = %q", answer)
	}
	if session.Len() != 1 {
		t.Fatal("answered turn must be recorded in session history")
	}
	if audits.entries[0].QuoteIDExtracted != "" {
		t.Fatalf("quote id = %q", audits.entries[0].QuoteIDExtracted)
	}
}

func TestAnswer_FilterlessCountFallsThrough(t *testing.T) {
	// The parse succeeds but carries no filter, so its zero count is not an
	// answer. Nothing downstream can resolve the question either, so the
	// cascade must end in a refusal instead of a definitive wrong zero.
	gen := &stubGenerator{response: `{"intent": "count", "understood_question": "Count all proposals"}`}
	svc, _ := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 1, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "How many proposals are there?")
	if branch == BranchUnderstood {
		t.Fatalf("filterless count answered deterministically: %q", answer)
	}
	if strings.Contains(answer, "0 proposals match") {
		t.Fatalf("answer = %q", answer)
	}
	if branch != BranchRefused || answer != RefusalMessage {
		t.Fatalf("branch = %q, answer = %q", branch, answer)
	}
}

func TestAnswer_EntityLookupNotFoundIsDefinitive(t *testing.T) {
	gen := &stubGenerator{response: `{"intent": "lookup", "filter_contains": "Acme Jewels", "output_fields": ["alarm_brand"]}`}
	svc, audits := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 1, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "What alarm brand does Acme Jewels use?")
	if branch != BranchUnderstood {
		t.Fatalf("branch = %q, answer = %q", branch, answer)
	}
	if answer != "No proposal found for 'Acme Jewels'." {
		t.Fatalf("answer = %q", answer)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("only the parse should reach the model, prompts = %d", len(gen.prompts))
	}
	if audits.entries[0].QueryType != BranchUnderstood {
		t.Fatalf("audit = %+v", audits.entries[0])
	}
}

func TestAnswer_OutOfScopeRefusesBeforeModel(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 1, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "Can you predict next year's claims?")
	if branch != BranchRefused {
		t.Fatalf("branch = %q", branch)
	}
	if answer != RefusalMessage {
		t.Fatalf("answer = %q", answer)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("out-of-scope questions must not reach the model")
	}
}

func TestAnswer_RefusesWhenRetrievalBelowThreshold(t *testing.T) {
	// The stub vector is orthogonal to every chunk embedding, so nothing
	// clears the similarity threshold.
	gen := &stubGenerator{response: "should never be used"}
	svc, audits := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{0, 1, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "describe the premises and ambience")
	if branch != BranchRefused {
		t.Fatalf("branch = %q, answer = %q", branch, answer)
	}
	if answer != RefusalMessage {
		t.Fatalf("answer = %q", answer)
	}
	last := audits.entries[len(audits.entries)-1]
	if last.QueryType != BranchRefused || last.NumChunksRetrieved != 0 {
		t.Fatalf("audit = %+v", last)
	}
}

func TestAnswer_SemanticBranchGeneratesFromChunks(t *testing.T) {
	gen := &stubGenerator{response: "**Yes**, the premises have CCTV recording."}
	svc, audits := newTestAnswerService(t, gen, &stubEmbedder{vector: []float32{1, 0, 0}})
	session := NewContextManager(5)

	answer, branch := svc.Answer(context.Background(), "s1", session, "describe the premises and ambience")
	if branch != BranchSemantic {
		t.Fatalf("branch = %q, answer = %q", branch, answer)
	}
	if strings.Contains(answer, "**") {
		t.Fatalf("markdown survived cleaning: %q", answer)
	}

	last := audits.entries[len(audits.entries)-1]
	if last.NumChunksRetrieved == 0 {
		t.Fatal("semantic audit entry must record retrieved chunks")
	}
	if last.TopSimilarityScore <= 0 {
		t.Fatal("semantic audit entry must record top similarity")
	}

	// The grounded prompt must carry the retrieved record text.
	prompt := gen.prompts[len(gen.prompts)-1]
	if !strings.Contains(prompt, "=== PROPOSAL RECORDS ===") {
		t.Fatalf("prompt = %q", prompt)
	}
}
