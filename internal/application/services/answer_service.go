package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	"github.com/jaassure/proposal-intelligence/pkg/utils"
)

// Answer branches, recorded in the audit trail and metrics.
const (
	BranchPredefined = "predefined"
	BranchUnderstood = "understood"
	BranchAnalytical = "analytical"
	BranchStructured = "structured"
	BranchSemantic   = "semantic"
	BranchRefused    = "refused"
)

// AnswerServiceConfig carries the retrieval tuning knobs.
type AnswerServiceConfig struct {
	ChunkThreshold float64
	TopKChunks     int
}

// AnswerService orchestrates the answer cascade. Cheap deterministic
// branches run first; vector retrieval plus generation is the last resort
// before refusing outright.
type AnswerService struct {
	embedder   providers.Embedder
	llm        providers.Generator
	qaStore    *PredefinedQAStore
	parser     *QueryParser
	executor   *QueryExecutor
	formatter  *AnswerFormatter
	analytical *AnalyticalEngine
	prompts    *PromptBuilder
	index      providers.VectorIndex
	chunks     []entities.ProposalChunk
	audits     repositories.AuditRepository

	chunkThreshold float64
	topK           int
}

func NewAnswerService(
	embedder providers.Embedder,
	llm providers.Generator,
	qaStore *PredefinedQAStore,
	parser *QueryParser,
	executor *QueryExecutor,
	formatter *AnswerFormatter,
	analytical *AnalyticalEngine,
	prompts *PromptBuilder,
	index providers.VectorIndex,
	chunks []entities.ProposalChunk,
	audits repositories.AuditRepository,
	cfg AnswerServiceConfig,
) *AnswerService {
	if cfg.ChunkThreshold <= 0 {
		cfg.ChunkThreshold = 0.5
	}
	if cfg.TopKChunks <= 0 {
		cfg.TopKChunks = 5
	}
	return &AnswerService{
		embedder:       embedder,
		llm:            llm,
		qaStore:        qaStore,
		parser:         parser,
		executor:       executor,
		formatter:      formatter,
		analytical:     analytical,
		prompts:        prompts,
		index:          index,
		chunks:         chunks,
		audits:         audits,
		chunkThreshold: cfg.ChunkThreshold,
		topK:           cfg.TopKChunks,
	}
}

// Answer resolves a question within a session and reports which branch
// produced the answer.
func (s *AnswerService) Answer(ctx context.Context, sessionID string, session *ContextManager, question string) (string, string) {
	started := time.Now()
	question = strings.TrimSpace(question)
	quoteID := ExtractQuoteID(question)

	answer, branch := s.answer(ctx, sessionID, session, question, quoteID)
	recordQuery(ctx, branch, time.Since(started).Seconds())
	return answer, branch
}

func (s *AnswerService) answer(ctx context.Context, sessionID string, session *ContextManager, question, quoteID string) (string, string) {
	// Predefined QA fast path. A near-duplicate of a curated question gets
	// the curated answer with no model involvement.
	queryEmbedding, embedErr := s.embedder.Embed(ctx, question)
	if embedErr != nil {
		log.Warn().Err(embedErr).Msg("query embedding failed, skipping fast path")
	} else if match, ok := s.qaStore.FindMatch(queryEmbedding); ok {
		answer := utils.CleanOutput(match.Pair.Answer)
		session.AddRaw(question, answer)
		s.logQuery(ctx, sessionID, question, BranchPredefined, quoteID, 0, match.Score, answer)
		return answer, BranchPredefined
	}

	// Structured query understanding: parse, execute deterministically,
	// format. A failed lookup falls through rather than answering wrong.
	parsed := s.parser.Parse(ctx, question, session)
	if parsed.Intent == entities.IntentOutOfScope {
		session.AddRaw(question, RefusalMessage)
		s.logQuery(ctx, sessionID, question, BranchRefused, quoteID, 0, 0, RefusalMessage)
		return RefusalMessage, BranchRefused
	}
	if parsed.ParseSuccess {
		result := s.executor.Execute(parsed)
		if s.acceptResult(parsed, result) {
			answer := s.formatter.Format(ctx, parsed, result)
			session.Add(question, parsed, answer)
			s.logQuery(ctx, sessionID, question, BranchUnderstood, quoteID, 0, 0, answer)
			return answer, BranchUnderstood
		}
	}

	// Legacy keyword classifiers.
	switch ClassifyQuery(question) {
	case ClassAnalytical:
		if result := s.analytical.Run(question); result != "" {
			session.AddRaw(question, result)
			s.logQuery(ctx, sessionID, question, BranchAnalytical, quoteID, 0, 0, result)
			return result, BranchAnalytical
		}
	case ClassStructured:
		if quoteID != "" {
			if answer := s.structuredLookup(question, quoteID); answer != "" {
				session.AddRaw(question, answer)
				s.logQuery(ctx, sessionID, question, BranchStructured, quoteID, 0, 1.0, answer)
				return answer, BranchStructured
			}
		}
	}

	// Semantic retrieval with a hard threshold.
	chunks, topSimilarity := s.retrieve(ctx, queryEmbedding, quoteID)
	recordRetrieval(ctx, len(chunks), topSimilarity)

	if len(chunks) == 0 {
		session.AddRaw(question, RefusalMessage)
		s.logQuery(ctx, sessionID, question, BranchRefused, quoteID, 0, topSimilarity, RefusalMessage)
		return RefusalMessage, BranchRefused
	}

	contextTexts := make([]string, 0, len(chunks)+1)
	if recent := session.RecentExchanges(3); len(recent) > 0 {
		contextTexts = append(contextTexts, "Previous conversation:\n"+strings.Join(recent, "\n"))
	}
	for _, c := range chunks {
		contextTexts = append(contextTexts, c.Chunk.Text)
	}

	raw, err := s.llm.Generate(ctx, s.prompts.Build(question, contextTexts))
	answer := RefusalMessage
	branch := BranchRefused
	if err != nil {
		log.Error().Err(err).Msg("answer generation failed")
	} else {
		answer = utils.CleanOutput(utils.RemoveThinkingTags(raw))
		if answer == "" {
			answer = RefusalMessage
		} else {
			branch = BranchSemantic
		}
	}

	session.AddRaw(question, answer)
	s.logQuery(ctx, sessionID, question, branch, quoteID, len(chunks), topSimilarity, answer)
	return answer, branch
}

// acceptResult decides whether a deterministic execution is a final
// answer. A zero count is only definitive when the parse carried a
// structured filter; a filterless count has nothing to count, so it falls
// through. An entity lookup that resolved a name is definitive even when
// no record matched. Everything else needs at least one match.
func (s *AnswerService) acceptResult(parsed *entities.ParsedQuery, result *entities.QueryResult) bool {
	if !result.Success {
		return false
	}
	switch parsed.Intent {
	case entities.IntentCount, entities.IntentList:
		return parsed.HasStructuredFilter() || result.Count > 0
	case entities.IntentLookup:
		return parsed.QuoteID == "" || result.Count > 0
	default:
		return result.Count > 0
	}
}

// structuredLookup answers "what is the X of MYJADEQTnnn" by finding a
// field whose normalized name appears verbatim in the question.
func (s *AnswerService) structuredLookup(question, quoteID string) string {
	questionLower := strings.ToLower(question)

	for _, chunk := range s.chunks {
		if chunk.QuoteID != quoteID {
			continue
		}
		fields := searchFields(chunk)
		for _, fieldName := range sortedFieldNames(fields) {
			normalized := normalizeFieldName(fieldName)
			if strings.Contains(questionLower, normalized) {
				return fmt.Sprintf("%s for %s: %s", titleWords(normalized), quoteID, fields[fieldName])
			}
		}
	}
	return ""
}

// retrieve searches the vector index, keeps chunks above the threshold,
// and applies the optional quote filter. Twice the top-k is fetched so the
// filter has candidates to discard.
func (s *AnswerService) retrieve(ctx context.Context, queryEmbedding []float32, quoteIDFilter string) ([]entities.ScoredChunk, float64) {
	if len(queryEmbedding) == 0 || s.index == nil {
		return nil, 0
	}

	scored, err := s.index.Search(ctx, queryEmbedding, s.topK*2)
	if err != nil {
		log.Warn().Err(err).Msg("vector search failed")
		return nil, 0
	}

	var results []entities.ScoredChunk
	topSimilarity := 0.0
	for _, sc := range scored {
		if sc.Score > topSimilarity {
			topSimilarity = sc.Score
		}
		if sc.Score < s.chunkThreshold {
			continue
		}
		if quoteIDFilter != "" && sc.Chunk.QuoteID != quoteIDFilter {
			continue
		}
		results = append(results, sc)
		if len(results) >= s.topK {
			break
		}
	}
	return results, topSimilarity
}

func (s *AnswerService) logQuery(ctx context.Context, sessionID, query, branch, quoteID string, numChunks int, topSimilarity float64, answer string) {
	if s.audits == nil {
		return
	}
	entry := &entities.QueryAudit{
		ID:                 uuid.NewString(),
		Timestamp:          time.Now().UTC(),
		SessionID:          sessionID,
		Query:              query,
		QueryType:          branch,
		QuoteIDExtracted:   quoteID,
		NumChunksRetrieved: numChunks,
		TopSimilarityScore: math.Round(topSimilarity*10000) / 10000,
		AnswerLength:       len(answer),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("failed to persist query audit entry")
	}
}
