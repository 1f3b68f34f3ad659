package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jaassure/proposal-intelligence/internal/adapters/search"
	"github.com/jaassure/proposal-intelligence/internal/adapters/store"
	"github.com/jaassure/proposal-intelligence/internal/application/services"
	"github.com/jaassure/proposal-intelligence/internal/evaluation"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/ollama"
	"github.com/jaassure/proposal-intelligence/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	snapshot, err := store.LoadSnapshot(cfg.Engine.SnapshotPath)
	if err != nil {
		log.Fatalf("Failed to load chunk snapshot: %v", err)
	}
	chunks, _ := snapshot.All(ctx)

	ollamaClient, err := ollama.NewClient(&cfg.Ollama)
	if err != nil {
		log.Fatalf("Failed to initialize Ollama client: %v", err)
	}

	qaStore := services.NewPredefinedQAStore(cfg.Engine.QAMatchThreshold)
	if err := qaStore.LoadFromFile(cfg.Engine.PredefinedQAPath); err != nil {
		log.Printf("Warning: failed to load predefined QA pairs: %v", err)
	} else if qaStore.Len() > 0 {
		if err := qaStore.EmbedAll(ctx, ollamaClient); err != nil {
			log.Printf("Warning: failed to embed predefined QA pairs: %v", err)
		}
	}

	// No audit repository: evaluation runs must not pollute the audit trail.
	engine := services.NewAnswerService(
		ollamaClient,
		ollamaClient,
		qaStore,
		services.NewQueryParser(ollamaClient, chunks),
		services.NewQueryExecutor(chunks),
		services.NewAnswerFormatter(ollamaClient),
		services.NewAnalyticalEngine(chunks),
		services.NewPromptBuilder(cfg.Engine.MaxContextChars),
		search.NewMemoryIndex(chunks),
		chunks,
		nil,
		services.AnswerServiceConfig{
			ChunkThreshold: cfg.Engine.ChunkThreshold,
			TopKChunks:     cfg.Engine.TopKChunks,
		},
	)

	goldenPath := os.Getenv("GOLDEN_QUERIES_PATH")
	if goldenPath == "" {
		goldenPath = "evaluation/golden_queries.json"
	}

	queries, err := evaluation.LoadGoldenQueries(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden queries: %v", err)
	}
	if err := evaluation.ValidateGoldenQueries(queries); err != nil {
		log.Fatalf("Invalid golden queries: %v", err)
	}

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		RefusalMessage: services.RefusalMessage,
	})

	runner := evaluation.NewRunner(engine, guardrails)
	summary, err := runner.Run(ctx, queries)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	if summary.RefusalViolations > 0 {
		os.Exit(1)
	}
}
