package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jaassure/proposal-intelligence/internal/adapters/database"
	"github.com/jaassure/proposal-intelligence/internal/adapters/search"
	"github.com/jaassure/proposal-intelligence/internal/adapters/store"
	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/ollama"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/postgres"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/typesense"
	"github.com/jaassure/proposal-intelligence/internal/ingestion"
	"github.com/jaassure/proposal-intelligence/pkg/config"
	"github.com/jaassure/proposal-intelligence/pkg/retry"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	proposalRepo := database.NewProposalAdapter(pgClient)

	ollamaClient, err := ollama.NewClient(&cfg.Ollama)
	if err != nil {
		return err
	}

	rows, err := proposalRepo.FetchAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("Fetched %d proposal rows", len(rows))

	var chunks []entities.ProposalChunk
	for _, row := range rows {
		sections := ingestion.ExtractSections(row)
		chunks = append(chunks, ingestion.BuildChunks(sections)...)
	}
	log.Printf("Built %d chunks, embedding in batches of %d...", len(chunks), cfg.Engine.EmbedBatchSize)

	dimension, err := embedChunks(ctx, ollamaClient, chunks, cfg.Engine.EmbedBatchSize, retry.EmbedBatchConfig())
	if err != nil {
		return err
	}

	if err := store.WriteSnapshot(cfg.Engine.SnapshotPath, chunks, dimension); err != nil {
		return err
	}
	log.Printf("Snapshot written to %s", cfg.Engine.SnapshotPath)

	// Keyword index is best-effort; the snapshot alone is enough to serve.
	if err := indexKeywords(ctx, cfg, chunks, reset); err != nil {
		log.Printf("Warning: keyword indexing failed: %v", err)
	}

	log.Println("Indexing complete.")
	return nil
}

// embedChunks fills in chunk embeddings batch by batch and reports the
// vector dimension. A batch that exhausts its retries is skipped so one bad
// batch cannot lose the whole run; its chunks stay without embeddings and
// are simply invisible to vector search.
func embedChunks(ctx context.Context, embedder providers.Embedder, chunks []entities.ProposalChunk, batchSize int, retryConfig retry.Config) (int, error) {
	if batchSize <= 0 {
		batchSize = 16
	}

	dimension := 0
	skipped := 0
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		var vectors [][]float32
		err := retry.DoWithLog(
			ctx,
			retryConfig,
			"embed batch",
			func() error {
				var embedErr error
				vectors, embedErr = embedder.EmbedBatch(ctx, texts)
				return embedErr
			},
			func(attempt int, err error, nextDelay time.Duration) {
				log.Printf("Embed batch %d-%d attempt %d failed: %v. Retrying in %v...", start, end, attempt, err, nextDelay)
			},
		)
		if err != nil {
			if ctx.Err() != nil {
				return 0, err
			}
			skipped += end - start
			log.Printf("Skipping batch %d-%d after %d attempts: %v", start, end, retryConfig.MaxAttempts, err)
			continue
		}

		for i, vector := range vectors {
			chunks[start+i].Embedding = search.Normalize(vector)
			if dimension == 0 {
				dimension = len(vector)
			}
		}
		log.Printf("Embedded %d/%d chunks", end, len(chunks))
	}

	if skipped > 0 {
		log.Printf("Warning: %d chunk(s) left without embeddings", skipped)
	}
	// Every batch failed. Overwriting a working snapshot with one that has
	// no vectors would take retrieval down, so the run aborts instead.
	if dimension == 0 && len(chunks) > 0 {
		return 0, fmt.Errorf("embedding failed for every batch")
	}
	return dimension, nil
}

func indexKeywords(ctx context.Context, cfg *config.Config, chunks []entities.ProposalChunk, reset bool) error {
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting proposal_chunks collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.ChunksCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	return adapter.IndexAll(ctx, chunks)
}
