package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaassure/proposal-intelligence/internal/adapters/cache"
	"github.com/jaassure/proposal-intelligence/internal/adapters/database"
	"github.com/jaassure/proposal-intelligence/internal/adapters/search"
	"github.com/jaassure/proposal-intelligence/internal/adapters/store"
	"github.com/jaassure/proposal-intelligence/internal/api/handlers"
	"github.com/jaassure/proposal-intelligence/internal/api/middleware"
	"github.com/jaassure/proposal-intelligence/internal/api/routes"
	"github.com/jaassure/proposal-intelligence/internal/application/services"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/ollama"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/postgres"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/redis"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/clients/typesense"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/observability"
	"github.com/jaassure/proposal-intelligence/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Load the chunk snapshot built by the indexer
	snapshot, err := store.LoadSnapshot(cfg.Engine.SnapshotPath)
	if err != nil {
		log.Fatalf("Failed to load chunk snapshot from %s: %v", cfg.Engine.SnapshotPath, err)
	}
	chunks, _ := snapshot.All(ctx)
	log.Printf("Loaded %d chunks covering %d proposals", snapshot.Len(), len(mustQuoteIDs(ctx, snapshot)))

	// Initialize Ollama client for generation and embeddings
	ollamaClient, err := ollama.NewClient(&cfg.Ollama)
	if err != nil {
		log.Fatalf("Failed to initialize Ollama client: %v", err)
	}

	// Initialize database client for audit logging
	var auditRepo repositories.AuditRepository
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		log.Println("Query auditing disabled (PostgreSQL unavailable)")
	} else {
		defer pgClient.Close()
		auditRepo = database.NewAuditAdapter(pgClient)
		log.Println("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize Typesense client for keyword search
	var searchRepo repositories.ChunkSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
		log.Println("Typesense client initialized successfully")
	}

	// Load predefined QA pairs and embed any without stored vectors
	qaStore := services.NewPredefinedQAStore(cfg.Engine.QAMatchThreshold)
	if err := qaStore.LoadFromFile(cfg.Engine.PredefinedQAPath); err != nil {
		log.Printf("Warning: Failed to load predefined QA pairs: %v", err)
	} else if qaStore.Len() > 0 {
		if err := qaStore.EmbedAll(ctx, ollamaClient); err != nil {
			log.Printf("Warning: Failed to embed predefined QA pairs: %v", err)
		} else {
			log.Printf("Loaded %d predefined QA pairs", qaStore.Len())
		}
	}

	// Assemble the answer engine
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
		auditRepo,
		services.AnswerServiceConfig{
			ChunkThreshold: cfg.Engine.ChunkThreshold,
			TopKChunks:     cfg.Engine.TopKChunks,
		},
	)

	sessions := services.NewSessionRegistry(cfg.Engine.HistoryTurns)

	// Initialize handlers
	queryHandler := handlers.NewQueryHandler(engine, sessions, cacheProvider)
	recordHandler := handlers.NewRecordHandler(snapshot, searchRepo)
	healthHandler := handlers.NewHealthHandler(func() bool {
		return snapshot.Len() > 0
	})

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		queryHandler,
		recordHandler,
		healthHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func mustQuoteIDs(ctx context.Context, snapshot *store.SnapshotStore) []string {
	ids, _ := snapshot.QuoteIDs(ctx)
	return ids
}
