package main

// @title           Corpora Core API
// @version         1.0
// @description     Document ingestion and retrieval API. Corpora Core extracts, chunks and embeds documents into a vector store and serves relevant context for retrieval-augmented generation.

// @contact.name   Corpora OSS
// @contact.url    https://github.com/corpora-labs/corpora-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/corpora-labs/corpora-core/docs"
	"github.com/corpora-labs/corpora-core/internal/adapters/driven/ai"
	"github.com/corpora-labs/corpora-core/internal/adapters/driven/memory"
	"github.com/corpora-labs/corpora-core/internal/adapters/driven/postgres"
	"github.com/corpora-labs/corpora-core/internal/adapters/driven/qdrant"
	postgresqueue "github.com/corpora-labs/corpora-core/internal/adapters/driven/queue/postgres"
	redisqueue "github.com/corpora-labs/corpora-core/internal/adapters/driven/queue/redis"
	"github.com/corpora-labs/corpora-core/internal/adapters/driving/http"
	"github.com/corpora-labs/corpora-core/internal/chunker"
	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
	"github.com/corpora-labs/corpora-core/internal/core/services"
	"github.com/corpora-labs/corpora-core/internal/extractors"
	"github.com/corpora-labs/corpora-core/internal/worker"
)

var version = "dev"

func main() {
	// .env is optional; deployments usually set the environment directly
	_ = godotenv.Load()

	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "all")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("corpora-core %s starting in %s mode", version, mode)

	// Structured logging for everything past bootstrap
	logger := newLogger(getEnv("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Embedding provider =====
	embeddingSettings := &domain.EmbeddingSettings{
		Provider:   domain.AIProvider(getEnv("EMBEDDING_PROVIDER", "openai")),
		Model:      getEnv("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		APIKey:     getEnv("EMBEDDING_API_KEY", os.Getenv("OPENAI_API_KEY")),
		BaseURL:    getEnv("EMBEDDING_BASE_URL", ""),
		Dimensions: getEnvInt("EMBEDDING_DIMENSIONS", 0),
	}
	aiFactory := ai.NewFactory()
	embedder, err := aiFactory.CreateEmbeddingService(embeddingSettings)
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	if embedder == nil {
		log.Fatalf("Embedding provider is not configured: set EMBEDDING_API_KEY (or EMBEDDING_BASE_URL for self-hosted endpoints)")
	}
	defer embedder.Close()
	log.Printf("Embedding provider: %s model=%s dimensions=%d",
		embeddingSettings.Provider, embedder.Model(), embedder.Dimensions())

	// ===== Vector store =====
	var store driven.VectorStore
	storeBackend := getEnv("VECTOR_STORE", "qdrant")
	switch storeBackend {
	case "qdrant":
		qdrantCfg := qdrant.DefaultConfig(getEnv("QDRANT_URL", "http://localhost:6333"))
		qdrantCfg.APIKey = getEnv("QDRANT_API_KEY", "")
		qdrantCfg.Collection = getEnv("QDRANT_COLLECTION", "")
		store = qdrant.NewVectorStore(qdrantCfg)
		log.Printf("Using Qdrant vector store at %s", qdrantCfg.URL)
	case "memory":
		store = memory.NewVectorStore()
		log.Println("Using in-memory vector store (contents are lost on restart)")
	default:
		log.Fatalf("Unknown VECTOR_STORE: %s (use: qdrant or memory)", storeBackend)
	}

	if err := store.EnsureCollection(ctx, embedder.Dimensions()); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}

	// ===== Task Queue (Redis preferred, PostgreSQL fallback, else disabled) =====
	var taskQueue driven.TaskQueue
	redisURL := getEnv("REDIS_URL", "")
	databaseURL := getEnv("DATABASE_URL", "")
	switch {
	case redisURL != "":
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		taskQueue, err = redisqueue.NewQueue(redisClient, fmt.Sprintf("worker-%d", os.Getpid()))
		if err != nil {
			log.Fatalf("Failed to create task queue: %v", err)
		}
		log.Println("Using Redis task queue")

	case databaseURL != "":
		log.Println("Connecting to PostgreSQL...")
		dbCfg := postgres.DefaultConfig(databaseURL)
		dbCfg.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 25)
		dbCfg.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
		db, err := postgres.Connect(ctx, dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		taskQueue = postgresqueue.NewQueue(db.DB)
		log.Println("Using PostgreSQL task queue")

	default:
		log.Println("No REDIS_URL or DATABASE_URL set: async ingestion endpoints are disabled")
	}

	// ===== Ingestion pipeline =====
	registry := extractors.DefaultRegistry()
	textChunker, err := chunker.New(chunker.Config{
		MaxLen:  getEnvInt("CHUNK_MAX_LEN", 500),
		Overlap: getEnvInt("CHUNK_OVERLAP", 100),
	})
	if err != nil {
		log.Fatalf("Invalid chunker configuration: %v", err)
	}

	// Services (core business logic)
	ingestionService := services.NewIngestionService(services.IngestionConfig{
		Extractors: registry,
		Chunker:    textChunker,
		Embedder:   embedder,
		Store:      store,
		Logger:     logger,
	})
	retrievalService := services.NewRetrievalService(embedder, store, getEnvInt("RETRIEVAL_TOP_K", 5), logger)
	taskService := services.NewTaskService(taskQueue, registry, getEnvInt("TASK_MAX_ATTEMPTS", 3), logger)

	switch mode {
	case "api":
		// API-only mode: HTTP server, no worker
		runAPI(ctx, ingestionService, retrievalService, taskService, embedder, store, taskQueue, logger)

	case "worker":
		// Worker-only mode: task processing, no HTTP server
		if taskQueue == nil {
			log.Fatalf("Worker mode requires a task queue: set REDIS_URL or DATABASE_URL")
		}
		runWorker(ctx, taskQueue, ingestionService, logger)

	case "all":
		// Combined mode: run both API and worker
		if taskQueue != nil {
			go runWorker(ctx, taskQueue, ingestionService, logger)
		}
		runAPI(ctx, ingestionService, retrievalService, taskService, embedder, store, taskQueue, logger)

	default:
		log.Fatalf("Unknown mode: %s (use: api, worker, or all)", mode)
	}
}

func runAPI(
	ctx context.Context,
	ingestionService driving.IngestionService,
	retrievalService driving.RetrievalService,
	taskService driving.TaskService,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	taskQueue driven.TaskQueue,
	logger *slog.Logger,
) {
	cfg := http.Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnvInt("PORT", 8080),
		Version:        version,
		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	server := http.NewServer(
		cfg,
		ingestionService,
		retrievalService,
		taskService,
		embedder,
		store,
		taskQueue,
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	log.Printf("API server listening on %s:%d", cfg.Host, cfg.Port)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		log.Println("API server stopped")
	}
}

// runWorker starts the background task processor.
// It drains the queue until the context is cancelled.
func runWorker(
	ctx context.Context,
	taskQueue driven.TaskQueue,
	ingestionService driving.IngestionService,
	logger *slog.Logger,
) {
	log.Println("Starting worker...")

	w := worker.NewWorker(worker.WorkerConfig{
		TaskQueue:      taskQueue,
		Ingestor:       ingestionService,
		Logger:         logger,
		Concurrency:    getEnvInt("WORKER_CONCURRENCY", 4),
		DequeueTimeout: getEnvInt("WORKER_DEQUEUE_TIMEOUT", 5),
		PurgeInterval:  time.Duration(getEnvInt("WORKER_PURGE_INTERVAL", 3600)) * time.Second,
		TaskRetention:  getEnvInt("TASK_RETENTION", 86400),
	})

	if err := w.Start(ctx); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}
	log.Println("Worker started, processing ingest_file tasks")

	// Wait for context cancellation
	<-ctx.Done()

	// Graceful shutdown
	log.Println("Stopping worker...")
	w.Stop()
	log.Println("Worker stopped")
}

// Helper functions

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
