package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	ingestionService driving.IngestionService
	retrievalService driving.RetrievalService
	taskService      driving.TaskService

	// Infrastructure health probes
	embedder HealthChecker // embedding provider (optional)
	store    HealthChecker // vector store
	queue    Pinger        // task queue backend (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	ingestionService driving.IngestionService,
	retrievalService driving.RetrievalService,
	taskService driving.TaskService,
	embedder HealthChecker, // can be nil
	store HealthChecker,
	queue Pinger, // can be nil
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		logger:           logger,
		ingestionService: ingestionService,
		retrievalService: retrievalService,
		taskService:      taskService,
		embedder:         embedder,
		store:            store,
		queue:            queue,
	}

	logging := NewLoggingMiddleware(logger)
	recovery := NewRecoveryMiddleware(logger)
	cors := NewCORSMiddleware(cfg.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      logging.Handler(recovery.Handler(cors.Handler(s.router))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)

	// Document ingestion
	s.router.HandleFunc("POST /api/v1/documents", s.handleUploadDocument)

	// Retrieval
	s.router.HandleFunc("POST /api/v1/query", s.handleQuery)

	// Queued ingestion tasks
	s.router.HandleFunc("POST /api/v1/ingestions", s.handleEnqueueIngestion)
	s.router.HandleFunc("GET /api/v1/ingestions", s.handleListTasks)
	s.router.HandleFunc("GET /api/v1/ingestions/{id}", s.handleGetTask)
	s.router.HandleFunc("DELETE /api/v1/ingestions/{id}", s.handleCancelTask)
	s.router.HandleFunc("GET /api/v1/queue/stats", s.handleQueueStats)

	// API documentation
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)
}

// Start starts the HTTP server and blocks until it is shut down.
// Signal handling lives in main so the server and worker share one
// shutdown path.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
