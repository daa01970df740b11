package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/swaggo/swag"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// maxUploadSize bounds document uploads
const maxUploadSize = 32 << 20 // 32 MB

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Task cancelled successfully"`
}

// HealthResponse represents the liveness response
// @Description API liveness response
type HealthResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"RAG AI API WORKING"`
	Version string `json:"version" example:"1.0.0"`
}

// ReadyResponse represents the readiness response
// @Description API readiness response with per-dependency checks
type ReadyResponse struct {
	Status  string            `json:"status" example:"success"`
	Message string            `json:"message" example:"ready"`
	Checks  map[string]string `json:"checks"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "success",
		Message: "RAG AI API WORKING",
		Version: s.version,
	})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks embedding provider, vector store and task queue)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	ready := true

	check := func(name string, err error) {
		if err != nil {
			checks[name] = err.Error()
			ready = false
			return
		}
		checks[name] = "ok"
	}

	if s.embedder != nil {
		check("embedding", s.embedder.HealthCheck(r.Context()))
	}
	if s.store != nil {
		check("vector_store", s.store.HealthCheck(r.Context()))
	}
	if s.queue != nil {
		check("queue", s.queue.Ping(r.Context()))
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status:  "error",
			Message: "not ready",
			Checks:  checks,
		})
		return
	}

	writeJSON(w, http.StatusOK, ReadyResponse{
		Status:  "success",
		Message: "ready",
		Checks:  checks,
	})
}

// Document endpoints

// UploadResponse represents a successful document ingestion
// @Description Document ingestion response
type UploadResponse struct {
	Status      string `json:"status" example:"success"`
	Message     string `json:"message" example:"Document processed and stored successfully"`
	DocumentID  string `json:"document_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ChunksCount int    `json:"chunks_count" example:"12"`
}

// handleUploadDocument godoc
// @Summary      Upload document
// @Description  Upload a document, run the ingestion pipeline and store it in the vector database
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document to ingest (PDF, TXT or MD)"
// @Success      201   {object}  UploadResponse
// @Failure      400   {object}  ErrorResponse  "Missing file, unsupported type or no extractable text"
// @Failure      500   {object}  ErrorResponse  "Pipeline failure"
// @Router       /documents [post]
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := s.ingestionService.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType),
			errors.Is(err, domain.ErrNoExtractableContent),
			errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Error processing document: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Status:      "success",
		Message:     "Document processed and stored successfully",
		DocumentID:  result.DocumentID,
		ChunksCount: result.ChunkCount,
	})
}

// Query endpoints

// queryRequest represents a retrieval query
// @Description Retrieval query request
type queryRequest struct {
	Query string `json:"query" example:"how do I rotate credentials"`
	// UserID is accepted for API compatibility and currently unused
	UserID string `json:"user_id,omitempty" example:"user-42"`
}

// QueryResponse represents the retrieved context for a query
// @Description Retrieval query response
type QueryResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Query processed successfully"`
	Context string `json:"context" example:"Credentials are rotated via..."`
}

// handleQuery godoc
// @Summary      Query documents
// @Description  Embed the query, search the vector store and return the matching chunk texts reassembled in document order
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      queryRequest  true  "Query"
// @Success      200      {object}  QueryResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body or empty query"
// @Failure      500      {object}  ErrorResponse  "Query failure"
// @Router       /query [post]
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.retrievalService.Retrieve(r.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, "Query cannot be empty")
		default:
			writeError(w, http.StatusInternalServerError, "Error processing query: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Status:  "success",
		Message: "Query processed successfully",
		Context: content,
	})
}

// Task endpoints

// enqueueRequest represents a queued ingestion request
// @Description Queued ingestion request
type enqueueRequest struct {
	Path     string `json:"path" example:"/data/docs"`
	Priority int    `json:"priority,omitempty" example:"0"`
}

// EnqueueResponse represents accepted ingestion tasks
// @Description Queued ingestion response
type EnqueueResponse struct {
	Status  string   `json:"status" example:"success"`
	Message string   `json:"message" example:"Ingestion queued successfully"`
	TaskIDs []string `json:"task_ids"`
}

// handleEnqueueIngestion godoc
// @Summary      Queue ingestion
// @Description  Queue ingestion of a file, or of every supported file in a directory
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        request  body      enqueueRequest  true  "Path to ingest"
// @Success      202      {object}  EnqueueResponse
// @Failure      400      {object}  ErrorResponse  "Invalid path or unsupported file type"
// @Failure      503      {object}  ErrorResponse  "Task queue not configured"
// @Failure      500      {object}  ErrorResponse  "Enqueue failure"
// @Router       /ingestions [post]
func (s *Server) handleEnqueueIngestion(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tasks, err := s.taskService.EnqueueIngestion(r.Context(), req.Path, req.Priority)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQueueNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrUnsupportedFileType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to queue ingestion")
		}
		return
	}

	taskIDs := make([]string, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.ID
	}

	writeJSON(w, http.StatusAccepted, EnqueueResponse{
		Status:  "success",
		Message: "Ingestion queued successfully",
		TaskIDs: taskIDs,
	})
}

// TaskResponse represents a single task
// @Description Task status response
type TaskResponse struct {
	Status  string       `json:"status" example:"success"`
	Message string       `json:"message" example:"Task retrieved successfully"`
	Task    *domain.Task `json:"task"`
}

// handleGetTask godoc
// @Summary      Get task
// @Description  Get the status of a queued ingestion task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  ErrorResponse  "Task not found"
// @Failure      503  {object}  ErrorResponse  "Task queue not configured"
// @Failure      500  {object}  ErrorResponse  "Lookup failure"
// @Router       /ingestions/{id} [get]
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	task, err := s.taskService.GetTask(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQueueNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get task")
		}
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, TaskResponse{
		Status:  "success",
		Message: "Task retrieved successfully",
		Task:    task,
	})
}

// TaskListResponse represents a page of tasks
// @Description Task list response
type TaskListResponse struct {
	Status  string         `json:"status" example:"success"`
	Message string         `json:"message" example:"Tasks retrieved successfully"`
	Tasks   []*domain.Task `json:"tasks"`
	Count   int            `json:"count" example:"2"`
}

// handleListTasks godoc
// @Summary      List tasks
// @Description  List queued ingestion tasks, optionally filtered by status and type
// @Tags         Tasks
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(pending, processing, completed, failed, cancelled)
// @Param        type    query     string  false  "Filter by type"
// @Param        limit   query     int     false  "Maximum number of tasks"  default(50)
// @Param        offset  query     int     false  "Number of tasks to skip"
// @Success      200     {object}  TaskListResponse
// @Failure      400     {object}  ErrorResponse  "Invalid pagination parameters"
// @Failure      503     {object}  ErrorResponse  "Task queue not configured"
// @Failure      500     {object}  ErrorResponse  "List failure"
// @Router       /ingestions [get]
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := driven.TaskFilter{
		Status: domain.TaskStatus(q.Get("status")),
		Type:   domain.TaskType(q.Get("type")),
		Limit:  50,
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		filter.Offset = offset
	}

	tasks, err := s.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQueueNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to list tasks")
		}
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	writeJSON(w, http.StatusOK, TaskListResponse{
		Status:  "success",
		Message: "Tasks retrieved successfully",
		Tasks:   tasks,
		Count:   len(tasks),
	})
}

// handleCancelTask godoc
// @Summary      Cancel task
// @Description  Cancel a pending ingestion task. Tasks already processing or finished cannot be cancelled.
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Task not found"
// @Failure      409  {object}  ErrorResponse  "Task is not pending"
// @Failure      503  {object}  ErrorResponse  "Task queue not configured"
// @Failure      500  {object}  ErrorResponse  "Cancel failure"
// @Router       /ingestions/{id} [delete]
func (s *Server) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.taskService.CancelTask(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "task not found")
		case errors.Is(err, domain.ErrTaskNotCancellable):
			writeError(w, http.StatusConflict, "task is not pending")
		case errors.Is(err, domain.ErrQueueNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to cancel task")
		}
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "Task cancelled successfully",
	})
}

// StatsResponse represents queue statistics
// @Description Queue statistics response
type StatsResponse struct {
	Status  string             `json:"status" example:"success"`
	Message string             `json:"message" example:"Queue statistics retrieved"`
	Stats   *driven.QueueStats `json:"stats"`
}

// handleQueueStats godoc
// @Summary      Queue statistics
// @Description  Get task queue statistics by status
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      503  {object}  ErrorResponse  "Task queue not configured"
// @Failure      500  {object}  ErrorResponse  "Stats failure"
// @Router       /queue/stats [get]
func (s *Server) handleQueueStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.taskService.QueueStats(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQueueNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get queue stats")
		}
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Status:  "success",
		Message: "Queue statistics retrieved",
		Stats:   stats,
	})
}

// Documentation endpoints

// handleSwaggerDoc serves the generated OpenAPI document,
// registered by the docs package at init time.
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "API documentation is not available")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Status: "error", Message: message})
}
