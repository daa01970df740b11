package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driving"
)

// Ensure taskService implements TaskService
var _ driving.TaskService = (*taskService)(nil)

// taskService manages queued ingestion jobs on top of the task queue.
// The queue may be nil when no backend is configured; every method then
// returns ErrQueueNotConfigured.
type taskService struct {
	queue       driven.TaskQueue
	extractors  driven.ExtractorRegistry
	maxAttempts int
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService. Tasks it enqueues are retried
// up to maxAttempts times; values < 1 fall back to the domain default.
func NewTaskService(queue driven.TaskQueue, extractors driven.ExtractorRegistry, maxAttempts int, logger *slog.Logger) driving.TaskService {
	if maxAttempts < 1 {
		maxAttempts = domain.DefaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		queue:       queue,
		extractors:  extractors,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// EnqueueIngestion queues ingestion of the file at path.
// A directory path expands to one task per supported file directly inside
// it; the batch is enqueued atomically.
func (s *taskService) EnqueueIngestion(ctx context.Context, path string, priority int) ([]*domain.Task, error) {
	if s.queue == nil {
		return nil, domain.ErrQueueNotConfigured
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var tasks []*domain.Task
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || s.extractors.Get(entry.Name()) == nil {
				continue
			}
			task := domain.NewIngestFileTask(filepath.Join(path, entry.Name()))
			task.Priority = priority
			task.MaxAttempts = s.maxAttempts
			tasks = append(tasks, task)
		}
		if len(tasks) == 0 {
			return nil, fmt.Errorf("%w: no supported files in %s", domain.ErrInvalidInput, path)
		}
	} else {
		if s.extractors.Get(path) == nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filepath.Base(path))
		}
		task := domain.NewIngestFileTask(path)
		task.Priority = priority
		task.MaxAttempts = s.maxAttempts
		tasks = append(tasks, task)
	}

	if err := s.queue.EnqueueBatch(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to enqueue tasks: %w", err)
	}

	s.logger.Info("queued ingestion", "path", path, "tasks", len(tasks))
	return tasks, nil
}

// GetTask retrieves a task by ID
func (s *taskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if s.queue == nil {
		return nil, domain.ErrQueueNotConfigured
	}
	return s.queue.GetTask(ctx, id)
}

// ListTasks retrieves tasks matching the filter
func (s *taskService) ListTasks(ctx context.Context, filter driven.TaskFilter) ([]*domain.Task, error) {
	if s.queue == nil {
		return nil, domain.ErrQueueNotConfigured
	}
	return s.queue.ListTasks(ctx, filter)
}

// CancelTask cancels a pending task
func (s *taskService) CancelTask(ctx context.Context, id string) error {
	if s.queue == nil {
		return domain.ErrQueueNotConfigured
	}
	return s.queue.CancelTask(ctx, id)
}

// QueueStats returns queue statistics
func (s *taskService) QueueStats(ctx context.Context) (*driven.QueueStats, error) {
	if s.queue == nil {
		return nil, domain.ErrQueueNotConfigured
	}
	return s.queue.Stats(ctx)
}
