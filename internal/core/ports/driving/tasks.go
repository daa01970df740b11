package driving

import (
	"context"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

// TaskService manages queued ingestion jobs
type TaskService interface {
	// EnqueueIngestion queues ingestion of the file at path.
	// A directory path expands to one task per supported file inside it.
	EnqueueIngestion(ctx context.Context, path string, priority int) ([]*domain.Task, error)

	// GetTask retrieves a task by ID
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks retrieves tasks matching the filter
	ListTasks(ctx context.Context, filter driven.TaskFilter) ([]*domain.Task, error)

	// CancelTask cancels a pending task
	CancelTask(ctx context.Context, id string) error

	// QueueStats returns queue statistics
	QueueStats(ctx context.Context) (*driven.QueueStats, error)
}
