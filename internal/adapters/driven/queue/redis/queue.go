package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/corpora-labs/corpora-core/internal/core/domain"
	"github.com/corpora-labs/corpora-core/internal/core/ports/driven"
)

const (
	// Stream names
	taskStream     = "corpora:tasks"
	taskGroup      = "workers"
	scheduledTasks = "corpora:scheduled"

	// Key prefixes
	taskKeyPrefix = "corpora:task:"

	// Hash fields of a task key
	dataField = "data"
	msgField  = "msg"

	// Default consumer name prefix
	consumerPrefix = "worker-"

	// Task hash TTL - safety net on top of PurgeTasks
	taskTTL = 24 * time.Hour

	// Claim timeout - how long before a delivery is considered abandoned
	claimTimeout = 5 * time.Minute
)

// Verify interface compliance
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using Redis Streams.
// Redis Streams provide reliable message queuing with consumer groups,
// automatic acknowledgment tracking, and delivery reclaim for crashed
// workers. Task bodies live in hashes keyed corpora:task:<id>; the stream
// carries only references.
type Queue struct {
	client       *redis.Client
	consumerName string
}

// NewQueue creates a new Redis-backed task queue.
// The consumerName should be unique per worker instance (e.g., hostname + PID).
func NewQueue(client *redis.Client, consumerName string) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if consumerName == "" {
		consumerName = fmt.Sprintf("%s%d", consumerPrefix, time.Now().UnixNano())
	}

	q := &Queue{
		client:       client,
		consumerName: consumerName,
	}

	// Create consumer group if it doesn't exist
	ctx := context.Background()
	err := q.client.XGroupCreateMkStream(ctx, taskStream, taskGroup, "0").Err()
	if err != nil && !isGroupExistsError(err) {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return q, nil
}

// Enqueue adds a task to the queue for processing.
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.New("task is required")
	}

	pipe := q.client.Pipeline()
	if err := q.enqueueInPipe(ctx, pipe, task, time.Now()); err != nil {
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// EnqueueBatch adds multiple tasks to the queue atomically.
func (q *Queue) EnqueueBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	pipe := q.client.Pipeline()
	now := time.Now()

	for _, task := range tasks {
		if task == nil {
			continue
		}
		if err := q.enqueueInPipe(ctx, pipe, task, now); err != nil {
			return err
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue batch: %w", err)
	}

	return nil
}

// enqueueInPipe stores the task body and queues a reference, either on the
// stream or in the delayed set when the task is scheduled for later.
func (q *Queue) enqueueInPipe(ctx context.Context, pipe redis.Pipeliner, task *domain.Task, now time.Time) error {
	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task %s: %w", task.ID, err)
	}

	taskKey := taskKeyPrefix + task.ID
	pipe.HSet(ctx, taskKey, dataField, taskData)
	pipe.Expire(ctx, taskKey, taskTTL)

	if task.ScheduledFor.After(now) {
		// Millisecond scores so sub-second delays stay delayed
		pipe.ZAdd(ctx, scheduledTasks, redis.Z{
			Score:  float64(task.ScheduledFor.UnixMilli()),
			Member: task.ID,
		})
	} else {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: taskStream,
			Values: map[string]interface{}{
				"task_id":  task.ID,
				"type":     string(task.Type),
				"priority": task.Priority,
			},
		})
	}

	return nil
}

// Dequeue retrieves the next available task for processing.
// This blocks until a task is available or context is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (*domain.Task, error) {
	return q.DequeueWithTimeout(ctx, 0) // 0 means block forever
}

// DequeueWithTimeout retrieves the next available task, waiting up to timeout seconds.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	// First, promote any due scheduled tasks. Best effort.
	_ = q.promoteScheduledTasks(ctx)

	// Reclaim deliveries abandoned by crashed workers
	task, err := q.claimAbandonedTask(ctx)
	if err == nil && task != nil {
		return task, nil
	}

	blockDuration := time.Duration(timeout) * time.Second
	if timeout == 0 {
		blockDuration = 0 // Block forever
	}

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    taskGroup,
		Consumer: q.consumerName,
		Streams:  []string{taskStream, ">"},
		Count:    1,
		Block:    blockDuration,
	}).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No tasks available
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, nil
	}

	return q.takeDelivery(ctx, streams[0].Messages[0])
}

// takeDelivery resolves a stream message to its task, marks it processing
// and records the message ID for later ack/nack.
func (q *Queue) takeDelivery(ctx context.Context, msg redis.XMessage) (*domain.Task, error) {
	taskID, ok := msg.Values["task_id"].(string)
	if !ok {
		// Invalid message, acknowledge and skip
		q.client.XAck(ctx, taskStream, taskGroup, msg.ID)
		q.client.XDel(ctx, taskStream, msg.ID)
		return nil, nil
	}

	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task data: %w", err)
	}
	if task == nil {
		// Task body expired or purged, acknowledge and skip
		q.client.XAck(ctx, taskStream, taskGroup, msg.ID)
		q.client.XDel(ctx, taskStream, msg.ID)
		return nil, nil
	}

	task.MarkProcessing()

	taskData, _ := json.Marshal(task)
	taskKey := taskKeyPrefix + task.ID
	pipe := q.client.Pipeline()
	pipe.HSet(ctx, taskKey, dataField, taskData, msgField, msg.ID)
	pipe.Expire(ctx, taskKey, taskTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to mark task processing: %w", err)
	}

	return task, nil
}

// Ack acknowledges successful completion of a task.
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	taskKey := taskKeyPrefix + taskID

	msgID, err := q.client.HGet(ctx, taskKey, msgField).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to get message ID: %w", err)
	}

	pipe := q.client.Pipeline()

	if msgID != "" {
		pipe.XAck(ctx, taskStream, taskGroup, msgID)
		pipe.XDel(ctx, taskStream, msgID)
	}

	task, err := q.GetTask(ctx, taskID)
	if err == nil && task != nil {
		task.MarkCompleted()
		taskData, _ := json.Marshal(task)
		pipe.HSet(ctx, taskKey, dataField, taskData)
		pipe.Expire(ctx, taskKey, taskTTL)
	}

	pipe.HDel(ctx, taskKey, msgField)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to ack task: %w", err)
	}

	return nil
}

// Nack indicates task processing failed. The task is re-queued with
// backoff while attempts remain, otherwise marked failed.
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return domain.ErrTaskNotFound
	}

	taskKey := taskKeyPrefix + taskID
	msgID, _ := q.client.HGet(ctx, taskKey, msgField).Result()

	pipe := q.client.Pipeline()

	// Acknowledge the current delivery; a retry gets a fresh one
	if msgID != "" {
		pipe.XAck(ctx, taskStream, taskGroup, msgID)
		pipe.XDel(ctx, taskStream, msgID)
	}

	if task.CanRetry() {
		task.Retry(reason)
		taskData, _ := json.Marshal(task)
		pipe.HSet(ctx, taskKey, dataField, taskData)

		// Re-enqueue with backoff via the scheduled set
		pipe.ZAdd(ctx, scheduledTasks, redis.Z{
			Score:  float64(task.ScheduledFor.UnixMilli()),
			Member: task.ID,
		})
	} else {
		task.MarkFailed(reason)
		taskData, _ := json.Marshal(task)
		pipe.HSet(ctx, taskKey, dataField, taskData)
	}

	pipe.HDel(ctx, taskKey, msgField)
	pipe.Expire(ctx, taskKey, taskTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to nack task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID. Returns nil, nil when unknown.
func (q *Queue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	data, err := q.client.HGet(ctx, taskKeyPrefix+taskID, dataField).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	return &task, nil
}

// ListTasks retrieves tasks matching the filter criteria.
// Note: This is less efficient in Redis than Postgres for complex queries.
func (q *Queue) ListTasks(ctx context.Context, filter driven.TaskFilter) ([]*domain.Task, error) {
	tasks, err := q.scanTasks(ctx, func(task *domain.Task) bool {
		if filter.Status != "" && task.Status != filter.Status {
			return false
		}
		if filter.Type != "" && task.Type != filter.Type {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	// Apply offset and limit (simple slice, not efficient for large offsets)
	if filter.Offset > 0 {
		if filter.Offset >= len(tasks) {
			return []*domain.Task{}, nil
		}
		tasks = tasks[filter.Offset:]
	}
	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}

	return tasks, nil
}

// CancelTask marks a pending task as cancelled.
func (q *Queue) CancelTask(ctx context.Context, taskID string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrTaskNotFound
	}
	if task.Status != domain.TaskStatusPending {
		return domain.ErrTaskNotCancellable
	}

	task.MarkCancelled()
	taskData, _ := json.Marshal(task)

	taskKey := taskKeyPrefix + taskID
	pipe := q.client.Pipeline()
	pipe.ZRem(ctx, scheduledTasks, taskID)
	pipe.HSet(ctx, taskKey, dataField, taskData)
	pipe.Expire(ctx, taskKey, taskTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}

	return nil
}

// PurgeTasks removes finished tasks older than the specified age.
func (q *Queue) PurgeTasks(ctx context.Context, olderThanSeconds int) (int, error) {
	cutoff := time.Now().Add(-time.Duration(olderThanSeconds) * time.Second)

	tasks, err := q.scanTasks(ctx, func(task *domain.Task) bool {
		return task.IsFinished() && task.UpdatedAt.Before(cutoff)
	})
	if err != nil {
		return 0, err
	}

	var purged int
	for _, task := range tasks {
		if err := q.client.Del(ctx, taskKeyPrefix+task.ID).Err(); err == nil {
			purged++
		}
	}

	return purged, nil
}

// Stats returns queue statistics computed from the task bodies.
// Requires a scan, so call it at human frequency, not in hot loops.
func (q *Queue) Stats(ctx context.Context) (*driven.QueueStats, error) {
	tasks, err := q.scanTasks(ctx, func(*domain.Task) bool { return true })
	if err != nil {
		return nil, err
	}

	stats := &driven.QueueStats{}
	var oldestPending time.Time

	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusPending:
			stats.PendingCount++
			if oldestPending.IsZero() || task.CreatedAt.Before(oldestPending) {
				oldestPending = task.CreatedAt
			}
		case domain.TaskStatusProcessing:
			stats.ProcessingCount++
		case domain.TaskStatusCompleted:
			stats.CompletedCount++
		case domain.TaskStatusFailed:
			stats.FailedCount++
		}
	}

	if !oldestPending.IsZero() {
		stats.OldestPendingAge = int64(time.Since(oldestPending).Seconds())
	}

	return stats, nil
}

// Ping checks if the queue backend is healthy.
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close cleans up resources.
func (q *Queue) Close() error {
	// Redis client is shared, don't close it here
	return nil
}

// scanTasks walks every task hash and returns the tasks accepted by keep.
func (q *Queue) scanTasks(ctx context.Context, keep func(*domain.Task) bool) ([]*domain.Task, error) {
	var tasks []*domain.Task
	var cursor uint64
	pattern := taskKeyPrefix + "*"

	for {
		keys, newCursor, err := q.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan tasks: %w", err)
		}

		for _, key := range keys {
			data, err := q.client.HGet(ctx, key, dataField).Result()
			if err != nil {
				continue
			}

			var task domain.Task
			if err := json.Unmarshal([]byte(data), &task); err != nil {
				continue
			}

			if keep(&task) {
				tasks = append(tasks, &task)
			}
		}

		cursor = newCursor
		if cursor == 0 {
			break
		}
	}

	return tasks, nil
}

// promoteScheduledTasks moves due scheduled tasks to the main stream.
func (q *Queue) promoteScheduledTasks(ctx context.Context) error {
	now := time.Now().UnixMilli()

	due, err := q.client.ZRangeByScore(ctx, scheduledTasks, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now),
	}).Result()
	if err != nil {
		return err
	}

	if len(due) == 0 {
		return nil
	}

	pipe := q.client.Pipeline()

	for _, taskID := range due {
		task, err := q.GetTask(ctx, taskID)
		if err != nil || task == nil {
			pipe.ZRem(ctx, scheduledTasks, taskID)
			continue
		}

		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: taskStream,
			Values: map[string]interface{}{
				"task_id":  task.ID,
				"type":     string(task.Type),
				"priority": task.Priority,
			},
		})
		pipe.ZRem(ctx, scheduledTasks, taskID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// claimAbandonedTask reclaims a delivery another worker left idle too long.
func (q *Queue) claimAbandonedTask(ctx context.Context) (*domain.Task, error) {
	claimed, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   taskStream,
		Group:    taskGroup,
		Consumer: q.consumerName,
		MinIdle:  claimTimeout,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil {
		return nil, err
	}

	for _, msg := range claimed {
		task, err := q.takeDelivery(ctx, msg)
		if err != nil {
			continue
		}
		if task != nil {
			return task, nil
		}
	}

	return nil, nil
}

func isGroupExistsError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}
