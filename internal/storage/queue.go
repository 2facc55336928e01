package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/FilesManager/internal/models"
	"github.com/redis/go-redis/v9"
)

const thumbnailQueueKey = "queue:thumbnails"

// ErrQueueEmpty is returned by Next when no job arrived before the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// JobQueue is a FIFO of thumbnail jobs backed by a Redis list.
type JobQueue struct {
	rdb *redis.Client
}

func NewJobQueue(rdb *redis.Client) *JobQueue {
	return &JobQueue{rdb: rdb}
}

func (q *JobQueue) Publish(ctx context.Context, job models.ThumbnailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.RPush(ctx, thumbnailQueueKey, payload).Err()
}

// Next blocks up to timeout for the next job.
func (q *JobQueue) Next(ctx context.Context, timeout time.Duration) (models.ThumbnailJob, error) {
	var job models.ThumbnailJob

	res, err := q.rdb.BLPop(ctx, timeout, thumbnailQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return job, ErrQueueEmpty
	}
	if err != nil {
		return job, err
	}
	// res is [key, value]
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return job, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}
