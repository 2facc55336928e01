// Package worker drains the thumbnail queue.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/storage"
	"github.com/arzan03/FilesManager/internal/utils"
)

type JobSource interface {
	Next(ctx context.Context, timeout time.Duration) (models.ThumbnailJob, error)
}

type Processor interface {
	Process(ctx context.Context, job models.ThumbnailJob) error
}

type Worker struct {
	source      JobSource
	processor   Processor
	concurrency int
	poll        time.Duration
	log         logging.Logger
}

func New(source JobSource, processor Processor, concurrency int, log logging.Logger) *Worker {
	return &Worker{
		source:      source,
		processor:   processor,
		concurrency: concurrency,
		poll:        time.Second,
		log:         log.With("component", "worker"),
	}
}

// Run pulls jobs until ctx is cancelled, then waits for in-flight jobs.
func (w *Worker) Run(ctx context.Context) error {
	pool := utils.NewWorkerPool(w.concurrency)
	defer pool.Close()
	defer pool.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}

		job, err := w.source.Next(ctx, w.poll)
		if errors.Is(err, storage.ErrQueueEmpty) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Error(ctx, "read queue", "error", err)
			select {
			case <-time.After(w.poll):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		pool.Submit(ctx, func() {
			// finish the job even if shutdown started
			jobCtx := context.WithoutCancel(ctx)
			if err := w.processor.Process(jobCtx, job); err != nil {
				w.log.Warn(jobCtx, "job failed", "file_id", job.FileID, "error", err)
			}
		})
	}
}
