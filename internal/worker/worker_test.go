package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/memstore"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
	want int
}

func (p *recordingProcessor) Process(_ context.Context, job models.ThumbnailJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, job.FileID)
	if len(p.seen) == p.want {
		close(p.done)
	}
	return nil
}

func TestWorker_ProcessesQueuedJobs(t *testing.T) {
	queue := memstore.NewJobs()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, queue.Publish(ctx, models.ThumbnailJob{FileID: id, UserID: "u"}))
	}

	proc := &recordingProcessor{done: make(chan struct{}), want: 3}
	w := New(queue, proc, 2, logging.Nop())

	runCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(runCtx) }()

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not processed")
	}
	cancel()
	require.NoError(t, <-errCh)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, proc.seen)
	assert.Empty(t, queue.Published())
}
