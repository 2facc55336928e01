package utils

import (
	"context"
	"sync"
)

// Task is a unit of work for RunParallel.
type Task[T any] func() (T, error)

// RunParallel executes tasks concurrently and returns results and errors
// in task order.
func RunParallel[T any](tasks []Task[T]) ([]T, []error) {
	var wg sync.WaitGroup
	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task[T]) {
			defer wg.Done()
			results[index], errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	return results, errs
}

// WorkerPool runs submitted functions on a fixed number of goroutines.
type WorkerPool struct {
	taskChan chan func()
	pending  sync.WaitGroup
	workers  sync.WaitGroup
}

// NewWorkerPool starts maxWorkers goroutines. Values below one are raised
// to one.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	pool := &WorkerPool{
		taskChan: make(chan func(), maxWorkers*2),
	}

	pool.workers.Add(maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		go pool.worker()
	}
	return pool
}

func (p *WorkerPool) worker() {
	defer p.workers.Done()
	for task := range p.taskChan {
		task()
		p.pending.Done()
	}
}

// Submit queues task, blocking while the buffer is full. It reports false
// if ctx ended first, in which case task will not run.
func (p *WorkerPool) Submit(ctx context.Context, task func()) bool {
	p.pending.Add(1)
	select {
	case p.taskChan <- task:
		return true
	case <-ctx.Done():
		p.pending.Done()
		return false
	}
}

// Wait blocks until every submitted task has finished.
func (p *WorkerPool) Wait() {
	p.pending.Wait()
}

// Close stops accepting work and waits for the workers to drain the queue.
// Submit must not be called after Close.
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workers.Wait()
}
