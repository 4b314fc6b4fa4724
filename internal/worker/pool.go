// worker/pool.go
package worker

import (
	"context"
	"fmt"
	"sync"
)

type Job[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	JobID  string
	Output T
	Err    error
}

// Pool runs submitted jobs on a fixed set of goroutines. Results arrive on
// Results in completion order; the channel is closed after Close once every
// job has finished.
type Pool[T any] struct {
	ctx     context.Context
	jobs    chan jobWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](ctx context.Context, workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		ctx:     ctx,
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		result := Result[T]{JobID: job.id}
		if err := p.ctx.Err(); err != nil {
			result.Err = err
		} else {
			result.Output, result.Err = job.fn(p.ctx)
		}
		p.results <- result
	}
}

func (p *Pool[T]) Submit(id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

// Close stops accepting jobs. Workers drain what was already submitted.
func (p *Pool[T]) Close() {
	close(p.jobs)
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Run executes jobs concurrently and returns their outputs by id. The first
// error wins; remaining results are still drained.
func Run[T any](ctx context.Context, workerCount int, jobs map[string]Job[T]) (map[string]T, error) {
	p := NewPool[T](ctx, workerCount, len(jobs))
	for id, fn := range jobs {
		p.Submit(id, fn)
	}
	p.Close()

	out := make(map[string]T, len(jobs))
	var firstErr error
	for r := range p.Results() {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.JobID, r.Err)
			}
			continue
		}
		out[r.JobID] = r.Output
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
