// pkg/concurrent/pool.go
package concurrent

import (
	"context"
	"sync"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/analyzer"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// Job represents a unit of work to be done
type Job interface {
	Do(ctx context.Context) error
}

// Pool is a worker pool that processes jobs concurrently
type Pool struct {
	workers int
	jobs    chan Job
	results chan error
	wg      sync.WaitGroup
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	return &Pool{
		workers: workers,
		jobs:    make(chan Job),
		results: make(chan error),
	}
}

// Start begins the worker pool
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Submit adds a job to the pool
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Results returns a channel that receives job results
func (p *Pool) Results() <-chan error {
	return p.results
}

// Stop gracefully shuts down the pool
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// worker processes jobs from the pool
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.results <- job.Do(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// AnalyzeJob scores one extracted record. The scorer is a pure function
// over read-only tables, so any number of these jobs may run in parallel.
type AnalyzeJob struct {
	Record *models.EmailRecord
	Result *models.AnalysisResult
}

// Do implements the Job interface for AnalyzeJob
func (j *AnalyzeJob) Do(ctx context.Context) error {
	*j.Result = analyzer.Analyze(j.Record)
	return nil
}

// RunAll pushes every job through a pool of the given width and waits for
// all of them. Submission happens from a separate goroutine so collection
// never deadlocks on the unbuffered channels.
func RunAll(ctx context.Context, workers int, jobs []Job) []error {
	if workers < 1 {
		workers = 1
	}

	pool := NewPool(workers)
	pool.Start(ctx)

	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
	}()

	var errs []error
	for i := 0; i < len(jobs); i++ {
		if err := <-pool.Results(); err != nil {
			errs = append(errs, err)
		}
	}
	pool.Stop()

	return errs
}
