// Package workerpool is a small bounded goroutine pool, generalized from the
// teacher's worker/worker.go: a fixed number of goroutines drain a job
// channel under a deferred sentry.Recover(). A panic that escapes a job is
// reported to Sentry and ends that worker goroutine; it is not turned into
// an error. The placement scanner, the group enumerator and the
// orchestrator's scoring recover panics inside their own jobs and report
// them as errors.
package workerpool

import (
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted jobs on a fixed number of worker goroutines.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

// New starts a Pool with n worker goroutines. n is clamped to at least 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan func())}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	defer sentry.Recover()
	for job := range p.jobs {
		job()
	}
}

// Submit blocks until a worker accepts the job. Callers use this as the
// backpressure point: a pool with a bounded number of in-flight submissions
// should gate calls to Submit with its own semaphore rather than relying on
// channel buffering here.
func (p *Pool) Submit(job func()) {
	p.jobs <- job
}

// Close stops accepting new jobs and waits for in-flight jobs to finish.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
