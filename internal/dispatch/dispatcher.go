package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"skincache/pkg/logging"
)

// Job is one deferred side effect. Jobs run after the triggering response has
// already been sent; their outcome is logged, never surfaced or retried.
type Job struct {
	ID   string
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher is a bounded task queue with a fixed worker pool. A full queue
// drops new jobs with a warning instead of blocking the request path.
type Dispatcher struct {
	jobs    chan Job
	workers int
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New creates a Dispatcher. Workers are not started until Start is called.
func New(queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		timeout: 30 * time.Second,
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := job.Run(ctx); err != nil {
			logging.Sugar.Warnw("side effect failed", "job", job.Name, "id", job.ID, "error", err)
		} else {
			logging.Sugar.Debugw("side effect done", "job", job.Name, "id", job.ID)
		}
		cancel()
	}
}

// Enqueue schedules a side effect. It never blocks: when the queue is full
// the job is dropped and the drop is logged.
func (d *Dispatcher) Enqueue(name string, run func(ctx context.Context) error) {
	job := Job{ID: uuid.New().String(), Name: name, Run: run}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logging.Sugar.Warnw("side effect rejected, dispatcher stopped", "job", name)
		return
	}
	select {
	case d.jobs <- job:
	default:
		logging.Sugar.Warnw("side effect dropped, queue full", "job", name, "id", job.ID)
	}
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}
