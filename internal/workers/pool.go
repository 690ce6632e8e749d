package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/observability"
)

var (
	ErrPoolNotStarted   = errors.New("worker pool not started")
	ErrPoolShuttingDown = errors.New("worker pool is shutting down")
	ErrQueueFull        = errors.New("worker pool queue is full")
)

// ProcessingResult represents the result of processing a job.
type ProcessingResult struct {
	Job   Job
	Error error
}

// ResultCallback is called after each job is processed.
type ResultCallback func(result ProcessingResult)

// WorkerPoolConfig holds configuration for the worker pool.
type WorkerPoolConfig struct {
	// NumWorkers is the number of campaigns that may send at the same time.
	NumWorkers int

	// QueueSize is the size of the job queue buffer.
	QueueSize int

	// DrainTimeout is the maximum time to wait for in-flight jobs
	// to complete during graceful shutdown. Jobs still running after it
	// see their context cancelled.
	DrainTimeout time.Duration

	// OnResult is called after each job is processed (optional).
	OnResult ResultCallback
}

// DefaultWorkerPoolConfig returns sensible defaults for a worker pool.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		NumWorkers:   4,
		QueueSize:    100,
		DrainTimeout: 30 * time.Second,
	}
}

// Pool implements the WorkerPool interface.
type Pool struct {
	config    WorkerPoolConfig
	processor JobProcessor
	logger    *observability.Logger

	jobChan chan Job
	wg      sync.WaitGroup

	// Lifecycle management
	mu       sync.RWMutex
	started  bool
	draining bool
	stopped  bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a new worker pool for processing jobs.
func NewWorkerPool(
	config WorkerPoolConfig,
	processor JobProcessor,
	logger *observability.Logger,
) *Pool {
	if config.NumWorkers <= 0 {
		config.NumWorkers = DefaultWorkerPoolConfig().NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerPoolConfig().QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = DefaultWorkerPoolConfig().DrainTimeout
	}

	return &Pool{
		config:    config,
		processor: processor,
		logger:    logger,
		jobChan:   make(chan Job, config.QueueSize),
	}
}

// Start initializes the worker pool with N workers.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.stopped {
		return fmt.Errorf("worker pool already stopped")
	}

	// Workers outlive the request that started the process.
	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancelFn = cancel
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(workerCtx, i)
	}

	p.logger.Info(ctx, fmt.Sprintf("Started %d workers for %s processor",
		p.config.NumWorkers, p.processor.Name()))

	return nil
}

// Submit adds a job to the worker pool for processing.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	// The read lock is held while sending so Drain cannot close the channel
	// under a blocked sender.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.started {
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		return ErrPoolShuttingDown
	}

	select {
	case p.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) trySubmit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.started {
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		return ErrPoolShuttingDown
	}

	select {
	case p.jobChan <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Launch queues a newsletter send and returns immediately. The job only
// runs if the newsletter is still in fromStatus when a worker picks it up.
func (p *Pool) Launch(newsletterID uuid.UUID, fromStatus string) {
	ctx := observability.WithFields(context.Background(),
		observability.Field{Key: "newsletter_id", Value: newsletterID},
	)
	if err := p.trySubmit(Job{NewsletterID: newsletterID, RequireStatus: fromStatus}); err != nil {
		p.logger.Error(ctx, "failed to queue newsletter send", err)
	}
}

// Drain stops accepting new jobs and waits for in-flight jobs to complete.
func (p *Pool) Drain(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		p.mu.Unlock()
		return fmt.Errorf("worker pool already draining")
	}
	p.draining = true
	close(p.jobChan)
	p.mu.Unlock()

	p.logger.Info(ctx, fmt.Sprintf("Draining worker pool for %s processor, %d jobs queued",
		p.processor.Name(), len(p.jobChan)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-done:
		p.logger.Info(ctx, fmt.Sprintf("Successfully drained worker pool for %s processor",
			p.processor.Name()))
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, fmt.Sprintf("Drain timeout exceeded for %s processor, cancelling in-flight jobs",
			p.processor.Name()))
		p.Stop()
		return fmt.Errorf("drain timeout exceeded")
	}
}

// Stop immediately stops all workers. In-flight jobs see their context
// cancelled.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true

	if p.cancelFn != nil {
		p.cancelFn()
	}

	if !p.draining {
		close(p.jobChan)
	}
}

// worker is the main worker loop that processes jobs from the queue.
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	workerCtx := observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: workerID},
		observability.Field{Key: "processor", Value: p.processor.Name()},
	)

	for {
		select {
		case <-ctx.Done():
			return

		case job, ok := <-p.jobChan:
			if !ok {
				return
			}

			jobCtx := observability.WithFields(workerCtx,
				observability.Field{Key: "newsletter_id", Value: job.NewsletterID},
			)

			err := p.processor.Process(jobCtx, job)
			if err != nil {
				p.logger.Error(jobCtx, fmt.Sprintf("Worker %d failed to process job", workerID), err)
			}

			if p.config.OnResult != nil {
				p.config.OnResult(ProcessingResult{
					Job:   job,
					Error: err,
				})
			}
		}
	}
}
