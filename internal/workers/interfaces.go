package workers

import (
	"context"

	"github.com/google/uuid"
)

// Job asks for one newsletter campaign to be sent.
type Job struct {
	NewsletterID uuid.UUID
	// RequireStatus, when set, is the only newsletter status the job may
	// start from.
	RequireStatus string
}

// JobProcessor runs a single job. Implementations must tolerate the same
// newsletter being submitted more than once.
type JobProcessor interface {
	// Process handles a single job. A returned error is logged; the job is
	// not retried.
	Process(ctx context.Context, job Job) error

	// Name returns the processor name for logging.
	Name() string
}

// WorkerPool defines the interface for managing a pool of job workers.
type WorkerPool interface {
	// Start initializes the worker pool with N workers.
	Start(ctx context.Context) error

	// Submit adds a job to the pool. Blocks if the queue is full.
	Submit(ctx context.Context, job Job) error

	// Launch queues a send without blocking. A full or stopped pool drops
	// the job and logs it.
	Launch(newsletterID uuid.UUID, fromStatus string)

	// Drain stops accepting new jobs and waits for in-flight jobs to complete.
	Drain(ctx context.Context) error

	// Stop immediately stops all workers.
	Stop()
}
