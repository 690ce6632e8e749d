package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
	"newsletter-server/internal/workers"
)

// SchedulerStore defines the database operations required by Scheduler
type SchedulerStore interface {
	ListDueScheduledNewsletters(ctx context.Context, now time.Time) ([]store.Newsletter, error)
	ClaimScheduledNewsletter(ctx context.Context, id uuid.UUID) error
	ReleaseScheduledClaim(ctx context.Context, id uuid.UUID) error
}

// Submitter queues a send job.
type Submitter interface {
	Submit(ctx context.Context, job workers.Job) error
}

// Scheduler periodically launches scheduled newsletters that are due. Each
// one is claimed first, so it is queued once and its job refuses to run if
// an admin paused it in the meantime.
type Scheduler struct {
	store         SchedulerStore
	submitter     Submitter
	logger        *observability.Logger
	checkInterval time.Duration
	now           func() time.Time
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewScheduler creates a new scheduler
func NewScheduler(store SchedulerStore, submitter Submitter, logger *observability.Logger, checkInterval time.Duration) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}

	return &Scheduler{
		store:         store,
		submitter:     submitter,
		logger:        logger,
		checkInterval: checkInterval,
		now:           time.Now,
		stopChan:      make(chan struct{}),
	}
}

// Start runs the scheduler loop until ctx is done or Stop is called
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info(ctx, fmt.Sprintf("Starting newsletter scheduler with %v interval", s.checkInterval))

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Run immediately on start
	s.checkDue(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Newsletter scheduler stopping: context cancelled")
			return
		case <-s.stopChan:
			s.logger.Info(ctx, "Newsletter scheduler stopping: stop signal received")
			return
		case <-ticker.C:
			s.checkDue(ctx)
		}
	}
}

// Stop signals the scheduler to stop. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *Scheduler) checkDue(ctx context.Context) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "check_scheduled_newsletters"},
	)

	due, err := s.store.ListDueScheduledNewsletters(ctx, s.now())
	if err != nil {
		s.logger.Error(ctx, "Failed to list scheduled newsletters", err)
		return
	}

	for _, n := range due {
		s.launch(observability.WithFields(ctx,
			observability.Field{Key: "newsletter_id", Value: n.ID},
			observability.Field{Key: "topic", Value: n.Slug},
		), n.ID)
	}
}

func (s *Scheduler) launch(ctx context.Context, id uuid.UUID) {
	if err := s.store.ClaimScheduledNewsletter(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error(ctx, "Failed to claim scheduled newsletter", err)
		}
		return
	}

	// A full queue gets one tick to make room.
	submitCtx, cancel := context.WithTimeout(ctx, s.checkInterval)
	defer cancel()

	err := s.submitter.Submit(submitCtx, workers.Job{
		NewsletterID:  id,
		RequireStatus: store.NewsletterStatusSending,
	})
	if err != nil {
		s.logger.Error(ctx, "Failed to queue scheduled newsletter", err)
		if err := s.store.ReleaseScheduledClaim(context.WithoutCancel(ctx), id); err != nil {
			s.logger.Error(ctx, "Failed to release scheduled newsletter", err)
		}
		return
	}

	s.logger.Info(ctx, "Launched scheduled newsletter")
}
