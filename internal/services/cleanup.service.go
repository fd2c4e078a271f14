package services

import (
	"context"
	"time"

	"github.com/venuetix/ticketing/pkg/logger"
	"github.com/venuetix/ticketing/pkg/worker"
)

type TicketSweeper interface {
	DeleteUnreferencedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupService sweeps orphaned tickets once per process start. The
// sweep is delayed so it never competes with startup traffic, and runs
// on a worker pool rather than a bare goroutine so shutdown can drain
// it.
type CleanupService struct {
	tickets       TicketSweeper
	startupDelay  time.Duration
	retentionDays int
	pool          *worker.WorkerManager
}

func NewCleanupService(tickets TicketSweeper, startupDelay time.Duration, retentionDays int) *CleanupService {
	return &CleanupService{
		tickets:       tickets,
		startupDelay:  startupDelay,
		retentionDays: retentionDays,
		pool:          worker.NewWorkerManager(1, 1, nil),
	}
}

// Start schedules the sweep and blocks running the pool until Stop.
func (s *CleanupService) Start(ctx context.Context) error {
	s.pool.SetWorker(func(workerIndex int, job interface{}) {
		s.sweep(ctx)
	})

	go func() {
		select {
		case <-time.After(s.startupDelay):
			s.pool.Enqueue(struct{}{})
		case <-ctx.Done():
		}
	}()

	return s.pool.Start()
}

func (s *CleanupService) Stop() {
	s.pool.Exit()
}

func (s *CleanupService) sweep(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.tickets.DeleteUnreferencedOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("[cleanup] sweep failed", "error", err)
		return
	}
	logger.Info("[cleanup] sweep finished", "removed", removed, "cutoff", cutoff.Format(isoDate))
}
