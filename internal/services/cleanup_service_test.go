package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/internal/repository"
)

type recordingSweeper struct {
	calls  int64
	cutoff atomic.Value
	done   chan struct{}
}

func (s *recordingSweeper) DeleteUnreferencedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	atomic.AddInt64(&s.calls, 1)
	s.cutoff.Store(cutoff)
	close(s.done)
	return 3, nil
}

func TestCleanupService_Sweep(t *testing.T) {
	sweeper := &recordingSweeper{done: make(chan struct{})}
	svc := NewCleanupService(sweeper, 10*time.Millisecond, 90)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = svc.Start(ctx) }()
	defer svc.Stop()

	select {
	case <-sweeper.done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep never ran")
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&sweeper.calls))

	cutoff := sweeper.cutoff.Load().(time.Time)
	expected := time.Now().AddDate(0, 0, -90)
	assert.WithinDuration(t, expected, cutoff, time.Minute)
}

func TestCleanupService_SweepAgainstLedger(t *testing.T) {
	db, raw := setupServiceDB(t)
	tickets := repository.NewTicketRepository(db)
	txns := repository.NewTransactionRepository(db)
	ctx := context.Background()

	op := &repository.OperatorEntity{Username: "sweep-op", Role: "admin"}
	require.NoError(t, raw.Create(op).Error)

	referenced, err := tickets.Create(ctx, &model.Ticket{Price: 10, OperatorID: op.ID})
	require.NoError(t, err)
	orphan, err := tickets.Create(ctx, &model.Ticket{Price: 20, OperatorID: op.ID})
	require.NoError(t, err)

	old := time.Now().AddDate(0, 0, -120)
	require.NoError(t, raw.Model(&repository.TicketEntity{}).
		Where("id IN ?", []int64{referenced.ID, orphan.ID}).
		Update("created_at", old).Error)

	_, err = txns.Create(ctx, &model.Transaction{
		InvoiceNo:  "TKT1",
		Date:       time.Now(),
		TicketID:   &referenced.ID,
		OperatorID: op.ID,
	})
	require.NoError(t, err)

	svc := NewCleanupService(tickets, time.Millisecond, 90)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = svc.Start(runCtx) }()
	defer svc.Stop()

	require.Eventually(t, func() bool {
		_, err := tickets.GetByID(ctx, orphan.ID)
		return err != nil
	}, 5*time.Second, 20*time.Millisecond)

	_, err = tickets.GetByID(ctx, referenced.ID)
	assert.NoError(t, err)
}
