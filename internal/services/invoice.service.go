package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/internal/repository"
	"github.com/venuetix/ticketing/pkg/prom"
)

var (
	ErrUnknownInvoiceKind = errors.New("unknown invoice kind")
)

type InvoiceCounterRepository interface {
	Get(ctx context.Context) (*model.InvoiceCounter, error)
	Seed() int64
	NextUserInvoice(ctx context.Context) (int64, error)
	CurrentUserInvoice(ctx context.Context) (int64, error)
	SetBoth(ctx context.Context, value int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LedgerScanner interface {
	MaxNumericInvoice(ctx context.Context) (int64, error)
}

// InvoiceService is the numbering policy engine. One monotonic counter
// (last_user_invoice) is ground truth for every allocation; the second
// counter column only mirrors it. Special invoices deliberately alias
// the most recent normal number instead of drawing their own sequence,
// so multiple specials issued between two normal sales share a numeric
// value and differ only by the SPT prefix stored elsewhere.
type InvoiceService struct {
	counters InvoiceCounterRepository
	ledger   LedgerScanner
}

func NewInvoiceService(counters InvoiceCounterRepository, ledger LedgerScanner) *InvoiceService {
	return &InvoiceService{
		counters: counters,
		ledger:   ledger,
	}
}

// Allocate returns the next externally visible invoice number for the
// given kind. The counter update commits before the number is returned,
// so concurrent normal allocations never hand out the same value.
func (s *InvoiceService) Allocate(ctx context.Context, kind model.InvoiceKind) (string, error) {
	var number int64

	err := s.counters.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		switch kind {
		case model.InvoiceKindNormal:
			number, err = s.counters.NextUserInvoice(ctx)
		case model.InvoiceKindSpecial:
			number, err = s.counters.CurrentUserInvoice(ctx)
		default:
			return ErrUnknownInvoiceKind
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("allocate invoice number: %w", err)
	}

	prom.AddInvoiceAllocation(string(kind))
	return strconv.FormatInt(number, 10), nil
}

// Status reports the counter snapshot without mutating anything. A
// missing counter row reports the configured seed, matching what a lazy
// creation would start from.
func (s *InvoiceService) Status(ctx context.Context) (*model.InvoiceStatus, error) {
	counter, err := s.counters.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCounterNotFound) {
			seed := s.counters.Seed()
			return &model.InvoiceStatus{
				LastNormal:  seed,
				NextNormal:  seed + 1,
				LastSpecial: seed,
			}, nil
		}
		return nil, err
	}

	return &model.InvoiceStatus{
		LastNormal:  counter.LastUserInvoice,
		NextNormal:  counter.LastUserInvoice + 1,
		LastSpecial: counter.LastSpecialInvoice,
	}, nil
}

// Reset forces both counters to seed, or when seed is nil to the
// highest numeric invoice value found by scanning the ledger. The scan
// is the authoritative recovery path after the counter row has drifted
// from reality (manual edits, partial restores). Returns the value the
// counters were set to.
func (s *InvoiceService) Reset(ctx context.Context, seed *int64) (int64, error) {
	var value int64
	if seed != nil {
		value = *seed
	} else {
		scanned, err := s.ledger.MaxNumericInvoice(ctx)
		if err != nil {
			return 0, fmt.Errorf("scan ledger for max invoice: %w", err)
		}
		value = scanned
	}

	err := s.counters.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.counters.SetBoth(ctx, value)
	})
	if err != nil {
		return 0, fmt.Errorf("reset invoice counters: %w", err)
	}

	prom.IncCounter(prom.SystemInvoices, prom.MetricInvoiceResets)
	return value, nil
}
