package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/internal/repository"
	"github.com/venuetix/ticketing/pkg/prom"
)

var (
	ErrEntryNotFound   = errors.New("ledger entry not found")
	ErrInvoiceConflict = errors.New("invoice number already exists")
	ErrInvalidRange    = errors.New("invalid date range")
)

const isoDate = "2006-01-02"

type TransactionRepository interface {
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Transaction, error)
	ExistsByInvoiceNo(ctx context.Context, invoiceNo string) (bool, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.Transaction, error)
	LastCreated(ctx context.Context) (*model.Transaction, error)
	UpdateFields(ctx context.Context, invoiceNo string, fields map[string]any) error
	DeleteByInvoiceNo(ctx context.Context, invoiceNo string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TicketRepository interface {
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

type DetailRepository interface {
	GetByInvoiceNo(ctx context.Context, kind model.DetailKind, invoiceNo string) (*model.TicketDetail, error)
	UpdateFields(ctx context.Context, kind model.DetailKind, invoiceNo string, fields map[string]any) error
	DeleteByInvoiceNo(ctx context.Context, kind model.DetailKind, invoiceNo string) error
}

// CalendarService presents ledger entries for a date range as a
// gapless, human-facing sequence and keeps the transaction, ticket and
// detail rows consistent through edits and deletes.
type CalendarService struct {
	transactions TransactionRepository
	tickets      TicketRepository
	details      DetailRepository
}

func NewCalendarService(transactions TransactionRepository, tickets TicketRepository, details DetailRepository) *CalendarService {
	return &CalendarService{
		transactions: transactions,
		tickets:      tickets,
		details:      details,
	}
}

// ListRange builds the calendar view for [start, end] inclusive.
//
// Transactions are ordered by creation time, not business date: a sale
// backfilled with an earlier date must not reorder the sequence. SPT
// entries are hidden from the surfaced list; they feed the sequence
// only through the newest-entry base. Each visible entry gets
// display_invoice_no = lastLedgerNumber + index + 1 with index running
// over the visible list, so the surfaced numbers are gapless. The
// value is derived and recomputed on every call; it is not an
// identifier and is never stored.
func (s *CalendarService) ListRange(ctx context.Context, start, end time.Time) (*model.CalendarView, error) {
	started := time.Now()

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	if endDay.Before(startDay) {
		return nil, ErrInvalidRange
	}
	endOfRange := endDay.Add(24*time.Hour - time.Nanosecond)

	txns, err := s.transactions.ListByDateRange(ctx, startDay, endOfRange)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	lastNumber, err := s.lastLedgerNumber(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.CalendarEntry)
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		grouped[day.Format(isoDate)] = []model.CalendarEntry{}
	}

	view := &model.CalendarView{CalendarData: grouped}
	displayed := 0
	for _, txn := range txns {
		if model.IsSpecialInvoice(txn.InvoiceNo) {
			continue
		}

		entry := entryFromTransaction(txn)
		entry.DisplayInvoiceNo = strconv.FormatInt(lastNumber+int64(displayed)+1, 10)
		displayed++

		if model.DetailKindFor(txn.InvoiceNo) == model.DetailUser {
			detail, err := s.details.GetByInvoiceNo(ctx, model.DetailUser, txn.InvoiceNo)
			if err != nil && !errors.Is(err, repository.ErrDetailNotFound) {
				return nil, fmt.Errorf("load detail for %s: %w", txn.InvoiceNo, err)
			}
			entry.ApplyDetail(detail)
		}

		grouped[entry.Date] = append(grouped[entry.Date], entry)
		view.TotalSales++
		view.TotalAmount += entry.TotalPaid
	}

	prom.AddCalendarOpDuration("list", time.Since(started).Seconds())
	prom.AddHistogram(prom.SystemCalendar, prom.MetricCalendarEntriesReturned, float64(view.TotalSales))
	return view, nil
}

// DeleteEntry removes a ledger entry and its detail row in one atomic
// unit. The detail table is chosen by the invoice prefix; the other
// table is never touched.
func (s *CalendarService) DeleteEntry(ctx context.Context, invoiceNo string) error {
	started := time.Now()

	err := s.transactions.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.transactions.GetByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		kind := model.DetailKindFor(invoiceNo)
		if err := s.details.DeleteByInvoiceNo(ctx, kind, invoiceNo); err != nil {
			return fmt.Errorf("delete detail row: %w", err)
		}

		if err := s.transactions.DeleteByInvoiceNo(ctx, invoiceNo); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	prom.AddCalendarOpDuration("delete", time.Since(started).Seconds())
	return nil
}

// UpdateEntry patches a ledger entry and its dependents in one atomic
// unit. Fields are routed by fixed allow-lists; unknown fields are
// dropped. Renaming invoice_no verifies global uniqueness before any
// write and re-keys the detail row from the old number. The refreshed
// joined view is returned under the final invoice number.
func (s *CalendarService) UpdateEntry(ctx context.Context, invoiceNo string, updates map[string]any) (*model.CalendarEntry, error) {
	started := time.Now()

	txnFields, ticketFields, detailFields := model.RouteUpdates(updates)
	if err := normalizeDateField(txnFields); err != nil {
		return nil, err
	}

	finalInvoiceNo := invoiceNo
	if v, ok := txnFields["invoice_no"].(string); ok && v != "" {
		finalInvoiceNo = v
	}

	err := s.transactions.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.transactions.GetByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		if finalInvoiceNo != invoiceNo {
			exists, err := s.transactions.ExistsByInvoiceNo(ctx, finalInvoiceNo)
			if err != nil {
				return err
			}
			if exists {
				return ErrInvoiceConflict
			}
		}

		if err := s.transactions.UpdateFields(ctx, invoiceNo, txnFields); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}

		if len(ticketFields) > 0 && txn.TicketID != nil {
			if err := s.tickets.UpdateFields(ctx, *txn.TicketID, ticketFields); err != nil {
				return fmt.Errorf("update ticket: %w", err)
			}
		}

		// The detail row keeps living in the table picked by the OLD
		// prefix and is re-keyed there; renames do not migrate rows
		// between detail tables.
		kind := model.DetailKindFor(invoiceNo)
		if err := s.details.UpdateFields(ctx, kind, invoiceNo, detailFields); err != nil {
			return fmt.Errorf("update detail row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry, err := s.getEntry(ctx, finalInvoiceNo)
	if err != nil {
		return nil, err
	}

	prom.AddCalendarOpDuration("update", time.Since(started).Seconds())
	return entry, nil
}

// getEntry loads the fully joined view of one ledger entry, detail row
// included for either prefix.
func (s *CalendarService) getEntry(ctx context.Context, invoiceNo string) (*model.CalendarEntry, error) {
	txn, err := s.transactions.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	entry := entryFromTransaction(txn)
	if kind := model.DetailKindFor(invoiceNo); kind != model.DetailNone {
		detail, err := s.details.GetByInvoiceNo(ctx, kind, invoiceNo)
		if err != nil && !errors.Is(err, repository.ErrDetailNotFound) {
			return nil, err
		}
		entry.ApplyDetail(detail)
	}
	return &entry, nil
}

// lastLedgerNumber extracts the numeric part of the newest invoice in
// the whole ledger, 0 when the ledger is empty.
func (s *CalendarService) lastLedgerNumber(ctx context.Context) (int64, error) {
	last, err := s.transactions.LastCreated(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("find newest ledger entry: %w", err)
	}
	n, _ := model.NumericPart(last.InvoiceNo)
	return n, nil
}

func entryFromTransaction(txn *model.Transaction) model.CalendarEntry {
	entry := model.CalendarEntry{
		Date:       txn.Date.Format(isoDate),
		InvoiceNo:  txn.InvoiceNo,
		AdultCount: txn.AdultCount,
		ChildCount: txn.ChildCount,
		Category:   txn.Category,
		TotalPaid:  txn.TotalPaid,
		TicketID:   txn.TicketID,
	}
	if txn.Ticket != nil {
		entry.Price = txn.Ticket.Price
		entry.ShowName = txn.Ticket.ShowName
		entry.DropdownName = txn.Ticket.DropdownName
		entry.TicketType = txn.Ticket.TicketType
	}
	if txn.Operator != nil {
		entry.Operator = &model.OperatorRef{
			ID:       txn.Operator.ID,
			Username: txn.Operator.Username,
		}
	}
	return entry
}

func normalizeDateField(txnFields map[string]any) error {
	v, ok := txnFields["date"]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
	}
	txnFields["date"] = t
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
