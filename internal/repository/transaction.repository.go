package repository

import (
	"context"
	"errors"
	"time"

	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a transaction does not exist.
	ErrNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Preload("Ticket").
		Preload("Operator").
		Where("invoice_no = ?", invoiceNo).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) ExistsByInvoiceNo(ctx context.Context, invoiceNo string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("invoice_no = ?", invoiceNo).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByDateRange returns every transaction with date in [from, to],
// joined ticket and operator included, ordered by creation time. The
// creation order, not the business date, is the display sequencing key.
func (r *TransactionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*model.Transaction, error) {
	var entities []*TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Preload("Ticket").
		Preload("Operator").
		Where("date >= ? AND date <= ?", from, to).
		Order("created_at ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

// LastCreated returns the most recently created transaction across the
// whole ledger.
func (r *TransactionRepository) LastCreated(ctx context.Context) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

// MaxNumericInvoice scans the ledger for the highest numeric invoice
// value, skipping SPT-prefixed rows (their numbers alias normal ones).
// TKT prefixes are stripped; bare numerics count as-is. The numeric
// extraction happens here rather than in SQL so the scan behaves the
// same on every dialect.
func (r *TransactionRepository) MaxNumericInvoice(ctx context.Context) (int64, error) {
	var invoiceNos []string

	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("invoice_no NOT LIKE ?", model.PrefixSpecial+"%").
		Pluck("invoice_no", &invoiceNos).
		Error
	if err != nil {
		return 0, err
	}

	var max int64
	for _, no := range invoiceNos {
		if n, ok := model.NumericPart(no); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *TransactionRepository) UpdateFields(ctx context.Context, invoiceNo string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("invoice_no = ?", invoiceNo).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteByInvoiceNo(ctx context.Context, invoiceNo string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("invoice_no = ?", invoiceNo).
		Delete(&TransactionEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
