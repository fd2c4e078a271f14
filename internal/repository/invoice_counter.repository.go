package repository

import (
	"context"
	"errors"

	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCounterNotFound = errors.New("invoice counter not found")
)

// InvoiceCounterRepository owns the singleton counter row. Every
// mutating method expects to run inside a caller-provided transaction
// (pg.DB.WithinTransaction) and takes a row-level exclusive lock, so a
// read-increment-write is a single atomic step: two concurrent
// allocations can never observe the same pre-increment value.
type InvoiceCounterRepository struct {
	*pg.DB
	seed int64
}

// NewInvoiceCounterRepository creates the repository. seed is the value
// a lazily created counter row starts from; it comes from configuration
// (a migration parameter), never from a hard-coded constant.
func NewInvoiceCounterRepository(db *pg.DB, seed int64) *InvoiceCounterRepository {
	return &InvoiceCounterRepository{
		DB:   db,
		seed: seed,
	}
}

// Get returns the counter row without locking or creating it.
func (r *InvoiceCounterRepository) Get(ctx context.Context) (*model.InvoiceCounter, error) {
	var entity InvoiceCounterEntity

	err := r.Read(ctx).WithContext(ctx).
		Order("id ASC").
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCounterNotFound
		}
		return nil, err
	}

	return toInvoiceCounterModel(&entity), nil
}

// Seed reports the configured lazy-creation seed.
func (r *InvoiceCounterRepository) Seed() int64 {
	return r.seed
}

// lockRow acquires the counter row under SELECT ... FOR UPDATE,
// creating it with the configured seed when absent.
func (r *InvoiceCounterRepository) lockRow(ctx context.Context) (*InvoiceCounterEntity, error) {
	var entity InvoiceCounterEntity

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id ASC").
		First(&entity).
		Error
	if err == nil {
		return &entity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entity = InvoiceCounterEntity{
		LastUserInvoice:    r.seed,
		LastSpecialInvoice: r.seed,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// NextUserInvoice increments last_user_invoice and returns the new
// value. The write happens before the caller ever sees the number.
// last_special_invoice is mirrored, never advanced on its own.
func (r *InvoiceCounterRepository) NextUserInvoice(ctx context.Context) (int64, error) {
	entity, err := r.lockRow(ctx)
	if err != nil {
		return 0, err
	}

	next := entity.LastUserInvoice + 1
	err = r.Write(ctx).WithContext(ctx).
		Model(&InvoiceCounterEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"last_user_invoice":    next,
			"last_special_invoice": next,
		}).
		Error
	if err != nil {
		return 0, err
	}

	return next, nil
}

// CurrentUserInvoice returns last_user_invoice under the row lock,
// creating the row when absent. Used by special allocations, which
// alias the latest normal number instead of drawing their own.
func (r *InvoiceCounterRepository) CurrentUserInvoice(ctx context.Context) (int64, error) {
	entity, err := r.lockRow(ctx)
	if err != nil {
		return 0, err
	}
	return entity.LastUserInvoice, nil
}

// SetBoth forces both counters to value, creating the row when absent.
// Only the administrative reset path calls this.
func (r *InvoiceCounterRepository) SetBoth(ctx context.Context, value int64) error {
	entity, err := r.lockRow(ctx)
	if err != nil {
		return err
	}

	return r.Write(ctx).WithContext(ctx).
		Model(&InvoiceCounterEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"last_user_invoice":    value,
			"last_special_invoice": value,
		}).
		Error
}
