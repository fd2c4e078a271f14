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
	ErrTicketNotFound = errors.New("ticket not found")
)

type TicketRepository struct {
	*pg.DB
}

func NewTicketRepository(db *pg.DB) *TicketRepository {
	return &TicketRepository{
		db,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	entity := toTicketEntity(t)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTicketModel(entity), nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*model.Ticket, error) {
	var entity TicketEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	return toTicketModel(&entity), nil
}

func (r *TicketRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&TicketEntity{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// DeleteUnreferencedOlderThan removes tickets created before cutoff
// that no ledger entry points at anymore (the transaction FK is SET
// NULL on ticket delete, so referenced tickets stay). Returns how many
// rows went away.
func (r *TicketRepository) DeleteUnreferencedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.Write(ctx).WithContext(ctx).
		Where("created_at < ?", cutoff).
		Where("id NOT IN (?)", r.Read(ctx).WithContext(ctx).
			Model(&TransactionEntity{}).
			Select("ticket_id").
			Where("ticket_id IS NOT NULL")).
		Delete(&TicketEntity{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
