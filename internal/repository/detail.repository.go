package repository

import (
	"context"
	"errors"

	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrDetailNotFound = errors.New("ticket detail not found")
)

// DetailRepository serves both detail tables. Every operation takes the
// DetailKind resolved from the invoice prefix; DetailNone is a no-op,
// so callers never branch on prefixes themselves.
type DetailRepository struct {
	*pg.DB
}

func NewDetailRepository(db *pg.DB) *DetailRepository {
	return &DetailRepository{
		db,
	}
}

func (r *DetailRepository) Create(ctx context.Context, kind model.DetailKind, d *model.TicketDetail) (*model.TicketDetail, error) {
	switch kind {
	case model.DetailUser:
		entity := toUserTicketEntity(d)
		if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
			return nil, err
		}
		return userTicketToDetailModel(entity), nil
	case model.DetailSpecial:
		entity := toSpecialTicketEntity(d)
		if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
			return nil, err
		}
		return specialTicketToDetailModel(entity), nil
	default:
		return nil, ErrDetailNotFound
	}
}

func (r *DetailRepository) GetByInvoiceNo(ctx context.Context, kind model.DetailKind, invoiceNo string) (*model.TicketDetail, error) {
	switch kind {
	case model.DetailUser:
		var entity UserTicketEntity
		err := r.Read(ctx).WithContext(ctx).
			Where("invoice_no = ?", invoiceNo).
			First(&entity).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDetailNotFound
			}
			return nil, err
		}
		return userTicketToDetailModel(&entity), nil
	case model.DetailSpecial:
		var entity SpecialTicketEntity
		err := r.Read(ctx).WithContext(ctx).
			Where("invoice_no = ?", invoiceNo).
			First(&entity).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDetailNotFound
			}
			return nil, err
		}
		return specialTicketToDetailModel(&entity), nil
	default:
		return nil, ErrDetailNotFound
	}
}

// UpdateFields patches the detail row keyed by invoiceNo. A missing row
// is tolerated: legacy ledgers carry prefixed transactions whose detail
// rows were lost before the detail tables became mandatory.
func (r *DetailRepository) UpdateFields(ctx context.Context, kind model.DetailKind, invoiceNo string, fields map[string]any) error {
	if kind == model.DetailNone || len(fields) == 0 {
		return nil
	}

	q := r.Write(ctx).WithContext(ctx)
	switch kind {
	case model.DetailUser:
		q = q.Model(&UserTicketEntity{})
	case model.DetailSpecial:
		q = q.Model(&SpecialTicketEntity{})
	}

	return q.Where("invoice_no = ?", invoiceNo).Updates(fields).Error
}

// DeleteByInvoiceNo removes the detail row if one exists. Deleting a
// detail that is already gone is not an error.
func (r *DetailRepository) DeleteByInvoiceNo(ctx context.Context, kind model.DetailKind, invoiceNo string) error {
	if kind == model.DetailNone {
		return nil
	}

	q := r.Write(ctx).WithContext(ctx).Where("invoice_no = ?", invoiceNo)
	switch kind {
	case model.DetailUser:
		return q.Delete(&UserTicketEntity{}).Error
	case model.DetailSpecial:
		return q.Delete(&SpecialTicketEntity{}).Error
	}
	return nil
}
