package repository

import (
	"time"

	"github.com/venuetix/ticketing/internal/model"
)

type InvoiceCounterEntity struct {
	ID                 int64     `db:"id"                   gorm:"primaryKey;autoIncrement;column:id"`
	LastUserInvoice    int64     `db:"last_user_invoice"    gorm:"column:last_user_invoice;not null;default:0"`
	LastSpecialInvoice int64     `db:"last_special_invoice" gorm:"column:last_special_invoice;not null;default:0"`
	CreatedAt          time.Time `db:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `db:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceCounterEntity) TableName() string {
	return "invoice_counters"
}

func toInvoiceCounterModel(e *InvoiceCounterEntity) *model.InvoiceCounter {
	if e == nil {
		return nil
	}
	return &model.InvoiceCounter{
		ID:                 e.ID,
		LastUserInvoice:    e.LastUserInvoice,
		LastSpecialInvoice: e.LastSpecialInvoice,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
