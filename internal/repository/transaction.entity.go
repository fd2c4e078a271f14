package repository

import (
	"time"

	"github.com/venuetix/ticketing/internal/model"
)

type TransactionEntity struct {
	ID         int64           `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	InvoiceNo  string          `db:"invoice_no"  gorm:"column:invoice_no;not null;uniqueIndex"`
	Date       time.Time       `db:"date"        gorm:"column:date;not null;index"`
	AdultCount int             `db:"adult_count" gorm:"column:adult_count;not null;default:0"`
	ChildCount int             `db:"child_count" gorm:"column:child_count;not null;default:0"`
	Category   string          `db:"category"    gorm:"column:category"`
	TotalPaid  float64         `db:"total_paid"  gorm:"column:total_paid;not null;default:0"`
	TicketID   *int64          `db:"ticket_id"   gorm:"column:ticket_id;index"`
	Ticket     *TicketEntity   `gorm:"foreignKey:TicketID;references:ID;constraint:OnDelete:SET NULL"`
	OperatorID int64           `db:"operator_id" gorm:"column:operator_id;not null;index"`
	Operator   *OperatorEntity `gorm:"foreignKey:OperatorID;references:ID"`
	CreatedAt  time.Time       `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:         m.ID,
		InvoiceNo:  m.InvoiceNo,
		Date:       m.Date,
		AdultCount: m.AdultCount,
		ChildCount: m.ChildCount,
		Category:   m.Category,
		TotalPaid:  m.TotalPaid,
		TicketID:   m.TicketID,
		OperatorID: m.OperatorID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:         e.ID,
		InvoiceNo:  e.InvoiceNo,
		Date:       e.Date,
		AdultCount: e.AdultCount,
		ChildCount: e.ChildCount,
		Category:   e.Category,
		TotalPaid:  e.TotalPaid,
		TicketID:   e.TicketID,
		Ticket:     toTicketModel(e.Ticket),
		OperatorID: e.OperatorID,
		Operator:   toOperatorModel(e.Operator),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
