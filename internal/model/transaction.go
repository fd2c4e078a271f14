package model

import "time"

// Transaction is one monetary event in the ledger: a ticket sale or a
// special invoice. invoice_no is its external identity and changes only
// through the explicit rename path in the calendar update flow.
type Transaction struct {
	ID         int64     `json:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	InvoiceNo  string    `json:"invoice_no"  gorm:"column:invoice_no;not null;uniqueIndex"`
	Date       time.Time `json:"date"        gorm:"column:date;not null;index"`
	AdultCount int       `json:"adult_count" gorm:"column:adult_count;not null;default:0"`
	ChildCount int       `json:"child_count" gorm:"column:child_count;not null;default:0"`
	Category   string    `json:"category"    gorm:"column:category"`
	TotalPaid  float64   `json:"total_paid"  gorm:"column:total_paid;not null;default:0"`
	TicketID   *int64    `json:"ticket_id"   gorm:"column:ticket_id;index"` // nullable (ON DELETE SET NULL)
	Ticket     *Ticket   `json:"-"            gorm:"foreignKey:TicketID;references:ID;constraint:OnDelete:SET NULL"`
	OperatorID int64     `json:"operator_id" gorm:"column:operator_id;not null;index"`
	Operator   *Operator `json:"-"            gorm:"foreignKey:OperatorID;references:ID"`
	CreatedAt  time.Time `json:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }
