package model

import "time"

// TicketDetail is the extended detail record attached to a
// prefix-tagged transaction. The same shape backs both the user_tickets
// and special_tickets tables; which one holds a given row is decided by
// the DetailKind resolved from the invoice number prefix, never by the
// row itself.
type TicketDetail struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	InvoiceNo   string    `json:"invoice_no"   gorm:"column:invoice_no;not null;uniqueIndex"`
	VehicleType string    `json:"vehicle_type" gorm:"column:vehicle_type"`
	GuideName   string    `json:"guide_name"   gorm:"column:guide_name"`
	GuideNumber string    `json:"guide_number" gorm:"column:guide_number"`
	Adults      int       `json:"adults"       gorm:"column:adults;not null;default:0"`
	TicketPrice float64   `json:"ticket_price" gorm:"column:ticket_price;not null;default:0"`
	TotalPrice  float64   `json:"total_price"  gorm:"column:total_price;not null;default:0"`
	Tax         float64   `json:"tax"          gorm:"column:tax;not null;default:0"`
	FinalAmount float64   `json:"final_amount" gorm:"column:final_amount;not null;default:0"`
	Status      string    `json:"status"       gorm:"column:status"`
	CreatedAt   time.Time `json:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}
