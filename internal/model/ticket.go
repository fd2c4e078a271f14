package model

import "time"

// Ticket is a priced line item owned by at most one transaction.
type Ticket struct {
	ID           int64     `json:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Price        float64   `json:"price"         gorm:"column:price;not null;default:0"`
	ShowName     string    `json:"show_name"     gorm:"column:show_name"`
	DropdownName string    `json:"dropdown_name" gorm:"column:dropdown_name"`
	TicketType   string    `json:"ticket_type"   gorm:"column:ticket_type"`
	IsAnalytics  bool      `json:"is_analytics"  gorm:"column:is_analytics;not null;default:true"`
	OperatorID   int64     `json:"operator_id"   gorm:"column:operator_id;not null;index"`
	CreatedAt    time.Time `json:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (Ticket) TableName() string { return "tickets" }

// Operator is the point-of-sale identity that records transactions.
// Historically called "counter", renamed here to avoid confusion with
// the invoice counter.
type Operator struct {
	ID       int64  `json:"id"       gorm:"primaryKey;autoIncrement;column:id"`
	Username string `json:"username" gorm:"column:username;not null;uniqueIndex"`
	Role     string `json:"role"     gorm:"column:role;not null;default:user"`
}

func (Operator) TableName() string { return "operators" }
