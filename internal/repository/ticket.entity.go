package repository

import (
	"time"

	"github.com/venuetix/ticketing/internal/model"
)

type TicketEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Price        float64   `db:"price"         gorm:"column:price;not null;default:0"`
	ShowName     string    `db:"show_name"     gorm:"column:show_name"`
	DropdownName string    `db:"dropdown_name" gorm:"column:dropdown_name"`
	TicketType   string    `db:"ticket_type"   gorm:"column:ticket_type"`
	IsAnalytics  bool      `db:"is_analytics"  gorm:"column:is_analytics;not null;default:true"`
	OperatorID   int64     `db:"operator_id"   gorm:"column:operator_id;not null;index"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"    gorm:"column:updated_at;autoUpdateTime"`
}

func (TicketEntity) TableName() string {
	return "tickets"
}

type OperatorEntity struct {
	ID       int64  `db:"id"       gorm:"primaryKey;autoIncrement;column:id"`
	Username string `db:"username" gorm:"column:username;not null;uniqueIndex"`
	Role     string `db:"role"     gorm:"column:role;not null;default:user"`
}

func (OperatorEntity) TableName() string {
	return "operators"
}

func toTicketEntity(m *model.Ticket) *TicketEntity {
	if m == nil {
		return nil
	}
	return &TicketEntity{
		ID:           m.ID,
		Price:        m.Price,
		ShowName:     m.ShowName,
		DropdownName: m.DropdownName,
		TicketType:   m.TicketType,
		IsAnalytics:  m.IsAnalytics,
		OperatorID:   m.OperatorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTicketModel(e *TicketEntity) *model.Ticket {
	if e == nil {
		return nil
	}
	return &model.Ticket{
		ID:           e.ID,
		Price:        e.Price,
		ShowName:     e.ShowName,
		DropdownName: e.DropdownName,
		TicketType:   e.TicketType,
		IsAnalytics:  e.IsAnalytics,
		OperatorID:   e.OperatorID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toOperatorModel(e *OperatorEntity) *model.Operator {
	if e == nil {
		return nil
	}
	return &model.Operator{
		ID:       e.ID,
		Username: e.Username,
		Role:     e.Role,
	}
}
