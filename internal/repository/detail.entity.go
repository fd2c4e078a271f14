package repository

import (
	"time"

	"github.com/venuetix/ticketing/internal/model"
)

// The two detail tables share one column layout; the invoice number
// prefix decides which table a row lives in.

type UserTicketEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	InvoiceNo   string    `db:"invoice_no"   gorm:"column:invoice_no;not null;uniqueIndex"`
	VehicleType string    `db:"vehicle_type" gorm:"column:vehicle_type"`
	GuideName   string    `db:"guide_name"   gorm:"column:guide_name"`
	GuideNumber string    `db:"guide_number" gorm:"column:guide_number"`
	Adults      int       `db:"adults"       gorm:"column:adults;not null;default:0"`
	TicketPrice float64   `db:"ticket_price" gorm:"column:ticket_price;not null;default:0"`
	TotalPrice  float64   `db:"total_price"  gorm:"column:total_price;not null;default:0"`
	Tax         float64   `db:"tax"          gorm:"column:tax;not null;default:0"`
	FinalAmount float64   `db:"final_amount" gorm:"column:final_amount;not null;default:0"`
	Status      string    `db:"status"       gorm:"column:status"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (UserTicketEntity) TableName() string {
	return "user_tickets"
}

type SpecialTicketEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	InvoiceNo   string    `db:"invoice_no"   gorm:"column:invoice_no;not null;uniqueIndex"`
	VehicleType string    `db:"vehicle_type" gorm:"column:vehicle_type"`
	GuideName   string    `db:"guide_name"   gorm:"column:guide_name"`
	GuideNumber string    `db:"guide_number" gorm:"column:guide_number"`
	Adults      int       `db:"adults"       gorm:"column:adults;not null;default:0"`
	TicketPrice float64   `db:"ticket_price" gorm:"column:ticket_price;not null;default:0"`
	TotalPrice  float64   `db:"total_price"  gorm:"column:total_price;not null;default:0"`
	Tax         float64   `db:"tax"          gorm:"column:tax;not null;default:0"`
	FinalAmount float64   `db:"final_amount" gorm:"column:final_amount;not null;default:0"`
	Status      string    `db:"status"       gorm:"column:status"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (SpecialTicketEntity) TableName() string {
	return "special_tickets"
}

func toUserTicketEntity(m *model.TicketDetail) *UserTicketEntity {
	if m == nil {
		return nil
	}
	return &UserTicketEntity{
		ID:          m.ID,
		InvoiceNo:   m.InvoiceNo,
		VehicleType: m.VehicleType,
		GuideName:   m.GuideName,
		GuideNumber: m.GuideNumber,
		Adults:      m.Adults,
		TicketPrice: m.TicketPrice,
		TotalPrice:  m.TotalPrice,
		Tax:         m.Tax,
		FinalAmount: m.FinalAmount,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toSpecialTicketEntity(m *model.TicketDetail) *SpecialTicketEntity {
	if m == nil {
		return nil
	}
	return &SpecialTicketEntity{
		ID:          m.ID,
		InvoiceNo:   m.InvoiceNo,
		VehicleType: m.VehicleType,
		GuideName:   m.GuideName,
		GuideNumber: m.GuideNumber,
		Adults:      m.Adults,
		TicketPrice: m.TicketPrice,
		TotalPrice:  m.TotalPrice,
		Tax:         m.Tax,
		FinalAmount: m.FinalAmount,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func userTicketToDetailModel(e *UserTicketEntity) *model.TicketDetail {
	if e == nil {
		return nil
	}
	return &model.TicketDetail{
		ID:          e.ID,
		InvoiceNo:   e.InvoiceNo,
		VehicleType: e.VehicleType,
		GuideName:   e.GuideName,
		GuideNumber: e.GuideNumber,
		Adults:      e.Adults,
		TicketPrice: e.TicketPrice,
		TotalPrice:  e.TotalPrice,
		Tax:         e.Tax,
		FinalAmount: e.FinalAmount,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func specialTicketToDetailModel(e *SpecialTicketEntity) *model.TicketDetail {
	if e == nil {
		return nil
	}
	return &model.TicketDetail{
		ID:          e.ID,
		InvoiceNo:   e.InvoiceNo,
		VehicleType: e.VehicleType,
		GuideName:   e.GuideName,
		GuideNumber: e.GuideNumber,
		Adults:      e.Adults,
		TicketPrice: e.TicketPrice,
		TotalPrice:  e.TotalPrice,
		Tax:         e.Tax,
		FinalAmount: e.FinalAmount,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
