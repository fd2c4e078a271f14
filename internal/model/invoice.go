package model

import (
	"strconv"
	"strings"
	"time"
)

// InvoiceKind selects the numbering policy for an allocation.
type InvoiceKind string

const (
	InvoiceKindNormal  InvoiceKind = "normal"
	InvoiceKindSpecial InvoiceKind = "special"
)

// Invoice number prefixes. A bare numeric invoice number (no prefix) is
// the legacy form and carries no detail row.
const (
	PrefixNormal  = "TKT"
	PrefixSpecial = "SPT"
)

// DetailKind identifies which detail table, if any, extends a
// transaction. It is resolved once from the invoice number prefix so
// call sites never branch on string prefixes themselves.
type DetailKind int

const (
	DetailNone DetailKind = iota
	DetailUser
	DetailSpecial
)

func DetailKindFor(invoiceNo string) DetailKind {
	switch {
	case strings.HasPrefix(invoiceNo, PrefixSpecial):
		return DetailSpecial
	case strings.HasPrefix(invoiceNo, PrefixNormal):
		return DetailUser
	default:
		return DetailNone
	}
}

func IsSpecialInvoice(invoiceNo string) bool {
	return strings.HasPrefix(invoiceNo, PrefixSpecial)
}

// NumericPart extracts the first run of digits from an invoice number,
// e.g. "TKT6523" -> 6523, "6878" -> 6878. ok is false when the value
// contains no digits at all.
func NumericPart(invoiceNo string) (n int64, ok bool) {
	start := -1
	for i, r := range invoiceNo {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(invoiceNo) && invoiceNo[end] >= '0' && invoiceNo[end] <= '9' {
		end++
	}
	v, err := strconv.ParseInt(invoiceNo[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// InvoiceCounter is the singleton row tracking issued invoice numbers.
// last_user_invoice is ground truth; last_special_invoice is kept as a
// mirror for schema compatibility and is never an independent sequence.
type InvoiceCounter struct {
	ID                 int64     `json:"id"                   gorm:"primaryKey;autoIncrement;column:id"`
	LastUserInvoice    int64     `json:"last_user_invoice"    gorm:"column:last_user_invoice;not null;default:0"`
	LastSpecialInvoice int64     `json:"last_special_invoice" gorm:"column:last_special_invoice;not null;default:0"`
	CreatedAt          time.Time `json:"created_at"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at"           gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceCounter) TableName() string { return "invoice_counters" }

// InvoiceStatus is the read-only snapshot returned by the generator.
type InvoiceStatus struct {
	LastNormal  int64 `json:"last_normal_invoice"`
	NextNormal  int64 `json:"next_normal_invoice"`
	LastSpecial int64 `json:"last_special_invoice"`
}
