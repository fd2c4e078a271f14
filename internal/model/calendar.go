package model

// CalendarEntry is the merged, display-facing view of one ledger entry:
// transaction fields, the joined ticket, the optional detail row, and a
// derived display sequence number. display_invoice_no is recomputed on
// every query and must never be persisted or used as an identifier.
type CalendarEntry struct {
	Date             string  `json:"date"`
	InvoiceNo        string  `json:"invoice_no"`
	DisplayInvoiceNo string  `json:"display_invoice_no"`
	AdultCount       int     `json:"adult_count"`
	ChildCount       int     `json:"child_count"`
	Category         string  `json:"category"`
	TotalPaid        float64 `json:"total_paid"`

	TicketID     *int64  `json:"ticket_id,omitempty"`
	Price        float64 `json:"price"`
	ShowName     string  `json:"show_name"`
	DropdownName string  `json:"dropdown_name"`
	TicketType   string  `json:"ticket_type"`

	// detail enrichment, present only for TKT-prefixed entries
	VehicleType *string  `json:"vehicle_type,omitempty"`
	GuideName   *string  `json:"guide_name,omitempty"`
	GuideNumber *string  `json:"guide_number,omitempty"`
	Adults      *int     `json:"adults,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty"`
	TotalPrice  *float64 `json:"total_price,omitempty"`
	Tax         *float64 `json:"tax,omitempty"`
	FinalAmount *float64 `json:"final_amount,omitempty"`
	Status      *string  `json:"status,omitempty"`

	Operator *OperatorRef `json:"operator,omitempty"`
}

// OperatorRef is the slim operator projection surfaced on calendar
// entries.
type OperatorRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ApplyDetail merges a detail row into the entry.
func (e *CalendarEntry) ApplyDetail(d *TicketDetail) {
	if d == nil {
		return
	}
	e.VehicleType = &d.VehicleType
	e.GuideName = &d.GuideName
	e.GuideNumber = &d.GuideNumber
	e.Adults = &d.Adults
	e.TicketPrice = &d.TicketPrice
	e.TotalPrice = &d.TotalPrice
	e.Tax = &d.Tax
	e.FinalAmount = &d.FinalAmount
	e.Status = &d.Status
}

// CalendarView groups display entries by ISO date. Every date in the
// requested range is present as a key, empty days included.
type CalendarView struct {
	CalendarData map[string][]CalendarEntry `json:"calendarData"`
	TotalSales   int                        `json:"totalSales"`
	TotalAmount  float64                    `json:"totalAmount"`
}

// Update routing allow-lists. Each incoming field belongs to exactly
// one target table; unknown fields are ignored, never an error.
var (
	transactionUpdatable = map[string]struct{}{
		"adult_count": {}, "child_count": {}, "category": {},
		"total_paid": {}, "date": {}, "invoice_no": {},
	}
	ticketUpdatable = map[string]struct{}{
		"price": {}, "ticket_type": {}, "show_name": {}, "dropdown_name": {},
	}
	detailUpdatable = map[string]struct{}{
		"vehicle_type": {}, "guide_name": {}, "guide_number": {},
		"adults": {}, "ticket_price": {}, "total_price": {}, "tax": {},
		"final_amount": {}, "status": {}, "invoice_no": {},
	}
)

// RouteUpdates splits an incoming update payload into the per-table
// column maps. Fields matching no allow-list are dropped.
func RouteUpdates(updates map[string]any) (txn, ticket, detail map[string]any) {
	txn = make(map[string]any)
	ticket = make(map[string]any)
	detail = make(map[string]any)
	for k, v := range updates {
		if _, ok := transactionUpdatable[k]; ok {
			txn[k] = v
		}
		if _, ok := ticketUpdatable[k]; ok {
			ticket[k] = v
		}
		if _, ok := detailUpdatable[k]; ok {
			detail[k] = v
		}
	}
	return txn, ticket, detail
}
