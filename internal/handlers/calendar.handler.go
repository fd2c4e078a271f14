package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/internal/services"
	xhttp "github.com/venuetix/ticketing/pkg/http"
	"github.com/venuetix/ticketing/pkg/logger"
)

type CalendarService interface {
	ListRange(ctx context.Context, start, end time.Time) (*model.CalendarView, error)
	DeleteEntry(ctx context.Context, invoiceNo string) error
	UpdateEntry(ctx context.Context, invoiceNo string, updates map[string]any) (*model.CalendarEntry, error)
}

type CalendarHandler struct {
	svc CalendarService
}

func RegisterCalendarRoutes(e *router.Group, h *CalendarHandler) {
	e.GET("/analytics/calendar", RequireRole(h.GetCalendar, "admin", "manager"))
	e.PUT("/analytics/calendar/{invoice_no}", RequireRole(h.UpdateEntry, "admin", "manager"))
	e.DELETE("/analytics/calendar/{invoice_no}", RequireRole(h.DeleteEntry, "admin", "manager"))
}

func NewCalendarHandler(calendarService CalendarService) *CalendarHandler {
	return &CalendarHandler{
		svc: calendarService,
	}
}

func (h *CalendarHandler) GetCalendar(ctx *xhttp.RequestCtx) {
	startStr := query(ctx, "startDate")
	endStr := query(ctx, "endDate")
	if startStr == "" || endStr == "" {
		writeError(ctx, xhttp.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := parseDate(startStr)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid startDate: "+startStr)
		return
	}
	end, err := parseDate(endStr)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid endDate: "+endStr)
		return
	}

	view, err := h.svc.ListRange(ctx, start, end)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			writeError(ctx, xhttp.StatusBadRequest, "endDate before startDate")
			return
		}
		logger.Error("calendar list failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, view)
}

func (h *CalendarHandler) UpdateEntry(ctx *xhttp.RequestCtx) {
	invoiceNo := param(ctx, "invoice_no")
	if invoiceNo == "" {
		writeError(ctx, xhttp.StatusBadRequest, "invoice_no is required")
		return
	}

	var updates map[string]any
	if err := readJSON(ctx, &updates); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(updates) == 0 {
		writeError(ctx, xhttp.StatusBadRequest, "empty update payload")
		return
	}

	entry, err := h.svc.UpdateEntry(ctx, invoiceNo, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryNotFound):
			writeError(ctx, xhttp.StatusNotFound, "entry not found: "+invoiceNo)
		case errors.Is(err, services.ErrInvoiceConflict):
			writeError(ctx, xhttp.StatusConflict, "invoice number already exists")
		default:
			logger.Error("calendar update failed", "invoice_no", invoiceNo, "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, entry)
}

func (h *CalendarHandler) DeleteEntry(ctx *xhttp.RequestCtx) {
	invoiceNo := param(ctx, "invoice_no")
	if invoiceNo == "" {
		writeError(ctx, xhttp.StatusBadRequest, "invoice_no is required")
		return
	}

	err := h.svc.DeleteEntry(ctx, invoiceNo)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "entry not found: "+invoiceNo)
			return
		}
		logger.Error("calendar delete failed", "invoice_no", invoiceNo, "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"deleted": invoiceNo})
}
