package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/venuetix/ticketing/internal/model"
	xhttp "github.com/venuetix/ticketing/pkg/http"
	"github.com/venuetix/ticketing/pkg/logger"
)

type InvoiceService interface {
	Status(ctx context.Context) (*model.InvoiceStatus, error)
	Reset(ctx context.Context, seed *int64) (int64, error)
}

type InvoiceHandler struct {
	svc InvoiceService
}

func RegisterInvoiceRoutes(e *router.Group, h *InvoiceHandler) {
	e.GET("/invoices/counters", RequireRole(h.GetCounters, "admin"))
	e.POST("/invoices/reset", RequireRole(h.ResetCounters, "admin"))
}

func NewInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: invoiceService,
	}
}

type resetRequest struct {
	Seed *int64 `json:"seed"`
}

type resetResponse struct {
	LastUserInvoice int64 `json:"last_user_invoice"`
}

func (h *InvoiceHandler) GetCounters(ctx *xhttp.RequestCtx) {
	status, err := h.svc.Status(ctx)
	if err != nil {
		logger.Error("counter status failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, status)
}

func (h *InvoiceHandler) ResetCounters(ctx *xhttp.RequestCtx) {
	var req resetRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := readJSON(ctx, &req); err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}

	applied, err := h.svc.Reset(ctx, req.Seed)
	if err != nil {
		logger.Error("counter reset failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, resetResponse{LastUserInvoice: applied})
}
