package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/venuetix/ticketing/internal/model"
	"github.com/venuetix/ticketing/internal/services"
	xhttp "github.com/venuetix/ticketing/pkg/http"
)

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ListRange(ctx context.Context, start, end time.Time) (*model.CalendarView, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalendarView), args.Error(1)
}

func (m *MockCalendarService) DeleteEntry(ctx context.Context, invoiceNo string) error {
	args := m.Called(ctx, invoiceNo)
	return args.Error(0)
}

func (m *MockCalendarService) UpdateEntry(ctx context.Context, invoiceNo string, updates map[string]any) (*model.CalendarEntry, error) {
	args := m.Called(ctx, invoiceNo, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalendarEntry), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestCalendarHandler_GetCalendar(t *testing.T) {
	t.Run("successful range query", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		view := &model.CalendarView{
			CalendarData: map[string][]model.CalendarEntry{
				"2026-05-01": {},
			},
			TotalSales:  0,
			TotalAmount: 0,
		}
		svc.On("ListRange", mock.Anything, mock.Anything, mock.Anything).Return(view, nil)

		ctx := setupTestContext("GET", "/analytics/calendar?startDate=2026-05-01&endDate=2026-05-01", nil)
		handler.GetCalendar(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response model.CalendarView
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Contains(t, response.CalendarData, "2026-05-01")
		svc.AssertExpectations(t)
	})

	t.Run("missing dates", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		ctx := setupTestContext("GET", "/analytics/calendar?startDate=2026-05-01", nil)
		handler.GetCalendar(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "ListRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		ctx := setupTestContext("GET", "/analytics/calendar?startDate=bogus&endDate=2026-05-01", nil)
		handler.GetCalendar(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("reversed range", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		svc.On("ListRange", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, services.ErrInvalidRange)

		ctx := setupTestContext("GET", "/analytics/calendar?startDate=2026-05-05&endDate=2026-05-01", nil)
		handler.GetCalendar(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestCalendarHandler_UpdateEntry(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		entry := &model.CalendarEntry{InvoiceNo: "TKT100", AdultCount: 4}
		svc.On("UpdateEntry", mock.Anything, "TKT100", mock.MatchedBy(func(u map[string]any) bool {
			return u["adult_count"] == float64(4)
		})).Return(entry, nil)

		ctx := setupTestContext("PUT", "/analytics/calendar/TKT100", []byte(`{"adult_count":4}`))
		ctx.SetUserValue("invoice_no", "TKT100")
		handler.UpdateEntry(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response model.CalendarEntry
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, 4, response.AdultCount)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		svc.On("UpdateEntry", mock.Anything, "TKT404", mock.Anything).
			Return(nil, services.ErrEntryNotFound)

		ctx := setupTestContext("PUT", "/analytics/calendar/TKT404", []byte(`{"category":"vip"}`))
		ctx.SetUserValue("invoice_no", "TKT404")
		handler.UpdateEntry(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("rename conflict", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		svc.On("UpdateEntry", mock.Anything, "TKT100", mock.Anything).
			Return(nil, services.ErrInvoiceConflict)

		ctx := setupTestContext("PUT", "/analytics/calendar/TKT100", []byte(`{"invoice_no":"TKT101"}`))
		ctx.SetUserValue("invoice_no", "TKT100")
		handler.UpdateEntry(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		ctx := setupTestContext("PUT", "/analytics/calendar/TKT100", []byte("not json"))
		ctx.SetUserValue("invoice_no", "TKT100")
		handler.UpdateEntry(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty payload", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		ctx := setupTestContext("PUT", "/analytics/calendar/TKT100", []byte(`{}`))
		ctx.SetUserValue("invoice_no", "TKT100")
		handler.UpdateEntry(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestCalendarHandler_DeleteEntry(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		svc.On("DeleteEntry", mock.Anything, "TKT100").Return(nil)

		ctx := setupTestContext("DELETE", "/analytics/calendar/TKT100", nil)
		ctx.SetUserValue("invoice_no", "TKT100")
		handler.DeleteEntry(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockCalendarService)
		handler := NewCalendarHandler(svc)

		svc.On("DeleteEntry", mock.Anything, "TKT404").Return(services.ErrEntryNotFound)

		ctx := setupTestContext("DELETE", "/analytics/calendar/TKT404", nil)
		ctx.SetUserValue("invoice_no", "TKT404")
		handler.DeleteEntry(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(func(ctx *xhttp.RequestCtx) {
		ctx.Response.SetStatusCode(200)
	}, "admin", "manager")

	t.Run("allowed role passes through", func(t *testing.T) {
		ctx := setupTestContext("GET", "/analytics/calendar", nil)
		ctx.Request.Header.Set("X-User-Role", "manager")
		handler(ctx)
		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("unlisted role is rejected", func(t *testing.T) {
		ctx := setupTestContext("GET", "/analytics/calendar", nil)
		ctx.Request.Header.Set("X-User-Role", "user")
		handler(ctx)
		assert.Equal(t, 403, ctx.Response.StatusCode())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		ctx := setupTestContext("GET", "/analytics/calendar", nil)
		handler(ctx)
		assert.Equal(t, 403, ctx.Response.StatusCode())
	})
}
