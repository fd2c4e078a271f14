package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/venuetix/ticketing/internal/model"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Status(ctx context.Context) (*model.InvoiceStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceStatus), args.Error(1)
}

func (m *MockInvoiceService) Reset(ctx context.Context, seed *int64) (int64, error) {
	args := m.Called(ctx, seed)
	return args.Get(0).(int64), args.Error(1)
}

func TestInvoiceHandler_GetCounters(t *testing.T) {
	t.Run("successful snapshot", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Status", mock.Anything).Return(&model.InvoiceStatus{
			LastNormal:  101,
			NextNormal:  102,
			LastSpecial: 101,
		}, nil)

		ctx := setupTestContext("GET", "/invoices/counters", nil)
		handler.GetCounters(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response model.InvoiceStatus
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, int64(101), response.LastNormal)
		assert.Equal(t, int64(102), response.NextNormal)
	})

	t.Run("service error maps to generic 500", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Status", mock.Anything).Return(nil, errors.New("pg: connection refused"))

		ctx := setupTestContext("GET", "/invoices/counters", nil)
		handler.GetCounters(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())

		var response map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		// internal detail never leaks to the caller
		assert.Equal(t, "internal error", response["error"])
	})
}

func TestInvoiceHandler_ResetCounters(t *testing.T) {
	t.Run("reset with explicit seed", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Reset", mock.Anything, mock.MatchedBy(func(s *int64) bool {
			return s != nil && *s == 6523
		})).Return(int64(6523), nil)

		ctx := setupTestContext("POST", "/invoices/reset", []byte(`{"seed":6523}`))
		handler.ResetCounters(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response resetResponse
		err := json.Unmarshal(ctx.Response.Body(), &response)
		require.NoError(t, err)
		assert.Equal(t, int64(6523), response.LastUserInvoice)
		svc.AssertExpectations(t)
	})

	t.Run("reset without body falls back to ledger scan", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		svc.On("Reset", mock.Anything, (*int64)(nil)).Return(int64(6878), nil)

		ctx := setupTestContext("POST", "/invoices/reset", nil)
		handler.ResetCounters(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc)

		ctx := setupTestContext("POST", "/invoices/reset", []byte(`{"seed":"many"}`))
		handler.ResetCounters(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything)
	})
}
