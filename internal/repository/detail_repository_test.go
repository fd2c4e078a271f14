package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuetix/ticketing/internal/model"
)

func TestDetailRepository_KindRouting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDetailRepository(db.DB)
	ctx := context.Background()

	detail := &model.TicketDetail{
		InvoiceNo:   "TKT100",
		VehicleType: "bus",
		GuideName:   "Arun",
		Adults:      4,
		TicketPrice: 50,
		TotalPrice:  200,
		FinalAmount: 200,
		Status:      "paid",
	}

	t.Run("user detail lands in user_tickets only", func(t *testing.T) {
		_, err := repo.Create(ctx, model.DetailUser, detail)
		require.NoError(t, err)

		got, err := repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT100")
		require.NoError(t, err)
		assert.Equal(t, "bus", got.VehicleType)

		_, err = repo.GetByInvoiceNo(ctx, model.DetailSpecial, "TKT100")
		assert.ErrorIs(t, err, ErrDetailNotFound)
	})

	t.Run("special detail lands in special_tickets only", func(t *testing.T) {
		sp := *detail
		sp.InvoiceNo = "SPT100"
		_, err := repo.Create(ctx, model.DetailSpecial, &sp)
		require.NoError(t, err)

		got, err := repo.GetByInvoiceNo(ctx, model.DetailSpecial, "SPT100")
		require.NoError(t, err)
		assert.Equal(t, "Arun", got.GuideName)

		_, err = repo.GetByInvoiceNo(ctx, model.DetailUser, "SPT100")
		assert.ErrorIs(t, err, ErrDetailNotFound)
	})

	t.Run("DetailNone create is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, model.DetailNone, detail)
		assert.Error(t, err)
	})
}

func TestDetailRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDetailRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.DetailUser, &model.TicketDetail{
		InvoiceNo: "TKT200",
		Status:    "pending",
	})
	require.NoError(t, err)

	t.Run("updates named columns", func(t *testing.T) {
		err := repo.UpdateFields(ctx, model.DetailUser, "TKT200", map[string]any{
			"status":       "paid",
			"final_amount": 180.0,
		})
		require.NoError(t, err)

		got, err := repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT200")
		require.NoError(t, err)
		assert.Equal(t, "paid", got.Status)
		assert.Equal(t, 180.0, got.FinalAmount)
	})

	t.Run("invoice_no update re-keys the row", func(t *testing.T) {
		err := repo.UpdateFields(ctx, model.DetailUser, "TKT200", map[string]any{"invoice_no": "TKT201"})
		require.NoError(t, err)

		_, err = repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT200")
		assert.ErrorIs(t, err, ErrDetailNotFound)

		got, err := repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT201")
		require.NoError(t, err)
		assert.Equal(t, "paid", got.Status)
	})

	t.Run("missing row is tolerated", func(t *testing.T) {
		err := repo.UpdateFields(ctx, model.DetailUser, "TKT999", map[string]any{"status": "paid"})
		assert.NoError(t, err)
	})

	t.Run("DetailNone is a no-op", func(t *testing.T) {
		err := repo.UpdateFields(ctx, model.DetailNone, "TKT201", map[string]any{"status": "void"})
		assert.NoError(t, err)

		got, err := repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT201")
		require.NoError(t, err)
		assert.Equal(t, "paid", got.Status)
	})
}

func TestDetailRepository_DeleteByInvoiceNo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDetailRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.DetailUser, &model.TicketDetail{InvoiceNo: "TKT300"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.DetailSpecial, &model.TicketDetail{InvoiceNo: "SPT300"})
	require.NoError(t, err)

	t.Run("deletes only from the routed table", func(t *testing.T) {
		err := repo.DeleteByInvoiceNo(ctx, model.DetailUser, "TKT300")
		require.NoError(t, err)

		_, err = repo.GetByInvoiceNo(ctx, model.DetailUser, "TKT300")
		assert.ErrorIs(t, err, ErrDetailNotFound)

		// the special table is untouched
		_, err = repo.GetByInvoiceNo(ctx, model.DetailSpecial, "SPT300")
		assert.NoError(t, err)
	})

	t.Run("already gone is not an error", func(t *testing.T) {
		err := repo.DeleteByInvoiceNo(ctx, model.DetailUser, "TKT300")
		assert.NoError(t, err)
	})

	t.Run("DetailNone is a no-op", func(t *testing.T) {
		err := repo.DeleteByInvoiceNo(ctx, model.DetailNone, "SPT300")
		assert.NoError(t, err)

		_, err = repo.GetByInvoiceNo(ctx, model.DetailSpecial, "SPT300")
		assert.NoError(t, err)
	})
}
