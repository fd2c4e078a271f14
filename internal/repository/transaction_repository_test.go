package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuetix/ticketing/internal/model"
)

func seedOperator(t *testing.T, db *testDB) int64 {
	t.Helper()
	op := &OperatorEntity{Username: "op-" + time.Now().Format("150405.000000000"), Role: "user"}
	require.NoError(t, db.rawDB.Create(op).Error)
	return op.ID
}

func mustCreateTxn(t *testing.T, repo *TransactionRepository, operatorID int64, invoiceNo string, date time.Time) *model.Transaction {
	t.Helper()
	txn, err := repo.Create(context.Background(), &model.Transaction{
		InvoiceNo:  invoiceNo,
		Date:       date,
		AdultCount: 2,
		ChildCount: 1,
		Category:   "standard",
		TotalPaid:  150,
		OperatorID: operatorID,
	})
	require.NoError(t, err)
	// sqlite timestamps have second resolution in some modes; spread out
	// created_at so ordering is deterministic
	time.Sleep(5 * time.Millisecond)
	return txn
}

func TestTransactionRepository_GetByInvoiceNo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()
	opID := seedOperator(t, db)

	mustCreateTxn(t, repo, opID, "TKT100", time.Now())

	t.Run("found", func(t *testing.T) {
		txn, err := repo.GetByInvoiceNo(ctx, "TKT100")
		require.NoError(t, err)
		assert.Equal(t, "TKT100", txn.InvoiceNo)
		assert.Equal(t, opID, txn.OperatorID)
	})

	t.Run("missing yields ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByInvoiceNo(ctx, "TKT999")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionRepository_ListByDateRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()
	opID := seedOperator(t, db)

	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	// created in this order, but the second one carries a backdated
	// business date; creation order must win
	mustCreateTxn(t, repo, opID, "TKT101", day2)
	mustCreateTxn(t, repo, opID, "TKT102", day1)
	mustCreateTxn(t, repo, opID, "SPT102", day2)
	mustCreateTxn(t, repo, opID, "TKT103", day3)

	t.Run("range is inclusive and ordered by creation time", func(t *testing.T) {
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 11, 23, 59, 59, 0, time.UTC)

		txns, err := repo.ListByDateRange(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, txns, 3)
		assert.Equal(t, "TKT101", txns[0].InvoiceNo)
		assert.Equal(t, "TKT102", txns[1].InvoiceNo)
		assert.Equal(t, "SPT102", txns[2].InvoiceNo)
	})

	t.Run("empty range", func(t *testing.T) {
		from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

		txns, err := repo.ListByDateRange(ctx, from, to)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}

func TestTransactionRepository_LastCreated(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()

	t.Run("empty ledger yields ErrNotFound", func(t *testing.T) {
		_, err := repo.LastCreated(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns the newest entry across all dates", func(t *testing.T) {
		opID := seedOperator(t, db)
		old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		mustCreateTxn(t, repo, opID, "TKT500", time.Now())
		mustCreateTxn(t, repo, opID, "TKT501", old) // newest by creation, oldest by date

		last, err := repo.LastCreated(ctx)
		require.NoError(t, err)
		assert.Equal(t, "TKT501", last.InvoiceNo)
	})
}

func TestTransactionRepository_MaxNumericInvoice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()

	t.Run("empty ledger scans to zero", func(t *testing.T) {
		max, err := repo.MaxNumericInvoice(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), max)
	})

	t.Run("skips SPT rows and strips prefixes", func(t *testing.T) {
		opID := seedOperator(t, db)
		now := time.Now()
		mustCreateTxn(t, repo, opID, "TKT6523", now)
		mustCreateTxn(t, repo, opID, "SPT9999", now)
		mustCreateTxn(t, repo, opID, "6000", now)
		mustCreateTxn(t, repo, opID, "TKT123", now)

		max, err := repo.MaxNumericInvoice(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6523), max)
	})
}

func TestTransactionRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()
	opID := seedOperator(t, db)

	mustCreateTxn(t, repo, opID, "TKT200", time.Now())

	t.Run("updates named columns", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "TKT200", map[string]any{
			"adult_count": 5,
			"total_paid":  375.0,
		})
		require.NoError(t, err)

		txn, err := repo.GetByInvoiceNo(ctx, "TKT200")
		require.NoError(t, err)
		assert.Equal(t, 5, txn.AdultCount)
		assert.Equal(t, 375.0, txn.TotalPaid)
	})

	t.Run("invoice_no rename re-keys the row", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "TKT200", map[string]any{"invoice_no": "TKT300"})
		require.NoError(t, err)

		_, err = repo.GetByInvoiceNo(ctx, "TKT200")
		assert.ErrorIs(t, err, ErrNotFound)

		txn, err := repo.GetByInvoiceNo(ctx, "TKT300")
		require.NoError(t, err)
		assert.Equal(t, 5, txn.AdultCount)
	})

	t.Run("missing row yields ErrNotFound", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "TKT999", map[string]any{"category": "vip"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty field map is a no-op", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "TKT999", map[string]any{})
		assert.NoError(t, err)
	})
}

func TestTransactionRepository_DeleteByInvoiceNo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	ctx := context.Background()
	opID := seedOperator(t, db)

	mustCreateTxn(t, repo, opID, "TKT400", time.Now())

	t.Run("delete existing", func(t *testing.T) {
		err := repo.DeleteByInvoiceNo(ctx, "TKT400")
		require.NoError(t, err)

		exists, err := repo.ExistsByInvoiceNo(ctx, "TKT400")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete missing yields ErrNotFound", func(t *testing.T) {
		err := repo.DeleteByInvoiceNo(ctx, "TKT400")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
