package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/dateutils"
	"finsight/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "finsight.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedTransactions(t *testing.T, st *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	txs := []models.Transaction{
		{Amount: mustDecimal(t, "4.5"), Category: "Dining", Description: "coffee", Date: "2025-07-01"},
		{Amount: mustDecimal(t, "56.2"), Category: "Groceries", Description: "weekly shop", Date: "2025-07-02"},
		{Amount: mustDecimal(t, "-1200"), Category: "Income", Description: "salary", Date: "2025-07-15"},
		{Amount: mustDecimal(t, "12.99"), Category: "Dining", Description: "lunch", Date: "2025-08-01"},
	}
	require.NoError(t, st.SaveTransactions(ctx, txs))
}

func TestListAllJoinsCategoryNames(t *testing.T) {
	st := newTestStore(t)
	seedTransactions(t, st)

	txs, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, "Dining", txs[0].Category)
	assert.Equal(t, "coffee", txs[0].Description)
	assert.Equal(t, "2025-07-01", txs[0].Date)
	assert.True(t, mustDecimal(t, "4.5").Equal(txs[0].Amount))
}

func TestListBetweenInclusiveBounds(t *testing.T) {
	st := newTestStore(t)
	seedTransactions(t, st)
	ctx := context.Background()

	tests := []struct {
		name     string
		window   dateutils.Window
		expected int
	}{
		{
			name:     "full july",
			window:   dateutils.Window{Start: "2025-07-01", End: "2025-07-31"},
			expected: 3,
		},
		{
			name:     "bounds are inclusive on both ends",
			window:   dateutils.Window{Start: "2025-07-02", End: "2025-07-15"},
			expected: 2,
		},
		{
			name:     "single day",
			window:   dateutils.Window{Start: "2025-07-01", End: "2025-07-01"},
			expected: 1,
		},
		{
			name:     "empty range",
			window:   dateutils.Window{Start: "2025-06-01", End: "2025-06-30"},
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs, err := st.ListBetween(ctx, tc.window)
			require.NoError(t, err)
			assert.Len(t, txs, tc.expected)
		})
	}
}

func TestListBetweenOrdersByDate(t *testing.T) {
	st := newTestStore(t)
	seedTransactions(t, st)

	txs, err := st.ListBetween(context.Background(),
		dateutils.Window{Start: "2025-07-01", End: "2025-08-31"})
	require.NoError(t, err)
	require.Len(t, txs, 4)

	for i := 1; i < len(txs); i++ {
		assert.LessOrEqual(t, txs[i-1].Date, txs[i].Date)
	}
}

func TestEnsureCategoryIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.EnsureCategory(ctx, "Dining")
	require.NoError(t, err)
	second, err := st.EnsureCategory(ctx, "Dining")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := st.EnsureCategory(ctx, "Groceries")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.db")

	st, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Reopening the same file reapplies migrations as a no-op.
	st, err = NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
