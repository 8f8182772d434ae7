// Package store provides the read-only transaction query surface backed by
// SQLite, returning transactions joined with their category names.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"finsight/internal/dateutils"
	"finsight/internal/models"
)

// TransactionLister is the query contract the orchestrator depends on.
type TransactionLister interface {
	// ListAll returns every transaction joined with its category name.
	ListAll(ctx context.Context) ([]models.Transaction, error)

	// ListBetween returns transactions whose date lies inside the window,
	// bounds inclusive.
	ListBetween(ctx context.Context, window dateutils.Window) ([]models.Transaction, error)
}

// SQLiteStore implements TransactionLister on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies the embedded schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectJoined = `
SELECT t.id, t.amount, c.name AS category, COALESCE(t.description, ''), t.date
FROM transactions AS t
JOIN categories AS c ON t.category_id = c.id`

// ListAll returns every transaction joined with its category name.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectJoined+" ORDER BY t.date, t.id")
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// ListBetween returns transactions dated inside the window, bounds inclusive.
// ISO-8601 dates compare correctly as text, so the filter runs in SQL.
func (s *SQLiteStore) ListBetween(ctx context.Context, window dateutils.Window) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		selectJoined+" WHERE t.date >= ? AND t.date <= ? ORDER BY t.date, t.id",
		window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("query transactions between %s and %s: %w", window.Start, window.End, err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &amount, &tx.Category, &tx.Description, &tx.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for transaction %d: %w", amount, tx.ID, err)
		}
		tx.Amount = dec
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// EnsureCategory inserts the category if missing and returns its id.
// Used by the offline labeling pipeline and by tests seeding fixtures.
func (s *SQLiteStore) EnsureCategory(ctx context.Context, name string) (int64, error) {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories(name) VALUES (?)", name); err != nil {
		return 0, fmt.Errorf("insert category %q: %w", name, err)
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup category %q: %w", name, err)
	}
	return id, nil
}

// SaveTransaction persists one transaction under the given category name,
// returning the new row id.
func (s *SQLiteStore) SaveTransaction(ctx context.Context, tx models.Transaction) (int64, error) {
	categoryID, err := s.EnsureCategory(ctx, tx.Category)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions(amount, category_id, description, date) VALUES (?, ?, ?, ?)",
		tx.Amount.String(), categoryID, tx.Description, tx.Date)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// SaveTransactions persists a batch of transactions.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	for _, tx := range txs {
		if _, err := s.SaveTransaction(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
