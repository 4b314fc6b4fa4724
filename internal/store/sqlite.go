// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stocks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category_id INTEGER NOT NULL,
    type TEXT NOT NULL,
    full_value REAL,
    unit TEXT,
    FOREIGN KEY (category_id) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS stock_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stock_id INTEGER NOT NULL,
    timestamp TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now')),
    percentage REAL NOT NULL,
    FOREIGN KEY (stock_id) REFERENCES stocks(id)
);

CREATE INDEX IF NOT EXISTS idx_categories_name ON categories(name);
CREATE INDEX IF NOT EXISTS idx_stocks_category ON stocks(category_id);
CREATE INDEX IF NOT EXISTS idx_stock_history_stock ON stock_history(stock_id, timestamp);
`

// timeLayout is fixed width so that timestamps sort lexically.
// It matches the column default above.
const timeLayout = "2006-01-02 15:04:05.000"

type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at dbPath with foreign keys
// enforced. The pool is pinned to a single connection: every statement and
// transaction is serialized through it.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Categories
// ============================================================================

func (s *SQLiteStore) SaveCategory(ctx context.Context, cat *category.Category) error {
	result, err := s.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", cat.Name)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	cat.ID = id
	return nil
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	var cat category.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, (SELECT COUNT(*) FROM stocks s WHERE s.category_id = c.id)
		FROM categories c
		WHERE c.id = ?
	`, id).Scan(&cat.ID, &cat.Name, &cat.StockCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// FindCategoryByName returns the first category whose name matches name
// case-insensitively. Folding happens in Go so non-ASCII names compare
// correctly.
func (s *SQLiteStore) FindCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		if category.SameName(cat.Name, name) {
			return cat, nil
		}
	}
	return nil, ErrNotFound
}

// ListCategories returns every category with its stock count, ordered by id.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*category.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COUNT(s.id)
		FROM categories c
		LEFT JOIN stocks s ON s.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.StockCount); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) CountStocksInCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stocks WHERE category_id = ?", categoryID).Scan(&count)
	return count, err
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReassignAndDeleteCategory moves every stock of category id to targetID and
// removes the category, in one transaction. It returns the number of stocks
// moved.
func (s *SQLiteStore) ReassignAndDeleteCategory(ctx context.Context, id, targetID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE stocks SET category_id = ? WHERE category_id = ?",
		targetID, id,
	)
	if err != nil {
		return 0, err
	}
	moved, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	result, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}

	return moved, tx.Commit()
}

// ============================================================================
// Stocks
// ============================================================================

// CreateStock inserts the stock and its first history entry together.
func (s *SQLiteStore) CreateStock(ctx context.Context, st *stock.Stock, percentage float64, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO stocks (name, category_id, type, full_value, unit) VALUES (?, ?, ?, ?, ?)",
		st.Name, st.CategoryID, string(st.Type), st.FullValue, st.Unit,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := appendHistory(ctx, tx, id, percentage, at); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	st.ID = id
	return nil
}

func (s *SQLiteStore) GetStock(ctx context.Context, id int64) (*stock.Stock, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, category_id, type, full_value, unit FROM stocks WHERE id = ?", id,
	)
	st, err := scanStock(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// FindStockByName returns the first stock whose name matches name
// case-insensitively.
func (s *SQLiteStore) FindStockByName(ctx context.Context, name string) (*stock.Stock, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category_id, type, full_value, unit FROM stocks ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	want := strings.TrimSpace(name)
	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(st.Name), want) {
			return st, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// UpdateStock overwrites the mutable fields and appends a history entry.
func (s *SQLiteStore) UpdateStock(ctx context.Context, st *stock.Stock, percentage float64, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE stocks SET name = ?, category_id = ?, type = ?, full_value = ?, unit = ? WHERE id = ?",
		st.Name, st.CategoryID, string(st.Type), st.FullValue, st.Unit, st.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := appendHistory(ctx, tx, st.ID, percentage, at); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteStock removes the stock's history first, then the stock.
func (s *SQLiteStore) DeleteStock(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stock_history WHERE stock_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM stocks WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// stockViewQuery joins each stock with its latest history entry: greatest
// timestamp, ties broken by greatest id.
const stockViewQuery = `
	SELECT s.id, s.name, s.category_id, c.name, s.type, s.full_value, s.unit, h.percentage
	FROM stocks s
	JOIN categories c ON c.id = s.category_id
	LEFT JOIN stock_history h ON h.id = (
		SELECT h2.id FROM stock_history h2
		WHERE h2.stock_id = s.id
		ORDER BY h2.timestamp DESC, h2.id DESC
		LIMIT 1
	)
`

// ListStocksWithLatest returns all stocks ordered by current percentage,
// lowest first. Stocks without history sort last and report
// stock.DefaultPercentage.
func (s *SQLiteStore) ListStocksWithLatest(ctx context.Context) ([]stock.View, error) {
	rows, err := s.db.QueryContext(ctx, stockViewQuery+`
		ORDER BY h.percentage IS NULL, h.percentage ASC, s.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []stock.View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (s *SQLiteStore) GetStockView(ctx context.Context, id int64) (*stock.View, error) {
	row := s.db.QueryRowContext(ctx, stockViewQuery+" WHERE s.id = ?", id)
	v, err := scanView(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ============================================================================
// History
// ============================================================================

// ListHistory returns every history entry joined with its stock's name,
// oldest first.
func (s *SQLiteStore) ListHistory(ctx context.Context) ([]stock.HistoryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.stock_id, s.name, h.timestamp, h.percentage
		FROM stock_history h
		JOIN stocks s ON s.id = h.stock_id
		ORDER BY h.timestamp ASC, h.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []stock.HistoryRow
	for rows.Next() {
		var r stock.HistoryRow
		var ts string
		if err := rows.Scan(&r.StockID, &r.StockName, &ts, &r.Percentage); err != nil {
			return nil, err
		}
		if r.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		history = append(history, r)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) ListStockHistory(ctx context.Context, stockID int64) ([]stock.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stock_id, timestamp, percentage
		FROM stock_history
		WHERE stock_id = ?
		ORDER BY timestamp ASC, id ASC
	`, stockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []stock.HistoryEntry
	for rows.Next() {
		var e stock.HistoryEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.StockID, &ts, &e.Percentage); err != nil {
			return nil, err
		}
		if e.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ============================================================================
// Maintenance
// ============================================================================

func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM stocks),
			(SELECT COUNT(*) FROM stock_history)
	`).Scan(&stats.Categories, &stats.Stocks, &stats.HistoryItems)
	return stats, err
}

// Optimize reclaims free pages and refreshes the query planner statistics.
func (s *SQLiteStore) Optimize(ctx context.Context) error {
	for _, stmt := range []string{"VACUUM", "ANALYZE", "PRAGMA optimize"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(stmt), err)
		}
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func appendHistory(ctx context.Context, tx *sql.Tx, stockID int64, percentage float64, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO stock_history (stock_id, timestamp, percentage) VALUES (?, ?, ?)",
		stockID, at.UTC().Format(timeLayout), percentage,
	)
	return err
}

func scanStock(row scanner) (*stock.Stock, error) {
	var st stock.Stock
	var typ string
	var fullValue sql.NullFloat64
	var unit sql.NullString
	if err := row.Scan(&st.ID, &st.Name, &st.CategoryID, &typ, &fullValue, &unit); err != nil {
		return nil, err
	}
	st.Type = stock.Type(typ)
	if fullValue.Valid {
		st.FullValue = &fullValue.Float64
	}
	if unit.Valid {
		st.Unit = &unit.String
	}
	return &st, nil
}

func scanView(row scanner) (*stock.View, error) {
	var v stock.View
	var typ string
	var fullValue, percentage sql.NullFloat64
	var unit sql.NullString
	err := row.Scan(&v.ID, &v.Name, &v.CategoryID, &v.CategoryName, &typ, &fullValue, &unit, &percentage)
	if err != nil {
		return nil, err
	}
	v.Type = stock.Type(typ)
	if fullValue.Valid {
		v.FullValue = &fullValue.Float64
	}
	if unit.Valid {
		v.Unit = &unit.String
	}
	v.Percentage = stock.DefaultPercentage
	if percentage.Valid {
		v.Percentage = percentage.Float64
		v.HasHistory = true
	}
	return &v, nil
}

// parseTimestamp accepts the store's own layout plus the layouts produced by
// CURRENT_TIMESTAMP and by the driver for DATETIME columns in older files.
func parseTimestamp(ts string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", ts)
}
