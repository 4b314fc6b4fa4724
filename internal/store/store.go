package store

import (
	"context"
	"errors"
	"time"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the persistence boundary used by the inventory service.
// Methods that touch more than one row run inside a single transaction.
type Store interface {
	SaveCategory(ctx context.Context, cat *category.Category) error
	GetCategory(ctx context.Context, id int64) (*category.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*category.Category, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)
	CountStocksInCategory(ctx context.Context, categoryID int64) (int, error)
	DeleteCategory(ctx context.Context, id int64) error
	ReassignAndDeleteCategory(ctx context.Context, id, targetID int64) (int64, error)

	CreateStock(ctx context.Context, s *stock.Stock, percentage float64, at time.Time) error
	GetStock(ctx context.Context, id int64) (*stock.Stock, error)
	FindStockByName(ctx context.Context, name string) (*stock.Stock, error)
	UpdateStock(ctx context.Context, s *stock.Stock, percentage float64, at time.Time) error
	DeleteStock(ctx context.Context, id int64) error
	ListStocksWithLatest(ctx context.Context) ([]stock.View, error)
	GetStockView(ctx context.Context, id int64) (*stock.View, error)

	ListHistory(ctx context.Context) ([]stock.HistoryRow, error)
	ListStockHistory(ctx context.Context, stockID int64) ([]stock.HistoryEntry, error)

	Stats(ctx context.Context) (Stats, error)
	Optimize(ctx context.Context) error
}

// Stats are row counts reported by the debug endpoint.
type Stats struct {
	Path         string
	Categories   int
	Stocks       int
	HistoryItems int
}
