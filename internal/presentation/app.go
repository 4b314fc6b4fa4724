// Package presentation builds the dashboard, analytics and settings views on
// top of a Gateway and keeps a short-lived cache of the list reads.
package presentation

import (
	"context"
	"fmt"
	"time"

	"github.com/pantry-it/backend/internal/cache"
	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/service"
)

// Gateway exposes the inventory operations. It is implemented in-process by
// service.InventoryService and over HTTP by client.Client.
type Gateway interface {
	ListCategories(ctx context.Context) ([]*category.Category, error)
	AddCategory(ctx context.Context, name string) (*category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListStocksWithLatest(ctx context.Context) ([]stock.View, error)
	GetStock(ctx context.Context, id int64) (*service.StockDetail, error)
	AddStock(ctx context.Context, in stock.Input) (int64, error)
	UpdateStock(ctx context.Context, id int64, in stock.Input) error
	DeleteStock(ctx context.Context, id int64) error
	ListHistory(ctx context.Context) ([]stock.HistoryRow, error)
}

// DefaultCacheTTL is how long list reads are reused between mutations.
const DefaultCacheTTL = 30 * time.Second

// App is the presentation-side view of the inventory. Every successful
// mutation invalidates the cached lists.
type App struct {
	gateway    Gateway
	stocks     *cache.TTL[[]stock.View]
	categories *cache.TTL[[]*category.Category]
}

func NewApp(gateway Gateway, ttl time.Duration) *App {
	return &App{
		gateway:    gateway,
		stocks:     cache.NewTTL[[]stock.View](ttl),
		categories: cache.NewTTL[[]*category.Category](ttl),
	}
}

// WithClock replaces time.Now in both caches.
func (a *App) WithClock(now func() time.Time) *App {
	a.stocks.WithClock(now)
	a.categories.WithClock(now)
	return a
}

func (a *App) Stocks(ctx context.Context) ([]stock.View, error) {
	return a.stocks.Get(ctx, a.gateway.ListStocksWithLatest)
}

func (a *App) Categories(ctx context.Context) ([]*category.Category, error) {
	return a.categories.Get(ctx, a.gateway.ListCategories)
}

func (a *App) History(ctx context.Context) ([]stock.HistoryRow, error) {
	return a.gateway.ListHistory(ctx)
}

func (a *App) Stock(ctx context.Context, id int64) (*service.StockDetail, error) {
	return a.gateway.GetStock(ctx, id)
}

// Invalidate drops every cached list.
func (a *App) Invalidate() {
	a.stocks.Invalidate()
	a.categories.Invalidate()
}

// DuplicateStockError reports that another stock already uses the name. It
// matches service.ErrDuplicateName.
type DuplicateStockError struct {
	Existing stock.View
}

func (e *DuplicateStockError) Error() string {
	return fmt.Sprintf("an item named %q already exists", e.Existing.Name)
}

func (e *DuplicateStockError) Unwrap() error {
	return service.ErrDuplicateName
}

// FindDuplicate looks for a cached stock named name, ignoring case and the
// stock with id exclude. The result is advisory; the service re-checks.
func (a *App) FindDuplicate(ctx context.Context, name string, exclude int64) (*stock.View, error) {
	views, err := a.Stocks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].ID != exclude && category.SameName(views[i].Name, name) {
			return &views[i], nil
		}
	}
	return nil, nil
}

func (a *App) AddCategory(ctx context.Context, name string) (*category.Category, error) {
	categories, err := a.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if category.SameName(c.Name, name) {
			return nil, fmt.Errorf("%w: category %q already exists", service.ErrDuplicateName, c.Name)
		}
	}

	cat, err := a.gateway.AddCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	a.Invalidate()
	return cat, nil
}

func (a *App) DeleteCategory(ctx context.Context, id int64) error {
	if err := a.gateway.DeleteCategory(ctx, id); err != nil {
		return err
	}
	a.Invalidate()
	return nil
}

func (a *App) AddStock(ctx context.Context, in stock.Input) (int64, error) {
	dup, err := a.FindDuplicate(ctx, in.Name, 0)
	if err != nil {
		return 0, err
	}
	if dup != nil {
		return 0, &DuplicateStockError{Existing: *dup}
	}

	id, err := a.gateway.AddStock(ctx, in)
	if err != nil {
		return 0, err
	}
	a.Invalidate()
	return id, nil
}

func (a *App) UpdateStock(ctx context.Context, id int64, in stock.Input) error {
	dup, err := a.FindDuplicate(ctx, in.Name, id)
	if err != nil {
		return err
	}
	if dup != nil {
		return &DuplicateStockError{Existing: *dup}
	}

	if err := a.gateway.UpdateStock(ctx, id, in); err != nil {
		return err
	}
	a.Invalidate()
	return nil
}

func (a *App) DeleteStock(ctx context.Context, id int64) error {
	if err := a.gateway.DeleteStock(ctx, id); err != nil {
		return err
	}
	a.Invalidate()
	return nil
}
