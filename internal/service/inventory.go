// internal/service/inventory.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/store"
)

// InventoryService enforces the category and stock invariants on top of the
// store: one undeletable default category, case-insensitive unique names,
// reassignment of stocks when their category goes away, and append-only
// history.
type InventoryService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*InventoryService)

// WithClock replaces time.Now as the source of history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		s.now = now
	}
}

// StockDetail is a stock view together with its full history, oldest first.
type StockDetail struct {
	stock.View
	History []stock.HistoryEntry
}

// NewInventoryService creates the service and ensures the default category
// exists. A failure here means the store is unusable.
func NewInventoryService(ctx context.Context, s store.Store, logger *slog.Logger, opts ...Option) (*InventoryService, error) {
	svc := &InventoryService{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if err := svc.EnsureDefaults(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// EnsureDefaults creates the "Uncategorized" category if it is missing.
// It is idempotent.
func (s *InventoryService) EnsureDefaults(ctx context.Context) error {
	_, err := s.store.FindCategoryByName(ctx, category.DefaultName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return classify("find default category", err)
	}

	cat := &category.Category{Name: category.DefaultName}
	if err := s.store.SaveCategory(ctx, cat); err != nil {
		return classify("create default category", err)
	}
	s.logger.Info("created default category", "category_id", cat.ID, "name", cat.Name)
	return nil
}

// ============================================================================
// Categories
// ============================================================================

// AddCategory stores rawName in sentence case. Names must be unique
// regardless of case.
func (s *InventoryService) AddCategory(ctx context.Context, rawName string) (*category.Category, error) {
	cat, err := category.New(rawName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.store.FindCategoryByName(ctx, cat.Name)
	if err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", ErrDuplicateName, existing.Name)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, classify("find category", err)
	}

	if err := s.store.SaveCategory(ctx, cat); err != nil {
		return nil, classify("save category", err)
	}

	s.logger.Info("category added", "category_id", cat.ID, "name", cat.Name)
	return cat, nil
}

// DeleteCategory removes a category. Its stocks, if any, are moved to the
// default category in the same transaction.
func (s *InventoryService) DeleteCategory(ctx context.Context, id int64) error {
	cat, err := s.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return classify("get category", err)
	}
	if cat.IsDefault() {
		return fmt.Errorf("%w: cannot delete the %s category", ErrProtectedEntity, category.DefaultName)
	}

	count, err := s.store.CountStocksInCategory(ctx, id)
	if err != nil {
		return classify("count stocks", err)
	}

	if count == 0 {
		if err := s.store.DeleteCategory(ctx, id); err != nil {
			return classify("delete category", err)
		}
		s.logger.Info("category deleted", "category_id", id)
		return nil
	}

	fallback, err := s.defaultCategory(ctx)
	if err != nil {
		return err
	}

	moved, err := s.store.ReassignAndDeleteCategory(ctx, id, fallback.ID)
	if err != nil {
		return classify("reassign and delete category", err)
	}

	s.logger.Info("category deleted",
		"category_id", id,
		"stocks_moved", moved,
		"moved_to", fallback.ID,
	)
	return nil
}

// ListCategories returns every category with its stock count. Callers must
// not depend on the order.
func (s *InventoryService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, classify("list categories", err)
	}
	return categories, nil
}

func (s *InventoryService) defaultCategory(ctx context.Context) (*category.Category, error) {
	cat, err := s.store.FindCategoryByName(ctx, category.DefaultName)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s category not found", ErrInvariantViolation, category.DefaultName)
	}
	if err != nil {
		return nil, classify("find default category", err)
	}
	return cat, nil
}

// ============================================================================
// Stocks
// ============================================================================

// AddStock creates a stock and its first history entry atomically.
func (s *InventoryService) AddStock(ctx context.Context, in stock.Input) (int64, error) {
	if err := s.prepare(ctx, &in, 0); err != nil {
		return 0, err
	}

	st := in.Stock(0)
	if err := s.store.CreateStock(ctx, st, in.Percentage, s.now()); err != nil {
		return 0, classify("create stock", err)
	}

	s.logger.Info("stock added",
		"stock_id", st.ID,
		"name", st.Name,
		"category_id", st.CategoryID,
		"percentage", in.Percentage,
	)
	return st.ID, nil
}

// UpdateStock overwrites the stock's fields and appends a history entry.
func (s *InventoryService) UpdateStock(ctx context.Context, id int64, in stock.Input) error {
	if _, err := s.store.GetStock(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("stock %d: %w", id, ErrNotFound)
		}
		return classify("get stock", err)
	}

	if err := s.prepare(ctx, &in, id); err != nil {
		return err
	}

	if err := s.store.UpdateStock(ctx, in.Stock(id), in.Percentage, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("stock %d: %w", id, ErrNotFound)
		}
		return classify("update stock", err)
	}

	s.logger.Info("stock updated", "stock_id", id, "percentage", in.Percentage)
	return nil
}

// DeleteStock removes a stock and all of its history atomically.
func (s *InventoryService) DeleteStock(ctx context.Context, id int64) error {
	if err := s.store.DeleteStock(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("stock %d: %w", id, ErrNotFound)
		}
		return classify("delete stock", err)
	}
	s.logger.Info("stock deleted", "stock_id", id)
	return nil
}

// ListStocksWithLatest returns every stock with its current percentage,
// lowest first; stocks without history come last.
func (s *InventoryService) ListStocksWithLatest(ctx context.Context) ([]stock.View, error) {
	views, err := s.store.ListStocksWithLatest(ctx)
	if err != nil {
		return nil, classify("list stocks", err)
	}
	return views, nil
}

func (s *InventoryService) GetStock(ctx context.Context, id int64) (*StockDetail, error) {
	view, err := s.store.GetStockView(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("stock %d: %w", id, ErrNotFound)
		}
		return nil, classify("get stock", err)
	}

	history, err := s.store.ListStockHistory(ctx, id)
	if err != nil {
		return nil, classify("list stock history", err)
	}
	return &StockDetail{View: *view, History: history}, nil
}

// ListHistory returns every history entry, oldest first.
func (s *InventoryService) ListHistory(ctx context.Context) ([]stock.HistoryRow, error) {
	history, err := s.store.ListHistory(ctx)
	if err != nil {
		return nil, classify("list history", err)
	}
	return history, nil
}

// prepare normalizes and validates in, resolves a zero category to the
// default one and rejects a name already used by another stock.
func (s *InventoryService) prepare(ctx context.Context, in *stock.Input, selfID int64) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if in.CategoryID == 0 {
		fallback, err := s.defaultCategory(ctx)
		if err != nil {
			return err
		}
		in.CategoryID = fallback.ID
	} else if _, err := s.store.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("category %d: %w", in.CategoryID, ErrNotFound)
		}
		return classify("get category", err)
	}

	existing, err := s.store.FindStockByName(ctx, in.Name)
	if err == nil && existing.ID != selfID {
		return fmt.Errorf("%w: an item named %q already exists", ErrDuplicateName, existing.Name)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return classify("find stock", err)
	}
	return nil
}

// ============================================================================
// Maintenance
// ============================================================================

func (s *InventoryService) Stats(ctx context.Context) (store.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return store.Stats{}, classify("stats", err)
	}
	return stats, nil
}

func (s *InventoryService) Optimize(ctx context.Context) error {
	start := s.now()
	if err := s.store.Optimize(ctx); err != nil {
		return classify("optimize", err)
	}
	s.logger.Info("database optimized", "duration", s.now().Sub(start))
	return nil
}
