package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
)

const snapshotVersion = "1.0"

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrValidation, s)
}

// Snapshot is a portable copy of the inventory: categories, their stocks and
// each stock's current percentage. History is not carried over.
type Snapshot struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Categories []SnapshotCategory `json:"categories" yaml:"categories"`
}

type SnapshotCategory struct {
	Name   string          `json:"name" yaml:"name"`
	Stocks []SnapshotStock `json:"stocks" yaml:"stocks"`
}

type SnapshotStock struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type" yaml:"type"`
	FullValue  *float64 `json:"full_value,omitempty" yaml:"full_value,omitempty"`
	Unit       *string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Percentage float64  `json:"percentage" yaml:"percentage"`
}

type ImportResult struct {
	CategoriesCreated int `json:"categories_created" yaml:"categories_created"`
	StocksCreated     int `json:"stocks_created" yaml:"stocks_created"`
	StocksSkipped     int `json:"stocks_skipped" yaml:"stocks_skipped"`
}

func (s *Snapshot) Encode(w io.Writer, format Format) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func DecodeSnapshot(r io.Reader, format Format) (*Snapshot, error) {
	var snap Snapshot
	var err error
	if format == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&snap)
	} else {
		err = json.NewDecoder(r).Decode(&snap)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", ErrValidation, err)
	}
	return &snap, nil
}

// Export builds a snapshot of the current inventory.
func (s *InventoryService) Export(ctx context.Context) (*Snapshot, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.ListStocksWithLatest(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]SnapshotStock)
	for _, v := range views {
		byCategory[v.CategoryID] = append(byCategory[v.CategoryID], SnapshotStock{
			Name:       v.Name,
			Type:       string(v.Type),
			FullValue:  v.FullValue,
			Unit:       v.Unit,
			Percentage: v.Percentage,
		})
	}

	snap := &Snapshot{
		Version:    snapshotVersion,
		ExportedAt: s.now().UTC(),
		Categories: make([]SnapshotCategory, 0, len(categories)),
	}
	for _, cat := range categories {
		stocks := byCategory[cat.ID]
		if stocks == nil {
			stocks = []SnapshotStock{}
		}
		snap.Categories = append(snap.Categories, SnapshotCategory{Name: cat.Name, Stocks: stocks})
	}
	return snap, nil
}

// Import merges a snapshot into the inventory. Categories are matched by name
// ignoring case; stocks whose name already exists, or that fail validation,
// are skipped. Each imported stock is created like AddStock, so it gets one
// history entry at its snapshot percentage.
//
// Stocks are committed one at a time. A storage failure aborts the import
// and leaves what was already created in place; importing the same snapshot
// again picks up where it stopped, since existing categories are reused and
// existing stocks skipped.
func (s *InventoryService) Import(ctx context.Context, snap *Snapshot) (ImportResult, error) {
	var result ImportResult

	for _, sc := range snap.Categories {
		categoryID, created, err := s.importCategory(ctx, sc.Name)
		if err != nil {
			return result, err
		}
		if created {
			result.CategoriesCreated++
		}

		for _, ss := range sc.Stocks {
			_, err := s.AddStock(ctx, stock.Input{
				Name:       ss.Name,
				CategoryID: categoryID,
				Type:       stock.Type(ss.Type),
				FullValue:  ss.FullValue,
				Unit:       ss.Unit,
				Percentage: ss.Percentage,
			})
			switch {
			case err == nil:
				result.StocksCreated++
			case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrValidation):
				s.logger.Warn("skipping stock on import", "name", ss.Name, "error", err)
				result.StocksSkipped++
			default:
				return result, err
			}
		}
	}

	return result, nil
}

func (s *InventoryService) importCategory(ctx context.Context, name string) (int64, bool, error) {
	normalized, err := category.NormalizeName(name)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.store.FindCategoryByName(ctx, normalized)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, classify("find category", err)
	}

	cat, err := s.AddCategory(ctx, normalized)
	if err != nil {
		return 0, false, err
	}
	return cat.ID, true, nil
}
