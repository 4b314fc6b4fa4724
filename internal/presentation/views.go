package presentation

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/worker"
)

// ============================================================================
// Dashboard
// ============================================================================

type Dashboard struct {
	NeedsRefill []stock.View
	GettingLow  []stock.View
	WellStocked []stock.View
}

func (d Dashboard) Total() int {
	return len(d.NeedsRefill) + len(d.GettingLow) + len(d.WellStocked)
}

// BuildDashboard splits views into bands, each sorted lowest first.
func BuildDashboard(views []stock.View) Dashboard {
	var d Dashboard
	for _, v := range views {
		switch v.Band() {
		case stock.BandNeedsRefill:
			d.NeedsRefill = append(d.NeedsRefill, v)
		case stock.BandGettingLow:
			d.GettingLow = append(d.GettingLow, v)
		default:
			d.WellStocked = append(d.WellStocked, v)
		}
	}
	for _, band := range [][]stock.View{d.NeedsRefill, d.GettingLow, d.WellStocked} {
		slices.SortStableFunc(band, byPercentage)
	}
	return d
}

func (a *App) Dashboard(ctx context.Context) (Dashboard, error) {
	views, err := a.Stocks(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(views), nil
}

// ============================================================================
// Analytics
// ============================================================================

type Point struct {
	At         time.Time
	Percentage float64
}

// Series is the history of one stock, oldest first.
type Series struct {
	StockID int64
	Name    string
	Points  []Point
}

// BuildSeries groups history rows per stock. Series are ordered by name.
func BuildSeries(rows []stock.HistoryRow) []Series {
	index := make(map[int64]int)
	var series []Series
	for _, r := range rows {
		i, ok := index[r.StockID]
		if !ok {
			i = len(series)
			index[r.StockID] = i
			series = append(series, Series{StockID: r.StockID, Name: r.StockName})
		}
		series[i].Points = append(series[i].Points, Point{At: r.Timestamp, Percentage: r.Percentage})
	}

	for i := range series {
		slices.SortStableFunc(series[i].Points, func(a, b Point) int {
			return a.At.Compare(b.At)
		})
	}
	slices.SortFunc(series, func(a, b Series) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.StockID, b.StockID))
	})
	return series
}

func (a *App) Analytics(ctx context.Context) ([]Series, error) {
	rows, err := a.History(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSeries(rows), nil
}

// ============================================================================
// Settings
// ============================================================================

type CategoryGroup struct {
	Category *category.Category
	Stocks   []stock.View
}

// Settings lists categories with their stocks. Groups are ordered by
// category name with Uncategorized last; stocks within a group lowest first.
type Settings struct {
	Groups []CategoryGroup
}

func BuildSettings(categories []*category.Category, views []stock.View) Settings {
	byCategory := make(map[int64][]stock.View)
	for _, v := range views {
		byCategory[v.CategoryID] = append(byCategory[v.CategoryID], v)
	}

	sorted := slices.Clone(categories)
	slices.SortFunc(sorted, func(a, b *category.Category) int {
		if a.IsDefault() != b.IsDefault() {
			if a.IsDefault() {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Name, b.Name)
	})

	settings := Settings{Groups: make([]CategoryGroup, 0, len(sorted))}
	for _, c := range sorted {
		group := byCategory[c.ID]
		slices.SortStableFunc(group, byPercentage)
		settings.Groups = append(settings.Groups, CategoryGroup{Category: c, Stocks: group})
	}
	return settings
}

// Settings loads categories and stocks concurrently.
func (a *App) Settings(ctx context.Context) (Settings, error) {
	out, err := worker.Run(ctx, 2, map[string]worker.Job[any]{
		"categories": func(ctx context.Context) (any, error) { return a.Categories(ctx) },
		"stocks":     func(ctx context.Context) (any, error) { return a.Stocks(ctx) },
	})
	if err != nil {
		return Settings{}, err
	}
	return BuildSettings(out["categories"].([]*category.Category), out["stocks"].([]stock.View)), nil
}

func byPercentage(a, b stock.View) int {
	return cmp.Compare(a.Percentage, b.Percentage)
}
