package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
)

// Inventory is the subset of the inventory service exposed as tools.
type Inventory interface {
	ListCategories(ctx context.Context) ([]*category.Category, error)
	AddCategory(ctx context.Context, name string) (*category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListStocksWithLatest(ctx context.Context) ([]stock.View, error)
	AddStock(ctx context.Context, in stock.Input) (int64, error)
	UpdateStock(ctx context.Context, id int64, in stock.Input) error
	DeleteStock(ctx context.Context, id int64) error
	ListHistory(ctx context.Context) ([]stock.HistoryRow, error)
}

// NewPantryMCPServer creates an MCP server with one tool per inventory
// operation.
func NewPantryMCPServer(inventory Inventory, logger *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pantry",
		version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, &tools{inventory: inventory, logger: logger})

	return s
}
