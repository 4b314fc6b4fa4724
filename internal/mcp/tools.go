package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/service"
)

type tools struct {
	inventory Inventory
	logger    *slog.Logger
}

// stockParams are shared by add_stock and update_stock.
func stockParams(opts ...mcplib.ToolOption) []mcplib.ToolOption {
	return append(opts,
		mcplib.WithString("name", mcplib.Required(), mcplib.Description("Item name, unique ignoring case")),
		mcplib.WithNumber("category_id", mcplib.Description("Category id; 0 or omitted means Uncategorized")),
		mcplib.WithString("type", mcplib.Description("basic (default) or exact")),
		mcplib.WithNumber("full_value", mcplib.Description("Full amount, required for exact items")),
		mcplib.WithString("unit", mcplib.Description("Unit of the full amount, e.g. g or l")),
		mcplib.WithString("level", mcplib.Description("full, half or refill")),
		mcplib.WithNumber("percentage", mcplib.Description("Fill level between 0 and 100")),
		mcplib.WithNumber("current", mcplib.Description("Current amount, exact items only")),
	)
}

func registerTools(s *server.MCPServer, t *tools) {
	s.AddTool(
		mcplib.NewTool("get_categories",
			mcplib.WithDescription("Lists every category with its item count"),
		),
		t.handleGetCategories,
	)

	s.AddTool(
		mcplib.NewTool("add_category",
			mcplib.WithDescription("Creates a category. The name is stored in sentence case"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Category name")),
		),
		t.handleAddCategory,
	)

	s.AddTool(
		mcplib.NewTool("delete_category",
			mcplib.WithDescription("Deletes a category and moves its items to Uncategorized"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Category id")),
		),
		t.handleDeleteCategory,
	)

	s.AddTool(
		mcplib.NewTool("get_stocks_with_latest",
			mcplib.WithDescription("Lists every item with its current fill percentage, lowest first"),
		),
		t.handleGetStocks,
	)

	s.AddTool(
		mcplib.NewTool("add_stock",
			stockParams(mcplib.WithDescription("Creates an item. Give exactly one of level, percentage or current"))...,
		),
		t.handleAddStock,
	)

	s.AddTool(
		mcplib.NewTool("update_stock",
			stockParams(
				mcplib.WithDescription("Replaces an item and records its new fill level"),
				mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Item id")),
			)...,
		),
		t.handleUpdateStock,
	)

	s.AddTool(
		mcplib.NewTool("delete_stock",
			mcplib.WithDescription("Deletes an item and its history"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Item id")),
		),
		t.handleDeleteStock,
	)

	s.AddTool(
		mcplib.NewTool("get_history",
			mcplib.WithDescription("Lists every recorded fill level, oldest first"),
		),
		t.handleGetHistory,
	)
}

func (t *tools) handleGetCategories(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	categories, err := t.inventory.ListCategories(ctx)
	if err != nil {
		return serviceErrorResult(err), nil
	}
	out := make([]api.CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = api.NewCategoryResponse(c)
	}
	return jsonResult(out)
}

func (t *tools) handleAddCategory(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return invalidArgs(err), nil
	}

	cat, err := t.inventory.AddCategory(ctx, name)
	if err != nil {
		return serviceErrorResult(err), nil
	}
	return jsonResult(api.NewCategoryResponse(cat))
}

func (t *tools) handleDeleteCategory(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return invalidArgs(err), nil
	}

	if err := t.inventory.DeleteCategory(ctx, id); err != nil {
		return serviceErrorResult(err), nil
	}
	return textResult(fmt.Sprintf("category %d deleted", id)), nil
}

func (t *tools) handleGetStocks(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	views, err := t.inventory.ListStocksWithLatest(ctx)
	if err != nil {
		return serviceErrorResult(err), nil
	}
	out := make([]api.StockResponse, len(views))
	for i, v := range views {
		out[i] = api.NewStockResponse(v)
	}
	return jsonResult(out)
}

func (t *tools) handleAddStock(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	req, err := stockRequest(request)
	if err != nil {
		return invalidArgs(err), nil
	}
	in, err := req.Input()
	if err != nil {
		return invalidArgs(err), nil
	}

	id, err := t.inventory.AddStock(ctx, in)
	if err != nil {
		return serviceErrorResult(err), nil
	}
	t.logger.Info("stock added via mcp", "stock_id", id)
	return jsonResult(api.CreateStockResponse{ID: id})
}

func (t *tools) handleUpdateStock(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return invalidArgs(err), nil
	}
	req, err := stockRequest(request)
	if err != nil {
		return invalidArgs(err), nil
	}
	in, err := req.Input()
	if err != nil {
		return invalidArgs(err), nil
	}

	if err := t.inventory.UpdateStock(ctx, id, in); err != nil {
		return serviceErrorResult(err), nil
	}
	return textResult(fmt.Sprintf("stock %d updated", id)), nil
}

func (t *tools) handleDeleteStock(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return invalidArgs(err), nil
	}

	if err := t.inventory.DeleteStock(ctx, id); err != nil {
		return serviceErrorResult(err), nil
	}
	return textResult(fmt.Sprintf("stock %d deleted", id)), nil
}

func (t *tools) handleGetHistory(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	rows, err := t.inventory.ListHistory(ctx)
	if err != nil {
		return serviceErrorResult(err), nil
	}
	out := make([]api.HistoryResponse, len(rows))
	for i, r := range rows {
		out[i] = api.NewHistoryResponse(r)
	}
	return jsonResult(out)
}

// ── Argument helpers ────────────────────────────────────────────────────────

func requireID(request mcplib.CallToolRequest) (int64, error) {
	id, err := request.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	if id <= 0 || id != float64(int64(id)) {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return int64(id), nil
}

// stockRequest maps tool arguments onto the HTTP request type so both
// gateways share its validation.
func stockRequest(request mcplib.CallToolRequest) (*api.StockRequest, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return nil, err
	}
	categoryID, err := optionalCategoryID(request)
	if err != nil {
		return nil, err
	}
	args := request.GetArguments()

	req := &api.StockRequest{
		Name:       name,
		CategoryID: categoryID,
		Type:       request.GetString("type", ""),
		FullValue:  optionalFloat(args, "full_value"),
		Unit:       optionalString(args, "unit"),
		Level:      optionalString(args, "level"),
		Percentage: optionalFloat(args, "percentage"),
		Current:    optionalFloat(args, "current"),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func optionalCategoryID(request mcplib.CallToolRequest) (int64, error) {
	id := request.GetFloat("category_id", 0)
	if id < 0 || id != float64(int64(id)) {
		return 0, fmt.Errorf("category_id must be a non-negative integer")
	}
	return int64(id), nil
}

func optionalFloat(args map[string]any, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optionalString(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

// ── Result helpers ──────────────────────────────────────────────────────────

// jsonResult marshals v as indented JSON and wraps it in a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

// invalidArgs reports a bad tool argument as a validation failure.
func invalidArgs(err error) *mcplib.CallToolResult {
	return errorResult(fmt.Sprintf("%s: %v", service.CodeValidation, err))
}

// serviceErrorResult prefixes the message with the error code so callers can
// tell failures apart.
func serviceErrorResult(err error) *mcplib.CallToolResult {
	return errorResult(fmt.Sprintf("%s: %v", service.Code(err), err))
}
