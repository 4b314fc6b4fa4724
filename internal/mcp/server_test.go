package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/service"
	"github.com/pantry-it/backend/internal/store"
)

func newTestTools(t *testing.T) *tools {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "pantry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.NewInventoryService(context.Background(), s, logger)
	require.NoError(t, err)
	return &tools{inventory: svc, logger: logger}
}

func call(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestPantryMCPServerHasTools(t *testing.T) {
	s := NewPantryMCPServer(newTestTools(t).inventory, slog.New(slog.NewTextHandler(io.Discard, nil)), "test")
	require.NotNil(t, s)

	tools := s.ListTools()
	expectedTools := []string{
		"get_categories",
		"add_category",
		"delete_category",
		"get_stocks_with_latest",
		"add_stock",
		"update_stock",
		"delete_stock",
		"get_history",
	}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestCategoryTools(t *testing.T) {
	tl := newTestTools(t)
	ctx := context.Background()

	res, err := tl.handleAddCategory(ctx, call(map[string]any{"name": "snacks"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	var created api.CategoryResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &created))
	assert.Equal(t, "Snacks", created.Name)

	res, err = tl.handleAddCategory(ctx, call(map[string]any{"name": "SNACKS"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(text(t, res), service.CodeDuplicateName+":"))

	res, err = tl.handleAddCategory(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tl.handleGetCategories(ctx, call(nil))
	require.NoError(t, err)
	var categories []api.CategoryResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &categories))
	require.Len(t, categories, 2)

	for _, c := range categories {
		res, err = tl.handleDeleteCategory(ctx, call(map[string]any{"id": float64(c.ID)}))
		require.NoError(t, err)
		if c.IsDefault {
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), service.CodeProtectedEntity)
		} else {
			assert.False(t, res.IsError, text(t, res))
		}
	}
}

func TestStockTools(t *testing.T) {
	tl := newTestTools(t)
	ctx := context.Background()

	res, err := tl.handleAddStock(ctx, call(map[string]any{"name": "Rice", "type": "exact", "full_value": 2.0, "unit": "kg", "current": 0.5}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	var created api.CreateStockResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &created))

	res, err = tl.handleAddStock(ctx, call(map[string]any{"name": "Tea"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), service.CodeValidation)

	res, err = tl.handleUpdateStock(ctx, call(map[string]any{"id": float64(created.ID), "name": "Rice", "type": "exact", "full_value": 2.0, "level": "full"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	res, err = tl.handleGetStocks(ctx, call(nil))
	require.NoError(t, err)
	var stocks []api.StockResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &stocks))
	require.Len(t, stocks, 1)
	assert.Equal(t, 100.0, stocks[0].Percentage)

	res, err = tl.handleGetHistory(ctx, call(nil))
	require.NoError(t, err)
	var history []api.HistoryResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &history))
	require.Len(t, history, 2)
	assert.Equal(t, 25.0, history[0].Percentage)

	res, err = tl.handleDeleteStock(ctx, call(map[string]any{"id": float64(created.ID)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = tl.handleDeleteStock(ctx, call(map[string]any{"id": float64(created.ID)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), service.CodeNotFound)

	res, err = tl.handleDeleteStock(ctx, call(map[string]any{"id": 1.5}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestArgumentErrorsCarryValidationCode(t *testing.T) {
	tl := newTestTools(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error)
		args    map[string]any
	}{
		{"fractional id", tl.handleDeleteCategory, map[string]any{"id": 1.5}},
		{"missing id", tl.handleDeleteStock, map[string]any{}},
		{"missing category name", tl.handleAddCategory, map[string]any{}},
		{"missing stock name", tl.handleAddStock, map[string]any{"level": "full"}},
		{"fractional category id", tl.handleAddStock, map[string]any{"name": "Tea", "level": "full", "category_id": 2.7}},
		{"negative category id", tl.handleAddStock, map[string]any{"name": "Tea", "level": "full", "category_id": -1.0}},
		{"update with fractional id", tl.handleUpdateStock, map[string]any{"id": 2.5, "name": "Tea", "level": "full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.True(t, strings.HasPrefix(text(t, res), service.CodeValidation+": "), text(t, res))
		})
	}

	res, err := tl.handleGetStocks(ctx, call(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", text(t, res))
}
