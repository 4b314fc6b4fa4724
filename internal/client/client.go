// Package client talks to a running pantry server over HTTP. It mirrors the
// InventoryService methods so callers can use either one.
package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/service"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&api.ErrorResponse{})
}

// check turns a transport failure or an error response into a service error.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &service.StorageError{Op: op, Err: err}
	}
	if !resp.IsError() {
		return nil
	}
	if e, ok := resp.Error().(*api.ErrorResponse); ok && e.Code != "" {
		return service.FromCode(e.Code, e.Error)
	}
	return &service.StorageError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status())}
}

func (c *Client) ListCategories(ctx context.Context) ([]*category.Category, error) {
	var out []api.CategoryResponse
	resp, err := c.request(ctx).SetResult(&out).Get("/categories")
	if err := check("list categories", resp, err); err != nil {
		return nil, err
	}

	categories := make([]*category.Category, len(out))
	for i, cat := range out {
		categories[i] = cat.Category()
	}
	return categories, nil
}

func (c *Client) AddCategory(ctx context.Context, name string) (*category.Category, error) {
	var out api.CategoryResponse
	resp, err := c.request(ctx).
		SetBody(api.CreateCategoryRequest{Name: name}).
		SetResult(&out).
		Post("/categories")
	if err := check("add category", resp, err); err != nil {
		return nil, err
	}
	return out.Category(), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	resp, err := c.request(ctx).
		SetPathParam("categoryID", strconv.FormatInt(id, 10)).
		Delete("/categories/{categoryID}")
	return check("delete category", resp, err)
}

func (c *Client) ListStocksWithLatest(ctx context.Context) ([]stock.View, error) {
	var out []api.StockResponse
	resp, err := c.request(ctx).SetResult(&out).Get("/stocks")
	if err := check("list stocks", resp, err); err != nil {
		return nil, err
	}

	views := make([]stock.View, len(out))
	for i, s := range out {
		views[i] = s.View()
	}
	return views, nil
}

func (c *Client) GetStock(ctx context.Context, id int64) (*service.StockDetail, error) {
	var out api.StockDetailResponse
	resp, err := c.request(ctx).
		SetPathParam("stockID", strconv.FormatInt(id, 10)).
		SetResult(&out).
		Get("/stocks/{stockID}")
	if err := check("get stock", resp, err); err != nil {
		return nil, err
	}

	detail := &service.StockDetail{
		View:    out.View(),
		History: make([]stock.HistoryEntry, len(out.History)),
	}
	for i, e := range out.History {
		detail.History[i] = stock.HistoryEntry{ID: e.ID, StockID: id, Timestamp: e.Timestamp, Percentage: e.Percentage}
	}
	return detail, nil
}

func (c *Client) AddStock(ctx context.Context, in stock.Input) (int64, error) {
	var out api.CreateStockResponse
	resp, err := c.request(ctx).
		SetBody(stockRequest(in)).
		SetResult(&out).
		Post("/stocks")
	if err := check("add stock", resp, err); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateStock(ctx context.Context, id int64, in stock.Input) error {
	resp, err := c.request(ctx).
		SetPathParam("stockID", strconv.FormatInt(id, 10)).
		SetBody(stockRequest(in)).
		Put("/stocks/{stockID}")
	return check("update stock", resp, err)
}

func (c *Client) DeleteStock(ctx context.Context, id int64) error {
	resp, err := c.request(ctx).
		SetPathParam("stockID", strconv.FormatInt(id, 10)).
		Delete("/stocks/{stockID}")
	return check("delete stock", resp, err)
}

func (c *Client) ListHistory(ctx context.Context) ([]stock.HistoryRow, error) {
	var out []api.HistoryResponse
	resp, err := c.request(ctx).SetResult(&out).Get("/history")
	if err := check("list history", resp, err); err != nil {
		return nil, err
	}

	rows := make([]stock.HistoryRow, len(out))
	for i, h := range out {
		rows[i] = h.Row()
	}
	return rows, nil
}

func (c *Client) Export(ctx context.Context) (*service.Snapshot, error) {
	var out service.Snapshot
	resp, err := c.request(ctx).
		SetQueryParam("format", string(service.FormatJSON)).
		SetResult(&out).
		Get("/export")
	if err := check("export", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Import(ctx context.Context, snap *service.Snapshot) (service.ImportResult, error) {
	var out service.ImportResult
	resp, err := c.request(ctx).
		SetQueryParam("format", string(service.FormatJSON)).
		SetBody(snap).
		SetResult(&out).
		Post("/import")
	return out, check("import", resp, err)
}

func stockRequest(in stock.Input) api.StockRequest {
	pct := in.Percentage
	return api.StockRequest{
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Type:       string(in.Type),
		FullValue:  in.FullValue,
		Unit:       in.Unit,
		Percentage: &pct,
	}
}
