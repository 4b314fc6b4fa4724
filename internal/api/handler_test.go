package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/service"
	"github.com/pantry-it/backend/internal/store"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "pantry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.NewInventoryService(context.Background(), s, logger)
	require.NoError(t, err)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, logger, "test"))
	return api.Logging(logger)(api.CORS(mux))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestCategories(t *testing.T) {
	h := newTestHandler(t)

	testCases := []struct {
		name         string
		body         any
		expectedCode int
		errorCode    string
	}{
		{"creates in sentence case", map[string]string{"name": "snacks"}, http.StatusCreated, ""},
		{"duplicate ignoring case", map[string]string{"name": "SNACKS"}, http.StatusConflict, service.CodeDuplicateName},
		{"missing name", map[string]string{}, http.StatusBadRequest, service.CodeValidation},
		{"blank name", map[string]string{"name": "   "}, http.StatusBadRequest, service.CodeValidation},
		{"unknown field", `{"name":"x","folder":"y"}`, http.StatusBadRequest, service.CodeValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/categories", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.errorCode != "" {
				resp := decode[api.ErrorResponse](t, rec)
				assert.Equal(t, tc.errorCode, resp.Code)
				assert.NotEmpty(t, resp.Error)
				return
			}
			resp := decode[api.CategoryResponse](t, rec)
			assert.Equal(t, "Snacks", resp.Name)
			assert.False(t, resp.IsDefault)
		})
	}

	rec := do(t, h, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]api.CategoryResponse](t, rec)
	assert.Len(t, categories, 2)
}

func TestDeleteCategory(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/categories", map[string]string{"name": "Baking"})
	require.Equal(t, http.StatusCreated, rec.Code)
	baking := decode[api.CategoryResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/stocks", map[string]any{"name": "Flour", "category_id": baking.ID, "level": "half"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/categories", nil)
	var def api.CategoryResponse
	for _, c := range decode[[]api.CategoryResponse](t, rec) {
		if c.IsDefault {
			def = c
		}
	}
	require.Equal(t, category.DefaultName, def.Name)

	testCases := []struct {
		name         string
		path         string
		expectedCode int
	}{
		{"default is protected", "/categories/" + itoa(def.ID), http.StatusForbidden},
		{"bad id", "/categories/abc", http.StatusBadRequest},
		{"missing", "/categories/999", http.StatusNotFound},
		{"reassigns stocks", "/categories/" + itoa(baking.ID), http.StatusNoContent},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodDelete, tc.path, nil)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}

	rec = do(t, h, http.MethodGet, "/stocks", nil)
	stocks := decode[[]api.StockResponse](t, rec)
	require.Len(t, stocks, 1)
	assert.Equal(t, def.ID, stocks[0].CategoryID)
	assert.Equal(t, category.DefaultName, stocks[0].CategoryName)
}

func TestCreateStock(t *testing.T) {
	h := newTestHandler(t)

	testCases := []struct {
		name         string
		body         any
		expectedCode int
		percentage   float64
	}{
		{"level", map[string]any{"name": "Milk", "level": "refill"}, http.StatusCreated, 10},
		{"percentage", map[string]any{"name": "Eggs", "percentage": 55}, http.StatusCreated, 55},
		{"current amount", map[string]any{"name": "Rice", "type": "exact", "full_value": 3, "unit": "kg", "current": 1}, http.StatusCreated, 33.33},
		{"no level given", map[string]any{"name": "Tea"}, http.StatusBadRequest, 0},
		{"two levels given", map[string]any{"name": "Tea", "level": "full", "percentage": 20}, http.StatusBadRequest, 0},
		{"bad level", map[string]any{"name": "Tea", "level": "empty"}, http.StatusBadRequest, 0},
		{"current above full", map[string]any{"name": "Oil", "type": "exact", "full_value": 1, "current": 2}, http.StatusBadRequest, 0},
		{"current on basic", map[string]any{"name": "Oil", "current": 2}, http.StatusBadRequest, 0},
		{"exact without full value", map[string]any{"name": "Oil", "type": "exact", "percentage": 50}, http.StatusBadRequest, 0},
		{"percentage out of range", map[string]any{"name": "Oil", "percentage": 120}, http.StatusBadRequest, 0},
		{"unknown category", map[string]any{"name": "Oil", "category_id": 99, "percentage": 50}, http.StatusNotFound, 0},
		{"duplicate name", map[string]any{"name": "MILK", "percentage": 50}, http.StatusConflict, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/stocks", tc.body)
			require.Equal(t, tc.expectedCode, rec.Code, rec.Body.String())
			if tc.expectedCode != http.StatusCreated {
				return
			}
			created := decode[api.CreateStockResponse](t, rec)

			rec = do(t, h, http.MethodGet, "/stocks/"+itoa(created.ID), nil)
			require.Equal(t, http.StatusOK, rec.Code)
			detail := decode[api.StockDetailResponse](t, rec)
			assert.Equal(t, tc.percentage, detail.Percentage)
			assert.Len(t, detail.History, 1)
		})
	}
}

func TestUpdateAndDeleteStock(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/stocks", map[string]any{"name": "Flour", "percentage": 30})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[api.CreateStockResponse](t, rec).ID
	path := "/stocks/" + itoa(id)

	for _, pct := range []float64{70, 50} {
		rec = do(t, h, http.MethodPut, path, map[string]any{"name": "Flour", "percentage": pct})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/stocks", nil)
	stocks := decode[[]api.StockResponse](t, rec)
	require.Len(t, stocks, 1)
	assert.Equal(t, 50.0, stocks[0].Percentage)
	assert.Equal(t, "Getting Low", stocks[0].Band)

	rec = do(t, h, http.MethodGet, "/history", nil)
	history := decode[[]api.HistoryResponse](t, rec)
	require.Len(t, history, 3)
	assert.Equal(t, "Flour", history[2].StockName)

	rec = do(t, h, http.MethodPut, "/stocks/999", map[string]any{"name": "Flour", "percentage": 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/history", nil)
	assert.Empty(t, decode[[]api.HistoryResponse](t, rec))
}

func TestExportImport(t *testing.T) {
	src := newTestHandler(t)
	rec := do(t, src, http.MethodPost, "/stocks", map[string]any{"name": "Soap", "level": "full"})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			rec := do(t, src, http.MethodGet, "/export?format="+format, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "."+format)
			assert.Contains(t, rec.Body.String(), "Soap")

			dst := newTestHandler(t)
			rec = do(t, dst, http.MethodPost, "/import?format="+format, rec.Body.String())
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			result := decode[service.ImportResult](t, rec)
			assert.Equal(t, 1, result.StocksCreated)
		})
	}

	rec = do(t, src, http.MethodGet, "/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebugInfo(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/debug/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[api.DebugInfoResponse](t, rec)
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, 1, info.Categories)
	assert.Equal(t, 0, info.Stocks)
}

func TestMiddleware(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/categories", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodOptions, "/stocks", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
