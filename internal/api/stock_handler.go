package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

// StockRequest creates or replaces a stock. The new percentage is given by
// exactly one of level, percentage or current; current is converted against
// full_value and is only accepted for exact stocks.
type StockRequest struct {
	Name       string   `json:"name" validate:"required,max=100" example:"Coffee beans"`
	CategoryID int64    `json:"category_id" validate:"gte=0" example:"2"`
	Type       string   `json:"type" validate:"omitempty,oneof=basic exact" example:"exact"`
	FullValue  *float64 `json:"full_value,omitempty" validate:"omitempty,gt=0" example:"500"`
	Unit       *string  `json:"unit,omitempty" validate:"omitempty,max=20" example:"g"`
	Level      *string  `json:"level,omitempty" validate:"omitempty,oneof=full half refill" example:"half"`
	Percentage *float64 `json:"percentage,omitempty" validate:"omitempty,gte=0,lte=100" example:"40"`
	Current    *float64 `json:"current,omitempty" validate:"omitempty,gte=0" example:"200"`
}

func (r *StockRequest) Validate() error {
	set := 0
	for _, present := range []bool{r.Level != nil, r.Percentage != nil, r.Current != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return errors.New("exactly one of level, percentage or current is required")
	}
	if r.Current != nil && r.Type != string(stock.TypeExact) {
		return errors.New("current is only accepted for exact stocks")
	}
	return nil
}

// Input converts the request into a service input, resolving the percentage.
func (r *StockRequest) Input() (stock.Input, error) {
	in := stock.Input{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Type:       stock.Type(r.Type),
		FullValue:  r.FullValue,
		Unit:       r.Unit,
	}

	var err error
	switch {
	case r.Level != nil:
		in.Percentage, err = stock.Level(*r.Level).Percentage()
	case r.Percentage != nil:
		in.Percentage = *r.Percentage
	case r.Current != nil:
		if r.FullValue == nil {
			return in, stock.ErrFullValue
		}
		in.Percentage, err = stock.PercentageOf(*r.Current, *r.FullValue)
	}
	return in, err
}

type StockResponse struct {
	ID           int64    `json:"id" example:"7"`
	Name         string   `json:"name" example:"Coffee beans"`
	CategoryID   int64    `json:"category_id" example:"2"`
	CategoryName string   `json:"category_name" example:"Breakfast"`
	Type         string   `json:"type" example:"exact"`
	FullValue    *float64 `json:"full_value,omitempty" example:"500"`
	Unit         *string  `json:"unit,omitempty" example:"g"`
	Percentage   float64  `json:"percentage" example:"40"`
	HasHistory   bool     `json:"has_history" example:"true"`
	Band         string   `json:"band" example:"Needs Refill"`
}

func NewStockResponse(v stock.View) StockResponse {
	return StockResponse{
		ID:           v.ID,
		Name:         v.Name,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Type:         string(v.Type),
		FullValue:    v.FullValue,
		Unit:         v.Unit,
		Percentage:   v.Percentage,
		HasHistory:   v.HasHistory,
		Band:         v.Band().String(),
	}
}

// View converts the response back into the domain view.
func (s StockResponse) View() stock.View {
	return stock.View{
		ID:           s.ID,
		Name:         s.Name,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Type:         stock.Type(s.Type),
		FullValue:    s.FullValue,
		Unit:         s.Unit,
		Percentage:   s.Percentage,
		HasHistory:   s.HasHistory,
	}
}

type StockHistoryEntry struct {
	ID         int64     `json:"id" example:"31"`
	Timestamp  time.Time `json:"timestamp" example:"2025-03-01T09:30:00Z"`
	Percentage float64   `json:"percentage" example:"40"`
}

type StockDetailResponse struct {
	StockResponse
	History []StockHistoryEntry `json:"history"`
}

type CreateStockResponse struct {
	ID int64 `json:"id" example:"7"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listStocks lists stocks with their current percentage.
// @Summary      List stocks
// @Description  Returns every stock with its latest percentage, lowest first. Stocks without history report 100 and come last.
// @Tags         Stocks
// @Produce      json
// @Success      200  {array}   StockResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /stocks [get]
func (h *Handler) listStocks(w http.ResponseWriter, r *http.Request) {
	views, err := h.inventory.ListStocksWithLatest(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	response := make([]StockResponse, len(views))
	for i, v := range views {
		response[i] = NewStockResponse(v)
	}
	respondJSON(w, http.StatusOK, response)
}

// createStock creates a stock and records its first history entry.
// @Summary      Create a stock
// @Description  A category_id of 0 places the stock in Uncategorized. Names must be unique ignoring case.
// @Tags         Stocks
// @Accept       json
// @Produce      json
// @Param        body  body      StockRequest  true  "Stock to create"
// @Success      201   {object}  CreateStockResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "category not found"
// @Failure      409   {object}  ErrorResponse  "name already taken"
// @Failure      500   {object}  ErrorResponse
// @Router       /stocks [post]
func (h *Handler) createStock(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.Input()
	if err != nil {
		respondError(w, http.StatusBadRequest, service.CodeValidation, err.Error())
		return
	}

	id, err := h.inventory.AddStock(r.Context(), in)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, CreateStockResponse{ID: id})
}

// getStock returns a stock with its full history.
// @Summary      Get a stock
// @Tags         Stocks
// @Produce      json
// @Param        stockID  path      int  true  "Stock ID"
// @Success      200      {object}  StockDetailResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /stocks/{stockID} [get]
func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "stockID")
	if !ok {
		return
	}

	detail, err := h.inventory.GetStock(r.Context(), id)
	if h.handleServiceError(w, err) {
		return
	}

	history := make([]StockHistoryEntry, len(detail.History))
	for i, e := range detail.History {
		history[i] = StockHistoryEntry{ID: e.ID, Timestamp: e.Timestamp, Percentage: e.Percentage}
	}
	respondJSON(w, http.StatusOK, StockDetailResponse{
		StockResponse: NewStockResponse(detail.View),
		History:       history,
	})
}

// updateStock replaces a stock's fields and appends a history entry.
// @Summary      Update a stock
// @Tags         Stocks
// @Accept       json
// @Param        stockID  path  int           true  "Stock ID"
// @Param        body     body  StockRequest  true  "New stock state"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "name already taken"
// @Failure      500  {object}  ErrorResponse
// @Router       /stocks/{stockID} [put]
func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "stockID")
	if !ok {
		return
	}
	var req StockRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.Input()
	if err != nil {
		respondError(w, http.StatusBadRequest, service.CodeValidation, err.Error())
		return
	}

	if h.handleServiceError(w, h.inventory.UpdateStock(r.Context(), id, in)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteStock deletes a stock and its history.
// @Summary      Delete a stock
// @Tags         Stocks
// @Param        stockID  path  int  true  "Stock ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /stocks/{stockID} [delete]
func (h *Handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "stockID")
	if !ok {
		return
	}

	if h.handleServiceError(w, h.inventory.DeleteStock(r.Context(), id)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
