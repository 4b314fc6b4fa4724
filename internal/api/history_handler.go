package api

import (
	"net/http"
	"time"

	"github.com/pantry-it/backend/internal/domain/stock"
)

type HistoryResponse struct {
	StockID    int64     `json:"stock_id" example:"7"`
	StockName  string    `json:"stock_name" example:"Coffee beans"`
	Timestamp  time.Time `json:"timestamp" example:"2025-03-01T09:30:00Z"`
	Percentage float64   `json:"percentage" example:"40"`
}

func NewHistoryResponse(row stock.HistoryRow) HistoryResponse {
	return HistoryResponse{
		StockID:    row.StockID,
		StockName:  row.StockName,
		Timestamp:  row.Timestamp,
		Percentage: row.Percentage,
	}
}

// Row converts the response back into the domain row.
func (h HistoryResponse) Row() stock.HistoryRow {
	return stock.HistoryRow{
		StockID:    h.StockID,
		StockName:  h.StockName,
		Timestamp:  h.Timestamp,
		Percentage: h.Percentage,
	}
}

// listHistory lists every history entry.
// @Summary      List history
// @Description  Returns all history entries, oldest first, with each stock's current name.
// @Tags         History
// @Produce      json
// @Success      200  {array}   HistoryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /history [get]
func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.inventory.ListHistory(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	response := make([]HistoryResponse, len(rows))
	for i, row := range rows {
		response[i] = NewHistoryResponse(row)
	}
	respondJSON(w, http.StatusOK, response)
}
