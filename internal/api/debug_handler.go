package api

import (
	"net/http"
	"runtime"
	"time"
)

type DebugInfoResponse struct {
	Version      string `json:"version" example:"dev"`
	GoVersion    string `json:"go_version" example:"go1.24.1"`
	Uptime       string `json:"uptime" example:"3h2m1s"`
	DatabasePath string `json:"database_path" example:"data/pantry.db"`
	Categories   int    `json:"categories" example:"5"`
	Stocks       int    `json:"stocks" example:"42"`
	HistoryItems int    `json:"history_items" example:"318"`
}

// debugInfo reports build and database information.
// @Summary      Debug info
// @Tags         Debug
// @Produce      json
// @Success      200  {object}  DebugInfoResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /debug/info [get]
func (h *Handler) debugInfo(w http.ResponseWriter, r *http.Request) {
	stats, err := h.inventory.Stats(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, DebugInfoResponse{
		Version:      h.version,
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		DatabasePath: stats.Path,
		Categories:   stats.Categories,
		Stocks:       stats.Stocks,
		HistoryItems: stats.HistoryItems,
	})
}
