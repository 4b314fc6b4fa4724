// internal/api/router.go
package api

import "net/http"

// RegisterRoutes mounts every inventory endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Categories
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("POST /categories", h.createCategory)
	mux.HandleFunc("DELETE /categories/{categoryID}", h.deleteCategory)

	// Stocks
	mux.HandleFunc("GET /stocks", h.listStocks)
	mux.HandleFunc("POST /stocks", h.createStock)
	mux.HandleFunc("GET /stocks/{stockID}", h.getStock)
	mux.HandleFunc("PUT /stocks/{stockID}", h.updateStock)
	mux.HandleFunc("DELETE /stocks/{stockID}", h.deleteStock)

	// History
	mux.HandleFunc("GET /history", h.listHistory)

	// Export / Import
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /import", h.importAll)

	// Debug
	mux.HandleFunc("GET /debug/info", h.debugInfo)
}
