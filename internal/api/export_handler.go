package api

import (
	"fmt"
	"net/http"

	"github.com/pantry-it/backend/internal/service"
)

var contentTypes = map[service.Format]string{
	service.FormatJSON: "application/json",
	service.FormatYAML: "application/yaml",
}

// exportAll streams a snapshot of the inventory.
// @Summary      Export inventory
// @Description  Returns every category with its stocks and their current percentage. History is not included.
// @Tags         Export
// @Produce      json
// @Produce      application/yaml
// @Param        format  query     string  false  "json (default) or yaml"
// @Success      200     {object}  service.Snapshot
// @Failure      400     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseFormat(r.URL.Query().Get("format"))
	if h.handleServiceError(w, err) {
		return
	}

	snap, err := h.inventory.Export(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="pantry-%s.%s"`, snap.ExportedAt.Format("20060102"), format))
	w.WriteHeader(http.StatusOK)
	if err := snap.Encode(w, format); err != nil {
		h.logger.Error("failed to write export", "error", err)
	}
}

// importAll merges an uploaded snapshot into the inventory.
// @Summary      Import inventory
// @Description  Categories are matched by name; stocks whose name already exists are skipped.
// @Tags         Export
// @Accept       json
// @Accept       application/yaml
// @Produce      json
// @Param        format  query     string            false  "json (default) or yaml"
// @Param        body    body      service.Snapshot  true   "Snapshot to import"
// @Success      200     {object}  service.ImportResult
// @Failure      400     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseFormat(r.URL.Query().Get("format"))
	if h.handleServiceError(w, err) {
		return
	}

	snap, err := service.DecodeSnapshot(r.Body, format)
	if h.handleServiceError(w, err) {
		return
	}

	result, err := h.inventory.Import(r.Context(), snap)
	if h.handleServiceError(w, err) {
		return
	}

	h.logger.Info("import finished",
		"categories_created", result.CategoriesCreated,
		"stocks_created", result.StocksCreated,
		"stocks_skipped", result.StocksSkipped,
	)
	respondJSON(w, http.StatusOK, result)
}
