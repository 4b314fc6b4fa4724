package api

import (
	"net/http"

	"github.com/pantry-it/backend/internal/domain/category"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100" example:"Snacks"`
}

type CategoryResponse struct {
	ID         int64  `json:"id" example:"2"`
	Name       string `json:"name" example:"Snacks"`
	StockCount int    `json:"stock_count" example:"4"`
	IsDefault  bool   `json:"is_default" example:"false"`
}

func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		StockCount: c.StockCount,
		IsDefault:  c.IsDefault(),
	}
}

// Category converts the response back into the domain type.
func (c CategoryResponse) Category() *category.Category {
	return &category.Category{ID: c.ID, Name: c.Name, StockCount: c.StockCount}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listCategories lists all categories.
// @Summary      List categories
// @Description  Returns every category with the number of stocks it holds. Order is not significant.
// @Tags         Categories
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [get]
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventory.ListCategories(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = NewCategoryResponse(c)
	}
	respondJSON(w, http.StatusOK, response)
}

// createCategory creates a new category.
// @Summary      Create a category
// @Description  The name is stored in sentence case and must be unique ignoring case.
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        body  body      CreateCategoryRequest  true  "Category to create"
// @Success      201   {object}  CategoryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse  "name already taken"
// @Failure      500   {object}  ErrorResponse
// @Router       /categories [post]
func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cat, err := h.inventory.AddCategory(r.Context(), req.Name)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, NewCategoryResponse(cat))
}

// deleteCategory deletes a category and moves its stocks to Uncategorized.
// @Summary      Delete a category
// @Description  Stocks in the category are reassigned to Uncategorized in the same transaction. Uncategorized itself cannot be deleted.
// @Tags         Categories
// @Param        categoryID  path  int  true  "Category ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse  "default category"
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories/{categoryID} [delete]
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}

	if h.handleServiceError(w, h.inventory.DeleteCategory(r.Context(), id)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
