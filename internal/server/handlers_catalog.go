package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

type productRequest struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type productResponse struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type listProductsResponse struct {
	Products []productResponse `json:"products"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

type listCategoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
}

type addProductsRequest struct {
	ProductIDs []int64 `json:"productIds"`
}

type addProductsResponse struct {
	Linked []int64 `json:"linked"`
}

func (h *APIHandlers) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), domain.Product{
		ID:          payload.ProductID,
		Name:        payload.Name,
		Brand:       payload.Brand,
		Category:    payload.Category,
		Price:       payload.Price,
		Description: payload.Description,
	})
	if err != nil {
		h.respondServiceError(w, err, "failed to create product", "productId", payload.ProductID)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *APIHandlers) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, listProductsResponse{Products: toProductResponses(products)})
}

func (h *APIHandlers) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), payload.Name)
	if err != nil {
		h.respondServiceError(w, err, "failed to create category", "name", payload.Name)
		return
	}

	respondJSON(w, http.StatusCreated, categoryResponse{
		CategoryID: category.ID,
		Name:       category.Name,
	})
}

func (h *APIHandlers) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to list categories")
		return
	}

	resp := listCategoriesResponse{Categories: make([]categoryResponse, 0, len(categories))}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, categoryResponse{
			CategoryID: category.ID,
			Name:       category.Name,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if err := h.catalog.DeleteCategory(r.Context(), categoryID); err != nil {
		h.respondServiceError(w, err, "failed to delete category", "categoryId", categoryID)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (h *APIHandlers) handleAddProductsToCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var payload addProductsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	linked, err := h.catalog.AddProductsToCategory(r.Context(), categoryID, payload.ProductIDs)
	if err != nil {
		h.respondServiceError(w, err, "failed to link products", "categoryId", categoryID)
		return
	}
	if linked == nil {
		linked = []int64{}
	}
	respondJSON(w, http.StatusOK, addProductsResponse{Linked: linked})
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ProductID:   product.ID,
		Name:        product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		Price:       product.Price,
		Description: product.Description,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}
	return out
}
