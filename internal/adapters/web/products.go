package web

import (
	"net/http"

	"expiry-discount/internal/core"

	"github.com/go-chi/chi/v5"
)

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// createProduct handles POST /api/products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input core.ProductInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ProductID == "" || input.Name == "" || input.SKU == "" {
		writeError(w, r, "product_id, name, and sku are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
