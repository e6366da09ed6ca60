package web

import (
	"net/http"
	"strconv"

	"expiry-discount/internal/core"
)

// listInventory handles GET /api/inventory.
func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListInventory(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if rows == nil {
		rows = []core.InventoryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// createBatch handles POST /api/inventory.
func (h *Handler) createBatch(w http.ResponseWriter, r *http.Request) {
	var input core.BatchInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ProductID == "" || input.BatchID == "" || input.ExpirationDate.IsZero() {
		writeError(w, r, "product_id, batch_id, and expiration_date are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	batch, err := h.svc.CreateBatch(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

// listExpiringInventory handles GET /api/inventory/expiring?days=N (default 30).
func (h *Handler) listExpiringInventory(w http.ResponseWriter, r *http.Request) {
	days := 30
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 0 {
			writeError(w, r, "days must be a non-negative integer", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	rows, err := h.svc.ListExpiringInventory(r.Context(), days)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if rows == nil {
		rows = []core.InventoryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
