package web

import (
	"net/http"
	"strconv"

	"expiry-discount/internal/core"
)

// calculateDiscounts handles POST /api/discounts/calculate: it runs one full
// pricing cycle and returns the applied decisions. A concurrent cycle yields
// HTTP 409; fetch or commit failures yield HTTP 500 with no partial writes.
func (h *Handler) calculateDiscounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RunPricingCycle(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// discountAnalytics handles GET /api/discounts/analytics.
func (h *Handler) discountAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.svc.GetDiscountAnalytics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// discountHistory handles GET /api/discounts/history?limit=N (default 50).
func (h *Handler) discountHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			writeError(w, r, "limit must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.svc.ListDiscountHistory(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
