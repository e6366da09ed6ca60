package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"expiry-discount/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// 1 MB body cap on everything; the payloads here are small JSON documents.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)

		r.Get("/api/inventory", h.listInventory)
		r.Post("/api/inventory", h.createBatch)
		r.Get("/api/inventory/expiring", h.listExpiringInventory)

		r.Get("/api/discount-rules", h.listRules)
		r.Post("/api/discount-rules", h.createRule)
		r.Put("/api/discount-rules/{id}", h.updateRule)

		r.Post("/api/discounts/calculate", h.calculateDiscounts)
		r.Get("/api/discounts/analytics", h.discountAnalytics)
		r.Get("/api/discounts/history", h.discountHistory)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

// decodeJSON decodes the request body into v, writing an appropriate error
// response and returning false on failure. HTTP 413 when the body exceeds the
// RequestBodyLimit cap; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
