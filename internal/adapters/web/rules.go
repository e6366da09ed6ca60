package web

import (
	"net/http"
	"strconv"

	"expiry-discount/internal/core"

	"github.com/go-chi/chi/v5"
)

// listRules handles GET /api/discount-rules.
func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.ListRules(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if rules == nil {
		rules = []core.DiscountRule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

// createRule handles POST /api/discount-rules.
func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var input core.RuleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.CreateRule(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

// updateRule handles PUT /api/discount-rules/{id}. Absent fields keep their
// current values.
func (h *Handler) updateRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "rule id must be an integer", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var update core.RuleUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	rule, err := h.svc.UpdateRule(r.Context(), ruleID, update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}
