package handler

import (
	"net/http"

	"github.com/hrms-lite/api/internal/application/dashboard"
)

// DashboardHandler handles the dashboard summary endpoint.
type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DashboardEnvelope{Dashboard: sum})
}
