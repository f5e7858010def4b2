package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-lite/api/internal/application/employee"
	"github.com/hrms-lite/api/internal/domain"
)

// EmployeeHandler handles employee CRUD endpoints.
type EmployeeHandler struct {
	svc employee.Service
}

func NewEmployeeHandler(svc employee.Service) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, EmployeeEnvelope{Message: "Employee created successfully", Employee: e})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	writeJSON(w, http.StatusOK, EmployeesEnvelope{Employees: employees})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Employee deleted successfully"})
}
