package handler

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-lite/api/internal/application/attendance"
	"github.com/hrms-lite/api/internal/domain"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	svc attendance.Service
}

func NewAttendanceHandler(svc attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req domain.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, created, err := h.svc.Mark(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, AttendanceEnvelope{Message: "Attendance marked successfully", Attendance: a})
		return
	}
	writeJSON(w, http.StatusOK, AttendanceEnvelope{Message: "Attendance updated successfully", Attendance: a})
}

func (h *AttendanceHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	records, totalPresent, err := h.svc.ListByEmployee(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		httpError(w, err)
		return
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	writeJSON(w, http.StatusOK, AttendanceListEnvelope{Attendances: records, TotalPresentDays: &totalPresent})
}

func (h *AttendanceHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !dateRe.MatchString(date) {
		writeError(w, http.StatusBadRequest, "date query parameter is required (format: YYYY-MM-DD)")
		return
	}
	records, err := h.svc.ListByDate(r.Context(), date)
	if err != nil {
		httpError(w, err)
		return
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	writeJSON(w, http.StatusOK, AttendanceListEnvelope{Attendances: records, Date: date})
}

func (h *AttendanceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	writeJSON(w, http.StatusOK, AttendanceListEnvelope{Attendances: records})
}
