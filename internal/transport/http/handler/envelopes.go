package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hrms-lite/api/internal/application/dashboard"
	"github.com/hrms-lite/api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OTPEnvelope wraps send-otp responses. OTP is set only in development so
// the code can be used without a configured mail server.
type OTPEnvelope struct {
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

// LoginEnvelope wraps verify-otp responses.
type LoginEnvelope struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// UserEnvelope wraps /auth/me responses.
type UserEnvelope struct {
	User *domain.User `json:"user"`
}

// EmployeeEnvelope wraps single-employee responses.
type EmployeeEnvelope struct {
	Message  string           `json:"message,omitempty"`
	Employee *domain.Employee `json:"employee"`
}

// EmployeesEnvelope wraps employee list responses.
type EmployeesEnvelope struct {
	Employees []domain.Employee `json:"employees"`
}

// AttendanceEnvelope wraps single-record attendance responses.
type AttendanceEnvelope struct {
	Message    string             `json:"message,omitempty"`
	Attendance *domain.Attendance `json:"attendance"`
}

// AttendanceListEnvelope wraps attendance list responses. TotalPresentDays is
// set for per-employee listings, Date for per-day listings.
type AttendanceListEnvelope struct {
	Attendances      []domain.Attendance `json:"attendances"`
	TotalPresentDays *int                `json:"total_present_days,omitempty"`
	Date             string              `json:"date,omitempty"`
}

// DashboardEnvelope wraps dashboard responses.
type DashboardEnvelope struct {
	Dashboard *dashboard.Summary `json:"dashboard"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
