package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hrms-lite/api/internal/application/auth"
	"github.com/hrms-lite/api/internal/pkg/validate"
	"github.com/hrms-lite/api/internal/transport/http/middleware"
)

// CookieConfig controls how the session cookie is scoped.
type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler handles the OTP login flow endpoints.
type AuthHandler struct {
	svc    auth.Service
	cookie CookieConfig
	// devMode echoes the issued code in the send-otp response so the flow
	// works without a configured mail server. Never enabled in production.
	devMode bool
}

func NewAuthHandler(svc auth.Service, cookie CookieConfig, devMode bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, devMode: devMode}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	code, err := h.svc.SendOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	env := OTPEnvelope{Message: "OTP sent successfully"}
	if h.devMode {
		env.OTP = code
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	token, user, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginEnvelope{Message: "Login successful", User: user})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	u, err := h.svc.Me(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: u})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Stateless tokens have no server-side session to destroy; logout is
	// clearing the client's cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Logged out successfully"})
}
