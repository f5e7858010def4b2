package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hrms-lite/api/internal/application/auth"
	"github.com/hrms-lite/api/internal/domain"
	jwtinfra "github.com/hrms-lite/api/internal/infrastructure/jwt"
	"github.com/hrms-lite/api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SendOTP(ctx context.Context, req auth.SendOTPRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	var u *domain.User
	if v := args.Get(1); v != nil {
		u = v.(*domain.User)
	}
	return args.String(0), u, args.Error(2)
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var u *domain.User
	if v := args.Get(0); v != nil {
		u = v.(*domain.User)
	}
	return u, args.Error(1)
}

func testCookieConfig() CookieConfig {
	return CookieConfig{Secure: false, MaxAge: 7 * 24 * time.Hour}
}

func TestAuthHandler_SendOTP_DevEcho(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("SendOTP", mock.Anything, auth.SendOTPRequest{Email: "admin@example.com"}).
		Return("4321", nil)

	h := NewAuthHandler(svc, testCookieConfig(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/send-otp",
		strings.NewReader(`{"email":"admin@example.com"}`))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env OTPEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "OTP sent successfully", env.Message)
	assert.Equal(t, "4321", env.OTP)
	svc.AssertExpectations(t)
}

func TestAuthHandler_SendOTP_NoEchoOutsideDev(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("SendOTP", mock.Anything, mock.Anything).Return("4321", nil)

	h := NewAuthHandler(svc, testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/send-otp",
		strings.NewReader(`{"email":"admin@example.com"}`))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "4321")
}

func TestAuthHandler_SendOTP_InvalidBody(t *testing.T) {
	h := NewAuthHandler(new(mockAuthService), testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/send-otp",
		strings.NewReader(`{bad json`))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_SendOTP_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(new(mockAuthService), testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/send-otp",
		strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_SendOTP_UnknownEmail(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("SendOTP", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("user not found: %w", domain.ErrNotFound))

	h := NewAuthHandler(svc, testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/send-otp",
		strings.NewReader(`{"email":"nobody@example.com"}`))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_VerifyOTP_SetsSessionCookie(t *testing.T) {
	user := &domain.User{UserID: "u1", Email: "admin@example.com", Role: domain.RoleAdmin}
	svc := new(mockAuthService)
	svc.On("VerifyOTP", mock.Anything, auth.VerifyOTPRequest{Email: "admin@example.com", OTP: "4321"}).
		Return("signed-token", user, nil)

	h := NewAuthHandler(svc, testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-otp",
		strings.NewReader(`{"email":"admin@example.com","otp":"4321"}`))
	rec := httptest.NewRecorder()

	h.VerifyOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, middleware.SessionCookie, c.Name)
	assert.Equal(t, "signed-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), c.MaxAge)

	var env LoginEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Login successful", env.Message)
	require.NotNil(t, env.User)
	assert.Equal(t, "admin@example.com", env.User.Email)
}

func TestAuthHandler_VerifyOTP_InvalidCode(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("VerifyOTP", mock.Anything, mock.Anything).
		Return("", nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized))

	h := NewAuthHandler(svc, testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-otp",
		strings.NewReader(`{"email":"admin@example.com","otp":"0000"}`))
	rec := httptest.NewRecorder()

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_Me(t *testing.T) {
	user := &domain.User{UserID: "u1", Email: "admin@example.com", Role: domain.RoleAdmin}
	svc := new(mockAuthService)
	svc.On("Me", mock.Anything, "u1").Return(user, nil)

	h := NewAuthHandler(svc, testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	claims := &jwtinfra.Claims{UserID: "u1", Email: "admin@example.com", Role: domain.RoleAdmin}
	req = req.WithContext(context.WithValue(req.Context(), middleware.ClaimsKey, claims))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.User)
	assert.Equal(t, "u1", env.User.UserID)
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	h := NewAuthHandler(new(mockAuthService), testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(new(mockAuthService), testCookieConfig(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
