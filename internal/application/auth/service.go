package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/infrastructure/smtp"
)

type SendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Channel string `json:"channel" validate:"omitempty,oneof=email sms"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// UserStore is the identity-lookup collaborator: codes are issued and
// verified only for emails it resolves.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OTPStore manages the pending login codes.
type OTPStore interface {
	Issue(email string) (string, error)
	VerifyAndConsume(email, code string) bool
}

// SMSSender sends the code out of band when the sms channel is requested.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenSigner mints the stateless session credential for a verified identity.
type TokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type Service interface {
	// SendOTP issues a login code for the email and attempts out-of-band
	// delivery. The returned code is for the development response path only.
	SendOTP(ctx context.Context, req SendOTPRequest) (string, error)
	// VerifyOTP consumes the pending code and, on success, returns a signed
	// session token with the authenticated user.
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type ServiceDeps struct {
	UserRepo    UserStore
	OTPStore    OTPStore
	Mailer      smtp.Mailer
	SMSSender   SMSSender
	TokenSigner TokenSigner
	OTPTTL      time.Duration
}

type service struct {
	userRepo    UserStore
	otpStore    OTPStore
	mailer      smtp.Mailer
	smsSender   SMSSender
	tokenSigner TokenSigner
	otpTTL      time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:    deps.UserRepo,
		otpStore:    deps.OTPStore,
		mailer:      deps.Mailer,
		smsSender:   deps.SMSSender,
		tokenSigner: deps.TokenSigner,
		otpTTL:      deps.OTPTTL,
	}
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) (string, error) {
	email := strings.ToLower(req.Email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	code, err := s.otpStore.Issue(email)
	if err != nil {
		return "", err
	}

	// The code is already issued and stored; delivery failure is logged but
	// never surfaced — the user can retry delivery by requesting again.
	switch req.Channel {
	case "sms":
		if s.smsSender == nil || u.Phone == nil {
			return "", fmt.Errorf("sms delivery not available for this account: %w", domain.ErrBadRequest)
		}
		if err := s.smsSender.SendSMS(ctx, *u.Phone, "Your HRMS Lite login code: "+code); err != nil {
			slog.Warn("failed to send OTP sms", "user_id", u.UserID, "err", err)
		}
	default:
		if err := s.mailer.SendEmail(u.Email, "Your OTP for HRMS Lite Login", smtp.OTPBody(code, s.otpTTL)); err != nil {
			slog.Warn("failed to send OTP email", "user_id", u.UserID, "err", err)
		}
	}

	return code, nil
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (string, *domain.User, error) {
	email := strings.ToLower(req.Email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	// No-record, expired, and mismatch all collapse to the same outcome so
	// the response never reveals which condition occurred.
	if !s.otpStore.VerifyAndConsume(email, req.OTP) {
		return "", nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokenSigner.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u, nil
}
