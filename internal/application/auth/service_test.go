package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, msg string) error {
	return m.Called(ctx, to, msg).Error(0)
}

type mockTokenSigner struct{ mock.Mock }

func (m *mockTokenSigner) Sign(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

// --- builder ---

func newService(us *mockUserStore, store OTPStore, ml *mockMailer, sms *mockSMSSender, signer *mockTokenSigner) Service {
	return NewService(ServiceDeps{
		UserRepo:    us,
		OTPStore:    store,
		Mailer:      ml,
		SMSSender:   sms,
		TokenSigner: signer,
		OTPTTL:      5 * time.Minute,
	})
}

func adminUser() *domain.User {
	return &domain.User{UserID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin}
}

// --- SendOTP ---

func TestSendOTP_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, nil, nil)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "ghost@x.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSendOTP_EmailDelivery(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)
	ml := &mockMailer{}
	ml.On("SendEmail", "admin@x.com", mock.Anything, mock.Anything).Return(nil)

	store := otp.NewStore(5*time.Minute, nil)
	svc := newService(us, store, ml, nil, nil)

	code, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "Admin@X.com"})
	require.NoError(t, err)
	require.Len(t, code, 4)

	// The issued code is the one pending in the store.
	assert.True(t, store.VerifyAndConsume("admin@x.com", code))
	ml.AssertExpectations(t)
}

func TestSendOTP_DeliveryFailureNotSurfaced(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	store := otp.NewStore(5*time.Minute, nil)
	svc := newService(us, store, ml, nil, nil)

	code, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "admin@x.com"})
	require.NoError(t, err, "issuance must not depend on delivery succeeding")
	assert.True(t, store.VerifyAndConsume("admin@x.com", code))
}

func TestSendOTP_SMSChannel(t *testing.T) {
	phone := "+15550001111"
	u := adminUser()
	u.Phone = &phone
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(u, nil)
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, phone, mock.Anything).Return(nil)

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, sms, nil)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "admin@x.com", Channel: "sms"})

	require.NoError(t, err)
	sms.AssertExpectations(t)
}

func TestSendOTP_SMSWithoutPhone(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)
	sms := &mockSMSSender{}

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, sms, nil)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "admin@x.com", Channel: "sms"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- VerifyOTP ---

func TestVerifyOTP_Success(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	signer := &mockTokenSigner{}
	signer.On("Sign", "u1", "admin@x.com", domain.RoleAdmin).Return("signed-token", nil)

	store := otp.NewStore(5*time.Minute, nil)
	svc := newService(us, store, ml, nil, signer)

	code, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "admin@x.com"})
	require.NoError(t, err)

	token, u, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "admin@x.com", OTP: code})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "u1", u.UserID)

	// Consumed: the same code must not work twice.
	_, _, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "admin@x.com", OTP: code})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerifyOTP_WrongCodeThenRight(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	signer := &mockTokenSigner{}
	signer.On("Sign", mock.Anything, mock.Anything, mock.Anything).Return("signed-token", nil)

	store := otp.NewStore(5*time.Minute, nil)
	svc := newService(us, store, ml, nil, signer)

	code, err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "admin@x.com"})
	require.NoError(t, err)

	// Issued codes are always >= 1000, so "0000" can never match.
	_, _, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "admin@x.com", OTP: "0000"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// The mismatch must not have consumed the pending code.
	_, _, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "admin@x.com", OTP: code})
	require.NoError(t, err)
}

func TestVerifyOTP_NoPendingCode(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@x.com").Return(adminUser(), nil)

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, nil, nil)
	_, _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "admin@x.com", OTP: "1234"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerifyOTP_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, nil, nil)
	_, _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "ghost@x.com", OTP: "1234"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerifyOTP_FixedCodeAccount(t *testing.T) {
	u := &domain.User{UserID: "u2", Email: "demo@example.com", Role: domain.RoleAdmin}
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "demo@example.com").Return(u, nil)
	signer := &mockTokenSigner{}
	signer.On("Sign", "u2", "demo@example.com", domain.RoleAdmin).Return("signed-token", nil)

	store := otp.NewStore(5*time.Minute, map[string]string{"demo@example.com": "1111"})
	svc := newService(us, store, nil, nil, signer)

	// Accepted without any prior SendOTP call, any number of times.
	for i := 0; i < 2; i++ {
		token, _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "demo@example.com", OTP: "1111"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	}

	_, _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: "demo@example.com", OTP: "9999"})
	require.Error(t, err)
}

// --- Me ---

func TestMe(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(adminUser(), nil)

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, nil, nil)
	u, err := svc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", u.Email)
}

func TestMe_NotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "nope").Return(nil, errors.New("user not found"))

	svc := newService(us, otp.NewStore(5*time.Minute, nil), nil, nil, nil)
	_, err := svc.Me(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
