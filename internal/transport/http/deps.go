package http

import (
	"github.com/hrms-lite/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/hrms-lite/api/internal/infrastructure/jwt"
	"github.com/hrms-lite/api/internal/infrastructure/smtp"
	"github.com/hrms-lite/api/internal/infrastructure/sns"
	"github.com/hrms-lite/api/internal/pkg/otp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	EmployeeRepo   *dynamo.EmployeeRepo
	AttendanceRepo *dynamo.AttendanceRepo
	OTPStore       *otp.Store
	Mailer         smtp.Mailer
	SMSSender      sns.SMSSender
	JWTProvider    *jwtinfra.Provider
}
