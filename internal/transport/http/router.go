package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hrms-lite/api/internal/application/attendance"
	"github.com/hrms-lite/api/internal/application/auth"
	"github.com/hrms-lite/api/internal/application/dashboard"
	"github.com/hrms-lite/api/internal/application/employee"
	"github.com/hrms-lite/api/internal/config"
	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/transport/http/handler"
	appmiddleware "github.com/hrms-lite/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	// Browsers reject Access-Control-Allow-Credentials together with a
	// wildcard origin, so credentials are only advertised for an explicit
	// origin list.
	allowCredentials := true
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	adminMw := appmiddleware.RequireRole(domain.RoleAdmin)

	// 5 requests/second, burst of 10 — applied to the public login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		OTPStore:    deps.OTPStore,
		Mailer:      deps.Mailer,
		SMSSender:   deps.SMSSender,
		TokenSigner: deps.JWTProvider,
		OTPTTL:      cfg.OTPTTL,
	})
	employeeSvc := employee.NewService(deps.EmployeeRepo)
	attendanceSvc := attendance.NewService(deps.AttendanceRepo, deps.EmployeeRepo)
	dashboardSvc := dashboard.NewService(deps.EmployeeRepo, attendanceSvc)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, handler.CookieConfig{
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
		MaxAge: deps.JWTProvider.Expiry(),
	}, cfg.AppEnv == "development")
	employeeH := handler.NewEmployeeHandler(employeeSvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	r.Get("/health", healthH.Ping)

	r.Route("/api/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/me", authH.Me)
			r.Post("/auth/logout", authH.Logout)

			r.Group(func(r chi.Router) {
				r.Use(adminMw)

				r.Post("/employees", employeeH.Create)
				r.Get("/employees", employeeH.List)
				r.Delete("/employees/{id}", employeeH.Delete)

				r.Post("/attendance", attendanceH.Mark)
				r.Get("/attendance/employee/{employeeId}", attendanceH.ListByEmployee)
				r.Get("/attendance/date", attendanceH.ListByDate)
				r.Get("/attendance/summary", attendanceH.ListAll)

				r.Get("/dashboard", dashboardH.Get)
			})
		})
	})

	return r
}
