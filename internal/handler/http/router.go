package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/config"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	kioskTokens middleware.KioskTokenStore,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	kioskHandler KioskHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
	empDashboardHandler EmployeeDashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		// PIN-gated, no session
		r.Get("/employee/profile", empDashboardHandler.GetProfile)

		// Kiosk device
		r.Route("/kiosk", func(r chi.Router) {
			r.Use(middleware.KioskOnly(JWTService, kioskTokens))
			r.Use(middleware.RequireCompany)

			r.Get("/attendance/sync", kioskHandler.Health)
			r.Post("/attendance/sync", kioskHandler.Sync)
			r.Get("/employees", employeeHandler.Roster)
			r.Post("/punch", kioskHandler.Punch)
		})

		// Admin session
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequireCompany)
			r.Use(middleware.AdminOnly)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/company", companyHandler.GetMyCompany)
				r.Put("/company", companyHandler.UpdateMyCompany)
				r.Put("/password", companyHandler.ChangePassword)
				r.Get("/kiosk-pin", companyHandler.GetKioskPin)
				r.Put("/kiosk-pin", companyHandler.UpdateKioskPin)
				r.Post("/kiosk-token", companyHandler.IssueKioskToken)
				r.Delete("/kiosk-token", companyHandler.RevokeKioskTokens)
			})

			r.Route("/hr", func(r chi.Router) {
				r.Get("/dashboard", dashboardHandler.GetDashboard)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", employeeHandler.Get)
						r.Put("/", employeeHandler.Update)
						r.Delete("/", employeeHandler.Delete)
						r.Get("/summary", payrollHandler.GetMonthlySummary)

						r.Route("/leaves", func(r chi.Router) {
							r.Get("/", leaveHandler.List)
							r.Post("/", leaveHandler.Create)
							r.Delete("/{leaveId}", leaveHandler.Delete)
						})
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Post("/", attendanceHandler.Record)
					r.Post("/import", attendanceHandler.Import)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})

				r.Route("/payments", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayments)
					r.Post("/", payrollHandler.CreatePayment)
					r.Delete("/{id}", payrollHandler.DeletePayment)
				})

				r.Route("/purchases", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPurchases)
					r.Post("/", payrollHandler.CreatePurchase)
					r.Delete("/{id}", payrollHandler.DeletePurchase)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/report", payrollHandler.GetMonthlyReport)
					r.Get("/report/export", payrollHandler.ExportMonthlyReport)
				})
			})
		})
	})
	return r
}
