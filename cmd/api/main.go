package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-backoffice-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/hr-backoffice-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/employee"
	employeeDashboardService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/employee_dashboard"
	leaveService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hr-backoffice-go/internal/service/payroll"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	purchaseRepo := postgresql.NewPurchaseRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.KioskExpiration, cfg.IsProduction())

	authService := serviceAuth.NewAuthService(companyRepo, JWTService)
	companyService := serviceCompany.NewCompanyService(companyRepo, JWTService, JWTRepository)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, cfg.Schedule, cfg.App.Location)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, cfg.Schedule, cfg.App.Location)
	payrollSvc := payrollService.NewPayrollService(paymentRepo, purchaseRepo, employeeRepo, attendanceRepo, cfg.App.Location)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, cfg.App.Location)
	empDashboardSvc := employeeDashboardService.NewEmployeeDashboardService(
		companyRepo,
		employeeRepo,
		attendanceRepo,
		paymentRepo,
		purchaseRepo,
		cfg.Schedule,
		cfg.App.Location,
	)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		JWTRepository,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewCompanyHandler(companyService),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewKioskHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEmployeeDashboardHandler(empDashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
