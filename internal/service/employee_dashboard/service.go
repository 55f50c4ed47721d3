package employee_dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	empDashboard "github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type EmployeeDashboardServiceImpl struct {
	companyRepo    company.CompanyRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	paymentRepo    payroll.PaymentRepository
	purchaseRepo   payroll.PurchaseRepository
	defaults       schedule.Config
	location       *time.Location
	now            func() time.Time
}

func NewEmployeeDashboardService(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	paymentRepo payroll.PaymentRepository,
	purchaseRepo payroll.PurchaseRepository,
	defaults schedule.Config,
	location *time.Location,
) empDashboard.EmployeeDashboardService {
	if location == nil {
		location = time.UTC
	}
	return &EmployeeDashboardServiceImpl{
		companyRepo:    companyRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		purchaseRepo:   purchaseRepo,
		defaults:       defaults,
		location:       location,
		now:            time.Now,
	}
}

// identify resolves company username and PIN to an active employee.
func (s *EmployeeDashboardServiceImpl) identify(ctx context.Context, username, pin string) (employee.Employee, error) {
	c, err := s.companyRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return employee.Employee{}, employee.ErrNotRegistered
		}
		return employee.Employee{}, fmt.Errorf("failed to get company: %w", err)
	}

	e, err := s.employeeRepo.GetActiveByPinCode(ctx, strings.TrimSpace(pin), c.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrNotRegistered
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetProfile returns one month of the employee's pay summary and the rows behind it
func (s *EmployeeDashboardServiceImpl) GetProfile(ctx context.Context, req empDashboard.ProfileRequest) (*empDashboard.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month := req.Month
	if month == "" {
		month = s.now().In(s.location).Format("2006-01")
	}
	start, end, _ := validator.MonthRange(month)

	emp, err := s.identify(ctx, req.CompanyUsername, req.Pin)
	if err != nil {
		slog.Warn("profile lookup rejected", "company", req.CompanyUsername)
		return nil, err
	}

	var (
		records   []attendance.Attendance
		payments  []payroll.Payment
		purchases []payroll.Purchase
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByEmployeeAndRange(gCtx, emp.ID, start, end, emp.CompanyID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByRange(gCtx, emp.ID, start, end, emp.CompanyID)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.purchaseRepo.ListByRange(gCtx, emp.ID, start, end, emp.CompanyID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := payroll.Aggregate(payroll.AggregateInput{
		Month:      start,
		BaseSalary: emp.BaseSalary,
		Payments:   payments,
		Purchases:  purchases,
		Attendance: records,
	})

	sched := emp.Schedule(s.defaults)
	resp := &empDashboard.ProfileResponse{
		Employee: empDashboard.ProfileEmployee{
			ID:            emp.ID,
			Name:          emp.Name,
			JobTitle:      emp.JobTitle,
			HireDate:      emp.HireDate.Format("2006-01-02"),
			WorkStartTime: sched.WorkStartTime,
			WorkEndTime:   sched.WorkEndTime,
			OffDays:       sched.OffDays,
		},
		Summary:    payroll.ToSummaryResponse(emp.ID, emp.Name, summary),
		Attendance: make([]attendance.AttendanceResponse, 0, len(records)),
		Payments:   make([]payroll.PaymentResponse, 0, len(payments)),
		Purchases:  make([]payroll.PurchaseResponse, 0, len(purchases)),
	}
	for _, a := range records {
		resp.Attendance = append(resp.Attendance, attendance.ToResponse(a))
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, payroll.ToPaymentResponse(p))
	}
	for _, p := range purchases {
		resp.Purchases = append(resp.Purchases, payroll.ToPurchaseResponse(p))
	}

	return resp, nil
}
