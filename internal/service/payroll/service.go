package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	paymentRepo    payroll.PaymentRepository
	purchaseRepo   payroll.PurchaseRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	location       *time.Location
	now            func() time.Time
}

func NewPayrollService(
	paymentRepo payroll.PaymentRepository,
	purchaseRepo payroll.PurchaseRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	location *time.Location,
) payroll.PayrollService {
	if location == nil {
		location = time.UTC
	}
	return &PayrollServiceImpl{
		paymentRepo:    paymentRepo,
		purchaseRepo:   purchaseRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		location:       location,
		now:            time.Now,
	}
}

func (s *PayrollServiceImpl) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// monthRange resolves a YYYY-MM string, defaulting to the current month.
func (s *PayrollServiceImpl) monthRange(month string) (time.Time, time.Time, error) {
	if month == "" {
		month = s.today().Format("2006-01")
	}
	start, end, ok := validator.MonthRange(month)
	if !ok {
		return time.Time{}, time.Time{}, payroll.ErrInvalidMonth
	}
	return start, end, nil
}

// requireEmployee checks that the employee exists in the caller's company.
func (s *PayrollServiceImpl) requireEmployee(ctx context.Context, employeeID, companyID string) (employee.Employee, error) {
	if !validator.IsValidUUID(employeeID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByID(ctx, employeeID, companyID)
}

func (s *PayrollServiceImpl) CreatePayment(ctx context.Context, req payroll.CreatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	emp, err := s.requireEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	paymentDate := s.today()
	if req.PaymentDate != "" {
		paymentDate, _ = validator.IsValidDate(req.PaymentDate)
	}

	created, err := s.paymentRepo.Create(ctx, payroll.Payment{
		CompanyID:   companyID,
		EmployeeID:  emp.ID,
		PaymentType: payroll.PaymentType(req.PaymentType),
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Notes:       trimmed(req.Notes),
	})
	if err != nil {
		return payroll.PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}
	created.EmployeeName = &emp.Name

	slog.Info("payment recorded",
		"payment_id", created.ID,
		"employee_id", emp.ID,
		"type", created.PaymentType,
		"amount", created.Amount.String(),
	)
	return payroll.ToPaymentResponse(created), nil
}

func (s *PayrollServiceImpl) ListPayments(ctx context.Context, filter payroll.PaymentFilter) ([]payroll.PaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && !validator.IsValidUUID(*filter.EmployeeID) {
		return []payroll.PaymentResponse{}, nil
	}

	payments, err := s.paymentRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	responses := make([]payroll.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payroll.ToPaymentResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) DeletePayment(ctx context.Context, id string) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return payroll.ErrPaymentNotFound
	}

	if err := s.paymentRepo.Delete(ctx, id, companyID); err != nil {
		return err
	}

	slog.Info("payment deleted", "payment_id", id, "company_id", companyID)
	return nil
}

func (s *PayrollServiceImpl) CreatePurchase(ctx context.Context, req payroll.CreatePurchaseRequest) (payroll.PurchaseResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PurchaseResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return payroll.PurchaseResponse{}, err
	}

	emp, err := s.requireEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.PurchaseResponse{}, err
	}

	purchaseDate, _ := validator.IsValidDate(req.PurchaseDate)

	created, err := s.purchaseRepo.Create(ctx, payroll.Purchase{
		CompanyID:    companyID,
		EmployeeID:   emp.ID,
		ItemName:     strings.TrimSpace(req.ItemName),
		Amount:       *req.Amount,
		PurchaseDate: purchaseDate,
		Notes:        trimmed(req.Notes),
	})
	if err != nil {
		return payroll.PurchaseResponse{}, fmt.Errorf("failed to create purchase: %w", err)
	}
	created.EmployeeName = &emp.Name

	slog.Info("purchase recorded", "purchase_id", created.ID, "employee_id", emp.ID, "amount", created.Amount.String())
	return payroll.ToPurchaseResponse(created), nil
}

func (s *PayrollServiceImpl) ListPurchases(ctx context.Context, filter payroll.PurchaseFilter) ([]payroll.PurchaseResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && !validator.IsValidUUID(*filter.EmployeeID) {
		return []payroll.PurchaseResponse{}, nil
	}

	purchases, err := s.purchaseRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	responses := make([]payroll.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		responses = append(responses, payroll.ToPurchaseResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) DeletePurchase(ctx context.Context, id string) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return payroll.ErrPurchaseNotFound
	}

	if err := s.purchaseRepo.Delete(ctx, id, companyID); err != nil {
		return err
	}

	slog.Info("purchase deleted", "purchase_id", id, "company_id", companyID)
	return nil
}

// GetMonthlySummary loads the employee's month in parallel and aggregates it.
func (s *PayrollServiceImpl) GetMonthlySummary(ctx context.Context, employeeID string, month string) (payroll.SummaryResponse, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	start, end, err := s.monthRange(month)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	emp, err := s.requireEmployee(ctx, employeeID, companyID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	summary, err := s.summarize(ctx, emp, start, end)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}
	return payroll.ToSummaryResponse(emp.ID, emp.Name, summary), nil
}

func (s *PayrollServiceImpl) summarize(ctx context.Context, emp employee.Employee, start, end time.Time) (payroll.MonthlySummary, error) {
	var (
		payments  []payroll.Payment
		purchases []payroll.Purchase
		records   []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByRange(gCtx, emp.ID, start, end, emp.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		purchases, err = s.purchaseRepo.ListByRange(gCtx, emp.ID, start, end, emp.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load purchases: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByEmployeeAndRange(gCtx, emp.ID, start, end, emp.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return payroll.MonthlySummary{}, err
	}

	return payroll.Aggregate(payroll.AggregateInput{
		Month:      start,
		BaseSalary: emp.BaseSalary,
		Payments:   payments,
		Purchases:  purchases,
		Attendance: records,
	}), nil
}

func (s *PayrollServiceImpl) GetMonthlyReport(ctx context.Context, month string) (payroll.MonthlyReportResponse, error) {
	report, err := s.buildReport(ctx, month)
	if err != nil {
		return payroll.MonthlyReportResponse{}, err
	}
	return payroll.ToReportResponse(report), nil
}

func (s *PayrollServiceImpl) buildReport(ctx context.Context, month string) (payroll.MonthlyReport, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return payroll.MonthlyReport{}, err
	}

	start, end, err := s.monthRange(month)
	if err != nil {
		return payroll.MonthlyReport{}, err
	}

	var (
		employees []employee.Employee
		payments  []payroll.Payment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.GetAllByCompanyID(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByRange(gCtx, "", start, end, companyID)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.MonthlyReport{}, err
	}

	reportEmployees := make([]payroll.ReportEmployee, 0, len(employees))
	for _, e := range employees {
		reportEmployees = append(reportEmployees, payroll.ReportEmployee{
			ID:       e.ID,
			Name:     e.Name,
			JobTitle: e.JobTitle,
			IsActive: e.IsActive,
		})
	}

	return payroll.BuildMonthlyReport(start, reportEmployees, payments), nil
}

var reportHeader = []string{"Employee", "Job Title", "Salaries", "Bonuses", "Deductions", "Advances", "Net", "Payments"}

// ExportMonthlyReport renders the monthly report as an .xlsx workbook with a totals row.
func (s *PayrollServiceImpl) ExportMonthlyReport(ctx context.Context, month string) (payroll.ExportFile, error) {
	report, err := s.buildReport(ctx, month)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	rows := make([][]any, 0, len(report.Rows)+1)
	for _, row := range append(report.Rows, report.Totals) {
		jobTitle := ""
		if row.JobTitle != nil {
			jobTitle = *row.JobTitle
		}
		rows = append(rows, []any{
			row.EmployeeName,
			jobTitle,
			row.Salaries.Truncate(2),
			row.Bonuses.Truncate(2),
			row.Deductions.Truncate(2),
			row.Advances.Truncate(2),
			row.Net.Truncate(2),
			row.PaymentCount,
		})
	}

	label := report.Month.Format("2006-01")
	data, err := spreadsheet.WriteWorkbook(spreadsheet.Sheet{
		Name:          "Payroll " + label,
		Header:        reportHeader,
		Rows:          rows,
		AmountColumns: []int{2, 3, 4, 5, 6},
	})
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to export report: %w", err)
	}

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll-%s.xlsx", label),
		ContentType: spreadsheet.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
