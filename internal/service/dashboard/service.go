package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	location *time.Location
	now      func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, location *time.Location) dashboard.DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		location:            location,
		now:                 time.Now,
	}
}

// parseDate parses YYYY-MM-DD, defaulting to today in the service location
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	if date == "" {
		now := s.now().In(s.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		var errs validator.ValidationErrors
		errs.Add("date", "date must be in YYYY-MM-DD format")
		return time.Time{}, errs
	}
	return parsed, nil
}

// GetDashboard returns combined dashboard data using parallel goroutines, one query each
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, date string) (*dashboard.DashboardResponse, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := day.AddDate(0, 0, -30)

	var (
		employees  *dashboard.EmployeeSummaryStats
		attendance *dashboard.AttendanceStats
		payments   *dashboard.PaymentTotals
		onLeave    int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee summary
	g.Go(func() error {
		var err error
		employees, err = s.GetEmployeeSummary(gCtx, companyID, since)
		return err
	})

	// 2. Attendance of the day
	g.Go(func() error {
		var err error
		attendance, err = s.GetAttendanceStatsByDay(gCtx, companyID, day)
		return err
	})

	// 3. Month to date payments and purchases
	g.Go(func() error {
		var err error
		payments, err = s.GetPaymentTotals(gCtx, companyID, monthStart, day.AddDate(0, 0, 1))
		return err
	})

	// 4. Employees on leave
	g.Go(func() error {
		var err error
		onLeave, err = s.CountOnLeave(gCtx, companyID, day)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	recorded := attendance.Present + attendance.Late + attendance.Absent + attendance.Excused
	notRecorded := employees.Active - recorded
	if notRecorded < 0 {
		notRecorded = 0
	}

	return &dashboard.DashboardResponse{
		Date:  day.Format("2006-01-02"),
		Month: day.Format("2006-01"),
		Employees: dashboard.EmployeeSummaryResponse{
			Total:    employees.Total,
			Active:   employees.Active,
			Inactive: employees.Inactive,
			New:      employees.New,
		},
		Attendance: dashboard.AttendanceStatsResponse{
			Present:     attendance.Present,
			Late:        attendance.Late,
			Absent:      attendance.Absent,
			Excused:     attendance.Excused,
			OnLeave:     onLeave,
			NotRecorded: notRecorded,
		},
		Payments: dashboard.PaymentTotalsResponse{
			Salaries:     payroll.FormatAmount(payments.Salaries),
			Advances:     payroll.FormatAmount(payments.Advances),
			Bonuses:      payroll.FormatAmount(payments.Bonuses),
			Deductions:   payroll.FormatAmount(payments.Deductions),
			Purchases:    payroll.FormatAmount(payments.Purchases),
			PaymentCount: payments.PaymentCount,
		},
	}, nil
}
