package employee_dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	empDashboard "github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"
	aminaID       = "0192a3b4-c5d6-7e8f-9a0b-000000000001"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func inRange(d, start, end time.Time) bool { return !d.Before(start) && d.Before(end) }

type fakeCompanyRepo struct{ company.CompanyRepository }

func (fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	if username == "corner-bakery" {
		return company.Company{ID: testCompanyID, Username: username}, nil
	}
	return company.Company{}, company.ErrCompanyNotFound
}

type fakeEmployeeRepo struct{ employee.EmployeeRepository }

func (fakeEmployeeRepo) GetActiveByPinCode(_ context.Context, pin string, companyID string) (employee.Employee, error) {
	if pin == "4321" && companyID == testCompanyID {
		return employee.Employee{
			ID: aminaID, CompanyID: testCompanyID, Name: "Amina",
			HireDate: date("2024-01-15"), BaseSalary: decimal.NewFromInt(3000), IsActive: true,
		}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
}

func (fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time, _ string) ([]attendance.Attendance, error) {
	all := []attendance.Attendance{
		{EmployeeID: aminaID, AttendanceDate: date("2025-03-02"), Status: attendance.StatusPresent},
		{EmployeeID: aminaID, AttendanceDate: date("2025-03-03"), Status: attendance.StatusAbsent},
		{EmployeeID: aminaID, AttendanceDate: date("2025-04-01"), Status: attendance.StatusPresent},
	}
	var out []attendance.Attendance
	for _, a := range all {
		if a.EmployeeID == employeeID && inRange(a.AttendanceDate, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePaymentRepo struct{ payroll.PaymentRepository }

func (fakePaymentRepo) ListByRange(_ context.Context, _ string, start, end time.Time, _ string) ([]payroll.Payment, error) {
	p := payroll.Payment{EmployeeID: aminaID, PaymentType: payroll.PaymentTypeAdvance, Amount: decimal.NewFromInt(500), PaymentDate: date("2025-03-10")}
	if inRange(p.PaymentDate, start, end) {
		return []payroll.Payment{p}, nil
	}
	return nil, nil
}

type fakePurchaseRepo struct{ payroll.PurchaseRepository }

func (fakePurchaseRepo) ListByRange(context.Context, string, time.Time, time.Time, string) ([]payroll.Purchase, error) {
	return nil, nil
}

func newTestService() *EmployeeDashboardServiceImpl {
	svc := NewEmployeeDashboardService(
		fakeCompanyRepo{}, fakeEmployeeRepo{}, fakeAttendanceRepo{}, fakePaymentRepo{}, fakePurchaseRepo{},
		schedule.DefaultScheduleConfig, time.UTC,
	).(*EmployeeDashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetProfile(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetProfile(context.Background(), empDashboard.ProfileRequest{CompanyUsername: "Corner-Bakery", Pin: "4321"})
	require.NoError(t, err)

	assert.Equal(t, "Amina", resp.Employee.Name)
	assert.Equal(t, "09:00", resp.Employee.WorkStartTime)
	assert.Equal(t, []int{5, 6}, resp.Employee.OffDays)
	assert.Equal(t, "2025-03", resp.Summary.Month)
	assert.Equal(t, "2500.00", resp.Summary.NetPay)
	assert.Equal(t, 1, resp.Summary.PresentDays)
	assert.Equal(t, 1, resp.Summary.AbsentDays)
	assert.Len(t, resp.Attendance, 2)
	assert.Len(t, resp.Payments, 1)
	assert.NotNil(t, resp.Purchases)
}

func TestGetProfile_OtherMonth(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetProfile(context.Background(), empDashboard.ProfileRequest{CompanyUsername: "corner-bakery", Pin: "4321", Month: "2025-04"})
	require.NoError(t, err)
	assert.Equal(t, "3000.00", resp.Summary.NetPay)
	assert.Len(t, resp.Attendance, 1)
	assert.Empty(t, resp.Payments)
}

func TestGetProfile_NotRegistered(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, empDashboard.ProfileRequest{CompanyUsername: "corner-bakery", Pin: "0000"})
	assert.ErrorIs(t, err, employee.ErrNotRegistered)

	_, err = svc.GetProfile(ctx, empDashboard.ProfileRequest{CompanyUsername: "nobody", Pin: "4321"})
	assert.ErrorIs(t, err, employee.ErrNotRegistered)

	_, err = svc.GetProfile(ctx, empDashboard.ProfileRequest{CompanyUsername: "corner-bakery"})
	assert.Error(t, err)
}
