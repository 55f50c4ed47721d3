package payroll

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	testCompanyID = "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"
	aminaID       = "0192a3b4-c5d6-7e8f-9a0b-000000000001"
	bilalID       = "0192a3b4-c5d6-7e8f-9a0b-000000000002"
	formerID      = "0192a3b4-c5d6-7e8f-9a0b-000000000003"
)

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && d.Before(end)
}

type fakePaymentRepo struct {
	payments []payroll.Payment
	seq      int
}

func (f *fakePaymentRepo) Create(_ context.Context, p payroll.Payment) (payroll.Payment, error) {
	f.seq++
	p.ID = fmt.Sprintf("0192a3b4-c5d6-7e8f-9a0b-1000000000%02d", f.seq)
	p.CreatedAt = time.Now()
	f.payments = append(f.payments, p)
	return p, nil
}

func (f *fakePaymentRepo) List(_ context.Context, filter payroll.PaymentFilter, companyID string) ([]payroll.Payment, error) {
	var out []payroll.Payment
	for _, p := range f.payments {
		if p.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && *filter.EmployeeID != p.EmployeeID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByRange(_ context.Context, employeeID string, start, end time.Time, companyID string) ([]payroll.Payment, error) {
	var out []payroll.Payment
	for _, p := range f.payments {
		if p.CompanyID == companyID && (employeeID == "" || p.EmployeeID == employeeID) && inRange(p.PaymentDate, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id string, companyID string) error {
	for i, p := range f.payments {
		if p.ID == id && p.CompanyID == companyID {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			return nil
		}
	}
	return payroll.ErrPaymentNotFound
}

type fakePurchaseRepo struct {
	purchases []payroll.Purchase
}

func (f *fakePurchaseRepo) Create(_ context.Context, p payroll.Purchase) (payroll.Purchase, error) {
	p.ID = fmt.Sprintf("0192a3b4-c5d6-7e8f-9a0b-2000000000%02d", len(f.purchases)+1)
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakePurchaseRepo) List(_ context.Context, _ payroll.PurchaseFilter, companyID string) ([]payroll.Purchase, error) {
	var out []payroll.Purchase
	for _, p := range f.purchases {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) ListByRange(_ context.Context, employeeID string, start, end time.Time, companyID string) ([]payroll.Purchase, error) {
	var out []payroll.Purchase
	for _, p := range f.purchases {
		if p.CompanyID == companyID && (employeeID == "" || p.EmployeeID == employeeID) && inRange(p.PurchaseDate, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) Delete(_ context.Context, id string, companyID string) error {
	for i, p := range f.purchases {
		if p.ID == id && p.CompanyID == companyID {
			f.purchases = append(f.purchases[:i], f.purchases[i+1:]...)
			return nil
		}
	}
	return payroll.ErrPurchaseNotFound
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetAllByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.rows {
		if a.CompanyID == companyID && a.EmployeeID == employeeID && inRange(a.AttendanceDate, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	svc       *PayrollServiceImpl
	payments  *fakePaymentRepo
	purchases *fakePurchaseRepo
}

func newFixture() fixture {
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: aminaID, CompanyID: testCompanyID, Name: "Amina", BaseSalary: decimal.RequireFromString("3000"), IsActive: true},
		{ID: bilalID, CompanyID: testCompanyID, Name: "Bilal", JobTitle: ptr("Driver"), BaseSalary: decimal.RequireFromString("2000"), IsActive: true},
		{ID: formerID, CompanyID: testCompanyID, Name: "Zed", IsActive: false},
	}}
	att := &fakeAttendanceRepo{rows: []attendance.Attendance{
		{CompanyID: testCompanyID, EmployeeID: aminaID, AttendanceDate: date("2025-03-02"), Status: attendance.StatusPresent},
		{CompanyID: testCompanyID, EmployeeID: aminaID, AttendanceDate: date("2025-03-03"), Status: attendance.StatusLate},
		{CompanyID: testCompanyID, EmployeeID: aminaID, AttendanceDate: date("2025-03-04"), Status: attendance.StatusAbsent},
		{CompanyID: testCompanyID, EmployeeID: aminaID, AttendanceDate: date("2025-03-05"), Status: attendance.StatusExcused},
		{CompanyID: testCompanyID, EmployeeID: aminaID, AttendanceDate: date("2025-02-28"), Status: attendance.StatusAbsent},
	}}
	payments := &fakePaymentRepo{}
	purchases := &fakePurchaseRepo{}

	svc := NewPayrollService(payments, purchases, employees, att, time.UTC).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, payments: payments, purchases: purchases}
}

func companyContext(t *testing.T) context.Context {
	t.Helper()
	token, _, err := jwtauth.New("HS256", []byte("test-secret"), nil).Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"role":       auth.RoleAdmin,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func (fx fixture) pay(t *testing.T, ctx context.Context, employeeID, kind, amount, day string) {
	t.Helper()
	_, err := fx.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{
		EmployeeID:  employeeID,
		PaymentType: kind,
		Amount:      decimal.RequireFromString(amount),
		PaymentDate: day,
	})
	require.NoError(t, err)
}

func TestCreatePayment(t *testing.T) {
	fx := newFixture()
	ctx := companyContext(t)

	resp, err := fx.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{
		EmployeeID:  aminaID,
		PaymentType: "bonus",
		Amount:      decimal.RequireFromString("10.567"),
		Notes:       ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", resp.PaymentDate)
	assert.Equal(t, "10.56", resp.Amount)
	assert.Equal(t, "Amina", *resp.EmployeeName)
	assert.Nil(t, resp.Notes)

	_, err = fx.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{
		EmployeeID: "0192a3b4-c5d6-7e8f-9a0b-0000000000ff", PaymentType: "salary", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = fx.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeeID: aminaID, PaymentType: "tip"})
	assert.Error(t, err)
}

func TestDeletePaymentAndPurchase(t *testing.T) {
	fx := newFixture()
	ctx := companyContext(t)

	fx.pay(t, ctx, aminaID, "salary", "100", "2025-03-01")
	id := fx.payments.payments[0].ID

	require.NoError(t, fx.svc.DeletePayment(ctx, id))
	assert.ErrorIs(t, fx.svc.DeletePayment(ctx, id), payroll.ErrPaymentNotFound)
	assert.ErrorIs(t, fx.svc.DeletePayment(ctx, "x"), payroll.ErrPaymentNotFound)

	p, err := fx.svc.CreatePurchase(ctx, payroll.CreatePurchaseRequest{
		EmployeeID: bilalID, ItemName: " Rice ", Amount: ptr(decimal.RequireFromString("12.5")), PurchaseDate: "2025-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice", p.ItemName)
	assert.Equal(t, "12.50", p.Amount)

	require.NoError(t, fx.svc.DeletePurchase(ctx, p.ID))
	assert.ErrorIs(t, fx.svc.DeletePurchase(ctx, p.ID), payroll.ErrPurchaseNotFound)
}

func TestGetMonthlySummary(t *testing.T) {
	fx := newFixture()
	ctx := companyContext(t)

	fx.pay(t, ctx, aminaID, "salary", "1500", "2025-03-01")
	fx.pay(t, ctx, aminaID, "bonus", "200.255", "2025-03-10")
	fx.pay(t, ctx, aminaID, "deduction", "50", "2025-03-11")
	fx.pay(t, ctx, aminaID, "advance", "300", "2025-03-31")
	fx.pay(t, ctx, aminaID, "bonus", "999", "2025-04-01")
	fx.pay(t, ctx, bilalID, "bonus", "999", "2025-03-05")
	_, err := fx.svc.CreatePurchase(ctx, payroll.CreatePurchaseRequest{
		EmployeeID: aminaID, ItemName: "Phone", Amount: ptr(decimal.RequireFromString("100")), PurchaseDate: "2025-03-20",
	})
	require.NoError(t, err)

	summary, err := fx.svc.GetMonthlySummary(ctx, aminaID, "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", summary.Month)
	assert.Equal(t, "Amina", summary.EmployeeName)
	assert.Equal(t, "1500.00", summary.Salaries)
	assert.Equal(t, "200.25", summary.Bonuses)
	assert.Equal(t, "50.00", summary.HRDeductions)
	assert.Equal(t, "100.00", summary.PurchasesTotal)
	assert.Equal(t, "150.00", summary.TotalDeductions)
	assert.Equal(t, "300.00", summary.Advances)
	// 3000 + 200.255 - 150 - 300
	assert.Equal(t, "2750.25", summary.NetPay)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, "2025-04-01", summary.NextPayday)

	current, err := fx.svc.GetMonthlySummary(ctx, aminaID, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", current.Month)

	_, err = fx.svc.GetMonthlySummary(ctx, aminaID, "03-2025")
	assert.ErrorIs(t, err, payroll.ErrInvalidMonth)

	_, err = fx.svc.GetMonthlySummary(ctx, "nope", "2025-03")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetMonthlyReport(t *testing.T) {
	fx := newFixture()
	ctx := companyContext(t)

	fx.pay(t, ctx, aminaID, "salary", "1000", "2025-03-01")
	fx.pay(t, ctx, aminaID, "advance", "100", "2025-03-02")
	fx.pay(t, ctx, formerID, "salary", "50", "2025-03-03")
	fx.pay(t, ctx, bilalID, "bonus", "10", "2025-02-27")

	report, err := fx.svc.GetMonthlyReport(ctx, "2025-03")
	require.NoError(t, err)

	require.Len(t, report.Employees, 3)
	assert.Equal(t, "Amina", report.Employees[0].EmployeeName)
	assert.Equal(t, "900.00", report.Employees[0].Net)
	assert.Equal(t, 2, report.Employees[0].PaymentCount)
	assert.Equal(t, "Bilal", report.Employees[1].EmployeeName)
	assert.Equal(t, "0.00", report.Employees[1].Net)
	assert.Equal(t, "Zed", report.Employees[2].EmployeeName)

	assert.Equal(t, "1050.00", report.Totals.Salaries)
	assert.Equal(t, "950.00", report.Totals.Net)
	assert.Equal(t, 3, report.Totals.PaymentCount)
}

func TestExportMonthlyReport(t *testing.T) {
	fx := newFixture()
	ctx := companyContext(t)

	fx.pay(t, ctx, aminaID, "salary", "1000", "2025-03-01")

	file, err := fx.svc.ExportMonthlyReport(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "payroll-2025-03.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Payroll 2025-03")
	require.NoError(t, err)
	// header, Amina, Bilal, totals
	require.Len(t, rows, 4)
	assert.Equal(t, "Employee", rows[0][0])
	assert.Equal(t, "Amina", rows[1][0])
	assert.Equal(t, "Total", rows[3][0])
}
