package employee

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (f *fakeEmployeeRepo) pinTaken(e employee.Employee) bool {
	if e.PinCode == nil {
		return false
	}
	for _, other := range f.employees {
		if other.ID != e.ID && other.CompanyID == e.CompanyID && other.PinCode != nil && *other.PinCode == *e.PinCode {
			return true
		}
	}
	return false
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if f.pinTaken(e) {
		return employee.Employee{}, employee.ErrPinCodeExists
	}
	e.ID = uuid.Must(uuid.NewV7()).String()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if e, err := f.GetByID(ctx, id, companyID); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActiveByPinCode(_ context.Context, pin string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.IsActive && e.PinCode != nil && *e.PinCode == pin {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) sorted(companyID string, activeOnly bool) []employee.Employee {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && (!activeOnly || e.IsActive) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	activeOnly := filter.Active != nil && *filter.Active
	all := f.sorted(companyID, activeOnly)
	start := min((filter.Page-1)*filter.Limit, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	return f.sorted(companyID, true), nil
}

func (f *fakeEmployeeRepo) GetAllByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	return f.sorted(companyID, false), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := f.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if f.pinTaken(e) {
		return employee.Employee{}, employee.ErrPinCodeExists
	}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string, companyID string) error {
	e, ok := f.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

const testCompanyID = "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"

func ptr[T any](v T) *T { return &v }

func companyContext(t *testing.T) context.Context {
	t.Helper()
	token, _, err := jwtauth.New("HS256", []byte("test-secret"), nil).Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"role":       auth.RoleAdmin,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService() (*EmployeeServiceImpl, *fakeEmployeeRepo) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, schedule.DefaultScheduleConfig, time.UTC).(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreateEmployee_AppliesDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "  Amina  "})
	require.NoError(t, err)

	assert.Equal(t, "Amina", resp.Name)
	assert.Equal(t, "2025-03-03", resp.HireDate)
	assert.Equal(t, "0.00", resp.BaseSalary)
	assert.True(t, resp.IsActive)
	assert.Equal(t, schedule.DefaultScheduleConfig.WorkStartTime, resp.WorkStartTime)
	assert.Equal(t, schedule.DefaultScheduleConfig.WorkEndTime, resp.WorkEndTime)
	assert.Equal(t, schedule.DefaultScheduleConfig.LateThresholdMinutes, resp.LateThresholdMinutes)
	assert.Equal(t, schedule.DefaultScheduleConfig.OffDays, resp.OffDays)
}

func TestCreateEmployee_ExplicitValues(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	salary := decimal.RequireFromString("2500.5")
	resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:                 "Bilal",
		HireDate:             ptr("2024-06-01"),
		BaseSalary:           &salary,
		IsActive:             ptr(false),
		WorkStartTime:        ptr("07:30"),
		LateThresholdMinutes: ptr(0),
		OffDays:              []int{0},
		PinCode:              ptr("4321"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", resp.HireDate)
	assert.Equal(t, "2500.50", resp.BaseSalary)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "07:30", resp.WorkStartTime)
	assert.Equal(t, 0, resp.LateThresholdMinutes)
	assert.Equal(t, []int{0}, resp.OffDays)
	assert.Equal(t, "4321", *resp.PinCode)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	negative := decimal.NewFromInt(-1)
	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:       "",
		BaseSalary: &negative,
		OffDays:    []int{7},
		PinCode:    ptr("12"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "base_salary")
	assert.Contains(t, fields, "off_days")
	assert.Contains(t, fields, "pin_code")
}

func TestCreateEmployee_DuplicatePin(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "A", PinCode: ptr("1111")})
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "B", PinCode: ptr("1111")})
	assert.ErrorIs(t, err, employee.ErrPinCodeExists)
}

func TestUpdateEmployee_Partial(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name: "Amina", JobTitle: ptr("Cashier"), WorkStartTime: ptr("08:00"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:            created.ID,
		WorkStartTime: ptr(""),
		OffDays:       &[]int{},
		IsActive:      ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Amina", updated.Name)
	assert.Equal(t, "Cashier", *updated.JobTitle)
	assert.Equal(t, schedule.DefaultScheduleConfig.WorkStartTime, updated.WorkStartTime)
	assert.Empty(t, updated.OffDays)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: uuid.Must(uuid.NewV7()).String(), Name: ptr("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListAndRoster(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	for _, name := range []string{"Chen", "Amina", "Bilal"} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: name, IsActive: ptr(name != "Chen")})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, "1-2 of 3", list.Showing)
	assert.Equal(t, "Amina", list.Employees[0].Name)

	active, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Active: ptr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, active.TotalCount)

	roster, err := svc.GetRoster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, schedule.DefaultScheduleConfig.OffDays, roster[0].OffDays)
}

func TestDeleteEmployee(t *testing.T) {
	svc, _ := newTestService()
	ctx := companyContext(t)

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Amina"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, created.ID), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, "bogus"), employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
