package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	defaults     schedule.Config
	location     *time.Location
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, defaults schedule.Config, location *time.Location) employee.EmployeeService {
	if location == nil {
		location = time.UTC
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		defaults:     defaults,
		location:     location,
		now:          time.Now,
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// orDefault returns the trimmed value, or fallback when it is missing or blank.
func orDefault(s *string, fallback string) string {
	if v := blankToNil(s); v != nil {
		return *v
	}
	return fallback
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	now := s.now().In(s.location)
	hireDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.HireDate != nil && *req.HireDate != "" {
		hireDate, _ = validator.IsValidDate(*req.HireDate)
	}

	newEmployee := employee.Employee{
		CompanyID:            companyID,
		Name:                 strings.TrimSpace(req.Name),
		JobTitle:             blankToNil(req.JobTitle),
		Phone:                blankToNil(req.Phone),
		NationalID:           blankToNil(req.NationalID),
		HireDate:             hireDate,
		BaseSalary:           decimal.Zero,
		IsActive:             true,
		Notes:                blankToNil(req.Notes),
		WorkStartTime:        orDefault(req.WorkStartTime, s.defaults.WorkStartTime),
		WorkEndTime:          orDefault(req.WorkEndTime, s.defaults.WorkEndTime),
		LateThresholdMinutes: s.defaults.LateThresholdMinutes,
		OffDays:              s.defaults.Clone().OffDays,
		PinCode:              blankToNil(req.PinCode),
		DeviceID:             blankToNil(req.DeviceID),
	}
	if req.BaseSalary != nil {
		newEmployee.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		newEmployee.IsActive = *req.IsActive
	}
	if req.LateThresholdMinutes != nil {
		newEmployee.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.OffDays != nil {
		newEmployee.OffDays = req.OffDays
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "company_id", companyID)
	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0-0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.JobTitle != nil {
		e.JobTitle = blankToNil(req.JobTitle)
	}
	if req.Phone != nil {
		e.Phone = blankToNil(req.Phone)
	}
	if req.NationalID != nil {
		e.NationalID = blankToNil(req.NationalID)
	}
	if req.HireDate != nil && *req.HireDate != "" {
		e.HireDate, _ = validator.IsValidDate(*req.HireDate)
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		e.Notes = blankToNil(req.Notes)
	}
	// Blank schedule fields fall back to the company defaults.
	if req.WorkStartTime != nil {
		e.WorkStartTime = orDefault(req.WorkStartTime, s.defaults.WorkStartTime)
	}
	if req.WorkEndTime != nil {
		e.WorkEndTime = orDefault(req.WorkEndTime, s.defaults.WorkEndTime)
	}
	if req.LateThresholdMinutes != nil {
		e.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.OffDays != nil {
		e.OffDays = *req.OffDays
	}
	if req.PinCode != nil {
		e.PinCode = blankToNil(req.PinCode)
	}
	if req.DeviceID != nil {
		e.DeviceID = blankToNil(req.DeviceID)
	}

	updated, err := s.employeeRepo.Update(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee updated", "employee_id", updated.ID, "company_id", companyID)
	return employee.ToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	if err := s.employeeRepo.Delete(ctx, id, companyID); err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id, "company_id", companyID)
	return nil
}

// GetRoster implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetRoster(ctx context.Context) ([]employee.RosterEntry, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	roster := make([]employee.RosterEntry, 0, len(employees))
	for _, e := range employees {
		sched := e.Schedule(s.defaults)
		roster = append(roster, employee.RosterEntry{
			ID:                   e.ID,
			Name:                 e.Name,
			JobTitle:             e.JobTitle,
			WorkStartTime:        sched.WorkStartTime,
			WorkEndTime:          sched.WorkEndTime,
			LateThresholdMinutes: sched.LateThresholdMinutes,
			OffDays:              sched.OffDays,
			IsActive:             e.IsActive,
		})
	}
	return roster, nil
}
