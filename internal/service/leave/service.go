package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *LeaveServiceImpl) requireEmployee(ctx context.Context, employeeID string) (string, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return "", err
	}
	if !validator.IsValidUUID(employeeID) {
		return "", employee.ErrEmployeeNotFound
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return "", err
	}
	return companyID, nil
}

// CreateLeave records a leave range as given. Overlapping and reversed ranges are stored unchanged.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	companyID, err := s.requireEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.LeaveStart)
	end, _ := validator.IsValidDate(req.LeaveEnd)

	var notes *string
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		n := strings.TrimSpace(*req.Notes)
		notes = &n
	}

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		LeaveStart: start,
		LeaveEnd:   end,
		LeaveType:  leave.LeaveType(req.LeaveType),
		Notes:      notes,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	slog.Info("leave recorded",
		"leave_id", created.ID,
		"employee_id", created.EmployeeID,
		"start", req.LeaveStart,
		"end", req.LeaveEnd,
	)
	return leave.ToResponse(created), nil
}

func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	companyID, err := s.requireEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToResponse(l))
	}
	return responses, nil
}

func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, employeeID string, id string) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(employeeID) || !validator.IsValidUUID(id) {
		return leave.ErrLeaveNotFound
	}

	if err := s.leaveRepo.Delete(ctx, id, employeeID, companyID); err != nil {
		return err
	}

	slog.Info("leave deleted", "leave_id", id, "employee_id", employeeID)
	return nil
}
