package employee_dashboard

import "context"

// EmployeeDashboardService serves the PIN-gated employee self-service page.
type EmployeeDashboardService interface {
	// GetProfile returns the employee's month. Unknown or inactive PINs yield employee.ErrNotRegistered.
	GetProfile(ctx context.Context, req ProfileRequest) (*ProfileResponse, error)
}
