package employee

import "context"

// EmployeeService defines business logic for employee operations. companyID comes from the JWT.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UpdateEmployee only touches the fields present in the request.
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	DeleteEmployee(ctx context.Context, id string) error

	// GetRoster lists active employees with their schedules for kiosk caches.
	GetRoster(ctx context.Context) ([]RosterEntry, error)
}
