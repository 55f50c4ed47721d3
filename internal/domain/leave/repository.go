package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	// ListByEmployee orders by leave_start descending.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Leave, error)
	Delete(ctx context.Context, id string, employeeID string, companyID string) error
}
