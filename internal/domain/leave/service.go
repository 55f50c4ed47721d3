package leave

import "context"

type LeaveService interface {
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	ListLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	DeleteLeave(ctx context.Context, employeeID string, id string) error
}
