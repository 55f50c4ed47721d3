package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"-"`
	LeaveStart string  `json:"leave_start"` // YYYY-MM-DD
	LeaveEnd   string  `json:"leave_end"`   // YYYY-MM-DD
	LeaveType  string  `json:"leave_type,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Validate only checks presence and format. Overlaps and reversed ranges are accepted.
func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("employee_id", r.EmployeeID)

	if validator.IsEmpty(r.LeaveStart) {
		errs.Add("leave_start", "leave_start is required")
	} else if _, ok := validator.IsValidDate(r.LeaveStart); !ok {
		errs.Add("leave_start", "leave_start must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.LeaveEnd) {
		errs.Add("leave_end", "leave_end is required")
	} else if _, ok := validator.IsValidDate(r.LeaveEnd); !ok {
		errs.Add("leave_end", "leave_end must be in YYYY-MM-DD format")
	}

	if r.LeaveType == "" {
		r.LeaveType = string(LeaveTypeAnnual)
	} else if !validator.IsInSlice(r.LeaveType, LeaveTypeValues) {
		errs.Add("leave_type", ErrInvalidLeaveType.Error())
	}

	return errs.OrNil()
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	LeaveStart string  `json:"leave_start"`
	LeaveEnd   string  `json:"leave_end"`
	LeaveType  string  `json:"leave_type"`
	Days       int     `json:"days"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveStart: l.LeaveStart.Format("2006-01-02"),
		LeaveEnd:   l.LeaveEnd.Format("2006-01-02"),
		LeaveType:  string(l.LeaveType),
		Days:       l.Days(),
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}
