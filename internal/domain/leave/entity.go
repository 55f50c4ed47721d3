package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
	LeaveTypeOther  LeaveType = "other"
)

var LeaveTypeValues = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeUnpaid),
	string(LeaveTypeOther),
}

// Leave is an inclusive date range. Ranges of one employee may overlap.
type Leave struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveStart time.Time
	LeaveEnd   time.Time
	LeaveType  LeaveType
	Notes      *string
	CreatedAt  time.Time
}

// Days counts calendar days in the range, both ends included. A reversed range counts as 0.
func (l Leave) Days() int {
	if l.LeaveEnd.Before(l.LeaveStart) {
		return 0
	}
	return int(l.LeaveEnd.Sub(l.LeaveStart).Hours()/24) + 1
}
