package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods take companyID so one tenant can never read another tenant's rows.
type AttendanceRepository interface {
	// Upsert inserts the record or replaces the one stored for (employee_id, attendance_date).
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when nothing has been recorded for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// ListByEmployeeAndRange returns rows with start <= attendance_date < end.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Attendance, error)

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	Delete(ctx context.Context, id string, companyID string) error
}
