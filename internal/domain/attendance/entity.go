package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"

	// StatusAuto asks the resolver to infer the status from the check-in time.
	StatusAuto Status = "auto"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusExcused),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// Attended reports whether the status counts as a worked day.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

type Source string

const (
	SourceManual Source = "manual"
	SourceKiosk  Source = "kiosk"
)

type Attendance struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	AttendanceDate  time.Time
	Status          Status
	CheckInTime     *string // HH:MM
	CheckOutTime    *string // HH:MM
	Source          Source
	SyncedFromLocal bool
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined
	EmployeeName *string
	JobTitle     *string
}
