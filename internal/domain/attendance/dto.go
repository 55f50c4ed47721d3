package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

// RecordAttendanceRequest creates or replaces the attendance of one employee on one day.
type RecordAttendanceRequest struct {
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date,omitempty"` // YYYY-MM-DD, default today
	Status         string  `json:"status,omitempty"`          // default auto
	CheckInTime    *string `json:"check_in_time,omitempty"`   // HH:MM
	CheckOutTime   *string `json:"check_out_time,omitempty"`  // HH:MM
	Notes          *string `json:"notes,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("employee_id", r.EmployeeID)
	if r.AttendanceDate != "" {
		if _, ok := validator.IsValidDate(r.AttendanceDate); !ok {
			errs.Add("attendance_date", "attendance_date must be in YYYY-MM-DD format")
		}
	}
	validateStatus(&errs, "status", r.Status, true)
	validateClock(&errs, "check_in_time", r.CheckInTime)
	validateClock(&errs, "check_out_time", r.CheckOutTime)

	return errs.OrNil()
}

// UpdateAttendanceRequest patches an existing record. An empty time string clears it.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	Status       *string `json:"status,omitempty"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("id", r.ID)
	if r.Status != nil {
		if validator.IsEmpty(*r.Status) {
			errs.Add("status", "status must not be empty")
		} else {
			validateStatus(&errs, "status", *r.Status, true)
		}
	}
	validateClock(&errs, "check_in_time", r.CheckInTime)
	validateClock(&errs, "check_out_time", r.CheckOutTime)

	return errs.OrNil()
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc by attendance_date
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" {
		validateStatus(&errs, "status", *f.Status, false)
	}
	for field, v := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs.Add(field, field+" must be in YYYY-MM-DD format")
			}
		}
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc"
	}

	return errs.OrNil()
}

// SyncRecord is one attendance row pushed by an offline kiosk.
type SyncRecord struct {
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	CheckInTime    *string `json:"check_in_time,omitempty"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	Status         string  `json:"status,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type SyncBatch []SyncRecord

func (b SyncBatch) Validate() error {
	if len(b) == 0 {
		return ErrEmptySyncBatch
	}

	var errs validator.ValidationErrors
	for i, rec := range b {
		prefix := fmt.Sprintf("records[%d].", i)
		errs.Required(prefix+"employee_id", rec.EmployeeID)
		if _, ok := validator.IsValidDate(rec.AttendanceDate); !ok {
			errs.Add(prefix+"attendance_date", "attendance_date must be in YYYY-MM-DD format")
		}
		validateStatus(&errs, prefix+"status", rec.Status, true)
		validateClock(&errs, prefix+"check_in_time", rec.CheckInTime)
		validateClock(&errs, prefix+"check_out_time", rec.CheckOutTime)
	}
	return errs.OrNil()
}

type SyncResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
	Skipped int  `json:"skipped"`
}

type HealthResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type PunchRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("employee_id", r.EmployeeID)
	return errs.OrNil()
}

type PunchAction string

const (
	PunchCheckIn  PunchAction = "check_in"
	PunchCheckOut PunchAction = "check_out"
)

type PunchResponse struct {
	Action       PunchAction        `json:"action"`
	EmployeeName string             `json:"employee_name"`
	Time         string             `json:"time"`
	Attendance   AttendanceResponse `json:"attendance"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	AttendanceDate  string  `json:"attendance_date"`
	Status          string  `json:"status"`
	CheckInTime     *string `json:"check_in_time,omitempty"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	Source          string  `json:"source"`
	SyncedFromLocal bool    `json:"synced_from_local"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		JobTitle:        a.JobTitle,
		AttendanceDate:  a.AttendanceDate.Format("2006-01-02"),
		Status:          string(a.Status),
		CheckInTime:     a.CheckInTime,
		CheckOutTime:    a.CheckOutTime,
		Source:          string(a.Source),
		SyncedFromLocal: a.SyncedFromLocal,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}

func validateStatus(errs *validator.ValidationErrors, field, status string, allowAuto bool) {
	if status == "" {
		return
	}
	if allowAuto && Status(status) == StatusAuto {
		return
	}
	if !Status(status).Valid() {
		allowed := strings.Join(StatusValues, ", ")
		if allowAuto {
			allowed = "auto, " + allowed
		}
		errs.Add(field, field+" must be one of: "+allowed)
	}
}

func validateClock(errs *validator.ValidationErrors, field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	if !validator.IsValidClock(*value) {
		errs.Add(field, field+" must be in HH:MM format")
	}
}
