package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name                 string           `json:"name"`
	JobTitle             *string          `json:"job_title,omitempty"`
	Phone                *string          `json:"phone,omitempty"`
	NationalID           *string          `json:"national_id,omitempty"`
	HireDate             *string          `json:"hire_date,omitempty"` // YYYY-MM-DD, default today
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
	WorkStartTime        *string          `json:"work_start_time,omitempty"`
	WorkEndTime          *string          `json:"work_end_time,omitempty"`
	LateThresholdMinutes *int             `json:"late_threshold_minutes,omitempty"`
	OffDays              []int            `json:"off_days,omitempty"`
	PinCode              *string          `json:"pin_code,omitempty"`
	DeviceID             *string          `json:"device_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	validateCommon(&errs, r.HireDate, r.BaseSalary, r.WorkStartTime, r.WorkEndTime, r.LateThresholdMinutes, r.OffDays, r.PinCode)

	return errs.OrNil()
}

// UpdateEmployeeRequest is a partial update: nil fields are left untouched.
type UpdateEmployeeRequest struct {
	ID                   string           `json:"-"`
	Name                 *string          `json:"name,omitempty"`
	JobTitle             *string          `json:"job_title,omitempty"`
	Phone                *string          `json:"phone,omitempty"`
	NationalID           *string          `json:"national_id,omitempty"`
	HireDate             *string          `json:"hire_date,omitempty"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
	WorkStartTime        *string          `json:"work_start_time,omitempty"`
	WorkEndTime          *string          `json:"work_end_time,omitempty"`
	LateThresholdMinutes *int             `json:"late_threshold_minutes,omitempty"`
	OffDays              *[]int           `json:"off_days,omitempty"`
	PinCode              *string          `json:"pin_code,omitempty"`
	DeviceID             *string          `json:"device_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("id", r.ID)
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		if len(*r.Name) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}
	var offDays []int
	if r.OffDays != nil {
		offDays = *r.OffDays
	}
	validateCommon(&errs, r.HireDate, r.BaseSalary, r.WorkStartTime, r.WorkEndTime, r.LateThresholdMinutes, offDays, r.PinCode)

	return errs.OrNil()
}

func validateCommon(errs *validator.ValidationErrors, hireDate *string, baseSalary *decimal.Decimal,
	workStart, workEnd *string, lateThreshold *int, offDays []int, pinCode *string) {
	if hireDate != nil && *hireDate != "" {
		if _, ok := validator.IsValidDate(*hireDate); !ok {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}
	if baseSalary != nil {
		if baseSalary.IsNegative() {
			errs.Add("base_salary", ErrInvalidBaseSalary.Error())
		} else if !validator.IsValidAmountScale(*baseSalary) {
			errs.Add("base_salary", ErrBaseSalaryScale.Error())
		}
	}
	if workStart != nil && *workStart != "" && !validator.IsValidClock(*workStart) {
		errs.Add("work_start_time", "work_start_time must be in HH:MM format")
	}
	if workEnd != nil && *workEnd != "" && !validator.IsValidClock(*workEnd) {
		errs.Add("work_end_time", "work_end_time must be in HH:MM format")
	}
	if lateThreshold != nil && *lateThreshold < 0 {
		errs.Add("late_threshold_minutes", ErrInvalidLateMinutes.Error())
	}
	for _, d := range offDays {
		if !schedule.ValidOffDay(d) {
			errs.Add("off_days", ErrInvalidOffDay.Error())
			break
		}
	}
	if pinCode != nil && *pinCode != "" {
		if !validator.IsNumeric(*pinCode) || len(*pinCode) < 4 || len(*pinCode) > 12 {
			errs.Add("pin_code", "pin_code must be 4 to 12 digits")
		}
	}
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"`
	Active *bool   `json:"active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
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
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		f.Search = &s
	}

	return errs.OrNil()
}

type EmployeeResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	JobTitle             *string `json:"job_title,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	NationalID           *string `json:"national_id,omitempty"`
	HireDate             string  `json:"hire_date"`
	BaseSalary           string  `json:"base_salary"`
	IsActive             bool    `json:"is_active"`
	Notes                *string `json:"notes,omitempty"`
	WorkStartTime        string  `json:"work_start_time"`
	WorkEndTime          string  `json:"work_end_time"`
	LateThresholdMinutes int     `json:"late_threshold_minutes"`
	OffDays              []int   `json:"off_days"`
	PinCode              *string `json:"pin_code,omitempty"`
	DeviceID             *string `json:"device_id,omitempty"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

// RosterEntry is the subset of an employee the kiosk caches locally.
type RosterEntry struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	JobTitle             *string `json:"job_title,omitempty"`
	WorkStartTime        string  `json:"work_start_time"`
	WorkEndTime          string  `json:"work_end_time"`
	LateThresholdMinutes int     `json:"late_threshold_minutes"`
	OffDays              []int   `json:"off_days"`
	IsActive             bool    `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	offDays := e.OffDays
	if offDays == nil {
		offDays = []int{}
	}
	return EmployeeResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		JobTitle:             e.JobTitle,
		Phone:                e.Phone,
		NationalID:           e.NationalID,
		HireDate:             e.HireDate.Format("2006-01-02"),
		BaseSalary:           e.BaseSalary.StringFixed(2),
		IsActive:             e.IsActive,
		Notes:                e.Notes,
		WorkStartTime:        e.WorkStartTime,
		WorkEndTime:          e.WorkEndTime,
		LateThresholdMinutes: e.LateThresholdMinutes,
		OffDays:              offDays,
		PinCode:              e.PinCode,
		DeviceID:             e.DeviceID,
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            e.UpdatedAt.Format(time.RFC3339),
	}
}
