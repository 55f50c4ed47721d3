package employee_dashboard

import (
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

// ProfileRequest identifies an employee by company username and personal PIN.
type ProfileRequest struct {
	CompanyUsername string `json:"company"`
	Pin             string `json:"pin"`
	Month           string `json:"month,omitempty"` // YYYY-MM, default current month
}

func (r *ProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("company", r.CompanyUsername)
	errs.Required("pin", r.Pin)
	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs.Add("month", "month must be in YYYY-MM format")
		}
	}

	return errs.OrNil()
}

type ProfileEmployee struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	JobTitle      *string `json:"job_title,omitempty"`
	HireDate      string  `json:"hire_date"`
	WorkStartTime string  `json:"work_start_time"`
	WorkEndTime   string  `json:"work_end_time"`
	OffDays       []int   `json:"off_days"`
}

// ProfileResponse is everything the employee self-service page shows for one month.
type ProfileResponse struct {
	Employee   ProfileEmployee                 `json:"employee"`
	Summary    payroll.SummaryResponse         `json:"summary"`
	Attendance []attendance.AttendanceResponse `json:"attendance"`
	Payments   []payroll.PaymentResponse       `json:"payments"`
	Purchases  []payroll.PurchaseResponse      `json:"purchases"`
}
