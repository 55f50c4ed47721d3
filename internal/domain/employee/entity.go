package employee

import (
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                   string
	CompanyID            string
	Name                 string
	JobTitle             *string
	Phone                *string
	NationalID           *string
	HireDate             time.Time
	BaseSalary           decimal.Decimal
	IsActive             bool
	Notes                *string
	WorkStartTime        string
	WorkEndTime          string
	LateThresholdMinutes int
	OffDays              []int // time.Weekday values
	PinCode              *string
	DeviceID             *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Schedule returns the employee's working schedule, filling blank times and nil off days from
// defaults. LateThresholdMinutes is never defaulted: 0 is a valid explicit grace period, and
// employees get the default threshold when they are created.
func (e Employee) Schedule(defaults schedule.Config) schedule.Config {
	cfg := schedule.Config{
		WorkStartTime:        e.WorkStartTime,
		WorkEndTime:          e.WorkEndTime,
		LateThresholdMinutes: e.LateThresholdMinutes,
		OffDays:              e.OffDays,
	}
	if cfg.WorkStartTime == "" {
		cfg.WorkStartTime = defaults.WorkStartTime
	}
	if cfg.WorkEndTime == "" {
		cfg.WorkEndTime = defaults.WorkEndTime
	}
	if cfg.OffDays == nil {
		cfg.OffDays = defaults.OffDays
	}
	return cfg.Clone()
}
