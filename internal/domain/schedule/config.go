package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

var (
	ErrInvalidWorkTime      = errors.New("work time must be HH:MM")
	ErrInvalidLateThreshold = errors.New("late threshold must not be negative")
	ErrInvalidOffDay        = errors.New("off day must be between 0 (Sunday) and 6 (Saturday)")
)

// Config is a working schedule. OffDays uses time.Weekday numbering (Sunday=0).
type Config struct {
	WorkStartTime        string
	WorkEndTime          string
	LateThresholdMinutes int
	OffDays              []int
}

// DefaultScheduleConfig is applied to employees created without explicit schedule fields.
// config.Load may override it from the environment; services receive the resulting value.
var DefaultScheduleConfig = Config{
	WorkStartTime:        "09:00",
	WorkEndTime:          "17:00",
	LateThresholdMinutes: 15,
	OffDays:              []int{int(time.Friday), int(time.Saturday)},
}

func (c Config) Validate() error {
	if !validator.IsValidClock(c.WorkStartTime) || !validator.IsValidClock(c.WorkEndTime) {
		return ErrInvalidWorkTime
	}
	if c.LateThresholdMinutes < 0 {
		return ErrInvalidLateThreshold
	}
	for _, d := range c.OffDays {
		if !ValidOffDay(d) {
			return ErrInvalidOffDay
		}
	}
	return nil
}

// IsOffDay reports whether day falls on one of the configured off days.
func (c Config) IsOffDay(day time.Time) bool {
	wd := int(day.Weekday())
	for _, d := range c.OffDays {
		if d == wd {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the OffDays backing array.
func (c Config) Clone() Config {
	out := c
	out.OffDays = append([]int(nil), c.OffDays...)
	return out
}

func ValidOffDay(d int) bool {
	return d >= int(time.Sunday) && d <= int(time.Saturday)
}

// ParseOffDays parses a comma separated weekday list such as "5,6".
func ParseOffDays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid off day %q: %w", part, err)
		}
		if !ValidOffDay(d) {
			return nil, ErrInvalidOffDay
		}
		days = append(days, d)
	}
	return days, nil
}
