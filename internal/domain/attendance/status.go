package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

// StatusInput carries everything ResolveStatus looks at. Times are naive "HH:MM" strings.
type StatusInput struct {
	CheckInTime          *string
	WorkStartTime        *string
	LateThresholdMinutes int
	ManualStatus         Status
}

// ResolveStatus infers the attendance status of a single day.
//
// A manual status other than "auto" always wins. Without a check-in the employee is absent.
// Without a work start, or when either time cannot be read, any check-in counts as present.
// Otherwise the employee is late only when they checked in strictly more than
// LateThresholdMinutes after the work start. Both times are taken as the same calendar day.
func ResolveStatus(in StatusInput) Status {
	if manual := Status(strings.TrimSpace(string(in.ManualStatus))); manual != "" && manual != StatusAuto {
		return manual
	}

	if in.CheckInTime == nil || strings.TrimSpace(*in.CheckInTime) == "" {
		return StatusAbsent
	}
	if in.WorkStartTime == nil || strings.TrimSpace(*in.WorkStartTime) == "" {
		return StatusPresent
	}

	checkIn, ok := validator.ClockMinutes(strings.TrimSpace(*in.CheckInTime))
	if !ok {
		return StatusPresent
	}
	workStart, ok := validator.ClockMinutes(strings.TrimSpace(*in.WorkStartTime))
	if !ok {
		return StatusPresent
	}

	if checkIn-workStart > in.LateThresholdMinutes {
		return StatusLate
	}
	return StatusPresent
}

// NormalizeClock trims seconds from a valid time of day. Empty values become nil.
func NormalizeClock(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if validator.IsValidClock(s) {
		s = s[:5]
	}
	return &s
}

// LaterClock returns whichever of a and b is later in the day. Nil and unreadable values lose.
func LaterClock(a, b *string) *string {
	am, aok := clockOf(a)
	bm, bok := clockOf(b)
	switch {
	case aok && bok:
		if bm > am {
			return b
		}
		return a
	case aok:
		return a
	case bok:
		return b
	case a != nil:
		return a
	default:
		return b
	}
}

func clockOf(v *string) (int, bool) {
	if v == nil {
		return 0, false
	}
	return validator.ClockMinutes(strings.TrimSpace(*v))
}
