package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrPinCodeExists      = errors.New("pin code already used by another employee")
	ErrEmployeeNotActive  = errors.New("employee is not active")
	ErrNotRegistered      = errors.New("employee not registered")
	ErrInvalidBaseSalary  = errors.New("base salary must not be negative")
	ErrBaseSalaryScale    = errors.New("base salary must have at most 2 decimal places")
	ErrInvalidWorkTime    = errors.New("work time must be HH:MM")
	ErrInvalidOffDay      = errors.New("off days must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidLateMinutes = errors.New("late threshold must not be negative")
)
