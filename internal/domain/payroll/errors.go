package payroll

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrInvalidPaymentType = errors.New("payment type must be one of: salary, advance, bonus, deduction")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrAmountScale        = errors.New("amount must have at most 2 decimal places")
	ErrInvalidMonth       = errors.New("month must be in YYYY-MM format")
)
