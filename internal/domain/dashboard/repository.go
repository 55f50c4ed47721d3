package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSummaryStats combines employee counts in a single query
type EmployeeSummaryStats struct {
	Total    int64
	Active   int64
	Inactive int64
	New      int64 // hired on or after the "since" date
}

// AttendanceStats counts the attendance rows of one day by status
type AttendanceStats struct {
	Present int64
	Late    int64
	Absent  int64
	Excused int64
}

// PaymentTotals sums payments and purchases over a date range
type PaymentTotals struct {
	Salaries     decimal.Decimal
	Advances     decimal.Decimal
	Bonuses      decimal.Decimal
	Deductions   decimal.Decimal
	Purchases    decimal.Decimal
	PaymentCount int64
}

type DashboardRepository interface {
	GetEmployeeSummary(ctx context.Context, companyID string, since time.Time) (*EmployeeSummaryStats, error)

	GetAttendanceStatsByDay(ctx context.Context, companyID string, date time.Time) (*AttendanceStats, error)

	// GetPaymentTotals sums rows with start <= date < end
	GetPaymentTotals(ctx context.Context, companyID string, start, end time.Time) (*PaymentTotals, error)

	// CountOnLeave counts employees whose leave range covers date
	CountOnLeave(ctx context.Context, companyID string, date time.Time) (int64, error)
}
