package payroll

import (
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// AggregateInput holds one employee's rows for one month. Callers restrict the rows to that month.
type AggregateInput struct {
	Month      time.Time // any instant inside the target month
	BaseSalary decimal.Decimal
	Payments   []Payment
	Purchases  []Purchase
	Attendance []attendance.Attendance
}

// MonthlySummary keeps full precision. Use FormatAmount for display.
type MonthlySummary struct {
	Month           time.Time
	BaseSalary      decimal.Decimal
	Salaries        decimal.Decimal
	Advances        decimal.Decimal
	Bonuses         decimal.Decimal
	HRDeductions    decimal.Decimal
	PurchasesTotal  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	PresentDays     int
	AbsentDays      int
	NextPayday      time.Time
}

// Aggregate folds a month of payments, purchases and attendance into a pay summary.
//
// net_pay = base_salary + bonuses - (hr_deductions + purchases) - advances.
// Salary payments are reported but not subtracted from net_pay. Late days count as present;
// excused days count as neither present nor absent.
func Aggregate(in AggregateInput) MonthlySummary {
	s := MonthlySummary{
		Month:           monthStart(in.Month),
		BaseSalary:      in.BaseSalary,
		Salaries:        decimal.Zero,
		Advances:        decimal.Zero,
		Bonuses:         decimal.Zero,
		HRDeductions:    decimal.Zero,
		PurchasesTotal:  decimal.Zero,
		TotalDeductions: decimal.Zero,
		NextPayday:      NextPayday(in.Month),
	}

	for _, p := range in.Payments {
		switch p.PaymentType {
		case PaymentTypeSalary:
			s.Salaries = s.Salaries.Add(p.Amount)
		case PaymentTypeAdvance:
			s.Advances = s.Advances.Add(p.Amount)
		case PaymentTypeBonus:
			s.Bonuses = s.Bonuses.Add(p.Amount)
		case PaymentTypeDeduction:
			s.HRDeductions = s.HRDeductions.Add(p.Amount)
		}
	}

	for _, p := range in.Purchases {
		s.PurchasesTotal = s.PurchasesTotal.Add(p.Amount)
	}

	s.TotalDeductions = s.HRDeductions.Add(s.PurchasesTotal)
	s.NetPay = in.BaseSalary.Add(s.Bonuses).Sub(s.TotalDeductions).Sub(s.Advances)

	for _, a := range in.Attendance {
		switch {
		case a.Status.Attended():
			s.PresentDays++
		case a.Status == attendance.StatusAbsent:
			s.AbsentDays++
		}
	}

	return s
}

// NextPayday is the first day of the month after month.
func NextPayday(month time.Time) time.Time {
	return monthStart(month).AddDate(0, 1, 0)
}

// FormatAmount renders a value with two decimals, truncating rather than rounding.
func FormatAmount(d decimal.Decimal) string {
	return d.Truncate(2).StringFixed(2)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
