package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies money paid to, or withheld from, an employee.
type PaymentType string

const (
	PaymentTypeSalary    PaymentType = "salary"
	PaymentTypeAdvance   PaymentType = "advance"
	PaymentTypeBonus     PaymentType = "bonus"
	PaymentTypeDeduction PaymentType = "deduction"
)

var PaymentTypeValues = []string{
	string(PaymentTypeSalary),
	string(PaymentTypeAdvance),
	string(PaymentTypeBonus),
	string(PaymentTypeDeduction),
}

// Payment is immutable once recorded; it can only be deleted.
type Payment struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PaymentType PaymentType
	Amount      decimal.Decimal
	PaymentDate time.Time
	Notes       *string
	CreatedAt   time.Time

	// Joined
	EmployeeName *string
}

// Purchase is an item an employee bought on credit from the employer.
type Purchase struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	ItemName     string
	Amount       decimal.Decimal
	PurchaseDate time.Time
	Notes        *string
	CreatedAt    time.Time

	// Joined
	EmployeeName *string
}
