package payroll

import (
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PaymentType string          `json:"payment_type"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date,omitempty"` // YYYY-MM-DD, default today
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("employee_id", r.EmployeeID)
	if !validator.IsInSlice(r.PaymentType, PaymentTypeValues) {
		errs.Add("payment_type", ErrInvalidPaymentType.Error())
	}
	if r.Amount.IsNegative() {
		errs.Add("amount", ErrNegativeAmount.Error())
	} else if !validator.IsValidAmountScale(r.Amount) {
		errs.Add("amount", ErrAmountScale.Error())
	}
	if r.PaymentDate != "" {
		if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
			errs.Add("payment_date", "payment_date must be in YYYY-MM-DD format")
		}
	}

	return errs.OrNil()
}

type PaymentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *string `json:"month,omitempty"` // YYYY-MM
}

func (f *PaymentFilter) Validate() error {
	var errs validator.ValidationErrors
	validateMonth(&errs, f.Month)
	return errs.OrNil()
}

type CreatePurchaseRequest struct {
	EmployeeID   string           `json:"employee_id"`
	ItemName     string           `json:"item_name"`
	Amount       *decimal.Decimal `json:"amount"`
	PurchaseDate string           `json:"purchase_date"`
	Notes        *string          `json:"notes,omitempty"`
}

func (r *CreatePurchaseRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("employee_id", r.EmployeeID)
	errs.Required("item_name", r.ItemName)
	if len(r.ItemName) > 255 {
		errs.Add("item_name", "item_name must not exceed 255 characters")
	}
	if r.Amount == nil {
		errs.Add("amount", "amount is required")
	} else if r.Amount.IsNegative() {
		errs.Add("amount", ErrNegativeAmount.Error())
	} else if !validator.IsValidAmountScale(*r.Amount) {
		errs.Add("amount", ErrAmountScale.Error())
	}
	if validator.IsEmpty(r.PurchaseDate) {
		errs.Add("purchase_date", "purchase_date is required")
	} else if _, ok := validator.IsValidDate(r.PurchaseDate); !ok {
		errs.Add("purchase_date", "purchase_date must be in YYYY-MM-DD format")
	}

	return errs.OrNil()
}

type PurchaseFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *string `json:"month,omitempty"` // YYYY-MM
}

func (f *PurchaseFilter) Validate() error {
	var errs validator.ValidationErrors
	validateMonth(&errs, f.Month)
	return errs.OrNil()
}

func validateMonth(errs *validator.ValidationErrors, month *string) {
	if month == nil || *month == "" {
		return
	}
	if _, ok := validator.IsValidMonth(*month); !ok {
		errs.Add("month", ErrInvalidMonth.Error())
	}
}

type PaymentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	PaymentType  string  `json:"payment_type"`
	Amount       string  `json:"amount"`
	PaymentDate  string  `json:"payment_date"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToPaymentResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		PaymentType:  string(p.PaymentType),
		Amount:       FormatAmount(p.Amount),
		PaymentDate:  p.PaymentDate.Format("2006-01-02"),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

type PurchaseResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	ItemName     string  `json:"item_name"`
	Amount       string  `json:"amount"`
	PurchaseDate string  `json:"purchase_date"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToPurchaseResponse(p Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		ItemName:     p.ItemName,
		Amount:       FormatAmount(p.Amount),
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

type SummaryResponse struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	Month           string `json:"month"`
	BaseSalary      string `json:"base_salary"`
	Salaries        string `json:"salaries"`
	Advances        string `json:"advances"`
	Bonuses         string `json:"bonuses"`
	HRDeductions    string `json:"hr_deductions"`
	PurchasesTotal  string `json:"purchases_total"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
	PresentDays     int    `json:"present_days"`
	AbsentDays      int    `json:"absent_days"`
	NextPayday      string `json:"next_payday"`
}

func ToSummaryResponse(employeeID, employeeName string, s MonthlySummary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:      employeeID,
		EmployeeName:    employeeName,
		Month:           s.Month.Format("2006-01"),
		BaseSalary:      FormatAmount(s.BaseSalary),
		Salaries:        FormatAmount(s.Salaries),
		Advances:        FormatAmount(s.Advances),
		Bonuses:         FormatAmount(s.Bonuses),
		HRDeductions:    FormatAmount(s.HRDeductions),
		PurchasesTotal:  FormatAmount(s.PurchasesTotal),
		TotalDeductions: FormatAmount(s.TotalDeductions),
		NetPay:          FormatAmount(s.NetPay),
		PresentDays:     s.PresentDays,
		AbsentDays:      s.AbsentDays,
		NextPayday:      s.NextPayday.Format("2006-01-02"),
	}
}

type ReportRowResponse struct {
	EmployeeID   string  `json:"employee_id,omitempty"`
	EmployeeName string  `json:"employee_name"`
	JobTitle     *string `json:"job_title,omitempty"`
	Salaries     string  `json:"salaries"`
	Bonuses      string  `json:"bonuses"`
	Deductions   string  `json:"deductions"`
	Advances     string  `json:"advances"`
	Net          string  `json:"net"`
	PaymentCount int     `json:"payment_count"`
}

type MonthlyReportResponse struct {
	Month     string              `json:"month"`
	Employees []ReportRowResponse `json:"employees"`
	Totals    ReportRowResponse   `json:"totals"`
}

func ToReportResponse(r MonthlyReport) MonthlyReportResponse {
	resp := MonthlyReportResponse{
		Month:     r.Month.Format("2006-01"),
		Employees: make([]ReportRowResponse, 0, len(r.Rows)),
		Totals:    toReportRowResponse(r.Totals),
	}
	for _, row := range r.Rows {
		resp.Employees = append(resp.Employees, toReportRowResponse(row))
	}
	return resp
}

func toReportRowResponse(row ReportRow) ReportRowResponse {
	return ReportRowResponse{
		EmployeeID:   row.EmployeeID,
		EmployeeName: row.EmployeeName,
		JobTitle:     row.JobTitle,
		Salaries:     FormatAmount(row.Salaries),
		Bonuses:      FormatAmount(row.Bonuses),
		Deductions:   FormatAmount(row.Deductions),
		Advances:     FormatAmount(row.Advances),
		Net:          FormatAmount(row.Net),
		PaymentCount: row.PaymentCount,
	}
}

// ExportFile is a generated download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
