package payroll

import "context"

type PayrollService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error

	CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter PurchaseFilter) ([]PurchaseResponse, error)
	DeletePurchase(ctx context.Context, id string) error

	// GetMonthlySummary aggregates one employee's month; month is YYYY-MM, empty for the current month.
	GetMonthlySummary(ctx context.Context, employeeID string, month string) (SummaryResponse, error)

	GetMonthlyReport(ctx context.Context, month string) (MonthlyReportResponse, error)
	ExportMonthlyReport(ctx context.Context, month string) (ExportFile, error)
}
