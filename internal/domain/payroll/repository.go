package payroll

import (
	"context"
	"time"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	// List orders by payment_date descending.
	List(ctx context.Context, filter PaymentFilter, companyID string) ([]Payment, error)
	// ListByRange returns payments with start <= payment_date < end; employeeID may be empty for all.
	ListByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Payment, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase Purchase) (Purchase, error)
	// List orders by purchase_date descending.
	List(ctx context.Context, filter PurchaseFilter, companyID string) ([]Purchase, error)
	ListByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Purchase, error)
	Delete(ctx context.Context, id string, companyID string) error
}
