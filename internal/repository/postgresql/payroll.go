package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

// payrollFilterWhere builds the shared employee/month predicate for payment and purchase lists.
func payrollFilterWhere(alias, dateColumn string, employeeID, month *string, companyID string) (string, []interface{}) {
	where := alias + ".company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if employeeID != nil && *employeeID != "" {
		where += fmt.Sprintf(" AND %s.employee_id = $%d", alias, argIdx)
		args = append(args, *employeeID)
		argIdx++
	}

	if month != nil && *month != "" {
		if start, end, ok := validator.MonthRange(*month); ok {
			where += fmt.Sprintf(" AND %s.%s >= $%d AND %s.%s < $%d", alias, dateColumn, argIdx, alias, dateColumn, argIdx+1)
			args = append(args, start, end)
		}
	}

	return where, args
}

// ========== PAYMENTS ==========

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `p.id, p.company_id, p.employee_id, p.payment_type, p.amount, p.payment_date, p.notes, p.created_at`

func scanPayment(row pgx.Row, withEmployee bool) (payroll.Payment, error) {
	var p payroll.Payment
	dest := []any{&p.ID, &p.CompanyID, &p.EmployeeID, &p.PaymentType, &p.Amount, &p.PaymentDate, &p.Notes, &p.CreatedAt}
	if withEmployee {
		dest = append(dest, &p.EmployeeName)
	}
	err := row.Scan(dest...)
	return p, err
}

func collectPayments(rows pgx.Rows) ([]payroll.Payment, error) {
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		p, err := scanPayment(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_payments AS p (id, company_id, employee_id, payment_type, amount, payment_date, notes, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		payment.CompanyID, payment.EmployeeID, payment.PaymentType, payment.Amount, payment.PaymentDate, payment.Notes,
	), false)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return created, nil
}

func (r *paymentRepository) List(ctx context.Context, filter payroll.PaymentFilter, companyID string) ([]payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	where, args := payrollFilterWhere("p", "payment_date", filter.EmployeeID, filter.Month, companyID)
	query := `
		SELECT ` + paymentColumns + `, e.name
		FROM hr_payments p
		JOIN hr_employees e ON e.id = p.employee_id
		WHERE ` + where + `
		ORDER BY p.payment_date DESC, p.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return collectPayments(rows)
}

func (r *paymentRepository) ListByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paymentColumns + `, e.name
		FROM hr_payments p
		JOIN hr_employees e ON e.id = p.employee_id
		WHERE p.company_id = $1
		  AND ($2 = '' OR p.employee_id::text = $2)
		  AND p.payment_date >= $3
		  AND p.payment_date < $4
		ORDER BY p.payment_date DESC, p.created_at DESC`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by range: %w", err)
	}
	return collectPayments(rows)
}

func (r *paymentRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM hr_payments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}

// ========== PURCHASES ==========

type purchaseRepository struct {
	db *database.DB
}

func NewPurchaseRepository(db *database.DB) payroll.PurchaseRepository {
	return &purchaseRepository{db: db}
}

const purchaseColumns = `pu.id, pu.company_id, pu.employee_id, pu.item_name, pu.amount, pu.purchase_date, pu.notes, pu.created_at`

func scanPurchase(row pgx.Row, withEmployee bool) (payroll.Purchase, error) {
	var p payroll.Purchase
	dest := []any{&p.ID, &p.CompanyID, &p.EmployeeID, &p.ItemName, &p.Amount, &p.PurchaseDate, &p.Notes, &p.CreatedAt}
	if withEmployee {
		dest = append(dest, &p.EmployeeName)
	}
	err := row.Scan(dest...)
	return p, err
}

func collectPurchases(rows pgx.Rows) ([]payroll.Purchase, error) {
	defer rows.Close()

	var purchases []payroll.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return purchases, nil
}

func (r *purchaseRepository) Create(ctx context.Context, purchase payroll.Purchase) (payroll.Purchase, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_employee_purchases AS pu (id, company_id, employee_id, item_name, amount, purchase_date, notes, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + purchaseColumns

	created, err := scanPurchase(q.QueryRow(ctx, query,
		purchase.CompanyID, purchase.EmployeeID, purchase.ItemName, purchase.Amount, purchase.PurchaseDate, purchase.Notes,
	), false)
	if err != nil {
		return payroll.Purchase{}, fmt.Errorf("failed to create purchase: %w", err)
	}
	return created, nil
}

func (r *purchaseRepository) List(ctx context.Context, filter payroll.PurchaseFilter, companyID string) ([]payroll.Purchase, error) {
	q := GetQuerier(ctx, r.db)

	where, args := payrollFilterWhere("pu", "purchase_date", filter.EmployeeID, filter.Month, companyID)
	query := `
		SELECT ` + purchaseColumns + `, e.name
		FROM hr_employee_purchases pu
		JOIN hr_employees e ON e.id = pu.employee_id
		WHERE ` + where + `
		ORDER BY pu.purchase_date DESC, pu.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return collectPurchases(rows)
}

func (r *purchaseRepository) ListByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]payroll.Purchase, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + purchaseColumns + `, e.name
		FROM hr_employee_purchases pu
		JOIN hr_employees e ON e.id = pu.employee_id
		WHERE pu.company_id = $1
		  AND ($2 = '' OR pu.employee_id::text = $2)
		  AND pu.purchase_date >= $3
		  AND pu.purchase_date < $4
		ORDER BY pu.purchase_date DESC, pu.created_at DESC`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by range: %w", err)
	}
	return collectPurchases(rows)
}

func (r *purchaseRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM hr_employee_purchases WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPurchaseNotFound
	}
	return nil
}
