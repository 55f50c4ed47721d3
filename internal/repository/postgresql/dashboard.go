package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeSummary returns total, active, inactive and new (hired since date) in single query
func (r *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context, companyID string, since time.Time) (*dashboard.EmployeeSummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active_count,
			COUNT(*) FILTER (WHERE NOT is_active) AS inactive_count,
			COUNT(*) FILTER (WHERE hire_date >= $2) AS new_count
		FROM hr_employees
		WHERE company_id = $1
	`

	var stats dashboard.EmployeeSummaryStats
	err := q.QueryRow(ctx, query, companyID, since).Scan(
		&stats.Total, &stats.Active, &stats.Inactive, &stats.New,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return &stats, nil
}

// GetAttendanceStatsByDay returns present/late/absent/excused for a specific day
func (r *dashboardRepositoryImpl) GetAttendanceStatsByDay(ctx context.Context, companyID string, date time.Time) (*dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present') AS present,
			COUNT(*) FILTER (WHERE status = 'late') AS late,
			COUNT(*) FILTER (WHERE status = 'absent') AS absent,
			COUNT(*) FILTER (WHERE status = 'excused') AS excused
		FROM hr_attendance
		WHERE company_id = $1 AND attendance_date = $2
	`

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&stats.Present, &stats.Late, &stats.Absent, &stats.Excused,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance stats by day: %w", err)
	}
	return &stats, nil
}

// GetPaymentTotals sums payments by type plus purchases over [start, end)
func (r *dashboardRepositoryImpl) GetPaymentTotals(ctx context.Context, companyID string, start, end time.Time) (*dashboard.PaymentTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE payment_type = 'salary'), 0),
			COALESCE(SUM(amount) FILTER (WHERE payment_type = 'advance'), 0),
			COALESCE(SUM(amount) FILTER (WHERE payment_type = 'bonus'), 0),
			COALESCE(SUM(amount) FILTER (WHERE payment_type = 'deduction'), 0),
			(
				SELECT COALESCE(SUM(amount), 0)
				FROM hr_employee_purchases
				WHERE company_id = $1 AND purchase_date >= $2 AND purchase_date < $3
			),
			COUNT(*)
		FROM hr_payments
		WHERE company_id = $1 AND payment_date >= $2 AND payment_date < $3
	`

	var totals dashboard.PaymentTotals
	err := q.QueryRow(ctx, query, companyID, start, end).Scan(
		&totals.Salaries, &totals.Advances, &totals.Bonuses, &totals.Deductions, &totals.Purchases, &totals.PaymentCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment totals: %w", err)
	}
	return &totals, nil
}

// CountOnLeave counts distinct employees with a leave covering date
func (r *dashboardRepositoryImpl) CountOnLeave(ctx context.Context, companyID string, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM hr_employee_leaves
		WHERE company_id = $1 AND leave_start <= $2 AND leave_end >= $2
	`

	var count int64
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees on leave: %w", err)
	}
	return count, nil
}
