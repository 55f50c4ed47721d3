package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_employee_leaves (id, company_id, employee_id, leave_start, leave_end, leave_type, notes, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, company_id, employee_id, leave_start, leave_end, leave_type, notes, created_at
	`

	var created leave.Leave
	err := q.QueryRow(ctx, query, l.CompanyID, l.EmployeeID, l.LeaveStart, l.LeaveEnd, l.LeaveType, l.Notes).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.LeaveStart, &created.LeaveEnd,
		&created.LeaveType, &created.Notes, &created.CreatedAt,
	)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return created, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, leave_start, leave_end, leave_type, notes, created_at
		FROM hr_employee_leaves
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY leave_start DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.EmployeeID, &l.LeaveStart, &l.LeaveEnd, &l.LeaveType, &l.Notes, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return leaves, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string, employeeID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM hr_employee_leaves WHERE id = $1 AND employee_id = $2 AND company_id = $3`,
		id, employeeID, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
