package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const pinConstraint = "uq_hr_employees_company_pin"

// TIME columns are rendered as HH:MM so they scan into plain strings.
const employeeColumns = `
	id, company_id, name, job_title, phone, national_id, hire_date, base_salary, is_active, notes,
	to_char(work_start_time, 'HH24:MI'), to_char(work_end_time, 'HH24:MI'), late_threshold_minutes, off_days,
	pin_code, device_id, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.JobTitle, &e.Phone, &e.NationalID, &e.HireDate, &e.BaseSalary, &e.IsActive, &e.Notes,
		&e.WorkStartTime, &e.WorkEndTime, &e.LateThresholdMinutes, &e.OffDays,
		&e.PinCode, &e.DeviceID, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO hr_employees (
			id, company_id, name, job_title, phone, national_id, hire_date, base_salary, is_active, notes,
			work_start_time, work_end_time, late_threshold_minutes, off_days, pin_code, device_id,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15,
			NOW(), NOW()
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.CompanyID, newEmployee.Name, newEmployee.JobTitle, newEmployee.Phone, newEmployee.NationalID,
		newEmployee.HireDate, newEmployee.BaseSalary, newEmployee.IsActive, newEmployee.Notes,
		newEmployee.WorkStartTime, newEmployee.WorkEndTime, newEmployee.LateThresholdMinutes, offDaysParam(newEmployee.OffDays),
		newEmployee.PinCode, newEmployee.DeviceID,
	))
	if err != nil {
		if isUniqueViolation(err, pinConstraint) {
			return employee.Employee{}, employee.ErrPinCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM hr_employees WHERE id = $1 AND company_id = $2`

	result, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return result, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM hr_employees WHERE company_id = $1 AND id::text = ANY($2)`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by ids: %w", err)
	}
	return collectEmployees(rows)
}

// GetActiveByPinCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByPinCode(ctx context.Context, pinCode string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM hr_employees
		WHERE company_id = $1 AND pin_code = $2 AND is_active = TRUE`

	result, err := scanEmployee(q.QueryRow(ctx, query, companyID, pinCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by pin: %w", err)
	}
	return result, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	whereClause := "company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR job_title ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.Active != nil {
		whereClause += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM hr_employees WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM hr_employees
		WHERE %s
		ORDER BY is_active DESC, name ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM hr_employees
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	return collectEmployees(rows)
}

// GetAllByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetAllByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM hr_employees
		WHERE company_id = $1
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	return collectEmployees(rows)
}

// Update implements employee.EmployeeRepository. Every column is written; callers merge first.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE hr_employees SET
			name = $1, job_title = $2, phone = $3, national_id = $4, hire_date = $5, base_salary = $6,
			is_active = $7, notes = $8, work_start_time = $9, work_end_time = $10,
			late_threshold_minutes = $11, off_days = $12, pin_code = $13, device_id = $14,
			updated_at = NOW()
		WHERE id = $15 AND company_id = $16
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.Name, emp.JobTitle, emp.Phone, emp.NationalID, emp.HireDate, emp.BaseSalary,
		emp.IsActive, emp.Notes, emp.WorkStartTime, emp.WorkEndTime,
		emp.LateThresholdMinutes, offDaysParam(emp.OffDays), emp.PinCode, emp.DeviceID,
		emp.ID, emp.CompanyID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err, pinConstraint) {
			return employee.Employee{}, employee.ErrPinCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository. Attendance, payments, purchases and leaves cascade.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, e.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM hr_employees WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// off_days is NOT NULL; an employee with no off days stores an empty array.
func offDaysParam(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}
