package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	// GetByIDs returns the employees found; missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Employee, error)
	GetActiveByPinCode(ctx context.Context, pinCode string, companyID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetAllByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string, companyID string) error
}
