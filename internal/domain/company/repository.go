package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, newCompany Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	GetByUsername(ctx context.Context, username string) (Company, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateName(ctx context.Context, id string, name string) error
	UpdateAdminPassword(ctx context.Context, id string, passwordHash string) error
	UpdateKioskPin(ctx context.Context, id string, pin string) error
}
