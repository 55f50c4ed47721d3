package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, username, admin_password_hash, kiosk_pin, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Username, &c.AdminPasswordHash, &c.KioskPin, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (id, name, username, admin_password_hash, kiosk_pin, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query,
		newCompany.Name, newCompany.Username, newCompany.AdminPasswordHash, newCompany.KioskPin,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return company.Company{}, company.ErrCompanyUsernameExists
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	result, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id %s: %w", id, err)
	}
	return result, nil
}

// GetByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE username = $1`

	result, err := scanCompany(q.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by username %s: %w", username, err)
	}
	return result, nil
}

// ExistsByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company username: %w", err)
	}
	return exists, nil
}

// UpdateName implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateName(ctx context.Context, id string, name string) error {
	return c.updateColumn(ctx, id, "name", name)
}

// UpdateAdminPassword implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateAdminPassword(ctx context.Context, id string, passwordHash string) error {
	return c.updateColumn(ctx, id, "admin_password_hash", passwordHash)
}

// UpdateKioskPin implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateKioskPin(ctx context.Context, id string, pin string) error {
	return c.updateColumn(ctx, id, "kiosk_pin", pin)
}

// column is always a constant chosen by the caller above.
func (c *companyRepositoryImpl) updateColumn(ctx context.Context, id string, column string, value any) error {
	q := GetQuerier(ctx, c.db)

	sql := fmt.Sprintf("UPDATE companies SET %s = $1, updated_at = NOW() WHERE id = $2", column)
	commandTag, err := q.Exec(ctx, sql, value, id)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", column, err)
	}
	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}
