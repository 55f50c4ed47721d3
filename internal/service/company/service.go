package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	jwtRepository postgresql.JWTRepository
	jwtService    jwt.Service
}

func NewCompanyService(companyRepository company.CompanyRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		jwtRepository:     jwtRepository,
		jwtService:        jwtService,
	}
}

func (c *CompanyServiceImpl) current(ctx context.Context) (company.Company, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return company.Company{}, err
	}
	return c.CompanyRepository.GetByID(ctx, companyID)
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	companyData, err := c.current(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.ToResponse(companyData), nil
}

// UpdateMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateMyCompany(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.current(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if err := c.CompanyRepository.UpdateName(ctx, companyData.ID, name); err != nil {
		return company.CompanyResponse{}, err
	}
	companyData.Name = name

	slog.Info("company renamed", "company_id", companyData.ID)
	return company.ToResponse(companyData), nil
}

// ChangePassword implements company.CompanyService.
func (c *CompanyServiceImpl) ChangePassword(ctx context.Context, req company.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyData, err := c.current(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(companyData.AdminPasswordHash), []byte(req.CurrentPassword)); err != nil {
		return company.ErrInvalidCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := c.CompanyRepository.UpdateAdminPassword(ctx, companyData.ID, string(hash)); err != nil {
		return err
	}

	slog.Info("admin password changed", "company_id", companyData.ID)
	return nil
}

// GetKioskPin implements company.CompanyService.
func (c *CompanyServiceImpl) GetKioskPin(ctx context.Context) (company.KioskPinResponse, error) {
	companyData, err := c.current(ctx)
	if err != nil {
		return company.KioskPinResponse{}, err
	}
	return company.KioskPinResponse{Pin: companyData.EffectiveKioskPin()}, nil
}

// UpdateKioskPin implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateKioskPin(ctx context.Context, req company.UpdateKioskPinRequest) (company.KioskPinResponse, error) {
	if err := req.Validate(); err != nil {
		return company.KioskPinResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return company.KioskPinResponse{}, err
	}

	if err := c.CompanyRepository.UpdateKioskPin(ctx, companyID, req.Pin); err != nil {
		return company.KioskPinResponse{}, err
	}

	slog.Info("kiosk pin updated", "company_id", companyID)
	return company.KioskPinResponse{Pin: req.Pin}, nil
}

// IssueKioskToken implements company.CompanyService.
func (c *CompanyServiceImpl) IssueKioskToken(ctx context.Context) (company.KioskTokenResponse, error) {
	companyData, err := c.current(ctx)
	if err != nil {
		return company.KioskTokenResponse{}, err
	}

	token, expiresAt, err := c.jwtService.GenerateKioskToken(companyData.ID)
	if err != nil {
		return company.KioskTokenResponse{}, fmt.Errorf("failed to create kiosk token: %w", err)
	}
	if err := c.jwtRepository.ReplaceKioskToken(ctx, companyData.ID, token, expiresAt); err != nil {
		return company.KioskTokenResponse{}, fmt.Errorf("failed to store kiosk token: %w", err)
	}

	slog.Info("kiosk token issued", "company_id", companyData.ID)
	return company.KioskTokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// RevokeKioskTokens implements company.CompanyService.
func (c *CompanyServiceImpl) RevokeKioskTokens(ctx context.Context) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := c.jwtRepository.RevokeKioskTokens(ctx, companyID); err != nil {
		return fmt.Errorf("failed to revoke kiosk tokens: %w", err)
	}

	slog.Info("kiosk tokens revoked", "company_id", companyID)
	return nil
}
