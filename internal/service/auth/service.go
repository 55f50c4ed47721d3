package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	company.CompanyRepository
	jwt.Service
}

func NewAuthService(companyRepository company.CompanyRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		CompanyRepository: companyRepository,
		Service:           jwtService,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	username := strings.ToLower(strings.TrimSpace(registerReq.CompanyUsername))

	exists, err := a.CompanyRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check company username: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, company.ErrCompanyUsernameExists
	}

	hashedPassword, err := hashPassword(registerReq.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newCompany, err := a.CompanyRepository.Create(ctx, company.Company{
		Name:              strings.TrimSpace(registerReq.CompanyName),
		Username:          username,
		AdminPasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, company.ErrCompanyUsernameExists) {
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("company registered", "company_id", newCompany.ID, "username", newCompany.Username)
	return a.issue(newCompany)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	companyData, err := a.CompanyRepository.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(loginReq.CompanyUsername)))
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get company by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(companyData.AdminPasswordHash), []byte(loginReq.Password)); err != nil {
		slog.Warn("failed login attempt", "username", companyData.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(companyData)
}

func (a *AuthServiceImpl) issue(c company.Company) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(c.ID, auth.RoleAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		CompanyID:   c.ID,
		CompanyName: c.Name,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if !a.Service.IsTokenRevoked(token) {
		a.Service.RevokeToken(token)
	}
	return nil
}
