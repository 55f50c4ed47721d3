package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testKioskExp  = "24h"
	testSecret    = "test-secret-key-for-jwt"
)

type fakeCompanyRepo struct {
	company.CompanyRepository
	byUsername map[string]company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byUsername: map[string]company.Company{}}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	if _, ok := f.byUsername[c.Username]; ok {
		return company.Company{}, company.ErrCompanyUsernameExists
	}
	c.ID = "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"
	c.CreatedAt = time.Now()
	f.byUsername[c.Username] = c
	return c, nil
}

func (f *fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	c, ok := f.byUsername[username]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func newTestAuthService() (*AuthServiceImpl, *fakeCompanyRepo, jwt.Service) {
	repo := newFakeCompanyRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testKioskExp, false)
	return NewAuthService(repo, jwtService).(*AuthServiceImpl), repo, jwtService
}

func validRegister() auth.RegisterRequest {
	return auth.RegisterRequest{
		CompanyName:     "Corner Bakery",
		CompanyUsername: "Corner-Bakery",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestRegister(t *testing.T) {
	svc, repo, jwtService := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Corner Bakery", resp.CompanyName)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	stored, ok := repo.byUsername["corner-bakery"]
	require.True(t, ok, "username is stored lowercased")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.AdminPasswordHash), []byte("password123")))

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims := token.PrivateClaims()
	assert.Equal(t, stored.ID, claims["company_id"])
	assert.Equal(t, auth.RoleAdmin, claims["role"])
	assert.Equal(t, auth.TokenTypeAccess, claims["type"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegister())
	assert.ErrorIs(t, err, company.ErrCompanyUsernameExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	req := validRegister()
	req.ConfirmPassword = "different1"
	req.CompanyUsername = "a b"

	_, err := svc.Register(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "confirm_password")
	assert.Contains(t, verrs.ToMap(), "company_username")
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "corner-bakery", "password123", nil},
		{"username is case insensitive", " CORNER-bakery ", "password123", nil},
		{"wrong password", "corner-bakery", "wrongpass", auth.ErrInvalidCredentials},
		{"unknown company", "nobody", "password123", auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, auth.LoginRequest{CompanyUsername: tt.username, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, jwtService := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	// idempotent
	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	require.NoError(t, svc.Logout(ctx, ""))
}
