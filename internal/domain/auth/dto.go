package auth

import "github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"

// Role values carried in the "role" claim.
const (
	RoleAdmin = "admin"
	RoleKiosk = "kiosk"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess = "access"
	TokenTypeKiosk  = "kiosk"
)

type RegisterRequest struct {
	CompanyName     string `json:"company_name"`
	CompanyUsername string `json:"company_username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("company_name", r.CompanyName)
	if len(r.CompanyName) > 255 {
		errs.Add("company_name", "company_name must not exceed 255 characters")
	}
	if !validator.IsValidCompanyUsername(r.CompanyUsername) {
		errs.Add("company_username", "company_username must be 3-50 letters, numbers, dots, underscores, or hyphens")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	}
	if r.Password != r.ConfirmPassword {
		errs.Add("confirm_password", ErrPasswordMismatch.Error())
	}

	return errs.OrNil()
}

type LoginRequest struct {
	CompanyUsername string `json:"company_username"`
	Password        string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("company_username", r.CompanyUsername)
	errs.Required("password", r.Password)
	return errs.OrNil()
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`
}
