package company

import (
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
)

type UpdateCompanyRequest struct {
	Name string `json:"name"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("name", r.Name)
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	return errs.OrNil()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("current_password", r.CurrentPassword)
	if len(r.NewPassword) < 8 {
		errs.Add("new_password", "new_password must be at least 8 characters long")
	}
	return errs.OrNil()
}

type UpdateKioskPinRequest struct {
	Pin string `json:"pin"`
}

func (r *UpdateKioskPinRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Pin) < 4 || !validator.IsNumeric(r.Pin) {
		errs.Add("pin", "pin must be at least 4 digits")
	}
	return errs.OrNil()
}

type KioskPinResponse struct {
	Pin string `json:"pin"`
}

type KioskTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Username:  c.Username,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
