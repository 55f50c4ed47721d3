package company

import "context"

// CompanyService manages the signed-in tenant's settings. companyID comes from the JWT.
type CompanyService interface {
	GetMyCompany(ctx context.Context) (CompanyResponse, error)
	UpdateMyCompany(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	GetKioskPin(ctx context.Context) (KioskPinResponse, error)
	UpdateKioskPin(ctx context.Context, req UpdateKioskPinRequest) (KioskPinResponse, error)
	// IssueKioskToken returns a long-lived token the offline kiosk uses to sync.
	// Any token issued before it stops working.
	IssueKioskToken(ctx context.Context) (KioskTokenResponse, error)
	RevokeKioskTokens(ctx context.Context) error
}
