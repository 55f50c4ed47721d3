package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// CompanyIDFromContext reads the tenant from the verified JWT placed in ctx by jwtauth.Verifier.
func CompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", ErrInvalidToken
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", ErrCompanyIDRequired
	}
	return companyID, nil
}
