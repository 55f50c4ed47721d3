package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid company username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrCompanyIDRequired  = errors.New("company_id missing from token")
	ErrAdminRequired      = errors.New("admin access required")
	ErrKioskTokenRequired = errors.New("kiosk token required")
	ErrPasswordMismatch   = errors.New("password and confirm_password do not match")
)
