package company

import "errors"

var (
	ErrCompanyNotFound        = errors.New("company not found")
	ErrCompanyUsernameExists  = errors.New("company username already exists")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)
