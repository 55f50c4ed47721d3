package auth

import "context"

type AuthService interface {
	// Register creates a tenant with its admin password and signs the admin in.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, token string) error
}
