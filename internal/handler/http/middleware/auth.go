package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RawToken returns the token string jwtauth.Verifier would have read.
func RawToken(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	return jwtauth.TokenFromCookie(r)
}

// requireTokenType rejects requests whose verified token is missing, revoked, or of another type.
func requireTokenType(jwtService jwt.Service, tokenType string, wrongType error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(RawToken(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			t, ok := claims["type"].(string)
			if !ok || t != tokenType {
				response.HandleError(w, wrongType)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// AuthRequired accepts admin session tokens only.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return requireTokenType(jwtService, auth.TokenTypeAccess, auth.ErrInvalidToken)
}

// KioskTokenStore knows which kiosk tokens are still active.
type KioskTokenStore interface {
	IsKioskTokenRevoked(ctx context.Context, token string) (bool, error)
}

// KioskOnly accepts the company's current kiosk token. Tokens replaced by a newer
// issue or revoked from the settings page are rejected.
func KioskOnly(jwtService jwt.Service, tokens KioskTokenStore) func(http.Handler) http.Handler {
	requireKiosk := requireTokenType(jwtService, auth.TokenTypeKiosk, auth.ErrKioskTokenRequired)
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			revoked, err := tokens.IsKioskTokenRevoked(r.Context(), RawToken(r))
			if err != nil {
				slog.Error("failed to check kiosk token", "error", err)
				response.HandleError(w, err)
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}
			next.ServeHTTP(w, r)
		}
		return requireKiosk(http.HandlerFunc(hfn))
	}
}
