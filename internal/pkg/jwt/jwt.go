package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SessionCookieName is read by jwtauth.TokenFromCookie.
const SessionCookieName = "jwt"

type Service interface {
	// GenerateAccessToken issues an admin session token for a company.
	GenerateAccessToken(companyID string, role string) (token string, expiresAt int64, err error)
	// GenerateKioskToken issues a long-lived token accepted only by the kiosk routes.
	GenerateKioskToken(companyID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearSessionCookie() *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	kioskTokenExpirationTime  string
	secureCookie              bool
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, kioskTokenExpirationTime string, secureCookie bool) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		kioskTokenExpirationTime:  kioskTokenExpirationTime,
		secureCookie:              secureCookie,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(companyID string, role string) (token string, expiresAt int64, err error) {
	return j.generate(j.accessTokenExpirationTime, map[string]interface{}{
		"company_id": companyID,
		"role":       role,
		"type":       "access",
	})
}

func (j *JWTService) GenerateKioskToken(companyID string) (token string, expiresAt int64, err error) {
	return j.generate(j.kioskTokenExpirationTime, map[string]interface{}{
		"company_id": companyID,
		"role":       "kiosk",
		"type":       "kiosk",
	})
}

func (j *JWTService) generate(expiration string, claims map[string]interface{}) (string, int64, error) {
	expDuration, err := time.ParseDuration(expiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()
	claims["exp"] = expiresAt
	claims["iat"] = time.Now().Unix()
	claims["jti"] = uuid.Must(uuid.NewV7()).String()

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}
