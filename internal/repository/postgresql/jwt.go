package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// JWTRepository persists kiosk tokens so they can be replaced or revoked across restarts.
type JWTRepository interface {
	// ReplaceKioskToken stores token as the company's only active kiosk token.
	ReplaceKioskToken(ctx context.Context, companyID string, token string, expiresAt int64) error
	// IsKioskTokenRevoked reports true for tokens that were never stored, replaced, revoked or expired.
	IsKioskTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeKioskTokens(ctx context.Context, companyID string) error
}

type jwtRepositoryImpl struct {
	db *database.DB
}

// NewJWTRepository creates a new instance of JWTRepository.
func NewJWTRepository(db *database.DB) JWTRepository {
	return &jwtRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func (j *jwtRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (j *jwtRepositoryImpl) ReplaceKioskToken(ctx context.Context, companyID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, j.db)
	query := `
		WITH revoked AS (
			UPDATE kiosk_tokens
			SET revoked_at = NOW()
			WHERE company_id = $1 AND revoked_at IS NULL
		)
		INSERT INTO kiosk_tokens (id, company_id, token_hash, expires_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
	`
	_, err := q.Exec(ctx, query, companyID, j.hashToken(token), time.Unix(expiresAt, 0).UTC())
	return err
}

func (j *jwtRepositoryImpl) IsKioskTokenRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT revoked_at, expires_at
		FROM kiosk_tokens
		WHERE token_hash = $1
	`

	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, j.hashToken(token)).Scan(&revokedAt, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (j *jwtRepositoryImpl) RevokeKioskTokens(ctx context.Context, companyID string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE kiosk_tokens
		SET revoked_at = NOW()
		WHERE company_id = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, companyID)
	return err
}
