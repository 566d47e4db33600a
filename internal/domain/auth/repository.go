package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so they can be revoked
// on logout. Implementations store a hash, never the token itself.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
