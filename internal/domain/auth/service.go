package auth

import (
	"context"
)

// IdentityChange is sent to subscribers on every sign-in and sign-out. A nil
// Identity means the user signed out.
type IdentityChange struct {
	UserID   string
	Email    string
	Identity *Identity
}

// AuthService is the identity collaborator.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Current(ctx context.Context) (Identity, error)
	Subscribe(fn func(change IdentityChange)) (unsubscribe func())
}
