package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotAllowed      = errors.New("email domain is not allowed to sign in")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
	ErrNotSignedIn          = errors.New("not signed in")
	ErrGoogleSignInDisabled = errors.New("google sign-in is not configured")
	ErrRefreshTokenMissing  = errors.New("refresh token cookie not found")
	ErrStateMismatch        = errors.New("oauth state does not match")
)
