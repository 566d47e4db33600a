package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/oauth"
)

// Transactor is satisfied by both the postgres and the in-memory backends.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuthServiceImpl struct {
	users    user.UserRepository
	tokens   auth.RefreshTokenRepository
	jwt      jwt.Service
	google   oauth.GoogleService
	resolver *user.Resolver
	tx       Transactor
	logger   *slog.Logger

	mu          sync.Mutex
	nextID      uint64
	subscribers map[uint64]func(auth.IdentityChange)
}

// NewAuthService wires the identity collaborator. google may be nil, in which
// case LoginWithGoogle always fails with ErrGoogleSignInDisabled.
func NewAuthService(
	tx Transactor,
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	resolver *user.Resolver,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:       userRepository,
		tokens:      refreshTokenRepository,
		jwt:         jwtService,
		google:      googleService,
		resolver:    resolver,
		tx:          tx,
		logger:      logger,
		subscribers: map[uint64]func(auth.IdentityChange){},
	}
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if !a.resolver.IsAllowedEmail(loginReq.Email) {
		return auth.TokenResponse{}, auth.ErrEmailNotAllowed
	}

	userData, err := a.users.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.signIn(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService. Unknown addresses from an
// allowed domain get an account with the role the resolver picks.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	if a.google == nil {
		return auth.TokenResponse{}, auth.ErrGoogleSignInDisabled
	}

	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			return auth.TokenResponse{}, auth.ErrEmailNotAllowed
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}
	if !a.resolver.IsAllowedEmail(info.Email) {
		return auth.TokenResponse{}, auth.ErrEmailNotAllowed
	}

	userData, err := a.users.GetByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		provider, providerID := "google", info.GoogleID
		userData, err = a.users.Create(ctx, user.User{
			Email:           info.Email,
			Name:            info.Name,
			Role:            a.resolver.DetermineRole(info.Email),
			OAuthProvider:   &provider,
			OAuthProviderID: &providerID,
		})
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	case err != nil:
		return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
	case userData.OAuthProviderID == nil:
		if userData, err = a.users.LinkGoogleAccount(ctx, info.GoogleID, userData.Email); err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return a.signIn(ctx, userData)
}

// signIn issues both tokens and records the refresh token. Configured admin
// addresses are promoted on the way in.
func (a *AuthServiceImpl) signIn(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if a.resolver.DetermineRole(userData.Email) == user.RoleAdmin && userData.Role != user.RoleAdmin {
			err := a.users.UpdateRole(ctx, user.UpdateUserRoleRequest{ID: userData.ID, Role: string(user.RoleAdmin)})
			if err != nil {
				return fmt.Errorf("failed to promote admin: %w", err)
			}
			userData.Role = user.RoleAdmin
		}

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokens.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	identity := auth.NewIdentity(userData)
	tokenResponse.Identity = identity
	a.logger.InfoContext(ctx, "user signed in",
		slog.String("user_id", userData.ID),
		slog.String("role", string(userData.Role)))
	a.publish(auth.IdentityChange{UserID: userData.ID, Email: userData.Email, Identity: &identity})
	return tokenResponse, nil
}

// Logout implements auth.AuthService. Revoking an already revoked token is
// not an error; subscribers hear about the sign-out either way.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	userID, err := a.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.ErrInvalidToken
	}

	if err := a.tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	change := auth.IdentityChange{UserID: userID}
	userData, err := a.users.GetByID(ctx, userID)
	switch {
	case err == nil:
		change.Email = userData.Email
	case !errors.Is(err, user.ErrUserNotFound):
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	a.logger.InfoContext(ctx, "user signed out", slog.String("user_id", userID))
	a.publish(change)
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	if err := req.Validate(); err != nil {
		return accessTokenResponse, err
	}

	// 1. Verify signature, expiry and token type
	userID, err := a.jwt.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return accessTokenResponse, auth.ErrInvalidToken
	}

	// 2. Check storage for revocation
	isRevoked, err := a.tokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return accessTokenResponse, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return accessTokenResponse, auth.ErrRefreshTokenRevoked
	}

	// 3. Role may have changed since sign-in
	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return accessTokenResponse, auth.ErrInvalidToken
		}
		return accessTokenResponse, fmt.Errorf("failed to get user by id: %w", err)
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return accessTokenResponse, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Current implements auth.AuthService. It reads the access token claims put
// on ctx by jwtauth.Verifier and reloads the user so role changes show up.
func (a *AuthServiceImpl) Current(ctx context.Context) (auth.Identity, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil || claims.Type != jwt.TypeAccess {
		return auth.Identity{}, auth.ErrNotSignedIn
	}
	userData, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.Identity{}, auth.ErrNotSignedIn
		}
		return auth.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return auth.NewIdentity(userData), nil
}

// Subscribe implements auth.AuthService. fn runs synchronously on the
// goroutine that signed the user in or out.
func (a *AuthServiceImpl) Subscribe(fn func(change auth.IdentityChange)) (unsubscribe func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.subscribers[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subscribers, id)
	}
}

func (a *AuthServiceImpl) publish(change auth.IdentityChange) {
	a.mu.Lock()
	fns := make([]func(auth.IdentityChange), 0, len(a.subscribers))
	for _, fn := range a.subscribers {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
