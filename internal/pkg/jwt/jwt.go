package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/united-manufacturing-hub/expiremap/v2/pkg/expiremap"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeSSE     = "sse"
)

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

// Claims is what an access token says about its bearer.
type Claims struct {
	UserID string
	Email  string
	Role   user.Role
	Type   string
}

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(token string) (userID string, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	secureCookie           bool
	tokenAuth              *jwtauth.JWTAuth
	now                    func() time.Time

	// Revoked access tokens are kept for one access lifetime, after which
	// jwtauth rejects them on expiry alone.
	revokedTokens *expiremap.ExpireMap[string, int64]
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses both expirations up front so a bad setting fails at
// startup instead of on the first sign-in.
func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string, secureCookie bool) (*JWTService, error) {
	access, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	refresh, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration:  access,
		refreshTokenExpiration: refresh,
		secureCookie:           secureCookie,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                    time.Now,
		revokedTokens:          expiremap.NewEx[string, int64](time.Minute, access),
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    TypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TypeRefresh,
		// jti keeps two refresh tokens issued in the same second distinct.
		"jti": uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies signature, expiry and type and returns the
// owner of the token.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	return j.subjectOf(tokenString, TypeRefresh)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken blocks an access token until it would have expired anyway.
// Tokens already past expiresAt are not recorded.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	if expiresAt <= j.now().Unix() {
		return
	}
	j.revokedTokens.Set(token, expiresAt)
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	_, revoked := j.revokedTokens.Load(token)
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := j.now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	return j.subjectOf(tokenString, TypeSSE)
}

func (j *JWTService) subjectOf(tokenString, tokenType string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	typ, ok := token.Get("type")
	if !ok || typ != tokenType {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return userID, nil
}

// ClaimsFromContext reads the claims jwtauth.Verifier put on ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(claims)
}

func ParseClaims(claims map[string]interface{}) (Claims, error) {
	var c Claims
	var ok bool
	if c.UserID, ok = claims["user_id"].(string); !ok || c.UserID == "" {
		return Claims{}, ErrInvalidClaims
	}
	if c.Type, ok = claims["type"].(string); !ok {
		return Claims{}, ErrInvalidClaims
	}
	c.Email, _ = claims["email"].(string)
	role, _ := claims["role"].(string)
	c.Role = user.Role(role)
	return c, nil
}
