package memory

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
)

type userRepository struct {
	db *DB
}

func (db *DB) Users() user.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) find(d *data, match func(u user.User) bool) (user.User, error) {
	for _, u := range d.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (u user.User, err error) {
	r.db.read(func(d *data) {
		u, err = r.find(d, func(u user.User) bool { return strings.EqualFold(u.Email, email) })
	})
	return u, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (u user.User, err error) {
	r.db.read(func(d *data) {
		var ok bool
		if u, ok = d.users[id]; !ok {
			err = user.ErrUserNotFound
		}
	})
	return u, err
}

func (r *userRepository) List(ctx context.Context) (out []user.User, err error) {
	r.db.read(func(d *data) {
		out = values(d.users, nil, func(a, b user.User) int { return cmp.Compare(a.Email, b.Email) })
	})
	return out, nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (u user.User, err error) {
	if newUser.ID == "" {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return user.User{}, idErr
		}
		newUser.ID = id.String()
	}
	now := r.db.now()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.db.write(ctx, func(d *data) {
		if _, e := r.find(d, func(u user.User) bool { return strings.EqualFold(u.Email, newUser.Email) }); e == nil {
			err = user.ErrUserEmailExists
			return
		}
		d.users[newUser.ID] = newUser
	})
	if err != nil {
		return user.User{}, err
	}
	return newUser, nil
}

func (r *userRepository) LinkGoogleAccount(ctx context.Context, googleID string, email string) (u user.User, err error) {
	r.db.write(ctx, func(d *data) {
		if u, err = r.find(d, func(u user.User) bool { return strings.EqualFold(u.Email, email) }); err != nil {
			return
		}
		provider, pid := "google", googleID
		u.OAuthProvider, u.OAuthProviderID = &provider, &pid
		u.UpdatedAt = r.db.now()
		d.users[u.ID] = u
	})
	return u, err
}

func (r *userRepository) UpdateRole(ctx context.Context, req user.UpdateUserRoleRequest) (err error) {
	r.db.write(ctx, func(d *data) {
		u, ok := d.users[req.ID]
		if !ok {
			err = user.ErrUserNotFound
			return
		}
		u.Role = user.Role(req.Role)
		u.UpdatedAt = r.db.now()
		d.users[u.ID] = u
	})
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) (err error) {
	r.db.write(ctx, func(d *data) {
		u, ok := d.users[userID]
		if !ok {
			err = user.ErrUserNotFound
			return
		}
		u.PasswordHash = &passwordHash
		u.UpdatedAt = r.db.now()
		d.users[u.ID] = u
	})
	return err
}

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revokedAt *time.Time
}

type refreshTokenRepository struct {
	db *DB
}

func (db *DB) RefreshTokens() auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	r.db.write(ctx, func(d *data) {
		d.tokens[hashToken(token)] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0).UTC()}
	})
	return nil
}

// IsRefreshTokenRevoked treats unknown and expired tokens as revoked.
func (r *refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (revoked bool, err error) {
	r.db.read(func(d *data) {
		t, ok := d.tokens[hashToken(token)]
		revoked = !ok || t.revokedAt != nil || !t.expiresAt.After(r.db.now())
	})
	return revoked, nil
}

func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	r.db.write(ctx, func(d *data) {
		key := hashToken(token)
		t, ok := d.tokens[key]
		if !ok || t.revokedAt != nil {
			return
		}
		now := r.db.now()
		t.revokedAt = &now
		d.tokens[key] = t
	})
	return nil
}
