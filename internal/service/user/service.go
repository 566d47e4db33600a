package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	users    user.UserRepository
	resolver *user.Resolver
	cost     int
}

func NewUserService(userRepository user.UserRepository, resolver *user.Resolver) user.UserService {
	return &UserServiceImpl{users: userRepository, resolver: resolver, cost: bcrypt.DefaultCost}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	return out, nil
}

// Create adds a password account. Without an explicit role the resolver
// decides, exactly as on first Google sign-in.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	email := strings.TrimSpace(req.Email)
	if !s.resolver.IsAllowedEmail(email) {
		return user.UserResponse{}, user.ErrEmailDomainNotAllowed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	role := user.Role(req.Role)
	if role == "" {
		role = s.resolver.DetermineRole(email)
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hashed,
		Role:         role,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(created), nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if err := s.users.UpdateRole(ctx, req); err != nil {
		return user.UserResponse{}, err
	}
	updated, err := s.users.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}
