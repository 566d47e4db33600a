package user

import "context"

// UserService manages accounts. Only holders of PermissionManageUsers reach it.
type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateUserRoleRequest) (UserResponse, error)
}
