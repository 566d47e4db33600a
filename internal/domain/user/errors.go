package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrEmailDomainNotAllowed   = errors.New("email domain is not allowed")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrInvalidRole             = errors.New("role must be ADMIN, TRAINER or VIEWER")
	ErrOAuthProviderIDExists   = errors.New("oauth provider id already registered")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
