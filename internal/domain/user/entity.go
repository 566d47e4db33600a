package user

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleViewer  Role = "VIEWER"
)

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user is a training administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Permissions returns the permission set of the user's role
func (u *User) Permissions() Permissions {
	return RolePermissions[u.Role]
}
