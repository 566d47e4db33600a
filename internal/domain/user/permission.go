package user

type Permission string

const (
	PermissionViewDashboard Permission = "dashboard.view"
	PermissionViewEmployees Permission = "employees.view"
	PermissionViewPrograms  Permission = "programs.view"
	PermissionViewSessions  Permission = "sessions.view"
	PermissionViewResults   Permission = "results.view"
	PermissionViewNewHire   Permission = "newhire.view"

	PermissionEditEmployees Permission = "employees.edit"
	PermissionEditPrograms  Permission = "programs.edit"
	PermissionEditSessions  Permission = "sessions.edit"
	PermissionEditResults   Permission = "results.edit"
	PermissionEditNewHire   Permission = "newhire.edit"

	PermissionManageUsers Permission = "users.manage"
)

// Permissions is the fixed capability set of a role. View flags are the same
// for every role; roles differ only in what they may edit or manage.
type Permissions struct {
	CanViewDashboard bool `json:"can_view_dashboard"`
	CanViewEmployees bool `json:"can_view_employees"`
	CanViewPrograms  bool `json:"can_view_programs"`
	CanViewSessions  bool `json:"can_view_sessions"`
	CanViewResults   bool `json:"can_view_results"`
	CanViewNewHire   bool `json:"can_view_new_hire"`

	CanEditEmployees bool `json:"can_edit_employees"`
	CanEditPrograms  bool `json:"can_edit_programs"`
	CanEditSessions  bool `json:"can_edit_sessions"`
	CanEditResults   bool `json:"can_edit_results"`
	CanEditNewHire   bool `json:"can_edit_new_hire"`

	CanManageUsers bool `json:"can_manage_users"`
}

var viewAll = Permissions{
	CanViewDashboard: true,
	CanViewEmployees: true,
	CanViewPrograms:  true,
	CanViewSessions:  true,
	CanViewResults:   true,
	CanViewNewHire:   true,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role]Permissions{
	RoleAdmin: func() Permissions {
		p := viewAll
		p.CanEditEmployees = true
		p.CanEditPrograms = true
		p.CanEditSessions = true
		p.CanEditResults = true
		p.CanEditNewHire = true
		p.CanManageUsers = true
		return p
	}(),
	RoleTrainer: func() Permissions {
		// Trainers run sessions and record outcomes; master data stays with admins.
		p := viewAll
		p.CanEditSessions = true
		p.CanEditResults = true
		p.CanEditNewHire = true
		return p
	}(),
	RoleViewer: viewAll,
}

// Allows reports whether p grants permission.
func (p Permissions) Allows(permission Permission) bool {
	switch permission {
	case PermissionViewDashboard:
		return p.CanViewDashboard
	case PermissionViewEmployees:
		return p.CanViewEmployees
	case PermissionViewPrograms:
		return p.CanViewPrograms
	case PermissionViewSessions:
		return p.CanViewSessions
	case PermissionViewResults:
		return p.CanViewResults
	case PermissionViewNewHire:
		return p.CanViewNewHire
	case PermissionEditEmployees:
		return p.CanEditEmployees
	case PermissionEditPrograms:
		return p.CanEditPrograms
	case PermissionEditSessions:
		return p.CanEditSessions
	case PermissionEditResults:
		return p.CanEditResults
	case PermissionEditNewHire:
		return p.CanEditNewHire
	case PermissionManageUsers:
		return p.CanManageUsers
	}
	return false
}

// EditCount is the number of edit-class permissions granted, managing users
// included.
func (p Permissions) EditCount() int {
	n := 0
	for _, granted := range []bool{
		p.CanEditEmployees,
		p.CanEditPrograms,
		p.CanEditSessions,
		p.CanEditResults,
		p.CanEditNewHire,
		p.CanManageUsers,
	} {
		if granted {
			n++
		}
	}
	return n
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return permissions.Allows(permission)
}

func CountEditPermissions(role Role) int {
	return RolePermissions[role].EditCount()
}
