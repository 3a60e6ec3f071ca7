package model

// Role is a fixed user role. Each role maps to a permission set.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleFacultyManager Role = "FACULTY_MANAGER"
	RoleAccountant     Role = "ACCOUNTANT"
	RoleTeacher        Role = "TEACHER"
)

// AllRoles lists every role.
var AllRoles = []Role{RoleAdmin, RoleFacultyManager, RoleAccountant, RoleTeacher}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// Permissions returns the permission codes granted to the role.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = string(p)
	}
	return codes
}

// RoleWithPermissions describes a role and what it may do.
type RoleWithPermissions struct {
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}
