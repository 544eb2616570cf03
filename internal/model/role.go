package model

// Role is the user's authorization level. Roles form a total order:
// user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// AllRoles contains every valid role in ascending order.
var AllRoles = []Role{RoleUser, RoleModerator, RoleAdmin}

// ParseRole returns the role matching s, or RoleUser when s is empty.
// The second result reports whether s named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), true
	}
	return RoleUser, false
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Level returns the role's rank in the hierarchy. Unknown roles rank
// below every valid role.
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleModerator:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// AtLeast reports whether r grants the permissions of min. Unknown roles
// never satisfy any requirement.
func (r Role) AtLeast(min Role) bool {
	return r.Level() > 0 && r.Level() >= min.Level()
}

func (r Role) String() string {
	return string(r)
}
