package auth

// Role names of the portal. These mirror the staff groups of the organisation:
// a user can hold several at once.
type Role string

const (
	RoleSuperuser Role = "superuser"
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleFinaid    Role = "finaid"
	RoleStaff     Role = "staff"
)

// RolePredicate decides whether a set of held roles grants access. All
// role-gated surfaces go through one predicate-checking middleware instead of
// per-role duplicated handlers.
type RolePredicate func(roles []Role) bool

func hasRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want || r == RoleSuperuser {
			return true
		}
	}
	return false
}

// AnyOf grants access when any of the wanted roles is held. Superuser always
// passes.
func AnyOf(wanted ...Role) RolePredicate {
	return func(roles []Role) bool {
		for _, w := range wanted {
			if hasRole(roles, w) {
				return true
			}
		}
		return false
	}
}

// Superuser grants access to superusers only.
func Superuser() RolePredicate {
	return func(roles []Role) bool {
		for _, r := range roles {
			if r == RoleSuperuser {
				return true
			}
		}
		return false
	}
}

// AnyStaff grants access to any authenticated staff member.
func AnyStaff() RolePredicate {
	return func(roles []Role) bool {
		return len(roles) > 0
	}
}
