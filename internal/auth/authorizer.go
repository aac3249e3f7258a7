package auth

import "github.com/slalom/capabilities-management/internal"

// Decision is the outcome of an authorization check. When denied, Reason
// carries the AppError to surface at the API boundary.
type Decision struct {
	Allowed bool
	Reason  *internal.AppError
}

func allow() Decision { return Decision{Allowed: true} }
func deny(reason *internal.AppError) Decision { return Decision{Reason: reason} }

// Authorizer answers permission and ownership questions. All methods are pure
// lookups over the immutable role/permission matrix; callers must evaluate a
// decision before mutating any registry state.
type Authorizer struct {
	matrix RolePermissionMatrix
}

func NewAuthorizer(matrix RolePermissionMatrix) *Authorizer {
	return &Authorizer{matrix: matrix}
}

// HasPermission reports whether the role holds the permission.
func (a *Authorizer) HasPermission(role Role, perm Permission) bool {
	perms, ok := a.matrix[role]
	if !ok {
		return false
	}
	_, ok = perms[perm]
	return ok
}

// AuthorizeRegistration decides whether actor may register targetEmail for a
// capability. Consultants may only register themselves; every other role is
// decided purely by the permission matrix. The asymmetry is deliberate:
// SeniorManager and above never hit the self-ownership branch.
func (a *Authorizer) AuthorizeRegistration(actor *User, targetEmail string) Decision {
	if actor.Role == RoleConsultant {
		if targetEmail != actor.Email {
			return deny(internal.ErrSelfOnly)
		}
		return allow()
	}

	if a.HasPermission(actor.Role, PermWriteRegistrations) ||
		a.HasPermission(actor.Role, PermWriteAllRegistrations) {
		return allow()
	}
	return deny(internal.ErrInsufficientPermission)
}

// AuthorizeUnregistration decides whether actor may remove any consultant,
// themselves included. There is no self-service exception.
func (a *Authorizer) AuthorizeUnregistration(actor *User) Decision {
	if a.HasPermission(actor.Role, PermDeleteAllRegistrations) {
		return allow()
	}
	return deny(internal.ErrCannotUnregister)
}
