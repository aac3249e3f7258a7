package auth

// Permission is an atomic named privilege. Permissions are never combined or
// parameterized; a role either holds one or it does not.
type Permission string

const (
	PermReadCapabilities       Permission = "read:capabilities"
	PermWriteRegistrations     Permission = "write:registrations"
	PermWriteAllRegistrations  Permission = "write:all_registrations"
	PermDeleteAllRegistrations Permission = "delete:all_registrations"
)

// AllPermissions lists the full permission vocabulary.
func AllPermissions() []Permission {
	return []Permission{
		PermReadCapabilities,
		PermWriteRegistrations,
		PermWriteAllRegistrations,
		PermDeleteAllRegistrations,
	}
}

// RolePermissionMatrix maps each role to its permission set. The superset
// relationship between higher and lower roles is encoded explicitly per role,
// not derived.
type RolePermissionMatrix map[Role]map[Permission]struct{}

// NewRolePermissionMatrix builds the fixed matrix. Built once at startup and
// never mutated afterwards.
func NewRolePermissionMatrix() RolePermissionMatrix {
	grants := map[Role][]Permission{
		RolePartner: {
			PermReadCapabilities,
			PermWriteRegistrations,
			PermWriteAllRegistrations,
			PermDeleteAllRegistrations,
		},
		RoleManagingDirector: {
			PermReadCapabilities,
			PermWriteRegistrations,
			PermWriteAllRegistrations,
			PermDeleteAllRegistrations,
		},
		RoleSeniorManager: {
			PermReadCapabilities,
			PermWriteRegistrations,
			PermWriteAllRegistrations,
		},
		RoleConsultant: {
			PermReadCapabilities,
			PermWriteRegistrations,
		},
		RoleViewer: {
			PermReadCapabilities,
		},
	}

	matrix := make(RolePermissionMatrix, len(grants))
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		matrix[role] = set
	}
	return matrix
}
