package auth

import "fmt"

// Role is the closed set of authority levels. Order matters: RoleRanking
// lists roles from highest to lowest authority. A user's role is immutable
// once assigned.
type Role string

const (
	RolePartner          Role = "partner"
	RoleManagingDirector Role = "managing_director"
	RoleSeniorManager    Role = "senior_manager"
	RoleConsultant       Role = "consultant"
	RoleViewer           Role = "viewer"
)

// RoleRanking orders roles from highest to lowest authority.
var RoleRanking = []Role{
	RolePartner,
	RoleManagingDirector,
	RoleSeniorManager,
	RoleConsultant,
	RoleViewer,
}

// ParseRole validates a role string coming from the outside (token claims,
// config) against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePartner, RoleManagingDirector, RoleSeniorManager, RoleConsultant, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) String() string { return string(r) }
