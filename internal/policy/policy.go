// Package policy maps roles to capabilities. Handlers and middleware ask
// Can(role, action, resource) instead of comparing role strings inline.
package policy

import "github.com/gymsuite/backend/internal/models"

// Actions
const (
	ActionManage = "manage"
	ActionRead   = "read"
)

// Resources
const (
	ResourceAll      = "all"
	ResourceGyms     = "gyms"
	ResourceUsers    = "users"
	ResourceProfile  = "profile"
	ResourceSchedule = "schedule"
)

// Ability is one granted action on a subject, as returned to clients
// at login.
type Ability struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

var roleAbilities = map[string][]Ability{
	models.RoleSuperAdmin: {
		{Action: ActionManage, Subject: ResourceAll},
	},
	models.RoleGymAdmin: {
		{Action: ActionManage, Subject: ResourceUsers},
		{Action: ActionManage, Subject: ResourceSchedule},
		{Action: ActionRead, Subject: ResourceGyms},
		{Action: ActionRead, Subject: ResourceProfile},
	},
	models.RoleTrainer: {
		{Action: ActionRead, Subject: ResourceSchedule},
		{Action: ActionRead, Subject: ResourceProfile},
	},
	models.RoleTrainee: {
		{Action: ActionRead, Subject: ResourceProfile},
	},
}

// AbilitiesFor returns the abilities granted to a role. Unknown roles
// have no abilities.
func AbilitiesFor(role string) []Ability {
	abilities, ok := roleAbilities[role]
	if !ok {
		return []Ability{}
	}
	return abilities
}

// Can reports whether a role may perform an action on a resource.
// "manage" implies "read", and a grant on "all" covers every resource.
func Can(role, action, resource string) bool {
	for _, a := range AbilitiesFor(role) {
		if a.Subject != ResourceAll && a.Subject != resource {
			continue
		}
		if a.Action == action {
			return true
		}
		if a.Action == ActionManage && action == ActionRead {
			return true
		}
	}
	return false
}
