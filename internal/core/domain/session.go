package domain

// Action names a UI capability gated by a single permission. The capability
// table is the one place permissions are mapped to actions; the dashboard
// menu and the route guards both consume it instead of re-deriving checks.
type Action string

const (
	ActionViewProducts   Action = "viewProducts"
	ActionCreateProducts Action = "createProducts"
	ActionEditProducts   Action = "editProducts"
	ActionDeleteProducts Action = "deleteProducts"

	ActionViewConfigurations   Action = "viewConfigurations"
	ActionCreateConfigurations Action = "createConfigurations"
	ActionEditConfigurations   Action = "editConfigurations"
	ActionDeleteConfigurations Action = "deleteConfigurations"

	ActionViewOrders    Action = "viewOrders"
	ActionCreateOrders  Action = "createOrders"
	ActionEditOrders    Action = "editOrders"
	ActionDeleteOrders  Action = "deleteOrders"
	ActionApproveOrders Action = "approveOrders"

	ActionViewProjects   Action = "viewProjects"
	ActionCreateProjects Action = "createProjects"
	ActionEditProjects   Action = "editProjects"
	ActionDeleteProjects Action = "deleteProjects"
	ActionManageProjects Action = "manageProjects"

	ActionViewUsers   Action = "viewUsers"
	ActionCreateUsers Action = "createUsers"
	ActionEditUsers   Action = "editUsers"
	ActionDeleteUsers Action = "deleteUsers"

	ActionViewRoles   Action = "viewRoles"
	ActionCreateRoles Action = "createRoles"
	ActionEditRoles   Action = "editRoles"
	ActionDeleteRoles Action = "deleteRoles"

	ActionViewReports   Action = "viewReports"
	ActionExportReports Action = "exportReports"

	ActionManageSettings Action = "manageSettings"
)

// actionPermissions binds each action to the permission that enables it.
var actionPermissions = map[Action]string{
	ActionViewProducts:   PermViewProducts,
	ActionCreateProducts: PermCreateProducts,
	ActionEditProducts:   PermEditProducts,
	ActionDeleteProducts: PermDeleteProducts,

	ActionViewConfigurations:   PermViewConfigurations,
	ActionCreateConfigurations: PermCreateConfigurations,
	ActionEditConfigurations:   PermEditConfigurations,
	ActionDeleteConfigurations: PermDeleteConfigurations,

	ActionViewOrders:    PermViewOrders,
	ActionCreateOrders:  PermCreateOrders,
	ActionEditOrders:    PermEditOrders,
	ActionDeleteOrders:  PermDeleteOrders,
	ActionApproveOrders: PermApproveOrders,

	ActionViewProjects:   PermViewProjects,
	ActionCreateProjects: PermCreateProjects,
	ActionEditProjects:   PermEditProjects,
	ActionDeleteProjects: PermDeleteProjects,
	ActionManageProjects: PermManageProjects,

	ActionViewUsers:   PermViewUsers,
	ActionCreateUsers: PermCreateUsers,
	ActionEditUsers:   PermEditUsers,
	ActionDeleteUsers: PermDeleteUsers,

	ActionViewRoles:   PermViewRoles,
	ActionCreateRoles: PermCreateRoles,
	ActionEditRoles:   PermEditRoles,
	ActionDeleteRoles: PermDeleteRoles,

	ActionViewReports:   PermViewReports,
	ActionExportReports: PermExportReports,

	ActionManageSettings: PermManageSettings,
}

// Session is the gateway-held record of an authenticated user: the upstream
// bearer token plus the role and permission sets derived from the last known
// user record.
type Session struct {
	User          *UserRecord `json:"user,omitempty"`
	Token         string      `json:"-"`
	Roles         []string    `json:"roles"`
	Permissions   []string    `json:"permissions"`
	Authenticated bool        `json:"authenticated"`

	capabilities map[Action]bool
}

// NewSession derives a session from a user record and token. Authenticated is
// true iff both are present; roles and permissions always come from the user
// record, never set independently.
func NewSession(user *UserRecord, token string) Session {
	s := Session{User: user, Token: token}
	if user != nil {
		s.Roles = user.Roles
		s.Permissions = user.Permissions
	}
	s.Authenticated = user != nil && token != ""
	s.capabilities = computeCapabilities(s.Permissions)
	return s
}

// ReplaceUser returns the session with the user record swapped wholesale and
// the derived sets recomputed. The token is kept as-is.
func (s Session) ReplaceUser(user *UserRecord) Session {
	return NewSession(user, s.Token)
}

// HasRole reports whether any of the given roles is held.
func (s Session) HasRole(roles ...string) bool {
	return intersects(s.Roles, roles)
}

// HasPermission reports whether any of the given permissions is held.
func (s Session) HasPermission(perms ...string) bool {
	return intersects(s.Permissions, perms)
}

// HasAllPermissions reports whether every given permission is held. An empty
// query yields false, matching HasPermission.
func (s Session) HasAllPermissions(perms ...string) bool {
	if len(s.Permissions) == 0 || len(perms) == 0 {
		return false
	}
	held := toSet(s.Permissions)
	for _, p := range perms {
		if _, ok := held[p]; !ok {
			return false
		}
	}
	return true
}

// PrimaryRole returns the first role in backend order. ok is false when the
// user holds no roles.
func (s Session) PrimaryRole() (role string, ok bool) {
	if len(s.Roles) == 0 {
		return "", false
	}
	return s.Roles[0], true
}

// Capabilities returns the capability table computed when the session was
// derived. Absent actions read as false.
func (s Session) Capabilities() map[Action]bool {
	if s.capabilities == nil {
		return computeCapabilities(s.Permissions)
	}
	return s.capabilities
}

// Can reports whether the session may perform a single action.
func (s Session) Can(a Action) bool {
	return s.Capabilities()[a]
}

func computeCapabilities(perms []string) map[Action]bool {
	held := toSet(perms)
	caps := make(map[Action]bool, len(actionPermissions))
	for action, perm := range actionPermissions {
		_, ok := held[perm]
		caps[action] = ok
	}
	return caps
}

func intersects(held, query []string) bool {
	if len(held) == 0 || len(query) == 0 {
		return false
	}
	set := toSet(held)
	for _, q := range query {
		if _, ok := set[q]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
