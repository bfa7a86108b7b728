package domain

import "time"

// Roles as returned by the identity backend. Order matters only inside a
// user's own role list: the first entry is the primary role.
const (
	RoleSuperAdmin     = "Super Admin"
	RoleAdmin          = "Admin"
	RoleSalesOfficer   = "Sales Officer"
	RoleProjectManager = "Project Manager"
	RoleCustomer       = "Customer"
)

// Permission strings, verbatim from the identity backend.
const (
	PermViewProducts   = "view products"
	PermCreateProducts = "create products"
	PermEditProducts   = "edit products"
	PermDeleteProducts = "delete products"

	PermViewConfigurations   = "view configurations"
	PermCreateConfigurations = "create configurations"
	PermEditConfigurations   = "edit configurations"
	PermDeleteConfigurations = "delete configurations"

	PermViewOrders    = "view orders"
	PermCreateOrders  = "create orders"
	PermEditOrders    = "edit orders"
	PermDeleteOrders  = "delete orders"
	PermApproveOrders = "approve orders"

	PermViewProjects   = "view projects"
	PermCreateProjects = "create projects"
	PermEditProjects   = "edit projects"
	PermDeleteProjects = "delete projects"
	PermManageProjects = "manage projects"

	PermViewUsers   = "view users"
	PermCreateUsers = "create users"
	PermEditUsers   = "edit users"
	PermDeleteUsers = "delete users"

	PermViewRoles   = "view roles"
	PermCreateRoles = "create roles"
	PermEditRoles   = "edit roles"
	PermDeleteRoles = "delete roles"

	PermViewReports   = "view reports"
	PermExportReports = "export reports"

	PermManageSettings = "manage settings"
)

// UserRecord is the backend's user document. It is owned by the session and
// replaced wholesale on login, register, profile refresh and update; it is
// never partially mutated.
type UserRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// RolePermissions maps each role to the permissions it grants. Used by the
// local identity provider; the upstream backend sends expanded permission
// lists and never consults this table.
var RolePermissions = map[string][]string{
	RoleSuperAdmin: {
		PermViewProducts, PermCreateProducts, PermEditProducts, PermDeleteProducts,
		PermViewConfigurations, PermCreateConfigurations, PermEditConfigurations, PermDeleteConfigurations,
		PermViewOrders, PermCreateOrders, PermEditOrders, PermDeleteOrders, PermApproveOrders,
		PermViewProjects, PermCreateProjects, PermEditProjects, PermDeleteProjects, PermManageProjects,
		PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
		PermViewRoles, PermCreateRoles, PermEditRoles, PermDeleteRoles,
		PermViewReports, PermExportReports,
		PermManageSettings,
	},
	RoleAdmin: {
		PermViewProducts, PermCreateProducts, PermEditProducts, PermDeleteProducts,
		PermViewConfigurations, PermCreateConfigurations, PermEditConfigurations,
		PermViewOrders, PermCreateOrders, PermEditOrders, PermApproveOrders,
		PermViewProjects, PermCreateProjects, PermEditProjects,
		PermViewUsers, PermCreateUsers, PermEditUsers,
		PermViewReports, PermExportReports,
	},
	RoleSalesOfficer: {
		PermViewProducts,
		PermViewConfigurations, PermCreateConfigurations,
		PermViewOrders, PermCreateOrders, PermEditOrders,
		PermViewReports,
	},
	RoleProjectManager: {
		PermViewProducts,
		PermViewProjects, PermCreateProjects, PermEditProjects, PermManageProjects,
		PermViewOrders,
		PermViewReports,
	},
	RoleCustomer: {
		PermViewProducts,
		PermViewConfigurations, PermCreateConfigurations,
		PermViewOrders, PermCreateOrders,
	},
}

// ExpandRoles returns the union of permissions granted by the given roles,
// preserving first-seen order.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]struct{})
	var perms []string
	for _, role := range roles {
		for _, p := range RolePermissions[role] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			perms = append(perms, p)
		}
	}
	return perms
}
