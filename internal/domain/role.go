package domain

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to every module, including user management
	// and role previews.
	RoleAdmin Role = "admin"

	// RoleManager can manage users, dispatch and financials, but cannot
	// preview the app as another role.
	RoleManager Role = "manager"

	// RoleCSR handles customer records and work order intake.
	RoleCSR Role = "csr"

	// RoleSales can view customers and create estimates/invoices.
	RoleSales Role = "sales"

	// RoleHR manages employee records.
	RoleHR Role = "hr"

	// RoleTechnician sees and works their assigned work orders.
	RoleTechnician Role = "technician"

	// RoleCustomer sees only their own work orders and invoices.
	RoleCustomer Role = "customer"
)

// Permission names are display/documentation attributes of a role. Route
// gating is driven by the route table, not by these names.
const (
	PermManageUsers      = "Manage Users"
	PermViewFinancials   = "View Financials"
	PermDispatch         = "Dispatch"
	PermManageCustomers  = "Manage Customers"
	PermManageInventory  = "Manage Inventory"
	PermPurchaseOrders   = "Purchase Orders"
	PermAssignedOrders   = "Assigned Work Orders"
	PermOwnAccount       = "Own Account"
	PermEmployeeRecords  = "Employee Records"
	PermCreateInvoices   = "Create Invoices"
	PermViewWorkOrders   = "View Work Orders"
	PermRolePreview      = "Role Preview"
)

// RoleInfo describes a role for UI pickers and documentation.
type RoleInfo struct {
	Role        Role
	DisplayName string
	Description string
	Permissions []string
}

// allRoles is the fixed enumeration order used by UI pickers.
var allRoles = []Role{
	RoleAdmin,
	RoleManager,
	RoleCSR,
	RoleSales,
	RoleHR,
	RoleTechnician,
	RoleCustomer,
}

var roleRegistry = map[Role]RoleInfo{
	RoleAdmin: {
		Role:        RoleAdmin,
		DisplayName: "Administrator",
		Description: "Full access to all modules and settings",
		Permissions: []string{
			PermManageUsers, PermViewFinancials, PermDispatch,
			PermManageCustomers, PermManageInventory, PermPurchaseOrders,
			PermEmployeeRecords, PermCreateInvoices, PermViewWorkOrders,
			PermRolePreview,
		},
	},
	RoleManager: {
		Role:        RoleManager,
		DisplayName: "Manager",
		Description: "Operations oversight: users, dispatch and financials",
		Permissions: []string{
			PermManageUsers, PermViewFinancials, PermDispatch,
			PermManageCustomers, PermManageInventory, PermPurchaseOrders,
			PermCreateInvoices, PermViewWorkOrders,
		},
	},
	RoleCSR: {
		Role:        RoleCSR,
		DisplayName: "Customer Service",
		Description: "Customer records and work order intake",
		Permissions: []string{
			PermManageCustomers, PermViewWorkOrders,
		},
	},
	RoleSales: {
		Role:        RoleSales,
		DisplayName: "Sales",
		Description: "Customer accounts and invoicing",
		Permissions: []string{
			PermManageCustomers, PermCreateInvoices,
		},
	},
	RoleHR: {
		Role:        RoleHR,
		DisplayName: "Human Resources",
		Description: "Employee records",
		Permissions: []string{
			PermEmployeeRecords,
		},
	},
	RoleTechnician: {
		Role:        RoleTechnician,
		DisplayName: "Technician",
		Description: "Assigned work orders in the field",
		Permissions: []string{
			PermAssignedOrders,
		},
	},
	RoleCustomer: {
		Role:        RoleCustomer,
		DisplayName: "Customer",
		Description: "Own work orders and invoices",
		Permissions: []string{
			PermOwnAccount,
		},
	},
}

// AllRoles returns every role in fixed enumeration order.
func AllRoles() []Role {
	roles := make([]Role, len(allRoles))
	copy(roles, allRoles)
	return roles
}

// Info returns the registry entry for a role.
func (r Role) Info() (RoleInfo, bool) {
	info, ok := roleRegistry[r]
	return info, ok
}

// IsValid checks if the role is part of the closed role set.
func (r Role) IsValid() bool {
	_, ok := roleRegistry[r]
	return ok
}

// DisplayName returns the human-readable name of the role.
func (r Role) DisplayName() string {
	if info, ok := roleRegistry[r]; ok {
		return info.DisplayName
	}
	return string(r)
}

// Permissions returns the permission names attached to the role.
func (r Role) Permissions() []string {
	if info, ok := roleRegistry[r]; ok {
		perms := make([]string, len(info.Permissions))
		copy(perms, info.Permissions)
		return perms
	}
	return nil
}

// HasPermission checks if the role carries the named permission.
func (r Role) HasPermission(name string) bool {
	info, ok := roleRegistry[r]
	if !ok {
		return false
	}
	for _, p := range info.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// CanManageUsers checks if the role can create other users.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanPreview checks if the role can view the app as another role.
func (r Role) CanPreview() bool {
	return r == RoleAdmin
}
