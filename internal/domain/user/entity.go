package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs and approves payroll
	RoleEmployee Role = "employee" // Regular employee
)
