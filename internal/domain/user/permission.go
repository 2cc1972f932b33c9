package user

import "slices"

type Permission string

const (
	// Payroll periods
	PermissionPayrollView     Permission = "payroll.view"
	PermissionPayrollRun      Permission = "payroll.run"
	PermissionPayrollApprove  Permission = "payroll.approve"
	PermissionPayrollPay      Permission = "payroll.pay"
	PermissionPayrollSettings Permission = "payroll.settings"

	// Payslips
	PermissionPayslipGenerate Permission = "payslip.generate"
	PermissionPayslipDownload Permission = "payslip.download"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPayrollView,
		PermissionPayrollRun,
		PermissionPayrollApprove,
		PermissionPayrollPay,
		PermissionPayrollSettings,
		PermissionPayslipGenerate,
		PermissionPayslipDownload,
	},
	RoleManager: {
		// Manager runs payroll but does not release payments
		PermissionPayrollView,
		PermissionPayrollRun,
		PermissionPayrollApprove,
		PermissionPayslipGenerate,
		PermissionPayslipDownload,
	},
	RoleEmployee: {},
}

// HasPermission reports whether role grants permission. Unknown roles grant nothing.
func HasPermission(role Role, permission Permission) bool {
	return slices.Contains(RolePermissions[role], permission)
}
