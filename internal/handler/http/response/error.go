package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SandeDesign/alloon-sub000/internal/domain/auth"
	"github.com/SandeDesign/alloon-sub000/internal/domain/company"
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/domain/user"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, payroll.ErrMissingCompanyContext):
		Unauthorized(w, "Company context missing from token")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Directory errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrCalculationNotFound):
		NotFound(w, "Payroll calculation not found")
	case errors.Is(err, payroll.ErrPeriodOverlaps):
		Conflict(w, "Payroll period overlaps an existing period")
	case errors.Is(err, payroll.ErrPeriodLocked):
		Conflict(w, "Payroll period is approved or paid and cannot be recalculated")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Payroll period status does not allow this action")
	case errors.Is(err, payroll.ErrCannotDeletePeriod):
		Conflict(w, "Only draft payroll periods can be deleted")
	case errors.Is(err, payroll.ErrNoCalculations):
		UnprocessableEntity(w, "NO_CALCULATIONS", "Payroll period has no calculations")

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrDocumentMissing):
		NotFound(w, "Payslip document has not been rendered")
	case errors.Is(err, payslip.ErrPayslipNotAllowed):
		Conflict(w, "Payslips can only be generated for calculated, approved or paid calculations")
	case errors.Is(err, payslip.ErrRenderFailed):
		ServiceUnavailableWithData(w, "Payslip rendering failed", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
