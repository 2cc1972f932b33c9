package payroll

import "errors"

var (
	ErrRateScheduleNotFound  = errors.New("rate schedule not found")
	ErrPeriodNotFound        = errors.New("payroll period not found")
	ErrPeriodOverlaps        = errors.New("payroll period overlaps an existing period")
	ErrPeriodLocked          = errors.New("payroll period is approved or paid and cannot be recalculated")
	ErrInvalidTransition     = errors.New("payroll period status does not allow this action")
	ErrCannotDeletePeriod    = errors.New("only draft payroll periods can be deleted")
	ErrCalculationNotFound   = errors.New("payroll calculation not found")
	ErrNoCalculations        = errors.New("payroll period has no calculations")
	ErrMalformedTimesheet    = errors.New("timesheet entry has negative values")
	ErrInvalidTaxTable       = errors.New("invalid tax table")
	ErrMissingCompanyContext = errors.New("company_id claim is missing or invalid")
)
