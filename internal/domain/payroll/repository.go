package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Rate schedule
	GetRateSchedule(ctx context.Context, companyID string) (RateScheduleSettings, error)
	UpsertRateSchedule(ctx context.Context, settings RateScheduleSettings) (RateScheduleSettings, error)

	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string, companyID string) (PayrollPeriod, error)
	GetPeriodForUpdate(ctx context.Context, id string, companyID string) (PayrollPeriod, error)
	GetPeriodForShare(ctx context.Context, id string, companyID string) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, companyID string, filter PeriodFilter) ([]PayrollPeriod, int64, error)
	HasOverlappingPeriod(ctx context.Context, companyID string, start, end time.Time) (bool, error)
	UpdatePeriodTotals(ctx context.Context, id string, companyID string, totals PeriodTotals, taxTableVersion string) (PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id string, companyID string, status PeriodStatus, actorID *string) (PayrollPeriod, error)
	DeletePeriod(ctx context.Context, id string, companyID string) error

	// Calculations
	UpsertCalculation(ctx context.Context, calc PayrollCalculation) (PayrollCalculation, error)
	DeleteCalculation(ctx context.Context, employeeID string, periodID string, companyID string) error
	GetCalculationByID(ctx context.Context, id string, companyID string) (PayrollCalculation, error)
	ListCalculationsByPeriod(ctx context.Context, periodID string, companyID string) ([]PayrollCalculation, error)
	ListCalculationsByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]PayrollCalculation, error)
	UpdateCalculationStatusByPeriod(ctx context.Context, periodID string, companyID string, status CalculationStatus) error

	// Aggregations
	SumPeriodTotals(ctx context.Context, periodID string, companyID string) (PeriodTotals, error)
	GetYearToDate(ctx context.Context, employeeID string, companyID string, year int, before time.Time) (YearToDate, error)
}
