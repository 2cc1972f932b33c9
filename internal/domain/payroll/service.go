package payroll

import "context"

// PayrollService is the payroll period manager. Company and actor are taken from the request context.
type PayrollService interface {
	// Settings
	GetRateSchedule(ctx context.Context) (RateScheduleResponse, error)
	UpdateRateSchedule(ctx context.Context, req UpdateRateScheduleRequest) (RateScheduleResponse, error)
	GetTaxTable(ctx context.Context) TaxTableResponse

	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context, filter PeriodFilter) (ListPeriodsResponse, error)
	DeletePeriod(ctx context.Context, id string) error
	RunCalculation(ctx context.Context, periodID string) (PeriodSummary, error)
	ApprovePeriod(ctx context.Context, periodID string) (PeriodResponse, error)
	MarkPaid(ctx context.Context, periodID string) (PeriodResponse, error)
	SupersedePeriod(ctx context.Context, periodID string) (PeriodResponse, error)

	// Calculations
	GetCalculation(ctx context.Context, id string) (CalculationResponse, error)
	ListCalculationsByPeriod(ctx context.Context, periodID string) ([]CalculationResponse, error)
	ListCalculationsByEmployee(ctx context.Context, employeeID string, year *int) ([]CalculationResponse, error)

	// Export
	ExportRegister(ctx context.Context, periodID string) (content []byte, filename string, err error)
}
