package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/events"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type Options struct {
	// Workers bounds how many employees are calculated at the same time.
	Workers int
	// AutoGeneratePayslips renders payslips right after a successful calculation run.
	AutoGeneratePayslips bool
}

type PayrollServiceImpl struct {
	tx            database.Transactor
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	timesheetRepo timesheet.TimesheetRepository
	calculator    *Calculator
	payslips      payslip.PayslipService
	publisher     events.Publisher
	opts          Options
	now           func() time.Time
}

// NewPayrollService builds the period manager. payslips may be nil, which disables
// automatic payslip generation.
func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timesheetRepo timesheet.TimesheetRepository,
	calculator *Calculator,
	payslips payslip.PayslipService,
	publisher events.Publisher,
	opts Options,
) payroll.PayrollService {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &PayrollServiceImpl{
		tx:            tx,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		calculator:    calculator,
		payslips:      payslips,
		publisher:     publisher,
		opts:          opts,
		now:           time.Now,
	}
}

// getClaimsFromContext extracts company_id and user_id from JWT claims
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", payroll.ErrMissingCompanyContext
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetRateSchedule(ctx context.Context) (payroll.RateScheduleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	settings, err := s.loadRateSchedule(ctx, companyID)
	if err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	resolved := ResolveRates(employee.Employee{}, settings, s.calculator.Defaults())
	return toRateScheduleResponse(companyID, settings == nil, resolved), nil
}

func (s *PayrollServiceImpl) UpdateRateSchedule(ctx context.Context, req payroll.UpdateRateScheduleRequest) (payroll.RateScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	current, err := s.loadRateSchedule(ctx, companyID)
	if err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	settings := payroll.RateScheduleSettings{CompanyID: companyID}
	if current != nil {
		settings = *current
	}
	if req.BaseRate != nil {
		settings.BaseRate = req.BaseRate
	}
	if req.OvertimeMultiplier != nil {
		settings.OvertimeMultiplier = req.OvertimeMultiplier
	}
	if req.EveningMultiplier != nil {
		settings.EveningMultiplier = req.EveningMultiplier
	}
	if req.NightMultiplier != nil {
		settings.NightMultiplier = req.NightMultiplier
	}
	if req.WeekendMultiplier != nil {
		settings.WeekendMultiplier = req.WeekendMultiplier
	}
	if req.HolidayMultiplier != nil {
		settings.HolidayMultiplier = req.HolidayMultiplier
	}

	saved, err := s.payrollRepo.UpsertRateSchedule(ctx, settings)
	if err != nil {
		return payroll.RateScheduleResponse{}, err
	}

	resolved := ResolveRates(employee.Employee{}, &saved, s.calculator.Defaults())
	return toRateScheduleResponse(companyID, false, resolved), nil
}

func (s *PayrollServiceImpl) GetTaxTable(ctx context.Context) payroll.TaxTableResponse {
	return toTaxTableResponse(s.calculator.TaxTable())
}

// loadRateSchedule returns nil when the company has not configured a schedule.
func (s *PayrollServiceImpl) loadRateSchedule(ctx context.Context, companyID string) (*payroll.RateScheduleSettings, error) {
	settings, err := s.payrollRepo.GetRateSchedule(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrRateScheduleNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	payment, _ := time.Parse(dateLayout, req.PaymentDate)

	overlaps, err := s.payrollRepo.HasOverlappingPeriod(ctx, companyID, start, end)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if overlaps {
		return payroll.PeriodResponse{}, payroll.ErrPeriodOverlaps
	}

	name := fmt.Sprintf("%s %s/%s", req.PeriodType, req.StartDate, req.EndDate)
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}

	period, err := s.payrollRepo.CreatePeriod(ctx, payroll.PayrollPeriod{
		CompanyID:   companyID,
		Name:        name,
		PeriodType:  payroll.PeriodType(req.PeriodType),
		StartDate:   start,
		EndDate:     end,
		PaymentDate: payment,
		Status:      payroll.PeriodStatusDraft,
		CreatedBy:   optionalString(userID),
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	slog.InfoContext(ctx, "payroll period created", "period_id", period.ID, "company_id", companyID)
	return toPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, id, companyID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return toPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) (payroll.ListPeriodsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPeriodsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	periods, total, err := s.payrollRepo.ListPeriods(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPeriodsResponse{}, err
	}

	responses := make([]payroll.PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = toPeriodResponse(p)
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return payroll.ListPeriodsResponse{
		Periods:    responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *PayrollServiceImpl) DeletePeriod(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if period.Status != payroll.PeriodStatusDraft {
		return payroll.ErrCannotDeletePeriod
	}

	return s.payrollRepo.DeletePeriod(ctx, id, companyID)
}

// ========== CALCULATION RUN ==========

// RunCalculation (re)computes every employee of the period. Per-employee failures are logged
// and reported in the summary; only failures that affect the whole period are returned.
func (s *PayrollServiceImpl) RunCalculation(ctx context.Context, periodID string) (payroll.PeriodSummary, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodSummary{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID)
	if err != nil {
		return payroll.PeriodSummary{}, err
	}
	if !period.CanCalculate() {
		return payroll.PeriodSummary{}, payroll.ErrPeriodLocked
	}

	schedule, err := s.loadRateSchedule(ctx, companyID)
	if err != nil {
		return payroll.PeriodSummary{}, err
	}

	employees, err := s.employeeRepo.ListForPeriod(ctx, companyID, period.ID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PeriodSummary{}, fmt.Errorf("failed to list employees: %w", err)
	}

	table := s.calculator.TaxTable()
	summary := payroll.PeriodSummary{
		PeriodID:        period.ID,
		TaxTableVersion: table.Version,
		Failures:        []payroll.EmployeeFailure{},
	}
	calculatedAt := s.now().UTC()
	calculatedBy := optionalString(userID)

	slog.InfoContext(ctx, "payroll run started",
		"period_id", period.ID,
		"company_id", companyID,
		"employees", len(employees),
		"workers", s.opts.Workers,
		"tax_table_version", table.Version,
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			calculated, err := s.calculateEmployee(gctx, period, emp, schedule, calculatedAt, calculatedBy)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			if errors.Is(err, payroll.ErrPeriodLocked) {
				// Approved or superseded while the run was in flight.
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				slog.WarnContext(gctx, "payroll calculation failed for employee, skipping",
					"period_id", period.ID,
					"employee_id", emp.ID,
					"error", err,
				)
				summary.Failures = append(summary.Failures, payroll.EmployeeFailure{EmployeeID: emp.ID, Error: err.Error()})
			case calculated:
				summary.Calculated++
			default:
				summary.Skipped++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, payroll.ErrPeriodLocked) {
			return summary, err
		}
		return summary, fmt.Errorf("payroll run interrupted: %w", err)
	}

	var updated payroll.PayrollPeriod
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		locked, err := s.payrollRepo.GetPeriodForUpdate(txCtx, period.ID, companyID)
		if err != nil {
			return err
		}
		if !locked.CanCalculate() {
			return payroll.ErrPeriodLocked
		}
		totals, err := s.payrollRepo.SumPeriodTotals(txCtx, period.ID, companyID)
		if err != nil {
			return err
		}
		updated, err = s.payrollRepo.UpdatePeriodTotals(txCtx, period.ID, companyID, totals, table.Version)
		return err
	})
	if errors.Is(err, payroll.ErrPeriodLocked) {
		return summary, err
	}
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate period totals: %w", err)
	}

	summary.Status = string(updated.Status)
	summary.EmployeeCount = updated.EmployeeCount
	summary.TotalGross = updated.TotalGross
	summary.TotalNet = updated.TotalNet
	summary.TotalTax = updated.TotalTax

	if s.opts.AutoGeneratePayslips && s.payslips != nil && updated.EmployeeCount > 0 {
		result, err := s.payslips.GenerateForPeriod(ctx, period.ID)
		if err != nil {
			slog.WarnContext(ctx, "payslip generation after payroll run failed", "period_id", period.ID, "error", err)
		} else {
			summary.PayslipsGenerated = result.Generated
			summary.PayslipFailures = result.Failed
		}
	}

	slog.InfoContext(ctx, "payroll run finished",
		"period_id", period.ID,
		"calculated", summary.Calculated,
		"skipped", summary.Skipped,
		"failed", len(summary.Failures),
		"total_gross", summary.TotalGross.StringFixed(2),
	)
	s.publish(ctx, events.TypePeriodCalculated, companyID, summary)

	return summary, nil
}

// calculateEmployee runs one employee through every stage and upserts the result.
// It reports false when the employee had no hours in the period.
func (s *PayrollServiceImpl) calculateEmployee(
	ctx context.Context,
	period payroll.PayrollPeriod,
	emp employee.Employee,
	schedule *payroll.RateScheduleSettings,
	calculatedAt time.Time,
	calculatedBy *string,
) (bool, error) {
	timesheets, err := s.timesheetRepo.GetApproved(ctx, emp.ID, period.CompanyID, period.StartDate, period.EndDate)
	if err != nil {
		return false, fmt.Errorf("load timesheets: %w", err)
	}

	calc, ok, err := s.calculator.Calculate(EmployeeInput{
		Employee:     emp,
		Timesheets:   timesheets,
		Period:       period,
		RateSchedule: schedule,
	}, calculatedAt, calculatedBy)
	if err != nil {
		return false, err
	}
	// The period row is share-locked while this employee's result is written, so an approval
	// either waits for the write or is seen by it.
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		current, err := s.payrollRepo.GetPeriodForShare(txCtx, period.ID, period.CompanyID)
		if err != nil {
			return err
		}
		if !current.CanCalculate() {
			return payroll.ErrPeriodLocked
		}

		if !ok {
			// Hours may have been withdrawn since an earlier run.
			if err := s.payrollRepo.DeleteCalculation(txCtx, emp.ID, period.ID, period.CompanyID); err != nil {
				return fmt.Errorf("remove stale calculation: %w", err)
			}
			return nil
		}

		ytd, err := s.payrollRepo.GetYearToDate(txCtx, emp.ID, period.CompanyID, period.EndDate.Year(), period.StartDate)
		if err != nil {
			return fmt.Errorf("load year to date: %w", err)
		}
		calc = ApplyYearToDate(calc, ytd)

		if _, err := s.payrollRepo.UpsertCalculation(txCtx, calc); err != nil {
			if errors.Is(err, payroll.ErrPeriodLocked) {
				return err
			}
			return fmt.Errorf("upsert calculation: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ========== STATUS TRANSITIONS ==========

func (s *PayrollServiceImpl) ApprovePeriod(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.transition(ctx, periodID,
		[]payroll.PeriodStatus{payroll.PeriodStatusCalculated},
		payroll.PeriodStatusApproved, payroll.CalculationStatusApproved,
		events.TypePeriodApproved,
	)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.transition(ctx, periodID,
		[]payroll.PeriodStatus{payroll.PeriodStatusApproved},
		payroll.PeriodStatusPaid, payroll.CalculationStatusPaid,
		events.TypePeriodPaid,
	)
}

func (s *PayrollServiceImpl) SupersedePeriod(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.transition(ctx, periodID,
		[]payroll.PeriodStatus{payroll.PeriodStatusCalculated, payroll.PeriodStatusApproved},
		payroll.PeriodStatusSuperseded, payroll.CalculationStatusSuperseded,
		"",
	)
}

// transition moves the period and all of its calculations to a new status in one transaction.
func (s *PayrollServiceImpl) transition(
	ctx context.Context,
	periodID string,
	from []payroll.PeriodStatus,
	to payroll.PeriodStatus,
	calcStatus payroll.CalculationStatus,
	eventType string,
) (payroll.PeriodResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	var updated payroll.PayrollPeriod
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		period, err := s.payrollRepo.GetPeriodForUpdate(txCtx, periodID, companyID)
		if err != nil {
			return err
		}

		allowed := false
		for _, st := range from {
			if period.Status == st {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s -> %s", payroll.ErrInvalidTransition, period.Status, to)
		}
		if to == payroll.PeriodStatusApproved && period.EmployeeCount == 0 {
			return payroll.ErrNoCalculations
		}

		if err := s.payrollRepo.UpdateCalculationStatusByPeriod(txCtx, periodID, companyID, calcStatus); err != nil {
			return err
		}
		updated, err = s.payrollRepo.UpdatePeriodStatus(txCtx, periodID, companyID, to, optionalString(userID))
		return err
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	slog.InfoContext(ctx, "payroll period status changed", "period_id", periodID, "status", to)
	resp := toPeriodResponse(updated)
	if eventType != "" {
		s.publish(ctx, eventType, companyID, resp)
	}
	return resp, nil
}

// ========== CALCULATIONS ==========

func (s *PayrollServiceImpl) GetCalculation(ctx context.Context, id string) (payroll.CalculationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	calc, err := s.payrollRepo.GetCalculationByID(ctx, id, companyID)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	return toCalculationResponse(calc), nil
}

func (s *PayrollServiceImpl) ListCalculationsByPeriod(ctx context.Context, periodID string) ([]payroll.CalculationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID); err != nil {
		return nil, err
	}

	calcs, err := s.payrollRepo.ListCalculationsByPeriod(ctx, periodID, companyID)
	if err != nil {
		return nil, err
	}
	return toCalculationResponses(calcs), nil
}

func (s *PayrollServiceImpl) ListCalculationsByEmployee(ctx context.Context, employeeID string, year *int) ([]payroll.CalculationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, err
	}

	calcs, err := s.payrollRepo.ListCalculationsByEmployee(ctx, employeeID, companyID, year)
	if err != nil {
		return nil, err
	}
	return toCalculationResponses(calcs), nil
}

func (s *PayrollServiceImpl) publish(ctx context.Context, eventType, companyID string, payload any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, companyID, payload)); err != nil {
		slog.WarnContext(ctx, "failed to publish payroll event", "type", eventType, "company_id", companyID, "error", err)
	}
}

// ========== MAPPERS ==========

func toRateScheduleResponse(companyID string, isDefault bool, r payroll.RateSchedule) payroll.RateScheduleResponse {
	return payroll.RateScheduleResponse{
		CompanyID:          companyID,
		IsDefault:          isDefault,
		BaseRate:           r.BaseRate,
		OvertimeMultiplier: r.OvertimeMultiplier,
		EveningMultiplier:  r.EveningMultiplier,
		NightMultiplier:    r.NightMultiplier,
		WeekendMultiplier:  r.WeekendMultiplier,
		HolidayMultiplier:  r.HolidayMultiplier,
	}
}

func toTaxTableResponse(t payroll.TaxTable) payroll.TaxTableResponse {
	contributions := make([]payroll.ContributionResponse, len(t.EmployeeContributions))
	for i, c := range t.EmployeeContributions {
		contributions[i] = payroll.ContributionResponse{Code: c.Code, Name: c.Name, Rate: c.Rate}
	}
	return payroll.TaxTableResponse{
		Version:               t.Version,
		WhiteTableRate:        t.WhiteTableRate,
		GreenTableRate:        t.GreenTableRate,
		TaxCreditFactor:       t.TaxCreditFactor,
		EmployeeContributions: contributions,
		HealthInsuranceRate:   t.HealthInsuranceRate,
		UnemploymentRate:      t.UnemploymentRate,
		DisabilityRate:        t.DisabilityRate,
		HolidayAllowanceRate:  t.HolidayAllowanceRate,
	}
}

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Name:            p.Name,
		PeriodType:      string(p.PeriodType),
		StartDate:       p.StartDate.Format(dateLayout),
		EndDate:         p.EndDate.Format(dateLayout),
		PaymentDate:     p.PaymentDate.Format(dateLayout),
		Status:          string(p.Status),
		EmployeeCount:   p.EmployeeCount,
		TotalGross:      p.TotalGross,
		TotalNet:        p.TotalNet,
		TotalTax:        p.TotalTax,
		TaxTableVersion: p.TaxTableVersion,
		CalculatedAt:    p.CalculatedAt,
		ApprovedAt:      p.ApprovedAt,
		ApprovedBy:      p.ApprovedBy,
		PaidAt:          p.PaidAt,
		PaidBy:          p.PaidBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toCategoryPayResponse(c payroll.CategoryPay) payroll.CategoryPayResponse {
	return payroll.CategoryPayResponse{Hours: c.Hours, Rate: c.Rate, Pay: c.Pay}
}

func toCalculationResponse(c payroll.PayrollCalculation) payroll.CalculationResponse {
	return payroll.CalculationResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		EmployeeName:     c.EmployeeName,
		EmployeeCode:     c.EmployeeCode,
		CompanyID:        c.CompanyID,
		PayrollPeriodID:  c.PayrollPeriodID,
		PeriodStartDate:  c.PeriodStartDate.Format(dateLayout),
		PeriodEndDate:    c.PeriodEndDate.Format(dateLayout),
		Regular:          toCategoryPayResponse(c.Regular),
		Overtime:         toCategoryPayResponse(c.Overtime),
		Evening:          toCategoryPayResponse(c.Evening),
		Night:            toCategoryPayResponse(c.Night),
		Weekend:          toCategoryPayResponse(c.Weekend),
		Holiday:          toCategoryPayResponse(c.Holiday),
		TravelKilometers: c.TravelKilometers,
		TravelRate:       c.TravelRate,
		TravelAllowance:  c.TravelAllowance,
		OtherEarnings:    c.OtherEarnings,
		GrossPay:         c.GrossPay,
		Taxes: payroll.TaxesResponse{
			IncomeTax:              c.Taxes.IncomeTax,
			SocialSecurityEmployee: c.Taxes.SocialSecurityEmployee,
			SocialSecurityEmployer: c.Taxes.SocialSecurityEmployer,
			HealthInsurance:        c.Taxes.HealthInsurance,
			PensionEmployee:        c.Taxes.PensionEmployee,
			PensionEmployer:        c.Taxes.PensionEmployer,
			UnemploymentInsurance:  c.Taxes.UnemploymentInsurance,
			DisabilityInsurance:    c.Taxes.DisabilityInsurance,
		},
		Deductions:      c.Deductions,
		NetPay:          c.NetPay,
		VacationAccrual: c.VacationAccrual,
		YTDGross:        c.YTDGross,
		YTDNet:          c.YTDNet,
		YTDTax:          c.YTDTax,
		Status:          string(c.Status),
		TaxTableVersion: c.TaxTableVersion,
		CalculatedAt:    c.CalculatedAt,
		CalculatedBy:    c.CalculatedBy,
	}
}

func toCalculationResponses(calcs []payroll.PayrollCalculation) []payroll.CalculationResponse {
	responses := make([]payroll.CalculationResponse, len(calcs))
	for i, c := range calcs {
		responses[i] = toCalculationResponse(c)
	}
	return responses
}
