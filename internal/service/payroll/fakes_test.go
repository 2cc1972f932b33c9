package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/events"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
)

func ctxWithClaims(companyID, userID string) context.Context {
	token := jwt.New()
	_ = token.Set("company_id", companyID)
	_ = token.Set("user_id", userID)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memoryPayrollRepo keeps periods and calculations in maps, keyed the way the unique
// constraints of the real tables are.
type memoryPayrollRepo struct {
	mu       sync.Mutex
	seq      int
	schedule map[string]payroll.RateScheduleSettings
	periods  map[string]payroll.PayrollPeriod
	calcs    map[string]payroll.PayrollCalculation // key: employeeID/periodID

	upsertErr map[string]error // by employee ID
}

func newMemoryPayrollRepo() *memoryPayrollRepo {
	return &memoryPayrollRepo{
		schedule:  map[string]payroll.RateScheduleSettings{},
		periods:   map[string]payroll.PayrollPeriod{},
		calcs:     map[string]payroll.PayrollCalculation{},
		upsertErr: map[string]error{},
	}
}

func (r *memoryPayrollRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *memoryPayrollRepo) addPeriod(p payroll.PayrollPeriod) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods[p.ID] = p
}

func (r *memoryPayrollRepo) hasCalculation(employeeID, periodID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.calcs[employeeID+"/"+periodID]
	return ok
}

func (r *memoryPayrollRepo) calculationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calcs)
}

func (r *memoryPayrollRepo) GetRateSchedule(ctx context.Context, companyID string) (payroll.RateScheduleSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedule[companyID]
	if !ok {
		return payroll.RateScheduleSettings{}, payroll.ErrRateScheduleNotFound
	}
	return s, nil
}

func (r *memoryPayrollRepo) UpsertRateSchedule(ctx context.Context, settings payroll.RateScheduleSettings) (payroll.RateScheduleSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if settings.ID == "" {
		settings.ID = r.nextID("schedule")
	}
	r.schedule[settings.CompanyID] = settings
	return settings, nil
}

func (r *memoryPayrollRepo) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	period.ID = r.nextID("period")
	period.CreatedAt = time.Now()
	period.UpdatedAt = period.CreatedAt
	r.periods[period.ID] = period
	return period, nil
}

func (r *memoryPayrollRepo) GetPeriodByID(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (r *memoryPayrollRepo) GetPeriodForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	return r.GetPeriodByID(ctx, id, companyID)
}

func (r *memoryPayrollRepo) GetPeriodForShare(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	return r.GetPeriodByID(ctx, id, companyID)
}

func (r *memoryPayrollRepo) ListPeriods(ctx context.Context, companyID string, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.PayrollPeriod
	for _, p := range r.periods {
		if p.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *memoryPayrollRepo) HasOverlappingPeriod(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.periods {
		if p.CompanyID != companyID || p.Status == payroll.PeriodStatusSuperseded {
			continue
		}
		if !p.StartDate.After(end) && !p.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPayrollRepo) UpdatePeriodTotals(ctx context.Context, id string, companyID string, totals payroll.PeriodTotals, taxTableVersion string) (payroll.PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	if !p.CanCalculate() {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodLocked
	}
	now := time.Now()
	p.EmployeeCount = totals.EmployeeCount
	p.TotalGross = totals.TotalGross
	p.TotalNet = totals.TotalNet
	p.TotalTax = totals.TotalTax
	p.TaxTableVersion = &taxTableVersion
	p.Status = payroll.PeriodStatusCalculated
	p.CalculatedAt = &now
	r.periods[id] = p
	return p, nil
}

func (r *memoryPayrollRepo) UpdatePeriodStatus(ctx context.Context, id string, companyID string, status payroll.PeriodStatus, actorID *string) (payroll.PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	now := time.Now()
	p.Status = status
	switch status {
	case payroll.PeriodStatusApproved:
		p.ApprovedAt, p.ApprovedBy = &now, actorID
	case payroll.PeriodStatusPaid:
		p.PaidAt, p.PaidBy = &now, actorID
	}
	r.periods[id] = p
	return p, nil
}

func (r *memoryPayrollRepo) DeletePeriod(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok || p.CompanyID != companyID || p.Status != payroll.PeriodStatusDraft {
		return payroll.ErrCannotDeletePeriod
	}
	delete(r.periods, id)
	return nil
}

func (r *memoryPayrollRepo) UpsertCalculation(ctx context.Context, calc payroll.PayrollCalculation) (payroll.PayrollCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.upsertErr[calc.EmployeeID]; err != nil {
		return payroll.PayrollCalculation{}, err
	}
	key := calc.EmployeeID + "/" + calc.PayrollPeriodID
	if existing, ok := r.calcs[key]; ok {
		if existing.Status != payroll.CalculationStatusDraft && existing.Status != payroll.CalculationStatusCalculated {
			return payroll.PayrollCalculation{}, payroll.ErrPeriodLocked
		}
		calc.ID = existing.ID
		calc.CreatedAt = existing.CreatedAt
	} else {
		calc.ID = r.nextID("calc")
		calc.CreatedAt = time.Now()
	}
	calc.UpdatedAt = time.Now()
	r.calcs[key] = calc
	return calc, nil
}

func (r *memoryPayrollRepo) DeleteCalculation(ctx context.Context, employeeID string, periodID string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := employeeID + "/" + periodID
	if c, ok := r.calcs[key]; ok && (c.Status == payroll.CalculationStatusDraft || c.Status == payroll.CalculationStatusCalculated) {
		delete(r.calcs, key)
	}
	return nil
}

func (r *memoryPayrollRepo) GetCalculationByID(ctx context.Context, id string, companyID string) (payroll.PayrollCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calcs {
		if c.ID == id && c.CompanyID == companyID {
			return c, nil
		}
	}
	return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
}

func (r *memoryPayrollRepo) ListCalculationsByPeriod(ctx context.Context, periodID string, companyID string) ([]payroll.PayrollCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []payroll.PayrollCalculation{}
	for _, c := range r.calcs {
		if c.PayrollPeriodID == periodID && c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *memoryPayrollRepo) ListCalculationsByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]payroll.PayrollCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []payroll.PayrollCalculation{}
	for _, c := range r.calcs {
		if c.EmployeeID != employeeID || c.CompanyID != companyID {
			continue
		}
		if year != nil && c.PeriodEndDate.Year() != *year {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryPayrollRepo) UpdateCalculationStatusByPeriod(ctx context.Context, periodID string, companyID string, status payroll.CalculationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, c := range r.calcs {
		if c.PayrollPeriodID == periodID && c.CompanyID == companyID {
			c.Status = status
			r.calcs[key] = c
		}
	}
	return nil
}

func (r *memoryPayrollRepo) SumPeriodTotals(ctx context.Context, periodID string, companyID string) (payroll.PeriodTotals, error) {
	calcs, _ := r.ListCalculationsByPeriod(ctx, periodID, companyID)
	return sumCalculations(calcs), nil
}

func (r *memoryPayrollRepo) GetYearToDate(ctx context.Context, employeeID string, companyID string, year int, before time.Time) (payroll.YearToDate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ytd := payroll.YearToDate{Gross: decimal.Zero, Net: decimal.Zero, Tax: decimal.Zero}
	for _, c := range r.calcs {
		if c.EmployeeID != employeeID || c.CompanyID != companyID || c.Status == payroll.CalculationStatusSuperseded {
			continue
		}
		if c.PeriodEndDate.Year() != year || !c.PeriodEndDate.Before(before) {
			continue
		}
		ytd.Gross = ytd.Gross.Add(c.GrossPay)
		ytd.Net = ytd.Net.Add(c.NetPay)
		ytd.Tax = ytd.Tax.Add(c.TotalTax())
	}
	return ytd, nil
}

type memoryEmployeeRepo struct {
	employees []employee.Employee
	listErr   error

	// hasActivity reports approved hours or an existing calculation in the period.
	hasActivity func(employeeID, periodID string) bool
}

func (r *memoryEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memoryEmployeeRepo) ListForPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time) ([]employee.Employee, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID != companyID {
			continue
		}
		if e.EmploymentStatus == employee.EmploymentStatusActive || (r.hasActivity != nil && r.hasActivity(e.ID, periodID)) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memoryTimesheetRepo struct {
	mu         sync.Mutex
	byEmployee map[string][]timesheet.Timesheet
	errFor     map[string]error

	// onGet runs before timesheets are returned, outside the lock.
	onGet func(employeeID string)
}

func (r *memoryTimesheetRepo) hasHours(employeeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmployee[employeeID]) > 0
}

func newMemoryTimesheetRepo() *memoryTimesheetRepo {
	return &memoryTimesheetRepo{byEmployee: map[string][]timesheet.Timesheet{}, errFor: map[string]error{}}
}

func (r *memoryTimesheetRepo) set(employeeID string, ts ...timesheet.Timesheet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmployee[employeeID] = ts
}

func (r *memoryTimesheetRepo) GetApproved(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	if r.onGet != nil {
		r.onGet(employeeID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.errFor[employeeID]; err != nil {
		return nil, err
	}
	return r.byEmployee[employeeID], nil
}

type stubPayslipService struct {
	payslip.PayslipService
	calls  int
	result payslip.GenerateResult
	err    error
}

func (s *stubPayslipService) GenerateForPeriod(ctx context.Context, periodID string) (payslip.GenerateResult, error) {
	s.calls++
	return s.result, s.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

var errBoom = errors.New("boom")
