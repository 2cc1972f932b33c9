package payslip

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/company"
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/leave"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var errBoom = errors.New("boom")

func ctxWithClaims(companyID, userID string) context.Context {
	token := jwt.New()
	_ = token.Set("company_id", companyID)
	_ = token.Set("user_id", userID)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// calcStore serves the payroll reads the payslip service needs.
type calcStore struct {
	payroll.PayrollRepository
	periods map[string]payroll.PayrollPeriod
	calcs   map[string]payroll.PayrollCalculation
}

func (s *calcStore) GetPeriodByID(ctx context.Context, id string, companyID string) (payroll.PayrollPeriod, error) {
	p, ok := s.periods[id]
	if !ok || p.CompanyID != companyID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (s *calcStore) GetCalculationByID(ctx context.Context, id string, companyID string) (payroll.PayrollCalculation, error) {
	c, ok := s.calcs[id]
	if !ok || c.CompanyID != companyID {
		return payroll.PayrollCalculation{}, payroll.ErrCalculationNotFound
	}
	return c, nil
}

func (s *calcStore) ListCalculationsByPeriod(ctx context.Context, periodID string, companyID string) ([]payroll.PayrollCalculation, error) {
	var out []payroll.PayrollCalculation
	for _, c := range s.calcs {
		if c.PayrollPeriodID == periodID && c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memoryPayslipRepo struct {
	mu       sync.Mutex
	seq      int
	payslips map[string]payslip.Payslip // by ID
	calcs    *calcStore
}

func newMemoryPayslipRepo(calcs *calcStore) *memoryPayslipRepo {
	return &memoryPayslipRepo{payslips: map[string]payslip.Payslip{}, calcs: calcs}
}

func (r *memoryPayslipRepo) byCalculation(calculationID string) (payslip.Payslip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payslips {
		if p.PayrollCalculationID == calculationID {
			return p, true
		}
	}
	return payslip.Payslip{}, false
}

func (r *memoryPayslipRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payslips)
}

func (r *memoryPayslipRepo) UpsertForCalculation(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.payslips {
		if existing.PayrollCalculationID == p.PayrollCalculationID {
			existing.PeriodStartDate = p.PeriodStartDate
			existing.PeriodEndDate = p.PeriodEndDate
			existing.PaymentDate = p.PaymentDate
			r.payslips[id] = existing
			return existing, nil
		}
	}
	r.seq++
	p.ID = fmt.Sprintf("payslip-%d", r.seq)
	p.CreatedAt = time.Now()
	r.payslips[p.ID] = p
	return p, nil
}

func (r *memoryPayslipRepo) UpdateDocument(ctx context.Context, id string, companyID string, doc payslip.Document) (payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	p.PDFURL = &doc.URL
	p.PDFStoragePath = &doc.StoragePath
	p.GeneratedAt = &doc.GeneratedAt
	p.GeneratedBy = doc.GeneratedBy
	p.RenderError = nil
	r.payslips[id] = p
	return p, nil
}

func (r *memoryPayslipRepo) MarkRenderFailed(ctx context.Context, id string, companyID string, message string) (payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	p.PDFURL = nil
	p.PDFStoragePath = nil
	p.RenderError = &message
	r.payslips[id] = p
	return p, nil
}

func (r *memoryPayslipRepo) MarkDownloaded(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.ErrPayslipNotFound
	}
	now := time.Now()
	p.DownloadedAt = &now
	r.payslips[id] = p
	return nil
}

func (r *memoryPayslipRepo) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	return p, nil
}

func (r *memoryPayslipRepo) GetByCalculationID(ctx context.Context, calculationID string, companyID string) (payslip.Payslip, error) {
	p, ok := r.byCalculation(calculationID)
	if !ok || p.CompanyID != companyID {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	return p, nil
}

func (r *memoryPayslipRepo) ListByEmployee(ctx context.Context, employeeID string, companyID string, year *int) ([]payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []payslip.Payslip{}
	for _, p := range r.payslips {
		if p.EmployeeID != employeeID || p.CompanyID != companyID {
			continue
		}
		if year != nil && p.PeriodEndDate.Year() != *year {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryPayslipRepo) ListWithoutDocument(ctx context.Context, limit int) ([]payslip.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []payslip.Payslip{}
	for _, p := range r.payslips {
		if p.HasDocument() {
			continue
		}
		c, ok := r.calcs.calcs[p.PayrollCalculationID]
		if !ok || c.Status == payroll.CalculationStatusDraft || c.Status == payroll.CalculationStatusSuperseded {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type staticEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *staticEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *staticEmployeeRepo) ListForPeriod(ctx context.Context, companyID string, periodID string, start, end time.Time) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type staticCompanyRepo struct {
	company company.Company
}

func (r *staticCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	if id != r.company.ID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.company, nil
}

type staticLeaveRepo struct {
	quotas []leave.LeaveQuota
	err    error
}

func (r *staticLeaveRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	return r.quotas, r.err
}

// switchableRenderer wraps the real renderer and can be told to fail.
type switchableRenderer struct {
	mu    sync.Mutex
	inner payslip.Renderer
	fail  bool
	calls int
}

func (r *switchableRenderer) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *switchableRenderer) Render(vm payslip.ViewModel) ([]byte, error) {
	r.mu.Lock()
	r.calls++
	fail := r.fail
	r.mu.Unlock()
	if fail {
		return nil, errBoom
	}
	return r.inner.Render(vm)
}

func (r *switchableRenderer) ContentType() string {
	return r.inner.ContentType()
}
