package payslip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/company"
	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/leave"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/events"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/storage"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type PayslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	leaveRepo    leave.LeaveQuotaRepository
	renderer     payslip.Renderer
	storage      storage.FileStorage
	publisher    events.Publisher
	workers      int
	urlExpiry    time.Duration
	now          func() time.Time
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	leaveRepo leave.LeaveQuotaRepository,
	renderer payslip.Renderer,
	fileStorage storage.FileStorage,
	publisher events.Publisher,
	workers int,
) payslip.PayslipService {
	if workers <= 0 {
		workers = 4
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &PayslipServiceImpl{
		payslipRepo:  payslipRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		leaveRepo:    leaveRepo,
		renderer:     renderer,
		storage:      fileStorage,
		publisher:    publisher,
		workers:      workers,
		urlExpiry:    24 * time.Hour,
		now:          time.Now,
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

// ========== GENERATION ==========

// GeneratePayslip renders the payslip of a calculation. On a rendering or storage failure the
// payslip record is kept without a document and ErrRenderFailed is returned with it.
func (s *PayslipServiceImpl) GeneratePayslip(ctx context.Context, calculationID string) (payslip.PayslipResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.generate(ctx, companyID, userID, calculationID)
	if err != nil && p.ID == "" {
		return payslip.PayslipResponse{}, err
	}
	return toPayslipResponse(p), err
}

// RegeneratePayslip re-renders from the stored calculation and overwrites the stored document.
func (s *PayslipServiceImpl) RegeneratePayslip(ctx context.Context, calculationID string) (payslip.PayslipResponse, error) {
	return s.GeneratePayslip(ctx, calculationID)
}

func (s *PayslipServiceImpl) GenerateForPeriod(ctx context.Context, periodID string) (payslip.GenerateResult, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.GenerateResult{}, err
	}

	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID); err != nil {
		return payslip.GenerateResult{}, err
	}

	calcs, err := s.payrollRepo.ListCalculationsByPeriod(ctx, periodID, companyID)
	if err != nil {
		return payslip.GenerateResult{}, err
	}

	result := payslip.GenerateResult{PeriodID: periodID, Failures: []payslip.CalculationFailure{}}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, calc := range calcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, err := s.generate(gctx, companyID, userID, calc.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Failures = append(result.Failures, payslip.CalculationFailure{
					CalculationID: calc.ID,
					EmployeeID:    calc.EmployeeID,
					Error:         err.Error(),
				})
				return nil
			}
			result.Generated++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "payslips generated for period",
		"period_id", periodID,
		"generated", result.Generated,
		"failed", result.Failed,
	)
	return result, nil
}

// RetryFailedRenders re-renders payslips that have no stored document, across all companies.
func (s *PayslipServiceImpl) RetryFailedRenders(ctx context.Context, limit int) (int, error) {
	pending, err := s.payslipRepo.ListWithoutDocument(ctx, limit)
	if err != nil {
		return 0, err
	}

	rendered := 0
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return rendered, err
		}
		if _, err := s.generate(ctx, p.CompanyID, "", p.PayrollCalculationID); err != nil {
			continue
		}
		rendered++
	}

	if len(pending) > 0 {
		slog.InfoContext(ctx, "payslip render retry finished", "pending", len(pending), "rendered", rendered)
	}
	return rendered, nil
}

// generate creates or refreshes the payslip record first, then renders and stores the document.
func (s *PayslipServiceImpl) generate(ctx context.Context, companyID, userID, calculationID string) (payslip.Payslip, error) {
	calc, err := s.payrollRepo.GetCalculationByID(ctx, calculationID, companyID)
	if err != nil {
		return payslip.Payslip{}, err
	}
	if calc.Status == payroll.CalculationStatusDraft || calc.Status == payroll.CalculationStatusSuperseded {
		return payslip.Payslip{}, payslip.ErrPayslipNotAllowed
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, calc.PayrollPeriodID, companyID)
	if err != nil {
		return payslip.Payslip{}, err
	}

	record, err := s.payslipRepo.UpsertForCalculation(ctx, payslip.Payslip{
		EmployeeID:           calc.EmployeeID,
		CompanyID:            companyID,
		PayrollPeriodID:      calc.PayrollPeriodID,
		PayrollCalculationID: calc.ID,
		PeriodStartDate:      calc.PeriodStartDate,
		PeriodEndDate:        calc.PeriodEndDate,
		PaymentDate:          period.PaymentDate,
	})
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to save payslip record: %w", err)
	}

	doc, err := s.renderAndStore(ctx, calc, period)
	if err != nil {
		slog.WarnContext(ctx, "payslip rendering failed",
			"payslip_id", record.ID,
			"calculation_id", calc.ID,
			"employee_id", calc.EmployeeID,
			"error", err,
		)
		failed, markErr := s.payslipRepo.MarkRenderFailed(ctx, record.ID, companyID, err.Error())
		if markErr != nil {
			slog.ErrorContext(ctx, "failed to record payslip render failure", "payslip_id", record.ID, "error", markErr)
			return record, fmt.Errorf("%w: %v", payslip.ErrRenderFailed, err)
		}
		// The record no longer points at the previous document.
		if record.PDFStoragePath != nil {
			if delErr := s.storage.Delete(ctx, *record.PDFStoragePath); delErr != nil {
				slog.WarnContext(ctx, "failed to remove stale payslip document", "payslip_id", record.ID, "path", *record.PDFStoragePath, "error", delErr)
			}
		}
		return failed, fmt.Errorf("%w: %v", payslip.ErrRenderFailed, err)
	}

	if userID != "" {
		doc.GeneratedBy = &userID
	}
	updated, err := s.payslipRepo.UpdateDocument(ctx, record.ID, companyID, doc)
	if err != nil {
		return record, fmt.Errorf("failed to save payslip document reference: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypePayslipGenerated, companyID, toPayslipResponse(updated))); err != nil {
		slog.WarnContext(ctx, "failed to publish payslip event", "payslip_id", updated.ID, "error", err)
	}
	return updated, nil
}

func (s *PayslipServiceImpl) renderAndStore(ctx context.Context, calc payroll.PayrollCalculation, period payroll.PayrollPeriod) (payslip.Document, error) {
	vm, err := s.viewModel(ctx, calc, period)
	if err != nil {
		return payslip.Document{}, err
	}

	content, err := s.renderer.Render(vm)
	if err != nil {
		return payslip.Document{}, err
	}

	path := storagePath(calc)
	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(content), path, s.renderer.ContentType())
	if err != nil {
		return payslip.Document{}, fmt.Errorf("upload payslip: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedPath, s.urlExpiry)
	if err != nil {
		return payslip.Document{}, fmt.Errorf("resolve payslip url: %w", err)
	}

	return payslip.Document{URL: url, StoragePath: storedPath, GeneratedAt: s.now().UTC()}, nil
}

// storagePath is stable per calculation so a re-render overwrites the previous document.
func storagePath(calc payroll.PayrollCalculation) string {
	return fmt.Sprintf("payslips/%s/%s/%s.pdf", calc.CompanyID, calc.PayrollPeriodID, calc.EmployeeID)
}

func (s *PayslipServiceImpl) viewModel(ctx context.Context, calc payroll.PayrollCalculation, period payroll.PayrollPeriod) (payslip.ViewModel, error) {
	emp, err := s.employeeRepo.GetByID(ctx, calc.EmployeeID, calc.CompanyID)
	if err != nil {
		return payslip.ViewModel{}, fmt.Errorf("load employee: %w", err)
	}

	comp, err := s.companyRepo.GetByID(ctx, calc.CompanyID)
	if err != nil {
		return payslip.ViewModel{}, fmt.Errorf("load company: %w", err)
	}

	quotas, err := s.leaveRepo.GetByEmployeeYear(ctx, calc.EmployeeID, calc.PeriodEndDate.Year())
	if err != nil {
		slog.WarnContext(ctx, "leave balance unavailable for payslip", "employee_id", calc.EmployeeID, "error", err)
		quotas = nil
	}

	return BuildViewModel(calc, period, emp, comp, quotas), nil
}

func (s *PayslipServiceImpl) GetViewModel(ctx context.Context, calculationID string) (payslip.ViewModel, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.ViewModel{}, err
	}

	calc, err := s.payrollRepo.GetCalculationByID(ctx, calculationID, companyID)
	if err != nil {
		return payslip.ViewModel{}, err
	}
	period, err := s.payrollRepo.GetPeriodByID(ctx, calc.PayrollPeriodID, companyID)
	if err != nil {
		return payslip.ViewModel{}, err
	}
	return s.viewModel(ctx, calc, period)
}

// ========== READ ==========

func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return toPayslipResponse(p), nil
}

func (s *PayslipServiceImpl) ListPayslips(ctx context.Context, employeeID string, year *int) ([]payslip.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, err
	}

	payslips, err := s.payslipRepo.ListByEmployee(ctx, employeeID, companyID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, len(payslips))
	for i, p := range payslips {
		responses[i] = toPayslipResponse(p)
	}
	return responses, nil
}

// DownloadPayslip opens the stored document and stamps downloaded_at. The caller closes the reader.
func (s *PayslipServiceImpl) DownloadPayslip(ctx context.Context, id string) (io.ReadCloser, string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	p, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, "", err
	}
	if !p.HasDocument() {
		return nil, "", payslip.ErrDocumentMissing
	}

	rc, err := s.storage.Download(ctx, *p.PDFStoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, "", payslip.ErrDocumentMissing
		}
		return nil, "", err
	}

	if err := s.payslipRepo.MarkDownloaded(ctx, p.ID, companyID); err != nil {
		slog.WarnContext(ctx, "failed to stamp payslip download", "payslip_id", p.ID, "error", err)
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", p.PeriodStartDate.Format(dateLayout), p.PeriodEndDate.Format(dateLayout))
	return rc, filename, nil
}

func toPayslipResponse(p payslip.Payslip) payslip.PayslipResponse {
	return payslip.PayslipResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		CompanyID:            p.CompanyID,
		PayrollPeriodID:      p.PayrollPeriodID,
		PayrollCalculationID: p.PayrollCalculationID,
		PeriodStartDate:      p.PeriodStartDate.Format(dateLayout),
		PeriodEndDate:        p.PeriodEndDate.Format(dateLayout),
		PaymentDate:          p.PaymentDate.Format(dateLayout),
		PDFURL:               p.PDFURL,
		PDFStoragePath:       p.PDFStoragePath,
		RenderError:          p.RenderError,
		GeneratedAt:          p.GeneratedAt,
		GeneratedBy:          p.GeneratedBy,
		DownloadedAt:         p.DownloadedAt,
	}
}
