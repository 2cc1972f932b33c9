package payslip

import (
	"context"
	"io"
)

// Renderer turns a view model into a printable document.
type Renderer interface {
	Render(vm ViewModel) ([]byte, error)
	ContentType() string
}

type PayslipService interface {
	GeneratePayslip(ctx context.Context, calculationID string) (PayslipResponse, error)
	RegeneratePayslip(ctx context.Context, calculationID string) (PayslipResponse, error)
	GenerateForPeriod(ctx context.Context, periodID string) (GenerateResult, error)
	GetViewModel(ctx context.Context, calculationID string) (ViewModel, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, employeeID string, year *int) ([]PayslipResponse, error)
	DownloadPayslip(ctx context.Context, id string) (io.ReadCloser, string, error)

	RetryFailedRenders(ctx context.Context, limit int) (int, error)
}
