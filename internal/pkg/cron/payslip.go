package cron

import (
	"context"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
)

// retryBatchSize caps how many payslips one sweep re-renders.
const retryBatchSize = 100

type PayslipJobs struct {
	payslipService payslip.PayslipService
	interval       time.Duration
}

func NewPayslipJobs(payslipService payslip.PayslipService, interval time.Duration) *PayslipJobs {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &PayslipJobs{payslipService: payslipService, interval: interval}
}

func (j *PayslipJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "retry_failed_payslip_renders",
		Interval: j.interval,
		Timeout:  j.interval,
		Fn:       j.RetryFailedRenders,
	})
}

// RetryFailedRenders re-renders payslips whose record exists without a stored document.
func (j *PayslipJobs) RetryFailedRenders(ctx context.Context) error {
	_, err := j.payslipService.RetryFailedRenders(ctx, retryBatchSize)
	return err
}
