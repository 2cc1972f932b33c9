package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypePeriodCalculated = "payroll.period.calculated"
	TypePeriodApproved   = "payroll.period.approved"
	TypePeriodPaid       = "payroll.period.paid"
	TypePayslipGenerated = "payroll.payslip.generated"
)

// Event is the envelope written to the payroll topic.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEvent(eventType, companyID string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
