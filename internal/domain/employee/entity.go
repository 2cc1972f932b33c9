package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	Email            *string
	JobTitle         *string
	Address          *string
	BankAccountIBAN  *string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus

	// Payroll attributes
	HourlyRate                     *decimal.Decimal
	TaxTable                       TaxTable
	TaxCredit                      bool
	PensionContributionPct         decimal.Decimal
	PensionEmployerContributionPct decimal.Decimal
	TravelAllowancePerKm           decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// TaxTable selects the wage tax table ("witte" or "groene" tabel).
type TaxTable string

const (
	TaxTableWhite TaxTable = "white"
	TaxTableGreen TaxTable = "green"
)

func (t TaxTable) IsValid() bool {
	return t == TaxTableWhite || t == TaxTableGreen
}
