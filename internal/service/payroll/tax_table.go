package payroll

import (
	"fmt"
	"os"
	"strings"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultTaxTableVersion identifies the compiled-in rates.
const DefaultTaxTableVersion = "nl-flat-2024.1"

// DefaultTaxTable is a flat approximation of Dutch wage tax and contributions.
// Rates are fractions of gross pay.
func DefaultTaxTable() payroll.TaxTable {
	return payroll.TaxTable{
		Version:         DefaultTaxTableVersion,
		WhiteTableRate:  decimal.NewFromFloat(0.37),
		GreenTableRate:  decimal.NewFromFloat(0.36),
		TaxCreditFactor: decimal.NewFromFloat(0.9),
		EmployeeContributions: []payroll.Contribution{
			{Code: "AOW", Name: "General old age pensions", Rate: decimal.NewFromFloat(0.0125)},
			{Code: "WLZ", Name: "Long-term care", Rate: decimal.NewFromFloat(0.01)},
			{Code: "WW", Name: "Unemployment insurance", Rate: decimal.NewFromFloat(0.004)},
			{Code: "WIA", Name: "Work and income (disability)", Rate: decimal.NewFromFloat(0.001)},
		},
		HealthInsuranceRate:  decimal.NewFromFloat(0.0657),
		UnemploymentRate:     decimal.NewFromFloat(0.0264),
		DisabilityRate:       decimal.NewFromFloat(0.0618),
		HolidayAllowanceRate: decimal.NewFromFloat(0.08),
	}
}

type taxTableFile struct {
	Version   string `yaml:"version"`
	IncomeTax struct {
		White           float64 `yaml:"white_table_rate"`
		Green           float64 `yaml:"green_table_rate"`
		TaxCreditFactor float64 `yaml:"tax_credit_factor"`
	} `yaml:"income_tax"`
	EmployeeContributions []struct {
		Code string  `yaml:"code"`
		Name string  `yaml:"name"`
		Rate float64 `yaml:"rate"`
	} `yaml:"employee_contributions"`
	EmployerContributions struct {
		HealthInsurance float64 `yaml:"health_insurance"`
		Unemployment    float64 `yaml:"unemployment"`
		Disability      float64 `yaml:"disability"`
	} `yaml:"employer_contributions"`
	HolidayAllowanceRate float64 `yaml:"holiday_allowance_rate"`
}

// LoadTaxTable reads a YAML tax table. An empty path yields DefaultTaxTable.
func LoadTaxTable(path string) (payroll.TaxTable, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTaxTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return payroll.TaxTable{}, fmt.Errorf("read tax table %s: %w", path, err)
	}
	return ParseTaxTable(data)
}

// ParseTaxTable decodes and validates a YAML tax table.
func ParseTaxTable(data []byte) (payroll.TaxTable, error) {
	var f taxTableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return payroll.TaxTable{}, fmt.Errorf("%w: %v", payroll.ErrInvalidTaxTable, err)
	}

	if strings.TrimSpace(f.Version) == "" {
		return payroll.TaxTable{}, fmt.Errorf("%w: version is required", payroll.ErrInvalidTaxTable)
	}

	fractions := map[string]float64{
		"income_tax.white_table_rate":             f.IncomeTax.White,
		"income_tax.green_table_rate":             f.IncomeTax.Green,
		"employer_contributions.health_insurance": f.EmployerContributions.HealthInsurance,
		"employer_contributions.unemployment":     f.EmployerContributions.Unemployment,
		"employer_contributions.disability":       f.EmployerContributions.Disability,
		"holiday_allowance_rate":                  f.HolidayAllowanceRate,
	}
	for field, v := range fractions {
		if v < 0 || v > 1 {
			return payroll.TaxTable{}, fmt.Errorf("%w: %s must be between 0 and 1", payroll.ErrInvalidTaxTable, field)
		}
	}
	if f.IncomeTax.TaxCreditFactor <= 0 || f.IncomeTax.TaxCreditFactor > 1 {
		return payroll.TaxTable{}, fmt.Errorf("%w: income_tax.tax_credit_factor must be in (0, 1]", payroll.ErrInvalidTaxTable)
	}

	table := payroll.TaxTable{
		Version:               f.Version,
		WhiteTableRate:        decimal.NewFromFloat(f.IncomeTax.White),
		GreenTableRate:        decimal.NewFromFloat(f.IncomeTax.Green),
		TaxCreditFactor:       decimal.NewFromFloat(f.IncomeTax.TaxCreditFactor),
		EmployeeContributions: make([]payroll.Contribution, 0, len(f.EmployeeContributions)),
		HealthInsuranceRate:   decimal.NewFromFloat(f.EmployerContributions.HealthInsurance),
		UnemploymentRate:      decimal.NewFromFloat(f.EmployerContributions.Unemployment),
		DisabilityRate:        decimal.NewFromFloat(f.EmployerContributions.Disability),
		HolidayAllowanceRate:  decimal.NewFromFloat(f.HolidayAllowanceRate),
	}
	for _, c := range f.EmployeeContributions {
		if c.Code == "" || c.Rate < 0 || c.Rate > 1 {
			return payroll.TaxTable{}, fmt.Errorf("%w: employee contribution %q needs a code and a rate between 0 and 1", payroll.ErrInvalidTaxTable, c.Code)
		}
		table.EmployeeContributions = append(table.EmployeeContributions, payroll.Contribution{
			Code: c.Code,
			Name: c.Name,
			Rate: decimal.NewFromFloat(c.Rate),
		})
	}

	return table, nil
}
