package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/employee"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testUserID    = "user-1"
)

type serviceFixture struct {
	svc        *PayrollServiceImpl
	repo       *memoryPayrollRepo
	employees  *memoryEmployeeRepo
	timesheets *memoryTimesheetRepo
	payslips   *stubPayslipService
	publisher  *recordingPublisher
	ctx        context.Context
}

func newServiceFixture(t *testing.T, opts Options) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		repo:       newMemoryPayrollRepo(),
		employees:  &memoryEmployeeRepo{},
		timesheets: newMemoryTimesheetRepo(),
		payslips:   &stubPayslipService{},
		publisher:  &recordingPublisher{},
		ctx:        ctxWithClaims(testCompanyID, testUserID),
	}

	svc := NewPayrollService(
		passthroughTx{},
		f.repo,
		f.employees,
		f.timesheets,
		NewCalculator(DefaultRateSchedule(), DefaultTaxTable()),
		f.payslips,
		f.publisher,
		opts,
	)
	f.svc = svc.(*PayrollServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }

	f.employees.hasActivity = func(employeeID, periodID string) bool {
		return f.timesheets.hasHours(employeeID) || f.repo.hasCalculation(employeeID, periodID)
	}

	period := testPeriod()
	f.repo.addPeriod(period)
	return f
}

func (f *serviceFixture) addEmployee(id string, regularHours string) {
	emp := testEmployee()
	emp.ID = id
	emp.EmployeeCode = "CODE-" + id
	emp.EmploymentStatus = employee.EmploymentStatusActive
	f.employees.employees = append(f.employees.employees, emp)
	if regularHours != "" {
		f.timesheets.set(id, approvedTimesheet("ts-"+id, entry("2024-01-15", regularHours, "0")))
	}
}

// ===== CALCULATION RUN =====

func TestPayrollService_RunCalculation_TotalsAndStatus(t *testing.T) {
	f := newServiceFixture(t, Options{Workers: 2})
	f.addEmployee("emp-1", "40")
	f.addEmployee("emp-2", "20")
	f.addEmployee("emp-3", "") // no hours

	// Act
	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusCalculated), summary.Status)
	assert.Equal(t, 2, summary.Calculated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, 2, summary.EmployeeCount)
	assertMoney(t, "900.00", summary.TotalGross)
	assert.Equal(t, DefaultTaxTableVersion, summary.TaxTableVersion)

	calcs, err := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)
	require.NoError(t, err)
	require.Len(t, calcs, 2)

	gross, net, tax := calcs[0].GrossPay.Add(calcs[1].GrossPay), calcs[0].NetPay.Add(calcs[1].NetPay), calcs[0].TotalTax().Add(calcs[1].TotalTax())
	assert.True(t, gross.Equal(summary.TotalGross))
	assert.True(t, net.Equal(summary.TotalNet))
	assert.True(t, tax.Equal(summary.TotalTax))

	for _, c := range calcs {
		assert.Equal(t, payroll.CalculationStatusCalculated, c.Status)
		require.NotNil(t, c.CalculatedBy)
		assert.Equal(t, testUserID, *c.CalculatedBy)
	}
	assert.Contains(t, f.publisher.types(), events.TypePeriodCalculated)
}

func TestPayrollService_RunCalculation_IsIdempotent(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")

	first, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)
	calcsBefore, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)

	// Act
	second, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	calcsAfter, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)
	require.Len(t, calcsAfter, 1)
	assert.Equal(t, calcsBefore[0].ID, calcsAfter[0].ID)
	assert.True(t, first.TotalGross.Equal(second.TotalGross))
	assert.True(t, first.TotalNet.Equal(second.TotalNet))
	assert.True(t, calcsBefore[0].YTDGross.Equal(calcsAfter[0].YTDGross), "a re-run must not count itself in YTD")
}

func TestPayrollService_RunCalculation_RemovesCalculationWhenHoursWithdrawn(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")

	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)
	require.Equal(t, 1, f.repo.calculationCount())

	f.timesheets.set("emp-1")

	// Act
	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, f.repo.calculationCount())
	assert.Equal(t, 0, summary.EmployeeCount)
	assert.True(t, summary.TotalGross.IsZero())
}

func TestPayrollService_RunCalculation_EmployeeFailureIsIsolated(t *testing.T) {
	f := newServiceFixture(t, Options{Workers: 3})
	f.addEmployee("emp-1", "40")
	f.addEmployee("emp-2", "40")
	f.addEmployee("emp-3", "40")
	f.timesheets.errFor["emp-2"] = errBoom
	f.repo.upsertErr["emp-3"] = errBoom

	// Act
	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Calculated)
	require.Len(t, summary.Failures, 2)
	failed := []string{summary.Failures[0].EmployeeID, summary.Failures[1].EmployeeID}
	assert.ElementsMatch(t, []string{"emp-2", "emp-3"}, failed)
	assert.Equal(t, 1, summary.EmployeeCount)
}

func TestPayrollService_RunCalculation_MalformedTimesheetIsReported(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "")
	bad := entry("2024-01-15", "-8", "0")
	f.timesheets.set("emp-1", approvedTimesheet("ts-bad", bad))

	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	require.NoError(t, err)
	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0].Error, payroll.ErrMalformedTimesheet.Error())
}

func TestPayrollService_RunCalculation_LockedPeriod(t *testing.T) {
	for _, status := range []payroll.PeriodStatus{payroll.PeriodStatusApproved, payroll.PeriodStatusPaid, payroll.PeriodStatusSuperseded} {
		t.Run(string(status), func(t *testing.T) {
			f := newServiceFixture(t, Options{})
			period := testPeriod()
			period.Status = status
			f.repo.addPeriod(period)

			_, err := f.svc.RunCalculation(f.ctx, "period-1")

			assert.ErrorIs(t, err, payroll.ErrPeriodLocked)
		})
	}
}

func TestPayrollService_RunCalculation_YearToDateCarriesEarlierPeriods(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")

	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)
	january, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)

	february := payroll.PayrollPeriod{
		ID:          "period-2",
		CompanyID:   testCompanyID,
		Name:        "February",
		PeriodType:  payroll.PeriodTypeMonthly,
		StartDate:   day("2024-02-01"),
		EndDate:     day("2024-02-29"),
		PaymentDate: day("2024-03-05"),
		Status:      payroll.PeriodStatusDraft,
	}
	f.repo.addPeriod(february)
	f.timesheets.set("emp-1", approvedTimesheet("ts-feb", entry("2024-02-12", "40", "0")))

	// Act
	_, err = f.svc.RunCalculation(f.ctx, "period-2")

	// Assert
	require.NoError(t, err)
	feb, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-2", testCompanyID)
	require.Len(t, feb, 1)
	assert.True(t, january[0].GrossPay.Add(feb[0].GrossPay).Equal(feb[0].YTDGross))
	assert.True(t, january[0].NetPay.Add(feb[0].NetPay).Equal(feb[0].YTDNet))
}

func TestPayrollService_RunCalculation_YearToDateFollowsPeriodEndYear(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "")
	december := payroll.PayrollPeriod{
		ID:          "period-dec",
		CompanyID:   testCompanyID,
		Name:        "December weeks 49-50",
		PeriodType:  payroll.PeriodTypeWeekly,
		StartDate:   day("2023-12-04"),
		EndDate:     day("2023-12-17"),
		PaymentDate: day("2023-12-20"),
		Status:      payroll.PeriodStatusDraft,
	}
	turnOfYear := payroll.PayrollPeriod{
		ID:          "period-newyear",
		CompanyID:   testCompanyID,
		Name:        "Weeks 52-1",
		PeriodType:  payroll.PeriodTypeWeekly,
		StartDate:   day("2023-12-25"),
		EndDate:     day("2024-01-07"),
		PaymentDate: day("2024-01-10"),
		Status:      payroll.PeriodStatusDraft,
	}
	f.repo.addPeriod(december)
	f.repo.addPeriod(turnOfYear)

	f.timesheets.set("emp-1", approvedTimesheet("ts-dec", entry("2023-12-11", "40", "0")))
	_, err := f.svc.RunCalculation(f.ctx, "period-dec")
	require.NoError(t, err)

	f.timesheets.set("emp-1", approvedTimesheet("ts-newyear", entry("2024-01-03", "40", "0")))

	// Act
	_, err = f.svc.RunCalculation(f.ctx, "period-newyear")

	// Assert
	require.NoError(t, err)
	calcs, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-newyear", testCompanyID)
	require.Len(t, calcs, 1)
	assert.True(t, calcs[0].GrossPay.Equal(calcs[0].YTDGross), "a period paid in 2024 starts a fresh year")

	year := 2024
	listed, err := f.svc.ListCalculationsByEmployee(f.ctx, "emp-1", &year)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "period-newyear", listed[0].PayrollPeriodID)
}

func TestPayrollService_RunCalculation_IncludesLeaverWithHours(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	leaver := testEmployee()
	leaver.ID = "emp-2"
	leaver.EmployeeCode = "CODE-emp-2"
	leaver.EmploymentStatus = employee.EmploymentStatusTerminated
	f.employees.employees = append(f.employees.employees, leaver)
	f.timesheets.set("emp-2", approvedTimesheet("ts-emp-2", entry("2024-01-08", "16", "0")))
	idle := testEmployee()
	idle.ID = "emp-3"
	idle.EmploymentStatus = employee.EmploymentStatusResigned
	f.employees.employees = append(f.employees.employees, idle)

	// Act
	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Calculated)
	assert.Equal(t, 0, summary.Skipped)
	calcs, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)
	require.Len(t, calcs, 2)
	assert.Equal(t, "emp-2", calcs[1].EmployeeID)
	assertMoney(t, "240.00", calcs[1].GrossPay)
}

func TestPayrollService_RunCalculation_RefreshesLeaverWhoseHoursWereWithdrawn(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	f.employees.employees[0].EmploymentStatus = employee.EmploymentStatusTerminated
	f.timesheets.set("emp-1")

	// Act
	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, f.repo.calculationCount(), "a stale row for a leaver must not survive a re-run")
}

func TestPayrollService_RunCalculation_ApprovalDuringRecalculationWins(t *testing.T) {
	f := newServiceFixture(t, Options{Workers: 1})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	var approveErr error
	var once sync.Once
	f.timesheets.onGet = func(string) {
		once.Do(func() { _, approveErr = f.svc.ApprovePeriod(f.ctx, "period-1") })
	}
	f.timesheets.set("emp-1", approvedTimesheet("ts-emp-1", entry("2024-01-15", "48", "0")))

	// Act
	_, err = f.svc.RunCalculation(f.ctx, "period-1")

	// Assert
	require.NoError(t, approveErr)
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	period, err := f.repo.GetPeriodByID(context.Background(), "period-1", testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodStatusApproved, period.Status)

	calcs, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)
	require.Len(t, calcs, 1)
	assert.Equal(t, payroll.CalculationStatusApproved, calcs[0].Status)
	assertMoney(t, "600.00", calcs[0].GrossPay)
}

func TestPayrollService_RunCalculation_LockedRowsAbortTheRun(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)
	require.NoError(t, f.repo.UpdateCalculationStatusByPeriod(context.Background(), "period-1", testCompanyID, payroll.CalculationStatusApproved))

	_, err = f.svc.RunCalculation(f.ctx, "period-1")

	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)
	period, _ := f.repo.GetPeriodByID(context.Background(), "period-1", testCompanyID)
	assert.Equal(t, payroll.PeriodStatusCalculated, period.Status)
}

func TestPayrollService_RunCalculation_GeneratesPayslipsWhenEnabled(t *testing.T) {
	f := newServiceFixture(t, Options{AutoGeneratePayslips: true})
	f.addEmployee("emp-1", "40")
	f.payslips.result = payslip.GenerateResult{Generated: 1}

	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	require.NoError(t, err)
	assert.Equal(t, 1, f.payslips.calls)
	assert.Equal(t, 1, summary.PayslipsGenerated)
}

func TestPayrollService_RunCalculation_PayslipFailureDoesNotFailRun(t *testing.T) {
	f := newServiceFixture(t, Options{AutoGeneratePayslips: true})
	f.addEmployee("emp-1", "40")
	f.payslips.err = errBoom

	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	require.NoError(t, err)
	assert.Equal(t, 0, summary.PayslipsGenerated)
	assert.Equal(t, string(payroll.PeriodStatusCalculated), summary.Status)
}

func TestPayrollService_RunCalculation_EmployeeListFailure(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.employees.listErr = errBoom

	_, err := f.svc.RunCalculation(f.ctx, "period-1")

	assert.ErrorIs(t, err, errBoom)
}

func TestPayrollService_RunCalculation_MissingCompanyClaim(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.RunCalculation(ctxWithClaims("", testUserID), "period-1")

	assert.ErrorIs(t, err, payroll.ErrMissingCompanyContext)
}

func TestPayrollService_RunCalculation_OtherCompanyPeriodNotFound(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.RunCalculation(ctxWithClaims("company-2", testUserID), "period-1")

	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

// ===== STATUS TRANSITIONS =====

func TestPayrollService_Transitions_HappyPath(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	approved, err := f.svc.ApprovePeriod(f.ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testUserID, *approved.ApprovedBy)

	_, err = f.svc.RunCalculation(f.ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	paid, err := f.svc.MarkPaid(f.ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusPaid), paid.Status)
	assert.NotNil(t, paid.PaidAt)

	calcs, _ := f.repo.ListCalculationsByPeriod(context.Background(), "period-1", testCompanyID)
	for _, c := range calcs {
		assert.Equal(t, payroll.CalculationStatusPaid, c.Status)
	}
	assert.Subset(t, f.publisher.types(), []string{events.TypePeriodApproved, events.TypePeriodPaid})
}

func TestPayrollService_Transitions_Invalid(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.ApprovePeriod(f.ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	_, err = f.svc.MarkPaid(f.ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	_, err = f.svc.SupersedePeriod(f.ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_ApprovePeriod_WithoutCalculations(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	_, err = f.svc.ApprovePeriod(f.ctx, "period-1")

	assert.ErrorIs(t, err, payroll.ErrNoCalculations)
}

func TestPayrollService_SupersedePeriod_FreesRange(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	superseded, err := f.svc.SupersedePeriod(f.ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusSuperseded), superseded.Status)

	// Act
	replacement, err := f.svc.CreatePeriod(f.ctx, payroll.CreatePeriodRequest{
		PeriodType:  "monthly",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
		PaymentDate: "2024-02-05",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusDraft), replacement.Status)
}

// ===== PERIODS =====

func TestPayrollService_CreatePeriod(t *testing.T) {
	f := newServiceFixture(t, Options{})
	name := "March 2024"

	created, err := f.svc.CreatePeriod(f.ctx, payroll.CreatePeriodRequest{
		Name:        &name,
		PeriodType:  "monthly",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-31",
		PaymentDate: "2024-04-05",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "March 2024", created.Name)
	assert.Equal(t, "2024-03-01", created.StartDate)
	assert.Equal(t, string(payroll.PeriodStatusDraft), created.Status)
	assert.Equal(t, testCompanyID, created.CompanyID)
}

func TestPayrollService_CreatePeriod_Overlap(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.CreatePeriod(f.ctx, payroll.CreatePeriodRequest{
		PeriodType:  "weekly",
		StartDate:   "2024-01-29",
		EndDate:     "2024-02-04",
		PaymentDate: "2024-02-09",
	})

	assert.ErrorIs(t, err, payroll.ErrPeriodOverlaps)
}

func TestPayrollService_CreatePeriod_Validation(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.CreatePeriod(f.ctx, payroll.CreatePeriodRequest{
		PeriodType:  "daily",
		StartDate:   "2024-03-31",
		EndDate:     "2024-03-01",
		PaymentDate: "not-a-date",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "period_type")
	assert.Contains(t, err.Error(), "end_date")
	assert.Contains(t, err.Error(), "payment_date")
}

func TestPayrollService_DeletePeriod(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	err = f.svc.DeletePeriod(f.ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrCannotDeletePeriod)

	draft, err := f.svc.CreatePeriod(f.ctx, payroll.CreatePeriodRequest{
		PeriodType:  "monthly",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-31",
		PaymentDate: "2024-06-05",
	})
	require.NoError(t, err)

	assert.NoError(t, f.svc.DeletePeriod(f.ctx, draft.ID))
	_, err = f.svc.GetPeriod(f.ctx, draft.ID)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestPayrollService_ListPeriods_Pagination(t *testing.T) {
	f := newServiceFixture(t, Options{})

	resp, err := f.svc.ListPeriods(f.ctx, payroll.PeriodFilter{Page: 0, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Periods, 1)
}

// ===== SETTINGS =====

func TestPayrollService_RateSchedule_DefaultsAndUpdate(t *testing.T) {
	f := newServiceFixture(t, Options{})

	current, err := f.svc.GetRateSchedule(f.ctx)
	require.NoError(t, err)
	assert.True(t, current.IsDefault)
	assertMoney(t, "15", current.BaseRate)

	updated, err := f.svc.UpdateRateSchedule(f.ctx, payroll.UpdateRateScheduleRequest{
		BaseRate:        decPtr("17.50"),
		NightMultiplier: decPtr("160"),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assertMoney(t, "17.50", updated.BaseRate)
	assert.True(t, dec("160").Equal(updated.NightMultiplier))
	assert.True(t, dec("150").Equal(updated.OvertimeMultiplier))

	_, err = f.svc.UpdateRateSchedule(f.ctx, payroll.UpdateRateScheduleRequest{OvertimeMultiplier: decPtr("90")})
	assert.Error(t, err)
}

func TestPayrollService_RunCalculation_UsesCompanySchedule(t *testing.T) {
	f := newServiceFixture(t, Options{})
	emp := testEmployee()
	emp.HourlyRate = nil
	f.employees.employees = []employee.Employee{emp}
	f.timesheets.set(emp.ID, approvedTimesheet("ts-1", entry("2024-01-15", "10", "0")))
	_, err := f.svc.UpdateRateSchedule(f.ctx, payroll.UpdateRateScheduleRequest{BaseRate: decPtr("20")})
	require.NoError(t, err)

	summary, err := f.svc.RunCalculation(f.ctx, "period-1")

	require.NoError(t, err)
	assertMoney(t, "200.00", summary.TotalGross)
}

func TestPayrollService_GetTaxTable(t *testing.T) {
	f := newServiceFixture(t, Options{})

	table := f.svc.GetTaxTable(f.ctx)

	assert.Equal(t, DefaultTaxTableVersion, table.Version)
	assert.Len(t, table.EmployeeContributions, 4)
}

// ===== CALCULATIONS =====

func TestPayrollService_ListCalculationsByEmployee(t *testing.T) {
	f := newServiceFixture(t, Options{})
	f.addEmployee("emp-1", "40")
	_, err := f.svc.RunCalculation(f.ctx, "period-1")
	require.NoError(t, err)

	year := 2024
	calcs, err := f.svc.ListCalculationsByEmployee(f.ctx, "emp-1", &year)
	require.NoError(t, err)
	require.Len(t, calcs, 1)
	assert.Equal(t, "2024-01-01", calcs[0].PeriodStartDate)

	detail, err := f.svc.GetCalculation(f.ctx, calcs[0].ID)
	require.NoError(t, err)
	assert.True(t, detail.GrossPay.Equal(calcs[0].GrossPay))

	_, err = f.svc.ListCalculationsByEmployee(f.ctx, "emp-unknown", nil)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_ListCalculationsByPeriod_UnknownPeriod(t *testing.T) {
	f := newServiceFixture(t, Options{})

	_, err := f.svc.ListCalculationsByPeriod(f.ctx, "missing")

	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

var _ timesheet.TimesheetRepository = (*memoryTimesheetRepo)(nil)
