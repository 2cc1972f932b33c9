package payroll

import (
	"fmt"
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/timesheet"
)

// AggregateHours sums the entries of approved timesheets dated within [start, end].
// Overlapping timesheets covering the same day are both counted.
func AggregateHours(timesheets []timesheet.Timesheet, start, end time.Time) (payroll.HourBucket, error) {
	var bucket payroll.HourBucket
	window := payroll.PayrollPeriod{StartDate: start, EndDate: end}

	for _, ts := range timesheets {
		if ts.Status != timesheet.StatusApproved {
			continue
		}
		for _, e := range ts.Entries {
			if !window.Contains(e.WorkDate) {
				continue
			}
			if e.RegularHours.IsNegative() || e.OvertimeHours.IsNegative() || e.EveningHours.IsNegative() ||
				e.NightHours.IsNegative() || e.WeekendHours.IsNegative() || e.HolidayHours.IsNegative() ||
				e.TravelKilometers.IsNegative() {
				return payroll.HourBucket{}, fmt.Errorf("%w: timesheet %s on %s", payroll.ErrMalformedTimesheet, ts.ID, e.WorkDate.Format("2006-01-02"))
			}

			bucket.Regular = bucket.Regular.Add(e.RegularHours)
			bucket.Overtime = bucket.Overtime.Add(e.OvertimeHours)
			bucket.Evening = bucket.Evening.Add(e.EveningHours)
			bucket.Night = bucket.Night.Add(e.NightHours)
			bucket.Weekend = bucket.Weekend.Add(e.WeekendHours)
			bucket.Holiday = bucket.Holiday.Add(e.HolidayHours)
			bucket.TravelKm = bucket.TravelKm.Add(e.TravelKilometers)
		}
	}

	return bucket, nil
}
