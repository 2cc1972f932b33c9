package leave

// LeaveQuota is an employee's yearly entitlement for one leave type, in hours.
type LeaveQuota struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	OpeningBalance  *float64
	EarnedQuota     *float64
	RolloverQuota   *float64
	AdjustmentQuota *float64

	UsedQuota      *float64
	PendingQuota   *float64
	AvailableQuota *float64 // generated column

	LeaveTypeName string
}

// Entitled is the sum of every source of quota for the year.
func (q LeaveQuota) Entitled() float64 {
	return deref(q.OpeningBalance) + deref(q.EarnedQuota) + deref(q.RolloverQuota) + deref(q.AdjustmentQuota)
}

func (q LeaveQuota) Used() float64 {
	return deref(q.UsedQuota)
}

func (q LeaveQuota) Pending() float64 {
	return deref(q.PendingQuota)
}

// Available prefers the stored computed column and falls back to entitled - used - pending.
func (q LeaveQuota) Available() float64 {
	if q.AvailableQuota != nil {
		return *q.AvailableQuota
	}
	return q.Entitled() - q.Used() - q.Pending()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
