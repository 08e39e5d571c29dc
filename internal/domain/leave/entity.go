package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ValidStatus reports whether s is one of the known request statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// entitlementKeys is the canonical mapping from the human-readable leave type
// to the entitlement bucket key on the employee record. It is the single
// lookup shared by the leave ledger and the payroll calculator.
var entitlementKeys = map[string]string{
	"Casual Leave":       "casualLeave",
	"Sick Leave":         "sickLeave",
	"Annual Leave":       "annualLeave",
	"Maternity Leave":    "maternityLeave",
	"Paternity Leave":    "paternityLeave",
	"Earned Leave":       "earnedLeave",
	"Unpaid Leave":       "unpaidLeave",
	"Compensatory Leave": "compensatoryLeave",
}

// EntitlementKey resolves a leave type name to its entitlement bucket key.
func EntitlementKey(leaveType string) (string, bool) {
	key, ok := entitlementKeys[leaveType]
	return key, ok
}

// Types returns the known leave type names.
func Types() []string {
	types := make([]string, 0, len(entitlementKeys))
	for name := range entitlementKeys {
		types = append(types, name)
	}
	return types
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ApprovedBy *string
	AppliedAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// Days returns the inclusive calendar day count of the leave span.
func (l *LeaveRequest) Days() int {
	return InclusiveDays(l.StartDate, l.EndDate)
}

// InclusiveDays counts whole calendar days in [start, end], both bounds
// included. A same-day span is 1 day; an inverted span yields <= 0.
func InclusiveDays(start, end time.Time) int {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether [aStart, aEnd] intersects [bStart, bEnd] with
// inclusive bounds on both sides.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
