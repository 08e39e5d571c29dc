package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
	StatusOnLeave Status = "On Leave"
)

// ValidStatus reports whether s is one of the known attendance statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay, StatusOnLeave:
		return true
	}
	return false
}

type CheckInStatus string

const (
	CheckInPending    CheckInStatus = "Pending"
	CheckInCheckedIn  CheckInStatus = "CheckedIn"
	CheckInOnBreak    CheckInStatus = "OnBreak"
	CheckInCheckedOut CheckInStatus = "CheckedOut"
	CheckInOnLeave    CheckInStatus = "On Leave"
)

// GeoPoint is a check-in/out location.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CheckEvent is a timestamped check-in or check-out with its location.
type CheckEvent struct {
	Time     time.Time `json:"time"`
	Location GeoPoint  `json:"location"`
}

// BreakSpan records the current day's break. EndTime is nil while the break
// is open.
type BreakSpan struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// LeaveInfo links an attendance day to the approved leave that covers it.
type LeaveInfo struct {
	LeaveID   string `json:"leave_id"`
	LeaveType string `json:"leave_type"`
}

// EmployeeSnapshot is the employee identity captured when the record is
// created. It is a point-in-time snapshot and is intentionally not kept in
// sync with later employee edits.
type EmployeeSnapshot struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Type         string `json:"type"`
}

// Attendance is one employee's record for one calendar day (UTC midnight).
type Attendance struct {
	ID            string
	Employee      EmployeeSnapshot
	Date          time.Time // UTC midnight
	Status        Status
	CheckInStatus CheckInStatus
	CheckIn       *CheckEvent
	CheckOut      *CheckEvent
	Break         *BreakSpan
	LeaveInfo     *LeaveInfo
	Locked        bool
	Reason        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DayKey truncates t to UTC midnight, the bucketing convention for all
// attendance records and queries.
func DayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// jsonbValue marshals v for a JSONB column, mapping nil pointers to SQL NULL.
func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan jsonb column: invalid type")
	}
	return json.Unmarshal(bytes, dst)
}

func (e EmployeeSnapshot) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *EmployeeSnapshot) Scan(value interface{}) error {
	return jsonbScan(e, value)
}

func (c CheckEvent) Value() (driver.Value, error)  { return jsonbValue(c) }
func (c *CheckEvent) Scan(value interface{}) error { return jsonbScan(c, value) }

func (b BreakSpan) Value() (driver.Value, error)  { return jsonbValue(b) }
func (b *BreakSpan) Scan(value interface{}) error { return jsonbScan(b, value) }

func (l LeaveInfo) Value() (driver.Value, error)  { return jsonbValue(l) }
func (l *LeaveInfo) Scan(value interface{}) error { return jsonbScan(l, value) }

// CompanyTiming is the singleton work-day configuration used to classify
// Present vs Late.
type CompanyTiming struct {
	StartTime        string // "09:00"
	EndTime          string // "18:00"
	LateAfterMinutes int
	UpdatedAt        time.Time
}

// LateThreshold builds the instant after which a check-in on the given day
// counts as Late: day@startTime plus the grace period, in UTC.
func (c CompanyTiming) LateThreshold(day time.Time) (time.Time, error) {
	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	day = DayKey(day)
	threshold := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
	return threshold.Add(time.Duration(c.LateAfterMinutes) * time.Minute), nil
}
