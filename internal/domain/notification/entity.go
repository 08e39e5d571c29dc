package notification

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Type string

const (
	TypeLeaveApplied    Type = "leave_applied"
	TypeLeaveApproved   Type = "leave_approved"
	TypeLeaveRejected   Type = "leave_rejected"
	TypePayrollReady    Type = "payroll_ready"
	TypeCheckInLate     Type = "check_in_late"
	TypeCheckInReminder Type = "check_in_reminder"
)

// Data is the free-form payload attached to a notification. Stored as JSONB.
type Data map[string]string

func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(Data{})
	}
	return json.Marshal(d)
}

func (d *Data) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan jsonb column: invalid type")
	}
	return json.Unmarshal(bytes, d)
}

type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        Data
	IsRead      bool
	CreatedAt   time.Time
}
