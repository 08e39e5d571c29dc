package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Entitlement is one leave bucket on the employee record.
type Entitlement struct {
	Total    int `json:"total"`
	Consumed int `json:"consumed"`
}

// Available returns the remaining balance for the bucket.
func (e Entitlement) Available() int {
	return e.Total - e.Consumed
}

// Entitlements maps an entitlement key (casualLeave, sickLeave, ...) to its
// bucket. Stored as a JSONB column.
type Entitlements map[string]Entitlement

// Value implements driver.Valuer for database storage
func (e Entitlements) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner for database retrieval
func (e *Entitlements) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Entitlements: invalid type")
	}

	return json.Unmarshal(bytes, e)
}

// DefaultEntitlements is the bucket set assigned to a new employee when the
// request carries none.
func DefaultEntitlements() Entitlements {
	return Entitlements{
		"casualLeave":    {Total: 10},
		"sickLeave":      {Total: 8},
		"annualLeave":    {Total: 14},
		"maternityLeave": {Total: 90},
		"paternityLeave": {Total: 7},
	}
}

// Employee entity
type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Email        string
	PasswordHash string
	Role         string // designation, e.g. "Engineer"
	Type         string // employment type, e.g. "Permanent"
	IsAdmin      bool
	DeviceTokens []string
	Entitlements Entitlements
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
