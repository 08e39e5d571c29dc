package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusProcessed Status = "Processed"
	StatusApproved  Status = "Approved"
)

// Allowances is the earning block of a payroll row. Stored as JSONB.
type Allowances struct {
	Medical   decimal.Decimal `json:"medical"`
	Transport decimal.Decimal `json:"transport"`
	Others    decimal.Decimal `json:"others"`
}

// Sum totals the three allowance fields.
func (a Allowances) Sum() decimal.Decimal {
	return a.Medical.Add(a.Transport).Add(a.Others)
}

// Deductions is the deduction block of a payroll row. Stored as JSONB.
type Deductions struct {
	PF            decimal.Decimal `json:"pf"`
	Loan          decimal.Decimal `json:"loan"`
	AdvanceSalary decimal.Decimal `json:"advance_salary"`
	Tax           decimal.Decimal `json:"tax"`
	Others        decimal.Decimal `json:"others"`
}

// Sum totals the five deduction fields.
func (d Deductions) Sum() decimal.Decimal {
	return d.PF.Add(d.Loan).Add(d.AdvanceSalary).Add(d.Tax).Add(d.Others)
}

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

func (a Allowances) Value() (driver.Value, error)  { return jsonbValue(a) }
func (a *Allowances) Scan(value interface{}) error { return jsonbScan(a, value) }

func (d Deductions) Value() (driver.Value, error)  { return jsonbValue(d) }
func (d *Deductions) Scan(value interface{}) error { return jsonbScan(d, value) }

// Payroll is one employee's pay for one (month, year). The pair is unique
// per employee.
type Payroll struct {
	ID                string
	EmployeeID        string
	Month             string // e.g. "June"
	Year              int
	BasicSalary       decimal.Decimal
	Allowances        Allowances
	Deductions        Deductions
	PresentDays       int
	ApprovedLeaveDays int
	TotalWorkingDays  int
	GrossSalary       decimal.Decimal
	NetPay            decimal.Decimal
	Status            Status
	ApprovedBy        *string
	IsLocked          bool
	SalarySlipURL     *string
	ProcessedAt       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Recompute derives gross salary and net pay from the current basic salary,
// allowances and deductions.
func (p *Payroll) Recompute() {
	p.GrossSalary = p.BasicSalary.Add(p.Allowances.Sum())
	p.NetPay = p.GrossSalary.Sub(p.Deductions.Sum())
}
