package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

// ValidMonth reports whether name is a full English month name.
func ValidMonth(name string) bool {
	_, err := time.Parse("January", name)
	return err == nil
}

type GeneratePayrollRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowances  Allowances      `json:"allowances"`
	Deductions  Deductions      `json:"deductions"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !ValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a full month name, e.g. June"})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "basic_salary must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollRequest is the allow-listed correction payload. Only the
// monetary inputs can change; derived totals are recomputed server-side.
type UpdatePayrollRequest struct {
	ID          string           `json:"-"`
	BasicSalary *decimal.Decimal `json:"basic_salary,omitempty"`
	Allowances  *Allowances      `json:"allowances,omitempty"`
	Deductions  *Deductions      `json:"deductions,omitempty"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "basic_salary must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	EmployeeCode      *string    `json:"employee_code,omitempty"`
	Month             string     `json:"month"`
	Year              int        `json:"year"`
	BasicSalary       string     `json:"basic_salary"`
	Allowances        Allowances `json:"allowances"`
	Deductions        Deductions `json:"deductions"`
	PresentDays       int        `json:"present_days"`
	ApprovedLeaveDays int        `json:"approved_leave_days"`
	TotalWorkingDays  int        `json:"total_working_days"`
	GrossSalary       string     `json:"gross_salary"`
	NetPay            string     `json:"net_pay"`
	Status            Status     `json:"status"`
	ApprovedBy        *string    `json:"approved_by,omitempty"`
	IsLocked          bool       `json:"is_locked"`
	SalarySlipURL     *string    `json:"salary_slip_url,omitempty"`
	ProcessedAt       time.Time  `json:"processed_at"`
}

// ToResponse maps the entity to its API shape. Monetary fields are rendered
// as fixed-point strings.
func ToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:                p.ID,
		EmployeeID:        p.EmployeeID,
		EmployeeName:      p.EmployeeName,
		EmployeeCode:      p.EmployeeCode,
		Month:             p.Month,
		Year:              p.Year,
		BasicSalary:       p.BasicSalary.StringFixed(2),
		Allowances:        p.Allowances,
		Deductions:        p.Deductions,
		PresentDays:       p.PresentDays,
		ApprovedLeaveDays: p.ApprovedLeaveDays,
		TotalWorkingDays:  p.TotalWorkingDays,
		GrossSalary:       p.GrossSalary.StringFixed(2),
		NetPay:            p.NetPay.StringFixed(2),
		Status:            p.Status,
		ApprovedBy:        p.ApprovedBy,
		IsLocked:          p.IsLocked,
		SalarySlipURL:     p.SalarySlipURL,
		ProcessedAt:       p.ProcessedAt,
	}
}
