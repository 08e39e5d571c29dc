package payroll

import "errors"

// Payroll domain errors
var (
	ErrPayrollNotFound = errors.New("payroll record not found")
	ErrPayrollExists   = errors.New("payroll already exists for this month")
	ErrPayrollLocked   = errors.New("payroll record is locked")
	ErrSlipNotReady    = errors.New("salary slip has not been generated")
	ErrInvalidMonth    = errors.New("invalid month name")
)
