package employee

import (
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Password     string       `json:"password"`
	Role         string       `json:"role"`
	Type         string       `json:"type"`
	IsAdmin      bool         `json:"is_admin"`
	Entitlements Entitlements `json:"entitlements,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role is required"})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	Role         *string   `json:"role,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Password     *string   `json:"password,omitempty"`
	DeviceTokens *[]string `json:"device_tokens,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be blank"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string       `json:"id"`
	EmployeeCode string       `json:"employee_code"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	Type         string       `json:"type"`
	IsAdmin      bool         `json:"is_admin"`
	Entitlements Entitlements `json:"entitlements"`
	CreatedAt    string       `json:"created_at"`
}
