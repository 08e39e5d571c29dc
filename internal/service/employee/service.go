package employee

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffly/hr-backend-go/internal/domain/employee"
)

type service struct {
	repo employee.EmployeeRepository
}

func NewEmployeeService(repo employee.EmployeeRepository) employee.Service {
	return &service{repo: repo}
}

// codePart extracts up to n letters from s, uppercased, padding with X when
// the source runs short.
func codePart(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= n {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	for b.Len() < n {
		b.WriteByte('X')
	}
	return b.String()
}

// generateCode builds an employee code from the role and name, e.g.
// "Developer" + "John Doe" -> "DEV1042JOH".
func generateCode(role, name string) string {
	return fmt.Sprintf("%s%04d%s", codePart(role, 3), rand.Intn(10000), codePart(name, 3))
}

func (s *service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if err != employee.ErrEmployeeNotFound {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	entitlements := req.Entitlements
	if len(entitlements) == 0 {
		entitlements = employee.DefaultEntitlements()
	}

	created, err := s.repo.Create(ctx, employee.Employee{
		EmployeeCode: generateCode(req.Role, req.Name),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Type:         req.Type,
		IsAdmin:      req.IsAdmin,
		Entitlements: entitlements,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

func (s *service) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *service) List(ctx context.Context, search string) ([]employee.EmployeeResponse, error) {
	employees, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.Type != nil {
		emp.Type = *req.Type
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		emp.PasswordHash = string(hash)
	}
	if req.DeviceTokens != nil {
		emp.DeviceTokens = *req.DeviceTokens
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		Role:         e.Role,
		Type:         e.Type,
		IsAdmin:      e.IsAdmin,
		Entitlements: e.Entitlements,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
