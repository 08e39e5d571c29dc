package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

type fakeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: make(map[string]employee.Employee)}
}

func (r *fakeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range r.employees {
		if existing.Email == emp.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	r.nextID++
	emp.ID = fmt.Sprintf("emp-%d", r.nextID)
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeRepo) List(ctx context.Context, search string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func (r *fakeRepo) Update(ctx context.Context, emp employee.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeRepo) UpdateEntitlements(ctx context.Context, id string, entitlements employee.Entitlements) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Entitlements = entitlements
	r.employees[id] = emp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *fakeRepo) GetAdmins(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.IsAdmin {
			out = append(out, emp)
		}
	}
	return out, nil
}

func createRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:     "John Doe",
		Email:    "john@staffly.dev",
		Password: "s3cret-pass",
		Role:     "Developer",
		Type:     "Permanent",
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEmployeeService(repo)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, validator.IsValidEmployeeCode(resp.EmployeeCode), "unexpected code %q", resp.EmployeeCode)
	assert.Equal(t, "DEV", resp.EmployeeCode[:3])
	assert.Equal(t, "JOH", resp.EmployeeCode[7:])

	// Default buckets are assigned when the request carries none.
	assert.Equal(t, employee.DefaultEntitlements(), resp.Entitlements)

	// The stored hash verifies against the raw password.
	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateKeepsProvidedEntitlements(t *testing.T) {
	svc := NewEmployeeService(newFakeRepo())

	req := createRequest()
	req.Entitlements = employee.Entitlements{"casualLeave": {Total: 5}}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.Entitlements, resp.Entitlements)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewEmployeeService(newFakeRepo())

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreateValidation(t *testing.T) {
	svc := NewEmployeeService(newFakeRepo())

	req := createRequest()
	req.Email = "not-an-email"
	req.Password = "short"

	_, err := svc.Create(context.Background(), req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEmployeeService(repo)

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	name := "John A. Doe"
	role := "Staff Engineer"
	resp, err := svc.Update(context.Background(), employee.UpdateEmployeeRequest{
		ID:   created.ID,
		Name: &name,
		Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)
	assert.Equal(t, role, resp.Role)

	// The code assigned at hire does not change with the role.
	assert.Equal(t, created.EmployeeCode, resp.EmployeeCode)
}

func TestDelete(t *testing.T) {
	svc := NewEmployeeService(newFakeRepo())

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerateCodePadding(t *testing.T) {
	code := generateCode("QA", "Al")
	assert.True(t, validator.IsValidEmployeeCode(code), "unexpected code %q", code)
	assert.Equal(t, "QAX", code[:3])
	assert.Equal(t, "ALX", code[7:])
}
