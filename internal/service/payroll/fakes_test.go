package payroll

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/domain/payroll"
)

type fakePayrollRepo struct {
	records map[string]payroll.Payroll
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Payroll)}
}

func (r *fakePayrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	if existing, _ := r.GetByEmployeeAndPeriod(ctx, p.EmployeeID, p.Month, p.Year); existing != nil {
		return payroll.Payroll{}, payroll.ErrPayrollExists
	}
	r.nextID++
	p.ID = fmt.Sprintf("pay-%d", r.nextID)
	p.ProcessedAt = time.Now().UTC()
	r.records[p.ID] = p
	return p, nil
}

func (r *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	p, ok := r.records[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (r *fakePayrollRepo) GetByEmployeeAndPeriod(ctx context.Context, employeeID, month string, year int) (*payroll.Payroll, error) {
	for _, p := range r.records {
		if p.EmployeeID == employeeID && p.Month == month && p.Year == year {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakePayrollRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range r.records {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) List(ctx context.Context, search string) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range r.records {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePayrollRepo) Update(ctx context.Context, p payroll.Payroll) error {
	if _, ok := r.records[p.ID]; !ok {
		return payroll.ErrPayrollNotFound
	}
	r.records[p.ID] = p
	return nil
}

func (r *fakePayrollRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(r.records, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (r *fakeEmployeeRepo) put(e employee.Employee) {
	r.employees[e.ID] = e
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context, search string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeEmployeeRepo) UpdateEntitlements(ctx context.Context, id string, entitlements employee.Entitlements) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Entitlements = entitlements
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) GetAdmins(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.IsAdmin {
			out = append(out, emp)
		}
	}
	return out, nil
}

// fakeAttendanceRepo backs the present-day count and records month locks;
// the remaining methods are unused by payroll.
type fakeAttendanceRepo struct {
	presentDays  map[string]int
	lockedMonths []string
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, search string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) CountByStatusOnDate(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) CountByStatusInMonth(ctx context.Context, year int, month time.Month, status attendance.Status) (int, error) {
	return 0, nil
}

func (r *fakeAttendanceRepo) CountPresentDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	return r.presentDays[employeeID], nil
}

func (r *fakeAttendanceRepo) LockByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) error {
	r.lockedMonths = append(r.lockedMonths, fmt.Sprintf("%s/%s %d", employeeID, month, year))
	return nil
}

// fakeLeaveRepo only backs the approved-day count used by payroll.
type fakeLeaveRepo struct {
	approvedDays map[string]int
}

func (r *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	return request, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *fakeLeaveRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, search string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) Update(ctx context.Context, request leave.LeaveRequest) error {
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (r *fakeLeaveRepo) FindApprovedOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (*leave.LeaveRequest, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) CountApprovedDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	return r.approvedDays[employeeID], nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (n *fakeNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, req)
	return nil
}

func (n *fakeNotifier) QueueBulk(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, reqs...)
	return nil
}

func (n *fakeNotifier) List(ctx context.Context, recipientID string, limit int) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (n *fakeNotifier) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}

func (n *fakeNotifier) MarkRead(ctx context.Context, id string) error { return nil }

func (n *fakeNotifier) MarkAllRead(ctx context.Context, recipientID string) error { return nil }

func (n *fakeNotifier) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	return nil, func() {}
}

func (n *fakeNotifier) Stop() {}

type memoryStorage struct {
	files       map[string][]byte
	uploads     int
	failUploads bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	if s.failUploads {
		return "", fmt.Errorf("storage unavailable")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.files[path] = data
	s.uploads++
	return path, nil
}

func (s *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memoryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://files.local/" + path, nil
}

func (s *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}
