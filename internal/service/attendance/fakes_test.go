package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/notification"
)

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

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.nextID++
	att.ID = fmt.Sprintf("att-%d", r.nextID)
	att.Date = attendance.DayKey(att.Date)
	r.records[att.ID] = att
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	day := attendance.DayKey(date)
	for _, att := range r.records {
		if att.Employee.EmployeeID == employeeID && att.Date.Equal(day) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	if _, ok := r.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.records[att.ID] = att
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, search string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		out = append(out, att)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountByStatusOnDate(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	day := attendance.DayKey(date)
	counts := make(map[attendance.Status]int)
	for _, att := range r.records {
		if att.Date.Equal(day) {
			counts[att.Status]++
		}
	}
	return counts, nil
}

func (r *fakeAttendanceRepo) CountByStatusInMonth(ctx context.Context, year int, month time.Month, status attendance.Status) (int, error) {
	count := 0
	for _, att := range r.records {
		if att.Date.Year() == year && att.Date.Month() == month && att.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) CountPresentDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	count := 0
	for _, att := range r.records {
		if att.Employee.EmployeeID != employeeID {
			continue
		}
		if att.Date.Year() != year || att.Date.Month() != month {
			continue
		}
		if att.Status == attendance.StatusPresent || att.Status == attendance.StatusLate {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) LockByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) error {
	for id, att := range r.records {
		if att.Employee.EmployeeID == employeeID && att.Date.Year() == year && att.Date.Month() == month {
			att.Locked = true
			r.records[id] = att
		}
	}
	return nil
}

type fakeTimingRepo struct {
	timing *attendance.CompanyTiming
}

func (r *fakeTimingRepo) Get(ctx context.Context) (*attendance.CompanyTiming, error) {
	return r.timing, nil
}

func (r *fakeTimingRepo) Upsert(ctx context.Context, timing attendance.CompanyTiming) (attendance.CompanyTiming, error) {
	timing.UpdatedAt = time.Now().UTC()
	r.timing = &timing
	return timing, nil
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
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
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
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
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

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.nextID++
	request.ID = fmt.Sprintf("leave-%d", r.nextID)
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeLeaveRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, search string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		out = append(out, request)
	}
	return out, nil
}

func (r *fakeLeaveRepo) Update(ctx context.Context, request leave.LeaveRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.requests[request.ID] = request
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeLeaveRepo) FindApprovedOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (*leave.LeaveRequest, error) {
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status != leave.StatusApproved {
			continue
		}
		if excludeID != "" && request.ID == excludeID {
			continue
		}
		if leave.Overlaps(request.StartDate, request.EndDate, startDate, endDate) {
			found := request
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeLeaveRepo) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	return r.FindApprovedOverlapping(ctx, employeeID, day, day, "")
}

func (r *fakeLeaveRepo) CountApprovedDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	total := 0
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status != leave.StatusApproved {
			continue
		}
		if !leave.Overlaps(request.StartDate, request.EndDate, monthStart, monthEnd) {
			continue
		}
		start := request.StartDate
		if start.Before(monthStart) {
			start = monthStart
		}
		end := request.EndDate
		if end.After(monthEnd) {
			end = monthEnd
		}
		total += leave.InclusiveDays(start, end)
	}
	return total, nil
}
