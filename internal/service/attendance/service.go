package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

type service struct {
	attendanceRepo  attendance.AttendanceRepository
	timingRepo      attendance.CompanyTimingRepository
	employeeRepo    employee.EmployeeRepository
	leaveRepo       leave.LeaveRequestRepository
	notificationSvc notification.Service

	// now is swapped out in tests
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	timingRepo attendance.CompanyTimingRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	notificationSvc notification.Service,
) attendance.Service {
	return &service{
		attendanceRepo:  attendanceRepo,
		timingRepo:      timingRepo,
		employeeRepo:    employeeRepo,
		leaveRepo:       leaveRepo,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// timing loads the company timing; classification cannot proceed without a
// configured start time.
func (s *service) timing(ctx context.Context) (attendance.CompanyTiming, error) {
	t, err := s.timingRepo.Get(ctx)
	if err != nil {
		return attendance.CompanyTiming{}, err
	}
	if t == nil || t.StartTime == "" {
		return attendance.CompanyTiming{}, attendance.ErrTimingNotConfigured
	}
	return *t, nil
}

func snapshot(e employee.Employee) attendance.EmployeeSnapshot {
	return attendance.EmployeeSnapshot{
		EmployeeID:   e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Role:         e.Role,
		Type:         e.Type,
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().UTC()
	today := attendance.DayKey(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record != nil {
		switch record.CheckInStatus {
		case attendance.CheckInCheckedIn, attendance.CheckInOnBreak:
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		case attendance.CheckInCheckedOut:
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		case attendance.CheckInOnLeave:
			return attendance.AttendanceResponse{}, attendance.ErrOnApprovedLeave
		}
	}

	timing, err := s.timing(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusPresent
	if threshold, err := timing.LateThreshold(today); err == nil && now.After(threshold) {
		status = attendance.StatusLate
	}

	event := &attendance.CheckEvent{Time: now, Location: req.Location}

	if record != nil {
		record.Status = status
		record.CheckInStatus = attendance.CheckInCheckedIn
		record.CheckIn = event
		if err := s.attendanceRepo.Update(ctx, *record); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if status == attendance.StatusLate {
			s.notifyLate(ctx, *record)
		}
		return toResponse(*record), nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		Employee:      snapshot(emp),
		Date:          today,
		Status:        status,
		CheckInStatus: attendance.CheckInCheckedIn,
		CheckIn:       event,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if status == attendance.StatusLate {
		s.notifyLate(ctx, created)
	}

	return toResponse(created), nil
}

// notifyLate tells the admins about a late check-in. Fire and forget.
func (s *service) notifyLate(ctx context.Context, record attendance.Attendance) {
	if s.notificationSvc == nil {
		return
	}

	admins, err := s.employeeRepo.GetAdmins(ctx)
	if err != nil {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			Type:        notification.TypeCheckInLate,
			Title:       "Late check-in",
			Message:     fmt.Sprintf("%s checked in late at %s", record.Employee.Name, record.CheckIn.Time.Format("15:04")),
			Data:        notification.Data{"attendance_id": record.ID},
		})
	}
	_ = s.notificationSvc.QueueBulk(ctx, reqs)
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().UTC()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, attendance.DayKey(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
	}

	switch record.CheckInStatus {
	case attendance.CheckInOnBreak:
		return attendance.AttendanceResponse{}, attendance.ErrOnBreak
	case attendance.CheckInCheckedOut:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &attendance.CheckEvent{Time: now, Location: req.Location}
	record.CheckInStatus = attendance.CheckInCheckedOut

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(*record), nil
}

func (s *service) StartBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := s.now().UTC()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, attendance.DayKey(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
	}

	switch record.CheckInStatus {
	case attendance.CheckInOnBreak:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyOnBreak
	case attendance.CheckInCheckedOut:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.Break = &attendance.BreakSpan{StartTime: now}
	record.CheckInStatus = attendance.CheckInOnBreak

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(*record), nil
}

func (s *service) EndBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := s.now().UTC()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, attendance.DayKey(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || record.CheckInStatus != attendance.CheckInOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrNotOnBreak
	}
	if record.Break == nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakNotStarted
	}

	record.Break.EndTime = &now
	record.CheckInStatus = attendance.CheckInCheckedIn

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(*record), nil
}

func (s *service) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(record), nil
}

func (s *service) List(ctx context.Context, search string) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.Locked {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceLocked
	}

	if req.CheckInTime != nil {
		timing, err := s.timing(ctx)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		checkInTime, _ := validator.IsValidDateTime(*req.CheckInTime)
		checkInTime = checkInTime.UTC()

		if record.CheckIn != nil {
			record.CheckIn.Time = checkInTime
		} else {
			record.CheckIn = &attendance.CheckEvent{Time: checkInTime}
		}
		record.CheckInStatus = attendance.CheckInCheckedIn

		// A corrected check-in re-derives Present vs Late
		record.Status = attendance.StatusPresent
		if threshold, err := timing.LateThreshold(record.Date); err == nil && checkInTime.After(threshold) {
			record.Status = attendance.StatusLate
		}
	} else if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}

	if req.CheckOutTime != nil {
		if record.CheckIn == nil {
			return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
		}
		checkOutTime, _ := validator.IsValidDateTime(*req.CheckOutTime)
		checkOutTime = checkOutTime.UTC()

		if record.CheckOut != nil {
			record.CheckOut.Time = checkOutTime
		} else {
			record.CheckOut = &attendance.CheckEvent{Time: checkOutTime}
		}
		record.CheckInStatus = attendance.CheckInCheckedOut
	}

	if req.Reason != nil {
		record.Reason = req.Reason
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(record), nil
}

func (s *service) Summary(ctx context.Context) (attendance.SummaryResponse, error) {
	today := attendance.DayKey(s.now())
	yesterday := today.AddDate(0, 0, -1)

	todayCounts, err := s.attendanceRepo.CountByStatusOnDate(ctx, today)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	yesterdayCounts, err := s.attendanceRepo.CountByStatusOnDate(ctx, yesterday)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	statuses := make(map[attendance.Status]attendance.StatusDelta)
	for _, status := range []attendance.Status{
		attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent,
		attendance.StatusHalfDay, attendance.StatusOnLeave,
	} {
		statuses[status] = attendance.StatusDelta{
			Today:     todayCounts[status],
			Yesterday: yesterdayCounts[status],
			DeltaPct:  deltaPct(todayCounts[status], yesterdayCounts[status]),
		}
	}

	return attendance.SummaryResponse{
		Date:     today.Format("2006-01-02"),
		Statuses: statuses,
	}, nil
}

// deltaPct is the percentage change from yesterday to today. A rise from
// zero reports 100%.
func deltaPct(today, yesterday int) float64 {
	if yesterday == 0 {
		if today == 0 {
			return 0
		}
		return 100
	}
	return float64(today-yesterday) / float64(yesterday) * 100
}

func (s *service) MonthlyGraph(ctx context.Context, year int) ([]attendance.MonthlyGraphPoint, error) {
	headcount, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]attendance.MonthlyGraphPoint, 0, 12)
	for month := time.January; month <= time.December; month++ {
		present, err := s.attendanceRepo.CountByStatusInMonth(ctx, year, month, attendance.StatusPresent)
		if err != nil {
			return nil, err
		}
		points = append(points, attendance.MonthlyGraphPoint{
			Month:     month.String(),
			Headcount: headcount,
			Present:   present,
		})
	}

	return points, nil
}

func (s *service) UserStatus(ctx context.Context, employeeID string) (attendance.UserStatusResponse, error) {
	today := attendance.DayKey(s.now())

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.UserStatusResponse{}, err
	}

	resp := attendance.UserStatusResponse{
		Date:          today.Format("2006-01-02"),
		Status:        string(attendance.StatusAbsent),
		CheckInStatus: string(attendance.CheckInPending),
		CanCheckIn:    true,
	}
	if record == nil {
		return resp, nil
	}

	resp.Status = string(record.Status)
	resp.CheckInStatus = string(record.CheckInStatus)
	resp.CanCheckIn = record.CheckInStatus == attendance.CheckInPending
	resp.CanCheckOut = record.CheckInStatus == attendance.CheckInCheckedIn
	resp.OnBreak = record.CheckInStatus == attendance.CheckInOnBreak

	if record.CheckIn != nil {
		t := record.CheckIn.Time.Format(time.RFC3339)
		resp.CheckInTime = &t
	}
	if record.CheckOut != nil {
		t := record.CheckOut.Time.Format(time.RFC3339)
		resp.CheckOutTime = &t
	}

	return resp, nil
}

func (s *service) SetCompanyTiming(ctx context.Context, req attendance.SetCompanyTimingRequest) (attendance.CompanyTimingResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CompanyTimingResponse{}, err
	}

	updated, err := s.timingRepo.Upsert(ctx, attendance.CompanyTiming{
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		LateAfterMinutes: req.LateAfterMinutes,
	})
	if err != nil {
		return attendance.CompanyTimingResponse{}, err
	}

	return timingResponse(updated), nil
}

func (s *service) GetCompanyTiming(ctx context.Context) (attendance.CompanyTimingResponse, error) {
	t, err := s.timingRepo.Get(ctx)
	if err != nil {
		return attendance.CompanyTimingResponse{}, err
	}
	if t == nil {
		return attendance.CompanyTimingResponse{}, attendance.ErrTimingNotConfigured
	}

	return timingResponse(*t), nil
}

// InitializeDailyAttendance seeds today's row for every employee without
// one: On Leave when an approved request covers today, Absent otherwise.
func (s *service) InitializeDailyAttendance(ctx context.Context) (int, error) {
	today := attendance.DayKey(s.now())

	employees, err := s.employeeRepo.List(ctx, "")
	if err != nil {
		return 0, err
	}

	initialized := 0
	for _, emp := range employees {
		// Best-effort check-in reminder for everyone, sent regardless of
		// leave or an already-seeded row.
		if s.notificationSvc != nil {
			_ = s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
				RecipientID: emp.ID,
				Type:        notification.TypeCheckInReminder,
				Title:       "Check-in reminder",
				Message:     fmt.Sprintf("Don't forget to check in for %s", today.Format("2006-01-02")),
			})
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			return initialized, err
		}
		if existing != nil {
			continue
		}

		record := attendance.Attendance{
			Employee:      snapshot(emp),
			Date:          today,
			Status:        attendance.StatusAbsent,
			CheckInStatus: attendance.CheckInPending,
		}

		covering, err := s.leaveRepo.FindApprovedCovering(ctx, emp.ID, today)
		if err != nil {
			return initialized, err
		}
		if covering != nil {
			record.Status = attendance.StatusOnLeave
			record.CheckInStatus = attendance.CheckInOnLeave
			record.LeaveInfo = &attendance.LeaveInfo{LeaveID: covering.ID, LeaveType: covering.LeaveType}
		}

		if _, err := s.attendanceRepo.Create(ctx, record); err != nil {
			return initialized, err
		}
		initialized++
	}

	return initialized, nil
}

func timingResponse(t attendance.CompanyTiming) attendance.CompanyTimingResponse {
	return attendance.CompanyTimingResponse{
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		LateAfterMinutes: t.LateAfterMinutes,
	}
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            a.ID,
		Employee:      a.Employee,
		Date:          a.Date.Format("2006-01-02"),
		Status:        string(a.Status),
		CheckInStatus: string(a.CheckInStatus),
		CheckIn:       a.CheckIn,
		CheckOut:      a.CheckOut,
		Break:         a.Break,
		LeaveInfo:     a.LeaveInfo,
		Locked:        a.Locked,
		Reason:        a.Reason,
	}
}
