package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
	"github.com/staffly/hr-backend-go/internal/repository/postgresql"
)

type service struct {
	leaveRepo       leave.LeaveRequestRepository
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	notificationSvc notification.Service
	db              *database.DB
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	notificationSvc notification.Service,
	db *database.DB,
) leave.Service {
	return &service{
		leaveRepo:       leaveRepo,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// withTx runs fn inside a transaction when a pool is configured. Tests wire
// repositories directly and run without one.
func (s *service) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

func (s *service) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	key, ok := leave.EntitlementKey(req.LeaveType)
	if !ok {
		return leave.LeaveResponse{}, leave.ErrInvalidLeaveType
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if startDate.After(endDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	bucket, ok := emp.Entitlements[key]
	if !ok {
		return leave.LeaveResponse{}, leave.ErrInvalidLeaveType
	}

	days := leave.InclusiveDays(startDate, endDate)
	if bucket.Available() < days {
		return leave.LeaveResponse{}, leave.ErrInsufficientBalance
	}

	overlap, err := s.leaveRepo.FindApprovedOverlapping(ctx, req.EmployeeID, startDate, endDate, "")
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if overlap != nil {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyAdmins(ctx, created, emp)

	return toResponse(created), nil
}

func (s *service) notifyAdmins(ctx context.Context, request leave.LeaveRequest, emp employee.Employee) {
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
			Type:        notification.TypeLeaveApplied,
			Title:       "New leave request",
			Message:     fmt.Sprintf("%s applied for %s (%d days)", emp.Name, request.LeaveType, request.Days()),
			Data:        notification.Data{"leave_id": request.ID},
		})
	}
	_ = s.notificationSvc.QueueBulk(ctx, reqs)
}

func (s *service) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toResponse(request), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	requests, err := s.leaveRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (s *service) List(ctx context.Context, search string) ([]leave.LeaveResponse, error) {
	requests, err := s.leaveRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (s *service) UpdateStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		request, err := s.leaveRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		newStatus := leave.Status(req.Status)

		// Entitlement is consumed on the edge into Approved and never
		// returned on a later reversal. Approved to Approved re-assignments
		// do not re-fire the side effects.
		if newStatus == leave.StatusApproved && request.Status != leave.StatusApproved {
			if err := s.approve(txCtx, &request); err != nil {
				return err
			}
		}

		request.Status = newStatus
		request.ApprovedBy = &req.ApprovedBy
		if err := s.leaveRepo.Update(txCtx, request); err != nil {
			return err
		}

		updated = request
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyDecision(ctx, updated)

	return toResponse(updated), nil
}

// approve consumes the entitlement bucket and writes an On Leave attendance
// row for every day of the span.
func (s *service) approve(ctx context.Context, request *leave.LeaveRequest) error {
	key, ok := leave.EntitlementKey(request.LeaveType)
	if !ok {
		return leave.ErrInvalidLeaveType
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return err
	}

	bucket, ok := emp.Entitlements[key]
	if !ok {
		return leave.ErrInvalidLeaveType
	}

	days := request.Days()
	if bucket.Available() < days {
		return leave.ErrInsufficientBalance
	}

	bucket.Consumed += days
	emp.Entitlements[key] = bucket
	if err := s.employeeRepo.UpdateEntitlements(ctx, emp.ID, emp.Entitlements); err != nil {
		return err
	}

	info := &attendance.LeaveInfo{LeaveID: request.ID, LeaveType: request.LeaveType}
	for day := attendance.DayKey(request.StartDate); !day.After(attendance.DayKey(request.EndDate)); day = day.AddDate(0, 0, 1) {
		if err := s.markOnLeave(ctx, emp, day, info); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) markOnLeave(ctx context.Context, emp employee.Employee, day time.Time, info *attendance.LeaveInfo) error {
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Status = attendance.StatusOnLeave
		existing.CheckInStatus = attendance.CheckInOnLeave
		existing.LeaveInfo = info
		return s.attendanceRepo.Update(ctx, *existing)
	}

	_, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
		Employee: attendance.EmployeeSnapshot{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.Name,
			Role:         emp.Role,
			Type:         emp.Type,
		},
		Date:          day,
		Status:        attendance.StatusOnLeave,
		CheckInStatus: attendance.CheckInOnLeave,
		LeaveInfo:     info,
	})
	return err
}

func (s *service) notifyDecision(ctx context.Context, request leave.LeaveRequest) {
	if s.notificationSvc == nil {
		return
	}

	nType := notification.TypeLeaveRejected
	title := "Leave request rejected"
	if request.Status == leave.StatusApproved {
		nType = notification.TypeLeaveApproved
		title = "Leave request approved"
	}

	_ = s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		RecipientID: request.EmployeeID,
		Type:        nType,
		Title:       title,
		Message:     fmt.Sprintf("Your %s request (%s to %s) is now %s", request.LeaveType, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), request.Status),
		Data:        notification.Data{"leave_id": request.ID},
	})
}

func (s *service) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status == leave.StatusApproved {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyApproved
	}

	if req.LeaveType != nil {
		if _, ok := leave.EntitlementKey(*req.LeaveType); !ok {
			return leave.LeaveResponse{}, leave.ErrInvalidLeaveType
		}
		request.LeaveType = *req.LeaveType
	}
	if req.StartDate != nil {
		request.StartDate, _ = validator.IsValidDate(*req.StartDate)
	}
	if req.EndDate != nil {
		request.EndDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if request.StartDate.After(request.EndDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}

	// The merged dates must not collide with another approved span.
	overlap, err := s.leaveRepo.FindApprovedOverlapping(ctx, request.EmployeeID, request.StartDate, request.EndDate, request.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if overlap != nil {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	if err := s.leaveRepo.Update(ctx, request); err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(request), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status == leave.StatusApproved {
		return leave.ErrLeaveAlreadyApproved
	}

	return s.leaveRepo.Delete(ctx, id)
}

func toResponse(l leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Days:       l.Days(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		ApprovedBy: l.ApprovedBy,
		AppliedAt:  l.AppliedAt.Format(time.RFC3339),
	}
	if l.EmployeeName != nil {
		resp.EmployeeName = *l.EmployeeName
	}
	return resp
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, l := range requests {
		responses = append(responses, toResponse(l))
	}
	return responses
}
