package payroll

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/domain/payroll"
	"github.com/staffly/hr-backend-go/internal/pkg/payslip"
	"github.com/staffly/hr-backend-go/internal/pkg/storage"
)

type service struct {
	payrollRepo     payroll.PayrollRepository
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	leaveRepo       leave.LeaveRequestRepository
	notificationSvc notification.Service
	files           storage.FileStorage
	company         payslip.CompanyInfo
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	notificationSvc notification.Service,
	files storage.FileStorage,
	company payslip.CompanyInfo,
) payroll.Service {
	return &service{
		payrollRepo:     payrollRepo,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		leaveRepo:       leaveRepo,
		notificationSvc: notificationSvc,
		files:           files,
		company:         company,
	}
}

func monthOf(name string) (time.Month, error) {
	t, err := time.Parse("January", name)
	if err != nil {
		return 0, payroll.ErrInvalidMonth
	}
	return t.Month(), nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func (s *service) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	month, err := monthOf(req.Month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	existing, err := s.payrollRepo.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if existing != nil {
		return payroll.PayrollResponse{}, payroll.ErrPayrollExists
	}

	presentDays, err := s.attendanceRepo.CountPresentDaysInMonth(ctx, req.EmployeeID, req.Year, month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	leaveDays, err := s.leaveRepo.CountApprovedDaysInMonth(ctx, req.EmployeeID, req.Year, month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	record := payroll.Payroll{
		EmployeeID:        req.EmployeeID,
		Month:             req.Month,
		Year:              req.Year,
		BasicSalary:       req.BasicSalary,
		Allowances:        req.Allowances,
		Deductions:        req.Deductions,
		PresentDays:       presentDays,
		ApprovedLeaveDays: leaveDays,
		TotalWorkingDays:  daysInMonth(req.Year, month),
		Status:            payroll.StatusPending,
	}
	record.Recompute()

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	// The slip is rendered right away; a storage failure is not fatal, the
	// dedicated slip endpoint can render it again.
	if err := s.renderSlip(ctx, &created); err == nil {
		if err := s.payrollRepo.Update(ctx, created); err != nil {
			return payroll.PayrollResponse{}, err
		}
	}

	return payroll.ToResponse(created), nil
}

func (s *service) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(record), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error) {
	records, err := s.payrollRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func (s *service) List(ctx context.Context, search string) ([]payroll.PayrollResponse, error) {
	records, err := s.payrollRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func toResponses(records []payroll.Payroll) []payroll.PayrollResponse {
	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, payroll.ToResponse(record))
	}
	return responses
}

func (s *service) Update(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if record.IsLocked {
		return payroll.PayrollResponse{}, payroll.ErrPayrollLocked
	}

	if req.BasicSalary != nil {
		record.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		record.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}
	record.Recompute()

	// An already generated slip is stale now; render it again.
	if record.SalarySlipURL != nil {
		if err := s.renderSlip(ctx, &record); err != nil {
			return payroll.PayrollResponse{}, err
		}
	}

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(record), nil
}

func (s *service) Approve(ctx context.Context, id, approvedBy string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if record.IsLocked {
		return payroll.PayrollResponse{}, payroll.ErrPayrollLocked
	}

	record.Status = payroll.StatusApproved
	record.ApprovedBy = &approvedBy
	record.IsLocked = true

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.PayrollResponse{}, err
	}

	// The attendance rows the payroll consumed are now read-only too.
	if month, err := monthOf(record.Month); err == nil {
		if err := s.attendanceRepo.LockByEmployeeAndMonth(ctx, record.EmployeeID, record.Year, month); err != nil {
			return payroll.PayrollResponse{}, err
		}
	}

	if s.notificationSvc != nil {
		_ = s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: record.EmployeeID,
			Type:        notification.TypePayrollReady,
			Title:       "Salary approved",
			Message:     fmt.Sprintf("Your salary for %s %d has been approved", record.Month, record.Year),
			Data:        notification.Data{"payroll_id": record.ID},
		})
	}

	return payroll.ToResponse(record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.IsLocked {
		return payroll.ErrPayrollLocked
	}

	return s.payrollRepo.Delete(ctx, id)
}

// renderSlip renders the PDF, stores it and points the record at its URL.
func (s *service) renderSlip(ctx context.Context, record *payroll.Payroll) error {
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return err
	}

	pdf, err := payslip.Generate(s.company, *record, emp.Name, emp.EmployeeCode)
	if err != nil {
		return err
	}

	key := payslip.FileName(*record)
	if _, err := s.files.Upload(ctx, bytes.NewReader(pdf), key, "application/pdf"); err != nil {
		return fmt.Errorf("failed to store salary slip: %w", err)
	}

	url, err := s.files.GetURL(ctx, key, 0)
	if err != nil {
		return err
	}

	record.SalarySlipURL = &url
	return nil
}

func (s *service) GenerateSalarySlip(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if err := s.renderSlip(ctx, &record); err != nil {
		return payroll.PayrollResponse{}, err
	}
	if record.Status == payroll.StatusPending {
		record.Status = payroll.StatusProcessed
	}

	if err := s.payrollRepo.Update(ctx, record); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(record), nil
}

func (s *service) DownloadSalarySlip(ctx context.Context, id string) (io.ReadCloser, string, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if record.SalarySlipURL == nil {
		return nil, "", payroll.ErrSlipNotReady
	}

	key := payslip.FileName(record)
	reader, err := s.files.Download(ctx, key)
	if err != nil {
		return nil, "", err
	}

	return reader, path.Base(key), nil
}
