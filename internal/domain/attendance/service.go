package attendance

import "context"

// Service is the attendance tracker business interface. Callers are resolved
// to an employee id by the HTTP layer before any method is invoked.
type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	StartBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	EndBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, search string) ([]AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Summary(ctx context.Context) (SummaryResponse, error)
	MonthlyGraph(ctx context.Context, year int) ([]MonthlyGraphPoint, error)
	UserStatus(ctx context.Context, employeeID string) (UserStatusResponse, error)
	SetCompanyTiming(ctx context.Context, req SetCompanyTimingRequest) (CompanyTimingResponse, error)
	GetCompanyTiming(ctx context.Context) (CompanyTimingResponse, error)
	// InitializeDailyAttendance writes today's baseline row for every employee
	// that has none yet. Safe to run repeatedly.
	InitializeDailyAttendance(ctx context.Context) (int, error)
}
