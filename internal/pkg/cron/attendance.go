package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
)

// AttendanceJobs carries the scheduled attendance maintenance work.
type AttendanceJobs struct {
	attendanceSvc attendance.Service
}

func NewAttendanceJobs(attendanceSvc attendance.Service) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("initialize_daily_attendance", 1*time.Hour, j.InitializeDailyAttendance)
}

// InitializeDailyAttendance seeds today's attendance rows. The job ticks
// hourly but only does work during the midnight hour; the service itself is
// idempotent, so overlap with the manual trigger endpoint is harmless.
func (j *AttendanceJobs) InitializeDailyAttendance(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily attendance initialization")

	initialized, err := j.attendanceSvc.InitializeDailyAttendance(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize daily attendance: %w", err)
	}

	slog.Info("Cron: Daily attendance initialized", "records", initialized)
	return nil
}
