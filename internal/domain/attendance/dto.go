package attendance

import (
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	// EmployeeID is honored only for admin callers; everyone else is checked
	// in as themselves.
	EmployeeID string   `json:"employee_id,omitempty"`
	Location   GeoPoint `json:"location"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location.Lat < -90 || r.Location.Lat > 90 {
		errs = append(errs, validator.ValidationError{Field: "location.lat", Message: "latitude must be between -90 and 90"})
	}
	if r.Location.Lng < -180 || r.Location.Lng > 180 {
		errs = append(errs, validator.ValidationError{Field: "location.lng", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string   `json:"employee_id,omitempty"`
	Location   GeoPoint `json:"location"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location.Lat < -90 || r.Location.Lat > 90 {
		errs = append(errs, validator.ValidationError{Field: "location.lat", Message: "latitude must be between -90 and 90"})
	}
	if r.Location.Lng < -180 || r.Location.Lng > 180 {
		errs = append(errs, validator.ValidationError{Field: "location.lng", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is the allow-listed manual correction payload.
// Supplying a check-in time recomputes Late/Present from company timing;
// supplying a check-out time requires an existing check-in. A manual status
// override is honored only when no check-in time is supplied alongside it.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	Status       *string `json:"status,omitempty"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Reason       *string `json:"reason,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !ValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: Present, Late, Absent, Half-day, On Leave"})
	}
	if r.CheckInTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "check_in_time must be an ISO8601 timestamp"})
		}
	}
	if r.CheckOutTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "check_out_time must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetCompanyTimingRequest struct {
	StartTime        string `json:"start_time"` // "09:00"
	EndTime          string `json:"end_time"`   // "18:00"
	LateAfterMinutes int    `json:"late_after_minutes"`
}

func (r *SetCompanyTimingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:mm format"})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:mm format"})
	}
	if r.LateAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_after_minutes", Message: "late_after_minutes must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string           `json:"id"`
	Employee      EmployeeSnapshot `json:"employee"`
	Date          string           `json:"date"`
	Status        string           `json:"status"`
	CheckInStatus string           `json:"check_in_status"`
	CheckIn       *CheckEvent      `json:"check_in,omitempty"`
	CheckOut      *CheckEvent      `json:"check_out,omitempty"`
	Break         *BreakSpan       `json:"break,omitempty"`
	LeaveInfo     *LeaveInfo       `json:"leave_info,omitempty"`
	Locked        bool             `json:"locked"`
	Reason        *string          `json:"reason,omitempty"`
}

// StatusDelta is one status row of the daily summary: today's count versus
// yesterday's, with a percentage change.
type StatusDelta struct {
	Today     int     `json:"today"`
	Yesterday int     `json:"yesterday"`
	DeltaPct  float64 `json:"delta_pct"`
}

type SummaryResponse struct {
	Date     string                 `json:"date"`
	Statuses map[Status]StatusDelta `json:"statuses"`
}

// MonthlyGraphPoint is one month of the attendance graph: total headcount
// versus days recorded Present.
type MonthlyGraphPoint struct {
	Month     string `json:"month"`
	Headcount int64  `json:"headcount"`
	Present   int    `json:"present"`
}

type CompanyTimingResponse struct {
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	LateAfterMinutes int    `json:"late_after_minutes"`
}

// UserStatusResponse reports where the caller is in today's state machine.
type UserStatusResponse struct {
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	CheckInStatus string  `json:"check_in_status"`
	CanCheckIn    bool    `json:"can_check_in"`
	CanCheckOut   bool    `json:"can_check_out"`
	OnBreak       bool    `json:"on_break"`
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
}
