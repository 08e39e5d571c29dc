package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/handler/http/middleware"
	"github.com/staffly/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	MonthlyGraph(w http.ResponseWriter, r *http.Request)
	GetCompanyTiming(w http.ResponseWriter, r *http.Request)
	SetCompanyTiming(w http.ResponseWriter, r *http.Request)
	InitializeDaily(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// effectiveEmployee resolves the employee a check-in/out applies to. The
// requested id is honored only for admin callers.
func effectiveEmployee(r *http.Request, requested string) (string, bool) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		return "", false
	}
	if requested != "" && identity.IsAdmin {
		return requested, true
	}
	return identity.EmployeeID, true
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := effectiveEmployee(r, req.EmployeeID)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", result)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := effectiveEmployee(r, req.EmployeeID)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.attendanceService.StartBreak(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.attendanceService.EndBreak(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	result, err := h.attendanceService.UserStatus(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MonthlyGraph(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	result, err := h.attendanceService.MonthlyGraph(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetCompanyTiming(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetCompanyTiming(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) SetCompanyTiming(w http.ResponseWriter, r *http.Request) {
	var req attendance.SetCompanyTimingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SetCompanyTiming(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company timing updated", result)
}

func (h *attendanceHandlerImpl) InitializeDaily(w http.ResponseWriter, r *http.Request) {
	initialized, err := h.attendanceService.InitializeDailyAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily attendance initialized", map[string]int{"initialized": initialized})
}
