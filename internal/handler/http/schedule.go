package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/schedule"
	"github.com/contactevin2u/AAHRMS-sub003/internal/handler/http/response"
	schedulesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/schedule"
)

type ScheduleHandler interface {
	CreateShiftTemplate(w http.ResponseWriter, r *http.Request)
	ListShiftTemplates(w http.ResponseWriter, r *http.Request)
	DeleteShiftTemplate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService *schedulesvc.ScheduleService
}

func NewScheduleHandler(scheduleService *schedulesvc.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

func (h *scheduleHandlerImpl) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateShiftTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift template created", result)
}

func (h *scheduleHandlerImpl) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListShiftTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Template ID is required", nil)
		return
	}

	if err := h.scheduleService.DeleteShiftTemplate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template deleted", nil)
}

func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func periodQuery(r *http.Request) (start, end time.Time, ok bool) {
	var err error
	start, err = time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		return start, end, false
	}
	end, err = time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		return start, end, false
	}
	return start, end, true
}

func (h *scheduleHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	start, end, ok := periodQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid period, expected start and end as YYYY-MM-DD", nil)
		return
	}

	result, err := h.scheduleService.AssignmentsByPeriod(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

func (h *scheduleHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	start, end, ok := periodQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid period, expected start and end as YYYY-MM-DD", nil)
		return
	}

	result, err := h.scheduleService.HolidaysByPeriod(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
