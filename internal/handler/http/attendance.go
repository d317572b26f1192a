package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	attendancesvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/attendance"
	"github.com/contactevin2u/AAHRMS-sub003/internal/handler/http/response"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	RepairMidnight(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendancesvc.AttendanceService
}

func NewAttendanceHandler(attendanceService *attendancesvc.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func companyIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	companyID, ok := claims["company_id"].(string)
	return companyID, ok && companyID != ""
}

type punchRequest struct {
	EmployeeID string  `json:"employee_id"`
	At         *string `json:"at,omitempty"`
	Meta       *string `json:"meta,omitempty"`
}

func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}

	var req punchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if req.EmployeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	at := time.Now()
	if req.At != nil {
		parsed, err := time.Parse(time.RFC3339, *req.At)
		if err != nil {
			response.BadRequest(w, "Invalid punch time, expected RFC3339", nil)
			return
		}
		at = parsed
	}

	session, err := h.attendanceService.Punch(r.Context(), companyID, req.EmployeeID, at, req.Meta)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

func (h *attendanceHandlerImpl) RepairMidnight(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}

	repaired, err := h.attendanceService.RepairMidnightSessions(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Midnight sessions repaired", map[string]int{"repaired": repaired})
}
