package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/contactevin2u/AAHRMS-sub003/internal/domain/claim"
	"github.com/contactevin2u/AAHRMS-sub003/internal/handler/http/response"
	claimsvc "github.com/contactevin2u/AAHRMS-sub003/internal/service/claim"
)

type ClaimHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type claimHandlerImpl struct {
	claimService *claimsvc.ClaimService
}

func NewClaimHandler(claimService *claimsvc.ClaimService) ClaimHandler {
	return &claimHandlerImpl{claimService: claimService}
}

type submitClaimRequest struct {
	EmployeeID  string  `json:"employee_id"`
	ClaimDate   string  `json:"claim_date"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
}

func (h *claimHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}

	var req submitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	claimDate, err := time.Parse("2006-01-02", req.ClaimDate)
	if err != nil {
		response.BadRequest(w, "Invalid claim_date, expected YYYY-MM-DD", nil)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(w, "Invalid amount", nil)
		return
	}

	created, err := h.claimService.Submit(r.Context(), claim.Claim{
		CompanyID:   companyID,
		EmployeeID:  req.EmployeeID,
		ClaimDate:   claimDate,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Claim submitted", created)
}

func (h *claimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	if err := h.claimService.Approve(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim approved", nil)
}

func (h *claimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	if err := h.claimService.Reject(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Claim rejected", nil)
}

func (h *claimHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Missing company claim")
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	start, end, ok := periodQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid start/end, expected YYYY-MM-DD", nil)
		return
	}

	claims, err := h.claimService.ListByEmployeePeriod(r.Context(), companyID, employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, claims)
}
