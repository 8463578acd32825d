package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/handler/http/response"
)

type RequestHandler interface {
	CreateCheckIn(w http.ResponseWriter, r *http.Request)
	CreateCheckOut(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	CreateWFH(w http.ResponseWriter, r *http.Request)
	CreateTimesheetUpdate(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delegate(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

// employeeIDFromClaims pulls the caller's employee id out of the verified
// token. The identity service always stamps it for workforce users.
func employeeIDFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

// CreateCheckIn implements RequestHandler.
func (h *RequestHandlerImpl) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.CreateCheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in request submitted", created)
}

// CreateCheckOut implements RequestHandler.
func (h *RequestHandlerImpl) CreateCheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.CreateCheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.CreateCheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-out request submitted", created)
}

// CreateLeave implements RequestHandler.
func (h *RequestHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.CreateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// CreateWFH implements RequestHandler.
func (h *RequestHandlerImpl) CreateWFH(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.CreateWFHRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateWFH decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.CreateWFH(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work-from-home request submitted", created)
}

// CreateTimesheetUpdate implements RequestHandler.
func (h *RequestHandlerImpl) CreateTimesheetUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.CreateTimesheetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTimesheetUpdate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.CreateTimesheetUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet correction submitted", created)
}

// Get implements RequestHandler.
func (h *RequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	item, err := h.requestService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, item)
}

func parseRequestFilter(r *http.Request) request.RequestFilter {
	query := r.URL.Query()

	filter := request.RequestFilter{
		EmployeeID: query.Get("employee_id"),
		ApproverID: query.Get("approver_id"),
		Status:     request.RequestStatus(query.Get("status")),
		Type:       request.RequestType(query.Get("type")),
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if from, err := time.Parse(request.DateLayout, query.Get("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse(request.DateLayout, query.Get("date_to")); err == nil {
		filter.DateTo = &to
	}

	return filter
}

// List implements RequestHandler. Approvers use it to browse the requests
// waiting on them.
func (h *RequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	filter := parseRequestFilter(r)
	filter.ApproverID = actorID

	list, err := h.requestService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.Total,
		TotalPages: list.TotalPages,
	})
}

// ListMine implements RequestHandler.
func (h *RequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	filter := parseRequestFilter(r)
	filter.EmployeeID = employeeID
	filter.ApproverID = ""

	list, err := h.requestService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.Total,
		TotalPages: list.TotalPages,
	})
}

// Approve implements RequestHandler.
func (h *RequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	approved, err := h.requestService.Approve(r.Context(), requestID, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", approved)
}

// Reject implements RequestHandler.
func (h *RequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ActorID = actorID

	rejected, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", rejected)
}

// Delegate implements RequestHandler.
func (h *RequestHandlerImpl) Delegate(w http.ResponseWriter, r *http.Request) {
	var req request.DelegateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Delegate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	delegated, err := h.requestService.Delegate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request delegated", delegated)
}

// BulkApprove implements RequestHandler.
func (h *RequestHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	actorID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req request.BulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkApprove decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApproverID = actorID

	result, err := h.requestService.BulkApprove(r.Context(), req)
	if err != nil {
		// The partial result still tells the caller what went through
		// before the batch aborted.
		slog.Error("BulkApprove aborted", "error", err, "approved", len(result.ApprovedIDs))
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk approval finished", result)
}
