package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/handler/http/response"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// ListMine implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	req := timesheet.ListTimesheetsRequest{
		EmployeeID: employeeID,
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	entries, err := h.timesheetService.ListTimesheets(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// GetByDate implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	date := chi.URLParam(r, "date")
	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "Date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	entry, err := h.timesheetService.GetTimesheet(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}
