package http

import (
	"encoding/json"
	"net/http"

	"github.com/facilops/payroll-backend-go/internal/domain/assignment"
	"github.com/facilops/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AssignmentHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	assignmentService assignment.AssignmentService
}

func NewAssignmentHandler(assignmentService assignment.AssignmentService) AssignmentHandler {
	return &assignmentHandlerImpl{assignmentService: assignmentService}
}

func (h *assignmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	result, err := h.assignmentService.GetAssignment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *assignmentHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.assignmentService.ListByEmployeeAndPeriod(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *assignmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	var req assignment.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.assignmentService.UpdateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment updated", result)
}
