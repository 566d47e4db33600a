package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	stores
}

func NewEmployeeHandler(registry *store.Registry) EmployeeHandler {
	return &employeeHandlerImpl{stores{registry}}
}

// List merges the query over the caller's last employee filter.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListEmployees", err)
		return
	}
	list, err := s.FetchEmployees(r.Context(), employee.FilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ListEmployees", err)
		return
	}
	response.List(w, list, employee.FilterSchema.QueryString(s.Snapshot().EmployeeFilter()))
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_id", ids.CreateEmployeeID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "GetEmployee", err)
		return
	}
	e, err := s.FetchEmployee(r.Context(), id)
	if err != nil {
		fail(w, r, "GetEmployee", err)
		return
	}
	if e == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}
	response.Success(w, e)
}

func (h *employeeHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_id", ids.CreateEmployeeID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "EmployeeHistory", err)
		return
	}
	history, err := s.FetchEmployeeHistory(r.Context(), id)
	if err != nil {
		fail(w, r, "EmployeeHistory", err)
		return
	}
	response.List(w, history, "")
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decode(w, r, "CreateEmployee", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateEmployee", err)
		return
	}
	created, err := s.CreateEmployee(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateEmployee", err)
		return
	}
	slog.Info("Employee created", "employee_id", created.EmployeeID, "by", s.Owner())
	response.Created(w, "Employee created successfully", created)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_id", ids.CreateEmployeeID)
	if !ok {
		return
	}
	var req employee.UpdateEmployeeRequest
	if !decode(w, r, "UpdateEmployee", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateEmployee", err)
		return
	}
	updated, err := s.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		fail(w, r, "UpdateEmployee", err)
		return
	}
	if updated == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Deactivate is the DELETE of an employee: the row stays, with status INACTIVE.
func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "employee_id", ids.CreateEmployeeID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DeactivateEmployee", err)
		return
	}
	done, err := s.DeactivateEmployee(r.Context(), id)
	if err != nil {
		fail(w, r, "DeactivateEmployee", err)
		return
	}
	if !done {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}
	slog.Info("Employee deactivated", "employee_id", id, "by", s.Owner())
	response.SuccessWithMessage(w, "Employee deactivated successfully", nil)
}
