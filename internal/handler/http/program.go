package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

type ProgramHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type programHandlerImpl struct {
	stores
}

func NewProgramHandler(registry *store.Registry) ProgramHandler {
	return &programHandlerImpl{stores{registry}}
}

func (h *programHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListPrograms", err)
		return
	}
	list, err := s.FetchPrograms(r.Context(), program.FilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ListPrograms", err)
		return
	}
	response.List(w, list, program.FilterSchema.QueryString(s.Snapshot().ProgramFilter()))
}

func (h *programHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	code, ok := pathID(w, r, "code", ids.CreateProgramCode)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "GetProgram", err)
		return
	}
	p, err := s.FetchProgram(r.Context(), code)
	if err != nil {
		fail(w, r, "GetProgram", err)
		return
	}
	if p == nil {
		response.HandleError(w, program.ErrProgramNotFound)
		return
	}
	response.Success(w, p)
}

func (h *programHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req program.CreateProgramRequest
	if !decode(w, r, "CreateProgram", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateProgram", err)
		return
	}
	created, err := s.CreateProgram(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateProgram", err)
		return
	}
	slog.Info("Training program created", "code", created.Code, "by", s.Owner())
	response.Created(w, "Training program created successfully", created)
}

func (h *programHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	code, ok := pathID(w, r, "code", ids.CreateProgramCode)
	if !ok {
		return
	}
	var req program.UpdateProgramRequest
	if !decode(w, r, "UpdateProgram", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateProgram", err)
		return
	}
	updated, err := s.UpdateProgram(r.Context(), code, req)
	if err != nil {
		fail(w, r, "UpdateProgram", err)
		return
	}
	if updated == nil {
		response.HandleError(w, program.ErrProgramNotFound)
		return
	}
	response.SuccessWithMessage(w, "Training program updated successfully", updated)
}

// Delete retires the program; it stays readable with is_active false.
func (h *programHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	code, ok := pathID(w, r, "code", ids.CreateProgramCode)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DeleteProgram", err)
		return
	}
	done, err := s.DeleteProgram(r.Context(), code)
	if err != nil {
		fail(w, r, "DeleteProgram", err)
		return
	}
	if !done {
		response.HandleError(w, program.ErrProgramNotFound)
		return
	}
	slog.Info("Training program deactivated", "code", code, "by", s.Owner())
	response.SuccessWithMessage(w, "Training program deactivated successfully", nil)
}
