package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

type SessionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	stores
}

func NewSessionHandler(registry *store.Registry) SessionHandler {
	return &sessionHandlerImpl{stores{registry}}
}

func (h *sessionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListSessions", err)
		return
	}
	list, err := s.FetchSessions(r.Context(), session.FilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ListSessions", err)
		return
	}
	response.List(w, list, session.FilterSchema.QueryString(s.Snapshot().SessionFilter()))
}

func (h *sessionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "session_id", ids.CreateSessionID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "GetSession", err)
		return
	}
	ses, err := s.FetchSession(r.Context(), id)
	if err != nil {
		fail(w, r, "GetSession", err)
		return
	}
	if ses == nil {
		response.HandleError(w, session.ErrSessionNotFound)
		return
	}
	response.Success(w, ses)
}

func (h *sessionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req session.CreateSessionRequest
	if !decode(w, r, "CreateSession", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateSession", err)
		return
	}
	created, err := s.CreateSession(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateSession", err)
		return
	}
	slog.Info("Training session created", "session_id", created.SessionID, "by", s.Owner())
	response.Created(w, "Training session created successfully", created)
}

func (h *sessionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "session_id", ids.CreateSessionID)
	if !ok {
		return
	}
	var req session.UpdateSessionRequest
	if !decode(w, r, "UpdateSession", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateSession", err)
		return
	}
	updated, err := s.UpdateSession(r.Context(), id, req)
	if err != nil {
		fail(w, r, "UpdateSession", err)
		return
	}
	if updated == nil {
		response.HandleError(w, session.ErrSessionNotFound)
		return
	}
	response.SuccessWithMessage(w, "Training session updated successfully", updated)
}

// Cancel is the DELETE of a session: status becomes CANCELLED.
func (h *sessionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "session_id", ids.CreateSessionID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CancelSession", err)
		return
	}
	done, err := s.DeleteSession(r.Context(), id)
	if err != nil {
		fail(w, r, "CancelSession", err)
		return
	}
	if !done {
		response.HandleError(w, session.ErrSessionNotFound)
		return
	}
	slog.Info("Training session cancelled", "session_id", id, "by", s.Owner())
	response.SuccessWithMessage(w, "Training session cancelled successfully", nil)
}
