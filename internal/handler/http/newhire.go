package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

type NewHireHandler interface {
	// Teams
	ListTeams(w http.ResponseWriter, r *http.Request)
	CreateTeam(w http.ResponseWriter, r *http.Request)
	UpdateTeam(w http.ResponseWriter, r *http.Request)
	DeleteTeam(w http.ResponseWriter, r *http.Request)

	// Trainees
	ListTrainees(w http.ResponseWriter, r *http.Request)
	GetTrainee(w http.ResponseWriter, r *http.Request)
	CreateTrainee(w http.ResponseWriter, r *http.Request)
	UpdateTrainee(w http.ResponseWriter, r *http.Request)
	ResignTrainee(w http.ResponseWriter, r *http.Request)
	ListResignations(w http.ResponseWriter, r *http.Request)

	// Meetings
	ListMeetings(w http.ResponseWriter, r *http.Request)
	CreateMeeting(w http.ResponseWriter, r *http.Request)
	UpdateMeeting(w http.ResponseWriter, r *http.Request)
}

type newHireHandlerImpl struct {
	stores
}

func NewNewHireHandler(registry *store.Registry) NewHireHandler {
	return &newHireHandlerImpl{stores{registry}}
}

func (h *newHireHandlerImpl) ListTeams(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListTeams", err)
		return
	}
	teams, err := s.FetchTeams(r.Context())
	if err != nil {
		fail(w, r, "ListTeams", err)
		return
	}
	response.List(w, teams, "")
}

func (h *newHireHandlerImpl) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req newhire.CreateTeamRequest
	if !decode(w, r, "CreateTeam", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateTeam", err)
		return
	}
	team, err := s.CreateTeam(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateTeam", err)
		return
	}
	slog.Info("Team created", "team_id", team.TeamID, "by", s.Owner())
	response.Created(w, "Team created successfully", team)
}

func (h *newHireHandlerImpl) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team_id", ids.CreateTeamID)
	if !ok {
		return
	}
	var req newhire.UpdateTeamRequest
	if !decode(w, r, "UpdateTeam", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateTeam", err)
		return
	}
	team, err := s.UpdateTeam(r.Context(), id, req)
	if err != nil {
		fail(w, r, "UpdateTeam", err)
		return
	}
	if team == nil {
		response.HandleError(w, newhire.ErrTeamNotFound)
		return
	}
	response.SuccessWithMessage(w, "Team updated successfully", team)
}

// DeleteTeam deactivates the team. Its trainees keep their team_id.
func (h *newHireHandlerImpl) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team_id", ids.CreateTeamID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "DeleteTeam", err)
		return
	}
	done, err := s.DeleteTeam(r.Context(), id)
	if err != nil {
		fail(w, r, "DeleteTeam", err)
		return
	}
	if !done {
		response.HandleError(w, newhire.ErrTeamNotFound)
		return
	}
	slog.Info("Team deactivated", "team_id", id, "by", s.Owner())
	response.SuccessWithMessage(w, "Team deactivated successfully", nil)
}

func (h *newHireHandlerImpl) ListTrainees(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListTrainees", err)
		return
	}
	list, err := s.FetchTrainees(r.Context(), newhire.FilterSchema.Delta(r.URL.Query()))
	if err != nil {
		fail(w, r, "ListTrainees", err)
		return
	}
	response.List(w, list, newhire.FilterSchema.QueryString(s.Snapshot().TraineeFilter()))
}

func (h *newHireHandlerImpl) GetTrainee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trainee_id", ids.CreateTraineeID)
	if !ok {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "GetTrainee", err)
		return
	}
	t, err := s.FetchTrainee(r.Context(), id)
	if err != nil {
		fail(w, r, "GetTrainee", err)
		return
	}
	if t == nil {
		response.HandleError(w, newhire.ErrTraineeNotFound)
		return
	}
	response.Success(w, t)
}

func (h *newHireHandlerImpl) CreateTrainee(w http.ResponseWriter, r *http.Request) {
	var req newhire.CreateTraineeRequest
	if !decode(w, r, "CreateTrainee", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateTrainee", err)
		return
	}
	t, err := s.CreateTrainee(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateTrainee", err)
		return
	}
	slog.Info("Trainee created", "trainee_id", t.TraineeID, "by", s.Owner())
	response.Created(w, "Trainee created successfully", t)
}

func (h *newHireHandlerImpl) UpdateTrainee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trainee_id", ids.CreateTraineeID)
	if !ok {
		return
	}
	var req newhire.UpdateTraineeRequest
	if !decode(w, r, "UpdateTrainee", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateTrainee", err)
		return
	}
	t, err := s.UpdateTrainee(r.Context(), id, req)
	if err != nil {
		fail(w, r, "UpdateTrainee", err)
		return
	}
	if t == nil {
		response.HandleError(w, newhire.ErrTraineeNotFound)
		return
	}
	response.SuccessWithMessage(w, "Trainee updated successfully", t)
}

func (h *newHireHandlerImpl) ResignTrainee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trainee_id", ids.CreateTraineeID)
	if !ok {
		return
	}
	var req newhire.ResignTraineeRequest
	if !decode(w, r, "ResignTrainee", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ResignTrainee", err)
		return
	}
	t, err := s.ResignTrainee(r.Context(), id, req)
	if err != nil {
		fail(w, r, "ResignTrainee", err)
		return
	}
	if t == nil {
		response.HandleError(w, newhire.ErrTraineeNotFound)
		return
	}
	slog.Info("Trainee resigned", "trainee_id", id, "by", s.Owner())
	response.SuccessWithMessage(w, "Resignation recorded successfully", t)
}

func (h *newHireHandlerImpl) ListResignations(w http.ResponseWriter, r *http.Request) {
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListResignations", err)
		return
	}
	list, err := s.FetchResignations(r.Context())
	if err != nil {
		fail(w, r, "ListResignations", err)
		return
	}
	response.List(w, list, "")
}

// ListMeetings lists every meeting, or those of ?trainee_id= when given.
func (h *newHireHandlerImpl) ListMeetings(w http.ResponseWriter, r *http.Request) {
	var traineeID *ids.TraineeID
	if raw := r.URL.Query().Get("trainee_id"); raw != "" {
		id, ok := ids.CreateTraineeID(raw)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{Field: "trainee_id", Message: "trainee_id is malformed"}})
			return
		}
		traineeID = &id
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "ListMeetings", err)
		return
	}
	list, err := s.FetchMeetings(r.Context(), traineeID)
	if err != nil {
		fail(w, r, "ListMeetings", err)
		return
	}
	qs := ""
	if traineeID != nil {
		qs = "?" + url.Values{"trainee_id": {string(*traineeID)}}.Encode()
	}
	response.List(w, list, qs)
}

func (h *newHireHandlerImpl) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req newhire.CreateMeetingRequest
	if !decode(w, r, "CreateMeeting", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "CreateMeeting", err)
		return
	}
	m, err := s.CreateMeeting(r.Context(), req)
	if err != nil {
		fail(w, r, "CreateMeeting", err)
		return
	}
	response.Created(w, "Meeting recorded successfully", m)
}

func (h *newHireHandlerImpl) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "meeting_id", ids.CreateMeetingID)
	if !ok {
		return
	}
	var req newhire.UpdateMeetingRequest
	if !decode(w, r, "UpdateMeeting", &req) {
		return
	}
	s, err := h.forRequest(r)
	if err != nil {
		fail(w, r, "UpdateMeeting", err)
		return
	}
	m, err := s.UpdateMeeting(r.Context(), id, req)
	if err != nil {
		fail(w, r, "UpdateMeeting", err)
		return
	}
	if m == nil {
		response.HandleError(w, newhire.ErrMeetingNotFound)
		return
	}
	response.SuccessWithMessage(w, "Meeting updated successfully", m)
}
