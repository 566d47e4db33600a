package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
)

func (s *Store) FetchTeams(ctx context.Context) ([]newhire.Team, error) {
	return fetch(ctx, s, CategoryTeams, "FetchTeams",
		s.backend.NewHire.ListTeams,
		func(st *state, list []newhire.Team) {
			st.teams = st.teams.replaceView(list, teamKey)
		})
}

func (s *Store) CreateTeam(ctx context.Context, req newhire.CreateTeamRequest) (newhire.Team, error) {
	if err := req.Validate(); err != nil {
		return newhire.Team{}, err
	}
	return createOp(ctx, s, "CreateTeam", changelog.EntityTeam,
		func(t newhire.Team) string { return string(t.TeamID) },
		func(ctx context.Context) (newhire.Team, error) {
			return s.backend.NewHire.CreateTeam(ctx, req.ToEntity(s.now()))
		},
		func(st *state, t newhire.Team) {
			st.teams = st.teams.appendNew(t.TeamID, t)
		})
}

func (s *Store) UpdateTeam(ctx context.Context, id ids.TeamID, patch newhire.UpdateTeamRequest) (*newhire.Team, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateTeam", changelog.EntityTeam, string(id), "",
		s.teamBefore(id),
		func(ctx context.Context) (*newhire.Team, error) {
			return s.backend.NewHire.UpdateTeam(ctx, id, patch)
		},
		func(before, after newhire.Team) newhire.Team {
			after.TeamID = before.TeamID
			after.CreatedAt = before.CreatedAt
			return after
		},
		s.putTeam)
}

// DeleteTeam deactivates id. Its trainees are not touched and keep their
// team_id.
func (s *Store) DeleteTeam(ctx context.Context, id ids.TeamID) (bool, error) {
	return softDeleteOp(ctx, s, "DeleteTeam", changelog.EntityTeam, string(id),
		s.teamBefore(id),
		func(ctx context.Context) (bool, error) { return s.backend.NewHire.DeactivateTeam(ctx, id) },
		func(ctx context.Context) (*newhire.Team, error) { return s.backend.NewHire.GetTeam(ctx, id) },
		newhire.Team.Deactivated,
		s.putTeam)
}

func (s *Store) FetchTrainees(ctx context.Context, delta newhire.TraineeFilter) ([]newhire.Trainee, error) {
	filter := newhire.FilterSchema.Merge(s.current().traineeFilter, delta)
	return fetch(ctx, s, CategoryTrainees, "FetchTrainees",
		func(ctx context.Context) ([]newhire.Trainee, error) {
			return s.backend.NewHire.ListTrainees(ctx, filter)
		},
		func(st *state, list []newhire.Trainee) {
			st.trainees = st.trainees.replaceView(list, traineeKey)
			st.traineeFilter = filter
		})
}

func (s *Store) FetchTrainee(ctx context.Context, id ids.TraineeID) (*newhire.Trainee, error) {
	return fetch(ctx, s, CategoryTrainees, "FetchTrainee",
		func(ctx context.Context) (*newhire.Trainee, error) {
			return s.backend.NewHire.GetTrainee(ctx, id)
		},
		func(st *state, t *newhire.Trainee) {
			st.selectedTrainee = nil
			if t != nil {
				st.trainees = st.trainees.upsert(t.TraineeID, *t)
				sel := t.TraineeID
				st.selectedTrainee = &sel
			}
		})
}

func (s *Store) CreateTrainee(ctx context.Context, req newhire.CreateTraineeRequest) (newhire.Trainee, error) {
	if err := req.Validate(); err != nil {
		return newhire.Trainee{}, err
	}
	return createOp(ctx, s, "CreateTrainee", changelog.EntityTrainee,
		func(t newhire.Trainee) string { return string(t.TraineeID) },
		func(ctx context.Context) (newhire.Trainee, error) {
			return s.backend.NewHire.CreateTrainee(ctx, req.ToEntity(s.now()))
		},
		func(st *state, t newhire.Trainee) {
			st.trainees = st.trainees.appendNew(t.TraineeID, t)
		})
}

func (s *Store) UpdateTrainee(ctx context.Context, id ids.TraineeID, patch newhire.UpdateTraineeRequest) (*newhire.Trainee, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateTrainee", changelog.EntityTrainee, string(id), "",
		s.traineeBefore(id),
		func(ctx context.Context) (*newhire.Trainee, error) {
			return s.backend.NewHire.UpdateTrainee(ctx, id, patch)
		},
		func(before, after newhire.Trainee) newhire.Trainee {
			after.TraineeID = before.TraineeID
			return after
		},
		s.putTrainee)
}

// ResignTrainee moves id to RESIGNED and files the resignation in the same
// transaction. It returns nil when the trainee does not exist.
func (s *Store) ResignTrainee(ctx context.Context, id ids.TraineeID, req newhire.ResignTraineeRequest) (*newhire.Trainee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var filed newhire.Resignation
	return mutate(ctx, s, "ResignTrainee",
		func(ctx context.Context) (mutation[*newhire.Trainee], error) {
			before, err := s.traineeBefore(id)(ctx)
			if err != nil || before == nil {
				return mutation[*newhire.Trainee]{}, err
			}
			if before.Status == newhire.TraineeResigned {
				return mutation[*newhire.Trainee]{}, newhire.ErrTraineeAlreadyResigned
			}
			updated, err := s.backend.NewHire.UpdateTraineeStatus(ctx, id, newhire.TraineeResigned)
			if err != nil || updated == nil {
				return mutation[*newhire.Trainee]{}, err
			}
			filed, err = s.backend.NewHire.CreateResignation(ctx, req.ToEntity(id, s.now()))
			if err != nil {
				return mutation[*newhire.Trainee]{}, err
			}
			return mutation[*newhire.Trainee]{
				value:   updated,
				applied: true,
				changes: []changelog.Change{
					{
						EntityType: changelog.EntityTrainee,
						EntityID:   string(id),
						Action:     changelog.ActionUpdate,
						Before:     before,
						After:      updated,
						Reason:     filed.Reason,
					},
					{
						EntityType: changelog.EntityResignation,
						EntityID:   filed.ResignationID,
						Action:     changelog.ActionCreate,
						After:      filed,
					},
				},
			}, nil
		},
		func(st *state, t *newhire.Trainee) {
			st.trainees = st.trainees.upsert(t.TraineeID, *t)
			st.resignations = st.resignations.appendNew(filed.ResignationID, filed)
		})
}

func (s *Store) FetchResignations(ctx context.Context) ([]newhire.Resignation, error) {
	return fetch(ctx, s, CategoryTrainees, "FetchResignations",
		s.backend.NewHire.ListResignations,
		func(st *state, list []newhire.Resignation) {
			st.resignations = st.resignations.replaceView(list, resignationKey)
		})
}

// FetchMeetings lists the meetings of traineeID, or every meeting when nil.
func (s *Store) FetchMeetings(ctx context.Context, traineeID *ids.TraineeID) ([]newhire.Meeting, error) {
	return fetch(ctx, s, CategoryMeetings, "FetchMeetings",
		func(ctx context.Context) ([]newhire.Meeting, error) {
			return s.backend.NewHire.ListMeetings(ctx, traineeID)
		},
		func(st *state, list []newhire.Meeting) {
			st.meetings = st.meetings.replaceView(list, meetingKey)
		})
}

func (s *Store) CreateMeeting(ctx context.Context, req newhire.CreateMeetingRequest) (newhire.Meeting, error) {
	if err := req.Validate(); err != nil {
		return newhire.Meeting{}, err
	}
	return createOp(ctx, s, "CreateMeeting", changelog.EntityMeeting,
		func(m newhire.Meeting) string { return string(m.MeetingID) },
		func(ctx context.Context) (newhire.Meeting, error) {
			return s.backend.NewHire.CreateMeeting(ctx, req.ToEntity(s.owner, s.now()))
		},
		func(st *state, m newhire.Meeting) {
			st.meetings = st.meetings.appendNew(m.MeetingID, m)
		})
}

func (s *Store) UpdateMeeting(ctx context.Context, id ids.MeetingID, patch newhire.UpdateMeetingRequest) (*newhire.Meeting, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateMeeting", changelog.EntityMeeting, string(id), "",
		func(ctx context.Context) (*newhire.Meeting, error) {
			return lookup(ctx, s.current().meetings, id, s.backend.NewHire.GetMeeting)
		},
		func(ctx context.Context) (*newhire.Meeting, error) {
			return s.backend.NewHire.UpdateMeeting(ctx, id, patch)
		},
		func(before, after newhire.Meeting) newhire.Meeting {
			after.MeetingID = before.MeetingID
			after.CreatedAt = before.CreatedAt
			return after
		},
		func(st *state, m newhire.Meeting) {
			st.meetings = st.meetings.upsert(m.MeetingID, m)
		})
}

func (s *Store) teamBefore(id ids.TeamID) func(ctx context.Context) (*newhire.Team, error) {
	return func(ctx context.Context) (*newhire.Team, error) {
		return lookup(ctx, s.current().teams, id, s.backend.NewHire.GetTeam)
	}
}

func (s *Store) traineeBefore(id ids.TraineeID) func(ctx context.Context) (*newhire.Trainee, error) {
	return func(ctx context.Context) (*newhire.Trainee, error) {
		return lookup(ctx, s.current().trainees, id, s.backend.NewHire.GetTrainee)
	}
}

func (s *Store) putTeam(st *state, t newhire.Team) {
	st.teams = st.teams.upsert(t.TeamID, t)
}

func (s *Store) putTrainee(st *state, t newhire.Trainee) {
	st.trainees = st.trainees.upsert(t.TraineeID, t)
}
