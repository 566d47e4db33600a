package memory

import (
	"cmp"
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
)

type newHireRepository struct {
	db *DB
}

func (db *DB) NewHire() newhire.Repository {
	return &newHireRepository{db: db}
}

func (r *newHireRepository) ListTeams(ctx context.Context) (out []newhire.Team, err error) {
	r.db.read(func(d *data) {
		out = values(d.teams, nil, func(a, b newhire.Team) int {
			if c := cmp.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.TeamID, b.TeamID)
		})
	})
	return out, nil
}

func (r *newHireRepository) GetTeam(ctx context.Context, id ids.TeamID) (out *newhire.Team, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.teams[id], hasKey(d.teams, id))
	})
	return out, nil
}

func (r *newHireRepository) CreateTeam(ctx context.Context, team newhire.Team) (newhire.Team, error) {
	r.db.write(ctx, func(d *data) {
		d.teams[team.TeamID] = team
	})
	return team, nil
}

func (r *newHireRepository) UpdateTeam(ctx context.Context, id ids.TeamID, req newhire.UpdateTeamRequest) (out *newhire.Team, err error) {
	r.db.write(ctx, func(d *data) {
		t, ok := d.teams[id]
		if !ok {
			return
		}
		t = req.Apply(t)
		d.teams[id] = t
		out = &t
	})
	return out, nil
}

// DeactivateTeam leaves the team's trainees as they are.
func (r *newHireRepository) DeactivateTeam(ctx context.Context, id ids.TeamID) (found bool, err error) {
	r.db.write(ctx, func(d *data) {
		t, ok := d.teams[id]
		if !ok {
			return
		}
		d.teams[id] = t.Deactivated()
		found = true
	})
	return found, nil
}

func (r *newHireRepository) ListTrainees(ctx context.Context, filter newhire.TraineeFilter) (out []newhire.Trainee, err error) {
	r.db.read(func(d *data) {
		out = values(d.trainees, filter.Matches, byKey(func(t newhire.Trainee) ids.TraineeID { return t.TraineeID }))
	})
	return out, nil
}

func (r *newHireRepository) GetTrainee(ctx context.Context, id ids.TraineeID) (out *newhire.Trainee, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.trainees[id], hasKey(d.trainees, id))
	})
	return out, nil
}

func (r *newHireRepository) CreateTrainee(ctx context.Context, trainee newhire.Trainee) (newhire.Trainee, error) {
	r.db.write(ctx, func(d *data) {
		d.trainees[trainee.TraineeID] = trainee
	})
	return trainee, nil
}

func (r *newHireRepository) UpdateTrainee(ctx context.Context, id ids.TraineeID, req newhire.UpdateTraineeRequest) (out *newhire.Trainee, err error) {
	r.db.write(ctx, func(d *data) {
		t, ok := d.trainees[id]
		if !ok {
			return
		}
		t = req.Apply(t, r.db.now())
		d.trainees[id] = t
		out = &t
	})
	return out, nil
}

func (r *newHireRepository) UpdateTraineeStatus(ctx context.Context, id ids.TraineeID, status newhire.TraineeStatus) (out *newhire.Trainee, err error) {
	if !status.IsValid() {
		return nil, newhire.ErrInvalidTraineeStatus
	}
	r.db.write(ctx, func(d *data) {
		t, ok := d.trainees[id]
		if !ok {
			return
		}
		t.Status = status
		t.UpdatedAt = r.db.now()
		d.trainees[id] = t
		out = &t
	})
	return out, nil
}

func (r *newHireRepository) ListResignations(ctx context.Context) (out []newhire.Resignation, err error) {
	r.db.read(func(d *data) {
		out = values(d.resignations, nil, func(a, b newhire.Resignation) int {
			if c := cmp.Compare(b.ResignationDate, a.ResignationDate); c != 0 {
				return c
			}
			return cmp.Compare(a.ResignationID, b.ResignationID)
		})
	})
	return out, nil
}

func (r *newHireRepository) CreateResignation(ctx context.Context, resignation newhire.Resignation) (newhire.Resignation, error) {
	r.db.write(ctx, func(d *data) {
		d.resignations[resignation.ResignationID] = resignation
	})
	return resignation, nil
}

func (r *newHireRepository) ListMeetings(ctx context.Context, traineeID *ids.TraineeID) (out []newhire.Meeting, err error) {
	keep := func(m newhire.Meeting) bool { return traineeID == nil || m.TraineeID == *traineeID }
	r.db.read(func(d *data) {
		out = values(d.meetings, keep, func(a, b newhire.Meeting) int {
			if c := cmp.Compare(b.MeetingDate, a.MeetingDate); c != 0 {
				return c
			}
			return cmp.Compare(a.MeetingID, b.MeetingID)
		})
	})
	return out, nil
}

func (r *newHireRepository) GetMeeting(ctx context.Context, id ids.MeetingID) (out *newhire.Meeting, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.meetings[id], hasKey(d.meetings, id))
	})
	return out, nil
}

func (r *newHireRepository) CreateMeeting(ctx context.Context, meeting newhire.Meeting) (newhire.Meeting, error) {
	var err error
	r.db.write(ctx, func(d *data) {
		if _, ok := d.trainees[meeting.TraineeID]; !ok {
			err = newhire.ErrTraineeNotFound
			return
		}
		d.meetings[meeting.MeetingID] = meeting
	})
	return meeting, err
}

func (r *newHireRepository) UpdateMeeting(ctx context.Context, id ids.MeetingID, req newhire.UpdateMeetingRequest) (out *newhire.Meeting, err error) {
	r.db.write(ctx, func(d *data) {
		m, ok := d.meetings[id]
		if !ok {
			return
		}
		m = req.Apply(m)
		d.meetings[id] = m
		out = &m
	})
	return out, nil
}
