package newhire

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// Repository is the persistence contract for the onboarding records. Teams are
// deactivated, trainees change status; nothing is removed.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, id ids.TeamID) (*Team, error)
	CreateTeam(ctx context.Context, team Team) (Team, error)
	UpdateTeam(ctx context.Context, id ids.TeamID, req UpdateTeamRequest) (*Team, error)
	DeactivateTeam(ctx context.Context, id ids.TeamID) (bool, error)

	ListTrainees(ctx context.Context, filter TraineeFilter) ([]Trainee, error)
	GetTrainee(ctx context.Context, id ids.TraineeID) (*Trainee, error)
	CreateTrainee(ctx context.Context, trainee Trainee) (Trainee, error)
	UpdateTrainee(ctx context.Context, id ids.TraineeID, req UpdateTraineeRequest) (*Trainee, error)
	UpdateTraineeStatus(ctx context.Context, id ids.TraineeID, status TraineeStatus) (*Trainee, error)

	ListResignations(ctx context.Context) ([]Resignation, error)
	CreateResignation(ctx context.Context, resignation Resignation) (Resignation, error)

	// ListMeetings returns every meeting when traineeID is nil.
	ListMeetings(ctx context.Context, traineeID *ids.TraineeID) ([]Meeting, error)
	GetMeeting(ctx context.Context, id ids.MeetingID) (*Meeting, error)
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	UpdateMeeting(ctx context.Context, id ids.MeetingID, req UpdateMeetingRequest) (*Meeting, error)
}
