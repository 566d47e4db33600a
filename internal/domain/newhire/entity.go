// Package newhire covers onboarding: trainees grouped into teams, their
// follow-up meetings and resignations.
package newhire

import (
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

type Team struct {
	TeamID    ids.TeamID `json:"team_id"`
	Name      string     `json:"name"`
	Leader    string     `json:"leader"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// Deactivated is the soft-deleted form of t. Trainees keep their team_id.
func (t Team) Deactivated() Team {
	t.IsActive = false
	return t
}

type TraineeStatus string

const (
	TraineeActive    TraineeStatus = "ACTIVE"
	TraineeResigned  TraineeStatus = "RESIGNED"
	TraineeGraduated TraineeStatus = "GRADUATED"
)

func (s TraineeStatus) IsValid() bool {
	return s == TraineeActive || s == TraineeResigned || s == TraineeGraduated
}

type Trainee struct {
	TraineeID  ids.TraineeID    `json:"trainee_id"`
	Name       string           `json:"name"`
	TeamID     *ids.TeamID      `json:"team_id"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	StartDate  datetime.ISODate `json:"start_date"`
	Status     TraineeStatus    `json:"status"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type MeetingType string

const (
	MeetingWeek1  MeetingType = "WEEK1"
	MeetingMonth1 MeetingType = "MONTH1"
	MeetingMonth3 MeetingType = "MONTH3"
	MeetingAdhoc  MeetingType = "ADHOC"
)

func (m MeetingType) IsValid() bool {
	switch m {
	case MeetingWeek1, MeetingMonth1, MeetingMonth3, MeetingAdhoc:
		return true
	}
	return false
}

type Meeting struct {
	MeetingID   ids.MeetingID    `json:"meeting_id"`
	TraineeID   ids.TraineeID    `json:"trainee_id"`
	MeetingDate datetime.ISODate `json:"meeting_date"`
	MeetingType MeetingType      `json:"meeting_type"`
	Notes       string           `json:"notes"`
	ConductedBy string           `json:"conducted_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Resignation struct {
	ResignationID   string           `json:"resignation_id"`
	TraineeID       ids.TraineeID    `json:"trainee_id"`
	ResignationDate datetime.ISODate `json:"resignation_date"`
	Reason          string           `json:"reason"`
	Remarks         string           `json:"remarks"`
	CreatedAt       time.Time        `json:"created_at"`
}
