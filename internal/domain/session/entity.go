package session

import (
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
)

type Session struct {
	SessionID    ids.SessionID              `json:"session_id"`
	ProgramCode  ids.ProgramCode            `json:"program_code"`
	SessionDate  datetime.ISODate           `json:"session_date"`
	SessionTime  datetime.TimeString        `json:"session_time"`
	Trainer      Trainer                    `json:"trainer"`
	Location     string                     `json:"location"`
	MaxAttendees int                        `json:"max_attendees"`
	Status       Status                     `json:"status"`
	Attendees    frozen.List[ids.EmployeeID] `json:"attendees"`
	CreatedBy    string                     `json:"created_by"`
	CreatedAt    time.Time                  `json:"created_at"`
}

type Trainer struct {
	Name string `json:"name"`
}

type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	return s == StatusPlanned || s == StatusCompleted || s == StatusCancelled
}

// Cancelled returns a copy of s with its status set to CANCELLED.
func (s Session) Cancelled() Session {
	s.Status = StatusCancelled
	return s
}
