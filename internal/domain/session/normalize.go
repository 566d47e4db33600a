package session

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
)

// LegacySession is a session row as persisted. Older rows only fill Trainer,
// newer ones fill TrainerName; both may be present.
type LegacySession struct {
	SessionID    string    `json:"session_id"`
	ProgramCode  string    `json:"program_code"`
	SessionDate  string    `json:"session_date"`
	SessionTime  string    `json:"session_time"`
	Trainer      string    `json:"trainer"`
	TrainerName  string    `json:"trainer_name"`
	Location     string    `json:"location"`
	MaxAttendees int       `json:"max_attendees"`
	Status       string    `json:"status"`
	Attendees    []string  `json:"attendees"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func NormalizeSession(legacy LegacySession) Session {
	trainer := strings.TrimSpace(legacy.TrainerName)
	if trainer == "" {
		trainer = strings.TrimSpace(legacy.Trainer)
	}
	attendees := make([]ids.EmployeeID, 0, len(legacy.Attendees))
	for _, a := range legacy.Attendees {
		attendees = append(attendees, ids.UnsafeEmployeeID(a))
	}
	return Session{
		SessionID:    ids.UnsafeSessionID(strings.TrimSpace(legacy.SessionID)),
		ProgramCode:  ids.UnsafeProgramCode(strings.TrimSpace(legacy.ProgramCode)),
		SessionDate:  datetime.DateOf(legacy.SessionDate),
		SessionTime:  normalizeTime(legacy.SessionTime),
		Trainer:      Trainer{Name: trainer},
		Location:     legacy.Location,
		MaxAttendees: legacy.MaxAttendees,
		Status:       normalizeStatus(legacy.Status),
		Attendees:    frozen.Of(attendees...),
		CreatedBy:    legacy.CreatedBy,
		CreatedAt:    legacy.CreatedAt,
	}
}

func NormalizeSessions(legacy []LegacySession) []Session {
	out := make([]Session, 0, len(legacy))
	for _, l := range legacy {
		out = append(out, NormalizeSession(l))
	}
	return out
}

func normalizeStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "COMPLETED", "DONE":
		return StatusCompleted
	case "CANCELLED", "CANCELED":
		return StatusCancelled
	default:
		return StatusPlanned
	}
}

// normalizeTime drops a trailing seconds component (09:30:00 -> 09:30).
func normalizeTime(raw string) datetime.TimeString {
	raw = strings.TrimSpace(raw)
	if len(raw) == 8 && datetime.IsTimeString(raw[:5]) {
		return datetime.TimeString(raw[:5])
	}
	return datetime.TimeString(raw)
}
