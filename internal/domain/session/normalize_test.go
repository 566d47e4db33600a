package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSessionPrefersTrainerName(t *testing.T) {
	got := NormalizeSession(LegacySession{
		SessionID:   "SES-001",
		ProgramCode: "SAFE-101",
		SessionDate: "2024-05-10T00:00:00Z",
		SessionTime: "09:30:00",
		Trainer:     "kim",
		TrainerName: "Kim Trainer",
		Status:      "canceled",
		Attendees:   []string{"EMP001", "EMP002"},
	})

	assert.Equal(t, Trainer{Name: "Kim Trainer"}, got.Trainer)
	assert.Equal(t, "2024-05-10", string(got.SessionDate))
	assert.Equal(t, "09:30", string(got.SessionTime))
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, 2, got.Attendees.Len())
}

func TestNormalizeSessionFallsBackToTrainer(t *testing.T) {
	got := NormalizeSession(LegacySession{Trainer: " Lee ", Status: ""})

	assert.Equal(t, "Lee", got.Trainer.Name)
	assert.Equal(t, StatusPlanned, got.Status)
	assert.Equal(t, 0, got.Attendees.Len())
}

func TestNormalizeSessionAttendeesAreCopied(t *testing.T) {
	legacy := LegacySession{Attendees: []string{"EMP001"}}
	got := NormalizeSession(legacy)

	legacy.Attendees[0] = "EMP999"

	assert.Equal(t, "EMP001", string(got.Attendees.At(0)))
}

func TestNormalizeSessions(t *testing.T) {
	got := NormalizeSessions([]LegacySession{{SessionID: "SES-001"}, {SessionID: "SES-002", Status: "done"}})

	assert.Len(t, got, 2)
	assert.Equal(t, StatusCompleted, got[1].Status)
}

func TestSessionFilterMatches(t *testing.T) {
	s := Session{ProgramCode: "SAFE-101", SessionDate: "2024-05-10", Status: StatusPlanned, Trainer: Trainer{Name: "Kim Trainer"}}
	from := "2024-05-01"
	to := "2024-05-10"
	late := "2024-05-11"
	trainer := "kim"
	planned := "planned"

	assert.True(t, SessionFilter{DateFrom: &from, DateTo: &to, Trainer: &trainer, Status: &planned}.Matches(s))
	assert.False(t, SessionFilter{DateFrom: &late}.Matches(s))
}

func TestUpdateSessionRequestValidate(t *testing.T) {
	limit := 1
	req := UpdateSessionRequest{MaxAttendees: &limit, Attendees: []string{"EMP001", "EMP002"}}
	assert.Error(t, req.Validate())

	bad := "tomorrow"
	assert.Error(t, (&UpdateSessionRequest{SessionDate: &bad}).Validate())
	assert.NoError(t, (&UpdateSessionRequest{}).Validate())
}
