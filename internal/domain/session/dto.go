package session

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

type CreateSessionRequest struct {
	ProgramCode  string   `json:"program_code"`
	SessionDate  string   `json:"session_date"`
	SessionTime  string   `json:"session_time"`
	TrainerName  string   `json:"trainer_name"`
	Location     string   `json:"location"`
	MaxAttendees int      `json:"max_attendees"`
	Attendees    []string `json:"attendees"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ids.IsProgramCode(r.ProgramCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "program_code",
			Message: "program_code must be a valid program code",
		})
	}
	if !datetime.IsISODate(r.SessionDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_date",
			Message: ErrInvalidSessionDate.Error(),
		})
	}
	if r.SessionTime != "" && !datetime.IsTimeString(r.SessionTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_time",
			Message: ErrInvalidSessionTime.Error(),
		})
	}
	if validator.IsEmpty(r.TrainerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainer_name",
			Message: "trainer_name is required",
		})
	}
	if r.MaxAttendees < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_attendees",
			Message: "max_attendees must not be negative",
		})
	}
	errs = append(errs, validateAttendees(r.Attendees, r.MaxAttendees)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity assigns a fresh session id. createdBy is the signed-in identity.
func (r *CreateSessionRequest) ToEntity(createdBy string, now time.Time) Session {
	return Session{
		SessionID:    ids.NewSessionID(),
		ProgramCode:  ids.UnsafeProgramCode(r.ProgramCode),
		SessionDate:  datetime.ISODate(r.SessionDate),
		SessionTime:  datetime.TimeString(r.SessionTime),
		Trainer:      Trainer{Name: strings.TrimSpace(r.TrainerName)},
		Location:     strings.TrimSpace(r.Location),
		MaxAttendees: r.MaxAttendees,
		Status:       StatusPlanned,
		Attendees:    frozen.Of(toEmployeeIDs(r.Attendees)...),
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
}

type UpdateSessionRequest struct {
	SessionDate  *string  `json:"session_date,omitempty"`
	SessionTime  *string  `json:"session_time,omitempty"`
	TrainerName  *string  `json:"trainer_name,omitempty"`
	Location     *string  `json:"location,omitempty"`
	MaxAttendees *int     `json:"max_attendees,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Attendees    []string `json:"attendees,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SessionDate != nil && !datetime.IsISODate(*r.SessionDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_date",
			Message: ErrInvalidSessionDate.Error(),
		})
	}
	if r.SessionTime != nil && !datetime.IsTimeString(*r.SessionTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_time",
			Message: ErrInvalidSessionTime.Error(),
		})
	}
	if r.TrainerName != nil && validator.IsEmpty(*r.TrainerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainer_name",
			Message: "trainer_name must not be empty",
		})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}
	limit := 0
	if r.MaxAttendees != nil {
		limit = *r.MaxAttendees
		if limit < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "max_attendees",
				Message: "max_attendees must not be negative",
			})
		}
	}
	errs = append(errs, validateAttendees(r.Attendees, limit)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r UpdateSessionRequest) Apply(s Session) Session {
	if r.SessionDate != nil {
		s.SessionDate = datetime.ISODate(*r.SessionDate)
	}
	if r.SessionTime != nil {
		s.SessionTime = datetime.TimeString(*r.SessionTime)
	}
	if r.TrainerName != nil {
		s.Trainer = Trainer{Name: strings.TrimSpace(*r.TrainerName)}
	}
	if r.Location != nil {
		s.Location = strings.TrimSpace(*r.Location)
	}
	if r.MaxAttendees != nil {
		s.MaxAttendees = *r.MaxAttendees
	}
	if r.Status != nil {
		s.Status = Status(*r.Status)
	}
	if r.Attendees != nil {
		s.Attendees = frozen.Of(toEmployeeIDs(r.Attendees)...)
	}
	return s
}

func validateAttendees(attendees []string, limit int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, a := range attendees {
		if !ids.IsEmployeeID(a) {
			errs = append(errs, validator.ValidationError{
				Field:   "attendees",
				Message: "attendee " + a + " is not a valid employee id",
			})
			break
		}
	}
	if limit > 0 && len(attendees) > limit {
		errs = append(errs, validator.ValidationError{
			Field:   "attendees",
			Message: ErrTooManyAttendees.Error(),
		})
	}
	return errs
}

func toEmployeeIDs(raw []string) []ids.EmployeeID {
	out := make([]ids.EmployeeID, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, ids.UnsafeEmployeeID(r))
		}
	}
	return out
}
