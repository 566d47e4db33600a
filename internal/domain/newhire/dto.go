package newhire

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

type CreateTeamRequest struct {
	Name   string `json:"name"`
	Leader string `json:"leader"`
}

func (r *CreateTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateTeamRequest) ToEntity(now time.Time) Team {
	return Team{
		TeamID:    ids.NewTeamID(),
		Name:      strings.TrimSpace(r.Name),
		Leader:    strings.TrimSpace(r.Leader),
		IsActive:  true,
		CreatedAt: now,
	}
}

type UpdateTeamRequest struct {
	Name     *string `json:"name,omitempty"`
	Leader   *string `json:"leader,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateTeamRequest) Validate() error {
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "name must not be empty"}}
	}
	return nil
}

func (r UpdateTeamRequest) Apply(t Team) Team {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.Leader != nil {
		t.Leader = strings.TrimSpace(*r.Leader)
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	return t
}

type CreateTraineeRequest struct {
	Name       string  `json:"name"`
	TeamID     *string `json:"team_id,omitempty"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	StartDate  string  `json:"start_date"`
}

func (r *CreateTraineeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.TeamID != nil && !ids.IsTeamID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id must be a valid team id",
		})
	}
	if !datetime.IsISODate(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: ErrInvalidDate.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateTraineeRequest) ToEntity(now time.Time) Trainee {
	t := Trainee{
		TraineeID:  ids.NewTraineeID(),
		Name:       strings.TrimSpace(r.Name),
		Department: strings.TrimSpace(r.Department),
		Position:   strings.TrimSpace(r.Position),
		StartDate:  datetime.ISODate(r.StartDate),
		Status:     TraineeActive,
		UpdatedAt:  now,
	}
	if r.TeamID != nil {
		team := ids.UnsafeTeamID(*r.TeamID)
		t.TeamID = &team
	}
	return t
}

type UpdateTraineeRequest struct {
	Name       *string `json:"name,omitempty"`
	TeamID     *string `json:"team_id,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateTraineeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.TeamID != nil && !ids.IsTeamID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id must be a valid team id",
		})
	}
	if r.StartDate != nil && !datetime.IsISODate(*r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if r.Status != nil && !TraineeStatus(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidTraineeStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r UpdateTraineeRequest) Apply(t Trainee, now time.Time) Trainee {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.TeamID != nil {
		team := ids.UnsafeTeamID(*r.TeamID)
		t.TeamID = &team
	}
	if r.Department != nil {
		t.Department = strings.TrimSpace(*r.Department)
	}
	if r.Position != nil {
		t.Position = strings.TrimSpace(*r.Position)
	}
	if r.StartDate != nil {
		t.StartDate = datetime.ISODate(*r.StartDate)
	}
	if r.Status != nil {
		t.Status = TraineeStatus(*r.Status)
	}
	t.UpdatedAt = now
	return t
}

type ResignTraineeRequest struct {
	ResignationDate string `json:"resignation_date"`
	Reason          string `json:"reason"`
	Remarks         string `json:"remarks"`
}

func (r *ResignTraineeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !datetime.IsISODate(r.ResignationDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "resignation_date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *ResignTraineeRequest) ToEntity(traineeID ids.TraineeID, now time.Time) Resignation {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Resignation{
		ResignationID:   id.String(),
		TraineeID:       traineeID,
		ResignationDate: datetime.ISODate(r.ResignationDate),
		Reason:          strings.TrimSpace(r.Reason),
		Remarks:         strings.TrimSpace(r.Remarks),
		CreatedAt:       now,
	}
}

type CreateMeetingRequest struct {
	TraineeID   string `json:"trainee_id"`
	MeetingDate string `json:"meeting_date"`
	MeetingType string `json:"meeting_type"`
	Notes       string `json:"notes"`
}

func (r *CreateMeetingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ids.IsTraineeID(r.TraineeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_id",
			Message: "trainee_id must be a valid trainee id",
		})
	}
	if !datetime.IsISODate(r.MeetingDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "meeting_date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if !MeetingType(r.MeetingType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "meeting_type",
			Message: ErrInvalidMeetingType.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateMeetingRequest) ToEntity(conductedBy string, now time.Time) Meeting {
	return Meeting{
		MeetingID:   ids.NewMeetingID(),
		TraineeID:   ids.UnsafeTraineeID(r.TraineeID),
		MeetingDate: datetime.ISODate(r.MeetingDate),
		MeetingType: MeetingType(r.MeetingType),
		Notes:       strings.TrimSpace(r.Notes),
		ConductedBy: conductedBy,
		CreatedAt:   now,
	}
}

type UpdateMeetingRequest struct {
	MeetingDate *string `json:"meeting_date,omitempty"`
	MeetingType *string `json:"meeting_type,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *UpdateMeetingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MeetingDate != nil && !datetime.IsISODate(*r.MeetingDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "meeting_date",
			Message: ErrInvalidDate.Error(),
		})
	}
	if r.MeetingType != nil && !MeetingType(*r.MeetingType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "meeting_type",
			Message: ErrInvalidMeetingType.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r UpdateMeetingRequest) Apply(m Meeting) Meeting {
	if r.MeetingDate != nil {
		m.MeetingDate = datetime.ISODate(*r.MeetingDate)
	}
	if r.MeetingType != nil {
		m.MeetingType = MeetingType(*r.MeetingType)
	}
	if r.Notes != nil {
		m.Notes = strings.TrimSpace(*r.Notes)
	}
	return m
}
