package newhire

import "errors"

var (
	ErrTeamNotFound           = errors.New("team not found")
	ErrTraineeNotFound        = errors.New("trainee not found")
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrTraineeAlreadyResigned = errors.New("trainee has already resigned")
	ErrInvalidTraineeStatus   = errors.New("status must be ACTIVE, RESIGNED or GRADUATED")
	ErrInvalidMeetingType     = errors.New("meeting_type must be WEEK1, MONTH1, MONTH3 or ADHOC")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")
)
