package result

import "errors"

var (
	ErrResultNotFound       = errors.New("training result not found")
	ErrInvalidOutcome       = errors.New("result must be PASS, FAIL or ABSENT")
	ErrInvalidGrade         = errors.New("grade must be AA, A, B or C")
	ErrInvalidScore         = errors.New("score must be between 0 and 100")
	ErrReasonRequired       = errors.New("a reason is required to change a result")
	ErrInvalidTrainingDate  = errors.New("training date must be YYYY-MM-DD")
	ErrAbsentResultHasScore = errors.New("an ABSENT result cannot carry a score")
	ErrAbsentResultHasGrade = errors.New("an ABSENT result cannot carry a grade")
	ErrUnknownReference     = errors.New("result references an unknown employee, program or session")
)
