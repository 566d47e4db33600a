package program

import "errors"

var (
	ErrProgramNotFound        = errors.New("training program not found")
	ErrProgramCodeExists      = errors.New("program code already exists")
	ErrInvalidProgramCode     = errors.New("invalid program code format")
	ErrInvalidCategory        = errors.New("invalid program category")
	ErrInvalidEvaluationType  = errors.New("evaluation type must be SCORE or PASS_FAIL")
	ErrInvalidGradeThresholds = errors.New("grade thresholds must satisfy aa >= a >= b >= 0")
)
