package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeIDExists        = errors.New("employee id already exists")
	ErrInvalidEmployeeID       = errors.New("invalid employee id format")
	ErrInvalidHireDate         = errors.New("hire date must be YYYY-MM-DD")
	ErrInvalidStatus           = errors.New("status must be ACTIVE or INACTIVE")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
