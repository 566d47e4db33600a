package employee

import (
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

type Employee struct {
	EmployeeID ids.EmployeeID   `json:"employee_id"`
	Name       string           `json:"name"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Building   string           `json:"building"`
	Line       string           `json:"line"`
	HireDate   datetime.ISODate `json:"hire_date"`
	Status     Status           `json:"status"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Deactivated returns a copy of e with its status flipped to INACTIVE.
func (e Employee) Deactivated(at time.Time) Employee {
	e.Status = StatusInactive
	e.UpdatedAt = at
	return e
}
