package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// LegacyEmployee is an employee row as it is persisted: status casing is not
// normalized and hire_date may carry a time component.
type LegacyEmployee struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Building   string    `json:"building"`
	Line       string    `json:"line"`
	HireDate   string    `json:"hire_date"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NormalizeEmployee(legacy LegacyEmployee) Employee {
	status := StatusActive
	if strings.EqualFold(strings.TrimSpace(legacy.Status), string(StatusInactive)) {
		status = StatusInactive
	}
	return Employee{
		EmployeeID: ids.UnsafeEmployeeID(strings.TrimSpace(legacy.EmployeeID)),
		Name:       strings.TrimSpace(legacy.Name),
		Department: strings.TrimSpace(legacy.Department),
		Position:   strings.TrimSpace(legacy.Position),
		Building:   strings.TrimSpace(legacy.Building),
		Line:       strings.TrimSpace(legacy.Line),
		HireDate:   datetime.DateOf(legacy.HireDate),
		Status:     status,
		UpdatedAt:  legacy.UpdatedAt,
	}
}

func NormalizeEmployees(legacy []LegacyEmployee) []Employee {
	out := make([]Employee, 0, len(legacy))
	for _, l := range legacy {
		out = append(out, NormalizeEmployee(l))
	}
	return out
}
