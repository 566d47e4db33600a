package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Building   string `json:"building"`
	Line       string `json:"line"`
	HireDate   string `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !ids.IsEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must look like EMP001 or EMP-0042",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if !datetime.IsISODate(r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity builds the employee a create operation persists. New employees are
// always ACTIVE.
func (r *CreateEmployeeRequest) ToEntity(now time.Time) Employee {
	return Employee{
		EmployeeID: ids.UnsafeEmployeeID(r.EmployeeID),
		Name:       strings.TrimSpace(r.Name),
		Department: strings.TrimSpace(r.Department),
		Position:   strings.TrimSpace(r.Position),
		Building:   strings.TrimSpace(r.Building),
		Line:       strings.TrimSpace(r.Line),
		HireDate:   datetime.ISODate(r.HireDate),
		Status:     StatusActive,
		UpdatedAt:  now,
	}
}

// UpdateEmployeeRequest is a patch: nil fields are left unchanged. The id
// itself cannot be patched.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Building   *string `json:"building,omitempty"`
	Line       *string `json:"line,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not be empty",
		})
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not be empty",
		})
	}
	if r.HireDate != nil && !datetime.IsISODate(*r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be YYYY-MM-DD",
		})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns e with the patch applied. e itself is not modified.
func (r UpdateEmployeeRequest) Apply(e Employee, now time.Time) Employee {
	if r.Name != nil {
		e.Name = strings.TrimSpace(*r.Name)
	}
	if r.Department != nil {
		e.Department = strings.TrimSpace(*r.Department)
	}
	if r.Position != nil {
		e.Position = strings.TrimSpace(*r.Position)
	}
	if r.Building != nil {
		e.Building = strings.TrimSpace(*r.Building)
	}
	if r.Line != nil {
		e.Line = strings.TrimSpace(*r.Line)
	}
	if r.HireDate != nil {
		e.HireDate = datetime.ISODate(*r.HireDate)
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	e.UpdatedAt = now
	return e
}
