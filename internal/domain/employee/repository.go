package employee

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// Repository is the persistence contract for employees. GetByID and Update
// return nil without an error when the employee does not exist. Employees are
// never removed, Deactivate flips the status and reports whether a row changed.
type Repository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	GetByID(ctx context.Context, id ids.EmployeeID) (*Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id ids.EmployeeID, req UpdateEmployeeRequest) (*Employee, error)
	Deactivate(ctx context.Context, id ids.EmployeeID) (bool, error)
}
