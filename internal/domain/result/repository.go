package result

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// Repository is the persistence contract for training results. Results are
// only ever created and updated.
type Repository interface {
	List(ctx context.Context, filter ResultFilter) ([]Record, error)
	GetByID(ctx context.Context, id ids.ResultID) (*Record, error)
	ListByEmployee(ctx context.Context, employeeID ids.EmployeeID) ([]Record, error)
	Create(ctx context.Context, newRecord Record) (Record, error)
	Update(ctx context.Context, id ids.ResultID, req UpdateResultRequest, updatedBy string) (*Record, error)
}
