package program

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// Repository is the persistence contract for training programs. Deactivate
// clears is_active, programs are never removed.
type Repository interface {
	List(ctx context.Context, filter ProgramFilter) ([]Program, error)
	GetByCode(ctx context.Context, code ids.ProgramCode) (*Program, error)
	Create(ctx context.Context, newProgram Program) (Program, error)
	Update(ctx context.Context, code ids.ProgramCode, req UpdateProgramRequest) (*Program, error)
	Deactivate(ctx context.Context, code ids.ProgramCode) (bool, error)
}
