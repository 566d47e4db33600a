package session

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
)

// Repository is the persistence contract for sessions. Cancel moves a session
// to CANCELLED; it is the only removal a session supports.
type Repository interface {
	List(ctx context.Context, filter SessionFilter) ([]Session, error)
	GetByID(ctx context.Context, id ids.SessionID) (*Session, error)
	Create(ctx context.Context, newSession Session) (Session, error)
	Update(ctx context.Context, id ids.SessionID, req UpdateSessionRequest) (*Session, error)
	Cancel(ctx context.Context, id ids.SessionID) (bool, error)
}
