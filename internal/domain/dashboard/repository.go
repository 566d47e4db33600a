package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// Repository serves the read-only aggregates. Callers pass the clock in, so
// "this month" and expiry windows are computed against their notion of now.
type Repository interface {
	GetStats(ctx context.Context, now time.Time, expiringWithinDays int) (Stats, error)
	GetMonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error)
	GetGradeDistribution(ctx context.Context, programCode *ids.ProgramCode) (GradeDistribution, error)
	GetRetrainingTargets(ctx context.Context) ([]RetrainingTarget, error)
	GetExpiringSoon(ctx context.Context, today datetime.ISODate, withinDays int) ([]ExpiringItem, error)
}
