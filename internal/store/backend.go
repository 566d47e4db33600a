package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
)

// Backend is the persistence the store reads from and writes through. Every
// repository must be set; Tx may be nil, in which case mutations and their
// change log entries are written without a surrounding transaction.
type Backend struct {
	Employees  employee.Repository
	Programs   program.Repository
	Sessions   session.Repository
	Results    result.Repository
	NewHire    newhire.Repository
	Dashboard  dashboard.Repository
	ChangeLogs changelog.Repository
	Tx         Transactor
}

// Transactor runs fn so that every repository call made with the ctx it
// receives commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func (b Backend) withinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.Tx == nil {
		return fn(ctx)
	}
	return b.Tx.WithinTransaction(ctx, fn)
}
