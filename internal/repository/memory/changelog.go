package memory

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
)

type changeLogRepository struct {
	db *DB
}

func (db *DB) ChangeLogs() changelog.Repository {
	return &changeLogRepository{db: db}
}

func (r *changeLogRepository) Append(ctx context.Context, entry changelog.Entry) error {
	r.db.write(ctx, func(d *data) {
		d.changelog = append(d.changelog, entry)
	})
	return nil
}

// List walks the log backwards so the newest entries come first.
func (r *changeLogRepository) List(ctx context.Context, filter changelog.Filter) ([]changelog.Entry, error) {
	limit := filter.EffectiveLimit()
	out := []changelog.Entry{}
	r.db.read(func(d *data) {
		for _, e := range slices.Backward(d.changelog) {
			if len(out) == limit {
				return
			}
			if filter.Matches(e) {
				out = append(out, e)
			}
		}
	})
	return out, nil
}
