package memory

import (
	"cmp"
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
)

type resultRepository struct {
	db *DB
}

// Results has no removal path, matching result.Repository.
func (db *DB) Results() result.Repository {
	return &resultRepository{db: db}
}

func newestRecordFirst(a, b result.Record) int {
	if c := cmp.Compare(b.TrainingDate, a.TrainingDate); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ResultID, b.ResultID)
}

func (r *resultRepository) List(ctx context.Context, filter result.ResultFilter) (out []result.Record, err error) {
	r.db.read(func(d *data) {
		out = values(d.results, filter.Matches, newestRecordFirst)
	})
	return out, nil
}

func (r *resultRepository) GetByID(ctx context.Context, id ids.ResultID) (out *result.Record, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.results[id], hasKey(d.results, id))
	})
	return out, nil
}

func (r *resultRepository) ListByEmployee(ctx context.Context, employeeID ids.EmployeeID) (out []result.Record, err error) {
	r.db.read(func(d *data) {
		out = values(d.results, func(rec result.Record) bool { return rec.EmployeeID == employeeID }, newestRecordFirst)
	})
	return out, nil
}

func (r *resultRepository) Create(ctx context.Context, rec result.Record) (result.Record, error) {
	r.db.write(ctx, func(d *data) {
		d.results[rec.ResultID] = rec
	})
	return rec, nil
}

func (r *resultRepository) Update(ctx context.Context, id ids.ResultID, req result.UpdateResultRequest, updatedBy string) (out *result.Record, err error) {
	r.db.write(ctx, func(d *data) {
		rec, ok := d.results[id]
		if !ok {
			return
		}
		rec = req.Apply(rec, updatedBy, r.db.now())
		d.results[id] = rec
		out = &rec
	})
	return out, nil
}
