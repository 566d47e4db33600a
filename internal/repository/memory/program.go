package memory

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
)

type programRepository struct {
	db *DB
}

func (db *DB) Programs() program.Repository {
	return &programRepository{db: db}
}

func (r *programRepository) List(ctx context.Context, filter program.ProgramFilter) (out []program.Program, err error) {
	r.db.read(func(d *data) {
		out = values(d.programs, filter.Matches, byKey(programCode))
	})
	return out, nil
}

func (r *programRepository) GetByCode(ctx context.Context, code ids.ProgramCode) (out *program.Program, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.programs[code], hasKey(d.programs, code))
	})
	return out, nil
}

func (r *programRepository) Create(ctx context.Context, p program.Program) (program.Program, error) {
	var err error
	r.db.write(ctx, func(d *data) {
		if _, ok := d.programs[p.Code]; ok {
			err = program.ErrProgramCodeExists
			return
		}
		d.programs[p.Code] = p
	})
	return p, err
}

func (r *programRepository) Update(ctx context.Context, code ids.ProgramCode, req program.UpdateProgramRequest) (out *program.Program, err error) {
	r.db.write(ctx, func(d *data) {
		p, ok := d.programs[code]
		if !ok {
			return
		}
		p = req.Apply(p, r.db.now())
		d.programs[code] = p
		out = &p
	})
	return out, nil
}

func (r *programRepository) Deactivate(ctx context.Context, code ids.ProgramCode) (found bool, err error) {
	r.db.write(ctx, func(d *data) {
		p, ok := d.programs[code]
		if !ok {
			return
		}
		d.programs[code] = p.Deactivated(r.db.now())
		found = true
	})
	return found, nil
}

func programCode(p program.Program) ids.ProgramCode { return p.Code }
