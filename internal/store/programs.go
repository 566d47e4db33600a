package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
)

func (s *Store) FetchPrograms(ctx context.Context, delta program.ProgramFilter) ([]program.Program, error) {
	filter := program.FilterSchema.Merge(s.current().programFilter, delta)
	return fetch(ctx, s, CategoryPrograms, "FetchPrograms",
		func(ctx context.Context) ([]program.Program, error) {
			return s.backend.Programs.List(ctx, filter)
		},
		func(st *state, list []program.Program) {
			st.programs = st.programs.replaceView(list, programKey)
			st.programFilter = filter
		})
}

func (s *Store) FetchProgram(ctx context.Context, code ids.ProgramCode) (*program.Program, error) {
	return fetch(ctx, s, CategoryPrograms, "FetchProgram",
		func(ctx context.Context) (*program.Program, error) {
			return s.backend.Programs.GetByCode(ctx, code)
		},
		func(st *state, p *program.Program) {
			st.selectedProgram = nil
			if p != nil {
				st.programs = st.programs.upsert(p.Code, *p)
				sel := p.Code
				st.selectedProgram = &sel
			}
		})
}

func (s *Store) CreateProgram(ctx context.Context, req program.CreateProgramRequest) (program.Program, error) {
	if err := req.Validate(); err != nil {
		return program.Program{}, err
	}
	return createOp(ctx, s, "CreateProgram", changelog.EntityProgram,
		func(p program.Program) string { return string(p.Code) },
		func(ctx context.Context) (program.Program, error) {
			return s.backend.Programs.Create(ctx, req.ToEntity(s.now()))
		},
		func(st *state, p program.Program) {
			st.programs = st.programs.appendNew(p.Code, p)
		})
}

func (s *Store) UpdateProgram(ctx context.Context, code ids.ProgramCode, patch program.UpdateProgramRequest) (*program.Program, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateProgram", changelog.EntityProgram, string(code), "",
		s.programBefore(code),
		func(ctx context.Context) (*program.Program, error) {
			return s.backend.Programs.Update(ctx, code, patch)
		},
		func(before, after program.Program) program.Program {
			after.Code = before.Code
			after.CreatedAt = before.CreatedAt
			return after
		},
		s.putProgram)
}

// DeleteProgram deactivates code. The program keeps its place in every list
// with is_active false.
func (s *Store) DeleteProgram(ctx context.Context, code ids.ProgramCode) (bool, error) {
	return softDeleteOp(ctx, s, "DeleteProgram", changelog.EntityProgram, string(code),
		s.programBefore(code),
		func(ctx context.Context) (bool, error) { return s.backend.Programs.Deactivate(ctx, code) },
		func(ctx context.Context) (*program.Program, error) { return s.backend.Programs.GetByCode(ctx, code) },
		func(p program.Program) program.Program { return p.Deactivated(s.now()) },
		s.putProgram)
}

func (s *Store) programBefore(code ids.ProgramCode) func(ctx context.Context) (*program.Program, error) {
	return func(ctx context.Context) (*program.Program, error) {
		return lookup(ctx, s.current().programs, code, s.backend.Programs.GetByCode)
	}
}

func (s *Store) putProgram(st *state, p program.Program) {
	st.programs = st.programs.upsert(p.Code, p)
}
