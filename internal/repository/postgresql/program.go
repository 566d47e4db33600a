package postgresql

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
	"github.com/jackc/pgx/v5"
)

const programColumns = `code, name, name_ko, name_vi, category, tags, target_positions, evaluation_type,
		grade_aa, grade_a, grade_b, duration_hours, validity_months, is_active, created_at, updated_at`

var programConstraints = constraintErrors{uniqueViolationCode: program.ErrProgramCodeExists}

type programRepositoryImpl struct {
	db *database.DB
}

func NewProgramRepository(db *database.DB) program.Repository {
	return &programRepositoryImpl{db: db}
}

func scanProgram(row pgx.Row) (program.Program, error) {
	var (
		p               program.Program
		code            string
		category        string
		tags            []string
		targetPositions []string
		evaluationType  string
	)
	err := row.Scan(
		&code,
		&p.Name,
		&p.NameKo,
		&p.NameVi,
		&category,
		&tags,
		&targetPositions,
		&evaluationType,
		&p.GradeThresholds.AA,
		&p.GradeThresholds.A,
		&p.GradeThresholds.B,
		&p.DurationHours,
		&p.ValidityMonths,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return program.Program{}, err
	}
	p.Code = ids.UnsafeProgramCode(code)
	p.Category = program.Category(category)
	p.Tags = frozen.Of(tags...)
	p.TargetPositions = frozen.Of(targetPositions...)
	p.EvaluationType = program.EvaluationType(evaluationType)
	return p, nil
}

func programArgs(p program.Program) []any {
	return []any{
		string(p.Code),
		p.Name,
		p.NameKo,
		p.NameVi,
		string(p.Category),
		p.Tags.Slice(),
		p.TargetPositions.Slice(),
		string(p.EvaluationType),
		p.GradeThresholds.AA,
		p.GradeThresholds.A,
		p.GradeThresholds.B,
		p.DurationHours,
		p.ValidityMonths,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

// List implements program.Repository. A tags filter matches programs carrying
// every listed tag.
func (r *programRepositoryImpl) List(ctx context.Context, filter program.ProgramFilter) ([]program.Program, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	w.eqFold("category", filter.Category)
	if v, ok := queryfilter.Active(filter.Status); ok {
		switch strings.ToLower(v) {
		case program.FilterStatusActive:
			w.add("is_active = ?", true)
		case program.FilterStatusInactive:
			w.add("is_active = ?", false)
		}
	}
	w.contains(filter.Search, "code", "name", "name_ko", "name_vi")
	if tags, ok := queryfilter.ActiveList(filter.Tags); ok {
		w.add("tags @> ?", tags)
	}

	query := `
		SELECT ` + programColumns + `
		FROM training_programs` + w.String() + `
		ORDER BY code
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []program.Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// GetByCode implements program.Repository.
func (r *programRepositoryImpl) GetByCode(ctx context.Context, code ids.ProgramCode) (*program.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + programColumns + `
		FROM training_programs
		WHERE code = $1
	`
	p, err := scanProgram(q.QueryRow(ctx, query, string(code)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements program.Repository.
func (r *programRepositoryImpl) Create(ctx context.Context, newProgram program.Program) (program.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO training_programs (` + programColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + programColumns

	created, err := scanProgram(q.QueryRow(ctx, query, programArgs(newProgram)...))
	if err != nil {
		return program.Program{}, programConstraints.translate(err)
	}
	return created, nil
}

// Update implements program.Repository. The code and created_at are never
// written.
func (r *programRepositoryImpl) Update(ctx context.Context, code ids.ProgramCode, req program.UpdateProgramRequest) (*program.Program, error) {
	current, err := r.GetByCode(ctx, code)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current, time.Now().UTC())

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE training_programs
		SET name = $2, name_ko = $3, name_vi = $4, category = $5, tags = $6, target_positions = $7,
			evaluation_type = $8, grade_aa = $9, grade_a = $10, grade_b = $11, duration_hours = $12,
			validity_months = $13, is_active = $14, updated_at = $15
		WHERE code = $1
		RETURNING ` + programColumns

	args := append(programArgs(next)[:14], next.UpdatedAt)
	updated, err := scanProgram(q.QueryRow(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, programConstraints.translate(err)
	}
	return &updated, nil
}

// Deactivate implements program.Repository.
func (r *programRepositoryImpl) Deactivate(ctx context.Context, code ids.ProgramCode) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE training_programs
		SET is_active = FALSE, updated_at = NOW()
		WHERE code = $1
	`
	tag, err := q.Exec(ctx, query, string(code))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
