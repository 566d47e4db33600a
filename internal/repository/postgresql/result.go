package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
	"github.com/jackc/pgx/v5"
)

var resultColumns = `result_id, session_id, employee_id, program_code, ` + dateText("training_date") + `,
		score, grade, result, needs_retraining, evaluated_by, remarks, created_at, updated_at, updated_by`

const newestResultFirst = `ORDER BY training_date DESC, created_at DESC, result_id`

var resultConstraints = constraintErrors{foreignKeyViolationCode: result.ErrUnknownReference}

type resultRepositoryImpl struct {
	db *database.DB
}

// NewResultRepository returns the results store. There is no removal query:
// results are only ever inserted and updated.
func NewResultRepository(db *database.DB) result.Repository {
	return &resultRepositoryImpl{db: db}
}

func scanResult(row pgx.Row) (result.Record, error) {
	var (
		rec          result.Record
		id           string
		sessionID    *string
		employeeID   string
		programCode  string
		trainingDate string
		grade        *string
		outcome      string
	)
	err := row.Scan(
		&id,
		&sessionID,
		&employeeID,
		&programCode,
		&trainingDate,
		&rec.Score,
		&grade,
		&outcome,
		&rec.NeedsRetraining,
		&rec.EvaluatedBy,
		&rec.Remarks,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UpdatedBy,
	)
	if err != nil {
		return result.Record{}, err
	}
	rec.ResultID = ids.UnsafeResultID(id)
	if sessionID != nil {
		sid := ids.UnsafeSessionID(*sessionID)
		rec.SessionID = &sid
	}
	rec.EmployeeID = ids.UnsafeEmployeeID(employeeID)
	rec.ProgramCode = ids.UnsafeProgramCode(programCode)
	rec.TrainingDate = datetime.ISODate(trainingDate)
	if grade != nil {
		g := program.Grade(*grade)
		rec.Grade = &g
	}
	rec.Result = result.Outcome(outcome)
	return rec, nil
}

func (r *resultRepositoryImpl) query(ctx context.Context, w where) ([]result.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resultColumns + `
		FROM training_results` + w.String() + `
		` + newestResultFirst
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []result.Record{}
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// List implements result.Repository.
func (r *resultRepositoryImpl) List(ctx context.Context, filter result.ResultFilter) ([]result.Record, error) {
	var w where
	w.eq("employee_id", filter.EmployeeID)
	w.eq("program_code", filter.ProgramCode)
	w.eq("session_id", filter.SessionID)
	w.eqFold("result", filter.Result)
	if v, ok := queryfilter.Active(filter.DateFrom); ok {
		w.add(dateText("training_date")+" >= ?", v)
	}
	if v, ok := queryfilter.Active(filter.DateTo); ok {
		w.add(dateText("training_date")+" <= ?", v)
	}
	if want, ok := filter.Retraining(); ok {
		w.add("needs_retraining = ?", want)
	}
	return r.query(ctx, w)
}

// GetByID implements result.Repository.
func (r *resultRepositoryImpl) GetByID(ctx context.Context, id ids.ResultID) (*result.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + resultColumns + `
		FROM training_results
		WHERE result_id = $1
	`
	rec, err := scanResult(q.QueryRow(ctx, query, string(id)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByEmployee implements result.Repository.
func (r *resultRepositoryImpl) ListByEmployee(ctx context.Context, employeeID ids.EmployeeID) ([]result.Record, error) {
	var w where
	w.add("employee_id = ?", string(employeeID))
	return r.query(ctx, w)
}

func sessionArg(id *ids.SessionID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

func gradeArg(g *program.Grade) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

// Create implements result.Repository.
func (r *resultRepositoryImpl) Create(ctx context.Context, newRecord result.Record) (result.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO training_results (result_id, session_id, employee_id, program_code, training_date,
			score, grade, result, needs_retraining, evaluated_by, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + resultColumns

	created, err := scanResult(q.QueryRow(ctx, query,
		string(newRecord.ResultID),
		sessionArg(newRecord.SessionID),
		string(newRecord.EmployeeID),
		string(newRecord.ProgramCode),
		string(newRecord.TrainingDate),
		newRecord.Score,
		gradeArg(newRecord.Grade),
		string(newRecord.Result),
		newRecord.NeedsRetraining,
		newRecord.EvaluatedBy,
		newRecord.Remarks,
		newRecord.CreatedAt,
	))
	if err != nil {
		return result.Record{}, resultConstraints.translate(err)
	}
	return created, nil
}

// Update implements result.Repository. The result id, employee, program and
// created_at are not part of the SET list.
func (r *resultRepositoryImpl) Update(ctx context.Context, id ids.ResultID, req result.UpdateResultRequest, updatedBy string) (*result.Record, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current, updatedBy, time.Now().UTC())

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE training_results
		SET session_id = $2, training_date = $3::date, score = $4, grade = $5, result = $6,
			needs_retraining = $7, remarks = $8, updated_at = $9, updated_by = $10
		WHERE result_id = $1
		RETURNING ` + resultColumns

	updated, err := scanResult(q.QueryRow(ctx, query,
		string(id),
		sessionArg(next.SessionID),
		string(next.TrainingDate),
		next.Score,
		gradeArg(next.Grade),
		string(next.Result),
		next.NeedsRetraining,
		next.Remarks,
		next.UpdatedAt,
		next.UpdatedBy,
	))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, resultConstraints.translate(err)
	}
	return &updated, nil
}
