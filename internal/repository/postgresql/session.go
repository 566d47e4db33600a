package postgresql

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
	"github.com/jackc/pgx/v5"
)

var sessionColumns = `session_id, program_code, ` + dateText("session_date") + `, session_time, trainer_name,
		location, max_attendees, status, attendees, created_by, created_at`

var sessionConstraints = constraintErrors{foreignKeyViolationCode: session.ErrUnknownProgram}

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.Repository {
	return &sessionRepositoryImpl{db: db}
}

func scanSession(row pgx.Row) (session.Session, error) {
	var (
		s           session.Session
		id          string
		programCode string
		date        string
		sessionTime string
		status      string
		attendees   []string
	)
	err := row.Scan(
		&id,
		&programCode,
		&date,
		&sessionTime,
		&s.Trainer.Name,
		&s.Location,
		&s.MaxAttendees,
		&status,
		&attendees,
		&s.CreatedBy,
		&s.CreatedAt,
	)
	if err != nil {
		return session.Session{}, err
	}
	s.SessionID = ids.UnsafeSessionID(id)
	s.ProgramCode = ids.UnsafeProgramCode(programCode)
	s.SessionDate = datetime.ISODate(date)
	s.SessionTime = datetime.TimeString(sessionTime)
	s.Status = session.Status(status)
	employeeIDs := make([]ids.EmployeeID, len(attendees))
	for i, a := range attendees {
		employeeIDs[i] = ids.UnsafeEmployeeID(a)
	}
	s.Attendees = frozen.Of(employeeIDs...)
	return s, nil
}

func attendeeArgs(s session.Session) []string {
	out := make([]string, 0, s.Attendees.Len())
	for _, a := range s.Attendees.All() {
		out = append(out, string(a))
	}
	return out
}

// List implements session.Repository, newest sessions first. Date bounds are
// inclusive.
func (r *sessionRepositoryImpl) List(ctx context.Context, filter session.SessionFilter) ([]session.Session, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	w.eq("program_code", filter.ProgramCode)
	w.eqFold("status", filter.Status)
	if v, ok := queryfilter.Active(filter.DateFrom); ok {
		w.add(dateText("session_date")+" >= ?", v)
	}
	if v, ok := queryfilter.Active(filter.DateTo); ok {
		w.add(dateText("session_date")+" <= ?", v)
	}
	w.contains(filter.Trainer, "trainer_name")

	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions` + w.String() + `
		ORDER BY session_date DESC, session_time DESC, session_id
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []session.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetByID implements session.Repository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id ids.SessionID) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE session_id = $1
	`
	s, err := scanSession(q.QueryRow(ctx, query, string(id)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create implements session.Repository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, newSession session.Session) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO training_sessions (session_id, program_code, session_date, session_time, trainer_name,
			location, max_attendees, status, attendees, created_by, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + sessionColumns

	created, err := scanSession(q.QueryRow(ctx, query,
		string(newSession.SessionID),
		string(newSession.ProgramCode),
		string(newSession.SessionDate),
		string(newSession.SessionTime),
		newSession.Trainer.Name,
		newSession.Location,
		newSession.MaxAttendees,
		string(newSession.Status),
		attendeeArgs(newSession),
		newSession.CreatedBy,
		newSession.CreatedAt,
	))
	if err != nil {
		return session.Session{}, sessionConstraints.translate(err)
	}
	return created, nil
}

// Update implements session.Repository.
func (r *sessionRepositoryImpl) Update(ctx context.Context, id ids.SessionID, req session.UpdateSessionRequest) (*session.Session, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current)

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE training_sessions
		SET session_date = $2::date, session_time = $3, trainer_name = $4, location = $5,
			max_attendees = $6, status = $7, attendees = $8
		WHERE session_id = $1
		RETURNING ` + sessionColumns

	updated, err := scanSession(q.QueryRow(ctx, query,
		string(id),
		string(next.SessionDate),
		string(next.SessionTime),
		next.Trainer.Name,
		next.Location,
		next.MaxAttendees,
		string(next.Status),
		attendeeArgs(next),
	))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel implements session.Repository.
func (r *sessionRepositoryImpl) Cancel(ctx context.Context, id ids.SessionID) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE training_sessions
		SET status = 'CANCELLED'
		WHERE session_id = $1
	`
	tag, err := q.Exec(ctx, query, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
