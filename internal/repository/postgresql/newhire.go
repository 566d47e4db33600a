package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const teamColumns = `team_id, name, leader, is_active, created_at`

var (
	traineeColumns     = `trainee_id, name, team_id, department, position, ` + dateText("start_date") + `, status, updated_at`
	meetingColumns     = `meeting_id, trainee_id, ` + dateText("meeting_date") + `, meeting_type, notes, conducted_by, created_at`
	resignationColumns = `resignation_id, trainee_id, ` + dateText("resignation_date") + `, reason, remarks, created_at`
)

var (
	traineeConstraints = constraintErrors{foreignKeyViolationCode: newhire.ErrTeamNotFound}
	meetingConstraints = constraintErrors{foreignKeyViolationCode: newhire.ErrTraineeNotFound}
)

type newHireRepositoryImpl struct {
	db *database.DB
}

func NewNewHireRepository(db *database.DB) newhire.Repository {
	return &newHireRepositoryImpl{db: db}
}

func scanTeam(row pgx.Row) (newhire.Team, error) {
	var (
		t  newhire.Team
		id string
	)
	if err := row.Scan(&id, &t.Name, &t.Leader, &t.IsActive, &t.CreatedAt); err != nil {
		return newhire.Team{}, err
	}
	t.TeamID = ids.UnsafeTeamID(id)
	return t, nil
}

func scanTrainee(row pgx.Row) (newhire.Trainee, error) {
	var (
		t         newhire.Trainee
		id        string
		teamID    *string
		startDate string
		status    string
	)
	if err := row.Scan(&id, &t.Name, &teamID, &t.Department, &t.Position, &startDate, &status, &t.UpdatedAt); err != nil {
		return newhire.Trainee{}, err
	}
	t.TraineeID = ids.UnsafeTraineeID(id)
	if teamID != nil {
		team := ids.UnsafeTeamID(*teamID)
		t.TeamID = &team
	}
	t.StartDate = datetime.ISODate(startDate)
	t.Status = newhire.TraineeStatus(status)
	return t, nil
}

func scanMeeting(row pgx.Row) (newhire.Meeting, error) {
	var (
		m           newhire.Meeting
		id          string
		traineeID   string
		date        string
		meetingType string
	)
	if err := row.Scan(&id, &traineeID, &date, &meetingType, &m.Notes, &m.ConductedBy, &m.CreatedAt); err != nil {
		return newhire.Meeting{}, err
	}
	m.MeetingID = ids.UnsafeMeetingID(id)
	m.TraineeID = ids.UnsafeTraineeID(traineeID)
	m.MeetingDate = datetime.ISODate(date)
	m.MeetingType = newhire.MeetingType(meetingType)
	return m, nil
}

func scanResignation(row pgx.Row) (newhire.Resignation, error) {
	var (
		res       newhire.Resignation
		traineeID string
		date      string
	)
	if err := row.Scan(&res.ResignationID, &traineeID, &date, &res.Reason, &res.Remarks, &res.CreatedAt); err != nil {
		return newhire.Resignation{}, err
	}
	res.TraineeID = ids.UnsafeTraineeID(traineeID)
	res.ResignationDate = datetime.ISODate(date)
	return res, nil
}

// collect drains rows through scan. The result is never nil.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// getOne runs a single-row query and maps "no rows" to nil.
func getOne[T any](row pgx.Row, scan func(pgx.Row) (T, error)) (*T, error) {
	v, err := scan(row)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func teamArg(id *ids.TeamID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

// ListTeams implements newhire.Repository.
func (r *newHireRepositoryImpl) ListTeams(ctx context.Context) ([]newhire.Team, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+teamColumns+` FROM newhire_teams ORDER BY name, team_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTeam)
}

// GetTeam implements newhire.Repository.
func (r *newHireRepositoryImpl) GetTeam(ctx context.Context, id ids.TeamID) (*newhire.Team, error) {
	q := GetQuerier(ctx, r.db)
	return getOne(q.QueryRow(ctx, `SELECT `+teamColumns+` FROM newhire_teams WHERE team_id = $1`, string(id)), scanTeam)
}

// CreateTeam implements newhire.Repository.
func (r *newHireRepositoryImpl) CreateTeam(ctx context.Context, team newhire.Team) (newhire.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO newhire_teams (` + teamColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + teamColumns

	return scanTeam(q.QueryRow(ctx, query, string(team.TeamID), team.Name, team.Leader, team.IsActive, team.CreatedAt))
}

// UpdateTeam implements newhire.Repository.
func (r *newHireRepositoryImpl) UpdateTeam(ctx context.Context, id ids.TeamID, req newhire.UpdateTeamRequest) (*newhire.Team, error) {
	current, err := r.GetTeam(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current)

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE newhire_teams
		SET name = $2, leader = $3, is_active = $4
		WHERE team_id = $1
		RETURNING ` + teamColumns

	return getOne(q.QueryRow(ctx, query, string(id), next.Name, next.Leader, next.IsActive), scanTeam)
}

// DeactivateTeam implements newhire.Repository. Trainees keep their team_id.
func (r *newHireRepositoryImpl) DeactivateTeam(ctx context.Context, id ids.TeamID) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE newhire_teams SET is_active = FALSE WHERE team_id = $1`, string(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListTrainees implements newhire.Repository.
func (r *newHireRepositoryImpl) ListTrainees(ctx context.Context, filter newhire.TraineeFilter) ([]newhire.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	w.eq("team_id", filter.TeamID)
	w.eqFold("status", filter.Status)
	w.contains(filter.Search, "name", "trainee_id")

	query := `
		SELECT ` + traineeColumns + `
		FROM newhire_trainees` + w.String() + `
		ORDER BY trainee_id
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTrainee)
}

// GetTrainee implements newhire.Repository.
func (r *newHireRepositoryImpl) GetTrainee(ctx context.Context, id ids.TraineeID) (*newhire.Trainee, error) {
	q := GetQuerier(ctx, r.db)
	return getOne(q.QueryRow(ctx, `SELECT `+traineeColumns+` FROM newhire_trainees WHERE trainee_id = $1`, string(id)), scanTrainee)
}

// CreateTrainee implements newhire.Repository.
func (r *newHireRepositoryImpl) CreateTrainee(ctx context.Context, trainee newhire.Trainee) (newhire.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO newhire_trainees (trainee_id, name, team_id, department, position, start_date, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		RETURNING ` + traineeColumns

	created, err := scanTrainee(q.QueryRow(ctx, query,
		string(trainee.TraineeID),
		trainee.Name,
		teamArg(trainee.TeamID),
		trainee.Department,
		trainee.Position,
		string(trainee.StartDate),
		string(trainee.Status),
		trainee.UpdatedAt,
	))
	if err != nil {
		return newhire.Trainee{}, traineeConstraints.translate(err)
	}
	return created, nil
}

func (r *newHireRepositoryImpl) saveTrainee(ctx context.Context, t newhire.Trainee) (*newhire.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE newhire_trainees
		SET name = $2, team_id = $3, department = $4, position = $5, start_date = $6::date,
			status = $7, updated_at = $8
		WHERE trainee_id = $1
		RETURNING ` + traineeColumns

	saved, err := getOne(q.QueryRow(ctx, query,
		string(t.TraineeID),
		t.Name,
		teamArg(t.TeamID),
		t.Department,
		t.Position,
		string(t.StartDate),
		string(t.Status),
		t.UpdatedAt,
	), scanTrainee)
	if err != nil {
		return nil, traineeConstraints.translate(err)
	}
	return saved, nil
}

// UpdateTrainee implements newhire.Repository.
func (r *newHireRepositoryImpl) UpdateTrainee(ctx context.Context, id ids.TraineeID, req newhire.UpdateTraineeRequest) (*newhire.Trainee, error) {
	current, err := r.GetTrainee(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	return r.saveTrainee(ctx, req.Apply(*current, time.Now().UTC()))
}

// UpdateTraineeStatus implements newhire.Repository.
func (r *newHireRepositoryImpl) UpdateTraineeStatus(ctx context.Context, id ids.TraineeID, status newhire.TraineeStatus) (*newhire.Trainee, error) {
	if !status.IsValid() {
		return nil, newhire.ErrInvalidTraineeStatus
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE newhire_trainees
		SET status = $2, updated_at = NOW()
		WHERE trainee_id = $1
		RETURNING ` + traineeColumns

	return getOne(q.QueryRow(ctx, query, string(id), string(status)), scanTrainee)
}

// ListResignations implements newhire.Repository.
func (r *newHireRepositoryImpl) ListResignations(ctx context.Context) ([]newhire.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+resignationColumns+` FROM newhire_resignations ORDER BY resignation_date DESC, resignation_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanResignation)
}

// CreateResignation implements newhire.Repository.
func (r *newHireRepositoryImpl) CreateResignation(ctx context.Context, resignation newhire.Resignation) (newhire.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO newhire_resignations (resignation_id, trainee_id, resignation_date, reason, remarks, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING ` + resignationColumns

	created, err := scanResignation(q.QueryRow(ctx, query,
		resignation.ResignationID,
		string(resignation.TraineeID),
		string(resignation.ResignationDate),
		resignation.Reason,
		resignation.Remarks,
		resignation.CreatedAt,
	))
	if err != nil {
		return newhire.Resignation{}, meetingConstraints.translate(err)
	}
	return created, nil
}

// ListMeetings implements newhire.Repository.
func (r *newHireRepositoryImpl) ListMeetings(ctx context.Context, traineeID *ids.TraineeID) ([]newhire.Meeting, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	if traineeID != nil {
		w.add("trainee_id = ?", string(*traineeID))
	}
	query := `
		SELECT ` + meetingColumns + `
		FROM newhire_meetings` + w.String() + `
		ORDER BY meeting_date DESC, meeting_id
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMeeting)
}

// GetMeeting implements newhire.Repository.
func (r *newHireRepositoryImpl) GetMeeting(ctx context.Context, id ids.MeetingID) (*newhire.Meeting, error) {
	q := GetQuerier(ctx, r.db)
	return getOne(q.QueryRow(ctx, `SELECT `+meetingColumns+` FROM newhire_meetings WHERE meeting_id = $1`, string(id)), scanMeeting)
}

// CreateMeeting implements newhire.Repository. A meeting for an unknown
// trainee fails with newhire.ErrTraineeNotFound.
func (r *newHireRepositoryImpl) CreateMeeting(ctx context.Context, meeting newhire.Meeting) (newhire.Meeting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO newhire_meetings (meeting_id, trainee_id, meeting_date, meeting_type, notes, conducted_by, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		RETURNING ` + meetingColumns

	created, err := scanMeeting(q.QueryRow(ctx, query,
		string(meeting.MeetingID),
		string(meeting.TraineeID),
		string(meeting.MeetingDate),
		string(meeting.MeetingType),
		meeting.Notes,
		meeting.ConductedBy,
		meeting.CreatedAt,
	))
	if err != nil {
		return newhire.Meeting{}, meetingConstraints.translate(err)
	}
	return created, nil
}

// UpdateMeeting implements newhire.Repository.
func (r *newHireRepositoryImpl) UpdateMeeting(ctx context.Context, id ids.MeetingID, req newhire.UpdateMeetingRequest) (*newhire.Meeting, error) {
	current, err := r.GetMeeting(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := req.Apply(*current)

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE newhire_meetings
		SET meeting_date = $2::date, meeting_type = $3, notes = $4
		WHERE meeting_id = $1
		RETURNING ` + meetingColumns

	return getOne(q.QueryRow(ctx, query, string(id), string(next.MeetingDate), string(next.MeetingType), next.Notes), scanMeeting)
}
