package postgresql

import (
	"context"
	"encoding/json"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const changeLogColumns = `log_id, entity_type, entity_id, action, before_data, after_data, reason, changed_at, changed_by`

type changeLogRepositoryImpl struct {
	db *database.DB
}

// NewChangeLogRepository returns the audit trail. Entries are append-only.
func NewChangeLogRepository(db *database.DB) changelog.Repository {
	return &changeLogRepositoryImpl{db: db}
}

func scanChangeLog(row pgx.Row) (changelog.Entry, error) {
	var (
		e          changelog.Entry
		entityType string
		action     string
		before     []byte
		after      []byte
	)
	err := row.Scan(&e.LogID, &entityType, &e.EntityID, &action, &before, &after, &e.Reason, &e.ChangedAt, &e.ChangedBy)
	if err != nil {
		return changelog.Entry{}, err
	}
	e.EntityType = changelog.EntityType(entityType)
	e.Action = changelog.Action(action)
	if len(before) > 0 {
		e.BeforeData = json.RawMessage(before)
	}
	if len(after) > 0 {
		e.AfterData = json.RawMessage(after)
	}
	return e, nil
}

func jsonArg(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

// Append implements changelog.Repository.
func (r *changeLogRepositoryImpl) Append(ctx context.Context, entry changelog.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO change_logs (` + changeLogColumns + `)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		entry.LogID,
		string(entry.EntityType),
		entry.EntityID,
		string(entry.Action),
		jsonArg(entry.BeforeData),
		jsonArg(entry.AfterData),
		entry.Reason,
		entry.ChangedAt,
		entry.ChangedBy,
	)
	return err
}

// List implements changelog.Repository, newest entries first.
func (r *changeLogRepositoryImpl) List(ctx context.Context, filter changelog.Filter) ([]changelog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	w.eq("entity_type", filter.EntityType)
	w.eq("entity_id", filter.EntityID)
	w.eq("action", filter.Action)
	w.args = append(w.args, filter.EffectiveLimit())

	query := `
		SELECT ` + changeLogColumns + `
		FROM change_logs` + w.String() + `
		ORDER BY changed_at DESC, log_id DESC
		LIMIT $` + itoa(len(w.args))

	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanChangeLog)
}
