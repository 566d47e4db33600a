// Package changelog is the audit trail every store mutation appends to.
package changelog

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

type EntityType string

const (
	EntityEmployee    EntityType = "employee"
	EntityProgram     EntityType = "program"
	EntitySession     EntityType = "session"
	EntityResult      EntityType = "result"
	EntityTeam        EntityType = "team"
	EntityTrainee     EntityType = "trainee"
	EntityMeeting     EntityType = "meeting"
	EntityResignation EntityType = "resignation"
)

// Entry is one audit record. BeforeData is nil for CREATE; both snapshots are
// always present for UPDATE and DELETE.
type Entry struct {
	LogID      string          `json:"log_id"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     Action          `json:"action"`
	BeforeData json.RawMessage `json:"before_data"`
	AfterData  json.RawMessage `json:"after_data"`
	Reason     string          `json:"reason,omitempty"`
	ChangedAt  time.Time       `json:"changed_at"`
	ChangedBy  string          `json:"changed_by"`
}

// Change describes a mutation before it is turned into an Entry.
type Change struct {
	EntityType EntityType
	EntityID   string
	Action     Action
	Before     any
	After      any
	Reason     string
	ChangedBy  string
}

// NewEntry snapshots c as JSON and stamps it with a fresh log id.
func NewEntry(c Change, now time.Time) (Entry, error) {
	before, err := snapshot(c.Before)
	if err != nil {
		return Entry{}, fmt.Errorf("changelog: encode before snapshot: %w", err)
	}
	after, err := snapshot(c.After)
	if err != nil {
		return Entry{}, fmt.Errorf("changelog: encode after snapshot: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("changelog: generate log id: %w", err)
	}
	return Entry{
		LogID:      id.String(),
		EntityType: c.EntityType,
		EntityID:   c.EntityID,
		Action:     c.Action,
		BeforeData: before,
		AfterData:  after,
		Reason:     c.Reason,
		ChangedAt:  now,
		ChangedBy:  c.ChangedBy,
	}, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	return json.Marshal(v)
}
