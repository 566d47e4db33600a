package store

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
)

func (s *Store) FetchSessions(ctx context.Context, delta session.SessionFilter) ([]session.Session, error) {
	filter := session.FilterSchema.Merge(s.current().sessionFilter, delta)
	return fetch(ctx, s, CategorySessions, "FetchSessions",
		func(ctx context.Context) ([]session.Session, error) {
			return s.backend.Sessions.List(ctx, filter)
		},
		func(st *state, list []session.Session) {
			st.sessions = st.sessions.replaceView(list, sessionKey)
			st.sessionFilter = filter
		})
}

func (s *Store) FetchSession(ctx context.Context, id ids.SessionID) (*session.Session, error) {
	return fetch(ctx, s, CategorySessions, "FetchSession",
		func(ctx context.Context) (*session.Session, error) {
			return s.backend.Sessions.GetByID(ctx, id)
		},
		func(st *state, ses *session.Session) {
			st.selectedSession = nil
			if ses != nil {
				st.sessions = st.sessions.upsert(ses.SessionID, *ses)
				sel := ses.SessionID
				st.selectedSession = &sel
			}
		})
}

// CreateSession schedules a session owned by the store's identity.
func (s *Store) CreateSession(ctx context.Context, req session.CreateSessionRequest) (session.Session, error) {
	if err := req.Validate(); err != nil {
		return session.Session{}, err
	}
	return createOp(ctx, s, "CreateSession", changelog.EntitySession,
		func(ses session.Session) string { return string(ses.SessionID) },
		func(ctx context.Context) (session.Session, error) {
			return s.backend.Sessions.Create(ctx, req.ToEntity(s.owner, s.now()))
		},
		func(st *state, ses session.Session) {
			st.sessions = st.sessions.appendNew(ses.SessionID, ses)
		})
}

func (s *Store) UpdateSession(ctx context.Context, id ids.SessionID, patch session.UpdateSessionRequest) (*session.Session, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return updateOp(ctx, s, "UpdateSession", changelog.EntitySession, string(id), "",
		s.sessionBefore(id),
		func(ctx context.Context) (*session.Session, error) {
			return s.backend.Sessions.Update(ctx, id, patch)
		},
		func(before, after session.Session) session.Session {
			after.SessionID = before.SessionID
			after.CreatedBy = before.CreatedBy
			after.CreatedAt = before.CreatedAt
			return after
		},
		s.putSession)
}

// DeleteSession cancels id. Cancelled sessions remain listed.
func (s *Store) DeleteSession(ctx context.Context, id ids.SessionID) (bool, error) {
	return softDeleteOp(ctx, s, "DeleteSession", changelog.EntitySession, string(id),
		s.sessionBefore(id),
		func(ctx context.Context) (bool, error) { return s.backend.Sessions.Cancel(ctx, id) },
		func(ctx context.Context) (*session.Session, error) { return s.backend.Sessions.GetByID(ctx, id) },
		session.Session.Cancelled,
		s.putSession)
}

func (s *Store) sessionBefore(id ids.SessionID) func(ctx context.Context) (*session.Session, error) {
	return func(ctx context.Context) (*session.Session, error) {
		return lookup(ctx, s.current().sessions, id, s.backend.Sessions.GetByID)
	}
}

func (s *Store) putSession(st *state, ses session.Session) {
	st.sessions = st.sessions.upsert(ses.SessionID, ses)
}
