package memory

import (
	"cmp"
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
)

type sessionRepository struct {
	db *DB
}

func (db *DB) Sessions() session.Repository {
	return &sessionRepository{db: db}
}

// List returns the newest sessions first.
func (r *sessionRepository) List(ctx context.Context, filter session.SessionFilter) (out []session.Session, err error) {
	r.db.read(func(d *data) {
		out = values(d.sessions, filter.Matches, func(a, b session.Session) int {
			if c := cmp.Compare(b.SessionDate, a.SessionDate); c != 0 {
				return c
			}
			if c := cmp.Compare(b.SessionTime, a.SessionTime); c != 0 {
				return c
			}
			return cmp.Compare(a.SessionID, b.SessionID)
		})
	})
	return out, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id ids.SessionID) (out *session.Session, err error) {
	r.db.read(func(d *data) {
		out = ptr(d.sessions[id], hasKey(d.sessions, id))
	})
	return out, nil
}

func (r *sessionRepository) Create(ctx context.Context, s session.Session) (session.Session, error) {
	r.db.write(ctx, func(d *data) {
		d.sessions[s.SessionID] = s
	})
	return s, nil
}

func (r *sessionRepository) Update(ctx context.Context, id ids.SessionID, req session.UpdateSessionRequest) (out *session.Session, err error) {
	r.db.write(ctx, func(d *data) {
		s, ok := d.sessions[id]
		if !ok {
			return
		}
		s = req.Apply(s)
		d.sessions[id] = s
		out = &s
	})
	return out, nil
}

func (r *sessionRepository) Cancel(ctx context.Context, id ids.SessionID) (found bool, err error) {
	r.db.write(ctx, func(d *data) {
		s, ok := d.sessions[id]
		if !ok {
			return
		}
		d.sessions[id] = s.Cancelled()
		found = true
	})
	return found, nil
}

func sessionID(s session.Session) ids.SessionID { return s.SessionID }
