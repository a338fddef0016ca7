package repository

import (
	"context"

	"github.com/aviniti/blueprint/internal/domain/model/session"
)

// SessionRepository persists the single wizard session record. The store is
// a single slot with last-write-wins semantics; it models one local
// wizard instance, not a shared database.
type SessionRepository interface {
	// Save serializes and stores the session, overwriting any prior record
	Save(ctx context.Context, s *session.Session) error

	// Load returns the stored session, or nil when no record exists or the
	// record has passed the staleness window (stale records are discarded)
	Load(ctx context.Context) (*session.Session, error)

	// Clear removes the record
	Clear(ctx context.Context) error
}
