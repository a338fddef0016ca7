package repository

import (
	"context"

	"github.com/aviniti/blueprint/internal/domain/model/client"
)

// ClientRecordRepository persists client intake records in the external
// persistence backend. Failures are user-visible but must not corrupt
// in-memory wizard state.
type ClientRecordRepository interface {
	// Save creates or updates a record keyed by its generated ID
	Save(ctx context.Context, record *client.Record) error

	// Find returns the record with the given ID
	Find(ctx context.Context, id string) (*client.Record, error)
}
