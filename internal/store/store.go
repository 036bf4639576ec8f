package store

import (
	"context"

	"github.com/timecardhq/timecard/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Entries() Entries
}

// Entries is the owner-scoped time-entry collection. Every operation filters
// by actor identity; an id belonging to another actor behaves as if the row
// does not exist. Update and Delete succeed with no effect when the
// id+actor pair matches nothing.
type Entries interface {
	Create(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	Update(ctx context.Context, e *model.TimeEntry) error
	GetByID(ctx context.Context, actorID, entryID string) (*model.TimeEntry, error)
	List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error)
	Delete(ctx context.Context, actorID, entryID string) error
}
