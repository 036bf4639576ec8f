package services

import (
	"context"
	"fmt"

	"github.com/timecardhq/timecard/internal/events"
	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
	"github.com/timecardhq/timecard/internal/timecalc"
)

// EntryService owns save/update/delete of time entries. Identity is threaded
// in explicitly per call; an empty actor short-circuits before any store
// access. After each successful mutation an entry-changed event is published
// so dependent views re-fetch.
type EntryService struct {
	store store.Store
	bus   *events.Bus
}

func NewEntryService(s store.Store, bus *events.Bus) *EntryService {
	return &EntryService{store: s, bus: bus}
}

// Save inserts a new entry when req.EntryID is empty, otherwise updates the
// row matching both the id and the actor. Hours are recomputed server-side,
// never trusted from the caller. Returns the saved entry and whether it was
// newly created.
func (s *EntryService) Save(ctx context.Context, actorID string, req model.SaveEntryRequest) (*model.TimeEntry, bool, error) {
	if actorID == "" {
		return nil, false, model.ErrNotAuthenticated
	}

	entry, err := buildEntry(actorID, req)
	if err != nil {
		return nil, false, err
	}

	if req.EntryID == "" {
		out, err := s.store.Entries().Create(ctx, entry)
		if err != nil {
			return nil, false, err
		}
		s.bus.Publish(events.Event{Kind: events.EventEntrySaved, ActorID: actorID, EntryID: out.EntryID, Date: out.Date})
		return out, true, nil
	}

	// Filtered update: a non-owned or vanished id affects zero rows and is
	// still reported as success, matching the delete contract.
	if err := s.store.Entries().Update(ctx, entry); err != nil {
		return nil, false, err
	}
	s.bus.Publish(events.Event{Kind: events.EventEntrySaved, ActorID: actorID, EntryID: entry.EntryID, Date: entry.Date})
	return entry, false, nil
}

// Delete removes the entry matching id and actor. Deleting a nonexistent or
// non-owned id succeeds without error and removes nothing.
func (s *EntryService) Delete(ctx context.Context, actorID, entryID string) error {
	if actorID == "" {
		return model.ErrNotAuthenticated
	}
	if err := s.store.Entries().Delete(ctx, actorID, entryID); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Kind: events.EventEntryDeleted, ActorID: actorID, EntryID: entryID})
	return nil
}

// List returns the actor's entries, optionally bounded by an inclusive date
// range, ordered by date ascending.
func (s *EntryService) List(ctx context.Context, actorID, from, to string) ([]*model.TimeEntry, error) {
	if actorID == "" {
		return nil, model.ErrNotAuthenticated
	}
	return s.store.Entries().List(ctx, model.ListEntriesRequest{ActorID: actorID, From: from, To: to})
}

// buildEntry validates the request and produces the row to persist.
// Validation failures never reach the store.
func buildEntry(actorID string, req model.SaveEntryRequest) (*model.TimeEntry, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, fmt.Errorf("%w: date, start time, and end time are required", model.ErrValidation)
	}
	if !timecalc.ValidDate(req.Date) {
		return nil, fmt.Errorf("%w: invalid date %q", model.ErrValidation, req.Date)
	}

	hours, err := timecalc.HoursWorked(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if hours <= 0 {
		return nil, fmt.Errorf("%w: end time must be after start time", model.ErrValidation)
	}

	return &model.TimeEntry{
		EntryID:     req.EntryID,
		ActorID:     actorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		HoursWorked: hours,
		City:        normalize(req.City),
		State:       normalize(req.State),
		Notes:       normalize(req.Notes),
	}, nil
}

// normalize coerces empty strings to absent values before they hit the store.
func normalize(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
