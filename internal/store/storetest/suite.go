package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
)

func strptr(s string) *string { return &s }

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	owner := "u-" + uuid.New().String()
	other := "u-" + uuid.New().String()

	// Create assigns a server-side id and the row is immediately readable.
	e1, err := s.Entries().Create(ctx, &model.TimeEntry{
		ActorID:     owner,
		Date:        "2024-03-04",
		StartTime:   "09:00",
		EndTime:     "17:00",
		HoursWorked: 8,
		City:        strptr("Springfield"),
		State:       strptr("IL"),
	})
	if err != nil {
		t.Fatalf("Create e1: %v", err)
	}
	if e1.EntryID == "" {
		t.Fatalf("Create: empty entry id")
	}
	if got, err := s.Entries().GetByID(ctx, owner, e1.EntryID); err != nil || got == nil || got.Date != "2024-03-04" || got.HoursWorked != 8 {
		t.Fatalf("GetByID after Create: got=%+v err=%v", got, err)
	}

	// Second entry on the same date is allowed (one row per shift).
	if _, err := s.Entries().Create(ctx, &model.TimeEntry{
		ActorID: owner, Date: "2024-03-04", StartTime: "18:00", EndTime: "20:00", HoursWorked: 2,
	}); err != nil {
		t.Fatalf("Create e2: %v", err)
	}
	e3, err := s.Entries().Create(ctx, &model.TimeEntry{
		ActorID: owner, Date: "2024-03-06", StartTime: "10:00", EndTime: "12:30", HoursWorked: 2.5,
		Notes: strptr("standup day"),
	})
	if err != nil {
		t.Fatalf("Create e3: %v", err)
	}

	// Range list: inclusive bounds, ascending by date, out-of-range excluded.
	if _, err := s.Entries().Create(ctx, &model.TimeEntry{
		ActorID: owner, Date: "2024-02-20", StartTime: "09:00", EndTime: "10:00", HoursWorked: 1,
	}); err != nil {
		t.Fatalf("Create out-of-range: %v", err)
	}
	lst, err := s.Entries().List(ctx, model.ListEntriesRequest{ActorID: owner, From: "2024-03-01", To: "2024-03-10"})
	if err != nil || len(lst) != 3 {
		t.Fatalf("List range: n=%d err=%v", len(lst), err)
	}
	for i := 1; i < len(lst); i++ {
		if lst[i-1].Date > lst[i].Date {
			t.Fatalf("List not ascending: %s > %s", lst[i-1].Date, lst[i].Date)
		}
	}

	// Another actor sees nothing of these rows.
	if lst, err := s.Entries().List(ctx, model.ListEntriesRequest{ActorID: other}); err != nil || len(lst) != 0 {
		t.Fatalf("List as other actor: n=%d err=%v", len(lst), err)
	}
	if _, err := s.Entries().GetByID(ctx, other, e1.EntryID); err == nil {
		t.Fatalf("GetByID as other actor: expected error")
	}

	// Update is scoped by owner; full replace of mutable fields.
	upd := *e3
	upd.EndTime = "13:00"
	upd.HoursWorked = 3
	upd.Notes = nil
	if err := s.Entries().Update(ctx, &upd); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ := s.Entries().GetByID(ctx, owner, e3.EntryID); got == nil || got.EndTime != "13:00" || got.Notes != nil {
		t.Fatalf("GetByID after Update: got=%+v", got)
	}

	// Update by a non-owner succeeds silently and changes nothing.
	hijack := *e3
	hijack.ActorID = other
	hijack.EndTime = "23:59"
	if err := s.Entries().Update(ctx, &hijack); err != nil {
		t.Fatalf("Update as other actor: %v", err)
	}
	if got, _ := s.Entries().GetByID(ctx, owner, e3.EntryID); got == nil || got.EndTime != "13:00" {
		t.Fatalf("row mutated by non-owner: got=%+v", got)
	}

	// Delete by a non-owner succeeds silently and leaves the row intact.
	if err := s.Entries().Delete(ctx, other, e1.EntryID); err != nil {
		t.Fatalf("Delete as other actor: %v", err)
	}
	if got, err := s.Entries().GetByID(ctx, owner, e1.EntryID); err != nil || got == nil {
		t.Fatalf("row removed by non-owner delete: got=%v err=%v", got, err)
	}

	// Delete of a nonexistent id is also a silent no-op.
	if err := s.Entries().Delete(ctx, owner, uuid.New().String()); err != nil {
		t.Fatalf("Delete nonexistent: %v", err)
	}

	// Owner delete is permanent and immediate.
	if err := s.Entries().Delete(ctx, owner, e1.EntryID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Entries().GetByID(ctx, owner, e1.EntryID); err == nil {
		t.Fatalf("GetByID after Delete: expected error")
	}
}
