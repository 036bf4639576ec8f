package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecardhq/timecard/internal/events"
	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
	"github.com/timecardhq/timecard/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "timecard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	return sqlite.NewWithDB(db)
}

func TestEntryService_SaveInsertsAndRecomputesHours(t *testing.T) {
	bus := events.NewBus(8)
	svc := NewEntryService(newTestStore(t), bus)
	ctx := context.Background()

	out, created, err := svc.Save(ctx, "alice", model.SaveEntryRequest{
		Date:      "2024-03-04",
		StartTime: "09:00",
		EndTime:   "17:30",
		City:      "Springfield",
		State:     "IL",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, out.EntryID)
	assert.Equal(t, 8.5, out.HoursWorked)

	// Immediately visible on re-read with the server-assigned id.
	lst, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, out.EntryID, lst[0].EntryID)
	assert.Equal(t, "Springfield", *lst[0].City)

	evt := <-bus.Subscribe()
	assert.Equal(t, events.EventEntrySaved, evt.Kind)
	assert.Equal(t, "alice", evt.ActorID)
	assert.Equal(t, out.EntryID, evt.EntryID)
}

func TestEntryService_SaveUpdatesExistingRow(t *testing.T) {
	svc := NewEntryService(newTestStore(t), events.NewBus(8))
	ctx := context.Background()

	out, _, err := svc.Save(ctx, "alice", model.SaveEntryRequest{
		Date: "2024-03-04", StartTime: "09:00", EndTime: "17:00", Notes: "first pass",
	})
	require.NoError(t, err)

	upd, created, err := svc.Save(ctx, "alice", model.SaveEntryRequest{
		EntryID: out.EntryID, Date: "2024-03-04", StartTime: "09:00", EndTime: "18:00",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 9.0, upd.HoursWorked)

	lst, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, "18:00", lst[0].EndTime)
	// Full replace: the omitted notes field is now absent.
	assert.Nil(t, lst[0].Notes)
}

func TestEntryService_SaveValidation(t *testing.T) {
	svc := NewEntryService(newTestStore(t), events.NewBus(8))
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.SaveEntryRequest
	}{
		{"missing date", model.SaveEntryRequest{StartTime: "09:00", EndTime: "17:00"}},
		{"missing start", model.SaveEntryRequest{Date: "2024-03-04", EndTime: "17:00"}},
		{"missing end", model.SaveEntryRequest{Date: "2024-03-04", StartTime: "09:00"}},
		{"end before start", model.SaveEntryRequest{Date: "2024-03-04", StartTime: "17:00", EndTime: "09:00"}},
		{"zero duration", model.SaveEntryRequest{Date: "2024-03-04", StartTime: "09:00", EndTime: "09:00"}},
		{"bad date", model.SaveEntryRequest{Date: "03/04/2024", StartTime: "09:00", EndTime: "17:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Save(ctx, "alice", tc.req)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}

	// Nothing reached the store.
	lst, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Empty(t, lst)
}

func TestEntryService_RequiresIdentity(t *testing.T) {
	svc := NewEntryService(newTestStore(t), events.NewBus(8))
	ctx := context.Background()

	_, _, err := svc.Save(ctx, "", model.SaveEntryRequest{Date: "2024-03-04", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)

	err = svc.Delete(ctx, "", "some-id")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)

	_, err = svc.List(ctx, "", "", "")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestEntryService_NotesNormalization(t *testing.T) {
	svc := NewEntryService(newTestStore(t), events.NewBus(8))
	ctx := context.Background()

	out, _, err := svc.Save(ctx, "alice", model.SaveEntryRequest{
		Date: "2024-03-04", StartTime: "09:00", EndTime: "10:00", Notes: "",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Notes)

	out, _, err = svc.Save(ctx, "alice", model.SaveEntryRequest{
		Date: "2024-03-05", StartTime: "09:00", EndTime: "10:00", Notes: "on site",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Notes)
	assert.Equal(t, "on site", *out.Notes)
}

func TestEntryService_DeleteIsSilentForNonOwned(t *testing.T) {
	bus := events.NewBus(8)
	svc := NewEntryService(newTestStore(t), bus)
	ctx := context.Background()

	out, _, err := svc.Save(ctx, "alice", model.SaveEntryRequest{
		Date: "2024-03-04", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)

	// Another caller deleting alice's id: success, row untouched.
	require.NoError(t, svc.Delete(ctx, "mallory", out.EntryID))
	lst, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Len(t, lst, 1)

	// Owner delete removes it.
	require.NoError(t, svc.Delete(ctx, "alice", out.EntryID))
	lst, err = svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Empty(t, lst)
}
