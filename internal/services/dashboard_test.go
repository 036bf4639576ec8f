package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecardhq/timecard/internal/events"
	"github.com/timecardhq/timecard/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
}

func TestDashboard_EmptyEntrySet(t *testing.T) {
	svc := NewDashboardServiceWithClock(newTestStore(t), fixedNow)

	points, err := svc.ChartData(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, points, 10)

	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.Equal(t, "2024-03-10", points[9].Date)
	for _, p := range points {
		assert.Zero(t, p.Hours)
		assert.NotEmpty(t, p.DisplayDate)
	}
}

func TestDashboard_SumsSameDateAndExcludesOutOfWindow(t *testing.T) {
	st := newTestStore(t)
	entrySvc := NewEntryService(st, events.NewBus(8))
	svc := NewDashboardServiceWithClock(st, fixedNow)
	ctx := context.Background()

	save := func(date, start, end string) {
		t.Helper()
		_, _, err := entrySvc.Save(ctx, "alice", model.SaveEntryRequest{Date: date, StartTime: start, EndTime: end})
		require.NoError(t, err)
	}

	// Two shifts on one day, one other day, one before the window, and a row
	// owned by someone else inside the window.
	save("2024-03-05", "09:00", "12:00")
	save("2024-03-05", "13:00", "17:30")
	save("2024-03-08", "10:00", "10:10")
	save("2024-02-28", "09:00", "17:00")
	_, _, err := entrySvc.Save(ctx, "bob", model.SaveEntryRequest{Date: "2024-03-05", StartTime: "00:00", EndTime: "12:00"})
	require.NoError(t, err)

	points, err := svc.ChartData(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, points, 10)

	byDate := map[string]float64{}
	for _, p := range points {
		byDate[p.Date] = p.Hours
	}
	assert.Equal(t, 7.5, byDate["2024-03-05"])
	assert.Equal(t, 0.17, byDate["2024-03-08"])
	assert.Zero(t, byDate["2024-03-01"])
	// The 2024-02-28 entry is outside the window and absent entirely.
	_, inWindow := byDate["2024-02-28"]
	assert.False(t, inWindow)
}

func TestDashboard_DeterministicAndLabelled(t *testing.T) {
	st := newTestStore(t)
	svc := NewDashboardServiceWithClock(st, fixedNow)
	ctx := context.Background()

	a, err := svc.ChartData(ctx, "alice")
	require.NoError(t, err)
	b, err := svc.ChartData(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.Equal(t, "Mar 1", a[0].DisplayDate)
	assert.Equal(t, "Mar 10", a[9].DisplayDate)
}

func TestDashboard_WindowShiftsAcrossDayBoundary(t *testing.T) {
	st := newTestStore(t)
	day1 := NewDashboardServiceWithClock(st, fixedNow)
	day2 := NewDashboardServiceWithClock(st, func() time.Time { return fixedNow().AddDate(0, 0, 1) })
	ctx := context.Background()

	p1, err := day1.ChartData(ctx, "alice")
	require.NoError(t, err)
	p2, err := day2.ChartData(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-02", p2[0].Date)
	assert.Equal(t, "2024-03-11", p2[9].Date)
	assert.Equal(t, p1[1].Date, p2[0].Date)
}

func TestDashboard_RequiresIdentity(t *testing.T) {
	svc := NewDashboardServiceWithClock(newTestStore(t), fixedNow)
	_, err := svc.ChartData(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}
