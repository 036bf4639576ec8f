package services

import (
	"context"
	"time"

	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/store"
	"github.com/timecardhq/timecard/internal/timecalc"
)

// WindowDays is the fixed length of the dashboard chart window.
const WindowDays = 10

// DashboardService produces the gap-filled daily series backing the hours
// chart. The whole window is recomputed on every call.
type DashboardService struct {
	store store.Store
	now   func() time.Time
}

func NewDashboardService(s store.Store) *DashboardService {
	return &DashboardService{store: s, now: time.Now}
}

// NewDashboardServiceWithClock pins "today" for deterministic tests.
func NewDashboardServiceWithClock(s store.Store, now func() time.Time) *DashboardService {
	return &DashboardService{store: s, now: now}
}

// ChartData returns exactly WindowDays points, one per day of the window
// ending today, in chronological order. Days without entries carry 0 hours.
func (s *DashboardService) ChartData(ctx context.Context, actorID string) ([]model.ChartDataPoint, error) {
	if actorID == "" {
		return nil, model.ErrNotAuthenticated
	}

	days := timecalc.WindowDays(s.now(), WindowDays)
	entries, err := s.store.Entries().List(ctx, model.ListEntriesRequest{
		ActorID: actorID,
		From:    days[0],
		To:      days[len(days)-1],
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, WindowDays)
	for _, e := range entries {
		totals[e.Date] += e.HoursWorked
	}

	points := make([]model.ChartDataPoint, 0, WindowDays)
	for _, day := range days {
		points = append(points, model.ChartDataPoint{
			Date:        day,
			DisplayDate: timecalc.DisplayDate(day),
			Hours:       timecalc.Round2(totals[day]),
		})
	}
	return points, nil
}
