package model

import "time"

// TimeEntry is one logged work session. A user may log several entries on the
// same date (one per shift). Date and clock fields are kept as strings
// ("2006-01-02" and "15:04") so no time-zone interpretation happens at rest.
type TimeEntry struct {
	EntryID      string    `json:"entryId"`
	ActorID      string    `json:"actorId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	HoursWorked  float64   `json:"hoursWorked"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// ChartDataPoint is one day of the dashboard series. Derived, never persisted.
type ChartDataPoint struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	Hours       float64 `json:"hours"`
}

// Location is a reverse-geocoded city/state pair. Either field may be empty.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// SaveEntryRequest carries the mutable fields of an entry into Save.
// An empty EntryID means insert; a present one means update.
type SaveEntryRequest struct {
	EntryID   string `json:"entryId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ListEntriesRequest captures filters used when listing entries.
// From and To are inclusive date bounds; empty means unbounded.
type ListEntriesRequest struct {
	ActorID string
	From    string
	To      string
}
