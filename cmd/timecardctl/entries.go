package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/timecardhq/timecard/internal/model"
)

func newClient(apiURL, apiKey string) *resty.Client {
	c := resty.New().SetBaseURL(apiURL)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return c
}

func runLog(apiURL, apiKey, id, date, start, end, city, state, notes string, out io.Writer) error {
	req := model.SaveEntryRequest{
		EntryID:   id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		City:      city,
		State:     state,
		Notes:     notes,
	}

	var saved model.TimeEntry
	resp, err := newClient(apiURL, apiKey).R().
		SetBody(&req).
		SetResult(&saved).
		Post("/api/entries")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}

	fmt.Fprintf(out, "saved %s  %s %s-%s  %.2fh\n", saved.EntryID, saved.Date, saved.StartTime, saved.EndTime, saved.HoursWorked)
	return nil
}

func runList(apiURL, apiKey, from, to string, out io.Writer) error {
	var body struct {
		Entries []model.TimeEntry `json:"entries"`
		Count   int               `json:"count"`
	}
	req := newClient(apiURL, apiKey).R().SetResult(&body)
	if from != "" {
		req.SetQueryParam("from", from)
	}
	if to != "" {
		req.SetQueryParam("to", to)
	}
	resp, err := req.Get("/api/entries")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}

	for _, e := range body.Entries {
		loc := ""
		if e.City != nil || e.State != nil {
			parts := []string{}
			if e.City != nil {
				parts = append(parts, *e.City)
			}
			if e.State != nil {
				parts = append(parts, *e.State)
			}
			loc = "  " + strings.Join(parts, ", ")
		}
		fmt.Fprintf(out, "%s  %s %s-%s  %.2fh%s\n", e.EntryID, e.Date, e.StartTime, e.EndTime, e.HoursWorked, loc)
	}
	fmt.Fprintf(out, "%d entries\n", body.Count)
	return nil
}

func runDelete(apiURL, apiKey, entryID string, out io.Writer) error {
	resp, err := newClient(apiURL, apiKey).R().Delete("/api/entries/" + entryID)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	fmt.Fprintf(out, "deleted %s\n", entryID)
	return nil
}
