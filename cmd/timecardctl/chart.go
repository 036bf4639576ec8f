package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/timecardhq/timecard/internal/model"
)

func runChart(apiURL, apiKey string, out io.Writer) error {
	var body struct {
		Points []model.ChartDataPoint `json:"points"`
	}
	resp, err := newClient(apiURL, apiKey).R().
		SetResult(&body).
		Get("/api/dashboard/chart")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}

	for _, p := range body.Points {
		// one block per half hour, capped at a 12-hour row
		blocks := int(p.Hours * 2)
		if blocks > 24 {
			blocks = 24
		}
		fmt.Fprintf(out, "%-7s %5.2fh %s\n", p.DisplayDate, p.Hours, strings.Repeat("█", blocks))
	}
	return nil
}
