package main

import (
	"context"
	"fmt"
	"io"

	"github.com/timecardhq/timecard/internal/locate"
)

// fixedPosition satisfies locate.PositionSource with coordinates supplied on
// the command line, standing in for a real device fix.
type fixedPosition struct {
	lat, lon float64
}

func (f fixedPosition) Current(_ context.Context, _ locate.AcquireOptions) (locate.Coordinates, error) {
	return locate.Coordinates{Latitude: f.lat, Longitude: f.lon}, nil
}

func runLocate(apiURL string, lat, lon float64, out io.Writer) error {
	resolver := locate.NewResolver(apiURL, fixedPosition{lat: lat, lon: lon})
	st := resolver.Refresh(context.Background())
	if st.Advisory != "" {
		fmt.Fprintln(out, st.Advisory)
		return nil
	}
	fmt.Fprintf(out, "%s, %s\n", st.City, st.State)
	return nil
}
