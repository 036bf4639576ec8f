package main

import (
	"os"

	"github.com/timecardhq/timecard/timecardservice"
)

func main() {
	if err := timecardservice.Run(); err != nil {
		os.Exit(1)
	}
}
