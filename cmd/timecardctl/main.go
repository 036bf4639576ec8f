package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timecardhq/timecard/internal/auth"
)

var (
	apiFlag string
	keyFlag string
	rootCmd = &cobra.Command{
		Use:   "timecardctl",
		Short: "CLI client for the timecard REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Timecard service base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", auth.LocalDevAPIKey, "API key")

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a work session (or update one with --id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			date, _ := cmd.Flags().GetString("date")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			city, _ := cmd.Flags().GetString("city")
			state, _ := cmd.Flags().GetString("state")
			notes, _ := cmd.Flags().GetString("notes")
			return runLog(apiFlag, keyFlag, id, date, start, end, city, state, notes, os.Stdout)
		},
	}
	logCmd.Flags().String("id", "", "Entry ID (update an existing entry)")
	logCmd.Flags().StringP("date", "d", "", "Date (YYYY-MM-DD, required)")
	logCmd.Flags().StringP("start", "s", "", "Start time (HH:MM, required)")
	logCmd.Flags().StringP("end", "e", "", "End time (HH:MM, required)")
	logCmd.Flags().String("city", "", "City")
	logCmd.Flags().String("state", "", "State")
	logCmd.Flags().String("notes", "", "Notes")
	_ = logCmd.MarkFlagRequired("date")
	_ = logCmd.MarkFlagRequired("start")
	_ = logCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(logCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			return runList(apiFlag, keyFlag, from, to, os.Stdout)
		},
	}
	listCmd.Flags().String("from", "", "Start date (inclusive)")
	listCmd.Flags().String("to", "", "End date (inclusive)")
	rootCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(apiFlag, keyFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(deleteCmd)

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the last 10 days of hours worked",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(apiFlag, keyFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(chartCmd)

	locateCmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve coordinates to city/state via the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")
			return runLocate(apiFlag, lat, lon, os.Stdout)
		},
	}
	locateCmd.Flags().Float64("lat", 0, "Latitude (required)")
	locateCmd.Flags().Float64("lon", 0, "Longitude (required)")
	_ = locateCmd.MarkFlagRequired("lat")
	_ = locateCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(locateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
